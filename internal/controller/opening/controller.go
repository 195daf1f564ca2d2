// Package opening provides HTTP handlers for job opening management.
package opening

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/utilities"
)

// OpeningController handles job opening endpoints
type OpeningController struct {
	DB *database.DBinstanceStruct
}

// NewOpeningController creates a new instance of OpeningController.
func NewOpeningController(db *database.DBinstanceStruct) *OpeningController {
	return &OpeningController{
		DB: db,
	}
}

// PublicListHandler returns active, unexpired openings for the careers page.
// @Summary List published job openings
// @Description Public endpoint. Every query is optional.
// @Tags Opening
// @Produce json
// @Param search query string false "Search in opening title with substring matching and case insensitive"
// @Param location query string false "Search in location with substring matching and case insensitive"
// @Param category query int false "Job category id filter"
// @Success 200 {array} model.JobOpening "Active, unexpired openings"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /openings [get]
func (oc *OpeningController) PublicListHandler(c *gin.Context) {
	query := oc.DB.Where("active = ?", true).
		Where("expiring IS NULL OR expiring > ?", time.Now())

	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("job_category_id = ?", category)
	}

	var openings []model.JobOpening
	if err := query.Order("posted_at DESC").Find(&openings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve openings: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, openings)
}

// GetHandler returns one opening by id.
// @Summary Get a single job opening
// @Tags Opening
// @Produce json
// @Param id path int true "Opening id"
// @Success 200 {object} model.JobOpening "Requested opening"
// @Failure 404 {object} utilities.ErrorResponse "Opening not found"
// @Router /openings/{id} [get]
func (oc *OpeningController) GetHandler(c *gin.Context) {
	var opening model.JobOpening
	if err := oc.DB.First(&opening, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opening not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opening: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, opening)
}

type createInfo struct {
	model.EditableOpeningInfo
	JobCategoryID uint `json:"job_category_id"`
}

// CreateHandler publishes a new opening.
// @Summary Create job opening based on given json structure
// @Tags Opening
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Opening body createInfo true "Input opening information"
// @Success 201 {object} model.JobOpening "Successfully created opening"
// @Failure 400 {object} utilities.ErrorResponse "Invalid opening struct"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/openings [post]
func (oc *OpeningController) CreateHandler(c *gin.Context) {
	var info createInfo
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	opening := model.JobOpening{
		EditableOpeningInfo: info.EditableOpeningInfo,
		JobCategoryID:       info.JobCategoryID,
	}
	if opening.Active == nil {
		active := true
		opening.Active = &active
	}

	if err := oc.DB.Create(&opening).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create opening: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, opening)
}

// UpdateHandler edits an opening, merging only non-empty fields.
// @Summary Edit a job opening
// @Tags Opening
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Opening id"
// @Param Opening body model.EditableOpeningInfo true "Fields to change"
// @Success 200 {object} model.JobOpening "Updated opening"
// @Failure 404 {object} utilities.ErrorResponse "Opening not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/openings/{id} [patch]
func (oc *OpeningController) UpdateHandler(c *gin.Context) {
	var opening model.JobOpening
	if err := oc.DB.First(&opening, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opening not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opening: %s", err.Error()),
		})
		return
	}

	var info model.EditableOpeningInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&opening.EditableOpeningInfo, &info)

	if err := oc.DB.Save(&opening).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update opening: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, opening)
}

// DeleteHandler removes an opening.
// @Summary Delete a job opening
// @Tags Opening
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Opening id"
// @Success 200 {object} utilities.MessageResponse "Opening deleted"
// @Failure 404 {object} utilities.ErrorResponse "Opening not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/openings/{id} [delete]
func (oc *OpeningController) DeleteHandler(c *gin.Context) {
	var opening model.JobOpening
	if err := oc.DB.First(&opening, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opening not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opening: %s", err.Error()),
		})
		return
	}

	if err := oc.DB.Delete(&opening).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete opening: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Opening deleted"})
}
