// Package application provides HTTP handlers for back office application review.
package application

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/storage"
	"PeopleDesk-backend/internal/utilities"
)

// ApplicationController handles application review endpoints
type ApplicationController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(db *database.DBinstanceStruct, store storage.Client) *ApplicationController {
	return &ApplicationController{
		DB:      db,
		Storage: store,
	}
}

// ListResponse is the page shape consumed by the admin data grid.
type ListResponse struct {
	Rows  []model.Application `json:"rows"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

// ListHandler returns one page of applications for the admin data grid.
// @Summary List applications with server-side pagination and search
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query int false "Page number, starting from 1"
// @Param limit query int false "Page size, capped at 100"
// @Param search query string false "Case-insensitive substring match on name, email, or mobile"
// @Param status query string false "Exact status filter"
// @Param category query int false "Job category id filter"
// @Success 200 {object} ListResponse "One page of applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications [get]
func (ac *ApplicationController) ListHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	query := ac.DB.Model(&model.Application{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR mobile ILIKE ?", pattern, pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("job_category_id = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to count applications: %s", err.Error()),
		})
		return
	}

	var rows []model.Application
	if err := query.Order("applied_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Rows:  rows,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetHandler returns one application by id.
// @Summary Get a single application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Success 200 {object} model.Application "Requested application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id} [get]
func (ac *ApplicationController) GetHandler(c *gin.Context) {
	var application model.Application
	if err := ac.DB.First(&application, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, application)
}

type statusUpdate struct {
	Status string `json:"status" binding:"required,oneof=pending shortlisted rejected"`
}

// UpdateStatusHandler moves an application through the review pipeline.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Param Status body statusUpdate true "New status, one of pending/shortlisted/rejected"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id}/status [patch]
func (ac *ApplicationController) UpdateStatusHandler(c *gin.Context) {
	var update statusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Status must be one of 'pending', 'shortlisted', 'rejected'",
		})
		return
	}

	var application model.Application
	if err := ac.DB.First(&application, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	application.Status = update.Status
	if err := ac.DB.Save(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

// DeleteHandler removes an application row. Stored attachments are left in
// the bucket, mirroring the intake pipeline's no-cleanup stance.
// @Summary Delete an application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Success 200 {object} utilities.MessageResponse "Application deleted"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/applications/{id} [delete]
func (ac *ApplicationController) DeleteHandler(c *gin.Context) {
	var application model.Application
	if err := ac.DB.First(&application, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if err := ac.DB.Delete(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}

// AttachmentHandler streams an application's photo or CV from storage.
// @Summary Retrieve downloadable application attachment
// @Tags Application
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application id"
// @Param kind path string true "Attachment kind, 'photo' or 'cv'"
// @Success 200 {string} binary "Successfully retrieve file"
// @Failure 404 {object} utilities.ErrorResponse "Application or attachment not found"
// @Failure 500 {object} utilities.ErrorResponse "Fail to send file content"
// @Router /admin/applications/{id}/attachment/{kind} [get]
func (ac *ApplicationController) AttachmentHandler(c *gin.Context) {
	var application model.Application
	if err := ac.DB.First(&application, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
		return
	}

	var objectName string
	switch c.Param("kind") {
	case "photo":
		objectName = application.Photo
	case "cv":
		objectName = application.CVFile
	default:
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Unknown attachment kind"})
		return
	}

	if objectName == "" {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application has no such attachment"})
		return
	}

	reader, size, err := ac.Storage.DownloadFile(objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to download file from storage: %s", err.Error()),
		})
		return
	}
	defer func() {
		_ = reader.Close()
	}()

	c.Writer.Header().Set("Content-Disposition", "attachment; filename="+path.Base(objectName))
	c.Writer.Header().Set("Content-Type", "application/octet-stream")
	if size > 0 {
		c.Writer.Header().Set("Content-Length", fmt.Sprint(size))
	}
	if _, err := io.Copy(c.Writer, reader); err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: "Failed to send file content",
			})
			return
		}
		c.Abort()
	}
}
