// Package category provides HTTP handlers for job category management.
package category

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/utilities"
)

// CategoryController handles job category endpoints
type CategoryController struct {
	DB *database.DBinstanceStruct
}

// NewCategoryController creates a new instance of CategoryController.
func NewCategoryController(db *database.DBinstanceStruct) *CategoryController {
	return &CategoryController{
		DB: db,
	}
}

// PublicListHandler returns active categories for the intake form dropdown.
// @Summary List active job categories
// @Description Public endpoint feeding the application form
// @Tags Category
// @Produce json
// @Success 200 {array} model.JobCategory "Active categories"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /categories [get]
func (cc *CategoryController) PublicListHandler(c *gin.Context) {
	var categories []model.JobCategory
	if err := cc.DB.Where("active = ?", true).Order("category_name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve categories: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AdminListHandler returns every category including inactive ones.
// @Summary List all job categories
// @Tags Category
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.JobCategory "All categories"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/categories [get]
func (cc *CategoryController) AdminListHandler(c *gin.Context) {
	var categories []model.JobCategory
	if err := cc.DB.Order("id ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve categories: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}

type categoryInfo struct {
	CategoryName string `json:"category_name" binding:"required"`
	Active       *bool  `json:"active"`
}

// CreateHandler creates a new job category.
// @Summary Create a job category
// @Tags Category
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Category body categoryInfo true "Category information"
// @Success 201 {object} model.JobCategory "Created category"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/categories [post]
func (cc *CategoryController) CreateHandler(c *gin.Context) {
	var info categoryInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "category_name must be provided",
		})
		return
	}

	category := model.JobCategory{CategoryName: info.CategoryName, Active: true}
	if info.Active != nil {
		category.Active = *info.Active
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create category: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateHandler renames or toggles a category.
// @Summary Update a job category
// @Tags Category
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Category id"
// @Param Category body categoryInfo true "Fields to change"
// @Success 200 {object} model.JobCategory "Updated category"
// @Failure 404 {object} utilities.ErrorResponse "Category not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/categories/{id} [patch]
func (cc *CategoryController) UpdateHandler(c *gin.Context) {
	var category model.JobCategory
	if err := cc.DB.First(&category, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve category: %s", err.Error()),
		})
		return
	}

	var info categoryInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "category_name must be provided",
		})
		return
	}

	category.CategoryName = info.CategoryName
	if info.Active != nil {
		category.Active = *info.Active
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update category: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteHandler removes a category. Applications keep their category id,
// which from then on resolves to an empty display name.
// @Summary Delete a job category
// @Tags Category
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Category id"
// @Success 200 {object} utilities.MessageResponse "Category deleted"
// @Failure 404 {object} utilities.ErrorResponse "Category not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/categories/{id} [delete]
func (cc *CategoryController) DeleteHandler(c *gin.Context) {
	var category model.JobCategory
	if err := cc.DB.First(&category, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve category: %s", err.Error()),
		})
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete category: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Category deleted"})
}
