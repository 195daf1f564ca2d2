// Package employee provides HTTP handlers for employee record management.
package employee

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/storage"
	"PeopleDesk-backend/internal/utilities"
)

const photoObjectPrefix = "employees/photos"

// EmployeeController handles employee record endpoints
type EmployeeController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
}

// NewEmployeeController creates a new instance of EmployeeController.
func NewEmployeeController(db *database.DBinstanceStruct, store storage.Client) *EmployeeController {
	return &EmployeeController{
		DB:      db,
		Storage: store,
	}
}

// ListHandler returns all employees, optionally filtered.
// @Summary List employees
// @Tags Employee
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Search in first or last name, case insensitive"
// @Param department query string false "Exact department filter"
// @Param active query boolean false "Active flag filter"
// @Success 200 {array} model.Employee "Employees"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/employees [get]
func (ec *EmployeeController) ListHandler(c *gin.Context) {
	query := ec.DB.Model(&model.Employee{})

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("first_name ILIKE ? OR last_name ILIKE ?", pattern, pattern)
	}
	if department := c.Query("department"); department != "" {
		query = query.Where("department = ?", department)
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var employees []model.Employee
	if err := query.Order("id ASC").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employees: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetHandler returns one employee by id.
// @Summary Get a single employee
// @Tags Employee
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Employee id"
// @Success 200 {object} model.Employee "Requested employee"
// @Failure 404 {object} utilities.ErrorResponse "Employee not found"
// @Router /admin/employees/{id} [get]
func (ec *EmployeeController) GetHandler(c *gin.Context) {
	var employee model.Employee
	if err := ec.DB.First(&employee, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, employee)
}

type createInfo struct {
	EmployeeCode string `json:"employee_code" binding:"required"`
	model.EditableEmployeeInfo
}

// CreateHandler adds a new employee record.
// @Summary Create an employee record
// @Tags Employee
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Employee body createInfo true "Employee information, employee_code must be unique"
// @Success 201 {object} model.Employee "Created employee"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or duplicate employee code"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/employees [post]
func (ec *EmployeeController) CreateHandler(c *gin.Context) {
	var info createInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	employee := model.Employee{
		EmployeeCode:         info.EmployeeCode,
		EditableEmployeeInfo: info.EditableEmployeeInfo,
		Active:               true,
	}

	if err := ec.DB.Create(&employee).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Employee code %q already exists", info.EmployeeCode),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create employee: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateHandler edits an employee record, merging only non-empty fields.
// @Summary Edit an employee record
// @Tags Employee
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Employee id"
// @Param Employee body model.EditableEmployeeInfo true "Fields to change"
// @Success 200 {object} model.Employee "Updated employee"
// @Failure 404 {object} utilities.ErrorResponse "Employee not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/employees/{id} [patch]
func (ec *EmployeeController) UpdateHandler(c *gin.Context) {
	var employee model.Employee
	if err := ec.DB.First(&employee, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return
	}

	var info model.EditableEmployeeInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&employee.EditableEmployeeInfo, &info)

	if err := ec.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update employee: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeactivateHandler marks an employee inactive instead of deleting the row,
// payroll and attendance history keep referencing it.
// @Summary Deactivate an employee
// @Tags Employee
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Employee id"
// @Success 200 {object} model.Employee "Deactivated employee"
// @Failure 404 {object} utilities.ErrorResponse "Employee not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/employees/{id} [delete]
func (ec *EmployeeController) DeactivateHandler(c *gin.Context) {
	var employee model.Employee
	if err := ec.DB.First(&employee, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return
	}

	employee.Active = false
	if err := ec.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update employee: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// UploadPhotoHandler stores an employee photo in the bucket.
// @Summary Upload photo for an employee
// @Description Only file that smaller than 10 MB with .jpg, .jpeg, or .png extension is permitted
// @Tags Employee
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Employee id"
// @Param photo formData file true "Upload the photo file"
// @Success 200 {object} model.Employee "Successfully upload photo"
// @Failure 404 {object} utilities.ErrorResponse "Employee not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /admin/employees/{id}/photo [post]
func (ec *EmployeeController) UploadPhotoHandler(c *gin.Context) {
	var employee model.Employee
	if err := ec.DB.First(&employee, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return
	}

	rawFile, err := c.FormFile("photo")
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	allowedExtensions := map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
	extension := strings.ToLower(filepath.Ext(rawFile.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusUnsupportedMediaType, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unsupported file extension: %s", extension),
		})
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cannot open file"})
		return
	}
	defer func() {
		_ = f.Close()
	}()

	objectName := fmt.Sprintf("%s/%s%s", photoObjectPrefix, uuid.NewString(), extension)
	if err := ec.Storage.UploadFile(objectName, f); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store photo: %s", err.Error()),
		})
		return
	}

	employee.Photo = objectName
	if err := ec.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update employee: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, employee)
}
