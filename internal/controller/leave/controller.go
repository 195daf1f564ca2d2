// Package leave provides HTTP handlers for leave requests and decisions.
package leave

import (
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

// LeaveController handles leave request endpoints
type LeaveController struct {
	DB *database.DBinstanceStruct
}

// NewLeaveController creates a new instance of LeaveController.
func NewLeaveController(db *database.DBinstanceStruct) *LeaveController {
	return &LeaveController{
		DB: db,
	}
}

type leaveInfo struct {
	FromDate string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" binding:"required,datetime=2006-01-02"`
	Type     string `json:"type" binding:"required"`
	Reason   string `json:"reason"`
}

type decisionInfo struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// CreateHandler files a leave request for the authenticated staff user.
// @Summary File leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param request body leaveInfo true "Leave request details"
// @Success 201 {object} model.LeaveRequest "Filed leave request"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 403 {object} utilities.ErrorResponse "Account is not linked to an employee record"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /leaves [post]
func (lc *LeaveController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	if user.EmployeeID == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is not linked to an employee record",
		})
		return
	}

	var info leaveInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	if !utilities.Contains(model.LeaveTypes, info.Type) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown leave type %q", info.Type),
		})
		return
	}
	if info.ToDate < info.FromDate {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "to_date must not be before from_date",
		})
		return
	}

	request := model.LeaveRequest{
		EmployeeID: *user.EmployeeID,
		FromDate:   info.FromDate,
		ToDate:     info.ToDate,
		Type:       info.Type,
		Reason:     info.Reason,
		Status:     model.LeaveStatusPending,
	}
	if err := lc.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create leave request: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, request)
}

// MyLeavesHandler lists the authenticated staff user's own leave requests.
// @Summary List own leave requests
// @Tags Leave
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.LeaveRequest "Own leave requests"
// @Failure 403 {object} utilities.ErrorResponse "Account is not linked to an employee record"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /leaves/me [get]
func (lc *LeaveController) MyLeavesHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	if user.EmployeeID == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is not linked to an employee record",
		})
		return
	}

	var rows []model.LeaveRequest
	err = lc.DB.Where("employee_id = ?", *user.EmployeeID).
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve leave requests: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ListHandler lists leave requests across employees.
// @Summary List leave requests
// @Tags Leave
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "Status filter (pending, approved, rejected)"
// @Param employee query int false "Employee id filter"
// @Success 200 {array} model.LeaveRequest "Leave requests"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/leaves [get]
func (lc *LeaveController) ListHandler(c *gin.Context) {
	query := lc.DB.Model(&model.LeaveRequest{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if employee := c.Query("employee"); employee != "" {
		query = query.Where("employee_id = ?", employee)
	}

	var rows []model.LeaveRequest
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve leave requests: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DecisionHandler approves or rejects a pending leave request.
// @Summary Decide a leave request
// @Tags Leave
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Leave request id"
// @Param request body decisionInfo true "Decision (approved or rejected)"
// @Success 200 {object} model.LeaveRequest "Decided leave request"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or request already decided"
// @Failure 404 {object} utilities.ErrorResponse "Leave request not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/leaves/{id}/decision [patch]
func (lc *LeaveController) DecisionHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info decisionInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	var request model.LeaveRequest
	err = lc.DB.First(&request, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "Leave request not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve leave request: %s", err.Error()),
		})
		return
	}
	if request.Status != model.LeaveStatusPending {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Leave request is already %s", request.Status),
		})
		return
	}

	now := time.Now()
	request.Status = info.Status
	request.DecidedBy = &user.ID
	request.DecidedAt = &now

	if err := lc.DB.Save(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update leave request: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, request)
}
