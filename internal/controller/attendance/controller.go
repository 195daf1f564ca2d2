// Package attendance provides HTTP handlers for clock-in/clock-out tracking.
package attendance

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

// AttendanceController handles attendance endpoints
type AttendanceController struct {
	DB *database.DBinstanceStruct
}

// NewAttendanceController creates a new instance of AttendanceController.
func NewAttendanceController(db *database.DBinstanceStruct) *AttendanceController {
	return &AttendanceController{
		DB: db,
	}
}

// employeeID resolves the employee record linked to the authenticated staff
// user, answering the request itself when there is none.
func (ac *AttendanceController) employeeID(c *gin.Context) (uint, bool) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return 0, false
	}
	if user.EmployeeID == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Account is not linked to an employee record",
		})
		return 0, false
	}
	return *user.EmployeeID, true
}

// ClockInHandler opens a new attendance interval for the authenticated staff user.
// @Summary Clock in
// @Tags Attendance
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 201 {object} model.Attendance "Opened attendance interval"
// @Failure 403 {object} utilities.ErrorResponse "Account is not linked to an employee record"
// @Failure 409 {object} utilities.ErrorResponse "An interval is already open"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /attendance/clock-in [post]
func (ac *AttendanceController) ClockInHandler(c *gin.Context) {
	employeeID, ok := ac.employeeID(c)
	if !ok {
		return
	}

	var open model.Attendance
	err := ac.DB.Where("employee_id = ? AND clock_out IS NULL", employeeID).First(&open).Error
	if err == nil {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "Already clocked in",
		})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to check open attendance: %s", err.Error()),
		})
		return
	}

	now := time.Now()
	attendance := model.Attendance{
		EmployeeID: employeeID,
		Date:       now.Format("2006-01-02"),
		ClockIn:    now,
	}
	if err := ac.DB.Create(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create attendance: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

// ClockOutHandler closes the open attendance interval and derives worked minutes.
// @Summary Clock out
// @Tags Attendance
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Attendance "Closed attendance interval"
// @Failure 403 {object} utilities.ErrorResponse "Account is not linked to an employee record"
// @Failure 404 {object} utilities.ErrorResponse "No open interval"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /attendance/clock-out [post]
func (ac *AttendanceController) ClockOutHandler(c *gin.Context) {
	employeeID, ok := ac.employeeID(c)
	if !ok {
		return
	}

	var attendance model.Attendance
	err := ac.DB.Where("employee_id = ? AND clock_out IS NULL", employeeID).First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{
			Error: "Not clocked in",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve open attendance: %s", err.Error()),
		})
		return
	}

	now := time.Now()
	attendance.ClockOut = &now
	attendance.WorkedMinutes = int(now.Sub(attendance.ClockIn).Minutes())

	if err := ac.DB.Save(&attendance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update attendance: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, attendance)
}

// MyAttendanceHandler lists the authenticated staff user's own intervals.
// @Summary List own attendance
// @Tags Attendance
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param date query string false "Date filter in YYYY-MM-DD format"
// @Success 200 {array} model.Attendance "Own attendance intervals"
// @Failure 403 {object} utilities.ErrorResponse "Account is not linked to an employee record"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /attendance/me [get]
func (ac *AttendanceController) MyAttendanceHandler(c *gin.Context) {
	employeeID, ok := ac.employeeID(c)
	if !ok {
		return
	}

	query := ac.DB.Where("employee_id = ?", employeeID)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var rows []model.Attendance
	if err := query.Order("clock_in DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve attendance: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// AdminListHandler lists attendance intervals across employees.
// @Summary List attendance intervals
// @Tags Attendance
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param employee query int false "Employee id filter"
// @Param date query string false "Date filter in YYYY-MM-DD format"
// @Success 200 {array} model.Attendance "Attendance intervals"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/attendance [get]
func (ac *AttendanceController) AdminListHandler(c *gin.Context) {
	query := ac.DB.Model(&model.Attendance{})

	if employee := c.Query("employee"); employee != "" {
		query = query.Where("employee_id = ?", employee)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var rows []model.Attendance
	if err := query.Order("clock_in DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve attendance: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}
