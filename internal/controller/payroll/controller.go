// Package payroll provides HTTP handlers for payroll management and payslips.
package payroll

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/utilities"
)

var monthFormat = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// PayrollController handles payroll endpoints
type PayrollController struct {
	DB *database.DBinstanceStruct
}

// NewPayrollController creates a new instance of PayrollController.
func NewPayrollController(db *database.DBinstanceStruct) *PayrollController {
	return &PayrollController{
		DB: db,
	}
}

type payrollInfo struct {
	EmployeeID uint    `json:"employee_id" binding:"required"`
	Month      string  `json:"month" binding:"required"`
	Basic      float64 `json:"basic"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
}

// ListHandler returns payroll rows, optionally filtered by employee or month.
// @Summary List payroll rows
// @Tags Payroll
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param employee query int false "Employee id filter"
// @Param month query string false "Month filter in YYYY-MM format"
// @Success 200 {array} model.Payroll "Payroll rows"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/payrolls [get]
func (pc *PayrollController) ListHandler(c *gin.Context) {
	query := pc.DB.Model(&model.Payroll{})

	if employee := c.Query("employee"); employee != "" {
		query = query.Where("employee_id = ?", employee)
	}
	if month := c.Query("month"); month != "" {
		query = query.Where("month = ?", month)
	}

	var rows []model.Payroll
	if err := query.Order("month DESC, employee_id ASC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve payrolls: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// CreateHandler adds a payroll row for one employee and month.
// @Summary Create a payroll row
// @Description Net pay is always recomputed server side as basic + allowances - deductions
// @Tags Payroll
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Payroll body payrollInfo true "Payroll information, month in YYYY-MM format"
// @Success 201 {object} model.Payroll "Created payroll row"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body, unknown employee, or duplicate employee/month pair"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/payrolls [post]
func (pc *PayrollController) CreateHandler(c *gin.Context) {
	var info payrollInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if !monthFormat.MatchString(info.Month) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid month %q, expected YYYY-MM", info.Month),
		})
		return
	}

	var employee model.Employee
	if err := pc.DB.First(&employee, info.EmployeeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Employee %d not found", info.EmployeeID),
		})
		return
	}

	payroll := model.Payroll{
		EmployeeID: info.EmployeeID,
		Month:      info.Month,
		Basic:      info.Basic,
		Allowances: info.Allowances,
		Deductions: info.Deductions,
		Net:        info.Basic + info.Allowances - info.Deductions,
		Status:     model.PayrollStatusDraft,
	}

	if err := pc.DB.Create(&payroll).Error; err != nil {
		if database.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Payroll for employee %d and month %s already exists", info.EmployeeID, info.Month),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create payroll: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, payroll)
}

type amountUpdate struct {
	Basic      *float64 `json:"basic"`
	Allowances *float64 `json:"allowances"`
	Deductions *float64 `json:"deductions"`
}

// UpdateHandler changes the amounts of a draft payroll row.
// @Summary Edit a draft payroll row
// @Tags Payroll
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Payroll id"
// @Param Amounts body amountUpdate true "Amounts to change"
// @Success 200 {object} model.Payroll "Updated payroll row"
// @Failure 400 {object} utilities.ErrorResponse "Payroll already paid"
// @Failure 404 {object} utilities.ErrorResponse "Payroll not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/payrolls/{id} [patch]
func (pc *PayrollController) UpdateHandler(c *gin.Context) {
	var payroll model.Payroll
	if err := pc.DB.First(&payroll, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Payroll not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve payroll: %s", err.Error()),
		})
		return
	}

	if payroll.Status == model.PayrollStatusPaid {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Paid payroll rows cannot be edited",
		})
		return
	}

	var update amountUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if update.Basic != nil {
		payroll.Basic = *update.Basic
	}
	if update.Allowances != nil {
		payroll.Allowances = *update.Allowances
	}
	if update.Deductions != nil {
		payroll.Deductions = *update.Deductions
	}
	payroll.Net = payroll.Basic + payroll.Allowances - payroll.Deductions

	if err := pc.DB.Save(&payroll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update payroll: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, payroll)
}

// PayHandler marks a draft payroll row as paid.
// @Summary Mark a payroll row as paid
// @Tags Payroll
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Payroll id"
// @Success 200 {object} model.Payroll "Paid payroll row"
// @Failure 400 {object} utilities.ErrorResponse "Payroll already paid"
// @Failure 404 {object} utilities.ErrorResponse "Payroll not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/payrolls/{id}/pay [post]
func (pc *PayrollController) PayHandler(c *gin.Context) {
	var payroll model.Payroll
	if err := pc.DB.First(&payroll, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Payroll not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve payroll: %s", err.Error()),
		})
		return
	}

	if payroll.Status == model.PayrollStatusPaid {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Payroll is already paid",
		})
		return
	}

	now := time.Now()
	payroll.Status = model.PayrollStatusPaid
	payroll.PaidAt = &now

	if err := pc.DB.Save(&payroll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update payroll: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, payroll)
}
