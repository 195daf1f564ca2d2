package payroll

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/utilities"
)

// WritePayslip renders one payroll row as a PDF payslip.
func WritePayslip(w io.Writer, payroll model.Payroll, employee model.Employee) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s %s (%s)", employee.FirstName, employee.LastName, employee.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Designation: %s", employee.Designation))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s", employee.Department))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Month: %s", payroll.Month))
	pdf.Ln(12)

	line := func(label string, amount float64) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(90, 8, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	line("Basic", payroll.Basic)
	line("Allowances", payroll.Allowances)
	line("Deductions", payroll.Deductions)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Net pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", payroll.Net), "1", 1, "R", false, 0, "")

	if payroll.PaidAt != nil {
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, fmt.Sprintf("Paid on %s", payroll.PaidAt.Format("2006-01-02")))
	}

	return pdf.Output(w)
}

// PayslipHandler streams a PDF payslip for one payroll row. Admins can fetch
// any payslip, staff users only their own.
// @Summary Download a payslip PDF
// @Tags Payroll
// @Produce octet-stream
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Payroll id"
// @Success 200 {string} binary "Payslip PDF"
// @Failure 403 {object} utilities.ErrorResponse "Payslip belongs to another employee"
// @Failure 404 {object} utilities.ErrorResponse "Payroll not found"
// @Failure 500 {object} utilities.ErrorResponse "Database or rendering error"
// @Router /payrolls/{id}/payslip [get]
func (pc *PayrollController) PayslipHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var payroll model.Payroll
	if err := pc.DB.First(&payroll, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Payroll not found"})
		return
	}

	if user.Role != model.RoleAdmin {
		if user.EmployeeID == nil || *user.EmployeeID != payroll.EmployeeID {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Payslip belongs to another employee",
			})
			return
		}
	}

	var employee model.Employee
	if err := pc.DB.First(&employee, payroll.EmployeeID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve employee: %s", err.Error()),
		})
		return
	}

	c.Writer.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=payslip_%s_%s.pdf", employee.EmployeeCode, payroll.Month))
	c.Writer.Header().Set("Content-Type", "application/pdf")

	if err := WritePayslip(c.Writer, payroll, employee); err != nil {
		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to render payslip: %s", err.Error()),
			})
			return
		}
		c.Abort()
	}
}
