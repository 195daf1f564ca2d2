package payroll

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PeopleDesk-backend/internal/model"
)

func samplePayrollAndEmployee() (model.Payroll, model.Employee) {
	paidAt := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	payroll := model.Payroll{
		ID:         12,
		EmployeeID: 3,
		Month:      "2025-06",
		Basic:      40000,
		Allowances: 8000,
		Deductions: 3000,
		Net:        45000,
		Status:     model.PayrollStatusPaid,
		PaidAt:     &paidAt,
	}
	employee := model.Employee{
		ID:           3,
		EmployeeCode: "EMP-0003",
		EditableEmployeeInfo: model.EditableEmployeeInfo{
			FirstName:   "Alice",
			LastName:    "Nguyen",
			Designation: "Backend Engineer",
			Department:  "Engineering",
		},
	}
	return payroll, employee
}

func TestWritePayslipProducesPDF(t *testing.T) {
	payroll, employee := samplePayrollAndEmployee()

	var buf bytes.Buffer
	require.NoError(t, WritePayslip(&buf, payroll, employee))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output is not a PDF")
	assert.Greater(t, buf.Len(), 500, "suspiciously small PDF")
}

func TestWritePayslipDraftHasNoPaidDate(t *testing.T) {
	payroll, employee := samplePayrollAndEmployee()
	payroll.Status = model.PayrollStatusDraft
	payroll.PaidAt = nil

	var buf bytes.Buffer
	require.NoError(t, WritePayslip(&buf, payroll, employee))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
