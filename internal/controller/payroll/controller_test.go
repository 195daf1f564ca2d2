package payroll

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"PeopleDesk-backend/internal/auth"
	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/middleware"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func newPayrollRouter() *gin.Engine {
	r := gin.New()
	ctrl := NewPayrollController(testDB)
	grp := r.Group("/admin", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin))
	grp.GET("/payrolls", ctrl.ListHandler)
	grp.POST("/payrolls", ctrl.CreateHandler)
	grp.PATCH("/payrolls/:id", ctrl.UpdateHandler)
	grp.POST("/payrolls/:id/pay", ctrl.PayHandler)
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func createPayroll(t *testing.T, r *gin.Engine, token string, employeeID uint, month string) model.Payroll {
	t.Helper()
	body := gin.H{
		"employee_id": employeeID,
		"month":       month,
		"basic":       30000.0,
		"allowances":  5000.0,
		"deductions":  2000.0,
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/admin/payrolls", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var row model.Payroll
	require.NoError(t, testDB.First(&row, uint(resp["id"].(float64))).Error)
	return row
}

func TestCreatePayroll(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	row := createPayroll(t, r, token, database.TestEmployee1.ID, "2030-01")
	assert.Equal(t, model.PayrollStatusDraft, row.Status)
	assert.Equal(t, 33000.0, row.Net, "net is basic + allowances - deductions")
	assert.Nil(t, row.PaidAt)
}

func TestCreatePayrollRejectsBadMonth(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	for _, month := range []string{"2030-13", "203001", "2030-1", "jan-2030"} {
		body := gin.H{"employee_id": database.TestEmployee1.ID, "month": month, "basic": 1000.0}
		rec, resp := testutil.MakeJSONRequest(body, token, r, "/admin/payrolls", http.MethodPost)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "month %q accepted", month)
		assert.Contains(t, resp["error"], "YYYY-MM")
	}
}

func TestCreatePayrollUnknownEmployee(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	body := gin.H{"employee_id": 99999, "month": "2030-02", "basic": 1000.0}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/admin/payrolls", http.MethodPost)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "not found")
}

func TestCreatePayrollDuplicateMonth(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	createPayroll(t, r, token, database.TestEmployee1.ID, "2030-03")

	body := gin.H{"employee_id": database.TestEmployee1.ID, "month": "2030-03", "basic": 9999.0}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/admin/payrolls", http.MethodPost)
	require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, resp["error"], "already exists")

	// Same month for a different employee is fine
	createPayroll(t, r, token, database.TestEmployee2.ID, "2030-03")
}

func TestUpdatePayrollRecomputesNet(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	row := createPayroll(t, r, token, database.TestEmployee1.ID, "2030-04")

	endpoint := fmt.Sprintf("/admin/payrolls/%d", row.ID)
	rec, resp := testutil.MakeJSONRequest(gin.H{"deductions": 4500.0}, token, r, endpoint, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, 30500.0, resp["net"])
	assert.Equal(t, 30000.0, resp["basic"], "unsent amounts stay put")
}

func TestUpdatePaidPayrollRejected(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	row := createPayroll(t, r, token, database.TestEmployee1.ID, "2030-05")

	rec, _ := testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/admin/payrolls/%d/pay", row.ID), http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	rec, resp := testutil.MakeJSONRequest(gin.H{"basic": 1.0}, token, r, fmt.Sprintf("/admin/payrolls/%d", row.ID), http.MethodPatch)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "cannot be edited")
}

func TestPayMarksRowPaid(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	row := createPayroll(t, r, token, database.TestEmployee1.ID, "2030-06")

	rec, resp := testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/admin/payrolls/%d/pay", row.ID), http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, model.PayrollStatusPaid, resp["status"])

	var paid model.Payroll
	require.NoError(t, testDB.First(&paid, row.ID).Error)
	require.NotNil(t, paid.PaidAt)
	assert.WithinDuration(t, time.Now(), *paid.PaidAt, time.Minute)

	// Paying twice is rejected
	rec, _ = testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/admin/payrolls/%d/pay", row.ID), http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayMissingRow(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/admin/payrolls/99999/pay", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPayrollsFilters(t *testing.T) {
	token := adminToken(t)
	r := newPayrollRouter()

	createPayroll(t, r, token, database.TestEmployee2.ID, "2030-07")

	endpoint := fmt.Sprintf("/admin/payrolls?employee=%d&month=2030-07", database.TestEmployee2.ID)
	rec, _ := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"month":"2030-07"`)
	assert.NotContains(t, rec.Body.String(), `"month":"2030-06"`)
}

func TestPayrollRoutesForbiddenForStaff(t *testing.T) {
	staffToken, err := auth.GetAccessToken(t, testDB, database.TestStaffUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := newPayrollRouter()

	rec, _ := testutil.MakeJSONRequest(nil, staffToken, r, "/admin/payrolls", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
