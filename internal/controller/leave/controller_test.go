package leave

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

func newLeaveRouter() *gin.Engine {
	r := gin.New()
	ctrl := NewLeaveController(testDB)

	authed := r.Group("", middleware.RequireAuth(testDB))
	authed.POST("/leaves", ctrl.CreateHandler)
	authed.GET("/leaves/me", ctrl.MyLeavesHandler)

	admin := authed.Group("/admin", middleware.CheckRole(model.RoleAdmin))
	admin.GET("/leaves", ctrl.ListHandler)
	admin.PATCH("/leaves/:id/decision", ctrl.DecisionHandler)
	return r
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GetAccessToken(t, testDB, database.TestStaffUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestFileAndDecideLeave(t *testing.T) {
	r := newLeaveRouter()
	token := staffToken(t)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"from_date": "2025-09-10",
		"to_date":   "2025-09-12",
		"type":      "casual",
		"reason":    "Family function",
	}, token, r, "/leaves", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "pending", resp["status"])
	leaveID := resp["id"].(float64)

	// Shows up in the staff user's own list
	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/leaves/me", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Family function")

	// Admin approves it
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)

	endpoint := fmt.Sprintf("/admin/leaves/%.0f/decision", leaveID)
	rec, resp = testutil.MakeJSONRequest(gin.H{"status": "approved"}, adminToken, r, endpoint, http.MethodPatch)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, "approved", resp["status"])
	assert.Equal(t, database.TestAdminUser.ID.String(), resp["decided_by"])

	// Second decision on the same request is rejected
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": "rejected"}, adminToken, r, endpoint, http.MethodPatch)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFileLeaveUnknownType(t *testing.T) {
	r := newLeaveRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"from_date": "2025-09-10",
		"to_date":   "2025-09-12",
		"type":      "sabbatical",
	}, staffToken(t), r, "/leaves", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFileLeaveReversedDates(t *testing.T) {
	r := newLeaveRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"from_date": "2025-09-12",
		"to_date":   "2025-09-10",
		"type":      "sick",
	}, staffToken(t), r, "/leaves", http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminListRequiresAdminRole(t *testing.T) {
	r := newLeaveRouter()

	rec, _ := testutil.MakeJSONRequest(nil, staffToken(t), r, "/admin/leaves", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
