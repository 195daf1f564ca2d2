package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"PeopleDesk-backend/internal/auth"
	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func checkUserHandler(c *gin.Context) {
	u, exist := c.Get("user")
	if !exist {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func callProtected(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_Success(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), checkUserHandler)

	token, err := auth.GetAccessToken(t, testDB, database.TestStaffUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	rec := callProtected(engine, token)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestRequireAuth_MissingToken(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), checkUserHandler)

	rec := callProtected(engine, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), checkUserHandler)

	rec := callProtected(engine, "not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckRole_AllowsMatchingRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), CheckRole(model.RoleAdmin), checkUserHandler)

	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	rec := callProtected(engine, token)
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
}

func TestCheckRole_RejectsOtherRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(testDB), CheckRole(model.RoleAdmin), checkUserHandler)

	token, err := auth.GetAccessToken(t, testDB, database.TestStaffUser.Username, database.TestSeedPassword)
	assert.NoError(t, err)

	rec := callProtected(engine, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
