package intake

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/notifier"
	"PeopleDesk-backend/internal/storage"
	"PeopleDesk-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// newSubmitRouter wires one SubmitHandler instance behind POST /apply.
func newSubmitRouter(store storage.Client, crm *notifier.CRMNotifier, chat *notifier.TelegramNotifier) *gin.Engine {
	r := gin.New()
	ctrl := NewIntakeController(testDB, store, crm, chat)
	r.POST("/apply", ctrl.SubmitHandler)
	return r
}

// crmNotifierFor builds a CRM notifier pointed at the given endpoint.
func crmNotifierFor(t *testing.T, endpoint string) *notifier.CRMNotifier {
	t.Helper()
	t.Setenv("CRM_ENDPOINT", endpoint)
	t.Setenv("CRM_TOKEN", "test-crm-token")
	return notifier.NewCRMNotifier()
}

// chatNotifierFor builds a Telegram notifier pointed at the given API base.
// An empty base leaves the notifier unconfigured so Notify is a no-op.
func chatNotifierFor(t *testing.T, apiBase string) *notifier.TelegramNotifier {
	t.Helper()
	if apiBase == "" {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("TELEGRAM_CHAT_ID", "")
		return notifier.NewTelegramNotifier()
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-bot-token")
	t.Setenv("TELEGRAM_CHAT_ID", "1234")
	chat := notifier.NewTelegramNotifier()
	chat.APIBase = apiBase
	return chat
}

func applicantFields(email string, categoryID uint) map[string]string {
	return map[string]string{
		"name":              "Jane Doe",
		"dob_year":          "1993",
		"dob_month":         "2",
		"dob_day":           "31",
		"gender":            "female",
		"marital_status":    "single",
		"father_name":       "John Doe",
		"address":           "12 Baker Street",
		"pincode":           "600001",
		"state":             "Tamil Nadu",
		"district":          "Chennai",
		"country_code":      "+91",
		"mobile":            "9876543210",
		"email":             email,
		"has_experience":    "true",
		"years_experience":  "4",
		"previous_employer": "Acme Corp",
		"last_salary":       "40000",
		"expected_salary":   "55000",
		"reason_for_change": "Growth",
		"reason_for_choice": "Reputation",
		"qualification":     "B.E. Computer Science",
		"declaration":       "true",
		"job_category_id":   fmt.Sprint(categoryID),
	}
}

func TestSubmitWithAttachments(t *testing.T) {
	var crmQuery url.Values
	crmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		crmQuery = r.URL.Query()
		fmt.Fprint(w, "lead accepted")
	}))
	defer crmSrv.Close()

	var chatPath string
	var chatText string
	chatSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		chatText = r.PostFormValue("text")
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer chatSrv.Close()

	store := storage.NewMemoryClient()
	r := newSubmitRouter(store, crmNotifierFor(t, crmSrv.URL), chatNotifierFor(t, chatSrv.URL))

	fields := applicantFields("jane.attachments@example.com", database.TestCategory1.ID)
	files := map[string][2]string{
		"photo":   {"portrait.JPG", "fake image bytes"},
		"cv_file": {"resume.pdf", "fake pdf bytes"},
	}
	rec, resp := testutil.MakeMultipartRequest(fields, files, "", r, "/apply")
	require.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	photoRef, _ := resp["photo"].(string)
	cvRef, _ := resp["cv_file"].(string)
	assert.True(t, strings.HasPrefix(photoRef, "applications/photos/jane_"), "photo ref %q", photoRef)
	assert.True(t, strings.HasPrefix(cvRef, "applications/cvs/jane_"), "cv ref %q", cvRef)
	assert.True(t, strings.HasSuffix(photoRef, ".jpg"))
	assert.True(t, strings.HasSuffix(cvRef, ".pdf"))
	assert.Equal(t, 2, store.Len())

	var saved model.Application
	require.NoError(t, testDB.First(&saved, "email = ?", "jane.attachments@example.com").Error)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, model.ApplicationStatusPending, saved.Status)
	assert.Equal(t, "1993-2-31", saved.DOB)
	assert.Equal(t, database.TestCategory1.ID, saved.JobCategoryID)
	assert.Equal(t, photoRef, saved.Photo)
	assert.Equal(t, cvRef, saved.CVFile)

	// Category resolved to its display name for the CRM push
	require.NotNil(t, crmQuery)
	assert.Equal(t, "Engineering", crmQuery.Get("type"))
	assert.Equal(t, "Jane Doe", crmQuery.Get("name"))
	assert.Equal(t, "test-crm-token", crmQuery.Get("token"))
	assert.Equal(t, "career-portal", crmQuery.Get("source"))

	assert.Equal(t, "/bottest-bot-token/sendMessage", chatPath)
	assert.Contains(t, chatText, "Jane Doe")
	assert.Contains(t, chatText, "Engineering")
	assert.Contains(t, chatText, "Experienced: Yes")
}

func TestSubmitWithoutFiles(t *testing.T) {
	store := storage.NewMemoryClient()
	r := newSubmitRouter(store, crmNotifierFor(t, ""), chatNotifierFor(t, ""))

	fields := applicantFields("jane.nofiles@example.com", database.TestCategory1.ID)
	rec, resp := testutil.MakeMultipartRequest(fields, nil, "", r, "/apply")
	require.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Equal(t, "", resp["photo"])
	assert.Equal(t, "", resp["cv_file"])
	assert.Equal(t, 0, store.Len())

	var saved model.Application
	require.NoError(t, testDB.First(&saved, "email = ?", "jane.nofiles@example.com").Error)
	assert.Empty(t, saved.Photo)
	assert.Empty(t, saved.CVFile)
}

func TestSubmitUnknownCategoryStillRecorded(t *testing.T) {
	var crmQuery url.Values
	crmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		crmQuery = r.URL.Query()
		fmt.Fprint(w, "lead accepted")
	}))
	defer crmSrv.Close()

	store := storage.NewMemoryClient()
	r := newSubmitRouter(store, crmNotifierFor(t, crmSrv.URL), chatNotifierFor(t, ""))

	fields := applicantFields("jane.stalecategory@example.com", 999)
	rec, _ := testutil.MakeMultipartRequest(fields, nil, "", r, "/apply")
	require.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	var saved model.Application
	require.NoError(t, testDB.First(&saved, "email = ?", "jane.stalecategory@example.com").Error)
	assert.Equal(t, uint(999), saved.JobCategoryID)

	// Unknown category degrades to an empty type, the lead still goes out
	require.NotNil(t, crmQuery)
	assert.Equal(t, "", crmQuery.Get("type"))
	assert.Equal(t, "Jane Doe", crmQuery.Get("name"))
}

func TestSubmitUploadFailureRollsBack(t *testing.T) {
	store := storage.NewMemoryClient()
	store.FailUploads = true
	r := newSubmitRouter(store, crmNotifierFor(t, ""), chatNotifierFor(t, ""))

	fields := applicantFields("jane.rollback@example.com", database.TestCategory1.ID)
	files := map[string][2]string{
		"photo": {"portrait.jpg", "fake image bytes"},
	}
	rec, resp := testutil.MakeMultipartRequest(fields, files, "", r, "/apply")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, resp["error"], "Failed to store photo")

	var count int64
	require.NoError(t, testDB.Model(&model.Application{}).
		Where("email = ?", "jane.rollback@example.com").Count(&count).Error)
	assert.Zero(t, count, "no application row may survive a failed upload")
}

func TestSubmitSucceedsWhenNotifiersAreDown(t *testing.T) {
	// A server that is already closed stands in for an unreachable CRM.
	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := deadSrv.URL
	deadSrv.Close()

	store := storage.NewMemoryClient()
	r := newSubmitRouter(store, crmNotifierFor(t, deadURL), chatNotifierFor(t, deadURL))

	fields := applicantFields("jane.notifierdown@example.com", database.TestCategory1.ID)
	rec, _ := testutil.MakeMultipartRequest(fields, nil, "", r, "/apply")
	require.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	var saved model.Application
	require.NoError(t, testDB.First(&saved, "email = ?", "jane.notifierdown@example.com").Error)
}

func TestSubmitDistinctObjectNames(t *testing.T) {
	store := storage.NewMemoryClient()
	r := newSubmitRouter(store, crmNotifierFor(t, ""), chatNotifierFor(t, ""))

	files := map[string][2]string{
		"photo": {"portrait.jpg", "fake image bytes"},
	}
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		fields := applicantFields(fmt.Sprintf("jane.distinct%d@example.com", i), database.TestCategory1.ID)
		rec, resp := testutil.MakeMultipartRequest(fields, files, "", r, "/apply")
		require.Equal(t, http.StatusCreated, rec.Code)
		ref, _ := resp["photo"].(string)
		require.NotEmpty(t, ref)
		assert.False(t, seen[ref], "object name %q reused", ref)
		seen[ref] = true
	}
	assert.Equal(t, 3, store.Len())
}
