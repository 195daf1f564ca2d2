package notifier

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLead() Lead {
	return Lead{
		Name:           "Jane Doe",
		CountryCode:    "+91",
		Mobile:         "9876543210",
		Email:          "jane@example.com",
		Category:       "Engineering",
		Qualification:  "B.E. Computer Science",
		HasExperience:  true,
		ExpectedSalary: "55000",
		Location:       "Chennai, Tamil Nadu",
		SubmittedAt:    time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestCRMNotifySendsLeadAsQuery(t *testing.T) {
	var query url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		fmt.Fprint(w, "lead accepted")
	}))
	defer srv.Close()

	t.Setenv("CRM_ENDPOINT", srv.URL)
	t.Setenv("CRM_TOKEN", "secret-token")

	result := NewCRMNotifier().Notify(sampleLead())
	assert.Equal(t, "lead accepted", result)

	require.NotNil(t, query)
	assert.Equal(t, "secret-token", query.Get("token"))
	assert.Equal(t, "Jane Doe", query.Get("name"))
	assert.Equal(t, "+91", query.Get("country_code"))
	assert.Equal(t, "9876543210", query.Get("mobile"))
	assert.Equal(t, "jane@example.com", query.Get("email"))
	assert.Equal(t, "Engineering", query.Get("type"))
	assert.Equal(t, crmSource, query.Get("source"))
}

func TestCRMNotifyReturnsErrorTextOnRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusForbidden)
	}))
	defer srv.Close()

	t.Setenv("CRM_ENDPOINT", srv.URL)
	t.Setenv("CRM_TOKEN", "wrong")

	result := NewCRMNotifier().Notify(sampleLead())
	assert.Contains(t, result, "status 403")
	assert.Contains(t, result, "bad token")
}

func TestCRMNotifyReturnsErrorTextWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	t.Setenv("CRM_ENDPOINT", deadURL)
	t.Setenv("CRM_TOKEN", "secret-token")

	result := NewCRMNotifier().Notify(sampleLead())
	assert.NotEmpty(t, result)
}

func TestCRMNotifySkipsWhenUnconfigured(t *testing.T) {
	t.Setenv("CRM_ENDPOINT", "")
	t.Setenv("CRM_TOKEN", "")

	result := NewCRMNotifier().Notify(sampleLead())
	assert.Equal(t, "crm endpoint not configured", result)
}

func TestTelegramNotifyPostsMessage(t *testing.T) {
	var path string
	var form url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	t.Setenv("TELEGRAM_BOT_TOKEN", "bot-token")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	n := NewTelegramNotifier()
	n.APIBase = srv.URL
	n.Notify(sampleLead())

	assert.Equal(t, "/botbot-token/sendMessage", path)
	require.NotNil(t, form)
	assert.Equal(t, "-100200", form.Get("chat_id"))
	assert.Equal(t, "HTML", form.Get("parse_mode"))

	text := form.Get("text")
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "Category: Engineering")
	assert.Contains(t, text, "Experienced: Yes")
	assert.Contains(t, text, "Submitted: 2025-06-01 10:30:00")
}

func TestTelegramNotifySkipsWhenUnconfigured(t *testing.T) {
	requested := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer srv.Close()

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	n := NewTelegramNotifier()
	n.APIBase = srv.URL
	n.Notify(sampleLead())

	assert.False(t, requested, "unconfigured notifier must not call out")
}
