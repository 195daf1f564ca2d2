// Package notifier forwards submitted applications to external services.
//
// Both notifiers are best-effort by contract: whatever happens on the wire is
// logged and swallowed, the committed application record and the response the
// applicant sees are never affected.
package notifier

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Lead carries the applicant fields the external services care about,
// assembled by the intake pipeline after the record has been committed.
type Lead struct {
	Name           string
	CountryCode    string
	Mobile         string
	Email          string
	Category       string
	Qualification  string
	HasExperience  bool
	ExpectedSalary string
	Location       string
	SubmittedAt    time.Time
}

// newHTTPClient returns the client both notifiers use. The calls are blocking
// and run inside the request handler after commit, so a dead endpoint must not
// be able to hang the handler forever.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func newLogger(component string) zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
}
