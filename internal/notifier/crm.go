package notifier

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

// crmSource is the fixed source tag sent with every lead.
const crmSource = "career-portal"

// CRMNotifier pushes submitted leads to the CRM endpoint.
type CRMNotifier struct {
	Endpoint string
	Token    string

	client *http.Client
	logger zerolog.Logger
}

// NewCRMNotifier builds a notifier from CRM_ENDPOINT and CRM_TOKEN.
func NewCRMNotifier() *CRMNotifier {
	return &CRMNotifier{
		Endpoint: os.Getenv("CRM_ENDPOINT"),
		Token:    os.Getenv("CRM_TOKEN"),
		client:   newHTTPClient(),
		logger:   newLogger("crm"),
	}
}

// Notify issues one GET request carrying the lead fields as query parameters.
// It always returns a plain value: the response body on success, the error
// description otherwise. The caller logs the result and moves on; nothing
// here can fail the submission.
func (n *CRMNotifier) Notify(lead Lead) string {
	if n.Endpoint == "" {
		n.logger.Warn().Msg("CRM endpoint not configured, skipping lead push")
		return "crm endpoint not configured"
	}

	params := url.Values{}
	params.Set("token", n.Token)
	params.Set("name", lead.Name)
	params.Set("country_code", lead.CountryCode)
	params.Set("mobile", lead.Mobile)
	params.Set("email", lead.Email)
	params.Set("type", lead.Category)
	params.Set("source", crmSource)

	resp, err := n.client.Get(n.Endpoint + "?" + params.Encode())
	if err != nil {
		n.logger.Error().Err(err).Str("email", lead.Email).Msg("CRM request failed")
		return err.Error()
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			n.logger.Warn().Err(err).Msg("failed to close CRM response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		n.logger.Error().Err(err).Msg("failed to read CRM response")
		return err.Error()
	}

	if resp.StatusCode != http.StatusOK {
		n.logger.Error().Int("status", resp.StatusCode).Str("body", string(body)).Msg("CRM rejected lead")
		return fmt.Sprintf("crm returned status %d: %s", resp.StatusCode, string(body))
	}

	n.logger.Info().Str("email", lead.Email).Str("type", lead.Category).Msg("lead pushed to CRM")
	return string(body)
}
