package notifier

import (
	"fmt"
	"net/http"
	"net/url"
	"os"

	// Load .env file to environments
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
)

// TelegramNotifier posts a human-readable summary of each submission to a
// Telegram chat via the bot API.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	// APIBase exists so tests can point the notifier at a local server.
	APIBase string

	client *http.Client
	logger zerolog.Logger
}

// NewTelegramNotifier builds a notifier from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.
func NewTelegramNotifier() *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
		APIBase:  "https://api.telegram.org",
		client:   newHTTPClient(),
		logger:   newLogger("telegram"),
	}
}

// Notify formats the lead as a multi-line message and posts it to the chat.
// Missing configuration downgrades to a warning, transport errors are logged
// and swallowed, never propagated.
func (n *TelegramNotifier) Notify(lead Lead) {
	if n.BotToken == "" || n.ChatID == "" {
		n.logger.Warn().Msg("Telegram bot token or chat id not configured, skipping chat notification")
		return
	}

	experience := "No"
	if lead.HasExperience {
		experience = "Yes"
	}

	text := fmt.Sprintf(
		"<b>New job application</b>\n"+
			"Name: %s\n"+
			"Email: %s\n"+
			"Phone: %s %s\n"+
			"Category: %s\n"+
			"Qualification: %s\n"+
			"Experienced: %s\n"+
			"Expected salary: %s\n"+
			"Location: %s\n"+
			"Submitted: %s",
		lead.Name, lead.Email, lead.CountryCode, lead.Mobile, lead.Category,
		lead.Qualification, experience, lead.ExpectedSalary, lead.Location,
		lead.SubmittedAt.Format("2006-01-02 15:04:05"),
	)

	form := url.Values{}
	form.Set("chat_id", n.ChatID)
	form.Set("text", text)
	form.Set("parse_mode", "HTML")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.APIBase, n.BotToken)
	resp, err := n.client.PostForm(endpoint, form)
	if err != nil {
		n.logger.Error().Err(err).Msg("Telegram request failed")
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			n.logger.Warn().Err(err).Msg("failed to close Telegram response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		n.logger.Error().Int("status", resp.StatusCode).Msg("Telegram rejected message")
		return
	}

	n.logger.Info().Str("email", lead.Email).Msg("chat notification sent")
}
