package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const resendBaseURL = "https://api.resend.com"

// Mailer sends transactional email through the Resend HTTP API. Sends are
// best-effort: callers log failures and never roll back committed state.
type Mailer struct {
	HTTP *http.Client
}

func NewMailer() *Mailer {
	return &Mailer{HTTP: &http.Client{Timeout: 15 * time.Second}}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type emailResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Send delivers one HTML email to the given recipient.
func (m *Mailer) Send(to, subject, html string) error {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not set")
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "HopeRise Foundation <no-reply@hoperise.org>"
	}
	baseURL := os.Getenv("RESEND_BASE_URL")
	if baseURL == "" {
		baseURL = resendBaseURL
	}

	body, err := json.Marshal(emailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(baseURL, "/")+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendReceiptEmail sends the donation confirmation with the receipt number.
func (m *Mailer) SendReceiptEmail(to, donorName, receiptNumber string, amount float64, currency string) error {
	subject := fmt.Sprintf("Thank you for your donation - receipt %s", receiptNumber)
	html := fmt.Sprintf(
		"<p>Dear %s,</p><p>Thank you for your generous donation of %s %.2f.</p><p>Your receipt number is <strong>%s</strong>.</p><p>HopeRise Foundation</p>",
		donorName, currency, amount, receiptNumber,
	)
	return m.Send(to, subject, html)
}
