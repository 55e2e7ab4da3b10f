package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/anjiri1684/quiz_backend/configs"
)

const brevoURL = "https://api.brevo.com/v3/smtp/email"

// Sender delivers one transactional email.
type Sender interface {
	Send(ctx context.Context, toName, toEmail, subject, htmlContent string) error
}

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
	URL         string
	Client      *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewSender returns a Brevo sender, or a NopSender when the settings lack
// the API key or the sender address.
func NewSender(s config.Settings) Sender {
	if s.BrevoAPIKey == "" || s.EmailSender == "" {
		log.Println("⚠️ Email service not configured. Missing API Key or Sender Email.")
		return NopSender{}
	}
	name := s.EmailSenderName
	if name == "" {
		name = s.AppName
	}
	log.Println("✅ Email service initialized successfully.")
	return &BrevoService{
		APIKey:      s.BrevoAPIKey,
		SenderEmail: s.EmailSender,
		SenderName:  name,
		URL:         brevoURL,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *BrevoService) Send(ctx context.Context, toName, toEmail, subject, htmlContent string) error {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return fmt.Errorf("invalid recipient email: %s", toEmail)
	}
	recipientName := toName
	if recipientName == "" {
		recipientName = toEmail[:strings.Index(toEmail, "@")]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      map[string]string{"name": s.SenderName, "email": s.SenderEmail},
		To:          []map[string]string{{"email": toEmail, "name": recipientName}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", s.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		log.Printf("Brevo API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return fmt.Errorf("failed to send email via Brevo: status %d", resp.StatusCode)
	}
	return nil
}

type NopSender struct{}

func (NopSender) Send(_ context.Context, _, toEmail, subject, _ string) error {
	log.Printf("Email client not configured, skipping %q to %s", subject, toEmail)
	return nil
}

// SendAsync fires the email in the background and only logs the outcome.
func SendAsync(sender Sender, toName, toEmail, subject, htmlContent string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := sender.Send(ctx, toName, toEmail, subject, htmlContent); err != nil {
			log.Printf("🔥 Failed to send email to %s: %v", toEmail, err)
			return
		}
		log.Printf("✅ Email sent successfully to %s", toEmail)
	}()
}

func WelcomeEmail(name string) (subject, body string) {
	return "Welcome to the Quiz App", fmt.Sprintf(
		"<h1>Welcome, %s!</h1><p>Your account is ready. Sign in and take your first quiz.</p>", html.EscapeString(name))
}

func ExpiredQuizEmail(userName, quizTitle string, finishedAt time.Time) (subject, body string) {
	return fmt.Sprintf("Quiz %q expired", quizTitle), fmt.Sprintf(
		"<h1>Hi %s,</h1><p>Your result for the quiz <b>%s</b> from %s has expired. Take the quiz again to refresh it.</p>",
		html.EscapeString(userName), html.EscapeString(quizTitle), finishedAt.Format("2006-01-02 15:04"))
}
