// Package notify delivers best-effort lead announcements to an
// operator-facing Slack webhook. Failures are logged and counted,
// never surfaced to the submitting client.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/xavierca1/vault-leads/internal/entity"
	"github.com/xavierca1/vault-leads/internal/infra/http/middleware"
)

type SlackNotifier struct {
	webhookURL string
	adminURL   string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
}

// NewSlackNotifier wraps the webhook in a circuit breaker so a dead
// Slack endpoint stops consuming goroutines after a few failures.
func NewSlackNotifier(webhookURL, adminURL string) *SlackNotifier {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "slack-webhook",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &SlackNotifier{
		webhookURL: webhookURL,
		adminURL:   adminURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cb:         cb,
	}
}

func (n *SlackNotifier) NotifyLeadCaptured(ctx context.Context, lead *entity.Lead) error {
	if n.webhookURL == "" {
		log.Println("⚠️ slack: webhook URL not configured")
		return fmt.Errorf("slack not configured")
	}

	payload, err := json.Marshal(n.buildMessage(lead))
	if err != nil {
		return err
	}

	_, err = n.cb.Execute(func() (any, error) {
		return nil, n.post(ctx, payload)
	})
	if err != nil {
		middleware.RecordNotifierError("slack")
		return err
	}

	log.Printf("✅ slack: lead announced (%s)", lead.Email)
	return nil
}

func (n *SlackNotifier) post(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// buildMessage renders the Block Kit card: header with a per-type emoji,
// a detail section, and a button into the admin view when configured.
func (n *SlackNotifier) buildMessage(lead *entity.Lead) map[string]any {
	category := lead.LeadType
	if category == "" {
		category = lead.AccountType
	}

	emoji := "👤"
	switch lead.LeadType {
	case entity.LeadTypeCustomer:
		emoji = "🏢"
	case entity.LeadTypeInvestor:
		emoji = "💰"
	}

	text := fmt.Sprintf("*%s* • %s", lead.FullName, lead.Email)
	if lead.Company != "" {
		text += fmt.Sprintf("\n*Company:* %s", lead.Company)
	}
	if details := leadDetails(lead); details != "" {
		text += "\n\n" + details
	}

	blocks := []map[string]any{
		{
			"type": "header",
			"text": map[string]any{
				"type": "plain_text",
				"text": fmt.Sprintf("%s New %s Lead", emoji, strings.ToUpper(category)),
			},
		},
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": text,
			},
		},
	}

	if n.adminURL != "" {
		blocks = append(blocks, map[string]any{
			"type": "actions",
			"elements": []map[string]any{
				{
					"type":  "button",
					"text":  map[string]any{"type": "plain_text", "text": "View in Admin"},
					"url":   n.adminURL,
					"style": "primary",
				},
			},
		})
	}

	return map[string]any{"blocks": blocks}
}

func leadDetails(lead *entity.Lead) string {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	switch lead.LeadType {
	case entity.LeadTypeCustomer:
		return fmt.Sprintf("• *Vertical:* %s\n• *Volume:* %s", orNA(lead.Vertical), orNA(lead.Volume))
	case entity.LeadTypeInvestor:
		return fmt.Sprintf("• *Stage:* %s\n• *Ticket:* %s", orNA(lead.Stage), orNA(lead.TicketSize))
	case entity.LeadTypeCareer:
		return fmt.Sprintf("• *Role:* %s", orNA(lead.Role))
	}

	if lead.Phone != "" {
		return fmt.Sprintf("• *Phone:* %s\n• *Account type:* %s", lead.Phone, orNA(lead.AccountType))
	}
	return ""
}
