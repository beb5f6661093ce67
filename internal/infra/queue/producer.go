package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/vault-leads/internal/entity"
)

// LeadCapturedPayload is the wire shape of a lead.captured event.
type LeadCapturedPayload struct {
	LeadID      string `json:"lead_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	AccountType string `json:"account_type,omitempty"`
	LeadType    string `json:"lead_type,omitempty"`
	Vertical    string `json:"vertical,omitempty"`
	Volume      string `json:"volume,omitempty"`
	TicketSize  string `json:"ticket_size,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Role        string `json:"role,omitempty"`
	Source      string `json:"source,omitempty"`
	CapturedAt  string `json:"captured_at"`
}

type Producer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *Producer {
	return &Producer{Conn: conn, Ch: ch}
}

// NotifyLeadCaptured satisfies usecase.LeadNotifier: the intake path
// publishes the event and the worker fans it out to Slack and email.
func (p *Producer) NotifyLeadCaptured(ctx context.Context, lead *entity.Lead) error {
	return p.PublishLeadCaptured(ctx, payloadFromLead(lead))
}

func (p *Producer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publish lead.captured: %w", err)
	}

	return nil
}

func payloadFromLead(lead *entity.Lead) LeadCapturedPayload {
	return LeadCapturedPayload{
		LeadID:      lead.ID,
		Email:       lead.Email,
		FullName:    lead.FullName,
		Phone:       lead.Phone,
		Company:     lead.Company,
		AccountType: lead.AccountType,
		LeadType:    lead.LeadType,
		Vertical:    lead.Vertical,
		Volume:      lead.Volume,
		TicketSize:  lead.TicketSize,
		Stage:       lead.Stage,
		Role:        lead.Role,
		Source:      lead.Source,
		CapturedAt:  lead.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (p LeadCapturedPayload) toLead() *entity.Lead {
	lead := &entity.Lead{
		ID:          p.LeadID,
		Email:       p.Email,
		FullName:    p.FullName,
		Phone:       p.Phone,
		Company:     p.Company,
		AccountType: p.AccountType,
		LeadType:    p.LeadType,
		Vertical:    p.Vertical,
		Volume:      p.Volume,
		TicketSize:  p.TicketSize,
		Stage:       p.Stage,
		Role:        p.Role,
		Source:      p.Source,
	}
	if t, err := time.Parse(time.RFC3339, p.CapturedAt); err == nil {
		lead.CreatedAt = t
	}
	return lead
}
