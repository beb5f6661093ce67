package usecase

import (
	"context"

	"github.com/xavierca1/vault-leads/internal/entity"
)

// Intake variants, mirrored from config to keep this package free of
// infra imports.
const (
	IntakeModeAccount   = "account"
	IntakeModeSegmented = "segmented"
)

// IntakeInput is the raw public submission. Both historical form shapes
// decode into it; the active variant decides which fields matter.
type IntakeInput struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Company     string `json:"company"`
	AccountType string `json:"accountType"`
	LeadType    string `json:"leadType"`
	Vertical    string `json:"vertical"`
	Volume      string `json:"volume"`
	TicketSize  string `json:"ticketSize"`
	Stage       string `json:"stage"`
	Role        string `json:"role"`
	Source      string `json:"source"`

	// Honeypot. Hidden on the real form; bots fill it.
	Honeypot string `json:"hp"`
}

// LeadNotifier announces a captured lead to the outside world.
// Implementations are best-effort: the intake response never waits on
// them and never surfaces their failures.
type LeadNotifier interface {
	NotifyLeadCaptured(ctx context.Context, lead *entity.Lead) error
}
