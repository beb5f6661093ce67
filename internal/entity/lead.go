package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrMissingField       = errors.New("missing required field")
)

// Account types (account intake variant).
const (
	AccountTypeIndividual  = "individual"
	AccountTypePrivateCorp = "private_corp"
	AccountTypeGovernment  = "government"
)

// Lead types (segmented intake variant).
const (
	LeadTypeCustomer = "customer"
	LeadTypeInvestor = "investor"
	LeadTypeCareer   = "career"
)

const DefaultSource = "modal"

// Lead is a prospective-contact record captured from the public form.
// Empty string fields are stored as NULL. ApprovedAt nil = pending.
type Lead struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Company     string     `json:"company,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	LeadType    string     `json:"lead_type,omitempty"`
	Vertical    string     `json:"vertical,omitempty"`
	Volume      string     `json:"volume,omitempty"`
	TicketSize  string     `json:"ticket_size,omitempty"`
	Stage       string     `json:"stage,omitempty"`
	Role        string     `json:"role,omitempty"`
	Source      string     `json:"source,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

// Factory
func NewLead(email string) *Lead {
	return &Lead{
		ID:     uuid.New().String(),
		Email:  email,
		Source: DefaultSource,
	}
}

func (l *Lead) Approved() bool {
	return l.ApprovedAt != nil
}

// LeadFilter narrows a listing. Empty fields are ignored.
// Limit must already be clamped by the caller.
type LeadFilter struct {
	Search      string
	AccountType string
	LeadType    string
	Limit       int
}

type LeadRepositoryInterface interface {
	// Upsert inserts a new lead keyed by email or, on conflict, refreshes
	// the mutable profile fields. created_at and approved_at are never
	// touched on update. The stored id/created_at/approved_at are scanned
	// back into the given lead.
	Upsert(ctx context.Context, lead *Lead) error

	// Find returns matching leads ordered newest-first.
	Find(ctx context.Context, filter LeadFilter) ([]Lead, error)

	// SetApproval stamps approved_at (approve) or clears it (revoke).
	// Returns ErrLeadNotFound when no row matches the email.
	SetApproval(ctx context.Context, email string, approve bool) (*Lead, error)
}
