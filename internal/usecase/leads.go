package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/vault-leads/internal/entity"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// ListInput carries the admin view filters. Category is matched exactly
// against the classification column of the active intake variant.
type ListInput struct {
	Search      string
	AccountType string
	LeadType    string
	Limit       int
}

// LeadRow is the stable JSON shape the admin view consumes. Timestamps
// are ISO-8601 strings, absent optionals are nulls.
type LeadRow struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Company     *string `json:"company"`
	AccountType *string `json:"account_type"`
	LeadType    *string `json:"lead_type"`
	Vertical    *string `json:"vertical"`
	Volume      *string `json:"volume"`
	TicketSize  *string `json:"ticket_size"`
	Stage       *string `json:"stage"`
	Role        *string `json:"role"`
	Source      *string `json:"source"`
	CreatedAt   string  `json:"created_at"`
	ApprovedAt  *string `json:"approved_at"`
}

// ApprovalRow is the approve/revoke response payload.
type ApprovalRow struct {
	Email      string  `json:"email"`
	ApprovedAt *string `json:"approved_at"`
}

type LeadAdminUseCase struct {
	Repo entity.LeadRepositoryInterface
}

func NewLeadAdminUseCase(repo entity.LeadRepositoryInterface) *LeadAdminUseCase {
	return &LeadAdminUseCase{Repo: repo}
}

func (uc *LeadAdminUseCase) List(ctx context.Context, in ListInput) ([]LeadRow, error) {
	filter := entity.LeadFilter{
		Search:      strings.TrimSpace(in.Search),
		AccountType: normalizeCategory(in.AccountType),
		LeadType:    normalizeCategory(in.LeadType),
		Limit:       ClampLimit(in.Limit),
	}

	leads, err := uc.Repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]LeadRow, 0, len(leads))
	for i := range leads {
		rows = append(rows, toLeadRow(&leads[i]))
	}
	return rows, nil
}

// SetApproval toggles the moderation state. Idempotent: approving again
// refreshes the timestamp, revoking a pending lead stays a no-op success.
func (uc *LeadAdminUseCase) SetApproval(ctx context.Context, email string, approve bool) (*ApprovalRow, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewValidationError("Email is required.")
	}

	lead, err := uc.Repo.SetApproval(ctx, email, approve)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, NewNotFoundError("Email not found.")
		}
		return nil, err
	}

	return &ApprovalRow{
		Email:      lead.Email,
		ApprovedAt: isoTimePtr(lead.ApprovedAt),
	}, nil
}

// ClampLimit keeps limit inside [1, 500], defaulting to 100.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// "all" means no filter, same as blank.
func normalizeCategory(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "all" {
		return ""
	}
	return v
}

func toLeadRow(l *entity.Lead) LeadRow {
	return LeadRow{
		ID:          l.ID,
		Email:       l.Email,
		FullName:    optString(l.FullName),
		Phone:       optString(l.Phone),
		Company:     optString(l.Company),
		AccountType: optString(l.AccountType),
		LeadType:    optString(l.LeadType),
		Vertical:    optString(l.Vertical),
		Volume:      optString(l.Volume),
		TicketSize:  optString(l.TicketSize),
		Stage:       optString(l.Stage),
		Role:        optString(l.Role),
		Source:      optString(l.Source),
		CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
		ApprovedAt:  isoTimePtr(l.ApprovedAt),
	}
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isoTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
