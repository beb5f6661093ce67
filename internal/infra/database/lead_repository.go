package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/xavierca1/vault-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, email, full_name, phone, company,
		account_type, lead_type, vertical, volume, ticket_size, stage, role,
		source, created_at, approved_at`

// Upsert relies on the unique index on email: the datastore serializes
// concurrent inserts of the same address, no app-level locking. On
// conflict only mutable profile fields move; created_at and approved_at
// belong to the existing row.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, email, full_name, phone, company,
			account_type, lead_type, vertical, volume, ticket_size, stage, role,
			source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (email)
		DO UPDATE SET
			full_name   = EXCLUDED.full_name,
			phone       = COALESCE(EXCLUDED.phone, leads.phone),
			company     = COALESCE(EXCLUDED.company, leads.company),
			account_type = COALESCE(EXCLUDED.account_type, leads.account_type),
			lead_type   = COALESCE(EXCLUDED.lead_type, leads.lead_type),
			vertical    = COALESCE(EXCLUDED.vertical, leads.vertical),
			volume      = COALESCE(EXCLUDED.volume, leads.volume),
			ticket_size = COALESCE(EXCLUDED.ticket_size, leads.ticket_size),
			stage       = COALESCE(EXCLUDED.stage, leads.stage),
			role        = COALESCE(EXCLUDED.role, leads.role)
		RETURNING id, created_at, approved_at
	`

	var approvedAt sql.NullTime
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Email,
		nullString(lead.FullName),
		nullString(lead.Phone),
		nullString(lead.Company),
		nullString(lead.AccountType),
		nullString(lead.LeadType),
		nullString(lead.Vertical),
		nullString(lead.Volume),
		nullString(lead.TicketSize),
		nullString(lead.Stage),
		nullString(lead.Role),
		lead.Source,
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&approvedAt,
	)
	if err != nil {
		return mapPgError(err)
	}

	if approvedAt.Valid {
		t := approvedAt.Time
		lead.ApprovedAt = &t
	}
	return nil
}

// Find lists newest-first, capped by the filter limit. The free-text
// search spans email, name, company, phone and vertical; classification
// filters are exact matches.
func (r *LeadRepository) Find(ctx context.Context, filter entity.LeadFilter) ([]entity.Lead, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(
			email ILIKE $%d OR
			coalesce(full_name, '') ILIKE $%d OR
			coalesce(company, '') ILIKE $%d OR
			coalesce(phone, '') ILIKE $%d OR
			coalesce(vertical, '') ILIKE $%d
		)`, n, n, n, n, n))
	}
	if filter.AccountType != "" {
		args = append(args, filter.AccountType)
		conds = append(conds, fmt.Sprintf("account_type = $%d", len(args)))
	}
	if filter.LeadType != "" {
		args = append(args, filter.LeadType)
		conds = append(conds, fmt.Sprintf("lead_type = $%d", len(args)))
	}

	query := "SELECT " + leadColumns + " FROM leads"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

// SetApproval stamps or clears approved_at in one statement.
func (r *LeadRepository) SetApproval(ctx context.Context, email string, approve bool) (*entity.Lead, error) {
	query := `
		UPDATE leads
		SET approved_at = CASE WHEN $2 THEN NOW() ELSE NULL END
		WHERE lower(email) = lower($1)
		RETURNING email, approved_at
	`

	var (
		lead       entity.Lead
		approvedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, query, email, approve).Scan(&lead.Email, &approvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, mapPgError(err)
	}

	if approvedAt.Valid {
		t := approvedAt.Time
		lead.ApprovedAt = &t
	}
	return &lead, nil
}

func scanLead(rows *sql.Rows) (*entity.Lead, error) {
	var (
		lead entity.Lead

		fullName, phone, company     sql.NullString
		accountType, leadType        sql.NullString
		vertical, volume, ticketSize sql.NullString
		stage, role, source          sql.NullString
		approvedAt                   sql.NullTime
	)

	err := rows.Scan(
		&lead.ID,
		&lead.Email,
		&fullName,
		&phone,
		&company,
		&accountType,
		&leadType,
		&vertical,
		&volume,
		&ticketSize,
		&stage,
		&role,
		&source,
		&lead.CreatedAt,
		&approvedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.FullName = fullName.String
	lead.Phone = phone.String
	lead.Company = company.String
	lead.AccountType = accountType.String
	lead.LeadType = leadType.String
	lead.Vertical = vertical.String
	lead.Volume = volume.String
	lead.TicketSize = ticketSize.String
	lead.Stage = stage.String
	lead.Role = role.String
	lead.Source = source.String
	if approvedAt.Valid {
		t := approvedAt.Time
		lead.ApprovedAt = &t
	}
	return &lead, nil
}

// mapPgError translates constraint violations into domain sentinels.
func mapPgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return entity.ErrEmailAlreadyExists
		case "23502":
			return entity.ErrMissingField
		}
		log.Printf("❌ database error [%s]: %v", pqErr.Code, err)
	}
	return err
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
