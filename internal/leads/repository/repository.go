package repository

import (
	"context"
	"errors"
	"fmt"

	"advisory_portal_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, name, email, phone, company, message, source, consent,
	assessment_kind, assessment_version, assessment_summary, metadata, created_at`

// Repo implements LeadsRepository with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements LeadsRepository.
var _ LeadsRepository = (*Repo)(nil)

// Create inserts a lead and returns the stored row.
func (r *Repo) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	metadata := params.Metadata
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}

	query := `
		INSERT INTO leads (id, name, email, phone, company, message, source, consent,
			assessment_kind, assessment_version, assessment_summary, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query,
		params.ID, params.Name, params.Email, params.Phone, params.Company, params.Message,
		params.Source, params.Consent, params.AssessmentKind, params.AssessmentVersion,
		params.AssessmentSummary, metadata,
	))
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List returns one page of leads, newest first, and the total matching count.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var kindParam any
	if params.Kind != "" {
		kindParam = params.Kind
	}
	var searchParam any
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}

	where := `
		WHERE ($1::text IS NULL OR assessment_kind = $1)
		AND ($2::text IS NULL OR name ILIKE $2 OR email ILIKE $2 OR company ILIKE $2)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+where, kindParam, searchParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := `SELECT ` + leadColumns + ` FROM leads` + where + `
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, kindParam, searchParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := make([]Lead, 0, params.Limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		items = append(items, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}
	return items, total, nil
}

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Message, &l.Source, &l.Consent,
		&l.AssessmentKind, &l.AssessmentVersion, &l.AssessmentSummary, &l.Metadata, &l.CreatedAt,
	)
	return l, err
}
