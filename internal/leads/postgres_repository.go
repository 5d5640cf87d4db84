package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by pgx.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const leadColumns = `id, kind, full_name, email, phone, company, subject, message, resume_url, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	var createdAt time.Time
	err := r.db.QueryRow(ctx, `
		INSERT INTO leads (id, kind, full_name, email, phone, company, subject, message, resume_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		id, req.Kind, req.FullName, req.Email, req.Phone,
		req.Company, req.Subject, req.Message, req.ResumeURL,
	).Scan(&createdAt)
	if err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &Lead{
		ID:        id.String(),
		Kind:      req.Kind,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Subject:   req.Subject,
		Message:   req.Message,
		ResumeURL: req.ResumeURL,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a single lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	row := r.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	var lead Lead
	err := row.Scan(&lead.ID, &lead.Kind, &lead.FullName, &lead.Email, &lead.Phone,
		&lead.Company, &lead.Subject, &lead.Message, &lead.ResumeURL, &lead.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}
	return &lead, nil
}

// List returns leads newest first, optionally filtered by kind.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Lead, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		rows pgx.Rows
		err  error
	)
	if filter.Kind != "" {
		rows, err = r.db.Query(ctx, `
			SELECT `+leadColumns+` FROM leads
			WHERE kind = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			filter.Kind, limit, offset)
	} else {
		rows, err = r.db.Query(ctx, `
			SELECT `+leadColumns+` FROM leads
			ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("leads: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Lead{}
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.Kind, &lead.FullName, &lead.Email, &lead.Phone,
			&lead.Company, &lead.Subject, &lead.Message, &lead.ResumeURL, &lead.CreatedAt); err != nil {
			return nil, fmt.Errorf("leads: scan failed: %w", err)
		}
		out = append(out, &lead)
	}
	return out, rows.Err()
}
