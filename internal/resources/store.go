package resources

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store reads the resource index.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

const resourceColumns = `id, title, description, category, file_name, object_key, content_type, size_bytes, is_published, created_at`

// ListPublished returns published resources, newest first, optionally
// filtered by category.
func (s *Store) ListPublished(ctx context.Context, category string) ([]Resource, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = s.db.Query(ctx, `
			SELECT `+resourceColumns+` FROM resources
			WHERE is_published AND category = $1
			ORDER BY created_at DESC`, category)
	} else {
		rows, err = s.db.Query(ctx, `
			SELECT `+resourceColumns+` FROM resources
			WHERE is_published
			ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("resources: list: %w", err)
	}
	defer rows.Close()

	out := []Resource{}
	for rows.Next() {
		var res Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Description, &res.Category,
			&res.FileName, &res.ObjectKey, &res.ContentType, &res.SizeBytes,
			&res.IsPublished, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("resources: scan: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetPublished loads one published resource.
func (s *Store) GetPublished(ctx context.Context, id string) (*Resource, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+resourceColumns+` FROM resources
		WHERE id = $1 AND is_published`, id)

	var res Resource
	err := row.Scan(&res.ID, &res.Title, &res.Description, &res.Category,
		&res.FileName, &res.ObjectKey, &res.ContentType, &res.SizeBytes,
		&res.IsPublished, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("resources: get: %w", err)
	}
	return &res, nil
}
