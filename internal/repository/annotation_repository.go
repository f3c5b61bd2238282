package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// AnnotationRepository persists encoded trip annotations keyed by fingerprint
type AnnotationRepository struct {
	db *sql.DB
}

// NewAnnotationRepository creates a new annotation repository
func NewAnnotationRepository(db *sql.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

// Get retrieves the payload stored under fingerprint
func (r *AnnotationRepository) Get(ctx context.Context, fingerprint string) ([]byte, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT payload FROM trip_annotations WHERE fingerprint = ?", fingerprint,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get annotation: %w", err)
	}
	return payload, true, nil
}

// Set inserts or replaces the payload stored under fingerprint
func (r *AnnotationRepository) Set(ctx context.Context, fingerprint string, payload []byte) error {
	query := `INSERT INTO trip_annotations (fingerprint, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(fingerprint) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, fingerprint, payload); err != nil {
		return fmt.Errorf("failed to save annotation: %w", err)
	}
	return nil
}

// All retrieves every stored payload keyed by fingerprint
func (r *AnnotationRepository) All(ctx context.Context) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT fingerprint, payload FROM trip_annotations")
	if err != nil {
		return nil, fmt.Errorf("failed to query annotations: %w", err)
	}
	defer rows.Close()

	entries := make(map[string][]byte)
	for rows.Next() {
		var fingerprint string
		var payload []byte
		if err := rows.Scan(&fingerprint, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan annotation: %w", err)
		}
		entries[fingerprint] = payload
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate annotations: %w", err)
	}
	return entries, nil
}
