package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"asn2ip/internal/models"
)

const runColumns = `id, organization, status, asn_count, prefix_count, created_at`

// InsertRun stores the summary of a finished run.
func (d *DB) InsertRun(ctx context.Context, run *models.RunSummary) error {
	query := `
		INSERT INTO runs (id, organization, status, asn_count, prefix_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := d.Pool.Exec(ctx, query,
		run.ID, run.Organization, run.Status, run.ASNCount, run.PrefixCount, run.CreatedAt)
	return err
}

// GetRun retrieves a run summary by ID.
func (d *DB) GetRun(ctx context.Context, id uuid.UUID) (*models.RunSummary, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = $1`

	var run models.RunSummary
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.Organization, &run.Status, &run.ASNCount, &run.PrefixCount, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRecentRuns returns the newest runs first.
func (d *DB) ListRecentRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC LIMIT $1`

	rows, err := d.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.RunSummary
	for rows.Next() {
		var run models.RunSummary
		if err := rows.Scan(
			&run.ID, &run.Organization, &run.Status, &run.ASNCount, &run.PrefixCount, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountRunsByStatus returns how many runs finished with each status.
func (d *DB) CountRunsByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM runs GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// DeleteRunsBefore removes runs recorded before cutoff and returns how many
// were deleted.
func (d *DB) DeleteRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM runs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
