package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

// SnapshotRepository reads the record store for report building. Each load
// runs in one read-only repeatable-read transaction so the four result sets
// describe the same moment.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs the repository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns applications submitted within [from, to], the candidates and
// interviews attached to them, and every job. Each application carries the
// latest history instant at which it entered hired.
func (r *SnapshotRepository) Load(ctx context.Context, from, to time.Time) (*models.Snapshot, error) {
	const (
		appsQuery = `SELECT ` + applicationColumns + `,
	(SELECT MAX(h.changed_at) FROM application_stage_history h
	 WHERE h.application_id = applications.id AND h.to_stage = 'hired' AND h.from_stage <> 'hired') AS hired_at
FROM applications WHERE application_date BETWEEN $1 AND $2
ORDER BY application_date ASC, id ASC`
		candidatesQuery = `SELECT c.id, c.first_name, c.last_name, c.email, COALESCE(c.source, '') AS source, c.created_at
FROM candidates c
WHERE c.id IN (SELECT candidate_id FROM applications WHERE application_date BETWEEN $1 AND $2)
ORDER BY c.created_at ASC, c.id ASC`
		jobsQuery = `SELECT id, title, COALESCE(department, '') AS department, COALESCE(location, '') AS location, status, created_at
FROM jobs ORDER BY created_at ASC, id ASC`
		interviewsQuery = `SELECT i.id, i.application_id, i.scheduled_date, i.status
FROM interviews i
JOIN applications a ON a.id = i.application_id
WHERE a.application_date BETWEEN $1 AND $2
ORDER BY i.scheduled_date ASC, i.id ASC`
	)

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	snap := &models.Snapshot{}
	if err := tx.SelectContext(ctx, &snap.Applications, appsQuery, from, to); err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	if err := tx.SelectContext(ctx, &snap.Candidates, candidatesQuery, from, to); err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	if err := tx.SelectContext(ctx, &snap.Jobs, jobsQuery); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	if err := tx.SelectContext(ctx, &snap.Interviews, interviewsQuery, from, to); err != nil {
		return nil, fmt.Errorf("load interviews: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return snap, nil
}
