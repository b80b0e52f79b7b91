package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	"github.com/noah-isme/hiring-pipeline-api/pkg/database"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
)

const applicationColumns = `id, candidate_id, job_id, current_stage, COALESCE(status, '') AS status, application_date, updated_at`

// ApplicationRepository persists applications and their stage history.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs the repository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// FindByID loads a single application.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	var app models.Application
	if err := r.db.GetContext(ctx, &app, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("application %s not found", id))
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return &app, nil
}

// UpdateStage writes the transitioned application and appends the history
// entry in one transaction. The write only lands when the stored updated_at
// still equals expected, otherwise ErrConcurrentModification is returned.
func (r *ApplicationRepository) UpdateStage(ctx context.Context, app models.Application, expected time.Time, change *models.StageChange) error {
	const update = `UPDATE applications
SET current_stage = $1, status = NULLIF($2, ''), updated_at = $3
WHERE id = $4 AND updated_at = $5`
	const insertHistory = `INSERT INTO application_stage_history (id, application_id, from_stage, to_stage, changed_at)
VALUES ($1, $2, $3, $4, $5)`

	if change.ID == "" {
		change.ID = uuid.NewString()
	}

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, update, app.CurrentStage, app.Status, app.UpdatedAt, app.ID, expected)
		if err != nil {
			return fmt.Errorf("update application stage: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update application stage rows: %w", err)
		}
		if affected == 0 {
			return r.missOrConflict(ctx, tx, app.ID)
		}

		if _, err := tx.ExecContext(ctx, insertHistory, change.ID, change.ApplicationID, change.FromStage, change.ToStage, change.ChangedAt); err != nil {
			return fmt.Errorf("insert stage history: %w", err)
		}
		return nil
	})
}

func (r *ApplicationRepository) missOrConflict(ctx context.Context, tx *sqlx.Tx, id string) error {
	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM applications WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("check application exists: %w", err)
	}
	if !exists {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("application %s not found", id))
	}
	return appErrors.ErrConcurrentModification
}

// ListHistory returns the stage changes of an application, oldest first.
func (r *ApplicationRepository) ListHistory(ctx context.Context, applicationID string) ([]models.StageChange, error) {
	const query = `SELECT id, application_id, from_stage, to_stage, changed_at
FROM application_stage_history WHERE application_id = $1 ORDER BY changed_at ASC, id ASC`
	var changes []models.StageChange
	if err := r.db.SelectContext(ctx, &changes, query, applicationID); err != nil {
		return nil, fmt.Errorf("list stage history: %w", err)
	}
	return changes, nil
}
