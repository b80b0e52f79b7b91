package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

func TestSnapshotRepositoryLoad(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewSnapshotRepository(db)
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)
	applied := from.Add(10 * time.Hour)
	hired := applied.AddDate(0, 0, 10)
	columns := append(append([]string{}, applicationRowColumns...), "hired_at")

	mock.ExpectBegin()
	mock.ExpectQuery(`to_stage = 'hired' AND h.from_stage <> 'hired'\) AS hired_at\s+FROM applications WHERE application_date BETWEEN`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("app-1", "cand-1", "job-1", "applied", "", applied, applied, nil).
			AddRow("app-2", "cand-1", "job-1", "hired", "hired", applied, hired.AddDate(0, 0, 30), hired))
	mock.ExpectQuery("FROM candidates c").WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "source", "created_at"}).
			AddRow("cand-1", "Ada", "Lovelace", "ada@example.com", "", applied))
	mock.ExpectQuery("FROM jobs").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "department", "location", "status", "created_at"}).
			AddRow("job-1", "Backend Engineer", "Engineering", "Remote", "active", from))
	mock.ExpectQuery("FROM interviews i").WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "scheduled_date", "status"}))
	mock.ExpectCommit()

	snap, err := repo.Load(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, snap.Applications, 2)
	assert.Equal(t, models.Stage("applied"), snap.Applications[0].CurrentStage)
	assert.Nil(t, snap.Applications[0].HiredAt)
	require.NotNil(t, snap.Applications[1].HiredAt)
	assert.True(t, hired.Equal(*snap.Applications[1].HiredAt))
	assert.Empty(t, snap.Candidates[0].Source)
	assert.Equal(t, "Backend Engineer", snap.Jobs[0].Title)
	assert.Empty(t, snap.Interviews)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepositoryLoadFailure(t *testing.T) {
	db, mock := newRepoMock(t)
	repo := NewSnapshotRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM applications").WillReturnError(errors.New("timeout"))
	mock.ExpectRollback()

	_, err := repo.Load(context.Background(), time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load applications")
	assert.NoError(t, mock.ExpectationsWereMet())
}
