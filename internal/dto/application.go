package dto

import (
	"time"

	"github.com/noah-isme/hiring-pipeline-api/internal/models"
)

// StageTransitionRequest captures PATCH /applications/:id/stage. When
// ExpectedUpdatedAt is set the move is rejected if the application changed
// since the caller read it.
type StageTransitionRequest struct {
	Stage             string     `json:"stage" validate:"required,max=32"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// StageTransitionResponse returns the updated application with its new history entry.
type StageTransitionResponse struct {
	Application models.Application `json:"application"`
	Change      models.StageChange `json:"change"`
}
