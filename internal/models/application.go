package models

import "time"

// Stage identifies where an application sits in the hiring pipeline.
type Stage string

const (
	StageApplied   Stage = "applied"
	StageScreening Stage = "screening"
	StageInterview Stage = "interview"
	StageOffer     Stage = "offer"
	StageHired     Stage = "hired"
	StageRejected  Stage = "rejected"
)

// FunnelStages lists the progression stages in order. Rejected sits outside the funnel.
var FunnelStages = []Stage{StageApplied, StageScreening, StageInterview, StageOffer, StageHired}

// ApplicationStatus is the display label derived from the stage.
type ApplicationStatus string

const (
	ApplicationStatusHired         ApplicationStatus = "hired"
	ApplicationStatusOfferExtended ApplicationStatus = "offer_extended"
	ApplicationStatusRejected      ApplicationStatus = "rejected"
)

// Application joins a candidate to a job and carries its pipeline position.
type Application struct {
	ID              string            `db:"id" json:"id"`
	CandidateID     string            `db:"candidate_id" json:"candidate_id"`
	JobID           string            `db:"job_id" json:"job_id"`
	CurrentStage    Stage             `db:"current_stage" json:"current_stage"`
	Status          ApplicationStatus `db:"status" json:"status"`
	ApplicationDate time.Time         `db:"application_date" json:"application_date"`
	UpdatedAt       time.Time         `db:"updated_at" json:"updated_at"`

	// HiredAt is when the application last entered hired from another stage.
	// Snapshot loads fill it from stage history; it is nil otherwise.
	HiredAt *time.Time `db:"hired_at" json:"hired_at,omitempty"`
}

// StageChange records one persisted transition.
type StageChange struct {
	ID            string    `db:"id" json:"id"`
	ApplicationID string    `db:"application_id" json:"application_id"`
	FromStage     Stage     `db:"from_stage" json:"from_stage"`
	ToStage       Stage     `db:"to_stage" json:"to_stage"`
	ChangedAt     time.Time `db:"changed_at" json:"changed_at"`
}

// Interview is a scheduled conversation tied to an application.
type Interview struct {
	ID            string    `db:"id" json:"id"`
	ApplicationID string    `db:"application_id" json:"application_id"`
	ScheduledDate time.Time `db:"scheduled_date" json:"scheduled_date"`
	Status        string    `db:"status" json:"status"`
}
