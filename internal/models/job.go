package models

import "time"

// JobStatus represents whether a posting accepts applications.
type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

// Job is an open or historical position.
type Job struct {
	ID         string    `db:"id" json:"id"`
	Title      string    `db:"title" json:"title"`
	Department string    `db:"department" json:"department"`
	Location   string    `db:"location" json:"location"`
	Status     JobStatus `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
