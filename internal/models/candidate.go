package models

import "time"

// UnknownSource labels candidates without a recorded origin.
const UnknownSource = "Unknown"

// Candidate is a person who applied to one or more jobs.
type Candidate struct {
	ID        string    `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email"`
	Source    string    `db:"source" json:"source,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FullName joins first and last name.
func (c Candidate) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
