// Package jobs implements the job tracking feature: owner-scoped CRUD over
// job applications, filtered and paginated listings, and the dashboard
// aggregates (status histogram and monthly application volume).
package jobs

import "time"

// Job statuses. A job starts out pending and moves to interview or declined.
const (
	StatusPending   = "pending"
	StatusInterview = "interview"
	StatusDeclined  = "declined"
)

// Job types.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeRemote     = "remote"
	JobTypeInternship = "internship"
)

// DefaultJobLocation is the placeholder location applied when none is given.
const DefaultJobLocation = "my city"

// Job represents a tracked job application. Every job belongs to exactly one
// user (CreatedBy); only that user may read, mutate or delete it.
type Job struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Status      string    `json:"status"`
	JobType     string    `json:"jobType"`
	JobLocation string    `json:"jobLocation"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
