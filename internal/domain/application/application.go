package application

import (
	"time"

	"campushire/internal/common"
)

type Status string

const (
	StatusPending            Status = "pending"
	StatusShortlisted        Status = "shortlisted"
	StatusInterviewScheduled Status = "interview-scheduled"
	StatusSelected           Status = "selected"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

// IsTerminal reports whether no further transition is permitted out of the
// status.
func (s Status) IsTerminal() bool {
	return s == StatusSelected || s == StatusRejected || s == StatusWithdrawn
}

func (s Status) IsKnown() bool {
	switch s {
	case StatusPending, StatusShortlisted, StatusInterviewScheduled, StatusSelected, StatusRejected, StatusWithdrawn:
		return true
	default:
		return false
	}
}

type Application struct {
	ID          common.UUID  `json:"id"`
	JobID       common.UUID  `json:"job_id"`
	StudentID   common.UUID  `json:"student_id"`
	CoverLetter string       `json:"cover_letter,omitempty"`
	ResumePath  string       `json:"resume_path,omitempty"`
	Status      Status       `json:"status"`
	ReviewedBy  *common.UUID `json:"reviewed_by,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	AppliedAt   time.Time    `json:"applied_at"`
	ReviewedAt  *time.Time   `json:"reviewed_at,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Stats is a snapshot of per-status counts; an application occupies exactly
// one bucket at query time.
type Stats struct {
	Total              int `json:"total"`
	Pending            int `json:"pending"`
	Shortlisted        int `json:"shortlisted"`
	InterviewScheduled int `json:"interview_scheduled"`
	Selected           int `json:"selected"`
	Rejected           int `json:"rejected"`
	Withdrawn          int `json:"withdrawn"`
}
