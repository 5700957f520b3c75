package job

import (
	"time"

	"campushire/internal/common"
)

type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

type Job struct {
	ID          common.UUID `json:"id"`
	CompanyID   common.UUID `json:"company_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Location    string      `json:"location"`
	WorkMode    string      `json:"work_mode,omitempty"`
	SalaryMin   int         `json:"salary_min,omitempty"`
	SalaryMax   int         `json:"salary_max,omitempty"`
	Skills      []string    `json:"skills"`
	Openings    int         `json:"openings"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// AcceptingApplications reports whether a submission against this job is
// allowed at the given instant: the posting is active and the deadline, if
// set, has not passed (deadline day inclusive).
func (j Job) AcceptingApplications(now time.Time) bool {
	if j.Status != StatusActive {
		return false
	}
	if j.Deadline == nil {
		return true
	}
	today := now.UTC().Truncate(24 * time.Hour)
	deadline := j.Deadline.UTC().Truncate(24 * time.Hour)
	return !deadline.Before(today)
}

func (j Job) BelongsTo(companyID common.UUID) bool {
	return j.CompanyID == companyID
}
