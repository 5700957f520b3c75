package interview

import (
	"time"

	"campushire/internal/common"
)

type Type string

const (
	TypeTechnical       Type = "technical"
	TypeHR              Type = "hr"
	TypeManagerial      Type = "managerial"
	TypeGroupDiscussion Type = "group-discussion"
	TypeFinal           Type = "final"
)

type Mode string

const (
	ModeInPerson Mode = "in-person"
	ModeVideo    Mode = "video"
	ModePhone    Mode = "phone"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

type Result string

const (
	ResultSelected Result = "selected"
	ResultRejected Result = "rejected"
	ResultPending  Result = "pending"
)

const DefaultDurationMinutes = 60

type Interview struct {
	ID               common.UUID `json:"id"`
	ApplicationID    common.UUID `json:"application_id"`
	Type             Type        `json:"interview_type"`
	Mode             Mode        `json:"interview_mode"`
	ScheduledDate    time.Time   `json:"scheduled_date"`
	ScheduledTime    string      `json:"scheduled_time"`
	DurationMinutes  int         `json:"duration_minutes"`
	Location         string      `json:"location,omitempty"`
	MeetingLink      string      `json:"meeting_link,omitempty"`
	InterviewerName  string      `json:"interviewer_name,omitempty"`
	InterviewerEmail string      `json:"interviewer_email,omitempty"`
	InterviewerPhone string      `json:"interviewer_phone,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	Status           Status      `json:"status"`
	Feedback         string      `json:"feedback,omitempty"`
	Rating           int         `json:"rating,omitempty"`
	Result           Result      `json:"result"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
