package profile

import (
	"time"

	"campushire/internal/common"
)

type StudentProfile struct {
	ID         common.UUID `json:"id"`
	UserID     common.UUID `json:"user_id"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	College    string      `json:"college,omitempty"`
	Degree     string      `json:"degree,omitempty"`
	ResumePath string      `json:"resume_path,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (p StudentProfile) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CompanyProfile struct {
	ID        common.UUID `json:"id"`
	UserID    common.UUID `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Industry  string      `json:"industry,omitempty"`
	City      string      `json:"city,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
