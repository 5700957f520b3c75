package application

import (
	"context"

	"campushire/internal/common"
)

// Filter narrows listing queries. Zero values mean no constraint.
type Filter struct {
	Status    Status
	JobID     common.UUID
	StudentID common.UUID
	Limit     int
	Offset    int
}

type StatusUpdate struct {
	Status     Status
	ReviewedBy common.UUID
	Notes      string
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, update StatusUpdate) (*Application, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]Application, error)
	ListByJob(ctx context.Context, jobID common.UUID, limit, offset int) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID, filter Filter) ([]Application, error)
	ListAll(ctx context.Context, filter Filter) ([]Application, error)
	Stats(ctx context.Context, studentID, companyID *common.UUID) (*Stats, error)
}
