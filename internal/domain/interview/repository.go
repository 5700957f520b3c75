package interview

import (
	"context"

	"campushire/internal/common"
)

type Filter struct {
	Status Status
	Type   Type
	Limit  int
	Offset int
}

type Feedback struct {
	Feedback string
	Rating   int
	Result   Result
}

type Repository interface {
	Create(ctx context.Context, iv Interview) (*Interview, error)
	GetByID(ctx context.Context, id common.UUID) (*Interview, error)
	Update(ctx context.Context, iv Interview) (*Interview, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) error
	SetFeedback(ctx context.Context, id common.UUID, fb Feedback) (*Interview, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByApplication(ctx context.Context, applicationID common.UUID) ([]Interview, error)
	ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]Interview, error)
	ListByCompany(ctx context.Context, companyID common.UUID, filter Filter) ([]Interview, error)
	ListAll(ctx context.Context, filter Filter) ([]Interview, error)
	ListUpcoming(ctx context.Context, studentID, companyID *common.UUID, limit, offset int) ([]Interview, error)
}
