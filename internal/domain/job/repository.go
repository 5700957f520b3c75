package job

import (
	"context"

	"campushire/internal/common"
)

type Repository interface {
	Create(ctx context.Context, j Job) (*Job, error)
	Update(ctx context.Context, j Job) (*Job, error)
	GetByID(ctx context.Context, id common.UUID) (*Job, error)
	Delete(ctx context.Context, id common.UUID) error
	ListActive(ctx context.Context, limit, offset int) ([]Job, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Job, error)
}
