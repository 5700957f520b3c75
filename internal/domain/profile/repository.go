package profile

import (
	"context"

	"campushire/internal/common"
)

type StudentRepository interface {
	GetByID(ctx context.Context, id common.UUID) (*StudentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id common.UUID) (*CompanyProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
}
