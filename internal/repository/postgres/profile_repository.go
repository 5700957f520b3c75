package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campushire/internal/common"
	"campushire/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

const studentColumns = `id, user_id, first_name, last_name, email, phone, college, degree, resume_path, created_at, updated_at`

func (r *StudentProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
	return scanStudent(row)
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID)
	return scanStudent(row)
}

func scanStudent(row rowScanner) (*profile.StudentProfile, error) {
	var p profile.StudentProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.College, &p.Degree, &p.ResumePath, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load student profile", err)
	}
	return &p, nil
}

type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

const companyColumns = `id, user_id, company_name, email, industry, city, created_at, updated_at`

func (r *CompanyProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE user_id = $1`, userID)
	return scanCompany(row)
}

func scanCompany(row rowScanner) (*profile.CompanyProfile, error) {
	var p profile.CompanyProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.Industry, &p.City, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company profile", err)
	}
	return &p, nil
}
