package app

import (
	"context"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/job"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

// accessPolicy is the single place where actor capabilities are decided.
// Every mutator in the lifecycle engine and the scheduler goes through it.
type accessPolicy struct {
	students  profile.StudentRepository
	companies profile.CompanyRepository
}

// requireJobOwnership allows admins, and company representatives whose
// company owns the job.
func (p accessPolicy) requireJobOwnership(ctx context.Context, actor user.Actor, j job.Job) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role != user.RoleCompany {
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	company, err := p.companies.GetByUserID(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewError(common.CodeForbidden, "company profile not found", err)
		}
		return err
	}
	if !j.BelongsTo(company.ID) {
		return common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	return nil
}

// requireApplicationOwnership resolves the actor's student profile and
// checks it owns the application.
func (p accessPolicy) requireApplicationOwnership(ctx context.Context, actor user.Actor, app application.Application) (*profile.StudentProfile, error) {
	if actor.Role != user.RoleStudent {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	student, err := p.students.GetByUserID(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "student profile not found", err)
		}
		return nil, err
	}
	if app.StudentID != student.ID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another student", nil)
	}
	return student, nil
}

func (p accessPolicy) companyOf(ctx context.Context, actor user.Actor) (*profile.CompanyProfile, error) {
	company, err := p.companies.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (p accessPolicy) studentOf(ctx context.Context, actor user.Actor) (*profile.StudentProfile, error) {
	student, err := p.students.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return student, nil
}

func requireAdmin(actor user.Actor) error {
	if !actor.IsAdmin() {
		return common.NewError(common.CodeForbidden, "admin role required", nil)
	}
	return nil
}
