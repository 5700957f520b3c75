package app

import (
	"context"
	"strings"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/job"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

// JobService is the job registry. The lifecycle engine depends on its
// accepting-applications and ownership predicates.
type JobService struct {
	repo      job.Repository
	companies profile.CompanyRepository
}

func NewJobService(repo job.Repository, companies profile.CompanyRepository) *JobService {
	return &JobService{repo: repo, companies: companies}
}

type JobInput struct {
	Title       string
	Description string
	Type        string
	Location    string
	WorkMode    string
	SalaryMin   int
	SalaryMax   int
	Skills      []string
	Openings    int
	Deadline    *time.Time
	Status      job.Status
}

func (s *JobService) Create(ctx context.Context, input JobInput, actor user.Actor) (*job.Job, error) {
	if actor.Role != user.RoleCompany && !actor.IsAdmin() {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	company, err := s.companies.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, common.NewValidationError("invalid job", map[string]string{"title": "title is required"})
	}
	status := input.Status
	if status == "" {
		status = job.StatusActive
	}
	switch status {
	case job.StatusActive, job.StatusClosed, job.StatusDraft:
	default:
		return nil, common.NewValidationError("invalid job", map[string]string{"status": "status must be active, closed, or draft"})
	}
	return s.repo.Create(ctx, job.Job{
		CompanyID:   company.ID,
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		WorkMode:    input.WorkMode,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Skills:      input.Skills,
		Openings:    input.Openings,
		Deadline:    input.Deadline,
		Status:      status,
	})
}

func (s *JobService) Update(ctx context.Context, id common.UUID, input JobInput, actor user.Actor) (*job.Job, error) {
	posting, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	posting.Title = input.Title
	posting.Description = input.Description
	posting.Type = input.Type
	posting.Location = input.Location
	posting.WorkMode = input.WorkMode
	posting.SalaryMin = input.SalaryMin
	posting.SalaryMax = input.SalaryMax
	posting.Skills = input.Skills
	posting.Openings = input.Openings
	posting.Deadline = input.Deadline
	if input.Status != "" {
		posting.Status = input.Status
	}
	return s.repo.Update(ctx, *posting)
}

func (s *JobService) UpdateStatus(ctx context.Context, id common.UUID, status job.Status, actor user.Actor) (*job.Job, error) {
	switch status {
	case job.StatusActive, job.StatusClosed, job.StatusDraft:
	default:
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be active, closed, or draft"})
	}
	posting, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	posting.Status = status
	return s.repo.Update(ctx, *posting)
}

func (s *JobService) Delete(ctx context.Context, id common.UUID, actor user.Actor) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *JobService) ListByCompany(ctx context.Context, actor user.Actor) ([]job.Job, error) {
	company, err := s.companies.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, company.ID)
}

// IsAcceptingApplications gates application submission: the job is active
// and the deadline, if any, has not passed.
func (s *JobService) IsAcceptingApplications(ctx context.Context, id common.UUID) (bool, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return posting.AcceptingApplications(time.Now()), nil
}

func (s *JobService) BelongsTo(ctx context.Context, id, companyID common.UUID) (bool, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return posting.BelongsTo(companyID), nil
}

func (s *JobService) authorize(ctx context.Context, id common.UUID, actor user.Actor) (*job.Job, error) {
	posting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsAdmin() {
		return posting, nil
	}
	if actor.Role != user.RoleCompany {
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	company, err := s.companies.GetByUserID(ctx, actor.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeForbidden, "company profile not found", err)
		}
		return nil, err
	}
	if !posting.BelongsTo(company.ID) {
		return nil, common.NewError(common.CodeForbidden, "job belongs to another company", nil)
	}
	return posting, nil
}
