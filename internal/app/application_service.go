package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/job"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
	"campushire/internal/notify"
)

// ApplicationService is the application lifecycle engine: it owns the
// status state machine, the one-application-per-(job, student) invariant,
// and the notifications that status changes trigger.
type ApplicationService struct {
	repo     application.Repository
	jobs     job.Repository
	notifier notify.Gateway
	logger   zerolog.Logger
	access   accessPolicy
}

func NewApplicationService(repo application.Repository, jobs job.Repository, students profile.StudentRepository, companies profile.CompanyRepository, notifier notify.Gateway, logger zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		jobs:     jobs,
		notifier: notifier,
		logger:   logger,
		access:   accessPolicy{students: students, companies: companies},
	}
}

// Submit creates a pending application for the actor's student profile.
// The resume reference defaults to the student's on-file resume unless an
// upload accompanied the request.
func (s *ApplicationService) Submit(ctx context.Context, actor user.Actor, jobID common.UUID, coverLetter, resumePath string) (*application.Application, error) {
	student, err := s.access.studentOf(ctx, actor)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeNotFound, "student profile not found", err)
		}
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !posting.AcceptingApplications(time.Now()) {
		return nil, common.NewError(common.CodeInvalidState, "job is not accepting applications", nil)
	}
	if _, err := s.repo.FindByJobAndStudent(ctx, jobID, student.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied for this job", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if strings.TrimSpace(resumePath) == "" {
		resumePath = student.ResumePath
	}
	created, err := s.repo.Create(ctx, application.Application{
		JobID:       jobID,
		StudentID:   student.ID,
		CoverLetter: coverLetter,
		ResumePath:  resumePath,
		Status:      application.StatusPending,
	})
	if err != nil {
		return nil, err
	}
	s.send(ctx, notify.Message{
		Channels: []notify.Channel{notify.ChannelEmail},
		Kind:     notify.KindApplicationConfirmation,
		Email:    student.Email,
		Payload: map[string]string{
			"student_name": student.FullName(),
			"job_title":    posting.Title,
		},
	})
	return created, nil
}

// UpdateStatus applies a reviewer decision. The actor must be an admin or a
// representative of the company owning the job.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id common.UUID, status application.Status, actor user.Actor, notes string) (*application.Application, error) {
	status = application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.IsKnown() {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, shortlisted, interview-scheduled, selected, rejected, or withdrawn"})
	}
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.access.requireJobOwnership(ctx, actor, *posting); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, app, status, actor.ID, notes, causeReview)
}

// Withdraw moves the application to withdrawn. Only the owning student may
// withdraw; the withdrawing student is recorded as the reviewer, matching
// the legacy data shape.
func (s *ApplicationService) Withdraw(ctx context.Context, id common.UUID, actor user.Actor) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.requireApplicationOwnership(ctx, actor, *app); err != nil {
		return nil, err
	}
	return s.applyTransition(ctx, app, application.StatusWithdrawn, actor.ID, "", causeWithdraw)
}

// Delete removes an application row. Admin only, destructive.
func (s *ApplicationService) Delete(ctx context.Context, id common.UUID, actor user.Actor) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) ListByStudent(ctx context.Context, actor user.Actor, limit, offset int) ([]application.Application, error) {
	student, err := s.access.studentOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStudent(ctx, student.ID, limit, offset)
}

func (s *ApplicationService) ListByJob(ctx context.Context, jobID common.UUID, actor user.Actor, limit, offset int) ([]application.Application, error) {
	posting, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.access.requireJobOwnership(ctx, actor, *posting); err != nil {
		return nil, err
	}
	return s.repo.ListByJob(ctx, jobID, limit, offset)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, actor user.Actor, filter application.Filter) ([]application.Application, error) {
	company, err := s.access.companyOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, company.ID, filter)
}

func (s *ApplicationService) ListAll(ctx context.Context, actor user.Actor, filter application.Filter) ([]application.Application, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx, filter)
}

// Statistics returns a per-status snapshot scoped to the actor: a student
// sees their own applications, a company sees applications against its
// jobs, an admin sees everything.
func (s *ApplicationService) Statistics(ctx context.Context, actor user.Actor) (*application.Stats, error) {
	var studentID, companyID *common.UUID
	switch actor.Role {
	case user.RoleStudent:
		student, err := s.access.studentOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		studentID = &student.ID
	case user.RoleCompany:
		company, err := s.access.companyOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		companyID = &company.ID
	}
	return s.repo.Stats(ctx, studentID, companyID)
}

// applyTransition is the single funnel for application status mutations.
// It consults the transition table, persists the change, and notifies the
// student for every cause except withdrawal by the student themselves.
func (s *ApplicationService) applyTransition(ctx context.Context, app *application.Application, to application.Status, reviewedBy common.UUID, notes string, cause transitionCause) (*application.Application, error) {
	if app.Status.IsTerminal() && app.Status != to {
		return nil, common.NewError(common.CodeInvalidState, "application status is final", nil)
	}
	if !isAllowedTransition(app.Status, to) {
		return nil, common.NewError(common.CodeInvalidState, "invalid status transition", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, app.ID, application.StatusUpdate{
		Status:     to,
		ReviewedBy: reviewedBy,
		Notes:      notes,
	})
	if err != nil {
		return nil, err
	}
	if cause != causeWithdraw && cause != causeSchedule {
		s.notifyStatus(ctx, updated)
	}
	return updated, nil
}

// notifyStatus emails the student about the new status. The interview
// invitation for cause=schedule is sent by the scheduler with the full
// schedule details instead.
func (s *ApplicationService) notifyStatus(ctx context.Context, app *application.Application) {
	student, err := s.access.students.GetByID(ctx, app.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID.String()).Msg("skipping status notification")
		return
	}
	posting, err := s.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID.String()).Msg("skipping status notification")
		return
	}
	s.send(ctx, notify.Message{
		Channels: []notify.Channel{notify.ChannelEmail},
		Kind:     notify.KindApplicationStatus,
		Email:    student.Email,
		Payload: map[string]string{
			"student_name": student.FullName(),
			"job_title":    posting.Title,
			"status":       string(app.Status),
			"message":      statusMessage(app.Status),
		},
	})
}

// forceStatus bypasses the transition table. Only the scheduler uses it,
// and only when the terminal-override compatibility flag is on.
func (s *ApplicationService) forceStatus(ctx context.Context, app *application.Application, to application.Status, reviewedBy common.UUID, notes string) (*application.Application, error) {
	return s.repo.UpdateStatus(ctx, app.ID, application.StatusUpdate{
		Status:     to,
		ReviewedBy: reviewedBy,
		Notes:      notes,
	})
}

// send is fire-and-forget: delivery failures are logged and never surface
// to the caller.
func (s *ApplicationService) send(ctx context.Context, msg notify.Message) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Warn().Err(err).Str("kind", string(msg.Kind)).Msg("notification delivery failed")
	}
}
