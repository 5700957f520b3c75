package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/interview"
	"campushire/internal/domain/job"
	"campushire/internal/domain/user"
	"campushire/internal/notify"
)

// InterviewService schedules interviews against applications and writes the
// coupled status changes back through the lifecycle engine. Concurrent
// mutations of the same application resolve last-write-wins, matching the
// store's semantics.
type InterviewService struct {
	repo         interview.Repository
	applications *ApplicationService
	logger       zerolog.Logger

	// allowTerminalOverride restores the legacy unconditional overwrite of
	// the application status on scheduling, even out of a terminal status.
	allowTerminalOverride bool
}

func NewInterviewService(repo interview.Repository, applications *ApplicationService, logger zerolog.Logger, allowTerminalOverride bool) *InterviewService {
	return &InterviewService{
		repo:                  repo,
		applications:          applications,
		logger:                logger,
		allowTerminalOverride: allowTerminalOverride,
	}
}

type ScheduleInput struct {
	ApplicationID    common.UUID
	Type             interview.Type
	Mode             interview.Mode
	ScheduledDate    time.Time
	ScheduledTime    string
	DurationMinutes  int
	Location         string
	MeetingLink      string
	InterviewerName  string
	InterviewerEmail string
	InterviewerPhone string
	Notes            string
}

// Schedule creates an interview and forces the linked application into
// interview-scheduled. The student is notified over email and SMS with the
// schedule details.
func (s *InterviewService) Schedule(ctx context.Context, input ScheduleInput, actor user.Actor) (*interview.Interview, error) {
	app, err := s.applications.repo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	posting, err := s.applications.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if err := s.applications.access.requireJobOwnership(ctx, actor, *posting); err != nil {
		return nil, err
	}
	if app.Status.IsTerminal() && !s.allowTerminalOverride {
		return nil, common.NewError(common.CodeInvalidState, "application status is final", nil)
	}
	if input.DurationMinutes <= 0 {
		input.DurationMinutes = interview.DefaultDurationMinutes
	}
	created, err := s.repo.Create(ctx, interview.Interview{
		ApplicationID:    input.ApplicationID,
		Type:             input.Type,
		Mode:             input.Mode,
		ScheduledDate:    input.ScheduledDate,
		ScheduledTime:    input.ScheduledTime,
		DurationMinutes:  input.DurationMinutes,
		Location:         input.Location,
		MeetingLink:      input.MeetingLink,
		InterviewerName:  input.InterviewerName,
		InterviewerEmail: input.InterviewerEmail,
		InterviewerPhone: input.InterviewerPhone,
		Notes:            input.Notes,
		Status:           interview.StatusScheduled,
		Result:           interview.ResultPending,
	})
	if err != nil {
		return nil, err
	}
	if app.Status.IsTerminal() {
		_, err = s.applications.forceStatus(ctx, app, application.StatusInterviewScheduled, actor.ID, "")
	} else {
		_, err = s.applications.applyTransition(ctx, app, application.StatusInterviewScheduled, actor.ID, "", causeSchedule)
	}
	if err != nil {
		return nil, err
	}
	s.notifyInvitation(ctx, app, created)
	return created, nil
}

// AddFeedback records the outcome of an interview, marks it completed, and
// propagates a selected/rejected result into the application status
// through the regular transition funnel, so the student is notified.
func (s *InterviewService) AddFeedback(ctx context.Context, id common.UUID, fb interview.Feedback, actor user.Actor) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	app, posting, err := s.resolveApplication(ctx, iv.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := s.applications.access.requireJobOwnership(ctx, actor, *posting); err != nil {
		return nil, err
	}
	updated, err := s.repo.SetFeedback(ctx, id, fb)
	if err != nil {
		return nil, err
	}
	switch fb.Result {
	case interview.ResultSelected, interview.ResultRejected:
		if _, err := s.applications.applyTransition(ctx, app, application.Status(fb.Result), actor.ID, fb.Feedback, causeFeedback); err != nil {
			// the feedback itself is recorded; a stale application status
			// (e.g. withdrawn meanwhile) is logged, not surfaced
			s.logger.Warn().Err(err).Str("interview_id", id.String()).Msg("feedback result not propagated to application")
		}
	}
	return updated, nil
}

type UpdateInput struct {
	Type             interview.Type
	Mode             interview.Mode
	ScheduledDate    time.Time
	ScheduledTime    string
	DurationMinutes  int
	Location         string
	MeetingLink      string
	InterviewerName  string
	InterviewerEmail string
	InterviewerPhone string
	Notes            string
}

// Update rewrites the schedule details. It does not touch the linked
// application's status.
func (s *InterviewService) Update(ctx context.Context, id common.UUID, input UpdateInput, actor user.Actor) (*interview.Interview, error) {
	iv, err := s.authorize(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	iv.Type = input.Type
	iv.Mode = input.Mode
	iv.ScheduledDate = input.ScheduledDate
	iv.ScheduledTime = input.ScheduledTime
	if input.DurationMinutes > 0 {
		iv.DurationMinutes = input.DurationMinutes
	}
	iv.Location = input.Location
	iv.MeetingLink = input.MeetingLink
	iv.InterviewerName = input.InterviewerName
	iv.InterviewerEmail = input.InterviewerEmail
	iv.InterviewerPhone = input.InterviewerPhone
	iv.Notes = input.Notes
	return s.repo.Update(ctx, *iv)
}

func (s *InterviewService) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status, actor user.Actor) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	switch status {
	case interview.StatusScheduled, interview.StatusCompleted, interview.StatusCancelled, interview.StatusRescheduled:
	default:
		return common.NewValidationError("invalid status", map[string]string{"status": "status must be scheduled, completed, cancelled, or rescheduled"})
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// Delete removes the interview. The application status is left as is; the
// relationship is deliberately asymmetric.
func (s *InterviewService) Delete(ctx context.Context, id common.UUID, actor user.Actor) error {
	if _, err := s.authorize(ctx, id, actor); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *InterviewService) Get(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InterviewService) ListByApplication(ctx context.Context, applicationID common.UUID) ([]interview.Interview, error) {
	return s.repo.ListByApplication(ctx, applicationID)
}

func (s *InterviewService) ListByStudent(ctx context.Context, actor user.Actor, limit, offset int) ([]interview.Interview, error) {
	student, err := s.applications.access.studentOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStudent(ctx, student.ID, limit, offset)
}

func (s *InterviewService) ListByCompany(ctx context.Context, actor user.Actor, filter interview.Filter) ([]interview.Interview, error) {
	company, err := s.applications.access.companyOf(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCompany(ctx, company.ID, filter)
}

func (s *InterviewService) ListAll(ctx context.Context, actor user.Actor, filter interview.Filter) ([]interview.Interview, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx, filter)
}

// Upcoming lists scheduled interviews with a date today or later, scoped to
// the actor, ordered by (date, time) ascending.
func (s *InterviewService) Upcoming(ctx context.Context, actor user.Actor, limit, offset int) ([]interview.Interview, error) {
	var studentID, companyID *common.UUID
	switch actor.Role {
	case user.RoleStudent:
		student, err := s.applications.access.studentOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		studentID = &student.ID
	case user.RoleCompany:
		company, err := s.applications.access.companyOf(ctx, actor)
		if err != nil {
			return nil, err
		}
		companyID = &company.ID
	}
	return s.repo.ListUpcoming(ctx, studentID, companyID, limit, offset)
}

// authorize loads the interview and checks the actor may manage it.
func (s *InterviewService) authorize(ctx context.Context, id common.UUID, actor user.Actor) (*interview.Interview, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	_, posting, err := s.resolveApplication(ctx, iv.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := s.applications.access.requireJobOwnership(ctx, actor, *posting); err != nil {
		return nil, err
	}
	return iv, nil
}

func (s *InterviewService) resolveApplication(ctx context.Context, applicationID common.UUID) (*application.Application, *job.Job, error) {
	app, err := s.applications.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}
	posting, err := s.applications.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, nil, err
	}
	return app, posting, nil
}

func (s *InterviewService) notifyInvitation(ctx context.Context, app *application.Application, iv *interview.Interview) {
	student, err := s.applications.access.students.GetByID(ctx, app.StudentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID.String()).Msg("skipping interview notification")
		return
	}
	posting, err := s.applications.jobs.GetByID(ctx, app.JobID)
	if err != nil {
		s.logger.Warn().Err(err).Str("application_id", app.ID.String()).Msg("skipping interview notification")
		return
	}
	payload := map[string]string{
		"student_name":   student.FullName(),
		"job_title":      posting.Title,
		"scheduled_date": iv.ScheduledDate.Format("2006-01-02"),
		"scheduled_time": iv.ScheduledTime,
		"interview_mode": string(iv.Mode),
	}
	if strings.TrimSpace(iv.Location) != "" {
		payload["location"] = iv.Location
	}
	if strings.TrimSpace(iv.MeetingLink) != "" {
		payload["meeting_link"] = iv.MeetingLink
	}
	s.applications.send(ctx, notify.Message{
		Channels: []notify.Channel{notify.ChannelEmail, notify.ChannelSMS},
		Kind:     notify.KindInterviewInvitation,
		Email:    student.Email,
		Phone:    student.Phone,
		Payload:  payload,
	})
}
