package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/interview"
)

type InterviewRepository struct {
	db *sql.DB
}

func NewInterviewRepository(db *sql.DB) *InterviewRepository {
	return &InterviewRepository{db: db}
}

const interviewColumns = `id, application_id, interview_type, interview_mode, scheduled_date, scheduled_time, duration_minutes, location, meeting_link, interviewer_name, interviewer_email, interviewer_phone, notes, status, feedback, rating, result, created_at, updated_at`

func (r *InterviewRepository) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO interviews (`+interviewColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		iv.ID, iv.ApplicationID, iv.Type, iv.Mode, iv.ScheduledDate, iv.ScheduledTime, iv.DurationMinutes, iv.Location, iv.MeetingLink, iv.InterviewerName, iv.InterviewerEmail, iv.InterviewerPhone, iv.Notes, iv.Status, iv.Feedback, iv.Rating, iv.Result, iv.CreatedAt, iv.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create interview", err)
	}
	return &iv, nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	return scanInterview(row)
}

func (r *InterviewRepository) Update(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	iv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE interviews SET interview_type = $1, interview_mode = $2, scheduled_date = $3, scheduled_time = $4, duration_minutes = $5, location = $6, meeting_link = $7, interviewer_name = $8, interviewer_email = $9, interviewer_phone = $10, notes = $11, updated_at = $12
		WHERE id = $13`,
		iv.Type, iv.Mode, iv.ScheduledDate, iv.ScheduledTime, iv.DurationMinutes, iv.Location, iv.MeetingLink, iv.InterviewerName, iv.InterviewerEmail, iv.InterviewerPhone, iv.Notes, iv.UpdatedAt, iv.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update interview", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return r.GetByID(ctx, iv.ID)
}

func (r *InterviewRepository) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status) error {
	result, err := r.db.ExecContext(ctx, `UPDATE interviews SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update interview status", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return nil
}

// SetFeedback records the outcome and forces the interview into completed.
func (r *InterviewRepository) SetFeedback(ctx context.Context, id common.UUID, fb interview.Feedback) (*interview.Interview, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE interviews SET feedback = $1, rating = $2, result = $3, status = $4, updated_at = $5 WHERE id = $6`,
		fb.Feedback, fb.Rating, fb.Result, interview.StatusCompleted, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save interview feedback", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *InterviewRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete interview", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	return nil
}

func (r *InterviewRepository) ListByApplication(ctx context.Context, applicationID common.UUID) ([]interview.Interview, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE application_id = $1 ORDER BY scheduled_date DESC, scheduled_time DESC`, applicationID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func (r *InterviewRepository) ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]interview.Interview, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+prefixedInterviewColumns+`
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		WHERE a.student_id = $1
		ORDER BY i.scheduled_date DESC, i.scheduled_time DESC
		LIMIT $2 OFFSET $3`, studentID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student interviews", err)
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func (r *InterviewRepository) ListByCompany(ctx context.Context, companyID common.UUID, filter interview.Filter) ([]interview.Interview, error) {
	query := `SELECT ` + prefixedInterviewColumns + `
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = $1`
	args := []any{companyID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND i.status = $` + itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND i.interview_type = $` + itoa(len(args))
	}
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)
	query += ` ORDER BY i.scheduled_date DESC, i.scheduled_time DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company interviews", err)
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func (r *InterviewRepository) ListAll(ctx context.Context, filter interview.Filter) ([]interview.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + itoa(len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += ` AND interview_type = $` + itoa(len(args))
	}
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)
	query += ` ORDER BY scheduled_date DESC, scheduled_time DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list interviews", err)
	}
	defer rows.Close()
	return collectInterviews(rows)
}

func (r *InterviewRepository) ListUpcoming(ctx context.Context, studentID, companyID *common.UUID, limit, offset int) ([]interview.Interview, error) {
	query := `SELECT ` + prefixedInterviewColumns + `
		FROM interviews i
		JOIN applications a ON a.id = i.application_id
		JOIN jobs j ON j.id = a.job_id
		WHERE i.status = 'scheduled' AND i.scheduled_date >= CURRENT_DATE`
	var args []any
	if studentID != nil {
		args = append(args, *studentID)
		query += ` AND a.student_id = $` + itoa(len(args))
	}
	if companyID != nil {
		args = append(args, *companyID)
		query += ` AND j.company_id = $` + itoa(len(args))
	}
	args = append(args, normalizeLimit(limit), offset)
	query += ` ORDER BY i.scheduled_date ASC, i.scheduled_time ASC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list upcoming interviews", err)
	}
	defer rows.Close()
	return collectInterviews(rows)
}

const prefixedInterviewColumns = `i.id, i.application_id, i.interview_type, i.interview_mode, i.scheduled_date, i.scheduled_time, i.duration_minutes, i.location, i.meeting_link, i.interviewer_name, i.interviewer_email, i.interviewer_phone, i.notes, i.status, i.feedback, i.rating, i.result, i.created_at, i.updated_at`

func scanInterview(row rowScanner) (*interview.Interview, error) {
	var iv interview.Interview
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &iv.Type, &iv.Mode, &iv.ScheduledDate, &iv.ScheduledTime, &iv.DurationMinutes, &iv.Location, &iv.MeetingLink, &iv.InterviewerName, &iv.InterviewerEmail, &iv.InterviewerPhone, &iv.Notes, &iv.Status, &iv.Feedback, &iv.Rating, &iv.Result, &iv.CreatedAt, &iv.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "interview not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load interview", err)
	}
	return &iv, nil
}

func collectInterviews(rows *sql.Rows) ([]interview.Interview, error) {
	var items []interview.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *iv)
	}
	return items, nil
}
