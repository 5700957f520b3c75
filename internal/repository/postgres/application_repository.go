package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"campushire/internal/common"
	"campushire/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, student_id, cover_letter, resume_path, status, reviewed_by, notes, applied_at, reviewed_at, updated_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, job_id, student_id, cover_letter, resume_path, status, notes, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		app.ID, app.JobID, app.StudentID, app.CoverLetter, app.ResumePath, app.Status, app.Notes, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		// the unique index on (job_id, student_id) closes the check-then-insert race
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied for this job", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND student_id = $2`, jobID, studentID)
	return scanApplication(row)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, update application.StatusUpdate) (*application.Application, error) {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, reviewed_by = $2, notes = $3, reviewed_at = $4, updated_at = $5 WHERE id = $6`,
		update.Status, update.ReviewedBy, update.Notes, now, now, id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete application", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	return nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC LIMIT $2 OFFSET $3`,
		studentID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list student applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID common.UUID, limit, offset int) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 ORDER BY applied_at DESC LIMIT $2 OFFSET $3`,
		jobID, normalizeLimit(limit), offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list job applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID, filter application.Filter) ([]application.Application, error) {
	query := `SELECT a.id, a.job_id, a.student_id, a.cover_letter, a.resume_path, a.status, a.reviewed_by, a.notes, a.applied_at, a.reviewed_at, a.updated_at
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = $1`
	args := []any{companyID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND a.status = $2`
	}
	if !filter.JobID.IsZero() {
		args = append(args, filter.JobID)
		query += ` AND a.job_id = $` + itoa(len(args))
	}
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)
	query += ` ORDER BY a.applied_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListAll(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE 1=1`
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $` + itoa(len(args))
	}
	if !filter.JobID.IsZero() {
		args = append(args, filter.JobID)
		query += ` AND job_id = $` + itoa(len(args))
	}
	if !filter.StudentID.IsZero() {
		args = append(args, filter.StudentID)
		query += ` AND student_id = $` + itoa(len(args))
	}
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)
	query += ` ORDER BY applied_at DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) Stats(ctx context.Context, studentID, companyID *common.UUID) (*application.Stats, error) {
	query := `SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE a.status = 'pending'),
			COUNT(*) FILTER (WHERE a.status = 'shortlisted'),
			COUNT(*) FILTER (WHERE a.status = 'interview-scheduled'),
			COUNT(*) FILTER (WHERE a.status = 'selected'),
			COUNT(*) FILTER (WHERE a.status = 'rejected'),
			COUNT(*) FILTER (WHERE a.status = 'withdrawn')
		FROM applications a`
	var args []any
	if studentID != nil {
		args = append(args, *studentID)
		query += ` WHERE a.student_id = $1`
	} else if companyID != nil {
		args = append(args, *companyID)
		query += ` JOIN jobs j ON j.id = a.job_id WHERE j.company_id = $1`
	}
	var stats application.Stats
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.Pending, &stats.Shortlisted, &stats.InterviewScheduled, &stats.Selected, &stats.Rejected, &stats.Withdrawn); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to load application statistics", err)
	}
	return &stats, nil
}

func scanApplication(row rowScanner) (*application.Application, error) {
	var app application.Application
	var reviewedBy sql.NullString
	var reviewedAt sql.NullTime
	if err := row.Scan(&app.ID, &app.JobID, &app.StudentID, &app.CoverLetter, &app.ResumePath, &app.Status, &reviewedBy, &app.Notes, &app.AppliedAt, &reviewedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	if reviewedBy.Valid {
		id := common.UUID(reviewedBy.String)
		app.ReviewedBy = &id
	}
	if reviewedAt.Valid {
		app.ReviewedAt = &reviewedAt.Time
	}
	return &app, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *app)
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
