package app

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"campushire/internal/common"
	"campushire/internal/domain/application"
	"campushire/internal/domain/interview"
	"campushire/internal/domain/job"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
	"campushire/internal/notify"
)

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[common.UUID]*application.Application
	jobs *fakeJobRepo
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[common.UUID]*application.Application), jobs: jobs}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	stored := app
	r.apps[app.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByJobAndStudent(ctx context.Context, jobID, studentID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.JobID == jobID && app.StudentID == studentID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, update application.StatusUpdate) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	now := time.Now().UTC()
	app.Status = update.Status
	app.ReviewedBy = &update.ReviewedBy
	app.Notes = update.Notes
	app.ReviewedAt = &now
	app.UpdatedAt = now
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if app.StudentID == studentID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID, limit, offset int) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if app.JobID == jobID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByCompany(ctx context.Context, companyID common.UUID, filter application.Filter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if !r.jobs.ownedBy(app.JobID, companyID) {
			continue
		}
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context, filter application.Filter) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if filter.Status != "" && app.Status != filter.Status {
			continue
		}
		items = append(items, *app)
	}
	return items, nil
}

func (r *fakeApplicationRepo) Stats(ctx context.Context, studentID, companyID *common.UUID) (*application.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &application.Stats{}
	for _, app := range r.apps {
		if studentID != nil && app.StudentID != *studentID {
			continue
		}
		if companyID != nil && !r.jobs.ownedBy(app.JobID, *companyID) {
			continue
		}
		stats.Total++
		switch app.Status {
		case application.StatusPending:
			stats.Pending++
		case application.StatusShortlisted:
			stats.Shortlisted++
		case application.StatusInterviewScheduled:
			stats.InterviewScheduled++
		case application.StatusSelected:
			stats.Selected++
		case application.StatusRejected:
			stats.Rejected++
		case application.StatusWithdrawn:
			stats.Withdrawn++
		}
	}
	return stats, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) ownedBy(jobID, companyID common.UUID) bool {
	j, ok := r.jobs[jobID]
	return ok && j.CompanyID == companyID
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	stored := j
	r.jobs[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[j.ID]; !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	j.UpdatedAt = time.Now().UTC()
	stored := j
	r.jobs[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return common.NewError(common.CodeNotFound, "job not found", nil)
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeJobRepo) ListActive(ctx context.Context, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if j.Status == job.StatusActive {
			items = append(items, *j)
		}
	}
	return items, nil
}

func (r *fakeJobRepo) ListByCompany(ctx context.Context, companyID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.jobs {
		if j.CompanyID == companyID {
			items = append(items, *j)
		}
	}
	return items, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	profiles []profile.StudentProfile
}

func (r *fakeStudentRepo) add(p profile.StudentProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
}

func (r *fakeStudentRepo) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			copied := r.profiles[i]
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "student not found", nil)
}

func (r *fakeStudentRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.profiles {
		if r.profiles[i].UserID == userID {
			copied := r.profiles[i]
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "student not found", nil)
}

type fakeCompanyRepo struct {
	mu       sync.Mutex
	profiles []profile.CompanyProfile
}

func (r *fakeCompanyRepo) add(p profile.CompanyProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.profiles {
		if r.profiles[i].ID == id {
			copied := r.profiles[i]
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company not found", nil)
}

func (r *fakeCompanyRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.profiles {
		if r.profiles[i].UserID == userID {
			copied := r.profiles[i]
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "company not found", nil)
}

type fakeInterviewRepo struct {
	mu         sync.Mutex
	interviews map[common.UUID]*interview.Interview
	apps       *fakeApplicationRepo
	jobs       *fakeJobRepo
}

func newFakeInterviewRepo(apps *fakeApplicationRepo, jobs *fakeJobRepo) *fakeInterviewRepo {
	return &fakeInterviewRepo{interviews: make(map[common.UUID]*interview.Interview), apps: apps, jobs: jobs}
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv.ID = common.NewUUID()
	now := time.Now().UTC()
	iv.CreatedAt = now
	iv.UpdatedAt = now
	stored := iv
	r.interviews[iv.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id common.UUID) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	copied := *iv
	return &copied, nil
}

func (r *fakeInterviewRepo) Update(ctx context.Context, iv interview.Interview) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.interviews[iv.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.Status = stored.Status
	iv.Feedback = stored.Feedback
	iv.Rating = stored.Rating
	iv.Result = stored.Result
	iv.UpdatedAt = time.Now().UTC()
	updated := iv
	r.interviews[iv.ID] = &updated
	copied := updated
	return &copied, nil
}

func (r *fakeInterviewRepo) UpdateStatus(ctx context.Context, id common.UUID, status interview.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.Status = status
	iv.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeInterviewRepo) SetFeedback(ctx context.Context, id common.UUID, fb interview.Feedback) (*interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv, ok := r.interviews[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	iv.Feedback = fb.Feedback
	iv.Rating = fb.Rating
	iv.Result = fb.Result
	iv.Status = interview.StatusCompleted
	iv.UpdatedAt = time.Now().UTC()
	copied := *iv
	return &copied, nil
}

func (r *fakeInterviewRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interviews[id]; !ok {
		return common.NewError(common.CodeNotFound, "interview not found", nil)
	}
	delete(r.interviews, id)
	return nil
}

func (r *fakeInterviewRepo) ListByApplication(ctx context.Context, applicationID common.UUID) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, iv := range r.interviews {
		if iv.ApplicationID == applicationID {
			items = append(items, *iv)
		}
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListByStudent(ctx context.Context, studentID common.UUID, limit, offset int) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, iv := range r.interviews {
		if app, ok := r.apps.apps[iv.ApplicationID]; ok && app.StudentID == studentID {
			items = append(items, *iv)
		}
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListByCompany(ctx context.Context, companyID common.UUID, filter interview.Filter) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, iv := range r.interviews {
		app, ok := r.apps.apps[iv.ApplicationID]
		if !ok || !r.jobs.ownedBy(app.JobID, companyID) {
			continue
		}
		if filter.Status != "" && iv.Status != filter.Status {
			continue
		}
		items = append(items, *iv)
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListAll(ctx context.Context, filter interview.Filter) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []interview.Interview
	for _, iv := range r.interviews {
		if filter.Status != "" && iv.Status != filter.Status {
			continue
		}
		if filter.Type != "" && iv.Type != filter.Type {
			continue
		}
		items = append(items, *iv)
	}
	return items, nil
}

func (r *fakeInterviewRepo) ListUpcoming(ctx context.Context, studentID, companyID *common.UUID, limit, offset int) ([]interview.Interview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	var items []interview.Interview
	for _, iv := range r.interviews {
		if iv.Status != interview.StatusScheduled || iv.ScheduledDate.Before(today) {
			continue
		}
		app, ok := r.apps.apps[iv.ApplicationID]
		if !ok {
			continue
		}
		if studentID != nil && app.StudentID != *studentID {
			continue
		}
		if companyID != nil && !r.jobs.ownedBy(app.JobID, *companyID) {
			continue
		}
		items = append(items, *iv)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].ScheduledDate.Equal(items[j].ScheduledDate) {
			return items[i].ScheduledDate.Before(items[j].ScheduledDate)
		}
		return items[i].ScheduledTime < items[j].ScheduledTime
	})
	return items, nil
}

type fakeGateway struct {
	mu       sync.Mutex
	messages []notify.Message
	err      error
}

func (g *fakeGateway) Send(ctx context.Context, msg notify.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return g.err
	}
	g.messages = append(g.messages, msg)
	return nil
}

func (g *fakeGateway) byKind(kind notify.Kind) []notify.Message {
	g.mu.Lock()
	defer g.mu.Unlock()
	var matched []notify.Message
	for _, msg := range g.messages {
		if msg.Kind == kind {
			matched = append(matched, msg)
		}
	}
	return matched
}

type testEnv struct {
	apps       *fakeApplicationRepo
	jobs       *fakeJobRepo
	students   *fakeStudentRepo
	companies  *fakeCompanyRepo
	interviews *fakeInterviewRepo
	gateway    *fakeGateway

	applicationService *ApplicationService
	interviewService   *InterviewService

	student      profile.StudentProfile
	studentActor user.Actor
	company      profile.CompanyProfile
	companyActor user.Actor
	adminActor   user.Actor
	job          job.Job
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	jobs := newFakeJobRepo()
	apps := newFakeApplicationRepo(jobs)
	students := &fakeStudentRepo{}
	companies := &fakeCompanyRepo{}
	interviews := newFakeInterviewRepo(apps, jobs)
	gateway := &fakeGateway{}

	env := &testEnv{
		apps:       apps,
		jobs:       jobs,
		students:   students,
		companies:  companies,
		interviews: interviews,
		gateway:    gateway,
	}

	env.student = profile.StudentProfile{
		ID:         common.NewUUID(),
		UserID:     common.NewUUID(),
		FirstName:  "Asha",
		LastName:   "Patel",
		Email:      "asha@example.com",
		Phone:      "+15550100",
		ResumePath: "resumes/asha.pdf",
	}
	students.add(env.student)
	env.studentActor = user.Actor{ID: env.student.UserID, Role: user.RoleStudent}

	env.company = profile.CompanyProfile{
		ID:     common.NewUUID(),
		UserID: common.NewUUID(),
		Name:   "Initech",
		Email:  "hr@initech.example",
	}
	companies.add(env.company)
	env.companyActor = user.Actor{ID: env.company.UserID, Role: user.RoleCompany}
	env.adminActor = user.Actor{ID: common.NewUUID(), Role: user.RoleAdmin}

	posting, err := jobs.Create(context.Background(), job.Job{
		CompanyID: env.company.ID,
		Title:     "Backend Engineer",
		Status:    job.StatusActive,
	})
	if err != nil {
		t.Fatalf("expected job created, got %v", err)
	}
	env.job = *posting

	env.applicationService = NewApplicationService(apps, jobs, students, companies, gateway, zerolog.Nop())
	env.interviewService = NewInterviewService(interviews, env.applicationService, zerolog.Nop(), false)
	return env
}

// seedApplication plants an application directly into the store, skipping
// Submit so no confirmation message is recorded.
func (e *testEnv) seedApplication(t *testing.T, status application.Status) *application.Application {
	t.Helper()
	app, err := e.apps.Create(context.Background(), application.Application{
		JobID:     e.job.ID,
		StudentID: e.student.ID,
		Status:    status,
	})
	if err != nil {
		t.Fatalf("expected application seeded, got %v", err)
	}
	return app
}

func (e *testEnv) otherCompanyActor(t *testing.T) user.Actor {
	t.Helper()
	other := profile.CompanyProfile{
		ID:     common.NewUUID(),
		UserID: common.NewUUID(),
		Name:   "Globex",
		Email:  "hr@globex.example",
	}
	e.companies.add(other)
	return user.Actor{ID: other.UserID, Role: user.RoleCompany}
}

func (e *testEnv) otherStudentActor(t *testing.T) user.Actor {
	t.Helper()
	other := profile.StudentProfile{
		ID:        common.NewUUID(),
		UserID:    common.NewUUID(),
		FirstName: "Ravi",
		LastName:  "Kumar",
		Email:     "ravi@example.com",
	}
	e.students.add(other)
	return user.Actor{ID: other.UserID, Role: user.RoleStudent}
}
