package handlers

import (
	"net/http"
	"strings"
	"time"

	"campushire/internal/app"
	"campushire/internal/common"
	"campushire/internal/domain/interview"
	"campushire/internal/domain/user"
	"campushire/internal/http/middleware"
	"campushire/internal/http/response"
)

type InterviewHandler struct {
	interviews *app.InterviewService
}

func NewInterviewHandler(interviews *app.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type scheduleRequest struct {
	ApplicationID    string `json:"application_id"`
	Type             string `json:"interview_type"`
	Mode             string `json:"interview_mode"`
	ScheduledDate    string `json:"scheduled_date"`
	ScheduledTime    string `json:"scheduled_time"`
	DurationMinutes  int    `json:"duration_minutes"`
	Location         string `json:"location"`
	MeetingLink      string `json:"meeting_link"`
	InterviewerName  string `json:"interviewer_name"`
	InterviewerEmail string `json:"interviewer_email"`
	InterviewerPhone string `json:"interviewer_phone"`
	Notes            string `json:"notes"`
}

func (req scheduleRequest) toInput() (app.ScheduleInput, error) {
	var input app.ScheduleInput
	applicationID, err := common.ParseUUID(req.ApplicationID)
	if err != nil {
		return input, common.NewValidationError("invalid request", map[string]string{"application_id": "invalid uuid"})
	}
	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		return input, common.NewValidationError("invalid request", map[string]string{"scheduled_date": "expected YYYY-MM-DD"})
	}
	input = app.ScheduleInput{
		ApplicationID:    applicationID,
		Type:             interview.Type(req.Type),
		Mode:             interview.Mode(req.Mode),
		ScheduledDate:    scheduledDate,
		ScheduledTime:    req.ScheduledTime,
		DurationMinutes:  req.DurationMinutes,
		Location:         req.Location,
		MeetingLink:      req.MeetingLink,
		InterviewerName:  req.InterviewerName,
		InterviewerEmail: req.InterviewerEmail,
		InterviewerPhone: req.InterviewerPhone,
		Notes:            req.Notes,
	}
	return input, nil
}

func (h *InterviewHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.interviews.Schedule(r.Context(), input, actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.interviews.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, found)
}

func (h *InterviewHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, offset := pageFromQuery(r)
	filter := interviewFilterFromQuery(r)
	filter.Limit = limit
	filter.Offset = offset

	var items []interview.Interview
	var err error
	switch actor.Role {
	case user.RoleStudent:
		items, err = h.interviews.ListByStudent(r.Context(), actor, limit, offset)
	case user.RoleCompany:
		items, err = h.interviews.ListByCompany(r.Context(), actor, filter)
	case user.RoleAdmin:
		items, err = h.interviews.ListAll(r.Context(), actor, filter)
	default:
		err = common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *InterviewHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, offset := pageFromQuery(r)
	items, err := h.interviews.Upcoming(r.Context(), actor, limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *InterviewHandler) ListByApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	items, err := h.interviews.ListByApplication(r.Context(), applicationID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *InterviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	scheduledDate, err := time.Parse("2006-01-02", req.ScheduledDate)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"scheduled_date": "expected YYYY-MM-DD"}))
		return
	}
	updated, err := h.interviews.Update(r.Context(), id, app.UpdateInput{
		Type:             interview.Type(req.Type),
		Mode:             interview.Mode(req.Mode),
		ScheduledDate:    scheduledDate,
		ScheduledTime:    req.ScheduledTime,
		DurationMinutes:  req.DurationMinutes,
		Location:         req.Location,
		MeetingLink:      req.MeetingLink,
		InterviewerName:  req.InterviewerName,
		InterviewerEmail: req.InterviewerEmail,
		InterviewerPhone: req.InterviewerPhone,
		Notes:            req.Notes,
	}, actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type interviewStatusRequest struct {
	Status string `json:"status"`
}

func (h *InterviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req interviewStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := h.interviews.UpdateStatus(r.Context(), id, interview.Status(req.Status), actor); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

type feedbackRequest struct {
	Feedback string `json:"feedback"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

func (h *InterviewHandler) AddFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req feedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	result := interview.Result(strings.ToLower(strings.TrimSpace(req.Result)))
	switch result {
	case interview.ResultSelected, interview.ResultRejected, interview.ResultPending:
	default:
		response.Error(w, common.NewValidationError("invalid result", map[string]string{"result": "result must be selected, rejected, or pending"}))
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		response.Error(w, common.NewValidationError("invalid rating", map[string]string{"rating": "rating must be between 0 and 5"}))
		return
	}
	updated, err := h.interviews.AddFeedback(r.Context(), id, interview.Feedback{
		Feedback: req.Feedback,
		Rating:   req.Rating,
		Result:   result,
	}, actor)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.interviews.Delete(r.Context(), id, actor); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func interviewFilterFromQuery(r *http.Request) interview.Filter {
	var filter interview.Filter
	if value := strings.TrimSpace(r.URL.Query().Get("status")); value != "" {
		filter.Status = interview.Status(value)
	}
	if value := strings.TrimSpace(r.URL.Query().Get("interview_type")); value != "" {
		filter.Type = interview.Type(value)
	}
	return filter
}
