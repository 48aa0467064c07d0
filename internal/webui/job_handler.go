package webui

import (
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jobboard/internal/apiclient"
	"jobboard/internal/dtos"
	"jobboard/internal/models"
	"jobboard/internal/session"
	"jobboard/internal/validation"
)

// JobHandler renders the job pages. All persistence happens through the API
// client; this layer only maps API responses to redirects, flashes and views.
type JobHandler struct {
	api *apiclient.Client
	log *slog.Logger
}

func NewJobHandler(api *apiclient.Client, log *slog.Logger) *JobHandler {
	return &JobHandler{api: api, log: log}
}

var formFields = []string{
	"title", "location", "employment_type", "description",
	"salary_min", "salary_max", "currency", "status", "posted_at", "expires_at",
}

// Index is GET /jobs.
func (h *JobHandler) Index(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)
	resp := h.api.Get(ctx, "/api/jobs", url.Values{"page": {strconv.Itoa(page)}}, token)
	if h.handleAuthFailure(c, resp) {
		return
	}

	render(c, http.StatusOK, "jobs_index", gin.H{
		"Title": "Job Postings",
		"Jobs":  NewPaginator(resp.JSON("", nil), "/jobs"),
	})
}

// Create is GET /jobs/create.
func (h *JobHandler) Create(c *gin.Context) {
	if _, ok := h.requireToken(c); !ok {
		return
	}

	sess := session.FromContext(c)
	form := emptyForm()
	overlay(form, sess.PullOldInput())

	render(c, http.StatusOK, "jobs_create", gin.H{
		"Title":           "Create Job Posting",
		"Form":            form,
		"EmploymentTypes": models.EmploymentTypes,
		"Statuses":        models.Statuses,
	})
}

// Store is POST /jobs.
func (h *JobHandler) Store(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	sess := session.FromContext(c)

	in, errs, old := h.bindJobForm(c)
	if errs.Any() {
		sess.FlashErrors(errs)
		sess.FlashOldInput(old)
		redirect(c, "/jobs/create")
		return
	}

	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)
	resp := h.api.Post(ctx, "/api/jobs", in.Payload(), token)
	if h.handleAuthFailure(c, resp) {
		return
	}

	if resp.Status() == http.StatusUnprocessableEntity {
		h.flashAPIValidation(c, resp, old)
		redirect(c, "/jobs/create")
		return
	}

	if resp.Failed() {
		sess.FlashError("general", extractErrorMessage(resp, "Failed to create job posting. Please try again."))
		sess.FlashOldInput(old)
		redirect(c, "/jobs/create")
		return
	}

	sess.FlashStatus("Job posting created successfully.")
	redirect(c, "/jobs")
}

// Edit is GET /jobs/:id/edit.
func (h *JobHandler) Edit(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	sess := session.FromContext(c)
	jobID := c.Param("id")

	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)
	resp := h.api.Get(ctx, "/api/jobs/"+jobID, nil, token)
	if h.handleAuthFailure(c, resp) {
		return
	}

	if resp.NotFound() {
		sess.FlashError("general", "Job posting not found.")
		redirect(c, "/jobs")
		return
	}
	if resp.Failed() {
		sess.FlashError("general", "Unable to load job posting.")
		redirect(c, "/jobs")
		return
	}

	job, _ := resp.JSON("", nil).(map[string]any)
	form := formFromJob(job)
	overlay(form, sess.PullOldInput())

	render(c, http.StatusOK, "jobs_edit", gin.H{
		"Title":           "Edit Job Posting",
		"JobID":           jobID,
		"Form":            form,
		"EmploymentTypes": models.EmploymentTypes,
		"Statuses":        models.Statuses,
	})
}

// Update handles the edit form submission (PUT /jobs/:id, posted with a
// _method override field).
func (h *JobHandler) Update(c *gin.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	sess := session.FromContext(c)
	jobID := c.Param("id")
	editPath := "/jobs/" + jobID + "/edit"

	in, errs, old := h.bindJobForm(c)
	if errs.Any() {
		sess.FlashErrors(errs)
		sess.FlashOldInput(old)
		redirect(c, editPath)
		return
	}

	ctx := apiclient.WithRequestOrigin(c.Request.Context(), c.Request)
	resp := h.api.Put(ctx, "/api/jobs/"+jobID, in.Payload(), token)
	if h.handleAuthFailure(c, resp) {
		return
	}

	if resp.Status() == http.StatusUnprocessableEntity {
		h.flashAPIValidation(c, resp, old)
		redirect(c, editPath)
		return
	}

	if resp.Status() == http.StatusForbidden {
		sess.FlashError("general", extractErrorMessage(resp, "You are not authorized to update this job posting."))
		sess.FlashOldInput(old)
		redirect(c, editPath)
		return
	}

	if resp.Failed() {
		sess.FlashError("general", extractErrorMessage(resp, "Failed to update job posting. Please try again."))
		sess.FlashOldInput(old)
		redirect(c, editPath)
		return
	}

	sess.FlashStatus("Job posting updated successfully.")
	redirect(c, "/jobs")
}

// requireToken redirects to the login page when the session holds no API
// token.
func (h *JobHandler) requireToken(c *gin.Context) (string, bool) {
	sess := session.FromContext(c)
	token := sess.Token()
	if token == "" {
		sess.FlashError("email", "Please log in to continue.")
		redirect(c, "/login")
		return "", false
	}
	return token, true
}

// handleAuthFailure clears the stored token and forces a re-login whenever
// the API answers 401.
func (h *JobHandler) handleAuthFailure(c *gin.Context, resp *apiclient.Response) bool {
	if !resp.Unauthorized() {
		return false
	}
	sess := session.FromContext(c)
	sess.ForgetToken()
	sess.FlashError("email", "Your session has expired. Please log in again.")
	redirect(c, "/login")
	return true
}

// bindJobForm reads the job form into an input, running the shared rule set
// locally before anything is forwarded to the API. Datetimes that validate
// are normalized to the canonical wire format.
func (h *JobHandler) bindJobForm(c *gin.Context) (*dtos.JobPostingInput, validation.Errors, map[string]string) {
	old := map[string]string{}
	for _, field := range formFields {
		old[field] = c.PostForm(field)
	}

	errs := validation.Errors{}
	in := &dtos.JobPostingInput{
		Title:          strings.TrimSpace(c.PostForm("title")),
		EmploymentType: c.PostForm("employment_type"),
		Currency:       c.PostForm("currency"),
		Status:         c.PostForm("status"),
		PostedAt:       c.PostForm("posted_at"),
		ExpiresAt:      c.PostForm("expires_at"),
	}
	if v := c.PostForm("location"); v != "" {
		in.Location = &v
	}
	if v := c.PostForm("description"); v != "" {
		in.Description = &v
	}
	if v := c.PostForm("salary_min"); v != "" {
		if d, err := decimal.NewFromString(v); err != nil {
			errs.Add("salary_min", "The salary min field must be a number.")
		} else {
			in.SalaryMin = &d
		}
	}
	if v := c.PostForm("salary_max"); v != "" {
		if d, err := decimal.NewFromString(v); err != nil {
			errs.Add("salary_max", "The salary max field must be a number.")
		} else {
			in.SalaryMax = &d
		}
	}

	for field, messages := range validation.JobPosting(in, false) {
		for _, message := range messages {
			errs.Add(field, message)
		}
	}

	if !errs.Any() {
		if posted, err := models.ParseDateTime(in.PostedAt); err == nil {
			in.PostedAt = posted.String()
		}
		if expires, err := models.ParseDateTime(in.ExpiresAt); err == nil {
			in.ExpiresAt = expires.String()
		}
	}

	return in, errs, old
}

// flashAPIValidation flattens the API's field→message-list errors object into
// one message per field for the form view.
func (h *JobHandler) flashAPIValidation(c *gin.Context, resp *apiclient.Response, old map[string]string) {
	sess := session.FromContext(c)

	flattened := map[string][]string{}
	if errObj, ok := resp.JSON("errors", nil).(map[string]any); ok {
		for field, raw := range errObj {
			switch messages := raw.(type) {
			case []any:
				parts := make([]string, 0, len(messages))
				for _, m := range messages {
					if s, ok := m.(string); ok {
						parts = append(parts, s)
					}
				}
				flattened[field] = []string{strings.Join(parts, " ")}
			case string:
				flattened[field] = []string{messages}
			}
		}
	}

	sess.FlashErrors(flattened)
	sess.FlashOldInput(old)
}

// extractErrorMessage prefers a structured message from the API body: the
// top-level "message", else the first string found under "errors", else the
// given default.
func extractErrorMessage(resp *apiclient.Response, def string) string {
	if message, ok := resp.JSON("message", "").(string); ok && message != "" {
		return message
	}

	errObj, ok := resp.JSON("errors", nil).(map[string]any)
	if !ok {
		return def
	}

	fields := make([]string, 0, len(errObj))
	for field := range errObj {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		switch raw := errObj[field].(type) {
		case []any:
			for _, m := range raw {
				if s, ok := m.(string); ok && s != "" {
					return s
				}
			}
		case string:
			if raw != "" {
				return raw
			}
		}
	}
	return def
}

func emptyForm() map[string]string {
	form := make(map[string]string, len(formFields))
	for _, field := range formFields {
		form[field] = ""
	}
	form["currency"] = "MYR"
	return form
}

func overlay(form map[string]string, old map[string]string) {
	for field, value := range old {
		if value != "" {
			form[field] = value
		}
	}
}

// formFromJob maps the API's job document onto form values, converting
// datetimes to the datetime-local input format.
func formFromJob(job map[string]any) map[string]string {
	form := emptyForm()
	if job == nil {
		return form
	}

	for _, field := range []string{"title", "location", "employment_type", "description", "currency", "status"} {
		if v, ok := job[field].(string); ok {
			form[field] = v
		}
	}
	for _, field := range []string{"salary_min", "salary_max"} {
		switch v := job[field].(type) {
		case string:
			form[field] = v
		case float64:
			form[field] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	for _, field := range []string{"posted_at", "expires_at"} {
		if v, ok := job[field].(string); ok {
			form[field] = toInputDateTime(v)
		}
	}
	return form
}

func toInputDateTime(value string) string {
	parsed, err := models.ParseDateTime(value)
	if err != nil {
		return value
	}
	return parsed.Format("2006-01-02T15:04")
}
