package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobsRejectUnauthenticated(t *testing.T) {
	f := newFixture(t)

	for _, probe := range []struct {
		method string
		path   string
	}{
		{"GET", "/api/jobs"},
		{"POST", "/api/jobs"},
		{"GET", "/api/jobs/1"},
		{"PUT", "/api/jobs/1"},
	} {
		resp := f.do(t, probe.method, probe.path, "", jobPayload("Sneaky"))
		assert.Equal(t, http.StatusUnauthorized, resp.Code, "%s %s", probe.method, probe.path)
		assert.Equal(t, "Unauthenticated.", decode(t, resp)["message"])
	}

	// Nothing reached persistence.
	_, total, err := f.jobs.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestJobsRejectRevokedToken(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	resp := f.do(t, "POST", "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = f.do(t, "GET", "/api/jobs", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateJob(t *testing.T) {
	f := newFixture(t)
	user := f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	resp := f.do(t, "POST", "/api/jobs", token, jobPayload("Backend Developer"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	body := decode(t, resp)
	assert.Equal(t, "Job posting created successfully.", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Backend Developer", data["title"])
	assert.Equal(t, json.Number(fmt.Sprint(user.ID)), data["created_by"])

	resp = f.do(t, "GET", "/api/jobs", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	listing := decode(t, resp)
	items, ok := listing["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestCreateJobValidationFailure(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	payload := jobPayload("Backend Developer")
	payload["salary_min"] = "5000"
	payload["salary_max"] = "3000"

	resp := f.do(t, "POST", "/api/jobs", token, payload)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code, resp.Body.String())

	body := decode(t, resp)
	assert.Equal(t, "Validation failed", body["message"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "salary_max")

	_, total, err := f.jobs.List(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCreateJobExpiryValidationFailure(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	payload := jobPayload("Backend Developer")
	payload["expires_at"], payload["posted_at"] = payload["posted_at"], payload["expires_at"]

	resp := f.do(t, "POST", "/api/jobs", token, payload)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	errs := decode(t, resp)["errors"].(map[string]any)
	assert.Contains(t, errs, "expires_at")
}

func TestCreateJobMalformedBody(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	resp := f.do(t, "POST", "/api/jobs", token, "not an object")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestShowJob(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	created := decode(t, f.do(t, "POST", "/api/jobs", token, jobPayload("Shown")))["data"].(map[string]any)

	resp := f.do(t, "GET", "/api/jobs/"+created["id"].(json.Number).String(), token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Shown", decode(t, resp)["title"])
}

func TestShowJobNotFound(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	resp := f.do(t, "GET", "/api/jobs/999", token, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Item not found.", decode(t, resp)["message"])

	resp = f.do(t, "GET", "/api/jobs/abc", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestIndexEnvelope(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	for i := 1; i <= 3; i++ {
		resp := f.do(t, "POST", "/api/jobs", token, jobPayload(fmt.Sprintf("Job %d", i)))
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := f.do(t, "GET", "/api/jobs", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode(t, resp)
	assert.Equal(t, json.Number("1"), body["current_page"])
	assert.Equal(t, json.Number("3"), body["total"])
	assert.Equal(t, json.Number("20"), body["per_page"])
	assert.Equal(t, json.Number("1"), body["last_page"])
	assert.Equal(t, "/api/jobs", body["path"])
	assert.Nil(t, body["next_page_url"])
	assert.Nil(t, body["prev_page_url"])

	items := body["data"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "Job 1", items[0].(map[string]any)["title"])
}

func TestUpdateJobByOwner(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	created := decode(t, f.do(t, "POST", "/api/jobs", token, jobPayload("Before")))["data"].(map[string]any)
	id := created["id"].(json.Number).String()

	payload := jobPayload("After")
	payload["status"] = "closed"
	resp := f.do(t, "PUT", "/api/jobs/"+id, token, payload)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	body := decode(t, resp)
	assert.Equal(t, "Job posting updated successfully.", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "After", data["title"])
	assert.Equal(t, "closed", data["status"])
}

func TestUpdateJobByNonOwner(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Owner", "owner@example.com")
	f.createUser(t, "Intruder", "intruder@example.com")

	ownerToken := f.login(t, "owner@example.com")
	created := decode(t, f.do(t, "POST", "/api/jobs", ownerToken, jobPayload("Untouchable")))["data"].(map[string]any)
	id := created["id"].(json.Number).String()

	intruderToken := f.login(t, "intruder@example.com")
	resp := f.do(t, "PUT", "/api/jobs/"+id, intruderToken, jobPayload("Defaced"))
	require.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "This action is unauthorized.", decode(t, resp)["message"])

	// Record stays unchanged.
	resp = f.do(t, "GET", "/api/jobs/"+id, ownerToken, nil)
	assert.Equal(t, "Untouchable", decode(t, resp)["title"])
}

func TestUpdateValidationRunsBeforeOwnership(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Owner", "owner@example.com")
	f.createUser(t, "Intruder", "intruder@example.com")

	ownerToken := f.login(t, "owner@example.com")
	created := decode(t, f.do(t, "POST", "/api/jobs", ownerToken, jobPayload("Guarded")))["data"].(map[string]any)
	id := created["id"].(json.Number).String()

	payload := jobPayload("Defaced")
	payload["employment_type"] = "Gig"
	intruderToken := f.login(t, "intruder@example.com")

	resp := f.do(t, "PUT", "/api/jobs/"+id, intruderToken, payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestUpdateJobNotFound(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	resp := f.do(t, "PUT", "/api/jobs/999", token, jobPayload("Ghost"))
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Item not found.", decode(t, resp)["message"])
}

func TestJobFieldsSurviveRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "Recruiter", "recruiter@example.com")
	token := f.login(t, "recruiter@example.com")

	payload := jobPayload("Round Trip")
	created := decode(t, f.do(t, "POST", "/api/jobs", token, payload))["data"].(map[string]any)

	resp := f.do(t, "GET", "/api/jobs/"+created["id"].(json.Number).String(), token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	got := decode(t, resp)

	assert.Equal(t, payload["title"], got["title"])
	assert.Equal(t, payload["location"], got["location"])
	assert.Equal(t, payload["employment_type"], got["employment_type"])
	assert.Equal(t, payload["description"], got["description"])
	assert.Equal(t, payload["currency"], got["currency"])
	assert.Equal(t, payload["status"], got["status"])
	assert.Equal(t, payload["posted_at"], got["posted_at"])
	assert.Equal(t, payload["expires_at"], got["expires_at"])

	// Decimal values compare by numeric equality, not representation.
	min := decimal.RequireFromString(got["salary_min"].(string))
	max := decimal.RequireFromString(got["salary_max"].(string))
	assert.True(t, min.Equal(decimal.RequireFromString("3500.50")), "salary_min was %s", min)
	assert.True(t, max.Equal(decimal.RequireFromString("5500.00")), "salary_max was %s", max)
}
