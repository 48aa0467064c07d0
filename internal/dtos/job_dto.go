package dtos

import (
	"github.com/shopspring/decimal"

	"jobboard/internal/models"
)

// JobPostingInput carries a job posting payload before validation. Both the
// API handlers (JSON body) and the web handlers (form fields) produce this
// shape so the same rule set applies on either path. Datetimes stay strings
// until validation has confirmed the format.
type JobPostingInput struct {
	Title          string           `json:"title" form:"title" validate:"required,max=255"`
	Location       *string          `json:"location" form:"location" validate:"omitempty,max=255"`
	EmploymentType string           `json:"employment_type" form:"employment_type" validate:"required,oneof='Full-time' 'Part-time' 'Contract' 'Internship'"`
	Description    *string          `json:"description" form:"description"`
	SalaryMin      *decimal.Decimal `json:"salary_min" form:"salary_min"`
	SalaryMax      *decimal.Decimal `json:"salary_max" form:"salary_max"`
	Currency       string           `json:"currency" form:"currency" validate:"omitempty,max=10"`
	Status         string           `json:"status" form:"status" validate:"omitempty,oneof=open closed"`
	PostedAt       string           `json:"posted_at" form:"posted_at" validate:"required"`
	ExpiresAt      string           `json:"expires_at" form:"expires_at" validate:"required"`
}

// Apply copies the validated input onto a job posting. Must only be called
// after validation has passed, the datetime parses are assumed to succeed.
func (in *JobPostingInput) Apply(job *models.JobPosting) {
	job.Title = in.Title
	job.Location = in.Location
	job.EmploymentType = in.EmploymentType
	job.Description = in.Description

	job.SalaryMin = decimal.NullDecimal{}
	if in.SalaryMin != nil {
		job.SalaryMin = decimal.NewNullDecimal(*in.SalaryMin)
	}
	job.SalaryMax = decimal.NullDecimal{}
	if in.SalaryMax != nil {
		job.SalaryMax = decimal.NewNullDecimal(*in.SalaryMax)
	}

	if in.Currency != "" {
		job.Currency = in.Currency
	} else if job.Currency == "" {
		job.Currency = "MYR"
	}
	if in.Status != "" {
		job.Status = in.Status
	} else if job.Status == "" {
		job.Status = models.StatusOpen
	}

	if posted, err := models.ParseDateTime(in.PostedAt); err == nil {
		job.PostedAt = posted
	}
	if expires, err := models.ParseDateTime(in.ExpiresAt); err == nil {
		job.ExpiresAt = expires
	}
}

// Payload renders the input as a JSON-ready map for forwarding to the API.
func (in *JobPostingInput) Payload() map[string]any {
	payload := map[string]any{
		"title":           in.Title,
		"employment_type": in.EmploymentType,
		"currency":        in.Currency,
		"posted_at":       in.PostedAt,
		"expires_at":      in.ExpiresAt,
	}
	if in.Location != nil {
		payload["location"] = *in.Location
	}
	if in.Description != nil {
		payload["description"] = *in.Description
	}
	if in.SalaryMin != nil {
		payload["salary_min"] = in.SalaryMin.String()
	}
	if in.SalaryMax != nil {
		payload["salary_max"] = in.SalaryMax.String()
	}
	if in.Status != "" {
		payload["status"] = in.Status
	}
	return payload
}
