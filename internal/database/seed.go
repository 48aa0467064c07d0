package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	job_repository "jobboard/internal/repository/job"
	user_repository "jobboard/internal/repository/user"

	"jobboard/internal/models"
)

// Seed creates a demo recruiter account and a handful of open postings so a
// fresh deployment has something to log into and browse. Safe to call more
// than once, it skips seeding when the recruiter already exists.
func Seed(ctx context.Context, users user_repository.Repository, jobs job_repository.Repository, log *slog.Logger) error {
	if _, err := users.GetUserByEmail(ctx, "recruiter@example.com"); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	recruiter, err := users.CreateUser(ctx, &models.User{
		Name:     "John Recruiter",
		Email:    "recruiter@example.com",
		Password: string(hash),
	})
	if err != nil {
		return err
	}

	location := "Kuala Lumpur"
	now := time.Now()
	samples := []models.JobPosting{
		{
			Title:          "Software Engineer",
			Location:       &location,
			EmploymentType: models.FullTime,
			SalaryMin:      decimal.NewNullDecimal(decimal.NewFromInt(5000)),
			SalaryMax:      decimal.NewNullDecimal(decimal.NewFromInt(8000)),
		},
		{
			Title:          "Platform Engineer",
			Location:       &location,
			EmploymentType: models.Contract,
			SalaryMin:      decimal.NewNullDecimal(decimal.NewFromInt(7000)),
			SalaryMax:      decimal.NewNullDecimal(decimal.NewFromInt(11000)),
		},
		{
			Title:          "QA Intern",
			Location:       &location,
			EmploymentType: models.Internship,
		},
	}

	for i := range samples {
		samples[i].Currency = "MYR"
		samples[i].Status = models.StatusOpen
		samples[i].PostedAt = models.NewDateTime(now.AddDate(0, 0, -7))
		samples[i].ExpiresAt = models.NewDateTime(now.AddDate(0, 0, 30))
		samples[i].CreatedBy = recruiter.ID
		if _, err := jobs.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}

	log.Info("Seeded demo recruiter and job postings", slog.Int("jobs", len(samples)))
	return nil
}
