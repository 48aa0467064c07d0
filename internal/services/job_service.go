package services

import (
	"context"
	"log/slog"

	"jobboard/internal/dtos"
	"jobboard/internal/models"
	job_repository "jobboard/internal/repository/job"
)

// DefaultPerPage is the fixed page size of the jobs index.
const DefaultPerPage = 20

type JobService struct {
	jobs job_repository.Repository
	log  *slog.Logger
}

func NewJobService(jobs job_repository.Repository, log *slog.Logger) *JobService {
	return &JobService{jobs: jobs, log: log}
}

func (s *JobService) List(ctx context.Context, page int, path string) (dtos.Page, error) {
	if page < 1 {
		page = 1
	}

	jobs, total, err := s.jobs.List(ctx, page, DefaultPerPage)
	if err != nil {
		s.log.Error("Failed to list job postings", slog.String("error", err.Error()))
		return dtos.Page{}, err
	}

	return dtos.NewPage(jobs, len(jobs), total, DefaultPerPage, page, path), nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.JobPosting, error) {
	return s.jobs.GetByID(ctx, id)
}

// Create persists a new posting owned by userID. The input must already have
// passed validation.
func (s *JobService) Create(ctx context.Context, in *dtos.JobPostingInput, userID uint) (*models.JobPosting, error) {
	job := &models.JobPosting{CreatedBy: userID}
	in.Apply(job)

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		s.log.Error("Failed to create job posting", slog.String("error", err.Error()))
		return nil, err
	}

	s.log.Info("Job posting created",
		slog.Uint64("id", uint64(created.ID)),
		slog.Uint64("created_by", uint64(userID)))
	return created, nil
}

// Update replaces the mutable fields of a posting. Only the creator may
// update; anyone else gets ErrForbidden and the record stays unchanged.
func (s *JobService) Update(ctx context.Context, id uint, in *dtos.JobPostingInput, userID uint) (*models.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.CreatedBy != userID {
		s.log.Warn("Rejected update by non-owner",
			slog.Uint64("id", uint64(id)),
			slog.Uint64("user_id", uint64(userID)))
		return nil, models.ErrForbidden
	}

	in.Apply(job)

	updated, err := s.jobs.Update(ctx, job)
	if err != nil {
		s.log.Error("Failed to update job posting", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		return nil, err
	}
	return updated, nil
}
