package job_postgres

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"jobboard/internal/models"
)

type Repository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewJobRepository(db *gorm.DB, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

func (r *Repository) Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		r.log.Error("Failed to create job posting", slog.String("error", err.Error()))
		return nil, err
	}
	return job, nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*models.JobPosting, error) {
	var job models.JobPosting
	err := r.db.WithContext(ctx).First(&job, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrJobNotFound
		}
		r.log.Error("Failed to load job posting", slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		return nil, err
	}
	return &job, nil
}

func (r *Repository) Update(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	if err := r.db.WithContext(ctx).Save(job).Error; err != nil {
		r.log.Error("Failed to update job posting", slog.Uint64("id", uint64(job.ID)), slog.String("error", err.Error()))
		return nil, err
	}
	return job, nil
}

func (r *Repository) List(ctx context.Context, page, perPage int) ([]models.JobPosting, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.JobPosting{}).Count(&total).Error; err != nil {
		r.log.Error("Failed to count job postings", slog.String("error", err.Error()))
		return nil, 0, err
	}

	jobs := make([]models.JobPosting, 0, perPage)
	err := r.db.WithContext(ctx).
		Order("id").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&jobs).Error
	if err != nil {
		r.log.Error("Failed to list job postings", slog.String("error", err.Error()))
		return nil, 0, err
	}
	return jobs, total, nil
}
