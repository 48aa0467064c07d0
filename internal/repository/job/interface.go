package job_repository

import (
	"context"

	"jobboard/internal/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	GetByID(ctx context.Context, id uint) (*models.JobPosting, error)
	Update(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	List(ctx context.Context, page, perPage int) ([]models.JobPosting, int64, error)
}
