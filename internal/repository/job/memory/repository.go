package job_memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobboard/internal/models"
)

// Repository is an in-memory job store used by tests and by local development
// without a database.
type Repository struct {
	mu     sync.RWMutex
	jobs   map[uint]models.JobPosting
	nextID uint
}

func NewJobRepository() *Repository {
	return &Repository{jobs: make(map[uint]models.JobPosting), nextID: 1}
}

func (r *Repository) Create(_ context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job.ID = r.nextID
	r.nextID++
	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now
	r.jobs[job.ID] = *job

	stored := r.jobs[job.ID]
	return &stored, nil
}

func (r *Repository) GetByID(_ context.Context, id uint) (*models.JobPosting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, models.ErrJobNotFound
	}
	return &job, nil
}

func (r *Repository) Update(_ context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return nil, models.ErrJobNotFound
	}
	job.UpdatedAt = time.Now()
	r.jobs[job.ID] = *job

	stored := r.jobs[job.ID]
	return &stored, nil
}

func (r *Repository) List(_ context.Context, page, perPage int) ([]models.JobPosting, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.JobPosting, 0, len(r.jobs))
	for _, job := range r.jobs {
		all = append(all, job)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.JobPosting{}, int64(len(all)), nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}
