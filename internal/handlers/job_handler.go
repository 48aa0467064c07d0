package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobboard/internal/dtos"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/validation"
)

type JobHandler struct {
	jobs *services.JobService
	log  *slog.Logger
}

func NewJobHandler(jobs *services.JobService, log *slog.Logger) *JobHandler {
	return &JobHandler{jobs: jobs, log: log}
}

// Index is GET /api/jobs, a fixed-size paginated listing.
func (h *JobHandler) Index(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, listErr := h.jobs.List(c.Request.Context(), page, "/api/jobs")
	if listErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list job postings."})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Store is POST /api/jobs.
func (h *JobHandler) Store(c *gin.Context) {
	var in dtos.JobPostingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	if errs := validation.JobPosting(&in, true); errs.Any() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	user := middleware.CurrentUser(c)
	job, err := h.jobs.Create(c.Request.Context(), &in, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create job posting."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Job posting created successfully.",
		"data":    job,
	})
}

// Show is GET /api/jobs/:id.
func (h *JobHandler) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found."})
		return
	}

	job, err := h.jobs.Get(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, models.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load job posting."})
		return
	}
	c.JSON(http.StatusOK, job)
}

// Update is PUT /api/jobs/:id. Validation runs before the ownership check, so
// a non-owner submitting bad data still sees the 422 first.
func (h *JobHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found."})
		return
	}

	var in dtos.JobPostingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	if errs := validation.JobPosting(&in, true); errs.Any() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	user := middleware.CurrentUser(c)
	job, err := h.jobs.Update(c.Request.Context(), uint(id), &in, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Item not found."})
		case errors.Is(err, models.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update job posting."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Job posting updated successfully.",
		"data":    job,
	})
}
