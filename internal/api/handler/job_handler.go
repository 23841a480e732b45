package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

// JobHandler handles the job posting write path and the global list.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

type postJobRequest struct {
	Title       string   `json:"header" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Skills      []string `json:"skills" validate:"required,min=1"`
	Rate        string   `json:"rate" validate:"required"`
}

type jobListResponse struct {
	Jobs []domain.JobPosting `json:"jobs"`
}

type jobDetailResponse struct {
	Job    domain.JobPosting         `json:"job"`
	Poster *domain.FreelancerProfile `json:"poster,omitempty"`
}

// Post handles POST /v1/jobs (freelancer only). The posting lands in the
// store; the caller refreshes its snapshot to see it.
func (h *JobHandler) Post(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	rate, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rate must be a decimal number"})
	}

	job, err := h.service.Post(c.Request().Context(), ports.PostJobInput{
		FreelancerID: session.Principal.ID,
		Title:        req.Title,
		Description:  req.Description,
		Skills:       req.Skills,
		Rate:         rate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, job)
}

// List handles GET /v1/jobs.
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobListResponse{Jobs: jobs})
}

// Get handles GET /v1/jobs/:id.
func (h *JobHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobDetailResponse{Job: detail.Job, Poster: detail.Poster})
}
