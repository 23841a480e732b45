package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rodnnnney/consensus25/internal/metrics"
	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

var errMissingJobFields = errors.New("title and rate are required")

// JobService implements the job posting write path and the global job list.
// Posting never touches a held snapshot; callers refresh afterwards.
type JobService struct {
	jobs        ports.JobRepository
	freelancers ports.FreelancerRepository
	log         zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, freelancers ports.FreelancerRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, freelancers: freelancers, log: log}
}

// Post inserts one posting owned by the freelancer. Presence checks only;
// the rate is stored as provided.
func (s *JobService) Post(ctx context.Context, input ports.PostJobInput) (*domain.JobPosting, error) {
	if input.FreelancerID == "" {
		return nil, domain.ErrNoSession
	}
	if strings.TrimSpace(input.Title) == "" || input.Rate.IsZero() {
		return nil, errMissingJobFields
	}

	job := &domain.JobPosting{
		FreelancerID: input.FreelancerID,
		Title:        input.Title,
		Description:  input.Description,
		Skills:       input.Skills,
		Rate:         input.Rate,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.log.Error().Err(err).Str("freelancer_id", input.FreelancerID).Msg("failed to create job posting")
		return nil, fmt.Errorf("post job: %w", err)
	}

	metrics.JobsPostedTotal.Inc()
	s.log.Info().
		Str("job_id", job.ID).
		Str("freelancer_id", job.FreelancerID).
		Str("rate", job.Rate.String()).
		Msg("job posted")

	return job, nil
}

// List returns the full global job list.
func (s *JobService) List(ctx context.Context) ([]domain.JobPosting, error) {
	return s.jobs.ListAll(ctx)
}

// Get returns one posting plus its poster. The poster lookup is best-effort:
// a missing profile still returns the job, matching how the detail view
// degrades.
func (s *JobService) Get(ctx context.Context, id string) (*ports.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.JobDetail{Job: *job}
	poster, err := s.freelancers.FindByID(ctx, job.FreelancerID)
	if err != nil {
		s.log.Warn().Err(err).Str("job_id", id).Str("freelancer_id", job.FreelancerID).Msg("poster lookup failed")
	} else {
		detail.Poster = poster
	}
	return detail, nil
}
