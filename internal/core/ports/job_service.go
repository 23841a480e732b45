package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// PostJobInput carries the fields a freelancer submits for a new posting.
// Only presence is validated; the rate is stored as provided.
type PostJobInput struct {
	FreelancerID string
	Title        string
	Description  string
	Skills       []string
	Rate         decimal.Decimal
}

// JobDetail pairs a posting with its poster for display lookups.
type JobDetail struct {
	Job    domain.JobPosting
	Poster *domain.FreelancerProfile
}

// JobService covers the job posting write path and the global job list.
// Posting does not touch any held snapshot; the caller triggers a refresh.
type JobService interface {
	Post(ctx context.Context, input PostJobInput) (*domain.JobPosting, error)
	List(ctx context.Context) ([]domain.JobPosting, error)
	Get(ctx context.Context, id string) (*JobDetail, error)
}
