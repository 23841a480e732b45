package ports

import (
	"context"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

// JobRepository persists job postings (jobs table).
type JobRepository interface {
	Create(ctx context.Context, j *domain.JobPosting) error
	FindByID(ctx context.Context, id string) (*domain.JobPosting, error)
	// ListAll returns the full global job list, newest first.
	ListAll(ctx context.Context) ([]domain.JobPosting, error)
}
