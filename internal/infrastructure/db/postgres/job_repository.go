package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

type jobRow struct {
	ID           string    `gorm:"column:id;primaryKey"`
	FreelancerID string    `gorm:"column:userid;index"`
	Header       string    `gorm:"column:header"`
	Skills       string    `gorm:"column:skills"`
	Rate         string    `gorm:"column:rate"`
	Description  string    `gorm:"column:description"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (jobRow) TableName() string { return "jobs" }

func (r jobRow) toDomain() (domain.JobPosting, error) {
	rate, err := decimal.NewFromString(r.Rate)
	if err != nil {
		return domain.JobPosting{}, fmt.Errorf("job %s: bad rate %q: %w", r.ID, r.Rate, err)
	}
	return domain.JobPosting{
		ID:           r.ID,
		FreelancerID: r.FreelancerID,
		Title:        r.Header,
		Description:  r.Description,
		Skills:       domain.SplitSkills(r.Skills),
		Rate:         rate,
		CreatedAt:    r.CreatedAt,
	}, nil
}

// JobRepository persists job postings.
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.JobPosting) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	row := jobRow{
		ID:           j.ID,
		FreelancerID: j.FreelancerID,
		Header:       j.Title,
		Skills:       domain.JoinSkills(j.Skills),
		Rate:         j.Rate.String(),
		Description:  j.Description,
		CreatedAt:    j.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row jobRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	j, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) ListAll(ctx context.Context) ([]domain.JobPosting, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []jobRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]domain.JobPosting, 0, len(rows))
	for _, row := range rows {
		j, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}
