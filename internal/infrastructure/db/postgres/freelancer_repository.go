package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

type freelancerRow struct {
	ID            string `gorm:"column:id;primaryKey"`
	FirstName     string `gorm:"column:first_name"`
	LastName      string `gorm:"column:last_name"`
	TaxID         string `gorm:"column:tax_id"`
	Country       string `gorm:"column:country"`
	WalletAddress string `gorm:"column:wallet_address"`
	EmployerID    string `gorm:"column:employer_id;index"`
	Email         string `gorm:"column:email"`
	ProfileImage  string `gorm:"column:profile_image"`
	Bio           string `gorm:"column:bio"`
	Twitter       string `gorm:"column:twitter"`
	Site          string `gorm:"column:site"`
	Farcaster     string `gorm:"column:farcaster"`
}

func (freelancerRow) TableName() string { return "freelancers" }

func (r freelancerRow) toDomain() domain.FreelancerProfile {
	return domain.FreelancerProfile{
		ID:            r.ID,
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		TaxID:         r.TaxID,
		Country:       r.Country,
		WalletAddress: r.WalletAddress,
		EmployerID:    r.EmployerID,
		Email:         r.Email,
		ProfileImage:  r.ProfileImage,
		Bio:           r.Bio,
		Twitter:       r.Twitter,
		Site:          r.Site,
		Farcaster:     r.Farcaster,
	}
}

func fromDomainFreelancer(p *domain.FreelancerProfile) freelancerRow {
	return freelancerRow{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		TaxID:         p.TaxID,
		Country:       p.Country,
		WalletAddress: p.WalletAddress,
		EmployerID:    p.EmployerID,
		Email:         p.Email,
		ProfileImage:  p.ProfileImage,
		Bio:           p.Bio,
		Twitter:       p.Twitter,
		Site:          p.Site,
		Farcaster:     p.Farcaster,
	}
}

// FreelancerRepository persists freelancer profiles.
type FreelancerRepository struct {
	db *gorm.DB
}

func NewFreelancerRepository(db *gorm.DB) *FreelancerRepository {
	return &FreelancerRepository{db: db}
}

func (r *FreelancerRepository) FindByID(ctx context.Context, id string) (*domain.FreelancerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row freelancerRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileMissing
		}
		return nil, fmt.Errorf("find freelancer: %w", err)
	}
	p := row.toDomain()
	return &p, nil
}

func (r *FreelancerRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.FreelancerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []freelancerRow
	if err := r.db.WithContext(ctx).Where("employer_id = ?", employerID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list freelancers by employer: %w", err)
	}
	return toDomainFreelancers(rows), nil
}

func (r *FreelancerRepository) ListAll(ctx context.Context) ([]domain.FreelancerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []freelancerRow
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list freelancers: %w", err)
	}
	return toDomainFreelancers(rows), nil
}

func (r *FreelancerRepository) Create(ctx context.Context, p *domain.FreelancerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := fromDomainFreelancer(p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert freelancer: %w", err)
	}
	return nil
}

// Update applies only the fields set in upd.
func (r *FreelancerRepository) Update(ctx context.Context, id string, upd ports.FreelancerProfileUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cols := map[string]any{}
	if upd.Bio != nil {
		cols["bio"] = *upd.Bio
	}
	if upd.Twitter != nil {
		cols["twitter"] = *upd.Twitter
	}
	if upd.Site != nil {
		cols["site"] = *upd.Site
	}
	if upd.Farcaster != nil {
		cols["farcaster"] = *upd.Farcaster
	}
	if upd.WalletAddress != nil {
		cols["wallet_address"] = *upd.WalletAddress
	}
	if upd.ProfileImage != nil {
		cols["profile_image"] = *upd.ProfileImage
	}
	if len(cols) == 0 {
		return nil
	}

	res := r.db.WithContext(ctx).Model(&freelancerRow{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return fmt.Errorf("update freelancer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileMissing
	}
	return nil
}

func toDomainFreelancers(rows []freelancerRow) []domain.FreelancerProfile {
	out := make([]domain.FreelancerProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
