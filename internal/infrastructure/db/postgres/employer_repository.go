package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

type employerRow struct {
	ID              string `gorm:"column:id;primaryKey"`
	CompanyName     string `gorm:"column:company_name"`
	CompanyID       string `gorm:"column:company_id"`
	ContractAddress string `gorm:"column:contract_address"`
	Headcount       string `gorm:"column:headcount"`
	Country         string `gorm:"column:country"`
	WalletAddress   string `gorm:"column:wallet_address"`
	ProfileImage    string `gorm:"column:profile_image"`
}

func (employerRow) TableName() string { return "employers" }

func (r employerRow) toDomain() *domain.EmployerProfile {
	return &domain.EmployerProfile{
		ID:              r.ID,
		CompanyName:     r.CompanyName,
		CompanyID:       r.CompanyID,
		ContractAddress: r.ContractAddress,
		Headcount:       r.Headcount,
		Country:         r.Country,
		WalletAddress:   r.WalletAddress,
		ProfileImage:    r.ProfileImage,
	}
}

// EmployerRepository persists employer profiles.
type EmployerRepository struct {
	db *gorm.DB
}

func NewEmployerRepository(db *gorm.DB) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) FindByID(ctx context.Context, id string) (*domain.EmployerProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row employerRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileMissing
		}
		return nil, fmt.Errorf("find employer: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EmployerRepository) Create(ctx context.Context, p *domain.EmployerProfile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := employerRow{
		ID:              p.ID,
		CompanyName:     p.CompanyName,
		CompanyID:       p.CompanyID,
		ContractAddress: p.ContractAddress,
		Headcount:       p.Headcount,
		Country:         p.Country,
		WalletAddress:   p.WalletAddress,
		ProfileImage:    p.ProfileImage,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert employer: %w", err)
	}
	return nil
}
