package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

type invitationRow struct {
	ID         string    `gorm:"column:id;primaryKey"`
	Email      string    `gorm:"column:email"`
	Token      string    `gorm:"column:token;uniqueIndex"`
	EmployerID string    `gorm:"column:employer_id;index"`
	CompanyID  string    `gorm:"column:company_id"`
	Status     string    `gorm:"column:status"`
	ExpiresAt  time.Time `gorm:"column:expires_at"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (invitationRow) TableName() string { return "invitations" }

func (r invitationRow) toDomain() domain.Invitation {
	return domain.Invitation{
		ID:         r.ID,
		Email:      r.Email,
		Token:      r.Token,
		EmployerID: r.EmployerID,
		CompanyID:  r.CompanyID,
		Status:     r.Status,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.CreatedAt,
	}
}

// InvitationRepository persists employer invitations.
type InvitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) *InvitationRepository {
	return &InvitationRepository{db: db}
}

func (r *InvitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	row := invitationRow{
		ID:         inv.ID,
		Email:      inv.Email,
		Token:      inv.Token,
		EmployerID: inv.EmployerID,
		CompanyID:  inv.CompanyID,
		Status:     inv.Status,
		ExpiresAt:  inv.ExpiresAt,
		CreatedAt:  inv.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (r *InvitationRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []invitationRow
	if err := r.db.WithContext(ctx).Where("employer_id = ?", employerID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	out := make([]domain.Invitation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
