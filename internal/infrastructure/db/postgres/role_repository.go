package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rodnnnney/consensus25/internal/core/domain"
)

type userRow struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (userRow) TableName() string { return "users" }

// RoleRepository persists the principal-to-role mapping in the users table.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindRole returns the role record, or (nil, nil) when the principal has no
// row yet.
func (r *RoleRepository) FindRole(ctx context.Context, principalID string) (*domain.RoleRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row userRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", principalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.RoleRecord{ID: row.ID, Role: row.Role, CreatedAt: row.CreatedAt}, nil
}

// UpsertRole writes the role row, replacing an existing role for the same
// principal.
func (r *RoleRepository) UpsertRole(ctx context.Context, principalID, role string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := userRow{ID: principalID, Role: role, CreatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert role: %w", err)
	}
	return nil
}
