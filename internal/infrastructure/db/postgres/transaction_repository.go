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

type transactionRow struct {
	ID             string    `gorm:"column:id;primaryKey"`
	ContractorID   string    `gorm:"column:contractor_id;index"`
	CompanyID      string    `gorm:"column:company_id;index"`
	USDCPrice      string    `gorm:"column:usdc_price"`
	USDCAmount     string    `gorm:"column:usdc_amount"`
	FiatEquivalent string    `gorm:"column:fiat_equivalent"`
	Status         string    `gorm:"column:status"`
	TxHash         string    `gorm:"column:tx_hash;uniqueIndex"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (transactionRow) TableName() string { return "transactions" }

func (r transactionRow) toDomain() (domain.Transaction, error) {
	price, err := decimal.NewFromString(r.USDCPrice)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: bad price %q: %w", r.ID, r.USDCPrice, err)
	}
	amount, err := decimal.NewFromString(r.USDCAmount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("transaction %s: bad amount %q: %w", r.ID, r.USDCAmount, err)
	}
	return domain.Transaction{
		ID:             r.ID,
		ContractorID:   r.ContractorID,
		CompanyID:      r.CompanyID,
		Price:          price,
		Amount:         amount,
		FiatEquivalent: r.FiatEquivalent,
		Status:         r.Status,
		TxHash:         r.TxHash,
		CreatedAt:      r.CreatedAt,
	}, nil
}

// TransactionRepository persists payment records.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	row := transactionRow{
		ID:             t.ID,
		ContractorID:   t.ContractorID,
		CompanyID:      t.CompanyID,
		USDCPrice:      t.Price.String(),
		USDCAmount:     t.Amount.String(),
		FiatEquivalent: t.FiatEquivalent,
		Status:         t.Status,
		TxHash:         t.TxHash,
		CreatedAt:      t.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindByHash(ctx context.Context, txHash string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var row transactionRow
	err := r.db.WithContext(ctx).First(&row, "tx_hash = ?", txHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find transaction by hash: %w", err)
	}
	t, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) ListByContractor(ctx context.Context, contractorID string) ([]domain.Transaction, error) {
	return r.list(ctx, "contractor_id = ?", contractorID)
}

func (r *TransactionRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Transaction, error) {
	return r.list(ctx, "company_id = ?", companyID)
}

func (r *TransactionRepository) list(ctx context.Context, query string, arg string) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rows []transactionRow
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	txs := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}
