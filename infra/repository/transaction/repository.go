package transaction

import (
	"context"
	"errors"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the given session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, create dto.TransactionCreate) error {
	row := Transaction{
		ID:        create.ID,
		UserID:    create.UserID,
		AccountID: create.AccountID,
		Amount:    create.Amount,
		Currency:  create.Currency,
		Type:      create.Type,
		Status:    create.Status,
		Reference: create.Reference,
	}
	if create.IdempotencyKey != "" {
		key := create.IdempotencyKey
		row.IdempotencyKey = &key
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TransactionRead, error) {
	var row Transaction
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *transactionRepository) GetByUser(ctx context.Context, userID, accountID, id uuid.UUID) (*dto.TransactionRead, error) {
	var row Transaction
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND user_id = ? AND account_id = ?", id, userID, accountID).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *transactionRepository) GetByIdempotencyKey(ctx context.Context, userID, accountID uuid.UUID, key string) (*dto.TransactionRead, error) {
	var row Transaction
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND account_id = ? AND idempotency_key = ?", userID, accountID, key).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *transactionRepository) ListByAccount(ctx context.Context, userID, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND account_id = ?", userID, accountID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *transactionRepository) ListCompletedByAccount(ctx context.Context, accountID uuid.UUID) ([]*dto.TransactionRead, error) {
	var rows []Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, "completed").
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapModelsToDTOs(rows), nil
}

func (r *transactionRepository) Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error {
	updates := make(map[string]any)
	if update.Status != nil {
		updates["status"] = *update.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Transaction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrTransactionNotFound
	}
	return err
}

func mapModelToDTO(row *Transaction) *dto.TransactionRead {
	read := &dto.TransactionRead{
		ID:        row.ID,
		UserID:    row.UserID,
		AccountID: row.AccountID,
		Amount:    row.Amount,
		Currency:  row.Currency,
		Type:      row.Type,
		Status:    row.Status,
		Reference: row.Reference,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.IdempotencyKey != nil {
		read.IdempotencyKey = *row.IdempotencyKey
	}
	return read
}

func mapModelsToDTOs(rows []Transaction) []*dto.TransactionRead {
	result := make([]*dto.TransactionRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result
}
