package account

import (
	"context"
	"errors"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// New creates an account repository bound to the given session.
func New(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, create dto.AccountCreate) error {
	row := Account{
		ID:       create.ID,
		UserID:   create.UserID,
		Name:     create.Name,
		Number:   create.Number,
		SortCode: create.SortCode,
		Type:     create.Type,
		Currency: create.Currency,
		Balance:  create.Balance,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConflict
	}
	return err
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*dto.AccountRead, error) {
	var row Account
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *accountRepository) GetByUser(ctx context.Context, userID, id uuid.UUID) (*dto.AccountRead, error) {
	var row Account
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *accountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.AccountRead, error) {
	var rows []Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	result := make([]*dto.AccountRead, 0, len(rows))
	for i := range rows {
		result = append(result, mapModelToDTO(&rows[i]))
	}
	return result, nil
}

func (r *accountRepository) Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Balance != nil {
		updates["balance"] = *update.Balance
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Account{}).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

func mapModelToDTO(row *Account) *dto.AccountRead {
	return &dto.AccountRead{
		ID:        row.ID,
		UserID:    row.UserID,
		Name:      row.Name,
		Number:    row.Number,
		SortCode:  row.SortCode,
		Type:      row.Type,
		Currency:  row.Currency,
		Balance:   row.Balance,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
