package user

import (
	"context"
	"errors"

	"github.com/amirasaad/ledger/pkg/domain"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// New creates a user repository bound to the given session.
func New(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, create dto.UserCreate) error {
	row := User{
		ID:          create.ID,
		Email:       create.Email,
		Password:    create.Password,
		Name:        create.Name,
		Address:     create.Address,
		PhoneNumber: create.PhoneNumber,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	var row User
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return mapModelToDTO(&row), nil
}

func (r *userRepository) GetPasswordHash(ctx context.Context, id uuid.UUID) (string, error) {
	var row User
	if err := r.db.WithContext(ctx).Select("password").First(&row, "id = ?", id).Error; err != nil {
		return "", mapNotFound(err)
	}
	return row.Password, nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, update dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.PhoneNumber != nil {
		updates["phone_number"] = *update.PhoneNumber
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	if update.Address != nil {
		updates["address"] = *update.Address
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&User{}).Error
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

func mapModelToDTO(row *User) *dto.UserRead {
	return &dto.UserRead{
		ID:          row.ID,
		Email:       row.Email,
		Name:        row.Name,
		Address:     row.Address,
		PhoneNumber: row.PhoneNumber,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
