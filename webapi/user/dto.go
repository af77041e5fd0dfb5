package user

import (
	"time"

	"github.com/amirasaad/ledger/pkg/dto"
	userdomain "github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/google/uuid"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email       string             `json:"email" validate:"required,email"`
	Password    string             `json:"password" validate:"required,min=8"`
	Name        string             `json:"name" validate:"required"`
	Address     userdomain.Address `json:"address"`
	PhoneNumber string             `json:"phoneNumber"`
}

// PatchUserRequest is the body of PATCH /users/me.
type PatchUserRequest struct {
	Name        *string             `json:"name"`
	Address     *userdomain.Address `json:"address"`
	PhoneNumber *string             `json:"phoneNumber"`
	Password    *string             `json:"password" validate:"omitempty,min=8"`
}

// UserResponse is the external representation of a user. The password
// hash never leaves the service.
type UserResponse struct {
	ID               uuid.UUID          `json:"id"`
	Email            string             `json:"email"`
	Name             string             `json:"name"`
	Address          userdomain.Address `json:"address"`
	PhoneNumber      string             `json:"phoneNumber"`
	CreatedTimestamp time.Time          `json:"createdTimestamp"`
	UpdatedTimestamp time.Time          `json:"updatedTimestamp"`
}

func mapUserRead(u *dto.UserRead) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Address:          u.Address,
		PhoneNumber:      u.PhoneNumber,
		CreatedTimestamp: u.CreatedAt,
		UpdatedTimestamp: u.UpdatedAt,
	}
}
