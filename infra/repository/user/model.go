package user

import (
	"time"

	userdomain "github.com/amirasaad/ledger/pkg/domain/user"
	"github.com/google/uuid"
)

// User is the persisted user row. Address is stored as a JSON document.
type User struct {
	Seq         int64              `gorm:"primaryKey;autoIncrement"`
	ID          uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null"`
	Email       string             `gorm:"type:varchar(256);uniqueIndex;not null"`
	Password    string             `gorm:"type:varchar(128);not null"`
	Name        string             `gorm:"type:varchar(128);not null"`
	Address     userdomain.Address `gorm:"serializer:json"`
	PhoneNumber string             `gorm:"type:varchar(32)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
