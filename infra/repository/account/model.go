package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is the persisted account row. Seq is the internal storage key
// and is never exposed outside this package; the public identifier is
// the UUID. creation order of rows follows Seq.
type Account struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_accounts_user_name"`
	Name      string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_accounts_user_name"`
	Number    string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_accounts_number_sort"`
	SortCode  string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_accounts_number_sort"`
	Type      string    `gorm:"type:varchar(32);not null;default:'personal'"`
	Currency  string    `gorm:"type:varchar(3);not null"`
	Balance   int64     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}
