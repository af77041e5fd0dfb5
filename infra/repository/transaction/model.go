package transaction

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is the persisted transaction row. Seq is the internal
// storage key, never exposed; it also fixes creation order for the
// balance fold. IdempotencyKey is NULL when the caller supplied none, so
// the composite unique index only bites on real keys.
type Transaction struct {
	Seq            int64     `gorm:"primaryKey;autoIncrement"`
	ID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tx_idempotency"`
	AccountID      uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:idx_tx_idempotency"`
	Amount         int64     `gorm:"not null;default:0"`
	Currency       string    `gorm:"type:varchar(3);not null"`
	Type           string    `gorm:"type:varchar(32);not null"`
	Status         string    `gorm:"type:varchar(32);not null;default:'pending'"`
	Reference      string    `gorm:"type:varchar(256)"`
	IdempotencyKey *string   `gorm:"type:varchar(64);uniqueIndex:idx_tx_idempotency"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
