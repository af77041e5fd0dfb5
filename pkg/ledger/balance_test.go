package ledger

import (
	"testing"

	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/stretchr/testify/assert"
)

func deposit(amount int64) *dto.TransactionRead {
	return &dto.TransactionRead{Type: "deposit", Amount: amount, Status: "completed"}
}

func withdrawal(amount int64) *dto.TransactionRead {
	return &dto.TransactionRead{Type: "withdrawal", Amount: amount, Status: "completed"}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		tx       *dto.TransactionRead
		expected int64
	}{
		{name: "deposit adds", balance: 100, tx: deposit(50), expected: 150},
		{name: "withdrawal subtracts", balance: 100, tx: withdrawal(40), expected: 60},
		{name: "withdrawal can go negative", balance: 10, tx: withdrawal(25), expected: -15},
		{name: "zero amount deposit", balance: 100, tx: deposit(0), expected: 100},
		{name: "unknown type is a no-op", balance: 100, tx: &dto.TransactionRead{Type: "transfer", Amount: 99}, expected: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Apply(tt.balance, tt.tx))
		})
	}
}

func TestBalance(t *testing.T) {
	t.Run("empty history is zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Balance(nil))
		assert.Equal(t, int64(0), Balance([]*dto.TransactionRead{}))
	})

	t.Run("folds deposits and withdrawals", func(t *testing.T) {
		history := []*dto.TransactionRead{
			deposit(1000),
			withdrawal(300),
			deposit(50),
			withdrawal(750),
		}
		assert.Equal(t, int64(0), Balance(history))
	})

	t.Run("deterministic over repeated folds", func(t *testing.T) {
		history := []*dto.TransactionRead{deposit(123), withdrawal(23), deposit(400)}
		first := Balance(history)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, Balance(history))
		}
	})

	t.Run("does not mutate input", func(t *testing.T) {
		tx := deposit(500)
		Balance([]*dto.TransactionRead{tx})
		assert.Equal(t, int64(500), tx.Amount)
		assert.Equal(t, "deposit", tx.Type)
	})
}
