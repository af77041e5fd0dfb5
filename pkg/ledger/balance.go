// Package ledger is the serialization core of the service. It owns the
// balance calculator, the per-account lock coordinator, and the
// processor that moves a pending transaction to its terminal state while
// guaranteeing the account balance never goes negative under concurrent
// submission.
package ledger

import (
	"github.com/amirasaad/ledger/pkg/domain/account"
	"github.com/amirasaad/ledger/pkg/dto"
)

// Apply returns the balance after applying one transaction: deposits
// add their amount, withdrawals subtract it, anything else leaves the
// balance unchanged.
func Apply(balance int64, tx *dto.TransactionRead) int64 {
	switch account.TransactionType(tx.Type) {
	case account.TypeDeposit:
		return balance + tx.Amount
	case account.TypeWithdrawal:
		return balance - tx.Amount
	default:
		return balance
	}
}

// Balance folds a set of completed transactions, in the order given,
// into an account balance. Callers pass the completed set in creation
// order. The fold is pure: it never mutates its input and the same set
// always yields the same value.
//
// The balance is always recomputed from the full completed set rather
// than maintained incrementally. O(n) per processing attempt, but the
// cached account balance can never silently diverge from the
// transaction history.
func Balance(completed []*dto.TransactionRead) int64 {
	var balance int64
	for _, tx := range completed {
		balance = Apply(balance, tx)
	}
	return balance
}
