package repository

import "context"

// UnitOfWork provides transaction boundaries and repository access in
// one abstraction. Repositories obtained inside Do are bound to the
// in-flight storage transaction, so a group of reads and writes either
// all commit or all roll back. Repositories obtained outside Do run in
// auto-commit mode, which suits lock-free reads.
//
// Keeping repository access on the UnitOfWork prevents a service from
// accidentally mixing sessions and breaking atomicity, and makes the
// whole seam mockable in tests.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed
	// to fn hands out transaction-bound repositories. If fn returns an
	// error the transaction is rolled back wholesale and the error is
	// returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
