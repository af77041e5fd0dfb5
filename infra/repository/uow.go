// Package repository implements the storage contracts of
// pkg/repository against GORM, one sub-package per entity, plus the
// unit of work that binds them all to a single database transaction.
package repository

import (
	"context"

	"github.com/amirasaad/ledger/infra/repository/account"
	"github.com/amirasaad/ledger/infra/repository/transaction"
	"github.com/amirasaad/ledger/infra/repository/user"
	"github.com/amirasaad/ledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundaries and repository access in one
// abstraction. Repositories handed out inside Do share the in-flight
// *gorm.DB transaction; outside Do they run on the base session in
// auto-commit mode.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a database transaction; any error rolls it back
// wholesale.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// AccountRepository returns an account repository bound to the current
// session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return account.New(u.session()), nil
}

// TransactionRepository returns a transaction repository bound to the
// current session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return transaction.New(u.session()), nil
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return user.New(u.session()), nil
}

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&account.Account{},
		&transaction.Transaction{},
	)
}
