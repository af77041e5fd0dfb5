// Package domain holds the types and error taxonomy shared by every
// layer of the ledger. Errors are sentinel values: services resolve a
// failure to exactly one of these, and the HTTP boundary maps each to a
// stable status code. Anything not in this set is an infrastructure
// error and propagates unchanged.
package domain

import "errors"

var (
	// ErrAccountNotFound is returned when an account does not exist or is
	// owned by another user. The two causes are deliberately merged so a
	// response never leaks whether a foreign account exists.
	ErrAccountNotFound = errors.New("account not found")

	// ErrTransactionNotFound is returned when a transaction does not exist
	// or is owned by another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrCurrencyMismatch is returned when a transaction's currency differs
	// from its account's currency.
	ErrCurrencyMismatch = errors.New("currency must be equal to account currency")

	// ErrUnsupportedCurrency is returned for currency codes the ledger does
	// not accept.
	ErrUnsupportedCurrency = errors.New("unsupported currency code")

	// ErrAmountMustBeNonNegative is returned when a transaction amount is
	// negative.
	ErrAmountMustBeNonNegative = errors.New("amount must be a non-negative integer")

	// ErrInvalidIdempotencyKey is returned when an idempotency key is
	// present but not a well-formed UUID.
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be a valid UUID")

	// ErrInsufficientFunds is the business rejection for a withdrawal that
	// would drive the account balance below zero. The transaction is
	// durably recorded as failed when this is returned.
	ErrInsufficientFunds = errors.New("insufficient funds to process transaction")

	// ErrConflict is returned when a uniqueness constraint would be
	// violated, e.g. a duplicate account name or email.
	ErrConflict = errors.New("resource already exists")

	// ErrUserUnauthorized is returned when credentials or a token cannot be
	// verified.
	ErrUserUnauthorized = errors.New("user unauthorized")
)
