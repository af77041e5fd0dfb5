// Package currency defines the currency codes the ledger accepts and
// metadata about them. Amounts are always carried in the smallest unit
// of their currency (pence, cents), so the only metadata that matters
// here is the set of supported codes and their decimal places.
package currency

import "regexp"

// Code is an ISO 4217 currency code, e.g. "GBP".
type Code string

const (
	GBP Code = "GBP"
	USD Code = "USD"
	EUR Code = "EUR"
)

// DefaultCurrency is the fallback currency code.
const DefaultCurrency = GBP

// Meta holds currency-specific metadata.
type Meta struct {
	Decimals int
	Symbol   string
}

var supported = map[Code]Meta{
	GBP: {Decimals: 2, Symbol: "£"},
	USD: {Decimals: 2, Symbol: "$"},
	EUR: {Decimals: 2, Symbol: "€"},
}

var codeFormat = regexp.MustCompile(`^[A-Z]{3}$`)

// IsValidFormat reports whether s looks like an ISO 4217 code
// (three uppercase letters). It says nothing about support.
func IsValidFormat(s string) bool {
	return codeFormat.MatchString(s)
}

// IsSupported reports whether the ledger accepts the given code.
func IsSupported(c Code) bool {
	_, ok := supported[c]
	return ok
}

// Get returns metadata for a supported code. The zero Meta is returned
// for unknown codes.
func (c Code) Get() Meta {
	return supported[c]
}

func (c Code) String() string {
	return string(c)
}
