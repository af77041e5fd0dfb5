package currency_test

import (
	"testing"

	"github.com/amirasaad/ledger/pkg/currency"
	"github.com/stretchr/testify/assert"
)

func TestIsValidFormat(t *testing.T) {
	assert.True(t, currency.IsValidFormat("GBP"))
	assert.True(t, currency.IsValidFormat("XXX"))
	assert.False(t, currency.IsValidFormat("gbp"))
	assert.False(t, currency.IsValidFormat("GBPX"))
	assert.False(t, currency.IsValidFormat(""))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, currency.IsSupported(currency.GBP))
	assert.True(t, currency.IsSupported(currency.USD))
	assert.False(t, currency.IsSupported(currency.Code("XXX")))
}

func TestGetMeta(t *testing.T) {
	meta := currency.GBP.Get()
	assert.Equal(t, 2, meta.Decimals)
	assert.Equal(t, "£", meta.Symbol)
}
