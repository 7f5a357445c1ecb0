// internal/util/format_test.go
package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	assert.Equal(t, "100.000", FormatThousands(decimal.NewFromInt(100000)))
	assert.Equal(t, "10.000", FormatThousands(decimal.NewFromInt(10000)))
	assert.Equal(t, "1.234.567", FormatThousands(decimal.RequireFromString("1234567.4")))
	assert.Equal(t, "500", FormatThousands(decimal.NewFromInt(500)))
}

func TestFormatOptionalThousands(t *testing.T) {
	assert.Equal(t, NotAvailable, FormatOptionalThousands(decimal.NullDecimal{}))
	assert.Equal(t, "25.000", FormatOptionalThousands(decimal.NewNullDecimal(decimal.NewFromInt(25000))))
}
