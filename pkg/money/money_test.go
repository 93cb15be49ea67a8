package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCLP(t *testing.T) {
	cases := []struct {
		in   decimal.Decimal
		want string
	}{
		{decimal.NewFromInt(0), "$0"},
		{decimal.NewFromInt(999), "$999"},
		{decimal.NewFromInt(25000), "$25.000"},
		{decimal.NewFromInt(1000000), "$1.000.000"},
		{decimal.RequireFromString("3262.5"), "$3.263"},
		{decimal.NewFromInt(-4500), "-$4.500"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatCLP(c.in), c.in.String())
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "$49.990", FormatInt(49990))
}
