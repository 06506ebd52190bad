package amortization

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMonthlyAmortization(t *testing.T) {
	tcp := decimal.NewFromInt(540000)
	dp := decimal.NewFromInt(54000)

	monthly := MonthlyAmortization(tcp, dp, 24)
	assert.True(t, monthly.Equal(decimal.NewFromInt(20250)), "got %s", monthly)

	// Rounds to centavos.
	monthly = MonthlyAmortization(decimal.NewFromInt(100000), decimal.Zero, 36)
	assert.Equal(t, "2777.78", monthly.String())

	// Degenerate inputs yield zero rather than a panic.
	assert.True(t, MonthlyAmortization(tcp, dp, 0).IsZero())
	assert.True(t, MonthlyAmortization(tcp, dp, -12).IsZero())
	assert.True(t, MonthlyAmortization(dp, tcp, 24).IsZero(), "down payment above TCP")
}

func TestRemainingBalance(t *testing.T) {
	tcp := decimal.NewFromInt(540000)
	dp := decimal.NewFromInt(54000)

	remaining := RemainingBalance(tcp, dp, decimal.NewFromInt(100000))
	assert.True(t, remaining.Equal(decimal.NewFromInt(386000)), "got %s", remaining)

	// Overpayment clamps at zero.
	remaining = RemainingBalance(tcp, dp, decimal.NewFromInt(999999))
	assert.True(t, remaining.IsZero())
}

func TestMonthsPaid(t *testing.T) {
	monthly := decimal.NewFromInt(20250)

	assert.Equal(t, 0, MonthsPaid(decimal.NewFromInt(20000), monthly))
	assert.Equal(t, 1, MonthsPaid(decimal.NewFromInt(20250), monthly))
	assert.Equal(t, 2, MonthsPaid(decimal.NewFromInt(45000), monthly))

	// A zero monthly due never divides.
	assert.Equal(t, 0, MonthsPaid(decimal.NewFromInt(45000), decimal.Zero))
}
