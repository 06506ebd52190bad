package amortization

import "github.com/shopspring/decimal"

// MonthlyAmortization computes the flat monthly due: (TCP - down payment)
// spread over the term, rounded to centavos.
func MonthlyAmortization(tcp, downPayment decimal.Decimal, monthsTerm int) decimal.Decimal {
	if monthsTerm <= 0 {
		return decimal.Zero
	}
	financed := tcp.Sub(downPayment)
	if financed.IsNegative() {
		return decimal.Zero
	}
	return financed.DivRound(decimal.NewFromInt(int64(monthsTerm)), 2)
}

// RemainingBalance computes what the buyer still owes on the contract.
// It never goes below zero; overpayments simply zero the balance.
func RemainingBalance(tcp, downPayment, totalPaid decimal.Decimal) decimal.Decimal {
	remaining := tcp.Sub(downPayment).Sub(totalPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// MonthsPaid counts how many full monthly dues the accumulated payments cover.
func MonthsPaid(totalPaid, monthly decimal.Decimal) int {
	if monthly.IsZero() || monthly.IsNegative() {
		return 0
	}
	return int(totalPaid.Div(monthly).IntPart())
}
