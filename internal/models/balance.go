package models

import "github.com/shopspring/decimal"

// Balance tracks a buyer's amortization against a reserved lot. One row per
// buyer name per lot; recomputed whenever a payment is approved.
type Balance struct {
	BalanceID           string          `db:"balance_id"`
	ClientName          string          `db:"client_name"`
	Project             string          `db:"project"`
	Block               string          `db:"block"`
	Lot                 string          `db:"lot"`
	TCP                 decimal.Decimal `db:"tcp"`
	DownPayment         decimal.Decimal `db:"down_payment"`
	MonthsTerm          int             `db:"months_term"`
	MonthlyAmortization decimal.Decimal `db:"monthly_amortization"`
	TotalPaid           decimal.Decimal `db:"total_paid"`
	MonthsPaid          int             `db:"months_paid"`
	RemainingBalance    decimal.Decimal `db:"remaining_balance"`
	AuditFields
}
