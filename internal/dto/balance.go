package dto

import (
	"time"

	"github.com/estatedesk/backoffice/internal/models"
	"github.com/shopspring/decimal"
)

// CreateBalanceRequest opens an amortization record for a buyer. Amounts
// travel as strings to keep decimal precision on the wire.
type CreateBalanceRequest struct {
	ClientName  string `json:"clientName" binding:"required"`
	Project     string `json:"project" binding:"required"`
	Block       string `json:"block" binding:"required"`
	Lot         string `json:"lot" binding:"required"`
	TCP         string `json:"tcp" binding:"required"`
	DownPayment string `json:"downPayment"`
	MonthsTerm  int    `json:"monthsTerm" binding:"required,gt=0"`
}

// BalanceResponse is the wire shape of an amortization record.
type BalanceResponse struct {
	BalanceID           string          `json:"balanceId"`
	ClientName          string          `json:"clientName"`
	Project             string          `json:"project"`
	Block               string          `json:"block"`
	Lot                 string          `json:"lot"`
	TCP                 decimal.Decimal `json:"tcp"`
	DownPayment         decimal.Decimal `json:"downPayment"`
	MonthsTerm          int             `json:"monthsTerm"`
	MonthlyAmortization decimal.Decimal `json:"monthlyAmortization"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	MonthsPaid          int             `json:"monthsPaid"`
	RemainingBalance    decimal.Decimal `json:"remainingBalance"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToBalanceResponse maps a model to its wire shape.
func ToBalanceResponse(b *models.Balance) BalanceResponse {
	return BalanceResponse{
		BalanceID:           b.BalanceID,
		ClientName:          b.ClientName,
		Project:             b.Project,
		Block:               b.Block,
		Lot:                 b.Lot,
		TCP:                 b.TCP,
		DownPayment:         b.DownPayment,
		MonthsTerm:          b.MonthsTerm,
		MonthlyAmortization: b.MonthlyAmortization,
		TotalPaid:           b.TotalPaid,
		MonthsPaid:          b.MonthsPaid,
		RemainingBalance:    b.RemainingBalance,
		CreatedAt:           b.CreatedAt,
	}
}

// ToBalanceResponses maps a list of models.
func ToBalanceResponses(balances []models.Balance) []BalanceResponse {
	out := make([]BalanceResponse, 0, len(balances))
	for i := range balances {
		out = append(out, ToBalanceResponse(&balances[i]))
	}
	return out
}
