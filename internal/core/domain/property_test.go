package domain_test

import (
	"testing"

	"github.com/estatedesk/backoffice/internal/apperrors"
	"github.com/estatedesk/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProject(t *testing.T) {
	testCases := []struct {
		input    string
		expected domain.Project
	}{
		{"LivingWater", domain.ProjectLivingWater},
		{"living water subdivision", domain.ProjectLivingWater},
		{"  living-water  ", domain.ProjectLivingWater},
		{"Havahills", domain.ProjectHavahills},
		{"Havahills Estate", domain.ProjectHavahills},
	}
	for _, tc := range testCases {
		project, err := domain.ParseProject(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, project, tc.input)
	}

	_, err := domain.ParseProject("greenfields")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPropertyStatusEquals_CaseInsensitive(t *testing.T) {
	assert.True(t, domain.PropertyStatus("available").Equals(domain.StatusAvailable))
	assert.True(t, domain.PropertyStatus("AVAILABLE").Equals(domain.StatusAvailable))
	assert.True(t, domain.StatusSold.Equals(domain.PropertyStatus("sold")))
	assert.False(t, domain.StatusSold.Equals(domain.StatusReserved))
}

func TestLivingWaterField_NameNormalization(t *testing.T) {
	p := &domain.LivingWaterProperty{
		Block:       "5",
		Lot:         "12",
		PricePerSQM: decimal.NewFromInt(4500),
		Owner:       "Jane Doe",
	}

	// Display name, underscore and camelCase forms all resolve to the same field.
	for _, name := range []string{"Price per SQM", "price_per_sqm", "pricePerSqm"} {
		value, ok := p.Field(name)
		require.True(t, ok, name)
		assert.Equal(t, "4500", value, name)
	}

	owner, ok := p.Field("owner")
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", owner)

	_, ok = p.Field("buyers name") // Havahills-only field
	assert.False(t, ok)
}

func TestLivingWaterSetField(t *testing.T) {
	p := &domain.LivingWaterProperty{Block: "1", Lot: "2"}

	require.NoError(t, p.SetField("Owner", "Jane Doe"))
	require.NoError(t, p.SetField("tcp", "1,250,000.50"))
	assert.Equal(t, "Jane Doe", p.Owner)
	assert.True(t, p.TCP.Equal(decimal.RequireFromString("1250000.50")))

	err := p.SetField("tcp", "not-a-number")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// The composite key is immutable through field edits.
	err = p.SetField("block", "9")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = p.SetField("no such field", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestHavahillsSetField(t *testing.T) {
	p := &domain.HavahillsProperty{Block: "3", Lot: "7"}

	require.NoError(t, p.SetField("Buyers Name", "Juan dela Cruz"))
	require.NoError(t, p.SetField("amount", "50000"))
	assert.Equal(t, "Juan dela Cruz", p.BuyersName)
	assert.True(t, p.Amount.Equal(decimal.NewFromInt(50000)))

	// Living Water fields do not exist on the Havahills schema.
	err := p.SetField("Monthly Amortization", "100")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestApplyEdits_AbortsOnFirstInvalidField(t *testing.T) {
	p := &domain.LivingWaterProperty{Block: "1", Lot: "1"}
	err := domain.ApplyEdits(p, map[string]string{"bogus": "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestClearBuyerFields(t *testing.T) {
	lw := &domain.LivingWaterProperty{
		Block:               "5",
		Lot:                 "12",
		LotArea:             decimal.NewFromInt(120),
		TCP:                 decimal.NewFromInt(540000),
		Term:                "24 months",
		MonthlyAmortization: decimal.NewFromInt(22500),
		Owner:               "Jane Doe",
		Broker:              "B. Broker",
		Realty:              "Acme Realty",
		ReservationDate:     "2026-01-15",
		DueDate:             "2026-02-15",
		DateOfSale:          "2026-03-01",
		LotStatus:           domain.StatusSold,
	}
	lw.ClearBuyerFields()

	assert.Empty(t, lw.Owner)
	assert.Empty(t, lw.Broker)
	assert.Empty(t, lw.Realty)
	assert.Empty(t, lw.ReservationDate)
	assert.Empty(t, lw.DueDate)
	assert.Empty(t, lw.DateOfSale)
	assert.Empty(t, lw.Term)
	assert.True(t, lw.MonthlyAmortization.IsZero())
	// Lot identity and pricing survive a clear.
	assert.Equal(t, "5", lw.Block)
	assert.True(t, lw.TCP.Equal(decimal.NewFromInt(540000)))

	hh := &domain.HavahillsProperty{
		Block:      "2",
		Lot:        "4",
		Price:      decimal.NewFromInt(800000),
		BuyersName: "Juan dela Cruz",
		Realty:     "Acme Realty",
		SaleDate:   "2026-01-01",
		FirstDue:   "2026-02-01",
		Terms:      "12",
		Amount:     decimal.NewFromInt(66000),
	}
	hh.ClearBuyerFields()

	assert.Empty(t, hh.BuyersName)
	assert.Empty(t, hh.Realty)
	assert.Empty(t, hh.SaleDate)
	assert.Empty(t, hh.FirstDue)
	assert.Empty(t, hh.Terms)
	assert.True(t, hh.Amount.IsZero())
	assert.True(t, hh.Price.Equal(decimal.NewFromInt(800000)))
}

func TestClone_Detaches(t *testing.T) {
	original := &domain.LivingWaterProperty{Block: "1", Lot: "1", Owner: "Jane Doe"}
	clone := original.Clone()

	require.NoError(t, clone.SetField("owner", "Someone Else"))
	assert.Equal(t, "Jane Doe", original.Owner)
	assert.Equal(t, "Someone Else", clone.(*domain.LivingWaterProperty).Owner)
}
