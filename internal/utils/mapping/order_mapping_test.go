package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/crew_ledger/internal/core/domain"
	"github.com/SscSPs/crew_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOrderDetails_Empty(t *testing.T) {
	for _, raw := range [][]byte{nil, []byte("null"), []byte("{}")} {
		d, err := mapping.DecodeOrderDetails(raw)
		require.NoError(t, err)
		assert.Nil(t, d.BillOfMaterials)
		assert.Nil(t, d.FinancialSummary)
	}
}

func TestDecodeOrderDetails_IgnoresUnknownSections(t *testing.T) {
	raw := []byte(`{"billOfMaterials":{"items":[{"name":"tile","unit":"m2","quantity":"4","unitPrice":"12.5"}]},"botState":{"step":3}}`)
	d, err := mapping.DecodeOrderDetails(raw)
	require.NoError(t, err)
	require.NotNil(t, d.BillOfMaterials)
	assert.Len(t, d.BillOfMaterials.Items, 1)
	assert.True(t, decimal.NewFromInt(50).Equal(d.BillOfMaterials.Total()))
}

func TestDecodeOrderDetails_Malformed(t *testing.T) {
	_, err := mapping.DecodeOrderDetails([]byte(`{"billOfMaterials":`))
	assert.Error(t, err)
}

func TestOrderDetails_SummarySurvivesStorage(t *testing.T) {
	settledAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	order := domain.Order{
		OrderID:    "o-1",
		UserID:     "u-1",
		Status:     domain.StatusDone,
		TotalPrice: decimal.NewFromInt(100000),
		Details: domain.OrderDetails{FinancialSummary: &domain.FinancialSummary{
			NetProfit:  decimal.NewFromInt(80000),
			CrewShare:  decimal.NewFromInt(32000),
			OwnerShare: decimal.NewFromInt(48000),
			SettledAt:  settledAt,
		}},
	}

	m, err := mapping.ToModelOrder(order)
	require.NoError(t, err)
	assert.False(t, m.BrigadeID.Valid)

	back, err := mapping.ToDomainOrder(m)
	require.NoError(t, err)
	require.NotNil(t, back.Details.FinancialSummary)
	assert.True(t, back.Details.FinancialSummary.CrewShare.Equal(decimal.NewFromInt(32000)))
	assert.True(t, back.Details.FinancialSummary.SettledAt.Equal(settledAt))
	assert.Nil(t, back.BrigadeID)
}
