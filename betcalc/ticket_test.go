package betcalc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/Bookielocal/models"
)

func TestTicketTotal(t *testing.T) {
	tk := models.Ticket{Entries: []models.Entry{
		mustEntry(models.Cat3Top, "123", 100, 1),
		mustEntry(models.Cat3Tod, "123", 10, 1),
		mustEntry(models.Cat2Back, "45", 5, 2),
	}}
	assert.True(t, TicketTotal(tk).Equal(d(100+10+20)))
	assert.True(t, TicketTotal(models.Ticket{}).IsZero())
}

func TestRecomputeTicket_UsesCurrentSettings(t *testing.T) {
	tk := ticket("t1", 1, "2024-03-05",
		mustEntry(models.Cat3Top, "123", 100, 1),
		mustEntry(models.Cat2Down, "45", 20, 2),
	)

	settings := testSettings()
	settings.Payouts[models.Cat3Top] = d(900)
	blocked := []models.BlockedNumber{{Number: "45", Category: models.Cat2Down, PayoutOverride: d(40), Enabled: true}}

	out, err := RecomputeTicket(tk, settings, blocked)
	require.NoError(t, err)
	assert.True(t, out.Entries[0].PerComboTotals[0].PayoutRate.Equal(d(900)))
	assert.True(t, out.Entries[1].PerComboTotals[0].PayoutRate.Equal(d(40)))
	assert.True(t, out.BillTotal.Equal(TicketTotal(out)))
	assert.True(t, out.BillTotal.Equal(d(140)))

	// the original ticket is untouched
	assert.True(t, tk.Entries[0].PerComboTotals[0].PayoutRate.Equal(d(800)))
}

func TestRecomputeTicket_InvalidEntry(t *testing.T) {
	tk := models.Ticket{Entries: []models.Entry{
		{Category: models.Cat3Top, Raw: "123", UnitPrice: d(1), Quantity: 1},
		{Category: models.Cat3Top, Raw: "12", UnitPrice: d(1), Quantity: 1},
	}}
	_, err := RecomputeTicket(tk, testSettings(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestMergeDuplicateEntries(t *testing.T) {
	entries := []models.Entry{
		mustEntry(models.Cat3Top, "123", 10, 1),
		mustEntry(models.Cat2Top, "45", 10, 1),
		mustEntry(models.Cat3Top, "123", 10, 2),
		mustEntry(models.Cat3Tod, "123", 10, 1),
		mustEntry(models.Cat2Top, "45", 10, 3),
	}

	merged := MergeDuplicateEntries(entries)
	require.Len(t, merged, 3)

	assert.Equal(t, models.Cat3Top, merged[0].Category)
	assert.Equal(t, 3, merged[0].Quantity)
	assert.True(t, merged[0].Total.Equal(d(30)))
	assert.True(t, merged[0].PerComboTotals[0].SoldAmount.Equal(d(30)))
	assert.Equal(t, 3, merged[0].PerComboTotals[0].Quantity)

	assert.Equal(t, models.Cat2Top, merged[1].Category)
	assert.Equal(t, 4, merged[1].Quantity)
	assert.True(t, merged[1].Total.Equal(d(40)))

	assert.Equal(t, models.Cat3Tod, merged[2].Category)

	// inputs are not modified
	assert.Equal(t, 1, entries[0].Quantity)
	assert.True(t, entries[0].PerComboTotals[0].SoldAmount.Equal(d(10)))
}

func TestMergeDuplicateEntries_MatchesFreshComputation(t *testing.T) {
	merged := MergeDuplicateEntries([]models.Entry{
		mustEntry(models.Cat3Tod, "112", 10, 1),
		mustEntry(models.Cat3Tod, "112", 10, 4),
	})
	require.Len(t, merged, 1)
	fresh := mustEntry(models.Cat3Tod, "112", 10, 5)
	assert.True(t, merged[0].Total.Equal(fresh.Total))
	for i := range fresh.PerComboTotals {
		assert.True(t, merged[0].PerComboTotals[i].SoldAmount.Equal(fresh.PerComboTotals[i].SoldAmount))
	}
}

func TestMergeSamePriceEntries_KeepsDifferentPricesApart(t *testing.T) {
	entries := []models.Entry{
		mustEntry(models.Cat3Top, "123", 10, 1),
		mustEntry(models.Cat3Top, "123", 20, 1),
		mustEntry(models.Cat3Top, "123", 10, 2),
	}

	merged := MergeSamePriceEntries(entries)
	require.Len(t, merged, 2)
	assert.True(t, merged[0].UnitPrice.Equal(d(10)))
	assert.Equal(t, 3, merged[0].Quantity)
	assert.True(t, merged[0].Total.Equal(d(30)))
	assert.True(t, merged[1].UnitPrice.Equal(d(20)))
	assert.Equal(t, 1, merged[1].Quantity)

	// "10" and "10.00" are the same price
	same := mustEntry(models.Cat3Top, "123", 10, 1)
	same.UnitPrice = decimal.RequireFromString("10.00")
	assert.Len(t, MergeSamePriceEntries([]models.Entry{entries[0], same}), 1)
}

func TestMergeSamePriceEntries_StableUnderRecompute(t *testing.T) {
	tk := ticket("t1", 1, "2024-03-05", MergeSamePriceEntries([]models.Entry{
		mustEntry(models.Cat3Top, "123", 10, 1),
		mustEntry(models.Cat3Top, "123", 20, 1),
		mustEntry(models.Cat3Tod, "112", 5, 1),
		mustEntry(models.Cat3Tod, "112", 5, 3),
	})...)
	require.True(t, tk.BillTotal.Equal(d(50)))

	out, err := RecomputeTicket(tk, testSettings(), nil)
	require.NoError(t, err)
	assert.True(t, out.BillTotal.Equal(tk.BillTotal), "bill %s became %s", tk.BillTotal, out.BillTotal)
	assert.True(t, TicketExpectedPayout(out).Equal(TicketExpectedPayout(tk)))
}
