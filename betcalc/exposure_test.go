package betcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fouxth/Bookielocal/models"
)

func TestAggregateComboSales(t *testing.T) {
	deleted := ticket("t3", 1, "2024-03-05", mustEntry(models.Cat2Top, "12", 1000, 1))
	deleted.Deleted = true
	tickets := []models.Ticket{
		ticket("t1", 1, "2024-03-05", mustEntry(models.Cat2Top, "12", 100, 1), mustEntry(models.Cat2Tod, "12", 50, 1)),
		ticket("t2", 2, "2024-03-05", mustEntry(models.Cat2Top, "12", 20, 2)),
		deleted,
	}

	sales := AggregateComboSales(tickets)
	assert.True(t, sales[ComboKey{models.Cat2Top, "12"}].Equal(d(140)))
	assert.True(t, sales[ComboKey{models.Cat2Tod, "12"}].Equal(d(50)))
	assert.True(t, sales[ComboKey{models.Cat2Tod, "21"}].Equal(d(50)))
	assert.Len(t, sales, 3)
}

func TestFindRiskyNumbers_StrictThreshold(t *testing.T) {
	tickets := []models.Ticket{
		ticket("t1", 1, "2024-03-05",
			mustEntry(models.Cat3Top, "111", 300, 1), // exactly at threshold
			mustEntry(models.Cat3Top, "222", 301, 1), // one unit above
			mustEntry(models.Cat3Top, "333", 500, 1),
		),
	}
	risky := FindRiskyNumbers(tickets, d(300))
	require.Len(t, risky, 2)
	assert.Equal(t, "333", risky[0].Combo)
	assert.Equal(t, "222", risky[1].Combo)
	assert.True(t, risky[1].SoldAmount.Equal(d(301)))
}

func TestFindRiskyNumbers_TieOrder(t *testing.T) {
	tickets := []models.Ticket{
		ticket("t1", 1, "2024-03-05",
			mustEntry(models.Cat2Top, "99", 400, 1),
			mustEntry(models.Cat2Down, "11", 400, 1),
			mustEntry(models.Cat2Down, "05", 400, 1),
		),
	}
	risky := FindRiskyNumbers(tickets, d(300))
	require.Len(t, risky, 3)
	assert.Equal(t, ComboKey{models.Cat2Down, "05"}, ComboKey{risky[0].Category, risky[0].Combo})
	assert.Equal(t, ComboKey{models.Cat2Down, "11"}, ComboKey{risky[1].Category, risky[1].Combo})
	assert.Equal(t, ComboKey{models.Cat2Top, "99"}, ComboKey{risky[2].Category, risky[2].Combo})

	assert.Empty(t, FindRiskyNumbers(nil, d(0)))
}

func TestCheckCeilingViolation(t *testing.T) {
	existing := []models.Ticket{
		ticket("t1", 1, "2024-03-05", mustEntry(models.Cat3Tod, "123", 900, 1)),
	}
	settings := testSettings() // per-combo max 1000

	ok := mustEntry(models.Cat3Tod, "321", 100, 1)
	assert.Nil(t, CheckCeilingViolation(existing, ok, settings), "900+100 equals the max, not over it")

	over := mustEntry(models.Cat3Tod, "312", 101, 1)
	v := CheckCeilingViolation(existing, over, settings)
	require.NotNil(t, v)
	assert.Equal(t, models.Cat3Tod, v.Category)
	assert.Equal(t, "123", v.Combo, "first violating combo in sorted order")
	assert.True(t, v.Current.Equal(d(900)))
	assert.True(t, v.Adding.Equal(d(101)))
	assert.True(t, v.Total.Equal(d(1001)))
	assert.True(t, v.Max.Equal(d(1000)))

	otherCategory := mustEntry(models.Cat3Top, "123", 999, 1)
	assert.Nil(t, CheckCeilingViolation(existing, otherCategory, settings))
}

func TestNumberTotals_InclusiveCeiling(t *testing.T) {
	tickets := []models.Ticket{
		ticket("t1", 1, "2024-03-05",
			mustEntry(models.Cat2Top, "12", 499, 1), // one below the max
			mustEntry(models.Cat2Down, "34", 500, 1), // exactly the max
			mustEntry(models.Cat2Tod, "56", 100, 1),
		),
		ticket("t2", 1, "2024-03-05", mustEntry(models.Cat2Tod, "65", 100, 2)),
		ticket("t3", 1, "2024-03-06", mustEntry(models.Cat2Top, "12", 1, 1)),
	}

	totals := NumberTotals(tickets, "2024-03-05", d(500))

	below := totals[ComboKey{models.Cat2Top, "12"}]
	assert.True(t, below.Total.Equal(d(499)), "other dates are ignored")
	assert.False(t, below.ExceedsCeiling)

	at := totals[ComboKey{models.Cat2Down, "34"}]
	assert.True(t, at.ExceedsCeiling, "ceiling is inclusive")

	tod := totals[ComboKey{models.Cat2Tod, "56"}]
	assert.True(t, tod.Total.Equal(d(300)))
	assert.Equal(t, "56", tod.Number)

	sorted := SortedNumberTotals(totals)
	require.Len(t, sorted, 4)
	assert.Equal(t, "34", sorted[0].Number)
}

func TestThresholdAsymmetry(t *testing.T) {
	assert.False(t, IsRisky(d(300), d(300)))
	assert.True(t, ReachesCeiling(d(300), d(300)))
	assert.False(t, ExceedsComboMax(d(300), d(300)))
}
