package betcalc

import (
	"github.com/shopspring/decimal"

	"github.com/Fouxth/Bookielocal/models"
)

// WinningCombos lists, per category, the combos that win against result.
// Categories absent from the map (3back, 2tod, 2back) never win here.
func WinningCombos(result models.LotteryResult) map[models.Category][]string {
	win := make(map[models.Category][]string)
	if top := result.EffectiveThreeTop(); top != "" {
		win[models.Cat3Top] = []string{top}
		win[models.Cat3Tod] = []string{top}
	}
	if two := result.EffectiveTwoTop(); two != "" {
		win[models.Cat2Top] = []string{two}
	}
	if result.TwoDown != "" {
		win[models.Cat2Down] = []string{result.TwoDown}
	}
	var down []string
	for _, n := range []string{result.ThreeTod3, result.ThreeTod4} {
		if n != "" {
			down = append(down, n)
		}
	}
	if len(down) > 0 {
		win[models.Cat3Down] = down
	}
	return win
}

// IsWinningCombo reports whether combo, bet under category, wins against result.
func IsWinningCombo(category models.Category, combo string, result models.LotteryResult) bool {
	if combo == "" {
		return false
	}
	switch category {
	case models.Cat3Top, models.Cat3Tod:
		return combo == result.EffectiveThreeTop()
	case models.Cat2Top:
		return combo == result.EffectiveTwoTop()
	case models.Cat2Down:
		return combo == result.TwoDown
	case models.Cat3Down:
		return combo == result.ThreeTod3 || combo == result.ThreeTod4
	}
	return false
}

// EntryActualPayout sums payoutRate × stake over the entry's winning combos.
func EntryActualPayout(e models.Entry, result models.LotteryResult) models.Money {
	payout := decimal.Zero
	for _, pc := range e.PerComboTotals {
		if IsWinningCombo(e.Category, pc.Combo, result) {
			payout = payout.Add(pc.PayoutRate.Mul(pc.SoldAmount))
		}
	}
	return payout
}

// ComputeActualPayout is the real liability once result is posted. It supersedes the
// expected payout for reporting; the two are never added together.
func ComputeActualPayout(tickets []models.Ticket, result models.LotteryResult) models.Money {
	payout := decimal.Zero
	for _, t := range tickets {
		if t.Deleted {
			continue
		}
		for _, e := range t.Entries {
			payout = payout.Add(EntryActualPayout(e, result))
		}
	}
	return payout
}
