package betcalc

import (
	"sort"

	"github.com/Fouxth/Bookielocal/models"
)

// The two exposure thresholds deliberately compare differently: a risky number must be
// strictly above the threshold, a number ceiling is hit once the total reaches the max.
var (
	IsRisky         = func(sold, threshold models.Money) bool { return sold.GreaterThan(threshold) }
	ReachesCeiling  = func(total, ceiling models.Money) bool { return total.GreaterThanOrEqual(ceiling) }
	ExceedsComboMax = func(total, ceiling models.Money) bool { return total.GreaterThan(ceiling) }
)

type RiskyNumber struct {
	Category   models.Category `json:"category"`
	Combo      string          `json:"combo"`
	SoldAmount models.Money    `json:"sold_amount"`
}

// CeilingViolation describes the first combo of a new entry that would push its bucket
// over the per-combo ceiling.
type CeilingViolation struct {
	Category models.Category `json:"category"`
	Combo    string          `json:"combo"`
	Current  models.Money    `json:"current"`
	Adding   models.Money    `json:"adding"`
	Total    models.Money    `json:"total"`
	Max      models.Money    `json:"max"`
}

type NumberTotal struct {
	Category       models.Category `json:"category"`
	Number         string          `json:"number"`
	Total          models.Money    `json:"total"`
	ExceedsCeiling bool            `json:"exceeds_ceiling"`
}

// AggregateComboSales sums sold amounts per (category, combo) over non-deleted tickets.
func AggregateComboSales(tickets []models.Ticket) map[ComboKey]models.Money {
	sales := make(map[ComboKey]models.Money)
	for _, t := range tickets {
		if t.Deleted {
			continue
		}
		for _, e := range t.Entries {
			for _, pc := range e.PerComboTotals {
				key := ComboKey{Category: e.Category, Combo: pc.Combo}
				sales[key] = sales[key].Add(pc.SoldAmount)
			}
		}
	}
	return sales
}

// FindRiskyNumbers returns every bucket whose sold amount is strictly above threshold,
// largest first; ties are ordered by category then combo.
func FindRiskyNumbers(tickets []models.Ticket, threshold models.Money) []RiskyNumber {
	risky := make([]RiskyNumber, 0)
	for key, sold := range AggregateComboSales(tickets) {
		if IsRisky(sold, threshold) {
			risky = append(risky, RiskyNumber{Category: key.Category, Combo: key.Combo, SoldAmount: sold})
		}
	}
	sort.Slice(risky, func(i, j int) bool {
		if c := risky[i].SoldAmount.Cmp(risky[j].SoldAmount); c != 0 {
			return c > 0
		}
		if risky[i].Category != risky[j].Category {
			return risky[i].Category < risky[j].Category
		}
		return risky[i].Combo < risky[j].Combo
	})
	return risky
}

// CheckCeilingViolation simulates adding newEntry (already computed) on top of the existing
// sales. It only reports; enforcing the ceiling is up to the caller.
func CheckCeilingViolation(tickets []models.Ticket, newEntry models.Entry, settings models.Setting) *CeilingViolation {
	sales := AggregateComboSales(tickets)
	ceiling := settings.Ceilings.PerComboMax
	for _, pc := range newEntry.PerComboTotals {
		key := ComboKey{Category: newEntry.Category, Combo: pc.Combo}
		current := sales[key]
		total := current.Add(pc.SoldAmount)
		if ExceedsComboMax(total, ceiling) {
			return &CeilingViolation{
				Category: newEntry.Category,
				Combo:    pc.Combo,
				Current:  current,
				Adding:   pc.SoldAmount,
				Total:    total,
				Max:      ceiling,
			}
		}
	}
	return nil
}

// NumberTotals totals the stake per (category, expanded number) for tickets dated exactly
// date. ExceedsCeiling is inclusive: total >= perNumberMax.
func NumberTotals(tickets []models.Ticket, date string, perNumberMax models.Money) map[ComboKey]NumberTotal {
	totals := make(map[ComboKey]NumberTotal)
	for _, t := range tickets {
		if t.Deleted || t.Date != date {
			continue
		}
		for _, e := range t.Entries {
			stake := e.Stake()
			for _, n := range e.Expanded {
				key := ComboKey{Category: e.Category, Combo: n}
				nt := totals[key]
				nt.Category = e.Category
				nt.Number = n
				nt.Total = nt.Total.Add(stake)
				totals[key] = nt
			}
		}
	}
	for key, nt := range totals {
		nt.ExceedsCeiling = ReachesCeiling(nt.Total, perNumberMax)
		totals[key] = nt
	}
	return totals
}

// SortedNumberTotals flattens NumberTotals for display, largest total first.
func SortedNumberTotals(totals map[ComboKey]NumberTotal) []NumberTotal {
	out := make([]NumberTotal, 0, len(totals))
	for _, nt := range totals {
		out = append(out, nt)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Number < out[j].Number
	})
	return out
}
