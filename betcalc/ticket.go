package betcalc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/Bookielocal/models"
)

// TicketTotal sums the entries' totals.
func TicketTotal(t models.Ticket) models.Money {
	total := decimal.Zero
	for _, e := range t.Entries {
		total = total.Add(e.Total)
	}
	return total
}

// RecomputeTicket recomputes every entry against the current settings and blocked numbers,
// then the bill total. Past tickets are re-priced at today's rates; they are not frozen.
func RecomputeTicket(t models.Ticket, settings models.Setting, blocked []models.BlockedNumber) (models.Ticket, error) {
	return recomputeTicket(t, settings, IndexBlocked(blocked))
}

// RecomputeTicketIndexed is RecomputeTicket with a prebuilt index, for batch work.
func RecomputeTicketIndexed(t models.Ticket, settings models.Setting, idx BlockedIndex) (models.Ticket, error) {
	return recomputeTicket(t, settings, idx)
}

func recomputeTicket(t models.Ticket, settings models.Setting, idx BlockedIndex) (models.Ticket, error) {
	entries := make([]models.Entry, len(t.Entries))
	for i, e := range t.Entries {
		computed, err := computeEntry(e, settings, idx)
		if err != nil {
			return models.Ticket{}, fmt.Errorf("entry %d (%s %s): %w", i+1, e.Category, e.Raw, err)
		}
		entries[i] = computed
	}
	out := t
	out.Entries = entries
	out.BillTotal = TicketTotal(out)
	return out, nil
}

// MergeDuplicateEntries folds entries sharing (category, raw) into the first occurrence.
// Quantities and already-computed totals are summed, not recomputed, and per-combo rows are
// summed combo by combo. Order of first occurrence is kept; the input is not modified.
// The merged row keeps the first unit price, so a later recompute of entries merged across
// different prices will not reproduce the summed total. Use MergeSamePriceEntries for rows
// that are persisted.
func MergeDuplicateEntries(entries []models.Entry) []models.Entry {
	return mergeEntries(entries, func(e models.Entry) string {
		return string(e.Category) + "|" + e.Raw
	})
}

// MergeSamePriceEntries folds entries only when category, raw and unit price all match.
// Every merged row still satisfies total == computed(category, raw, unitPrice, quantity),
// so recomputing it at unchanged settings leaves it as is.
func MergeSamePriceEntries(entries []models.Entry) []models.Entry {
	return mergeEntries(entries, func(e models.Entry) string {
		return string(e.Category) + "|" + e.Raw + "|" + e.UnitPrice.String()
	})
}

func mergeEntries(entries []models.Entry, keyOf func(models.Entry) string) []models.Entry {
	out := make([]models.Entry, 0, len(entries))
	pos := make(map[string]int, len(entries))
	for _, e := range entries {
		key := keyOf(e)
		i, dup := pos[key]
		if !dup {
			e.Expanded = append([]string(nil), e.Expanded...)
			e.PerComboTotals = append([]models.PerComboTotal(nil), e.PerComboTotals...)
			pos[key] = len(out)
			out = append(out, e)
			continue
		}

		merged := &out[i]
		merged.Quantity += e.Quantity
		merged.Total = merged.Total.Add(e.Total)
		for _, pc := range e.PerComboTotals {
			j := indexOfCombo(merged.PerComboTotals, pc.Combo)
			if j < 0 {
				merged.PerComboTotals = append(merged.PerComboTotals, pc)
				continue
			}
			merged.PerComboTotals[j].Quantity += pc.Quantity
			merged.PerComboTotals[j].SoldAmount = merged.PerComboTotals[j].SoldAmount.Add(pc.SoldAmount)
		}
	}
	return out
}

func indexOfCombo(rows []models.PerComboTotal, combo string) int {
	for i := range rows {
		if rows[i].Combo == combo {
			return i
		}
	}
	return -1
}
