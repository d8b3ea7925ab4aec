package betcalc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Fouxth/Bookielocal/models"
)

// ComboKey identifies an exposure bucket. The same digits under two categories are
// different buckets ("12" 2top vs "12" 2tod).
type ComboKey struct {
	Category models.Category `json:"category"`
	Combo    string          `json:"combo"`
}

func (k ComboKey) String() string { return string(k.Category) + ":" + k.Combo }

// BlockedIndex maps (category, number) to the override payout rate of an enabled blocked number.
type BlockedIndex map[ComboKey]models.Money

// IndexBlocked keeps only enabled overrides. When several enabled rows share a
// (category, number) the first one in the slice wins.
func IndexBlocked(blocked []models.BlockedNumber) BlockedIndex {
	idx := make(BlockedIndex, len(blocked))
	for _, b := range blocked {
		if !b.Enabled {
			continue
		}
		key := ComboKey{Category: b.Category, Combo: b.Number}
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = b.PayoutOverride
	}
	return idx
}

// ComputeEntry fills Expanded, PerComboTotals and Total of entry from its category, raw
// number, unit price and quantity, using the given settings and blocked numbers.
// Nothing is returned on error.
func ComputeEntry(entry models.Entry, settings models.Setting, blocked []models.BlockedNumber) (models.Entry, error) {
	return computeEntry(entry, settings, IndexBlocked(blocked))
}

// ComputeEntryIndexed is ComputeEntry with a prebuilt BlockedIndex.
func ComputeEntryIndexed(entry models.Entry, settings models.Setting, idx BlockedIndex) (models.Entry, error) {
	return computeEntry(entry, settings, idx)
}

func computeEntry(entry models.Entry, settings models.Setting, idx BlockedIndex) (models.Entry, error) {
	expanded, err := Expand(entry.Raw, entry.Category)
	if err != nil {
		return models.Entry{}, err
	}
	if !entry.UnitPrice.IsPositive() || entry.Quantity < 1 {
		return models.Entry{}, fmt.Errorf("%w (got %s x %d)", ErrInvalidAmount, entry.UnitPrice, entry.Quantity)
	}
	defaultRate, ok := settings.PayoutFor(entry.Category)
	if !ok {
		return models.Entry{}, &ConfigError{Category: entry.Category, Field: "payout rate"}
	}

	stake := entry.Stake()
	perCombo := make([]models.PerComboTotal, 0, len(expanded))
	total := decimal.Zero
	for _, combo := range expanded {
		rate := defaultRate
		if override, ok := idx[ComboKey{Category: entry.Category, Combo: combo}]; ok {
			rate = override
		}
		perCombo = append(perCombo, models.PerComboTotal{
			Combo:      combo,
			UnitPrice:  entry.UnitPrice,
			Quantity:   entry.Quantity,
			SoldAmount: stake,
			PayoutRate: rate,
		})
		total = total.Add(stake)
	}
	if entry.Category.IsSingleCharge() {
		total = stake
	}

	out := entry
	out.Expanded = expanded
	out.PerComboTotals = perCombo
	out.Total = total
	return out, nil
}
