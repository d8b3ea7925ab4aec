package betcalc

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/Fouxth/Bookielocal/models"
)

// Validate checks raw against the category: digits only, and exactly the category's length.
func Validate(raw string, category models.Category) error {
	if !category.Valid() {
		return ErrUnknownCategory
	}
	if raw == "" || !isDigits(raw) {
		return &InputError{Raw: raw, Category: category, Err: ErrInvalidFormat}
	}
	if len(raw) != category.DigitLength() {
		return &InputError{Raw: raw, Category: category, Err: ErrInvalidLength}
	}
	return nil
}

// Expand maps a raw bet number to the combos it covers, sorted ascending.
// top/down bets cover only raw itself; tod/back bets cover every distinct permutation.
func Expand(raw string, category models.Category) ([]string, error) {
	if err := Validate(raw, category); err != nil {
		return nil, err
	}
	if !category.IsPermutation() {
		return []string{raw}, nil
	}

	seen := mapset.NewThreadUnsafeSet[string]()
	permute([]byte(raw), 0, seen)
	combos := seen.ToSlice()
	sort.Strings(combos)
	return combos, nil
}

// ExpansionCount returns len(Expand(raw, category)) without building the combos.
func ExpansionCount(raw string, category models.Category) (int, error) {
	if err := Validate(raw, category); err != nil {
		return 0, err
	}
	if !category.IsPermutation() {
		return 1, nil
	}
	// n! / Π(k_i!) over repeated digits
	var counts [10]int
	for i := 0; i < len(raw); i++ {
		counts[raw[i]-'0']++
	}
	n := factorial(len(raw))
	for _, k := range counts {
		n /= factorial(k)
	}
	return n, nil
}

// permute generates permutations in place by swapping; duplicates fall out in the set.
func permute(digits []byte, k int, out mapset.Set[string]) {
	if k == len(digits) {
		out.Add(string(digits))
		return
	}
	for i := k; i < len(digits); i++ {
		digits[k], digits[i] = digits[i], digits[k]
		permute(digits, k+1, out)
		digits[k], digits[i] = digits[i], digits[k]
	}
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
