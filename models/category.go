package models

import "fmt"

// Category ประเภทการแทง (3 ตัวบน, 2 ตัวล่าง, โต๊ด ฯลฯ)
type Category string

const (
	Cat3Top  Category = "3top"
	Cat3Down Category = "3down"
	Cat3Tod  Category = "3tod"
	Cat3Back Category = "3back"
	Cat2Top  Category = "2top"
	Cat2Down Category = "2down"
	Cat2Tod  Category = "2tod"
	Cat2Back Category = "2back"
)

// Categories lists every category in display order.
var Categories = []Category{
	Cat3Top, Cat3Down, Cat3Tod, Cat3Back,
	Cat2Top, Cat2Down, Cat2Tod, Cat2Back,
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	return c.DigitLength() != 0
}

// DigitLength returns 3 or 2, or 0 for an unknown category.
func (c Category) DigitLength() int {
	switch c {
	case Cat3Top, Cat3Down, Cat3Tod, Cat3Back:
		return 3
	case Cat2Top, Cat2Down, Cat2Tod, Cat2Back:
		return 2
	}
	return 0
}

// IsPermutation reports whether the bet covers every reordering of its digits (tod / back).
func (c Category) IsPermutation() bool {
	switch c {
	case Cat3Tod, Cat3Back, Cat2Tod, Cat2Back:
		return true
	}
	return false
}

// IsSingleCharge reports whether the customer pays the stake once for the whole entry
// instead of once per covered combo. Only tod qualifies; back bets are charged per combo.
func (c Category) IsSingleCharge() bool {
	return c == Cat3Tod || c == Cat2Tod
}
