package betcalc

import (
	"fmt"
	"time"
)

// DateLayout is the date format of tickets, results and period anchors.
const DateLayout = "2006-01-02"

// Draw periods follow the government lottery schedule (งวด 1 / งวด 16):
//   anchor YYYY-MM-01 covers the 18th of the previous month through the 1st,
//   anchor YYYY-MM-16 covers the 2nd through the 17th.

// PeriodFor returns the anchor of the draw period containing date.
func PeriodFor(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	y, m, d := t.Date()
	switch {
	case d == 1:
		return t.Format(DateLayout), nil
	case d <= 17:
		return time.Date(y, m, 16, 0, 0, 0, 0, time.UTC).Format(DateLayout), nil
	default:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC).Format(DateLayout), nil
	}
}

// IsPeriodAnchor reports whether s is a valid date on the 1st or 16th.
func IsPeriodAnchor(s string) bool {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return false
	}
	return t.Day() == 1 || t.Day() == 16
}

// PeriodRange returns the inclusive first and last dates covered by anchor.
func PeriodRange(anchor string) (from, to string, err error) {
	t, err := time.Parse(DateLayout, anchor)
	if err != nil {
		return "", "", fmt.Errorf("invalid period %q: %w", anchor, err)
	}
	y, m, d := t.Date()
	switch d {
	case 1:
		from = time.Date(y, m-1, 18, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		return from, anchor, nil
	case 16:
		from = time.Date(y, m, 2, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		to = time.Date(y, m, 17, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		return from, to, nil
	}
	return "", "", fmt.Errorf("invalid period %q: anchor day must be 01 or 16", anchor)
}

// PeriodContains reports whether date falls inside the period anchored at anchor.
func PeriodContains(anchor, date string) (bool, error) {
	from, to, err := PeriodRange(anchor)
	if err != nil {
		return false, err
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}
	d := t.Format(DateLayout)
	return d >= from && d <= to, nil
}
