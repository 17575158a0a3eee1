package core

import (
	"fmt"
	"time"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month key of t in t's location.
func MonthOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// String formats the key as "2006-01".
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Label is the short display form, e.g. "Jan 2025".
func (k MonthKey) Label() string {
	return k.Month.String()[:3] + " " + fmt.Sprint(k.Year)
}

// Before orders keys chronologically.
func (k MonthKey) Before(o MonthKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}
	return k.Month < o.Month
}

// MonthTotal is the spend of one calendar month.
type MonthTotal struct {
	Month  MonthKey
	Amount Amount
}

// CategoryAmount is the spend of one category.
type CategoryAmount struct {
	Category Category
	Amount   Amount
	Share    float64 // percent of the total, one decimal
}

// GameItemAmount is the Gaming spend of one game currency.
type GameItemAmount struct {
	GameItem string
	Amount   Amount
}
