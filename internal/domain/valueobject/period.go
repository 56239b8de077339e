package valueobject

import "fmt"

// PeriodID identifies one of the five fixed day ranges of a month.
type PeriodID int

const (
	Period1 PeriodID = iota + 1
	Period2
	Period3
	Period4
	Period5
)

// PeriodCount is the number of periods in every month.
const PeriodCount = 5

// Period is a fixed day range used to bucket expenses within a month.
// Ranges are not checked against the real month length, so period 5 covers
// days 29-31 even in February.
type Period struct {
	ID       PeriodID
	Label    string
	StartDay int
	EndDay   int
}

var periods = [PeriodCount]Period{
	{ID: Period1, Label: "1-7", StartDay: 1, EndDay: 7},
	{ID: Period2, Label: "8-14", StartDay: 8, EndDay: 14},
	{ID: Period3, Label: "15-21", StartDay: 15, EndDay: 21},
	{ID: Period4, Label: "22-28", StartDay: 22, EndDay: 28},
	{ID: Period5, Label: "29-31", StartDay: 29, EndDay: 31},
}

// Periods returns the period catalog in id order.
func Periods() []Period {
	out := make([]Period, PeriodCount)
	copy(out, periods[:])
	return out
}

// PeriodIDs returns every period id in order.
func PeriodIDs() []PeriodID {
	return []PeriodID{Period1, Period2, Period3, Period4, Period5}
}

// Valid reports whether id is within 1..5.
func (id PeriodID) Valid() bool {
	return id >= Period1 && id <= Period5
}

// PeriodByID returns the catalog entry for id.
func PeriodByID(id PeriodID) (Period, error) {
	if !id.Valid() {
		return Period{}, fmt.Errorf("invalid period id %d", id)
	}
	return periods[id-1], nil
}

// PeriodForDay returns the period containing the given day of month.
func PeriodForDay(day int) (Period, bool) {
	for _, p := range periods {
		if day >= p.StartDay && day <= p.EndDay {
			return p, true
		}
	}
	return Period{}, false
}
