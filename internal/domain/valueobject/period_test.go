package valueobject

import "testing"

func TestPeriods(t *testing.T) {
	ps := Periods()
	if len(ps) != PeriodCount {
		t.Fatalf("expected %d periods, got %d", PeriodCount, len(ps))
	}

	expectedBounds := [][2]int{{1, 7}, {8, 14}, {15, 21}, {22, 28}, {29, 31}}
	for i, p := range ps {
		if int(p.ID) != i+1 {
			t.Errorf("period %d has id %d", i, p.ID)
		}
		if p.StartDay != expectedBounds[i][0] || p.EndDay != expectedBounds[i][1] {
			t.Errorf("period %d: expected %v, got %d-%d", p.ID, expectedBounds[i], p.StartDay, p.EndDay)
		}
	}

	// the catalog is shared, callers must not be able to change it
	ps[0].Label = "changed"
	if Periods()[0].Label == "changed" {
		t.Error("Periods returned the shared catalog")
	}
}

func TestPeriodID_Valid(t *testing.T) {
	for _, id := range []PeriodID{0, 6, -1} {
		if id.Valid() {
			t.Errorf("expected %d to be invalid", id)
		}
		if _, err := PeriodByID(id); err == nil {
			t.Errorf("expected error for period %d", id)
		}
	}
	for _, id := range PeriodIDs() {
		if !id.Valid() {
			t.Errorf("expected %d to be valid", id)
		}
	}
}

func TestPeriodForDay(t *testing.T) {
	tests := []struct {
		day      int
		expected PeriodID
		ok       bool
	}{
		{1, Period1, true},
		{7, Period1, true},
		{8, Period2, true},
		{21, Period3, true},
		{28, Period4, true},
		{31, Period5, true},
		{0, 0, false},
		{32, 0, false},
	}

	for _, tt := range tests {
		p, ok := PeriodForDay(tt.day)
		if ok != tt.ok || p.ID != tt.expected {
			t.Errorf("day %d: expected (%d, %v), got (%d, %v)", tt.day, tt.expected, tt.ok, p.ID, ok)
		}
	}
}
