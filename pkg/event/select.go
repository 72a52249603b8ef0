package event

import (
	"slices"

	"github.com/ccollicutt/sdep/pkg/datetime"
)

// Select returns the events of s whose timestamp lies in [from, to],
// sorted ascending by timestamp. Both bounds are inclusive.
//
// Events with equal timestamps keep their store order.
func Select(s *Store, from, to datetime.Value) []Event {
	selected := make([]Event, 0, s.Len())
	for e := range s.All() {
		if InRange(e.time, from, to) {
			selected = append(selected, e)
		}
	}

	slices.SortStableFunc(selected, func(a, b Event) int {
		return datetime.Compare(a.time, b.time)
	})

	return selected
}

// InRange reports whether from <= t <= to.
func InRange(t, from, to datetime.Value) bool {
	return datetime.Compare(t, from) >= 0 && datetime.Compare(t, to) <= 0
}
