// Package dayofyear matches month/day points against ranges that may wrap
// across the year boundary (e.g. Nov 15 .. Feb 15). It produces predicate
// descriptions; the compilers lower them into plan conditions.
package dayofyear

import (
	"fmt"
	"time"
)

// MonthDay is a calendar point with the year stripped.
type MonthDay struct {
	Month int
	Day   int
}

// FromTime extracts the month/day of a date.
func FromTime(t time.Time) MonthDay {
	return MonthDay{Month: int(t.Month()), Day: t.Day()}
}

func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", m.Month, m.Day)
}

// Less is lexicographic month-then-day comparison.
func (m MonthDay) Less(o MonthDay) bool {
	if m.Month != o.Month {
		return m.Month < o.Month
	}
	return m.Day < o.Day
}

// AtLeast reports m >= o.
func (m MonthDay) AtLeast(o MonthDay) bool { return !m.Less(o) }

// AtMost reports m <= o.
func (m MonthDay) AtMost(o MonthDay) bool { return !o.Less(m) }

// Range is an optional-bounded month/day interval. A nil bound is open.
type Range struct {
	From *MonthDay
	To   *MonthDay
}

// Wraps reports whether the range crosses the year boundary, i.e. both
// bounds are present and From is later in the year than To.
func (r Range) Wraps() bool {
	return r.From != nil && r.To != nil && r.To.Less(*r.From)
}

// Contains reports whether md falls inside the range. A wrapping range
// uses OR semantics across the year boundary; an unbounded side does not
// constrain.
func (r Range) Contains(md MonthDay) bool {
	switch {
	case r.From == nil && r.To == nil:
		return true
	case r.From != nil && r.To == nil:
		return md.AtLeast(*r.From)
	case r.From == nil:
		return md.AtMost(*r.To)
	case r.Wraps():
		return md.AtLeast(*r.From) || md.AtMost(*r.To)
	default:
		return md.AtLeast(*r.From) && md.AtMost(*r.To)
	}
}
