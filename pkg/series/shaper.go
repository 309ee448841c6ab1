package series

import "time"

// MidnightGrace is how far before local midnight a point may fall and still
// count as part of the current day's window. Ten-minute samples stamped just
// before midnight belong to the first bucket of the new day.
const MidnightGrace = 30 * time.Minute

// MidnightCutoff returns the earliest timestamp admitted by the since-midnight
// window: the start of the local day minus MidnightGrace.
func MidnightCutoff(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.Add(-MidnightGrace)
}

// Shape applies the two post-fetch transforms in order: drop points older
// than cutoff (skipped when cutoff is the zero time), then keep only the most
// recent budget points of the ascending-sorted series. A budget <= 0 leaves
// the length unbounded.
//
// Shape is idempotent: applying it to its own output is a no-op.
func Shape(s Series, cutoff time.Time, budget int) Series {
	out := make(Series, 0, len(s))
	if cutoff.IsZero() {
		out = append(out, s...)
	} else {
		min := cutoff.Unix()
		for _, p := range s {
			if p.T >= min {
				out = append(out, p)
			}
		}
	}

	// Sort before suffixing so "most recent" means latest timestamps,
	// not latest array positions.
	out.SortAscending()

	if budget > 0 && len(out) > budget {
		out = out[len(out)-budget:]
	}
	return out
}
