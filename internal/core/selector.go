package core

// DateRange is an inclusive [Start, End] interval of days.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Contains reports start <= d <= end.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Inverted reports start > end; filtering with it yields nothing.
func (r DateRange) Inverted() bool {
	return r.Start.After(r.End)
}

// RangeSelector produces the date range the pipeline filters on, bounded by
// the dates present in the loaded data.
type RangeSelector struct {
	bounds DateRange
	ok     bool
}

func NewRangeSelector(ds Dataset) RangeSelector {
	b, ok := ds.Bounds()
	return RangeSelector{bounds: b, ok: ok}
}

// Bounds returns the selectable interval. ok is false when no data is loaded.
func (s RangeSelector) Bounds() (DateRange, bool) {
	return s.bounds, s.ok
}

// Default is the full bounds.
func (s RangeSelector) Default() DateRange {
	return s.bounds
}

// Select fills missing ends from the bounds, raises start to the lower bound
// and lowers end to the upper bound. An inverted pair is returned unchanged
// apart from that clamping.
func (s RangeSelector) Select(start, end *Date) DateRange {
	r := s.bounds
	if start != nil {
		r.Start = *start
		if s.ok && r.Start.Before(s.bounds.Start) {
			r.Start = s.bounds.Start
		}
	}
	if end != nil {
		r.End = *end
		if s.ok && r.End.After(s.bounds.End) {
			r.End = s.bounds.End
		}
	}
	return r
}
