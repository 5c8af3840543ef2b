package render

// SolidSegs tracks which screen columns are already fully covered by
// nearer opaque walls. Intervals are closed, sorted ascending by first,
// non-overlapping, and never adjacent (a gap of one merges). The list is
// reset each frame and only grows within it
type SolidSegs struct {
	segs []solidSeg
}

type solidSeg struct {
	first, last int
}

// Reset empties the list for a new frame, keeping capacity
func (s *SolidSegs) Reset() {
	s.segs = s.segs[:0]
}

// Occluded reports whether column x falls inside a stored interval
func (s *SolidSegs) Occluded(x int) bool {
	for _, seg := range s.segs {
		if x < seg.first {
			return false
		}
		if x <= seg.last {
			return true
		}
	}
	return false
}

// Add inserts the closed range [first,last], merging with every stored
// interval it overlaps or touches. Callers reject first > last
func (s *SolidSegs) Add(first, last int) {
	if first > last {
		return
	}

	// Locate the first interval that can merge with the new range
	i := 0
	for i < len(s.segs) && s.segs[i].last < first-1 {
		i++
	}

	if i == len(s.segs) || s.segs[i].first > last+1 {
		s.segs = append(s.segs, solidSeg{})
		copy(s.segs[i+1:], s.segs[i:])
		s.segs[i] = solidSeg{first: first, last: last}
		return
	}

	// Absorb the run of intervals reaching into [first,last]
	merged := solidSeg{first: min(first, s.segs[i].first), last: last}
	j := i
	for j < len(s.segs) && s.segs[j].first <= last+1 {
		merged.last = max(merged.last, s.segs[j].last)
		j++
	}
	s.segs[i] = merged
	s.segs = append(s.segs[:i+1], s.segs[j:]...)
}

// Count returns the number of stored intervals
func (s *SolidSegs) Count() int {
	return len(s.segs)
}

// Interval returns the i-th stored interval
func (s *SolidSegs) Interval(i int) (first, last int) {
	return s.segs[i].first, s.segs[i].last
}
