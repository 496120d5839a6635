package engine

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Range is a closed [Start, End] interval of video seconds. It serializes as
// a two-element JSON array so the stored column reads as [[0,12.5],[30,41]].
type Range struct {
	Start float64
	End   float64
}

func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Start, r.End})
}

func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("watched range must be a [start, end] pair: %w", err)
	}
	r.Start, r.End = pair[0], pair[1]
	return nil
}

// Length returns the covered seconds of the interval.
func (r Range) Length() float64 {
	return r.End - r.Start
}

// MergeRanges merges overlapping and touching intervals into a minimal sorted
// set and returns it together with the total covered seconds. The input is
// not modified. Callers are expected to filter degenerate intervals
// (start >= end) before merging.
func MergeRanges(ranges []Range) ([]Range, float64) {
	if len(ranges) == 0 {
		return nil, 0
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}

	total := 0.0
	for _, r := range merged {
		total += r.Length()
	}
	return merged, total
}
