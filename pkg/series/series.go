// Package series defines the time-series value model and the shaping
// transforms applied to raw API responses before they reach consumers.
package series

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Point is a single measured value at a point in time. The wire format
// uses unix seconds for the timestamp.
type Point struct {
	T int64   `json:"t"`
	V float64 `json:"v"`
}

// Time returns the point timestamp as a time.Time.
func (p Point) Time() time.Time {
	return time.Unix(p.T, 0)
}

// Series is a sequence of points for one metric. API responses are not
// guaranteed to arrive ordered; call SortAscending before relying on order.
type Series []Point

// SortAscending orders the series by timestamp, oldest first. The sort is
// stable so equal timestamps keep their arrival order.
func (s Series) SortAscending() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].T < s[j].T
	})
}

// Sorted reports whether the series is already in ascending timestamp order.
func (s Series) Sorted() bool {
	return sort.SliceIsSorted(s, func(i, j int) bool {
		return s[i].T < s[j].T
	})
}

// Decode parses a JSON array of points.
func Decode(body []byte) (Series, error) {
	var s Series
	if err := json.Unmarshal(body, &s); err != nil {
		return nil, fmt.Errorf("decode series: %w", err)
	}
	return s, nil
}

// Encode serializes the series as a JSON array of points.
func (s Series) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode series: %w", err)
	}
	return data, nil
}
