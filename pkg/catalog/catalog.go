// Package catalog maps metric identifiers to their sampling interval and the
// point budget derived from it.
package catalog

// Interval is the sampling interval of a metric. Its string form is the
// wire value sent in the `i` query parameter.
type Interval string

const (
	// TenMinutes is ten-minute sampling.
	TenMinutes Interval = "10m"

	// OneHour is hourly sampling.
	OneHour Interval = "1h"
)

// Point budgets per sampling interval: one day of data.
const (
	tenMinuteBudget = 144
	hourlyBudget    = 24
)

// Descriptor describes one metric. Immutable once created.
type Descriptor struct {
	ID       string
	Interval Interval

	// DisplayName is optional presentation metadata.
	DisplayName string

	// Unit is an optional unit label (e.g. "W", "kWh").
	Unit string
}

// PointBudget returns the maximum number of points a shaped series for this
// metric may carry.
func (d Descriptor) PointBudget() int {
	if d.Interval == TenMinutes {
		return tenMinuteBudget
	}
	return hourlyBudget
}

// Catalog looks up metric descriptors by id.
type Catalog interface {
	// Lookup returns the descriptor for a metric id. ok is false when the
	// metric is unknown.
	Lookup(id string) (Descriptor, bool)
}

// Default returns the fallback descriptor for an unknown metric id:
// hourly sampling, 24-point budget. Unknown ids are not an error at planning
// time; the API rejects them if they are genuinely invalid.
func Default(id string) Descriptor {
	return Descriptor{ID: id, Interval: OneHour}
}

// Resolve looks id up in c, falling back to Default when c is nil or does not
// know the metric.
func Resolve(c Catalog, id string) Descriptor {
	if c != nil {
		if d, ok := c.Lookup(id); ok {
			return d
		}
	}
	return Default(id)
}

// Static is a fixed in-memory catalog.
type Static map[string]Descriptor

// Lookup implements Catalog.
func (s Static) Lookup(id string) (Descriptor, bool) {
	d, ok := s[id]
	return d, ok
}

// NewStatic builds a Static catalog from descriptors, keyed by their ids.
func NewStatic(descriptors ...Descriptor) Static {
	s := make(Static, len(descriptors))
	for _, d := range descriptors {
		s[d.ID] = d
	}
	return s
}
