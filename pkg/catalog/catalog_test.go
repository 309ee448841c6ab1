package catalog

import "testing"

func TestPointBudget(t *testing.T) {
	tests := []struct {
		name     string
		interval Interval
		want     int
	}{
		{name: "ten minute sampling", interval: TenMinutes, want: 144},
		{name: "hourly sampling", interval: OneHour, want: 24},
		{name: "unset interval defaults to hourly budget", interval: "", want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Descriptor{ID: "m", Interval: tt.interval}
			if got := d.PointBudget(); got != tt.want {
				t.Errorf("PointBudget() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	cat := NewStatic(
		Descriptor{ID: "power_output", Interval: TenMinutes, Unit: "W"},
		Descriptor{ID: "energy_today", Interval: OneHour, Unit: "kWh"},
	)

	t.Run("known metric", func(t *testing.T) {
		d := Resolve(cat, "power_output")
		if d.Interval != TenMinutes {
			t.Errorf("Interval = %q, want %q", d.Interval, TenMinutes)
		}
		if d.PointBudget() != 144 {
			t.Errorf("PointBudget() = %d, want 144", d.PointBudget())
		}
	})

	t.Run("unknown metric degrades to default", func(t *testing.T) {
		d := Resolve(cat, "no_such_metric")
		if d.Interval != OneHour {
			t.Errorf("Interval = %q, want %q", d.Interval, OneHour)
		}
		if d.ID != "no_such_metric" {
			t.Errorf("ID = %q, want no_such_metric", d.ID)
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		d := Resolve(nil, "anything")
		if d.Interval != OneHour {
			t.Errorf("Interval = %q, want %q", d.Interval, OneHour)
		}
	})
}
