package series

import (
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
		expectLen   int
	}{
		{
			name:      "valid array",
			body:      `[{"t": 1700000000, "v": 1.5}, {"t": 1700000600, "v": 2.25}]`,
			expectLen: 2,
		},
		{
			name:      "empty array",
			body:      `[]`,
			expectLen: 0,
		},
		{
			name:        "object instead of array",
			body:        `{"error": "not found"}`,
			expectError: true,
		},
		{
			name:        "malformed json",
			body:        `[{"t": 1700000000, "v":`,
			expectError: true,
		},
		{
			name:        "wrong element type",
			body:        `[{"t": "noon", "v": 1}]`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Decode([]byte(tt.body))

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(s) != tt.expectLen {
				t.Errorf("len = %d, want %d", len(s), tt.expectLen)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Series{{T: 1700000000, V: 1.5}, {T: 1700000600, V: -0.25}}

	data, err := in.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("point %d = %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestSortAscending(t *testing.T) {
	s := Series{{T: 300, V: 3}, {T: 100, V: 1}, {T: 200, V: 2}}
	s.SortAscending()

	if !s.Sorted() {
		t.Fatal("series not sorted after SortAscending")
	}
	if s[0].T != 100 || s[1].T != 200 || s[2].T != 300 {
		t.Errorf("unexpected order: %+v", s)
	}
}

func TestMidnightCutoff(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, loc)

	cutoff := MidnightCutoff(now, loc)

	want := time.Date(2024, 3, 14, 23, 30, 0, 0, loc)
	if !cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", cutoff, want)
	}
}

func TestShape_WindowFilter(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	cutoff := MidnightCutoff(now, loc)

	yesterdayNoon := time.Date(2024, 3, 14, 12, 0, 0, 0, loc).Unix()
	justBeforeMidnight := time.Date(2024, 3, 14, 23, 45, 0, 0, loc).Unix()
	today := time.Date(2024, 3, 15, 8, 0, 0, 0, loc).Unix()

	s := Series{
		{T: yesterdayNoon, V: 1},
		{T: justBeforeMidnight, V: 2},
		{T: today, V: 3},
	}

	shaped := Shape(s, cutoff, 24)

	if len(shaped) != 2 {
		t.Fatalf("len = %d, want 2", len(shaped))
	}
	for _, p := range shaped {
		if p.T < cutoff.Unix() {
			t.Errorf("point %d before cutoff %d", p.T, cutoff.Unix())
		}
	}
}

func TestShape_BudgetKeepsMostRecent(t *testing.T) {
	// 30 unordered hourly points; only the last 24 must survive, sorted.
	base := int64(1700000000)
	s := make(Series, 0, 30)
	for i := 29; i >= 0; i-- {
		s = append(s, Point{T: base + int64(i)*3600, V: float64(i)})
	}

	shaped := Shape(s, time.Time{}, 24)

	if len(shaped) != 24 {
		t.Fatalf("len = %d, want 24", len(shaped))
	}
	if !shaped.Sorted() {
		t.Error("shaped series not sorted ascending")
	}
	if shaped[0].T != base+6*3600 {
		t.Errorf("first point T = %d, want %d", shaped[0].T, base+6*3600)
	}
	if shaped[23].T != base+29*3600 {
		t.Errorf("last point T = %d, want %d", shaped[23].T, base+29*3600)
	}
}

func TestShape_Idempotent(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 15, 10, 0, 0, 0, loc)
	cutoff := MidnightCutoff(now, loc)

	s := make(Series, 0, 200)
	base := now.Add(-20 * time.Hour).Unix()
	for i := 0; i < 200; i++ {
		s = append(s, Point{T: base + int64(i)*600, V: float64(i)})
	}

	once := Shape(s, cutoff, 144)
	twice := Shape(once, cutoff, 144)

	if len(once) != len(twice) {
		t.Fatalf("len(once) = %d, len(twice) = %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d diverged: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestShape_EmptyAndUnderBudget(t *testing.T) {
	if got := Shape(nil, time.Time{}, 24); len(got) != 0 {
		t.Errorf("Shape(nil) len = %d, want 0", len(got))
	}

	s := Series{{T: 100, V: 1}, {T: 200, V: 2}}
	shaped := Shape(s, time.Time{}, 24)
	if len(shaped) != 2 {
		t.Errorf("len = %d, want 2", len(shaped))
	}
}
