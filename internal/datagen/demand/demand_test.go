//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package demand

import (
	"slices"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		want      string
		wantError bool
	}{
		{"flat", "flat", "flat", false},
		{"empty defaults to flat", "", "flat", false},
		{"retail", "retail", "retail", false},
		{"business", "business", "business", false},
		{"invalid pattern", "invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, err := Get(tt.pattern)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if pattern.Name() != tt.want {
				t.Errorf("Expected pattern %s, got %s", tt.want, pattern.Name())
			}
		})
	}
}

func TestList(t *testing.T) {
	names := List()
	if !slices.Equal(names, []string{"business", "flat", "retail"}) {
		t.Errorf("Unexpected patterns: %v", names)
	}
}

func TestRetailPattern(t *testing.T) {
	p, _ := Get("retail")

	saturdayDec := time.Date(2024, 12, 14, 0, 0, 0, 0, time.UTC)
	mondayDec := time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC)
	saturdayJan := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)

	if p.Level(saturdayDec) != 1.0 {
		t.Errorf("Expected December weekend peak, got %f", p.Level(saturdayDec))
	}
	if p.Level(mondayDec) >= p.Level(saturdayDec) {
		t.Error("Expected weekdays below weekends")
	}
	if p.Level(saturdayJan) >= p.Level(saturdayDec) {
		t.Error("Expected January below December")
	}
}

func TestBusinessPattern(t *testing.T) {
	p, _ := Get("business")

	tests := []struct {
		day  time.Time
		want float64
	}{
		{time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 1.0},  // Friday, quarter end
		{time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), 0.10}, // Saturday
		{time.Date(2024, 8, 14, 0, 0, 0, 0, time.UTC), 0.60}, // Wednesday, August
		{time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC), 0.80}, // Tuesday
	}
	for _, tt := range tests {
		if got := p.Level(tt.day); got != tt.want {
			t.Errorf("Level(%s) = %f, want %f", tt.day.Format("2006-01-02 Mon"), got, tt.want)
		}
	}
}

func TestPatternLevelRange(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			p, err := Get(name)
			if err != nil {
				t.Fatalf("Failed to get pattern: %v", err)
			}

			start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 366; i++ {
				day := start.AddDate(0, 0, i)
				level := p.Level(day)
				if level <= 0 || level > 1 {
					t.Errorf("%s: level on %s outside (0, 1]: %f", name, day.Format("2006-01-02"), level)
				}
			}
		})
	}
}

func BenchmarkLevel(b *testing.B) {
	p, _ := Get("retail")
	day := time.Date(2024, 12, 14, 0, 0, 0, 0, time.UTC)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Level(day)
	}
}
