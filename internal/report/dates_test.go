//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, 1, 1), date(2024, 1, 1), 0},
		{"ignores day of month", date(2024, 1, 31), date(2024, 2, 1), 1},
		{"same month late day", date(2024, 3, 1), date(2024, 3, 31), 0},
		{"across years", date(2023, 11, 15), date(2024, 2, 1), 3},
		{"full year", date(2023, 7, 1), date(2024, 7, 1), 12},
		{"negative", date(2024, 5, 1), date(2024, 2, 1), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %d months, got %d", tt.want, got)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween(date(2024, 2, 28), date(2024, 3, 1)); got != 2 {
		t.Errorf("Expected 2 days across leap day, got %d", got)
	}
	withClock := time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC)
	if got := DaysBetween(date(2024, 3, 1), withClock); got != 0 {
		t.Errorf("Expected clock time to be ignored, got %d", got)
	}
}

func TestYearsBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"before birthday", date(1990, 8, 15), date(2024, 8, 14), 33},
		{"on birthday", date(1990, 8, 15), date(2024, 8, 15), 34},
		{"after birthday", date(1990, 8, 15), date(2024, 12, 1), 34},
		{"earlier month", date(1990, 8, 15), date(2024, 7, 30), 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearsBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("Expected %d years, got %d", tt.want, got)
			}
		})
	}
}
