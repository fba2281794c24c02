//-------------------------------------------------------------------------
//
// pgEdge Sales Report
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package demand implements calendar demand patterns for generated orders.
package demand

import (
	"fmt"
	"slices"
	"time"
)

// Pattern describes how order volume varies across the calendar.
type Pattern interface {
	// Name returns the pattern name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Level returns the relative order volume on day, in (0.0, 1.0].
	Level(day time.Time) float64
}

var registry = make(map[string]func() Pattern)

// Register adds a pattern constructor to the registry.
func Register(name string, constructor func() Pattern) {
	registry[name] = constructor
}

// Get retrieves a pattern by name. An empty name selects "flat".
func Get(name string) (Pattern, error) {
	if name == "" {
		name = "flat"
	}
	constructor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown demand pattern: %s", name)
	}
	return constructor(), nil
}

// List returns all registered pattern names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	Register("flat", NewFlat)
	Register("retail", NewRetail)
	Register("business", NewBusiness)
}

// Flat spreads orders evenly over the calendar.
type Flat struct{}

// NewFlat creates a new Flat pattern.
func NewFlat() Pattern {
	return Flat{}
}

func (Flat) Name() string {
	return "flat"
}

func (Flat) Description() string {
	return "Uniform order volume"
}

func (Flat) Level(time.Time) float64 {
	return 1.0
}

func isWeekend(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
