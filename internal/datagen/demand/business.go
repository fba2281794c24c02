package demand

import "time"

// Business follows B2B purchasing.
// Weekdays: 100%, weekend: 10%
// Quarter-end months (March, June, September, December): 100%
// August holidays: 60%
// Other months: 80%
type Business struct{}

// NewBusiness creates a new Business pattern.
func NewBusiness() Pattern {
	return Business{}
}

func (Business) Name() string {
	return "business"
}

func (Business) Description() string {
	return "Business purchasing (weekdays, quarter-end peaks)"
}

func (Business) Level(day time.Time) float64 {
	if isWeekend(day) {
		return 0.10
	}

	switch day.Month() {
	case time.March, time.June, time.September, time.December:
		return 1.0
	case time.August:
		return 0.60
	default:
		return 0.80
	}
}
