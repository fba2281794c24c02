package demand

import "time"

// Retail follows consumer shopping seasons.
// Weekend: 100%, weekday: 70%
// December peak (100%), November build-up (90%)
// Post-holiday slump in January and February (55%)
// Spring and summer riding season (80%), autumn (70%)
type Retail struct{}

// NewRetail creates a new Retail pattern.
func NewRetail() Pattern {
	return Retail{}
}

func (Retail) Name() string {
	return "retail"
}

func (Retail) Description() string {
	return "Consumer retail (weekend and holiday peaks)"
}

func (Retail) Level(day time.Time) float64 {
	var season float64
	switch day.Month() {
	case time.December:
		season = 1.0
	case time.November:
		season = 0.90
	case time.January, time.February:
		season = 0.55
	case time.March, time.April, time.May, time.June, time.July, time.August:
		season = 0.80
	default:
		season = 0.70
	}

	if isWeekend(day) {
		return season
	}
	return season * 0.70
}
