package metrics

import "github.com/dorapulse/dorapulse/internal/entity"

// Benchmark thresholds, expressed in the unit each function receives.
// They follow the published DORA research bands and are evaluated in
// order, first match wins.

const (
	hoursPerDay  = 24.0
	hoursPerWeek = 7 * hoursPerDay
)

// classifyFrequency maps a raw per-day deployment rate to its display
// value, unit and band.
func classifyFrequency(perDay float64) (value float64, unit string, class entity.Classification) {
	switch {
	case perDay >= 1:
		return perDay, "per-day", entity.ClassElite
	case perDay >= 1.0/7:
		return perDay * 7, "per-week", entity.ClassHigh
	case perDay >= 1.0/30:
		return perDay * 30, "per-month", entity.ClassMedium
	default:
		return perDay * 30, "per-month", entity.ClassLow
	}
}

// classifyLeadTime maps the median lead time in hours to its display
// value, unit and band.
func classifyLeadTime(medianHours float64) (value float64, unit string, class entity.Classification) {
	switch {
	case medianHours < hoursPerDay:
		return medianHours, "hours", entity.ClassElite
	case medianHours < hoursPerWeek:
		return medianHours / hoursPerDay, "days", entity.ClassHigh
	case medianHours < 30*hoursPerDay:
		return medianHours / hoursPerWeek, "weeks", entity.ClassMedium
	default:
		return medianHours / hoursPerWeek, "weeks", entity.ClassLow
	}
}

// classifyRecovery maps the median time to recovery in hours to its
// display value, unit and band.
func classifyRecovery(medianHours float64) (value float64, unit string, class entity.Classification) {
	switch {
	case medianHours < 1:
		return medianHours * 60, "minutes", entity.ClassElite
	case medianHours < hoursPerDay:
		return medianHours, "hours", entity.ClassHigh
	case medianHours < hoursPerWeek:
		return medianHours / hoursPerDay, "days", entity.ClassMedium
	default:
		return medianHours / hoursPerDay, "days", entity.ClassLow
	}
}

// classifyFailureRate maps a failure percentage to its band.
func classifyFailureRate(rate float64) entity.Classification {
	switch {
	case rate < 5:
		return entity.ClassElite
	case rate < 10:
		return entity.ClassHigh
	case rate < 20:
		return entity.ClassMedium
	default:
		return entity.ClassLow
	}
}
