// Package metrics holds the pure derived-value computations shared by the
// screen view models: expiry countdowns, validity and usage percentages,
// and the tier thresholds behind status indicators.
package metrics

import (
	"math"
	"time"
)

// Alert levels returned by AlertLevel and AlertIcon.
const (
	LevelCritical = "critical"
	LevelWarning  = "warning"
	LevelNone     = "none"
)

// Status tiers returned by StatusTier and BarTier.
const (
	TierExpired = "expired"
	TierWarning = "warning"
	TierActive  = "active"
)

const msPerDay = 1000 * 60 * 60 * 24

// ParseDate parses a backend date value. Dates normally travel as
// YYYY-MM-DD but some payloads carry full timestamps, in which case the
// date part is taken.
func ParseDate(s string) (time.Time, bool) {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysTo returns the whole-day rounded difference between date and now.
// Negative when date is in the past.
func DaysTo(date, now time.Time) int {
	ms := date.Sub(now).Milliseconds()
	return int(math.Round(float64(ms) / msPerDay))
}

// AlertLevel classifies a day countdown for badge counts. Already-expired
// entries (negative days) count as critical here; the table icon rule in
// AlertIcon differs, see below.
func AlertLevel(days int) string {
	if days < 15 {
		return LevelCritical
	}
	if days < 30 {
		return LevelWarning
	}
	return LevelNone
}

// AlertIcon classifies a day countdown for the expiry table, where
// already-expired entries render without an icon.
func AlertIcon(days int) string {
	if days < 0 {
		return LevelNone
	}
	return AlertLevel(days)
}

// ValidityPercent reports how much of the [validFrom, validTo] window has
// elapsed at now, rounded, clamped to [0,100]. An absent or unparseable
// window yields 0.
func ValidityPercent(validFrom, validTo string, now time.Time) int {
	from, ok := ParseDate(validFrom)
	if !ok {
		return 0
	}
	to, ok := ParseDate(validTo)
	if !ok {
		return 0
	}
	if now.Before(from) {
		return 0
	}
	if !now.Before(to) {
		return 100
	}
	total := to.Sub(from)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(from)
	return int(math.Round(float64(elapsed) / float64(total) * 100))
}

// BarTier maps an elapsed-validity percentage to the validity bar tier.
func BarTier(percent int) string {
	if percent > 75 {
		return TierExpired
	}
	if percent > 50 {
		return TierWarning
	}
	return TierActive
}

// StatusTier maps a validity window to the row status tier: expired once
// past validTo, warning under 30 days remaining, active otherwise.
func StatusTier(validFrom, validTo string, now time.Time) string {
	to, ok := ParseDate(validTo)
	if !ok {
		return TierActive
	}
	if now.After(to) {
		return TierExpired
	}
	if to.Sub(now).Hours()/24 < 30 {
		return TierWarning
	}
	return TierActive
}

// UsagePercent is the rounded ratio of assignments to license capacity.
// Zero capacity yields 0. The result is deliberately not clamped: values
// above 100 surface over-allocation.
func UsagePercent(assigned, maxUsage int) int {
	if maxUsage <= 0 {
		return 0
	}
	return int(math.Round(float64(assigned) / float64(maxUsage) * 100))
}
