package metrics

import (
	"testing"
	"time"
)

func TestDaysTo(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"ten days ahead", now.AddDate(0, 0, 10), 10},
		{"same instant", now, 0},
		{"five days past", now.AddDate(0, 0, -5), -5},
		{"half day rounds up", now.Add(12 * time.Hour), 1},
		{"just under half day rounds down", now.Add(11 * time.Hour), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysTo(tt.date, now); got != tt.want {
				t.Errorf("DaysTo() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAlertLevel(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-10, LevelCritical},
		{0, LevelCritical},
		{14, LevelCritical},
		{15, LevelWarning},
		{29, LevelWarning},
		{30, LevelNone},
		{365, LevelNone},
	}

	for _, tt := range tests {
		if got := AlertLevel(tt.days); got != tt.want {
			t.Errorf("AlertLevel(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestAlertIconSuppressesExpired(t *testing.T) {
	// Expired entries count as critical in badge totals but draw no icon
	// in the expiry table.
	if got := AlertIcon(-1); got != LevelNone {
		t.Errorf("AlertIcon(-1) = %q, want %q", got, LevelNone)
	}
	if got := AlertLevel(-1); got != LevelCritical {
		t.Errorf("AlertLevel(-1) = %q, want %q", got, LevelCritical)
	}
	if got := AlertIcon(10); got != LevelCritical {
		t.Errorf("AlertIcon(10) = %q, want %q", got, LevelCritical)
	}
	if got := AlertIcon(20); got != LevelWarning {
		t.Errorf("AlertIcon(20) = %q, want %q", got, LevelWarning)
	}
}

func TestValidityPercent(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		now  time.Time
		want int
	}{
		{"before window", "2026-01-01", "2026-12-31", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{"at start", "2026-01-01", "2026-12-31", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"midway", "2026-01-01", "2026-01-11", time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), 50},
		{"at end", "2026-01-01", "2026-12-31", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 100},
		{"past end", "2026-01-01", "2026-12-31", time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC), 100},
		{"missing from", "", "2026-12-31", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{"missing to", "2026-01-01", "", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{"zero-length window", "2026-01-01", "2026-01-01", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 100},
		{"timestamp date values", "2026-01-01T00:00:00Z", "2026-01-11T00:00:00Z", time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidityPercent(tt.from, tt.to, tt.now); got != tt.want {
				t.Errorf("ValidityPercent(%q, %q) = %d, want %d", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestValidityPercentMonotonic(t *testing.T) {
	from, to := "2026-01-01", "2026-04-01"
	prev := -1
	for d := 0; d < 120; d++ {
		now := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		got := ValidityPercent(from, to, now)
		if got < prev {
			t.Fatalf("ValidityPercent decreased from %d to %d at day %d", prev, got, d)
		}
		if got < 0 || got > 100 {
			t.Fatalf("ValidityPercent out of range: %d", got)
		}
		prev = got
	}
}

func TestBarTier(t *testing.T) {
	tests := []struct {
		percent int
		want    string
	}{
		{0, TierActive},
		{50, TierActive},
		{51, TierWarning},
		{75, TierWarning},
		{76, TierExpired},
		{150, TierExpired},
	}

	for _, tt := range tests {
		if got := BarTier(tt.percent); got != tt.want {
			t.Errorf("BarTier(%d) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestStatusTier(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		to   string
		want string
	}{
		{"expired", "2026-05-01", TierExpired},
		{"under 30 days left", "2026-06-20", TierWarning},
		{"plenty left", "2027-06-01", TierActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusTier("2026-01-01", tt.to, now); got != tt.want {
				t.Errorf("StatusTier(to=%q) = %q, want %q", tt.to, got, tt.want)
			}
		})
	}
}

func TestUsagePercent(t *testing.T) {
	tests := []struct {
		assigned int
		maxUsage int
		want     int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{1, 3, 33},
		{2, 3, 67},
		{3, 2, 150}, // over-allocation is representable, not clamped
		{4, 0, 0},
	}

	for _, tt := range tests {
		if got := UsagePercent(tt.assigned, tt.maxUsage); got != tt.want {
			t.Errorf("UsagePercent(%d, %d) = %d, want %d", tt.assigned, tt.maxUsage, got, tt.want)
		}
	}
}
