package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitMonthKey parses a zero-padded "YYYY-MM" month key into its calendar
// year and zero-based month index. Malformed keys return ok=false; callers
// treat those entries as pass-through rather than failing the pipeline.
func SplitMonthKey(key string) (year, monthIndex int, ok bool) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, m - 1, true
}

// MonthKey builds the canonical zero-padded month key for a year and
// one-based calendar month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

// MonthYear returns the calendar year of a month key, or 0 when malformed.
func MonthYear(key string) int {
	year, _, ok := SplitMonthKey(key)
	if !ok {
		return 0
	}
	return year
}

// RiskLabels returns the risk tier labels in ascending severity order, for
// help text, enums and validation messages.
func RiskLabels() []string {
	labels := make([]string, len(AllRiskLevels))
	for i, level := range AllRiskLevels {
		labels[i] = string(level)
	}
	return labels
}

// IsLeadershipPlaceholder reports whether a deputy record is an internal
// party-leadership account rather than an individual legislator. The upstream
// pipeline drops most of these (they carry no CPF), but older dataset builds
// still contain them, so the filter excludes them unconditionally.
func IsLeadershipPlaceholder(d *Deputy) bool {
	name := strings.ToUpper(strings.TrimSpace(d.Name))
	return strings.HasPrefix(name, "LIDERANÇA") || strings.HasPrefix(name, "LIDERANCA") ||
		strings.HasPrefix(name, "LID.")
}
