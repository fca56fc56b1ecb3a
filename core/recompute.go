package core

import "github.com/ceaplens/ceaplens/schema"

// scalarSource names which breakdown feeds the recomputed scalars when both
// year and category filters are active.
type scalarSource int

const (
	scalarFromLifetime scalarSource = iota
	scalarFromMonths
	scalarFromCategories
)

// resolveScalarSource is the single place that decides the precedence between
// year and category recomputation. Today category filtering overrides year
// filtering when both are active, matching the observed dashboard behavior.
// Whether the intended semantics is the intersection of both filters is an
// open product question; changing this function changes it everywhere.
func resolveScalarSource(hasYears, hasCategories, hasMonthData, hasCategoryData bool) scalarSource {
	if hasCategories && hasCategoryData {
		return scalarFromCategories
	}
	if hasYears && hasMonthData {
		return scalarFromMonths
	}
	return scalarFromLifetime
}

// RecomputeScalars replaces each deputy's scalar metrics (spending,
// transaction count, average ticket) with values recomputed from its
// breakdowns under the active year/category filters. Deputies whose
// recomputed spending is exactly zero are dropped: they would otherwise
// render as meaningless zero-rows. Deputies without the relevant breakdown
// keep their lifetime totals, a documented approximation rather than a defect.
//
// The input slice is never mutated; every surviving deputy is a shallow copy
// that carries the overridden scalars while suppliers, risk indicators and
// the breakdowns themselves stay untouched for reference elsewhere.
func RecomputeScalars(deputies []schema.Deputy, fs *FilterState) []schema.Deputy {
	if !fs.HasYears() && !fs.HasCategories() {
		return deputies
	}

	out := make([]schema.Deputy, 0, len(deputies))
	for i := range deputies {
		d := deputies[i] // shallow copy

		source := resolveScalarSource(fs.HasYears(), fs.HasCategories(), len(d.ByMonth) > 0, len(d.ByCategory) > 0)
		switch source {
		case scalarFromCategories:
			var spending float64
			var txns int
			for j := range d.ByCategory {
				if fs.CategorySelected(d.ByCategory[j].Category) {
					spending += d.ByCategory[j].Value
					txns += d.ByCategory[j].TransactionCount
				}
			}
			d.TotalSpending = spending
			d.TransactionCount = txns
		case scalarFromMonths:
			var spending float64
			var txns int
			for j := range d.ByMonth {
				if fs.YearSelected(schema.MonthYear(d.ByMonth[j].Month)) {
					spending += d.ByMonth[j].Value
					txns += d.ByMonth[j].TransactionCount
				}
			}
			d.TotalSpending = spending
			d.TransactionCount = txns
		case scalarFromLifetime:
			// Lifetime totals stand unchanged.
		}

		if source != scalarFromLifetime {
			if d.TransactionCount > 0 {
				d.AvgTicket = d.TotalSpending / float64(d.TransactionCount)
			} else {
				d.AvgTicket = 0
			}
			if d.TotalSpending == 0 {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}
