package core

import (
	"sort"

	"github.com/ceaplens/ceaplens/schema"
)

// BuildSnapshot folds a filtered (and possibly recomputed) deputy list into a
// derived aggregation snapshot: grand totals plus the by-party, by-state,
// by-category and by-month rollups.
//
// Fast path: when no facet is active the baseline snapshot is returned
// verbatim: it is already consistent and may reflect information (such as
// supplier dedup across the full population) unavailable locally.
func BuildSnapshot(deputies []schema.Deputy, fs *FilterState, baseline *schema.Snapshot) *schema.Snapshot {
	if baseline == nil {
		baseline = schema.EmptySnapshot()
	}
	if fs == nil || !fs.HasActive() {
		return baseline
	}

	snap := schema.EmptySnapshot()
	snap.Meta.LastUpdated = baseline.Meta.LastUpdated
	snap.Meta.TotalDeputies = len(deputies)

	type partyAcc struct {
		value float64
		count int
	}
	type monthAcc struct {
		value float64
		txns  int
	}
	type categoryAcc struct {
		value float64
		txns  int
	}

	parties := make(map[string]*partyAcc)
	states := make(map[string]*partyAcc)
	months := make(map[string]*monthAcc)
	categories := make(map[string]*categoryAcc)

	cnpjs := make(map[string]struct{})
	anyCnpjData := false
	supplierCountSum := 0

	for i := range deputies {
		d := &deputies[i]
		snap.Meta.TotalSpending += d.TotalSpending
		snap.Meta.TotalTransactions += d.TransactionCount

		if p, ok := parties[d.Party]; ok {
			p.value += d.TotalSpending
			p.count++
		} else {
			parties[d.Party] = &partyAcc{value: d.TotalSpending, count: 1}
		}
		if s, ok := states[d.UF]; ok {
			s.value += d.TotalSpending
			s.count++
		} else {
			states[d.UF] = &partyAcc{value: d.TotalSpending, count: 1}
		}

		// Monthly rollup only sees months present in this deputy's breakdown,
		// honoring the active year filter.
		for j := range d.ByMonth {
			mp := &d.ByMonth[j]
			if fs.HasYears() && !fs.YearSelected(schema.MonthYear(mp.Month)) {
				continue
			}
			if m, ok := months[mp.Month]; ok {
				m.value += mp.Value
				m.txns += mp.TransactionCount
			} else {
				months[mp.Month] = &monthAcc{value: mp.Value, txns: mp.TransactionCount}
			}
		}

		// Category rollup honors the active category filter the same way.
		for j := range d.ByCategory {
			cb := &d.ByCategory[j]
			if fs.HasCategories() && !fs.CategorySelected(cb.Category) {
				continue
			}
			if c, ok := categories[cb.Category]; ok {
				c.value += cb.Value
				c.txns += cb.TransactionCount
			} else {
				categories[cb.Category] = &categoryAcc{value: cb.Value, txns: cb.TransactionCount}
			}
		}

		if len(d.SupplierCnpjs) > 0 {
			anyCnpjData = true
			for _, cnpj := range d.SupplierCnpjs {
				cnpjs[cnpj] = struct{}{}
			}
		}
		supplierCountSum += d.SupplierCount
	}

	// Exact dedup when identifier data exists; otherwise fall back to summed
	// per-deputy counts, a known overcount when suppliers are shared.
	if anyCnpjData {
		snap.Meta.TotalSuppliers = len(cnpjs)
	} else {
		snap.Meta.TotalSuppliers = supplierCountSum
	}

	for party, acc := range parties {
		entry := schema.PartyTotal{Party: party, Value: acc.value, DeputyCount: acc.count}
		if acc.count > 0 {
			entry.AvgPerDeputy = acc.value / float64(acc.count)
		}
		snap.ByParty = append(snap.ByParty, entry)
	}
	sort.Slice(snap.ByParty, func(i, j int) bool { return snap.ByParty[i].Value > snap.ByParty[j].Value })

	for uf, acc := range states {
		entry := schema.StateTotal{UF: uf, Value: acc.value, DeputyCount: acc.count}
		if acc.count > 0 {
			entry.AvgPerDeputy = acc.value / float64(acc.count)
		}
		snap.ByState = append(snap.ByState, entry)
	}
	sort.Slice(snap.ByState, func(i, j int) bool { return snap.ByState[i].Value > snap.ByState[j].Value })

	// Category percentages are relative to the summed category total, not the
	// grand total, so they stay meaningful under an active category filter.
	var categorySum float64
	for _, acc := range categories {
		categorySum += acc.value
	}
	for cat, acc := range categories {
		entry := schema.CategoryTotal{Category: cat, Value: acc.value, TransactionCount: acc.txns}
		if categorySum > 0 {
			entry.Pct = acc.value / categorySum * 100
		}
		snap.ByCategory = append(snap.ByCategory, entry)
	}
	sort.Slice(snap.ByCategory, func(i, j int) bool { return snap.ByCategory[i].Value > snap.ByCategory[j].Value })

	for month, acc := range months {
		snap.ByMonth = append(snap.ByMonth, schema.MonthPoint{
			Month:            month,
			Value:            acc.value,
			TransactionCount: acc.txns,
		})
	}
	// Zero-padded month keys sort chronologically.
	sort.Slice(snap.ByMonth, func(i, j int) bool { return snap.ByMonth[i].Month < snap.ByMonth[j].Month })

	if len(snap.ByMonth) > 0 {
		snap.Meta.Period.Start = snap.ByMonth[0].Month
		snap.Meta.Period.End = snap.ByMonth[len(snap.ByMonth)-1].Month
	}

	return snap
}
