package core

import (
	"fmt"
	"math"
	"sort"

	"github.com/ceaplens/ceaplens/schema"
)

// Anomaly thresholds in standard deviations. Extreme takes precedence over
// the plain spike/drop classification when both are crossed.
const (
	spikeThreshold   = 1.5
	extremeThreshold = 2.0
)

// EnrichSeries computes the full temporal enrichment of a chronological
// monthly series: distributional statistics, per-point deviation and rank,
// anomaly classification, year summaries and calendar annotations. The input
// may arrive unordered; it is sorted by month key without being mutated.
func EnrichSeries(series []schema.MonthPoint) schema.EnrichedSeries {
	points := make([]schema.MonthPoint, len(series))
	copy(points, series)
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })

	stats := ComputeSeriesStats(points)
	enriched := enrichPoints(points, stats)

	return schema.EnrichedSeries{
		Points: enriched,
		Stats:  stats,
		Years:  summarizeYears(points),
		Notes:  calendarNotes(points),
	}
}

// ComputeSeriesStats returns mean, population standard deviation, min, max,
// sum, count and median of the series values.
func ComputeSeriesStats(points []schema.MonthPoint) schema.SeriesStats {
	n := len(points)
	if n == 0 {
		return schema.SeriesStats{}
	}

	values := make([]float64, n)
	stats := schema.SeriesStats{Count: n, Min: points[0].Value, Max: points[0].Value}
	for i := range points {
		v := points[i].Value
		values[i] = v
		stats.Sum += v
		stats.Min = math.Min(stats.Min, v)
		stats.Max = math.Max(stats.Max, v)
	}
	stats.Mean = stats.Sum / float64(n)

	var variance float64
	for _, v := range values {
		diff := v - stats.Mean
		variance += diff * diff
	}
	stats.StdDev = math.Sqrt(variance / float64(n))

	sort.Float64s(values)
	if n%2 == 1 {
		stats.Median = values[n/2]
	} else {
		stats.Median = (values[n/2-1] + values[n/2]) / 2
	}
	return stats
}

// enrichPoints attaches deviation, rank and anomaly classification to every
// point of the (already sorted) series.
func enrichPoints(points []schema.MonthPoint, stats schema.SeriesStats) []schema.EnrichedMonthPoint {
	n := len(points)
	enriched := make([]schema.EnrichedMonthPoint, 0, n)

	// Rank 1 = highest value. Ties resolve by chronological position, which
	// keeps ranks stable across calls.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return points[order[a]].Value > points[order[b]].Value })
	ranks := make([]int, n)
	for pos, idx := range order {
		ranks[idx] = pos + 1
	}

	for i := range points {
		p := points[i]
		year, monthIndex, _ := schema.SplitMonthKey(p.Month)

		var deviation float64
		if stats.StdDev > 0 {
			deviation = (p.Value - stats.Mean) / stats.StdDev
		}
		var deviationPct float64
		if stats.Mean != 0 {
			deviationPct = (p.Value - stats.Mean) / stats.Mean * 100
		}

		e := schema.EnrichedMonthPoint{
			MonthPoint:   p,
			Year:         year,
			MonthIndex:   monthIndex,
			Deviation:    deviation,
			DeviationPct: deviationPct,
			Rank:         ranks[i],
			RankLabel:    rankLabel(ranks[i], n),
			IsSpike:      deviation >= spikeThreshold,
			IsDrop:       deviation <= -spikeThreshold,
			IsExtreme:    math.Abs(deviation) >= extremeThreshold,
		}
		e.IsAnomaly = e.IsSpike || e.IsDrop
		e.AnomalyType = classifyAnomaly(e)
		enriched = append(enriched, e)
	}
	return enriched
}

// classifyAnomaly maps the boolean flags to a single type tag, with extreme
// taking precedence over plain spike/drop.
func classifyAnomaly(e schema.EnrichedMonthPoint) schema.AnomalyType {
	switch {
	case e.IsExtreme && e.IsSpike:
		return schema.AnomalyExtremeSpike
	case e.IsExtreme && e.IsDrop:
		return schema.AnomalyExtremeDrop
	case e.IsSpike:
		return schema.AnomalySpike
	case e.IsDrop:
		return schema.AnomalyDrop
	default:
		return schema.AnomalyNone
	}
}

// rankLabel renders a human-readable rank: "Nth highest" for the top
// quartile, "Nth lowest" (counted from the low end) for the bottom quartile,
// otherwise "Nth of N".
func rankLabel(rank, total int) string {
	quartile := total / 4
	switch {
	case quartile > 0 && rank <= quartile:
		return fmt.Sprintf("%s highest", ordinal(rank))
	case quartile > 0 && rank > total-quartile:
		return fmt.Sprintf("%s lowest", ordinal(total - rank + 1))
	default:
		return fmt.Sprintf("%s of %d", ordinal(rank), total)
	}
}

// ordinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th", etc.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// summarizeYears folds the series into per-calendar-year summaries with
// year-over-year growth relative to the immediately preceding year present
// in the data.
func summarizeYears(points []schema.MonthPoint) []schema.YearSummary {
	byYear := make(map[int][]schema.MonthPoint)
	for i := range points {
		year := schema.MonthYear(points[i].Month)
		if year == 0 {
			continue
		}
		byYear[year] = append(byYear[year], points[i])
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	totals := make(map[int]float64, len(years))
	summaries := make([]schema.YearSummary, 0, len(years))
	for idx, year := range years {
		entries := byYear[year]
		summary := schema.YearSummary{Year: year, MonthCount: len(entries)}
		peak, lowest := entries[0], entries[0]
		for _, e := range entries {
			summary.Total += e.Value
			if e.Value > peak.Value {
				peak = e
			}
			if e.Value < lowest.Value {
				lowest = e
			}
		}
		summary.Mean = summary.Total / float64(len(entries))
		summary.PeakMonth = peak.Month
		summary.LowestMonth = lowest.Month
		totals[year] = summary.Total

		if idx > 0 {
			prior := totals[years[idx-1]]
			if prior != 0 {
				growth := (summary.Total - prior) / prior * 100
				summary.GrowthPct = &growth
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// recurringNotes are the fixed, data-independent annotations generated for
// every year present in the input. January and July are the congressional
// recess months; December closes the fiscal year.
var recurringNotes = map[int]string{
	1:  "Recesso parlamentar (janeiro)",
	7:  "Recesso parlamentar (julho)",
	12: "Fechamento do exercício fiscal",
}

// calendarNotes generates the recurring annotations for every year present
// in the series, then keeps only the months that actually exist in the data
// so annotations never reference months with no corresponding point.
func calendarNotes(points []schema.MonthPoint) []schema.CalendarNote {
	present := make(map[string]struct{}, len(points))
	yearSet := make(map[int]struct{})
	for i := range points {
		present[points[i].Month] = struct{}{}
		if year := schema.MonthYear(points[i].Month); year != 0 {
			yearSet[year] = struct{}{}
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)

	var notes []schema.CalendarNote
	for _, year := range years {
		for month := 1; month <= 12; month++ {
			label, ok := recurringNotes[month]
			if !ok {
				continue
			}
			key := schema.MonthKey(year, month)
			if _, exists := present[key]; exists {
				notes = append(notes, schema.CalendarNote{Month: key, Label: label})
			}
		}
	}
	return notes
}
