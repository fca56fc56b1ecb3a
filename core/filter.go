// Package core has the filter, recompute, aggregation and enrichment logic.
package core

import (
	"sort"
	"strings"

	"github.com/ceaplens/ceaplens/internal/contract"
	"github.com/ceaplens/ceaplens/schema"
)

// FilterState holds the active facet selections plus the session-only search
// query. Mutations go through the toggle/set/clear methods, which persist the
// facet sets (never the search text) to the attached store. Single-writer,
// synchronous access; none of the methods return errors because all inputs
// are pre-validated value types.
type FilterState struct {
	years      map[int]struct{}
	states     map[string]struct{}
	parties    map[string]struct{}
	categories map[string]struct{}
	risks      map[schema.RiskLevel]struct{}
	search     string

	store contract.FacetStore // nil means no persistence
}

// NewFilterState returns an empty filter state with no persistence attached.
func NewFilterState() *FilterState {
	return &FilterState{
		years:      make(map[int]struct{}),
		states:     make(map[string]struct{}),
		parties:    make(map[string]struct{}),
		categories: make(map[string]struct{}),
		risks:      make(map[schema.RiskLevel]struct{}),
	}
}

// LoadFilterState builds a filter state from the selections persisted in the
// store and attaches the store for subsequent mutations. A read failure
// degrades to an empty state rather than an error: stale or missing persisted
// facets must never block the session.
func LoadFilterState(store contract.FacetStore) *FilterState {
	fs := NewFilterState()
	fs.store = store
	if store == nil {
		return fs
	}
	sel, err := store.Load()
	if err != nil {
		return fs
	}
	fs.apply(sel)
	return fs
}

// apply replaces the facet sets from a serialized selection, without
// persisting. The search query is untouched: it is not part of the
// serialization boundary.
func (fs *FilterState) apply(sel schema.FacetSelections) {
	fs.years = make(map[int]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		fs.years[y] = struct{}{}
	}
	fs.states = make(map[string]struct{}, len(sel.States))
	for _, s := range sel.States {
		fs.states[s] = struct{}{}
	}
	fs.parties = make(map[string]struct{}, len(sel.Parties))
	for _, p := range sel.Parties {
		fs.parties[p] = struct{}{}
	}
	fs.categories = make(map[string]struct{}, len(sel.Categories))
	for _, c := range sel.Categories {
		fs.categories[c] = struct{}{}
	}
	fs.risks = make(map[schema.RiskLevel]struct{}, len(sel.Risks))
	for _, r := range sel.Risks {
		fs.risks[r] = struct{}{}
	}
}

// persist writes the current facet sets to the attached store. Persistence
// failures are swallowed: losing a saved selection is strictly better than
// failing a filter toggle.
func (fs *FilterState) persist() {
	if fs.store == nil {
		return
	}
	_ = fs.store.Save(fs.Selections())
}

// SetSelections replaces all facet sets at once and persists.
func (fs *FilterState) SetSelections(sel schema.FacetSelections) {
	fs.apply(sel)
	fs.persist()
}

// ToggleYear adds the year if absent, removes it if present.
func (fs *FilterState) ToggleYear(year int) {
	if _, ok := fs.years[year]; ok {
		delete(fs.years, year)
	} else {
		fs.years[year] = struct{}{}
	}
	fs.persist()
}

// ToggleState adds the state code if absent, removes it if present.
func (fs *FilterState) ToggleState(uf string) {
	if _, ok := fs.states[uf]; ok {
		delete(fs.states, uf)
	} else {
		fs.states[uf] = struct{}{}
	}
	fs.persist()
}

// ToggleParty adds the party code if absent, removes it if present.
func (fs *FilterState) ToggleParty(party string) {
	if _, ok := fs.parties[party]; ok {
		delete(fs.parties, party)
	} else {
		fs.parties[party] = struct{}{}
	}
	fs.persist()
}

// ToggleCategory adds the category label if absent, removes it if present.
func (fs *FilterState) ToggleCategory(category string) {
	if _, ok := fs.categories[category]; ok {
		delete(fs.categories, category)
	} else {
		fs.categories[category] = struct{}{}
	}
	fs.persist()
}

// ToggleRisk adds the risk tier if absent, removes it if present.
func (fs *FilterState) ToggleRisk(level schema.RiskLevel) {
	if _, ok := fs.risks[level]; ok {
		delete(fs.risks, level)
	} else {
		fs.risks[level] = struct{}{}
	}
	fs.persist()
}

// SetSearch sets the session-only free-text query. Never persisted.
func (fs *FilterState) SetSearch(query string) {
	fs.search = query
}

// Search returns the current free-text query.
func (fs *FilterState) Search() string {
	return fs.search
}

// Clear resets all facet sets and the search query, and persists the now
// empty facet selection.
func (fs *FilterState) Clear() {
	fs.apply(schema.FacetSelections{})
	fs.search = ""
	fs.persist()
}

// HasActive reports whether any facet set or the search query is non-empty.
func (fs *FilterState) HasActive() bool {
	return len(fs.years) > 0 || len(fs.states) > 0 || len(fs.parties) > 0 ||
		len(fs.categories) > 0 || len(fs.risks) > 0 || fs.search != ""
}

// HasYears reports whether any year is selected.
func (fs *FilterState) HasYears() bool { return len(fs.years) > 0 }

// HasCategories reports whether any category is selected.
func (fs *FilterState) HasCategories() bool { return len(fs.categories) > 0 }

// YearSelected reports whether the given year is selected.
func (fs *FilterState) YearSelected(year int) bool {
	_, ok := fs.years[year]
	return ok
}

// CategorySelected reports whether the given category is selected.
func (fs *FilterState) CategorySelected(category string) bool {
	_, ok := fs.categories[category]
	return ok
}

// Selections returns the facet sets in canonical sorted order. The result is
// a fresh value every call; mutating it does not touch the filter state.
func (fs *FilterState) Selections() schema.FacetSelections {
	sel := schema.FacetSelections{}
	for y := range fs.years {
		sel.Years = append(sel.Years, y)
	}
	sort.Ints(sel.Years)
	for s := range fs.states {
		sel.States = append(sel.States, s)
	}
	sort.Strings(sel.States)
	for p := range fs.parties {
		sel.Parties = append(sel.Parties, p)
	}
	sort.Strings(sel.Parties)
	for c := range fs.categories {
		sel.Categories = append(sel.Categories, c)
	}
	sort.Strings(sel.Categories)
	for r := range fs.risks {
		sel.Risks = append(sel.Risks, r)
	}
	sort.Slice(sel.Risks, func(i, j int) bool {
		return sel.Risks[i].Severity() < sel.Risks[j].Severity()
	})
	return sel
}

// ActiveKinds lists the facet dimensions with at least one selection, in the
// fixed year/state/party/category/risk order. The search query is not a facet
// and never appears here.
func (fs *FilterState) ActiveKinds() []schema.FacetKind {
	var kinds []schema.FacetKind
	if len(fs.years) > 0 {
		kinds = append(kinds, schema.FacetYear)
	}
	if len(fs.states) > 0 {
		kinds = append(kinds, schema.FacetState)
	}
	if len(fs.parties) > 0 {
		kinds = append(kinds, schema.FacetParty)
	}
	if len(fs.categories) > 0 {
		kinds = append(kinds, schema.FacetCategory)
	}
	if len(fs.risks) > 0 {
		kinds = append(kinds, schema.FacetRisk)
	}
	return kinds
}

// ApplyFilters reduces the full deputy collection to the subset satisfying
// every active predicate of the filter state. Predicates combine with logical
// AND; cheap set-membership checks run before the substring search so large
// collections short-circuit early. The source slice is never mutated.
//
// Two exclusions apply regardless of user-chosen filters: internal leadership
// placeholder accounts are always removed, and, for the default (non-search)
// view, deputies with no data point in the two most recent tracked years are
// removed to distinguish current-term from past-term legislators.
func ApplyFilters(deputies []schema.Deputy, fs *FilterState, trackedYears []int) []schema.Deputy {
	query := strings.ToLower(strings.TrimSpace(fs.search))
	out := make([]schema.Deputy, 0, len(deputies))

	for i := range deputies {
		d := &deputies[i]
		if schema.IsLeadershipPlaceholder(d) {
			continue
		}
		if query == "" && !activeInYears(d, trackedYears) {
			continue
		}
		if len(fs.states) > 0 {
			if _, ok := fs.states[d.UF]; !ok {
				continue
			}
		}
		if len(fs.parties) > 0 {
			if _, ok := fs.parties[d.Party]; !ok {
				continue
			}
		}
		if len(fs.risks) > 0 {
			if _, ok := fs.risks[d.RiskLevel]; !ok {
				continue
			}
		}
		if !matchesYears(d, fs) {
			continue
		}
		if !matchesCategories(d, fs) {
			continue
		}
		if query != "" && !matchesSearch(d, query) {
			continue
		}
		out = append(out, *d)
	}
	return out
}

// matchesYears passes when no year is selected, when the deputy carries no
// monthly breakdown at all (entities lacking temporal detail are not
// penalized), or when at least one breakdown entry falls in a selected year.
func matchesYears(d *schema.Deputy, fs *FilterState) bool {
	if len(fs.years) == 0 || len(d.ByMonth) == 0 {
		return true
	}
	for i := range d.ByMonth {
		if _, ok := fs.years[schema.MonthYear(d.ByMonth[i].Month)]; ok {
			return true
		}
	}
	return false
}

// matchesCategories mirrors matchesYears for the category breakdown.
func matchesCategories(d *schema.Deputy, fs *FilterState) bool {
	if len(fs.categories) == 0 || len(d.ByCategory) == 0 {
		return true
	}
	for i := range d.ByCategory {
		if _, ok := fs.categories[d.ByCategory[i].Category]; ok {
			return true
		}
	}
	return false
}

// matchesSearch does a case-insensitive substring match against name, party
// and state. The query is already lowercased by the caller.
func matchesSearch(d *schema.Deputy, query string) bool {
	return strings.Contains(strings.ToLower(d.Name), query) ||
		strings.Contains(strings.ToLower(d.Party), query) ||
		strings.Contains(strings.ToLower(d.UF), query)
}

// activeInYears reports whether the deputy has at least one monthly data
// point in any of the tracked years. Deputies without breakdown data pass:
// older records without temporal detail should not vanish from the list.
func activeInYears(d *schema.Deputy, years []int) bool {
	if len(years) == 0 || len(d.ByMonth) == 0 {
		return true
	}
	for i := range d.ByMonth {
		y := schema.MonthYear(d.ByMonth[i].Month)
		for _, tracked := range years {
			if y == tracked {
				return true
			}
		}
	}
	return false
}

// TrackedYears derives the two most recent tracked years from the baseline
// snapshot's period end. A zero baseline yields nil, which disables the
// current-term exclusion entirely.
func TrackedYears(baseline *schema.Snapshot) []int {
	if baseline == nil {
		return nil
	}
	end := schema.MonthYear(baseline.Meta.Period.End)
	if end == 0 {
		return nil
	}
	return []int{end, end - 1}
}
