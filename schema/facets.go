package schema

// FacetSelections is the serialization boundary for persisted facet sets.
// The free-text search query is deliberately not part of this type: facets
// are durable, search text is session-only, and keeping them in separate
// shapes prevents transient fields from leaking into storage on refactors.
type FacetSelections struct {
	Years      []int       `json:"years,omitempty"`
	States     []string    `json:"states,omitempty"`
	Parties    []string    `json:"parties,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Risks      []RiskLevel `json:"risks,omitempty"`
}

// IsEmpty reports whether no facet value is selected.
func (s FacetSelections) IsEmpty() bool {
	return len(s.Years) == 0 && len(s.States) == 0 && len(s.Parties) == 0 &&
		len(s.Categories) == 0 && len(s.Risks) == 0
}
