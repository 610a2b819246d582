// Package facets derives the distinct filter values per facet from the
// dataset.
package facets

import (
	"sort"

	"github.com/afwatch/afwatch/pkg/classify"
	"github.com/afwatch/afwatch/pkg/dataset"
)

// Facets holds the selectable values for each filterable dimension.
type Facets struct {
	Category []string `json:"category"`
	Stage    []string `json:"stage"`
	Type     []string `json:"type"`
}

// CategoryOrder and StageOrder are the canonical display orders. Facet
// output is always a subsequence of these; values no item maps to are
// omitted.
var (
	CategoryOrder = []string{
		"Rate Control",
		"Rhythm Control",
		"PFA Ablation",
		"Thermal Ablation",
		"Stroke Prevention",
	}
	StageOrder = []string{
		"Preclinical",
		"Phase I",
		"Phase II",
		"Phase III",
		"Pivotal",
		"Approved",
		"Pre-registered",
	}
)

// Build derives the facet values present in items. Category and stage go
// through the classifier and keep canonical order; type has no canonical
// list and falls back to lexicographic order of the raw values.
func Build(items []dataset.Item) Facets {
	categories := make(map[string]struct{})
	stages := make(map[string]struct{})
	types := make(map[string]struct{})

	for _, it := range items {
		if v, ok := classify.Category(it.Category); ok {
			categories[v] = struct{}{}
		}
		if v, ok := classify.Stage(it.Stage); ok {
			stages[v] = struct{}{}
		}
		if it.Type != "" {
			types[it.Type] = struct{}{}
		}
	}

	return Facets{
		Category: inCanonicalOrder(categories, CategoryOrder),
		Stage:    inCanonicalOrder(stages, StageOrder),
		Type:     sorted(types),
	}
}

func inCanonicalOrder(present map[string]struct{}, order []string) []string {
	out := make([]string, 0, len(present))
	for _, v := range order {
		if _, ok := present[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

func sorted(present map[string]struct{}) []string {
	out := make([]string, 0, len(present))
	for v := range present {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
