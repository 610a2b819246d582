// Package query implements the faceted filter and free-text search
// predicate over dataset items. Filter state is an explicit value passed
// in by the caller; nothing here holds state between calls.
package query

import (
	"strings"

	"github.com/afwatch/afwatch/pkg/classify"
	"github.com/afwatch/afwatch/pkg/dataset"
)

// Filters holds the active facet selections. An empty (or nil) set on a
// facet means no constraint on that facet; facets combine with AND.
type Filters struct {
	Category map[string]bool
	Stage    map[string]bool
	Type     map[string]bool
}

// NewFilters builds a Filters value from selected facet values.
func NewFilters(categories, stages, types []string) Filters {
	return Filters{
		Category: toSet(categories),
		Stage:    toSet(stages),
		Type:     toSet(types),
	}
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Matches reports whether an item passes the active filters and search
// text. Category/stage filters test the item's classified value, so an
// item whose text maps to no canonical value fails any non-empty filter
// on that facet. An empty search passes everything.
func Matches(it dataset.Item, f Filters, search string) bool {
	if len(f.Category) > 0 {
		v, ok := classify.Category(it.Category)
		if !ok || !f.Category[v] {
			return false
		}
	}
	if len(f.Stage) > 0 {
		v, ok := classify.Stage(it.Stage)
		if !ok || !f.Stage[v] {
			return false
		}
	}
	if len(f.Type) > 0 && !f.Type[it.Type] {
		return false
	}
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(Haystack(it)), strings.ToLower(search))
}

// Haystack concatenates the searchable fields of an item into one blob.
// Fields are joined with a single space, so a query can match across a
// field boundary ("acme pulsed" matching company "Acme" followed by name
// "Pulsed..."); that is accepted behavior, not worth a structured search.
func Haystack(it dataset.Item) string {
	parts := []string{
		it.Name,
		it.Company,
		it.Mechanism,
		it.Focus,
		it.Category,
		it.Stage,
		it.Type,
		it.LatestUpdate,
		it.Notes,
		strings.Join(it.Tags, " "),
	}
	for _, t := range it.Trials {
		parts = append(parts, t.Name+" "+t.Status+" "+t.Readout)
	}
	return strings.Join(parts, " ")
}

// VisibleItems returns the items passing the filters and search, in
// dataset order.
func VisibleItems(d *dataset.Dataset, f Filters, search string) []dataset.Item {
	out := make([]dataset.Item, 0, len(d.Items))
	for _, it := range d.Items {
		if Matches(it, f, search) {
			out = append(out, it)
		}
	}
	return out
}
