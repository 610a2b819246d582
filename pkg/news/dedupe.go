package news

import (
	"regexp"
	"sort"
	"strings"

	"github.com/afwatch/afwatch/pkg/dataset"
)

var (
	titleSplitRe = regexp.MustCompile(`\s[-|\x{2014}]\s`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// NormalizeTitle reduces a headline to a comparison key: the part before
// any " - Publisher" suffix, lower-cased, stripped of punctuation.
// Syndicated copies of the same story then collide.
func NormalizeTitle(title string) string {
	base := titleSplitRe.Split(title, 2)[0]
	base = strings.ToLower(base)
	base = nonAlnumRe.ReplaceAllString(base, " ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(base, " "))
}

// Dedupe collapses entries sharing a (normalized title, date) key,
// keeping the longest title per key. Newest entries are considered
// first so the surviving copy of an undated duplicate is the freshest.
func Dedupe(entries []dataset.WeeklyEntry) []dataset.WeeklyEntry {
	ordered := make([]dataset.WeeklyEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date > ordered[j].Date
	})

	type key struct{ title, date string }
	best := make(map[key]dataset.WeeklyEntry)
	var order []key
	for _, e := range ordered {
		k := key{NormalizeTitle(e.Title), e.Date}
		cur, seen := best[k]
		if !seen {
			order = append(order, k)
		}
		if !seen || len(e.Title) > len(cur.Title) {
			best[k] = e
		}
	}

	out := make([]dataset.WeeklyEntry, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

// ApplyWeekly replaces the dataset's weekly updates with the harvested
// entries, deduplicated within each section and then across sections in
// SectionOrder so one story appears exactly once.
func ApplyWeekly(d *dataset.Dataset, bySection map[string][]dataset.WeeklyEntry) {
	weekly := make(map[string][]dataset.WeeklyEntry, len(SectionOrder))

	type key struct{ title, date string }
	globalSeen := make(map[key]struct{})

	for _, section := range SectionOrder {
		deduped := Dedupe(bySection[section])
		unique := make([]dataset.WeeklyEntry, 0, len(deduped))
		for _, e := range deduped {
			k := key{NormalizeTitle(e.Title), e.Date}
			if _, ok := globalSeen[k]; ok {
				continue
			}
			globalSeen[k] = struct{}{}
			unique = append(unique, e)
		}
		weekly[section] = unique
	}

	d.WeeklyUpdates = weekly
}
