// Package feeds builds the two derived intelligence views: the "what's
// new" update feed and the upcoming trial readout feed. Both are pure
// functions of the item list, rebuilt on every call.
package feeds

import (
	"sort"
	"strings"

	"github.com/afwatch/afwatch/pkg/classify"
	"github.com/afwatch/afwatch/pkg/dataset"
)

// Limit caps both feeds; the dashboard shows at most this many rows.
const Limit = 6

// Updates from before this year are stale by definition.
const updateYear = "2026"

const fallbackUpdate = "2026 update noted in trials"

// UpdateEntry is one row of the "what's new" feed.
type UpdateEntry struct {
	Name   string `json:"name"`
	Update string `json:"update"`
	Type   string `json:"type"`
	Press  bool   `json:"press"`
	Stage  string `json:"stage"`
}

// ReadoutEntry is one row of the upcoming readouts feed.
type ReadoutEntry struct {
	Item        string `json:"item"`
	Trial       string `json:"trial"`
	Readout     string `json:"readout"`
	ReadoutDate string `json:"readout_date,omitempty"`
}

// has2026Update reports whether the item carries any 2026-dated signal:
// the update text mentions the year, a trial readout label mentions it,
// or a trial's structured readout date falls in it.
func has2026Update(it dataset.Item) bool {
	if strings.Contains(it.LatestUpdate, updateYear) {
		return true
	}
	for _, t := range it.Trials {
		if strings.Contains(t.Readout, updateYear) {
			return true
		}
		if d, ok := dataset.ParseDate(t.ReadoutDate); ok && d.Year() == 2026 {
			return true
		}
	}
	return false
}

// BuildUpdateEntries derives the update feed from items. Items flagged
// bubble_exclude are dropped, as are drugs from generic manufacturers
// (their "updates" are pricing noise, not pipeline news). Press-flagged
// entries rank first, then earlier stage-priority; the sort is stable so
// dataset order breaks remaining ties. Callers wanting a per-type feed
// pre-filter the items.
func BuildUpdateEntries(items []dataset.Item) []UpdateEntry {
	entries := make([]UpdateEntry, 0, len(items))
	for _, it := range items {
		if it.BubbleExclude {
			continue
		}
		if it.Type == "Drug" && strings.Contains(strings.ToLower(it.Company), "generic") {
			continue
		}
		if !has2026Update(it) {
			continue
		}
		update := it.LatestUpdate
		if update == "" {
			update = fallbackUpdate
		}
		entries = append(entries, UpdateEntry{
			Name:   it.Name,
			Update: update,
			Type:   it.Type,
			Press:  it.Press2026,
			Stage:  it.Stage,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Press != entries[j].Press {
			return entries[i].Press
		}
		return classify.StagePriority(entries[i].Stage) < classify.StagePriority(entries[j].Stage)
	})

	if len(entries) > Limit {
		entries = entries[:Limit]
	}
	return entries
}

// FilterByType returns the items of one type, preserving order. The
// update feed is built per type (device feed, drug feed) by callers.
func FilterByType(items []dataset.Item, itemType string) []dataset.Item {
	if itemType == "" {
		return items
	}
	out := make([]dataset.Item, 0, len(items))
	for _, it := range items {
		if it.Type == itemType {
			out = append(out, it)
		}
	}
	return out
}

// UpcomingReadouts flattens every trial with a readout label into one
// feed, soonest first. Entries with a parseable readout_date sort
// chronologically and always ahead of undated ones; undated entries fall
// back to lexicographic order of their readout text.
func UpcomingReadouts(items []dataset.Item) []ReadoutEntry {
	entries := []ReadoutEntry{}
	for _, it := range items {
		for _, t := range it.Trials {
			if t.Readout == "" {
				continue
			}
			entries = append(entries, ReadoutEntry{
				Item:        it.Name,
				Trial:       t.Name,
				Readout:     t.Readout,
				ReadoutDate: t.ReadoutDate,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, oki := dataset.ParseDate(entries[i].ReadoutDate)
		dj, okj := dataset.ParseDate(entries[j].ReadoutDate)
		switch {
		case oki && okj:
			return di.Before(dj)
		case oki:
			return true
		case okj:
			return false
		default:
			return entries[i].Readout < entries[j].Readout
		}
	})

	if len(entries) > Limit {
		entries = entries[:Limit]
	}
	return entries
}
