// Package dataset defines the AFib therapy dataset and its JSON loading.
// The dataset is loaded once and treated as immutable input; every derived
// view (facets, feeds, search results) is recomputed from it.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Trial is a single clinical trial attached to an item. Readout is the
// human label ("Q4 2026"); ReadoutDate is the structured ISO date. The two
// are independently optional and may disagree; neither is inferred from
// the other.
type Trial struct {
	Name        string `json:"name"`
	Phase       string `json:"phase"`
	Status      string `json:"status"`
	Readout     string `json:"readout"`
	ReadoutDate string `json:"readout_date"`
	RegistryID  string `json:"registry_id"`
	Note        string `json:"note,omitempty"`
}

// Item is one therapy (drug or device) in the catalog. Category and Stage
// are free-text labels authored upstream, not enums.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Category      string   `json:"category"`
	Stage         string   `json:"stage"`
	Mechanism     string   `json:"mechanism"`
	Focus         string   `json:"focus"`
	Company       string   `json:"company"`
	LatestUpdate  string   `json:"latest_update"`
	Tags          []string `json:"tags"`
	Trials        []Trial  `json:"trials"`
	Notes         string   `json:"notes"`
	Sources       []string `json:"sources"`
	Press2026     bool     `json:"press_2026,omitempty"`
	BubbleExclude bool     `json:"bubble_exclude,omitempty"`
}

// WeeklyEntry is one row of a weekly-updates section.
type WeeklyEntry struct {
	Title  string `json:"title"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// Dataset is the full document. WeeklyUpdates is keyed by section name
// (safety_signals, label_expansions, guideline_updates,
// conference_abstracts, press_pipeline).
type Dataset struct {
	AsOf          string                   `json:"as_of"`
	Items         []Item                   `json:"items"`
	WeeklyUpdates map[string][]WeeklyEntry `json:"weekly_updates"`
}

// Decode reads a dataset from r. Missing optional fields default to zero
// values; Items, Trials and Tags are always non-nil after a successful
// decode so callers can range without nil checks.
func Decode(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if d.Items == nil {
		d.Items = []Item{}
	}
	for i := range d.Items {
		if d.Items[i].Trials == nil {
			d.Items[i].Trials = []Trial{}
		}
		if d.Items[i].Tags == nil {
			d.Items[i].Tags = []string{}
		}
	}
	if d.WeeklyUpdates == nil {
		d.WeeklyUpdates = map[string][]WeeklyEntry{}
	}
	return &d, nil
}

// Load reads the dataset from a JSON file. Any failure here is fatal to
// initialization: without a dataset there is nothing to derive.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save writes the dataset back to disk. Only the refresh commands call
// this; the derivation core never mutates or persists anything.
func (d *Dataset) Save(path string) error {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0644)
}

// ItemsByID indexes items by their identity field.
func (d *Dataset) ItemsByID() map[string]*Item {
	byID := make(map[string]*Item, len(d.Items))
	for i := range d.Items {
		byID[d.Items[i].ID] = &d.Items[i]
	}
	return byID
}
