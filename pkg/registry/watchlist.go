package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/afwatch/afwatch/pkg/dataset"
)

// Watch ties one registry study to a dataset item and trial.
type Watch struct {
	NCTID     string `json:"nct_id"`
	ItemID    string `json:"item_id"`
	TrialName string `json:"trial_name"`
	Note      string `json:"note,omitempty"`
}

// Watchlist is the set of studies to refresh.
type Watchlist struct {
	ClinicalTrials []Watch `json:"clinical_trials"`
}

// LoadWatchlist reads the watchlist JSON file.
func LoadWatchlist(path string) (*Watchlist, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening watchlist: %w", err)
	}
	var wl Watchlist
	if err := json.Unmarshal(raw, &wl); err != nil {
		return nil, fmt.Errorf("parsing watchlist: %w", err)
	}
	return &wl, nil
}

// ApplyStatus patches the watched trial on an item with a fetched status.
// When the item has no trial by the watched name yet, a stub trial is
// created so the readout feed picks it up on the next derivation. The
// readout label is left alone: the text and the structured date are
// allowed to disagree, and reconciling them is the dataset author's call.
func ApplyStatus(it *dataset.Item, w Watch, st *Status) {
	var trial *dataset.Trial
	for i := range it.Trials {
		if it.Trials[i].Name == w.TrialName {
			trial = &it.Trials[i]
			break
		}
	}
	if trial == nil {
		it.Trials = append(it.Trials, dataset.Trial{
			Name:       w.TrialName,
			Readout:    "TBD",
			RegistryID: w.NCTID,
			Note:       w.Note,
		})
		trial = &it.Trials[len(it.Trials)-1]
	}

	if st.Overall != "" {
		trial.Status = st.Overall
	}
	if st.PrimaryCompletion != "" {
		trial.ReadoutDate = st.PrimaryCompletion
	}
	if st.LastUpdatePosted != "" {
		it.LatestUpdate = fmt.Sprintf("ClinicalTrials.gov update posted %s", st.LastUpdatePosted)
	}
}
