package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afwatch/afwatch/pkg/dataset"
)

const studyJSON = `{
  "protocolSection": {
    "statusModule": {
      "overallStatus": "RECRUITING",
      "lastUpdatePostDateStruct": {"date": "2026-02-10"},
      "primaryCompletionDateStruct": {"date": "2026-09-30"},
      "completionDateStruct": {"date": "2027-03-31"}
    }
  }
}`

func TestStudyStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/NCT01234567" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(studyJSON))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL + "/"))
	st, err := c.StudyStatus(context.Background(), "NCT01234567")
	if err != nil {
		t.Fatal(err)
	}
	if st.Overall != "RECRUITING" {
		t.Errorf("Overall = %q", st.Overall)
	}
	if st.LastUpdatePosted != "2026-02-10" {
		t.Errorf("LastUpdatePosted = %q", st.LastUpdatePosted)
	}
	if st.PrimaryCompletion != "2026-09-30" {
		t.Errorf("PrimaryCompletion = %q", st.PrimaryCompletion)
	}
	if st.Completion != "2027-03-31" {
		t.Errorf("Completion = %q", st.Completion)
	}
}

func TestStudyStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL + "/"))
	if _, err := c.StudyStatus(context.Background(), "NCT00000000"); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestApplyStatus_PatchesExistingTrial(t *testing.T) {
	item := &dataset.Item{
		Name: "FaraWave",
		Trials: []dataset.Trial{
			{Name: "ADVENT-II", Status: "Active", Readout: "Q4 2026", ReadoutDate: "2026-10-01"},
		},
	}
	w := Watch{NCTID: "NCT01234567", ItemID: "farapulse", TrialName: "ADVENT-II"}
	st := &Status{Overall: "RECRUITING", PrimaryCompletion: "2026-09-30", LastUpdatePosted: "2026-02-10"}

	ApplyStatus(item, w, st)

	trial := item.Trials[0]
	if trial.Status != "RECRUITING" {
		t.Errorf("Status = %q", trial.Status)
	}
	if trial.ReadoutDate != "2026-09-30" {
		t.Errorf("ReadoutDate = %q", trial.ReadoutDate)
	}
	if trial.Readout != "Q4 2026" {
		t.Error("readout label must never be rewritten from the structured date")
	}
	if item.LatestUpdate != "ClinicalTrials.gov update posted 2026-02-10" {
		t.Errorf("LatestUpdate = %q", item.LatestUpdate)
	}
}

func TestApplyStatus_CreatesStubTrial(t *testing.T) {
	item := &dataset.Item{Name: "Abelacimab"}
	w := Watch{NCTID: "NCT04755283", ItemID: "abelacimab", TrialName: "LILAC-TIMI 76", Note: "watch"}
	st := &Status{Overall: "ACTIVE_NOT_RECRUITING"}

	ApplyStatus(item, w, st)

	if len(item.Trials) != 1 {
		t.Fatalf("expected a stub trial, got %+v", item.Trials)
	}
	trial := item.Trials[0]
	if trial.Name != "LILAC-TIMI 76" || trial.RegistryID != "NCT04755283" {
		t.Errorf("unexpected stub: %+v", trial)
	}
	if trial.Readout != "TBD" {
		t.Errorf("stub readout = %q, want TBD", trial.Readout)
	}
	if trial.Status != "ACTIVE_NOT_RECRUITING" {
		t.Errorf("stub status = %q", trial.Status)
	}
}

func TestApplyStatus_EmptyFieldsLeaveValues(t *testing.T) {
	item := &dataset.Item{
		LatestUpdate: "previous",
		Trials:       []dataset.Trial{{Name: "T", Status: "Recruiting", ReadoutDate: "2026-01-01"}},
	}
	ApplyStatus(item, Watch{TrialName: "T"}, &Status{})
	if item.Trials[0].Status != "Recruiting" || item.Trials[0].ReadoutDate != "2026-01-01" {
		t.Error("empty status fields must not clobber existing values")
	}
	if item.LatestUpdate != "previous" {
		t.Error("empty last-update must not clobber latest_update")
	}
}
