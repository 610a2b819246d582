package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/afwatch/afwatch/pkg/dataset"
	"github.com/afwatch/afwatch/pkg/feeds"
)

func testServer() *Server {
	return New(&dataset.Dataset{
		AsOf: "2026-08-20",
		Items: []dataset.Item{
			{
				ID: "farapulse", Name: "FaraWave", Type: "Device",
				Category: "PFA catheter", Stage: "Approved", Company: "Boston Sci",
				LatestUpdate: "Expanded label 2026",
			},
			{
				ID: "abelacimab", Name: "Abelacimab", Type: "Drug",
				Category: "Anticoagulant (FXI)", Stage: "Phase III", Company: "Anthos",
				LatestUpdate: "AZALEA data expected 2026", Press2026: true,
				Trials: []dataset.Trial{
					{Name: "LILAC-TIMI 76", Readout: "Q4 2026", ReadoutDate: "2026-11-01"},
				},
			},
		},
		WeeklyUpdates: map[string][]dataset.WeeklyEntry{
			"safety_signals": {{Title: "Signal", Date: "2026-08-18", Source: "fda.gov"}},
		},
	}, "", "")
}

func get(t *testing.T, s *Server, path string, handler http.HandlerFunc, into any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
}

func TestHandleFacets(t *testing.T) {
	s := testServer()
	var got struct {
		Category []string `json:"category"`
		Stage    []string `json:"stage"`
		Type     []string `json:"type"`
	}
	get(t, s, "/api/facets", s.handleFacets, &got)
	if len(got.Category) != 2 || got.Category[0] != "PFA Ablation" {
		t.Errorf("category facet = %v", got.Category)
	}
	if len(got.Type) != 2 {
		t.Errorf("type facet = %v", got.Type)
	}
}

func TestHandleItems_Filtered(t *testing.T) {
	s := testServer()
	var got []dataset.Item

	get(t, s, "/api/items?type=Drug", s.handleItems, &got)
	if len(got) != 1 || got[0].ID != "abelacimab" {
		t.Fatalf("items = %+v", got)
	}

	get(t, s, "/api/items?search=farawave", s.handleItems, &got)
	if len(got) != 1 || got[0].ID != "farapulse" {
		t.Fatalf("items = %+v", got)
	}

	get(t, s, "/api/items", s.handleItems, &got)
	if len(got) != 2 {
		t.Fatalf("unfiltered should return everything, got %d", len(got))
	}
}

func TestHandleUpdatesAndReadouts(t *testing.T) {
	s := testServer()

	var updates []feeds.UpdateEntry
	get(t, s, "/api/updates?type=Drug", s.handleUpdates, &updates)
	if len(updates) != 1 || !updates[0].Press {
		t.Fatalf("updates = %+v", updates)
	}

	var readouts []feeds.ReadoutEntry
	get(t, s, "/api/readouts", s.handleReadouts, &readouts)
	if len(readouts) != 1 || readouts[0].Trial != "LILAC-TIMI 76" {
		t.Fatalf("readouts = %+v", readouts)
	}
}

func TestBasicAuth(t *testing.T) {
	s := testServer()
	s.Username, s.Password = "u", "p"

	handler := s.basicAuth(s.handleMeta)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.SetBasicAuth("u", "p")
	rec = httptest.NewRecorder()
	handler(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with credentials, got %d", rec.Code)
	}
}
