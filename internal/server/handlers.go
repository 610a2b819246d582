package server

import (
	"encoding/json"
	"net/http"

	"github.com/afwatch/afwatch/pkg/facets"
	"github.com/afwatch/afwatch/pkg/feeds"
	"github.com/afwatch/afwatch/pkg/query"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"as_of": s.Data.AsOf})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, facets.Build(s.Data.Items))
}

// handleItems answers the filtered/searched item listing. Repeated
// category/stage/type params form the filter sets; absent params mean no
// constraint on that facet.
func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := query.NewFilters(q["category"], q["stage"], q["type"])
	writeJSON(w, query.VisibleItems(s.Data, f, q.Get("search")))
}

func (s *Server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	items := feeds.FilterByType(s.Data.Items, r.URL.Query().Get("type"))
	writeJSON(w, feeds.BuildUpdateEntries(items))
}

func (s *Server) handleReadouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, feeds.UpcomingReadouts(s.Data.Items))
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Data.WeeklyUpdates)
}
