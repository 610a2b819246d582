// Package news harvests headlines from RSS/Atom feeds and curated press
// pages into the dataset's weekly-updates sections.
package news

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/afwatch/afwatch/pkg/dataset"
)

// SectionOrder lists the weekly-updates sections. The order matters for
// cross-section dedupe: a story landing in an earlier section is removed
// from later ones.
var SectionOrder = []string{
	"safety_signals",
	"label_expansions",
	"guideline_updates",
	"conference_abstracts",
	"press_pipeline",
}

// Source is one feed to poll.
type Source struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

type sourcesFile struct {
	Sources []Source `json:"sources"`
}

// LoadSources reads the curated feed list.
func LoadSources(path string) ([]Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening news sources: %w", err)
	}
	var f sourcesFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing news sources: %w", err)
	}
	return f.Sources, nil
}

// Google News chokes on very long OR queries, so watchlist terms are
// chunked across several generated sources.
const googleNewsChunk = 12

const googleNewsBase = "https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en"

// WatchTerms collects the search terms (item names and companies) from
// the dataset, cleaned and deduplicated in order.
func WatchTerms(d *dataset.Dataset) []string {
	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		term = strings.NewReplacer("(", "", ")", "", `"`, "").Replace(term)
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		if _, ok := seen[term]; ok {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}
	for _, it := range d.Items {
		add(it.Name)
		add(it.Company)
	}
	return terms
}

// GoogleNewsSources generates press_pipeline feed sources querying Google
// News for the watchlist terms, constrained to AFib coverage from the
// last week.
func GoogleNewsSources(terms []string) []Source {
	var sources []Source
	for idx := 0; idx < len(terms); idx += googleNewsChunk {
		end := idx + googleNewsChunk
		if end > len(terms) {
			end = len(terms)
		}
		quoted := make([]string, 0, end-idx)
		for _, term := range terms[idx:end] {
			quoted = append(quoted, `"`+term+`"`)
		}
		query := fmt.Sprintf("(%s) (atrial fibrillation OR AFib) when:7d", strings.Join(quoted, " OR "))
		sources = append(sources, Source{
			Name:     fmt.Sprintf("Google News: AFib watchlist %d", idx/googleNewsChunk+1),
			Category: "press_pipeline",
			URL:      fmt.Sprintf(googleNewsBase, url.QueryEscape(query)),
		})
	}
	return sources
}
