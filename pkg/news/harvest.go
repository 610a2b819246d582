package news

import (
	"context"
	"time"

	"github.com/afwatch/afwatch/pkg/dataset"
	"github.com/sirupsen/logrus"
)

// Harvest polls every source and buckets fresh headlines by section.
// Items older than the window (or undated) are skipped. A failing source
// is logged and skipped; one dead feed should not sink the whole run.
func Harvest(ctx context.Context, f *Fetcher, sources []Source, window time.Duration, log *logrus.Logger) map[string][]dataset.WeeklyEntry {
	cutoff := time.Now().UTC().Add(-window)
	bySection := make(map[string][]dataset.WeeklyEntry)

	for _, src := range sources {
		items, err := f.Fetch(ctx, src)
		if err != nil {
			log.Warnf("Skipping %s: %v", src.Name, err)
			continue
		}
		kept := 0
		for _, it := range items {
			if it.Published.IsZero() || it.Published.Before(cutoff) {
				continue
			}
			source := SourceLabel(it.Link)
			if source == "" {
				source = src.Name
			}
			bySection[src.Category] = append(bySection[src.Category], dataset.WeeklyEntry{
				Title:  it.Title,
				Date:   it.Published.Format("2006-01-02"),
				Source: source,
			})
			kept++
		}
		log.Debugf("%s: %d fresh of %d", src.Name, kept, len(items))
	}
	return bySection
}
