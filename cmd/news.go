package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/afwatch/afwatch/internal/utils"
	"github.com/afwatch/afwatch/pkg/news"
)

// newsCmd harvests the curated feeds plus generated Google News
// watchlist queries into the dataset's weekly-updates sections.
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Harvest news feeds into the weekly updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}

		sourcesPath, _ := cmd.Flags().GetString("sources")
		if sourcesPath == "" {
			sourcesPath = viper.GetString("data.news_sources")
		}
		sources, err := news.LoadSources(sourcesPath)
		if err != nil {
			return err
		}
		sources = append(sources, news.GoogleNewsSources(news.WatchTerms(d))...)

		windowDays, _ := cmd.Flags().GetInt("window")
		window := time.Duration(windowDays) * 24 * time.Hour

		fetcher := news.NewFetcher()
		bySection := news.Harvest(context.Background(), fetcher, sources, window, utils.Log)
		news.ApplyWeekly(d, bySection)

		if err := d.Save(dataPath()); err != nil {
			return err
		}
		total := 0
		for _, entries := range d.WeeklyUpdates {
			total += len(entries)
		}
		utils.Log.Infof("Harvested %d weekly entries from %d sources", total, len(sources))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newsCmd)
	newsCmd.Flags().String("sources", "", "Path to the news sources JSON (default: data/news_sources.json)")
	newsCmd.Flags().Int("window", 7, "How many days back to keep headlines")
}
