package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/afwatch/afwatch/internal/utils"
	"github.com/afwatch/afwatch/pkg/registry"
	"github.com/afwatch/afwatch/pkg/storage"
)

// refreshCmd pulls the latest status for every watched trial from
// ClinicalTrials.gov, patches the dataset, and records what changed.
// The readout label and readout_date can end up disagreeing after a
// refresh; that is up to the dataset author to resolve, not this tool.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh trial statuses from ClinicalTrials.gov",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}

		watchlistPath, _ := cmd.Flags().GetString("watchlist")
		if watchlistPath == "" {
			watchlistPath = viper.GetString("data.watchlist")
		}
		wl, err := registry.LoadWatchlist(watchlistPath)
		if err != nil {
			return err
		}

		dbPath, _ := cmd.Flags().GetString("dbpath")
		if dbPath == "" {
			dbPath = viper.GetString("data.dbpath")
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		client := registry.NewClient()
		byID := d.ItemsByID()
		ctx := context.Background()

		var refreshed, changed int
		for _, watch := range wl.ClinicalTrials {
			if watch.NCTID == "" {
				continue
			}
			item, ok := byID[watch.ItemID]
			if !ok {
				utils.Log.Warnf("Watchlist entry %s references unknown item %q", watch.NCTID, watch.ItemID)
				continue
			}
			status, err := client.StudyStatus(ctx, watch.NCTID)
			if err != nil {
				utils.Log.Warnf("Failed to fetch %s: %v", watch.NCTID, err)
				continue
			}
			registry.ApplyStatus(item, watch, status)
			refreshed++

			changes, err := db.RecordStatus(ctx, watch, status)
			if err != nil {
				return err
			}
			for _, c := range changes {
				utils.Log.Infof("%s %s %s: %q -> %q", c.ChangeType, c.NCTID, c.Field, c.OldValue, c.NewValue)
			}
			changed += len(changes)
		}

		d.AsOf = time.Now().UTC().Format("2006-01-02")
		if err := d.Save(dataPath()); err != nil {
			return err
		}
		utils.Log.Infof("Refreshed %d trials, %d changes", refreshed, changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
	refreshCmd.Flags().String("watchlist", "", "Path to the watchlist JSON (default: data/watchlist.json)")
	refreshCmd.Flags().String("dbpath", "", "Path to SQLite DB file (default: afwatch.sqlite in CWD)")
}
