package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/pkg/dataset"
	"github.com/afwatch/afwatch/pkg/feeds"
)

var readoutsCmd = &cobra.Command{
	Use:   "readouts",
	Short: "Show upcoming trial readouts, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}
		entries := feeds.UpcomingReadouts(d.Items)
		if len(entries) == 0 {
			fmt.Println("No upcoming readouts.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%-14s  %s (%s): %s\n", dataset.FormatDate(e.ReadoutDate), e.Trial, e.Item, e.Readout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readoutsCmd)
}
