package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/pkg/news"
)

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show this week's harvested updates by section",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}
		only, _ := cmd.Flags().GetString("section")
		for _, section := range news.SectionOrder {
			if only != "" && only != section {
				continue
			}
			entries := d.WeeklyUpdates[section]
			if len(entries) == 0 {
				continue
			}
			fmt.Printf("%s:\n", strings.ReplaceAll(section, "_", " "))
			for _, e := range entries {
				fmt.Printf("  %-12s  %s  (%s)\n", e.Date, e.Title, e.Source)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(weeklyCmd)
	weeklyCmd.Flags().StringP("section", "s", "", "Only one section, e.g. safety_signals")
}
