package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/pkg/feeds"
)

var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Show the \"what's new\" feed of recent therapy updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}
		itemType, _ := cmd.Flags().GetString("type")
		entries := feeds.BuildUpdateEntries(feeds.FilterByType(d.Items, itemType))
		if len(entries) == 0 {
			fmt.Println("No recent updates.")
			return nil
		}
		for _, e := range entries {
			marker := "  "
			if e.Press {
				marker = "PR"
			}
			fmt.Printf("%s  %-10s  %s — %s\n", marker, e.Type, e.Name, e.Update)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updatesCmd)
	updatesCmd.Flags().StringP("type", "t", "", "Only show one item type (Device or Drug)")
}
