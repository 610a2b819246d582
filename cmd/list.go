package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/pkg/dataset"
	"github.com/afwatch/afwatch/pkg/query"
)

// listCmd prints the items passing the active filters and search, one
// per line, with printf-style output flags.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List therapies matching filters and search text",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}

		categories, _ := cmd.Flags().GetStringSlice("category")
		stages, _ := cmd.Flags().GetStringSlice("stage")
		types, _ := cmd.Flags().GetStringSlice("type")
		search, _ := cmd.Flags().GetString("search")
		outputFlags, _ := cmd.Flags().GetString("output")
		delimiter, _ := cmd.Flags().GetString("delimiter")

		items := query.VisibleItems(d, query.NewFilters(categories, stages, types), search)
		printItems(items, outputFlags, delimiter)
		return nil
	},
}

// printItems renders items according to outputFlags: n=name, c=company,
// s=stage, t=type, u=latest update.
func printItems(items []dataset.Item, outputFlags string, delimiter string) {
	lines := ""
	for _, it := range items {
		var line string
		for _, f := range outputFlags {
			switch f {
			case 'n':
				line += it.Name + delimiter
			case 'c':
				line += it.Company + delimiter
			case 's':
				line += it.Stage + delimiter
			case 't':
				line += it.Type + delimiter
			case 'u':
				line += dataset.FormatDate(it.LatestUpdate) + delimiter
			default:
				log.Fatal("Invalid print flag")
			}
		}
		line = strings.TrimSuffix(line, delimiter)
		if len(line) > 0 {
			lines += line + "\n"
		}
	}

	lines = strings.TrimSuffix(lines, "\n")

	if len(lines) > 0 {
		fmt.Println(lines)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringSliceP("category", "c", nil, "Filter by canonical category (repeatable)")
	listCmd.Flags().StringSliceP("stage", "s", nil, "Filter by canonical stage (repeatable)")
	listCmd.Flags().StringSliceP("type", "t", nil, "Filter by type, e.g. Device or Drug (repeatable)")
	listCmd.Flags().StringP("search", "q", "", "Free-text search across all item and trial fields")
	listCmd.Flags().StringP("output", "o", "n", "Output flags: n=name, c=company, s=stage, t=type, u=update")
	listCmd.Flags().StringP("delimiter", "d", " ", "Field delimiter")
}
