package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints statistics about the items and trials in the dataset.",
	Long:  "Prints statistics about the items and trials in the dataset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}

		type counts struct{ items, trials int }
		byType := make(map[string]*counts)
		for _, it := range d.Items {
			c := byType[it.Type]
			if c == nil {
				c = &counts{}
				byType[it.Type] = c
			}
			c.items++
			c.trials += len(it.Trials)
		}

		if len(byType) == 0 {
			fmt.Println("No items in the dataset to generate stats.")
			return nil
		}

		types := make([]string, 0, len(byType))
		for t := range byType {
			types = append(types, t)
		}
		sort.Strings(types)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "TYPE\tITEMS\tTRIALS\t")

		var totalItems, totalTrials int
		for _, t := range types {
			c := byType[t]
			fmt.Fprintf(w, "%s\t%d\t%d\t\n", t, c.items, c.trials)
			totalItems += c.items
			totalTrials += c.trials
		}

		fmt.Fprintln(w, " \t \t \t")
		fmt.Fprintf(w, "TOTAL\t%d\t%d\t\n", totalItems, totalTrials)

		w.Flush()

		fmt.Printf("\nDataset as of %s\n", d.AsOf)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
