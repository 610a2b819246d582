package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/pkg/facets"
)

var facetsCmd = &cobra.Command{
	Use:   "facets",
	Short: "Show the filter values derived from the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDataset()
		if err != nil {
			return err
		}
		f := facets.Build(d.Items)
		fmt.Printf("category: %s\n", strings.Join(f.Category, ", "))
		fmt.Printf("stage:    %s\n", strings.Join(f.Stage, ", "))
		fmt.Printf("type:     %s\n", strings.Join(f.Type, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(facetsCmd)
}
