package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/afwatch/afwatch/internal/server"
)

// webCmd represents the web command
var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the afwatch web dashboard",
	Long:  `Start a web server to browse the therapy catalog, feeds and weekly updates.`,
	Run: func(cmd *cobra.Command, args []string) {
		d, err := loadDataset()
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}

		// Auth
		user, _ := cmd.Flags().GetString("username")
		pass, _ := cmd.Flags().GetString("password")
		if user == "" && pass == "" {
			user = viper.GetString("web.username")
			pass = viper.GetString("web.password")
		}
		addr, _ := cmd.Flags().GetString("bind")

		srv := server.New(d, user, pass)
		if err := srv.Start(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(webCmd)

	webCmd.Flags().StringP("bind", "b", ":9999", "Address to bind the server to")
	webCmd.Flags().StringP("username", "u", "", "Username for basic auth (optional)")
	webCmd.Flags().StringP("password", "p", "", "Password for basic auth (optional)")
}
