package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/afwatch/afwatch/internal/utils"
	"github.com/afwatch/afwatch/pkg/dataset"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `          __               _       _
	  __ _ / _|_      ____ _| |_ ___| |__
	 / _` + "`" + ` | |_\ \ /\ / / _` + "`" + ` | __/ __| '_ \
	| (_| |  _|\ V  V / (_| | || (__| | | |
	 \__,_|_|   \_/\_/ \__,_|\__\___|_| |_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "afwatch",
	Short: "A pipeline tracker for atrial-fibrillation therapies.",
	Long: LOGO + `afwatch tracks the AFib therapy pipeline: drugs and devices, their trials,
upcoming readouts and recent updates, right from your command line.

The dataset lives in a JSON file (data/afib.json by default); the refresh
and news commands keep it current from ClinicalTrials.gov and news feeds.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.afwatch.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("data", "D", "", "Path to the dataset JSON file (default: data/afib.json)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".afwatch")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.afwatch.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Set default empty values for all keys
	viper.SetDefault("data.path", "data/afib.json")
	viper.SetDefault("data.watchlist", "data/watchlist.json")
	viper.SetDefault("data.news_sources", "data/news_sources.json")
	viper.SetDefault("data.dbpath", "afwatch.sqlite")
	viper.SetDefault("web.username", "")
	viper.SetDefault("web.password", "")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

// dataPath resolves the dataset path from the flag or config default.
func dataPath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("data"); p != "" {
		return p
	}
	return viper.GetString("data.path")
}

// loadDataset loads the dataset or fails the command: without data there
// is nothing to derive.
func loadDataset() (*dataset.Dataset, error) {
	d, err := dataset.Load(dataPath())
	if err != nil {
		return nil, fmt.Errorf("data unavailable: %w", err)
	}
	return d, nil
}
