package main

import (
	"fmt"
	"os"

	"github.com/timok/sample-librarian/internal/report"
	"github.com/timok/sample-librarian/internal/store"
	"github.com/timok/sample-librarian/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "slib",
		Short: "Sample Librarian - index and search your sample library",
		Long: `slib (Sample Librarian) indexes folders of samples, project files, MIDI
clips and presets into a local database, enriches the records with audio
metadata, and lets you search the library by text, tags, BPM, key and more.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./slib.yaml)")
	rootCmd.PersistentFlags().String("db", "library.db", "library database file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("slib")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("SLIB")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// applyLogLevel maps the persistent flags onto the leveled logger
func applyLogLevel() {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))
}

// openStore opens the library database and seeds the preset tag vocabulary
func openStore() (*store.Store, error) {
	dbPath := viper.GetString("db")
	util.DebugLog("Opening database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.SeedTags(store.DefaultSeedTags); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed tags: %w", err)
	}

	return db, nil
}

// newEventLogger creates the JSONL audit logger under artifacts/, falling
// back to a no-op logger when the directory cannot be created
func newEventLogger() *report.EventLogger {
	logLevel := report.LevelInfo
	if viper.GetBool("quiet") {
		logLevel = report.LevelWarning
	} else if viper.GetBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger("artifacts", logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		return report.NullLogger()
	}

	if logger.Path() != "" {
		util.DebugLog("Event log: %s", logger.Path())
	}

	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
