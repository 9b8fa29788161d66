package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sawshep/taggit"
	"github.com/sawshep/taggit/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "taggit",
	Short: "A command-line file tagging/archiving utility",
	Long:  "Track files by content hash, remember every name they were added under and tag them.",

	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Config{
			Verbosity: viper.GetInt("verbose"),
			File:      viper.GetString("log_file"),
		})
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/taggit/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file")
	rootCmd.PersistentFlags().CountP("verbose", "v", "verbose level")

	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TAGGIT")
	viper.AutomaticEnv()
	viper.SetDefault("concurrency", runtime.NumCPU())
	viper.SetDefault("copy", false)
	viper.SetDefault("compression_level", 2)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "taggit")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "taggit")
	}
	return ".taggit"
}

// openArchive opens the archive at dir, failing early with a readable message
// when dir has not been initialized.
func openArchive(dir string) (*taggit.Archive, error) {
	if !taggit.IsArchive(dir) {
		return nil, fmt.Errorf("%w: no archive in %s (run taggit init)", taggit.ErrNotArchive, dir)
	}
	return taggit.Open(dir, taggit.WithLogger(logger.GetLogger("archive")))
}
