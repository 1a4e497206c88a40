package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/telemetry"
)

const app = "screener"

var (
	v = config.New()

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "screener scores résumés against a job description and predicts suitability",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.LoadDotEnv()
			return telemetry.Configure(v.GetString("LOG_LEVEL"))
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			telemetry.Sync()
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("local-store-dir", "", "root directory for uploads and local model artifacts")
	rootCmd.PersistentFlags().String("model-key", "", "object key of the suitability model artifact")

	bindFlag(v, rootCmd, "LOG_LEVEL", "log-level")
	bindFlag(v, rootCmd, "LOCAL_STORE_DIR", "local-store-dir")
	bindFlag(v, rootCmd, "MODEL_KEY", "model-key")
}

// bindFlag maps a flag onto a config key. An unset flag leaves the
// environment value or default in place.
func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	f := cmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = cmd.Flags().Lookup(flag)
	}
	if f == nil {
		panic("unknown flag " + flag)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func loadConfig() config.Config {
	return config.FromViper(v)
}
