package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/suitability"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the suitability model and persist the artifact",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		store, err := bootstrap.BuildObjectStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		model, err := suitability.NewStore(store, cfg.ModelKey).TrainAndPersist(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "model written to %s (%d stumps)\n", cfg.ModelKey, len(model.Stumps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}
