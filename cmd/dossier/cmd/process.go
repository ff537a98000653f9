package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dossierlab/dossier/internal/pipeline"
	"github.com/dossierlab/dossier/pkg/logging"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the dashboard JSON files from the source datasets",
	Long: `Process loads every source dataset under the data directory,
reconciles persons across sources, derives connection counts, builds
the network graph, and writes the five dashboard JSON files. Missing
sources degrade to empty outputs; process never fails on absent data.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Info().
			Str("data_dir", cfg.DataDir).
			Str("output_dir", cfg.OutputDir).
			Msg("Starting data processing")

		if err := pipeline.New(cfg).Run(); err != nil {
			return err
		}
		logging.Info().Msg("Data processing complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}
