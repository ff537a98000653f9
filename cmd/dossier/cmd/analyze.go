package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dossierlab/dossier/internal/analyze"
	"github.com/dossierlab/dossier/pkg/errors"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score document scans with the Gemini API",
	Long: `Analyze sends each scanned document image under
data/images/documents to a Gemini vision model and appends the scored
results as JSONL into the documents folder, where the next process run
picks them up. Progress is checkpointed, so an interrupted run resumes
where it left off.

Requires GEMINI_API_KEY in the environment or a .env file.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		apiKey := viper.GetString("GEMINI_API_KEY")
		if apiKey == "" {
			return errors.ErrAPIKeyRequired
		}

		analyzer, err := analyze.New(cmd.Context(), cfg, apiKey)
		if err != nil {
			return err
		}
		return analyzer.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
