package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dossierlab/dossier/pkg/images"
	"github.com/dossierlab/dossier/pkg/logging"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the image index from the sorted image folders",
	Long: `Index walks the image folders under data/images, groups files by
canonicalized person name, and writes the lookup index that process
uses to attach images to persons. Run it after adding or re-sorting
images.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		index, err := images.Build(filepath.Dir(cfg.DataDir), cfg.ImagesDir())
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.ProcessedDir(), 0o755); err != nil {
			return err
		}
		if err := index.Save(cfg.ImageIndexFile()); err != nil {
			return err
		}

		for category, count := range index.CategoryCounts() {
			logging.Info().Str("category", category).Int("images", count).Msg("Indexed")
		}
		victims := 0
		for _, key := range index.Keys() {
			if images.IsVictim(key, "", "") {
				victims++
			}
		}
		logging.Info().
			Int("victims", victims).
			Int("entries", index.Len()).
			Int("images", index.TotalImages()).
			Str("path", cfg.ImageIndexFile()).
			Msg("Image index written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
