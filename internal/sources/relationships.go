package sources

import (
	"os"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/graph"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/types"
)

// LoadRelationships loads the relationships CSV into typed edges.
// Returns nil when the file does not exist; a present-but-empty file
// yields an empty non-nil slice. The distinction matters downstream:
// any relationship data, even empty, disables the flight co-occurrence
// fallback.
func LoadRelationships(cfg config.Config) []types.Relationship {
	path := cfg.RelationshipsFile()
	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("relationships.csv not found")
		return nil
	}

	rows, err := readCSV(path)
	if err != nil {
		logging.Err(err).Str("path", path).Msg("Error reading relationships.csv")
		return []types.Relationship{}
	}
	logging.Info().Int("records", len(rows)).Msg("Processing relationships")

	links, nodeSet := graph.Extract(rows)
	logging.Info().Int("relationships", len(links)).Int("nodes", len(nodeSet)).Msg("Processed relationships")
	return links
}
