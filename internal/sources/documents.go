package sources

import (
	"path/filepath"
	"sort"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/record"
	"github.com/dossierlab/dossier/pkg/types"
)

// LoadDocuments loads document metadata from the documents folder:
// JSONL files first (the primary ranked dataset), then any CSV files
// as fallback, all concatenated. Returns nil when nothing usable is
// found. Records lacking both filename and headline are dropped.
// Output is sorted descending by importance score.
func LoadDocuments(cfg config.Config) []types.Document {
	folder := cfg.DocumentsDir()

	var rows []record.Record
	jsonlFiles, _ := filepath.Glob(filepath.Join(folder, "*.jsonl"))
	sort.Strings(jsonlFiles)
	for _, path := range jsonlFiles {
		fileRows, err := readJSONL(path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Could not read JSONL file")
		}
		rows = append(rows, fileRows...)
	}
	if len(jsonlFiles) > 0 {
		logging.Info().Int("files", len(jsonlFiles)).Int("records", len(rows)).Msg("Loaded JSONL document records")
	}

	csvFiles, _ := filepath.Glob(filepath.Join(folder, "*.csv"))
	sort.Strings(csvFiles)
	for _, path := range csvFiles {
		fileRows, err := readCSV(path)
		if err != nil {
			logging.Err(err).Str("path", path).Msg("Error reading documents CSV")
			continue
		}
		logging.Info().Str("file", filepath.Base(path)).Int("records", len(fileRows)).Msg("Loaded documents CSV")
		rows = append(rows, fileRows...)
	}

	if len(rows) == 0 {
		logging.Warn().Str("folder", folder).Msg("No document files found")
		return nil
	}

	docs := []types.Document{}
	for _, row := range rows {
		filename := row.Str("filename", "Filename")
		headline := row.Str("headline", "title")
		if filename == "" && headline == "" {
			continue
		}
		docs = append(docs, types.Document{
			Filename:          filename,
			Headline:          headline,
			ImportanceScore:   row.Int("importance_score"),
			Reason:            row.Str("reason"),
			Tags:              row.List("tags"),
			PowerMentions:     row.List("power_mentions"),
			AgencyInvolvement: row.List("agency_involvement"),
			LeadTypes:         row.List("lead_types"),
			KeyInsights:       row.List("key_insights"),
		})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ImportanceScore > docs[j].ImportanceScore
	})
	logging.Info().Int("documents", len(docs)).Msg("Processed documents")
	return docs
}
