package sources

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/images"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/types"
)

// LoadEntities loads the primary entities CSV. Returns nil when the
// file does not exist. Records without a name are dropped. Each entity
// gets its images attached via the index's exact-then-fuzzy lookup.
// Output is sorted descending by (flights, documents).
func LoadEntities(cfg config.Config, index *images.Index) []types.Person {
	path := cfg.EntitiesFile()
	if _, err := os.Stat(path); err != nil {
		logging.Warn().Str("path", path).Msg("entities.csv not found")
		return nil
	}

	rows, err := readCSV(path)
	if err != nil {
		logging.Err(err).Str("path", path).Msg("Error reading entities.csv")
		return []types.Person{}
	}
	logging.Info().Int("records", len(rows)).Msg("Processing entities")

	entities := []types.Person{}
	for _, row := range rows {
		name := row.Str("name")
		if name == "" {
			continue
		}
		entities = append(entities, types.Person{
			Name:            name,
			EntityType:      row.Str("entity_type"),
			RoleDescription: row.Str("role_description"),
			Documents:       row.Int("document_count"),
			Flights:         row.Int("flight_count"),
			Emails:          row.Int("email_count"),
			Slug:            row.Str("slug"),
			Images:          index.Lookup(name),
		})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Flights != entities[j].Flights {
			return entities[i].Flights > entities[j].Flights
		}
		return entities[i].Documents > entities[j].Documents
	})
	logging.Info().Int("entities", len(entities)).Msg("Processed entities")
	return entities
}

// LoadSupplementaryPersons loads every persons CSV other than
// entities.csv (the Kaggle-derived supplement, in both of its field
// naming conventions). Returns nil when no such file exists. Images
// use the exact index match only. Output is sorted descending by
// (connections, flights, documents).
func LoadSupplementaryPersons(cfg config.Config, index *images.Index) []types.Person {
	paths, _ := filepath.Glob(filepath.Join(cfg.PersonsDir(), "*.csv"))
	var files []string
	for _, p := range paths {
		if filepath.Base(p) != "entities.csv" {
			files = append(files, p)
		}
	}
	if len(files) == 0 {
		return nil
	}
	sort.Strings(files)

	persons := []types.Person{}
	for _, path := range files {
		rows, err := readCSV(path)
		if err != nil {
			logging.Err(err).Str("path", path).Msg("Error reading supplementary persons CSV")
			continue
		}
		logging.Info().Str("file", filepath.Base(path)).Int("records", len(rows)).Msg("Processing supplementary persons")

		for _, row := range rows {
			name := row.Str("Name", "Persons of Interest")
			if name == "" {
				continue
			}

			imgs := index.Get(images.Canonical(name))
			if imgs == nil {
				imgs = []types.ImageRef{}
			}

			nationality := row.Str("Nationality")
			if nationality == "" {
				nationality = "Unknown"
			}
			category := row.Str("Category")
			if category == "" {
				category = "Unknown"
			}

			persons = append(persons, types.Person{
				Name:        name,
				Bio:         row.Str("Bio"),
				Flights:     row.Int("Flights", "Number of flights"),
				Documents:   row.Int("Documents", "Number of documents"),
				Connections: row.Int("Connections"),
				InBlackBook: row.Bool("In Black Book"),
				Nationality: nationality,
				Category:    category,
				Images:      imgs,
			})
		}
	}

	sort.SliceStable(persons, func(i, j int) bool {
		a, b := persons[i], persons[j]
		if a.Connections != b.Connections {
			return a.Connections > b.Connections
		}
		if a.Flights != b.Flights {
			return a.Flights > b.Flights
		}
		return a.Documents > b.Documents
	})
	logging.Info().Int("persons", len(persons)).Msg("Processed supplementary persons")
	return persons
}
