package config_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/pkg/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 300, cfg.Graph.MaxPersons)
	assert.Equal(t, 1000, cfg.Graph.MaxLinks)
	assert.Equal(t, 500, cfg.Graph.MaxCoOccurrence)
	assert.Equal(t, 12, cfg.DataSources.DOJDatasets)
}

func TestFromViperNil(t *testing.T) {
	cfg, err := config.FromViper(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "/srv/datasets")
	v.Set("graph.max_persons", 50)

	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "/srv/datasets", cfg.DataDir)
	assert.Equal(t, 50, cfg.Graph.MaxPersons)
	// Untouched caps keep their defaults.
	assert.Equal(t, 1000, cfg.Graph.MaxLinks)
	assert.Equal(t, filepath.Join("dashboard", "data"), cfg.OutputDir)
}

func TestPathLayout(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = "d"
	cfg.OutputDir = "o"

	assert.Equal(t, filepath.Join("d", "persons_of_interest", "entities.csv"), cfg.EntitiesFile())
	assert.Equal(t, filepath.Join("d", "flight_logs", "flights.csv"), cfg.FlightsFile())
	assert.Equal(t, filepath.Join("d", "relationships", "relationships.csv"), cfg.RelationshipsFile())
	assert.Equal(t, filepath.Join("d", "emails", "emails.csv"), cfg.EmailsFile())
	assert.Equal(t, filepath.Join("d", "processed", "image_index.json"), cfg.ImageIndexFile())
	assert.Equal(t, filepath.Join("d", "images", "documents"), cfg.DocScansDir())
	assert.Equal(t, filepath.Join("o", "persons_of_interest.json"), cfg.PersonsOut())
	assert.Equal(t, filepath.Join("o", "network.json"), cfg.NetworkOut())
	assert.Equal(t, filepath.Join("o", "summary.json"), cfg.SummaryOut())
}
