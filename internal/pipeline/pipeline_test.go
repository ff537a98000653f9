package pipeline_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/internal/pipeline"
	"github.com/dossierlab/dossier/pkg/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.OutputDir = t.TempDir()
	return cfg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunWithNoSourcesWritesEmptyOutputs(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, pipeline.New(cfg).Run())

	// List outputs are empty arrays, never null and never missing.
	for _, path := range []string{cfg.PersonsOut(), cfg.FlightsOut(), cfg.DocumentsOut()} {
		data, err := os.ReadFile(path)
		require.NoError(t, err, path)
		assert.Equal(t, "[]\n", string(data), path)
	}

	data, err := os.ReadFile(cfg.NetworkOut())
	require.NoError(t, err)
	var network struct {
		Nodes []any `json:"nodes"`
		Links []any `json:"links"`
	}
	require.NoError(t, json.Unmarshal(data, &network))
	assert.NotNil(t, network.Nodes)
	assert.Empty(t, network.Nodes)
	assert.Empty(t, network.Links)

	data, err = os.ReadFile(cfg.SummaryOut())
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.EqualValues(t, 0, summary["total_persons"])
}

func seedSources(t *testing.T, cfg config.Config) {
	writeFile(t, cfg.EntitiesFile(),
		"name,entity_type,role_description,document_count,flight_count,email_count,slug\n"+
			"Jane Doe,person,financier,12,5,2,jane-doe\n"+
			"Bob Brown,person,pilot,1,30,0,bob-brown\n")
	writeFile(t, filepath.Join(cfg.PersonsDir(), "suspects.csv"),
		"Name,Flights,Documents,Connections,In Black Book,Nationality,Category\n"+
			"Jane Doe,3,20,6,Yes,American,Finance\n"+
			"Solo Extra,1,0,2,No,,\n")
	writeFile(t, cfg.FlightsFile(),
		"flight_date,departure_airport,departure_airport_code,arrival_airport,arrival_airport_code,passenger_names\n"+
			"2002-07-14,Teterboro,TEB,Palm Beach,PBI,\"Jane Doe, Bob Brown\"\n")
	writeFile(t, cfg.RelationshipsFile(),
		"entity_a,entity_b,relationship_type,strength\n"+
			"Jane Doe,Bob Brown,associate,3\n"+
			"Jane Doe,Offshore Ltd,business,1\n")
	writeFile(t, filepath.Join(cfg.DocumentsDir(), "ranked.jsonl"),
		`{"filename":"doc1.pdf","headline":"Manifest","importance_score":7,"tags":["travel"]}`+"\n")
	writeFile(t, cfg.EmailsFile(),
		"date,from,to,subject,slug\n2004-06-07,g@example.com,j@example.com,Logistics,logistics\n")
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	seedSources(t, cfg)
	require.NoError(t, pipeline.New(cfg).Run())

	data, err := os.ReadFile(cfg.PersonsOut())
	require.NoError(t, err)
	var persons []map[string]any
	require.NoError(t, json.Unmarshal(data, &persons))
	require.Len(t, persons, 3)

	// Bob has the most flights so he leads the merged list.
	assert.Equal(t, "Bob Brown", persons[0]["name"])
	jane := persons[1]
	assert.Equal(t, "Jane Doe", jane["name"])
	assert.EqualValues(t, 5, jane["flights"], "max of primary and supplementary")
	assert.EqualValues(t, 20, jane["documents"])
	assert.EqualValues(t, 6, jane["connections"], "max of derived incidence and supplementary")
	assert.Equal(t, true, jane["in_black_book"])
	assert.Equal(t, "Finance", jane["category"])

	data, err = os.ReadFile(cfg.NetworkOut())
	require.NoError(t, err)
	var network struct {
		Nodes []map[string]any `json:"nodes"`
		Links []map[string]any `json:"links"`
	}
	require.NoError(t, json.Unmarshal(data, &network))
	// 3 merged persons plus the stub endpoint of the second edge.
	require.Len(t, network.Nodes, 4)
	assert.Len(t, network.Links, 2)

	stubs := map[string]string{}
	for _, n := range network.Nodes {
		stubs[n["id"].(string)], _ = n["group"].(string)
	}
	assert.Equal(t, "Relationship", stubs["Offshore Ltd"])

	data, err = os.ReadFile(cfg.SummaryOut())
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.EqualValues(t, 3, summary["total_persons"])
	assert.EqualValues(t, 1, summary["total_flights"])
	assert.EqualValues(t, 1, summary["total_documents"])
	assert.EqualValues(t, 1, summary["total_emails"])
}

func TestRunIsByteIdempotent(t *testing.T) {
	cfg := testConfig(t)
	seedSources(t, cfg)

	outputs := []string{cfg.PersonsOut(), cfg.FlightsOut(), cfg.DocumentsOut(), cfg.NetworkOut(), cfg.SummaryOut()}

	require.NoError(t, pipeline.New(cfg).Run())
	first := map[string][]byte{}
	for _, path := range outputs {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		first[path] = data
	}

	require.NoError(t, pipeline.New(cfg).Run())
	for _, path := range outputs {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, string(first[path]), string(data), path)
	}
}
