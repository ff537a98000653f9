package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/graph"
	"github.com/dossierlab/dossier/pkg/record"
	"github.com/dossierlab/dossier/pkg/types"
)

func TestExtract(t *testing.T) {
	rows := []record.Record{
		{"entity_a": "Alice", "entity_b": "Bob", "relationship_type": "business", "strength": "2.6"},
		{"entity_a": "Alice", "entity_b": "", "relationship_type": "unknown"},
		{"entity_a": "Bob", "entity_b": "Cara"},
	}

	links, nodes := graph.Extract(rows)
	require.Len(t, links, 2)
	assert.Equal(t, types.Relationship{Source: "Alice", Target: "Bob", Type: "business", Weight: 3}, links[0])
	assert.Equal(t, 1, links[1].Weight)
	assert.Equal(t, map[string]bool{"Alice": true, "Bob": true, "Cara": true}, nodes)
}

func TestCountConnectionsIsIncidenceWithMultiplicity(t *testing.T) {
	links := []types.Relationship{
		{Source: "Alice", Target: "Bob"},
		{Source: "Alice", Target: "Cara"},
		{Source: "Alice", Target: "Bob"}, // parallel edge counts again
	}

	counts := graph.CountConnections(links)
	assert.Equal(t, map[string]int{"Alice": 3, "Bob": 2, "Cara": 1}, counts)

	counts = graph.CountConnections([]types.Relationship{
		{Source: "A", Target: "B"},
		{Source: "A", Target: "C"},
	})
	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1}, counts)
}

func TestPassengers(t *testing.T) {
	got := graph.Passengers("john smith, JANE DOE; al / Gm")
	// Tokens of length <= 2 are dropped, the rest are title-cased.
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, got)

	assert.Nil(t, graph.Passengers("   "))
}

func TestCoOccurrence(t *testing.T) {
	flights := []types.Flight{
		{Passengers: "Alice Adams, Bob Brown"},
		{Passengers: "Bob Brown, Alice Adams"},
		{Passengers: "Alice Adams, Cara Cole"},
	}

	links, participants := graph.CoOccurrence(flights, 500)
	require.Len(t, links, 2)
	// Pairs are stored with endpoints sorted, counted across flights.
	assert.Equal(t, types.Relationship{Source: "Alice Adams", Target: "Bob Brown", Type: "co-passenger", Weight: 2}, links[0])
	assert.Equal(t, types.Relationship{Source: "Alice Adams", Target: "Cara Cole", Type: "co-passenger", Weight: 1}, links[1])

	assert.Equal(t, []string{"Alice Adams", "Bob Brown", "Cara Cole"}, participants)
}

func TestCoOccurrenceCap(t *testing.T) {
	flights := []types.Flight{
		{Passengers: "Alice Adams, Bob Brown, Cara Cole"},
	}
	links, participants := graph.CoOccurrence(flights, 2)
	assert.Len(t, links, 2)
	// Participants are collected before the cap is applied.
	assert.Len(t, participants, 3)
}

func testPersons() []types.Person {
	return []types.Person{
		{Name: "Alice", Category: "Politics", Flights: 10},
		{Name: "Bob", EntityType: "person", Flights: 5},
		{Name: "Cara", Flights: 1},
	}
}

func TestAssembleCapsBaseNodes(t *testing.T) {
	cfg := config.Graph{MaxPersons: 2, MaxLinks: 1000, MaxCoOccurrence: 500}
	network := graph.Assemble(testPersons(), []types.Relationship{}, nil, cfg)

	require.Len(t, network.Nodes, 2)
	assert.Equal(t, "Alice", network.Nodes[0].ID)
	assert.Equal(t, "Politics", network.Nodes[0].Group)
	// Group falls back to entity type when category is absent.
	assert.Equal(t, "person", network.Nodes[1].Group)
	assert.Empty(t, network.Links)
}

func TestAssembleRelationshipStubNodes(t *testing.T) {
	cfg := config.Default().Graph
	rels := []types.Relationship{
		{Source: "Alice", Target: "Zed", Type: "business", Weight: 2},
	}
	network := graph.Assemble(testPersons(), rels, nil, cfg)

	require.Len(t, network.Links, 1)
	var zed *types.Node
	for _, n := range network.Nodes {
		if n.ID == "Zed" {
			zed = n
		}
	}
	require.NotNil(t, zed, "edge endpoint outside the base set becomes a stub node")
	assert.Equal(t, "Relationship", zed.Group)
}

func TestAssembleFlightFallback(t *testing.T) {
	cfg := config.Default().Graph
	flights := []types.Flight{{Passengers: "Dave Dean, Eve Ellis"}}

	// rels == nil: fall back to co-occurrence edges.
	network := graph.Assemble(testPersons(), nil, flights, cfg)
	require.Len(t, network.Links, 1)
	assert.Equal(t, "co-passenger", network.Links[0].Type)

	var stub *types.Node
	for _, n := range network.Nodes {
		if n.ID == "Dave Dean" {
			stub = n
		}
	}
	require.NotNil(t, stub)
	assert.Equal(t, "Flight Passenger", stub.Group)

	// rels present but empty: relationship data exists, no fallback.
	network = graph.Assemble(testPersons(), []types.Relationship{}, flights, cfg)
	assert.Empty(t, network.Links)
}

func TestAssembleEmptyInputs(t *testing.T) {
	network := graph.Assemble(nil, nil, nil, config.Default().Graph)
	assert.NotNil(t, network.Nodes)
	assert.NotNil(t, network.Links)
	assert.Empty(t, network.Nodes)
	assert.Empty(t, network.Links)
}
