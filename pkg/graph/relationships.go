// Package graph turns relationship records and flight co-occurrence
// into the bounded node/link graph used for visualization, and derives
// per-entity connection counts from edge incidence.
package graph

import (
	"github.com/dossierlab/dossier/pkg/record"
	"github.com/dossierlab/dossier/pkg/types"
)

// Extract converts raw relationship rows into typed edges and the set
// of entity names appearing as endpoints. Rows missing either endpoint
// are dropped. Weight follows the strength field's parse chain
// (integer, then rounded float, then 1).
func Extract(rows []record.Record) ([]types.Relationship, map[string]bool) {
	links := []types.Relationship{}
	nodeSet := make(map[string]bool)

	for _, row := range rows {
		entityA := row.Str("entity_a")
		entityB := row.Str("entity_b")
		if entityA == "" || entityB == "" {
			continue
		}
		links = append(links, types.Relationship{
			Source: entityA,
			Target: entityB,
			Type:   row.Str("relationship_type"),
			Weight: row.Weight("strength"),
		})
		nodeSet[entityA] = true
		nodeSet[entityB] = true
	}
	return links, nodeSet
}

// CountConnections counts edge incidence per entity name: every edge
// contributes 1 to each endpoint. This is incidence with multiplicity,
// not unique-neighbor count — two parallel edges between the same pair
// count both endpoints twice. Downstream merge logic depends on
// exactly this semantic.
func CountConnections(links []types.Relationship) map[string]int {
	counts := make(map[string]int)
	for _, link := range links {
		counts[link.Source]++
		counts[link.Target]++
	}
	return counts
}
