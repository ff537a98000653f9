package graph

import (
	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/types"
)

// Assemble builds the size-bounded graph. The first cfg.MaxPersons
// merged persons (already sorted by flights/documents) become base
// nodes. When relationship data exists (rels non-nil, even if empty)
// the first cfg.MaxLinks edges are used; otherwise co-passenger edges
// are derived from flights, capped at cfg.MaxCoOccurrence. Edge
// endpoints outside the base set are inserted as stub nodes labeled by
// their origin.
func Assemble(persons []types.Person, rels []types.Relationship, flights []types.Flight, cfg config.Graph) types.Network {
	network := types.Network{
		Nodes: []*types.Node{},
		Links: []types.Relationship{},
	}
	index := make(map[string]*types.Node)

	addNode := func(n *types.Node) {
		if _, ok := index[n.ID]; ok {
			return
		}
		index[n.ID] = n
		network.Nodes = append(network.Nodes, n)
	}

	base := persons
	if len(base) > cfg.MaxPersons {
		base = base[:cfg.MaxPersons]
	}
	for _, p := range base {
		group := p.Category
		if group == "" {
			group = p.EntityType
		}
		if group == "" {
			group = "Unknown"
		}
		addNode(&types.Node{
			ID:          p.Name,
			Group:       group,
			Flights:     p.Flights,
			Documents:   p.Documents,
			Connections: p.Connections,
			InBlackBook: p.InBlackBook,
			Nationality: p.Nationality,
			Images:      p.Images,
		})
	}

	switch {
	case rels != nil:
		links := rels
		if len(links) > cfg.MaxLinks {
			links = links[:cfg.MaxLinks]
		}
		for _, link := range links {
			for _, endpoint := range []string{link.Source, link.Target} {
				addNode(&types.Node{ID: endpoint, Group: "Relationship"})
			}
			network.Links = append(network.Links, link)
		}

	case len(flights) > 0:
		links, participants := CoOccurrence(flights, cfg.MaxCoOccurrence)
		for _, p := range participants {
			addNode(&types.Node{ID: p, Group: "Flight Passenger"})
		}
		network.Links = append(network.Links, links...)
	}

	return network
}
