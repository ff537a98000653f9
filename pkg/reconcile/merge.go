// Package reconcile merges person records from the primary entities
// source with the supplementary dataset under a fixed field-level
// precedence policy, enriched by derived connection counts.
package reconcile

import (
	"sort"
	"strings"

	"github.com/dossierlab/dossier/pkg/types"
)

// MergePersons reconciles the primary entity list with the
// supplementary person list into one canonical list.
//
// Precedence, by case:
//   - primary empty: the supplementary list is returned with each
//     entry's connections raised to max(existing, connCounts[name]).
//   - supplementary empty: primary records map 1:1 into canonical
//     shape; connections come from connCounts.
//   - both present: matched by case-insensitive exact name equality
//     (no fuzzy matching across sources). flights and documents take
//     the max across sources; connections take
//     max(connCounts[name], supplementary value); black book flag,
//     nationality and category come from the supplementary record
//     when matched, else primary-derived defaults; images are the
//     primary's when non-empty, else the supplementary's. Every
//     primary record appears; unmatched supplementary records are
//     appended.
//
// Output order is descending by (flights, documents), stable, so ties
// keep their pre-sort order.
func MergePersons(primary, supplementary []types.Person, connCounts map[string]int) []types.Person {
	if connCounts == nil {
		connCounts = map[string]int{}
	}

	var merged []types.Person
	switch {
	case len(primary) == 0 && len(supplementary) == 0:
		return []types.Person{}

	case len(primary) == 0:
		merged = make([]types.Person, len(supplementary))
		for i, p := range supplementary {
			p.Connections = max(p.Connections, connCounts[p.Name])
			merged[i] = p
		}

	case len(supplementary) == 0:
		merged = make([]types.Person, len(primary))
		for i, e := range primary {
			merged[i] = types.Person{
				Name:            e.Name,
				EntityType:      e.EntityType,
				RoleDescription: e.RoleDescription,
				Flights:         e.Flights,
				Documents:       e.Documents,
				Emails:          e.Emails,
				Connections:     connCounts[e.Name],
				InBlackBook:     false,
				Nationality:     "Unknown",
				Category:        e.EntityType,
				Slug:            e.Slug,
				Images:          e.Images,
			}
		}

	default:
		merged = mergeBoth(primary, supplementary, connCounts)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Flights != merged[j].Flights {
			return merged[i].Flights > merged[j].Flights
		}
		return merged[i].Documents > merged[j].Documents
	})
	return merged
}

// mergeBoth handles the two-source case: primary as base, enriched
// field-by-field from the supplementary match.
func mergeBoth(primary, supplementary []types.Person, connCounts map[string]int) []types.Person {
	supByName := make(map[string]types.Person, len(supplementary))
	for _, p := range supplementary {
		supByName[strings.ToLower(p.Name)] = p
	}

	merged := make([]types.Person, 0, len(primary))
	seen := make(map[string]bool, len(primary))

	for _, e := range primary {
		nameLower := strings.ToLower(e.Name)
		seen[nameLower] = true
		match, matched := supByName[nameLower]

		nationality := "Unknown"
		category := e.EntityType
		if matched {
			nationality = match.Nationality
			category = match.Category
		}

		images := e.Images
		if len(images) == 0 {
			images = match.Images
		}
		if images == nil {
			images = []types.ImageRef{}
		}

		merged = append(merged, types.Person{
			Name:            e.Name,
			EntityType:      e.EntityType,
			RoleDescription: e.RoleDescription,
			Flights:         max(e.Flights, match.Flights),
			Documents:       max(e.Documents, match.Documents),
			Emails:          e.Emails,
			Connections:     max(connCounts[e.Name], match.Connections),
			InBlackBook:     match.InBlackBook,
			Nationality:     nationality,
			Category:        category,
			Slug:            e.Slug,
			Images:          images,
		})
	}

	for _, p := range supplementary {
		if seen[strings.ToLower(p.Name)] {
			continue
		}
		p.Connections = max(p.Connections, connCounts[p.Name])
		merged = append(merged, p)
	}
	return merged
}
