package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/pkg/reconcile"
	"github.com/dossierlab/dossier/pkg/types"
)

func TestMergePersonsBothEmpty(t *testing.T) {
	got := reconcile.MergePersons(nil, nil, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMergePersonsPrimaryOnly(t *testing.T) {
	primary := []types.Person{
		{Name: "Jane Doe", EntityType: "person", RoleDescription: "financier", Flights: 5, Documents: 2, Slug: "jane-doe"},
	}
	counts := map[string]int{"Jane Doe": 4}

	got := reconcile.MergePersons(primary, nil, counts)
	require.Len(t, got, 1)
	p := got[0]
	assert.Equal(t, 4, p.Connections)
	assert.Equal(t, "Unknown", p.Nationality)
	assert.Equal(t, "person", p.Category, "category defaults to entity type")
	assert.False(t, p.InBlackBook)
	assert.Equal(t, "jane-doe", p.Slug)
}

func TestMergePersonsSupplementaryOnly(t *testing.T) {
	sup := []types.Person{
		{Name: "Jane Doe", Connections: 2, Nationality: "American", Category: "Finance"},
	}
	got := reconcile.MergePersons(nil, sup, map[string]int{"Jane Doe": 7})
	require.Len(t, got, 1)
	// Connections are raised to the derived count, never lowered.
	assert.Equal(t, 7, got[0].Connections)
	assert.Equal(t, "American", got[0].Nationality)

	got = reconcile.MergePersons(nil, sup, map[string]int{"Jane Doe": 1})
	assert.Equal(t, 2, got[0].Connections)
}

func TestMergePersonsBothSources(t *testing.T) {
	primary := []types.Person{
		{Name: "Jane Doe", EntityType: "person", Flights: 5, Documents: 2, Emails: 9, Slug: "jane-doe"},
		{Name: "Solo Primary", EntityType: "org", Flights: 1},
	}
	sup := []types.Person{
		{Name: "jane doe", Flights: 3, Documents: 8, Connections: 6, InBlackBook: true, Nationality: "American", Category: "Finance"},
		{Name: "Solo Supplementary", Flights: 2, Connections: 1},
	}
	counts := map[string]int{"Jane Doe": 4}

	got := reconcile.MergePersons(primary, sup, counts)
	require.Len(t, got, 3)

	byName := map[string]types.Person{}
	for _, p := range got {
		byName[p.Name] = p
	}

	// Match is case-insensitive; primary spelling wins.
	jane, ok := byName["Jane Doe"]
	require.True(t, ok)
	assert.Equal(t, 5, jane.Flights, "flights take the max across sources")
	assert.Equal(t, 8, jane.Documents, "documents take the max across sources")
	assert.Equal(t, 9, jane.Emails)
	assert.Equal(t, 6, jane.Connections, "connections take max(derived, supplementary)")
	assert.True(t, jane.InBlackBook)
	assert.Equal(t, "American", jane.Nationality)
	assert.Equal(t, "Finance", jane.Category)
	assert.Equal(t, "jane-doe", jane.Slug)

	solo := byName["Solo Primary"]
	assert.Equal(t, "Unknown", solo.Nationality)
	assert.Equal(t, "org", solo.Category)

	// Unmatched supplementary records are appended, not dropped.
	_, ok = byName["Solo Supplementary"]
	assert.True(t, ok)
}

func TestMergePersonsImagePrecedence(t *testing.T) {
	primaryImgs := []types.ImageRef{{Path: "images/persons/jane_doe.jpg", Filename: "jane_doe.jpg"}}
	supImgs := []types.ImageRef{{Path: "images/suspects/jane.jpg", Filename: "jane.jpg"}}

	primary := []types.Person{{Name: "Jane Doe", Images: primaryImgs}}
	sup := []types.Person{{Name: "Jane Doe", Images: supImgs}}
	got := reconcile.MergePersons(primary, sup, nil)
	assert.Equal(t, primaryImgs, got[0].Images, "primary images win when present")

	primary[0].Images = nil
	got = reconcile.MergePersons(primary, sup, nil)
	assert.Equal(t, supImgs, got[0].Images, "supplementary images fill the gap")

	sup[0].Images = nil
	got = reconcile.MergePersons(primary, sup, nil)
	assert.NotNil(t, got[0].Images, "images never serialize as null")
}

func TestMergePersonsOutputOrder(t *testing.T) {
	primary := []types.Person{
		{Name: "Low", Flights: 1, Documents: 9},
		{Name: "TieA", Flights: 5, Documents: 1},
		{Name: "TieB", Flights: 5, Documents: 3},
		{Name: "High", Flights: 9},
	}
	got := reconcile.MergePersons(primary, nil, nil)

	names := make([]string, len(got))
	for i, p := range got {
		names[i] = p.Name
	}
	// Descending by flights, then documents; stable for full ties.
	assert.Equal(t, []string{"High", "TieB", "TieA", "Low"}, names)
}
