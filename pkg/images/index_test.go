package images_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossierlab/dossier/pkg/images"
	"github.com/dossierlab/dossier/pkg/types"
)

func TestCanonical(t *testing.T) {
	assert.Equal(t, "Jane Doe", images.Canonical("jane   doe"))
	assert.Equal(t, "Jane Doe", images.Canonical("JANE DOE"))
	assert.Equal(t, "", images.Canonical("   "))
}

func TestLookupExactMatch(t *testing.T) {
	ix := images.NewIndex()
	ref := types.ImageRef{Path: "images/persons/jane_doe.jpg", Filename: "jane_doe.jpg", Category: "persons"}
	ix.Add("Jane Doe", ref)

	got := ix.Lookup("jane doe")
	require.Len(t, got, 1)
	assert.Equal(t, ref, got[0])
}

func TestLookupFuzzyMatch(t *testing.T) {
	ix := images.NewIndex()
	ix.Add("Jane Doe", types.ImageRef{Filename: "jane_doe.jpg"})

	// Middle initial drifts; the token-subset fallback still finds her.
	got := ix.Lookup("Jane A. Doe")
	require.Len(t, got, 1)
	assert.Equal(t, "jane_doe.jpg", got[0].Filename)
}

func TestLookupMissIsEmptyNotNil(t *testing.T) {
	ix := images.NewIndex()
	ix.Add("Jane Doe", types.ImageRef{Filename: "jane_doe.jpg"})

	got := ix.Lookup("Zed Quux")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	// Single-token names never fuzzy match.
	assert.Empty(t, ix.Lookup("Madonna"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ix := images.NewIndex()
	ix.Add("Jane Doe", types.ImageRef{Path: "images/persons/jane_doe.jpg", Filename: "jane_doe.jpg", Category: "persons", SizeBytes: 123})
	ix.Add("Bob Brown", types.ImageRef{Path: "images/suspects/bob_brown.png", Filename: "bob_brown.png", Category: "suspects"})

	path := filepath.Join(t.TempDir(), "image_index.json")
	require.NoError(t, ix.Save(path))

	loaded, err := images.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, 2, loaded.TotalImages())
	// Insertion order survives the round trip.
	assert.Equal(t, []string{"Jane Doe", "Bob Brown"}, loaded.Keys())
}

func TestLoadMissingFile(t *testing.T) {
	ix, err := images.Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestBuild(t *testing.T) {
	base := t.TempDir()
	personsDir := filepath.Join(base, "images", "persons")
	docsDir := filepath.Join(base, "images", "documents")
	require.NoError(t, os.MkdirAll(personsDir, 0o755))
	require.NoError(t, os.MkdirAll(docsDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(personsDir, "jane_doe.jpg"), []byte("img"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(personsDir, "jane_doe-2.jpg"), []byte("img2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(personsDir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "scan_001.jpg"), []byte("doc"), 0o644))

	ix, err := images.Build(base, filepath.Join(base, "images"))
	require.NoError(t, err)

	// Document scans and non-image files stay out of the index.
	assert.Equal(t, 2, ix.TotalImages())

	refs := ix.Get("Jane Doe")
	require.Len(t, refs, 1)
	assert.Equal(t, "images/persons/jane_doe.jpg", refs[0].Path)
	assert.Equal(t, "persons", refs[0].Category)
	assert.Equal(t, int64(3), refs[0].SizeBytes)

	// The "-2" suffix canonicalizes to a separate key, not a merge.
	assert.Len(t, ix.Get("Jane Doe 2"), 1)
}
