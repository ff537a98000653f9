// Package images maintains the index mapping canonical person names to
// image references, and the loose name matching used to attach images
// to entity records.
package images

import (
	"encoding/json"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dossierlab/dossier/pkg/errors"
	"github.com/dossierlab/dossier/pkg/types"
)

var titleCaser = cases.Title(language.English)

// Canonical normalizes a person name to title case with single spaces.
func Canonical(name string) string {
	return strings.Join(strings.Fields(titleCaser.String(name)), " ")
}

// Index maps canonical names to their image references. Iteration order
// is insertion order; the fallback match in Lookup returns the first
// key that satisfies it, so a stable order is what keeps results
// reproducible across runs.
type Index struct {
	entries *orderedmap.OrderedMap[string, []types.ImageRef]
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: orderedmap.New[string, []types.ImageRef]()}
}

// Load reads an index from its JSON file. A missing file yields an
// empty index, not an error.
func Load(path string) (*Index, error) {
	ix := NewIndex()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ix, nil
		}
		return ix, errors.WrapIO("read", path, err)
	}
	if err := json.Unmarshal(data, ix.entries); err != nil {
		return NewIndex(), errors.WrapParse("json", path, err)
	}
	return ix, nil
}

// Add appends a reference under the given canonical key.
func (ix *Index) Add(key string, ref types.ImageRef) {
	refs, _ := ix.entries.Get(key)
	ix.entries.Set(key, append(refs, ref))
}

// Get returns the references stored under an exact key.
func (ix *Index) Get(key string) []types.ImageRef {
	refs, _ := ix.entries.Get(key)
	return refs
}

// Len returns the number of indexed names.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return ix.entries.Len()
}

// TotalImages returns the number of references across all names.
func (ix *Index) TotalImages() int {
	if ix == nil {
		return 0
	}
	total := 0
	for pair := ix.entries.Oldest(); pair != nil; pair = pair.Next() {
		total += len(pair.Value)
	}
	return total
}

// Lookup finds the images for a name. It first tries an exact match on
// the canonicalized name, then falls back to a token-subset scan: the
// first indexed key containing every token of length > 2 among the
// name's first two tokens wins. The fallback tolerates punctuation and
// ordering drift ("Jane A. Doe" vs "Jane Doe") but is advisory, never
// authoritative identity; it can match the wrong key and, when both
// leading tokens are short, degenerates to the first key in the index.
func (ix *Index) Lookup(name string) []types.ImageRef {
	if ix == nil {
		return []types.ImageRef{}
	}
	canon := Canonical(name)
	if refs, ok := ix.entries.Get(canon); ok {
		return refs
	}

	parts := strings.Fields(canon)
	if len(parts) < 2 {
		return []types.ImageRef{}
	}
	lead := parts[:2]

	for pair := ix.entries.Oldest(); pair != nil; pair = pair.Next() {
		matched := true
		for _, part := range lead {
			if len(part) > 2 && !strings.Contains(pair.Key, part) {
				matched = false
				break
			}
		}
		if matched {
			return pair.Value
		}
	}
	return []types.ImageRef{}
}

// Save writes the index to its JSON file with stable key order.
func (ix *Index) Save(path string) error {
	data, err := json.MarshalIndent(ix.entries, "", "  ")
	if err != nil {
		return err
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, 0o644))
}

// Keys returns the indexed names in insertion order.
func (ix *Index) Keys() []string {
	keys := make([]string, 0, ix.Len())
	for pair := ix.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
