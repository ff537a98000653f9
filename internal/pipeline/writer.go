package pipeline

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/dossierlab/dossier/pkg/errors"
)

// WriteJSON marshals v with two-space indentation, HTML escaping off,
// and replaces the file at path wholesale. Output is deterministic:
// re-encoding the same value produces identical bytes.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.WrapIO("encode", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
