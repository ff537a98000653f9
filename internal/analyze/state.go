package analyze

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dossierlab/dossier/pkg/errors"
)

// state is the resume checkpoint for a long-running analysis pass.
type state struct {
	ProcessedFiles []string `json:"processed_files"`
	LastFile       string   `json:"last_file"`
	TotalProcessed int      `json:"total_processed"`
	UpdatedAt      string   `json:"updated_at"`
}

// loadState reads the checkpoint, returning an empty state when the
// file is missing or unreadable.
func loadState(path string) state {
	var s state
	data, err := os.ReadFile(path)
	if err != nil {
		return state{}
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return state{}
	}
	return s
}

// saveState writes the checkpoint atomically enough for a resume: a
// torn write only costs re-analyzing a handful of images.
func saveState(path string, processed []string, lastFile string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	s := state{
		ProcessedFiles: processed,
		LastFile:       lastFile,
		TotalProcessed: len(processed),
		UpdatedAt:      time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return errors.WrapIO("write", path, os.WriteFile(path, data, 0o644))
}

// appendResults appends one JSON object per line to the results file.
// JSONL keeps the output append-only so an interrupted run never
// corrupts earlier results.
func appendResults(path string, results []map[string]any) error {
	if len(results) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	return w.Flush()
}
