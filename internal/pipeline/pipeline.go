// Package pipeline runs the one-shot batch transform: load every
// source, reconcile persons, build the graph, aggregate statistics,
// and write the dashboard JSON files. Producers are independent; a
// failure in one never prevents the others from completing, and every
// output file is written on every run.
package pipeline

import (
	stderrors "errors"
	"os"

	"github.com/dossierlab/dossier/internal/sources"
	"github.com/dossierlab/dossier/pkg/config"
	"github.com/dossierlab/dossier/pkg/graph"
	"github.com/dossierlab/dossier/pkg/images"
	"github.com/dossierlab/dossier/pkg/logging"
	"github.com/dossierlab/dossier/pkg/reconcile"
	"github.com/dossierlab/dossier/pkg/stats"
)

// Pipeline holds the configuration for one run.
type Pipeline struct {
	cfg config.Config
}

// New creates a pipeline with the given configuration.
func New(cfg config.Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run executes the full pipeline. It always attempts every output
// file; the returned error joins any per-file write failures.
func (p *Pipeline) Run() error {
	cfg := p.cfg

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return err
	}

	index, err := images.Load(cfg.ImageIndexFile())
	if err != nil {
		logging.Err(err).Str("path", cfg.ImageIndexFile()).Msg("Could not load image index")
		index = images.NewIndex()
	}
	logging.Info().Int("entries", index.Len()).Msg("Image index loaded")

	entities := sources.LoadEntities(cfg, index)
	supplementary := sources.LoadSupplementaryPersons(cfg, index)
	flights := sources.LoadFlights(cfg)
	rels := sources.LoadRelationships(cfg)
	docs := sources.LoadDocuments(cfg)
	emails := sources.LoadEmails(cfg)

	connCounts := graph.CountConnections(rels)
	logging.Info().Int("entities", len(connCounts)).Msg("Derived connection counts")

	persons := reconcile.MergePersons(entities, supplementary, connCounts)
	network := graph.Assemble(persons, rels, flights, cfg.Graph)
	logging.Info().Int("nodes", len(network.Nodes)).Int("links", len(network.Links)).Msg("Network assembled")

	summary := stats.Summarize(persons, flights, docs, emails, index.TotalImages(), cfg)

	var errs []error
	write := func(path string, data any) {
		if err := WriteJSON(path, data); err != nil {
			logging.Err(err).Str("path", path).Msg("Failed to write output")
			errs = append(errs, err)
			return
		}
		logging.Info().Str("path", path).Msg("Wrote output")
	}

	write(cfg.PersonsOut(), nonNil(persons))
	write(cfg.FlightsOut(), nonNil(flights))
	write(cfg.DocumentsOut(), nonNil(docs))
	write(cfg.NetworkOut(), network)
	write(cfg.SummaryOut(), summary)

	return stderrors.Join(errs...)
}

// nonNil keeps absent sources serializing as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
