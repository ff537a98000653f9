// Package config defines the immutable pipeline configuration. Every
// component takes a Config (or the relevant slice of it) explicitly so
// the merge and graph logic stays testable without file-system wiring.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Graph holds the fixed caps that bound the visualization payload.
// These are policy constants, not computed thresholds.
type Graph struct {
	// MaxPersons is the number of merged persons used as base nodes.
	MaxPersons int `mapstructure:"max_persons"`

	// MaxLinks is the number of relationship edges kept.
	MaxLinks int `mapstructure:"max_links"`

	// MaxCoOccurrence is the number of co-passenger edges kept when
	// falling back to flight co-occurrence.
	MaxCoOccurrence int `mapstructure:"max_co_occurrence"`
}

// Tops holds the top-N sizes of the summary frequency tables.
type Tops struct {
	Flights       int `mapstructure:"flights"`
	Connections   int `mapstructure:"connections"`
	Nationalities int `mapstructure:"nationalities"`
	Categories    int `mapstructure:"categories"`
	Departures    int `mapstructure:"departures"`
	Arrivals      int `mapstructure:"arrivals"`
	Routes        int `mapstructure:"routes"`
	Aircraft      int `mapstructure:"aircraft"`
	Tags          int `mapstructure:"tags"`
	PowerMentions int `mapstructure:"power_mentions"`
	Agencies      int `mapstructure:"agencies"`
	LeadTypes     int `mapstructure:"lead_types"`
	Senders       int `mapstructure:"senders"`
	Recipients    int `mapstructure:"recipients"`
}

// DataSources is static provenance metadata included in the summary
// output for dashboard display.
type DataSources struct {
	DOJDatasets   int    `json:"doj_datasets" mapstructure:"doj_datasets"`
	DOJTotalPages string `json:"doj_total_pages" mapstructure:"doj_total_pages"`
}

// Config is the full pipeline configuration. Treat instances as
// immutable once constructed.
type Config struct {
	// DataDir is the root of the downloaded source datasets.
	DataDir string `mapstructure:"data_dir"`

	// OutputDir is where the dashboard JSON files are written.
	OutputDir string `mapstructure:"output_dir"`

	Graph       Graph       `mapstructure:"graph"`
	Tops        Tops        `mapstructure:"tops"`
	DataSources DataSources `mapstructure:"data_sources"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		DataDir:   "data",
		OutputDir: filepath.Join("dashboard", "data"),
		Graph: Graph{
			MaxPersons:      300,
			MaxLinks:        1000,
			MaxCoOccurrence: 500,
		},
		Tops: Tops{
			Flights:       15,
			Connections:   15,
			Nationalities: 20,
			Categories:    20,
			Departures:    15,
			Arrivals:      15,
			Routes:        20,
			Aircraft:      10,
			Tags:          30,
			PowerMentions: 20,
			Agencies:      15,
			LeadTypes:     15,
			Senders:       15,
			Recipients:    15,
		},
		DataSources: DataSources{
			DOJDatasets:   12,
			DOJTotalPages: "~3,500,000",
		},
	}
}

// FromViper resolves a Config from viper state layered over Default.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Default()
	if v == nil {
		return cfg, nil
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Default(), err
	}
	cfg.fillZeros()
	return cfg, nil
}

// fillZeros restores defaults for caps that an explicit config zeroed
// out; a cap of 0 would silently produce empty outputs.
func (c *Config) fillZeros() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Graph.MaxPersons == 0 {
		c.Graph.MaxPersons = def.Graph.MaxPersons
	}
	if c.Graph.MaxLinks == 0 {
		c.Graph.MaxLinks = def.Graph.MaxLinks
	}
	if c.Graph.MaxCoOccurrence == 0 {
		c.Graph.MaxCoOccurrence = def.Graph.MaxCoOccurrence
	}
	if c.Tops == (Tops{}) {
		c.Tops = def.Tops
	}
	if c.DataSources == (DataSources{}) {
		c.DataSources = def.DataSources
	}
}

// Source file layout under DataDir.

// PersonsDir returns the folder holding person/entity CSVs.
func (c Config) PersonsDir() string {
	return filepath.Join(c.DataDir, "persons_of_interest")
}

// EntitiesFile returns the primary entities CSV path.
func (c Config) EntitiesFile() string {
	return filepath.Join(c.PersonsDir(), "entities.csv")
}

// FlightsFile returns the flight log CSV path.
func (c Config) FlightsFile() string {
	return filepath.Join(c.DataDir, "flight_logs", "flights.csv")
}

// RelationshipsFile returns the relationships CSV path.
func (c Config) RelationshipsFile() string {
	return filepath.Join(c.DataDir, "relationships", "relationships.csv")
}

// DocumentsDir returns the folder holding document metadata files.
func (c Config) DocumentsDir() string {
	return filepath.Join(c.DataDir, "documents")
}

// EmailsFile returns the email metadata CSV path.
func (c Config) EmailsFile() string {
	return filepath.Join(c.DataDir, "emails", "emails.csv")
}

// ImagesDir returns the root of the sorted image folders.
func (c Config) ImagesDir() string {
	return filepath.Join(c.DataDir, "images")
}

// ProcessedDir returns the folder for derived intermediate files.
func (c Config) ProcessedDir() string {
	return filepath.Join(c.DataDir, "processed")
}

// ImageIndexFile returns the image index JSON path.
func (c Config) ImageIndexFile() string {
	return filepath.Join(c.ProcessedDir(), "image_index.json")
}

// DocScansDir returns the folder holding scanned document images.
func (c Config) DocScansDir() string {
	return filepath.Join(c.ImagesDir(), "documents")
}

// AnalysisStateFile returns the document analysis checkpoint path.
func (c Config) AnalysisStateFile() string {
	return filepath.Join(c.ProcessedDir(), "analysis_state.json")
}

// ModelCacheFile returns the cached-model note for document analysis.
func (c Config) ModelCacheFile() string {
	return filepath.Join(c.ProcessedDir(), "last_working_model.txt")
}

// AnalysisResultsFile returns the JSONL file that document analysis
// appends to. It lives under DocumentsDir so the pipeline picks the
// scored records up on the next run.
func (c Config) AnalysisResultsFile() string {
	return filepath.Join(c.DocumentsDir(), "document_analysis.jsonl")
}

// Output file layout under OutputDir.

// PersonsOut returns the merged persons output path.
func (c Config) PersonsOut() string {
	return filepath.Join(c.OutputDir, "persons_of_interest.json")
}

// FlightsOut returns the flight list output path.
func (c Config) FlightsOut() string {
	return filepath.Join(c.OutputDir, "flight_logs.json")
}

// DocumentsOut returns the documents list output path.
func (c Config) DocumentsOut() string {
	return filepath.Join(c.OutputDir, "documents.json")
}

// NetworkOut returns the network graph output path.
func (c Config) NetworkOut() string {
	return filepath.Join(c.OutputDir, "network.json")
}

// SummaryOut returns the summary statistics output path.
func (c Config) SummaryOut() string {
	return filepath.Join(c.OutputDir, "summary.json")
}
