// Package config provides configuration management for GNgenomes.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Log: level, format, destination
//   - General: jobs_number, taxdump_url, requests_per_second
//   - Branches and branch rules
//
// Runtime-only fields (CLI flags only):
//   - Download.FileType, AllLevels, OutputDir, DryRun (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNGENOMES_ prefix with underscores for nesting:
//
//	GNGENOMES_LOG_LEVEL=info
//	GNGENOMES_JOBS_NUMBER=4
//	GNGENOMES_TAXDUMP_URL=https://ftp.ncbi.nlm.nih.gov/pub/taxonomy/taxdump.tar.gz
package config

import (
	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/catalog"
)

const (
	// NCBIBase is the root of NCBI downloads.
	NCBIBase = "https://ftp.ncbi.nlm.nih.gov"

	// DefaultTaxdumpURL is the location of the NCBI taxonomy dump.
	DefaultTaxdumpURL = NCBIBase + "/pub/taxonomy/taxdump.tar.gz"
)

// Config represents the complete GNgenomes configuration.
type Config struct {
	// Download contains settings of the get command.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// Branches lists supported top-level catalogs. Removing a branch from
	// the list makes its taxa unresolvable.
	Branches []branch.Branch `mapstructure:"branches" yaml:"branches"`

	// Rules toggles collapsing rules applied before a branch lookup.
	Rules RulesConfig `mapstructure:"rules" yaml:"rules"`

	// TaxdumpURL is the location of taxdump.tar.gz.
	TaxdumpURL string `mapstructure:"taxdump_url" yaml:"taxdump_url"`

	// RequestsPerSecond limits how often new transfers start.
	// NCBI asks clients to stay under a few requests per second.
	RequestsPerSecond int `mapstructure:"requests_per_second" yaml:"requests_per_second"`

	// JobsNumber is the number of concurrent downloads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DownloadConfig contains settings specific to the get command.
type DownloadConfig struct {
	// FileType is the kind of assembly file to download.
	FileType catalog.FileType `mapstructure:"file_type" yaml:"file_type"`

	// AllLevels includes assemblies of every level, not only
	// "Complete Genome" ones.
	AllLevels bool `mapstructure:"all_levels" yaml:"all_levels"`

	// OutputDir is the directory for downloaded files.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// DryRun prints target URLs without downloading them.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// RulesConfig switches branch collapsing rules on and off.
// Pointers distinguish between unset (nil) and false.
type RulesConfig struct {
	// CollapseCellularOrganisms looks one level below the
	// "cellular organisms" grouping node.
	CollapseCellularOrganisms *bool `mapstructure:"collapse_cellular_organisms" yaml:"collapse_cellular_organisms"`

	// RemapEukaryotaToFungi sends eukaryotic taxa to the Fungi catalog.
	RemapEukaryotaToFungi *bool `mapstructure:"remap_eukaryota_to_fungi" yaml:"remap_eukaryota_to_fungi"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// DefaultBranches returns RefSeq catalogs of the supported branches.
func DefaultBranches() []branch.Branch {
	refseq := NCBIBase + "/genomes/refseq/"
	return []branch.Branch{
		{
			Name:       "bacteria",
			TaxonID:    branch.BacteriaID,
			CatalogURL: refseq + "bacteria/assembly_summary.txt",
		},
		{
			Name:       "archaea",
			TaxonID:    branch.ArchaeaID,
			CatalogURL: refseq + "archaea/assembly_summary.txt",
		},
		{
			Name:       "viral",
			TaxonID:    branch.VirusesID,
			CatalogURL: refseq + "viral/assembly_summary.txt",
		},
		{
			Name:       "fungi",
			TaxonID:    branch.FungiID,
			CatalogURL: refseq + "fungi/assembly_summary.txt",
		},
	}
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	collapse, remap := true, true
	res := &Config{
		Download: DownloadConfig{
			FileType:  catalog.GBFF,
			OutputDir: ".",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		Branches: DefaultBranches(),
		Rules: RulesConfig{
			CollapseCellularOrganisms: &collapse,
			RemapEukaryotaToFungi:     &remap,
		},
		TaxdumpURL:        DefaultTaxdumpURL,
		RequestsPerSecond: 3,
		JobsNumber:        4,
	}

	return res
}

// BranchTable returns the lookup table of configured branches.
func (c *Config) BranchTable() branch.Table {
	return branch.NewTable(c.Branches)
}

// BranchRules returns the default branch rules switched according to
// the configuration.
func (c *Config) BranchRules() []branch.Rule {
	res := branch.DefaultRules()
	for i := range res {
		switch res[i].Match {
		case branch.CellularOrganismsID:
			res[i].Enabled = isOn(c.Rules.CollapseCellularOrganisms)
		case branch.EukaryotaID:
			res[i].Enabled = isOn(c.Rules.RemapEukaryotaToFungi)
		}
	}
	return res
}

func isOn(b *bool) bool {
	return b == nil || *b
}
