package gngenomes

import (
	"time"

	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/catalog"
)

// FetchStatus tells what a Fetcher did with a file.
type FetchStatus int

const (
	// Downloaded means the file was transferred.
	Downloaded FetchStatus = iota
	// UpToDate means the local copy was kept.
	UpToDate
)

func (s FetchStatus) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case UpToDate:
		return "up to date"
	default:
		return "unknown"
	}
}

// Summary describes the outcome of a Download run.
type Summary struct {
	TaxonID int
	Branch  branch.Branch
	// Catalog counts rows seen in the assembly catalog.
	Catalog catalog.Stats
	// Accepted is the number of selected assemblies.
	Accepted   int
	Downloaded int
	UpToDate   int
	Failed     int
	// DryRun is true when URLs were printed instead of fetched.
	DryRun   bool
	Duration time.Duration
}

// Taxon is an element of a lineage.
type Taxon struct {
	TaxonID int    `yaml:"taxon_id"`
	Name    string `yaml:"name,omitempty"`
}

// LineageReport is the output of the lineage command.
type LineageReport struct {
	TaxonID int    `yaml:"taxon_id"`
	Name    string `yaml:"name,omitempty"`
	// Branch is nil if the taxon does not belong to a supported branch.
	Branch *branch.Branch `yaml:"branch,omitempty"`
	// BranchError explains why the branch could not be found.
	BranchError string  `yaml:"branch_error,omitempty"`
	Lineage     []Taxon `yaml:"lineage"`
}
