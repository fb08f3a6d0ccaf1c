// Package gngenomes defines the contracts between the pure core of
// gngenomes and its I/O implementations.
package gngenomes

import (
	"context"

	"github.com/gnames/gngenomes/pkg/names"
)

// Fetcher transfers remote files to the local file system.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	// Fetch saves the resource at url to path. If path already holds a
	// copy that is not older than the remote one, the file is kept and
	// UpToDate is returned.
	Fetch(ctx context.Context, url, path string) (FetchStatus, error)
}

// GNgenomes is the application facade used by the command line.
// Configuration is provided during construction.
type GNgenomes interface {
	// Download saves assembly files of a taxon and all its descendants.
	// The summary is returned also when some transfers failed.
	Download(ctx context.Context, taxonID int) (*Summary, error)

	// Lineage describes the position of a taxon in the taxonomy and the
	// catalog branch it belongs to.
	Lineage(ctx context.Context, taxonID int) (*LineageReport, error)

	// Find returns taxa that have the given scientific name.
	Find(ctx context.Context, name string) ([]names.Match, error)
}
