// Package catalog selects assemblies of a taxonomic subtree from an NCBI
// assembly_summary.txt catalog and derives their download locations.
//
// Filtering is a single streaming pass: rows are rejected one by one and
// accepted records are yielded in catalog order, so catalogs with hundreds
// of thousands of rows are never held in memory.
package catalog

import (
	"bufio"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// Stats counts the outcome of every catalog row seen by a Filter.
type Stats struct {
	Rows          int
	Comments      int
	Short         int
	WrongLevel    int
	UnknownTaxon  int
	NotDescendant int
	NoLocation    int
	Accepted      int
}

// Option configures a Filter.
type Option func(*Filter)

// OptAllLevels turns off the "Complete Genome" quality filter.
func OptAllLevels(b bool) Option {
	return func(f *Filter) {
		f.allLevels = b
	}
}

// Filter accepts catalog records of a taxon and its descendants.
type Filter struct {
	tree      *taxonomy.Tree
	taxonID   int
	allLevels bool
	stats     Stats
}

// NewFilter creates a Filter for the subtree of taxonID.
func NewFilter(
	tree *taxonomy.Tree,
	taxonID int,
	opts ...Option,
) *Filter {
	res := &Filter{tree: tree, taxonID: taxonID}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Stats returns counters collected by the last Records iteration.
func (f *Filter) Stats() Stats {
	return f.stats
}

// Records returns a lazy sequence of accepted records read from r, in the
// order of the catalog. Duplicates are kept. Rejected rows never stop the
// sequence; a read error is yielded once and ends it.
func (f *Filter) Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f.stats = Stats{}
		if !f.tree.Contains(f.taxonID) {
			slog.Warn("Query taxon is not in taxonomy, nothing to select",
				"taxon_id", f.taxonID)
			return
		}

		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		var row int
		for sc.Scan() {
			row++
			rec, ok := f.accept(row, sc.Text())
			if !ok {
				continue
			}
			if !yield(rec, nil) {
				return
			}
		}

		if err := sc.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

// accept applies all predicates to one catalog line.
func (f *Filter) accept(row int, line string) (Record, bool) {
	var res Record
	f.stats.Rows++

	if strings.HasPrefix(line, CommentMarker) {
		f.stats.Comments++
		return res, false
	}

	line = strings.TrimSuffix(line, "\r")
	res = NewRecord(row, strings.Split(line, "\t"))
	if !res.Valid() {
		f.stats.Short++
		slog.Warn("Skipping truncated catalog row", "row", row)
		return res, false
	}

	if !f.allLevels && res.Level() != CompleteGenome {
		f.stats.WrongLevel++
		return res, false
	}

	taxonID, err := res.TaxonID()
	if err != nil || !f.tree.Contains(taxonID) {
		f.stats.UnknownTaxon++
		slog.Warn("Skipping assembly with unknown taxon",
			"row", row,
			"accession", res.Accession(),
			"taxon_id", res.field(colTaxonID),
		)
		return res, false
	}

	if !f.tree.IsAncestor(f.taxonID, taxonID) {
		f.stats.NotDescendant++
		return res, false
	}

	if !res.HasLocation() {
		f.stats.NoLocation++
		slog.Warn("Skipping assembly without files",
			"row", row,
			"accession", res.Accession(),
		)
		return res, false
	}

	f.stats.Accepted++
	return res, true
}
