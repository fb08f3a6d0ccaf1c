package catalog

import (
	"strconv"
	"strings"
)

// Columns of assembly_summary.txt used by the filter (0-indexed).
const (
	colAccession = 0
	colTaxonID   = 5
	colLevel     = 11
	colFTPPath   = 19

	// MinFields is the minimal number of fields of a valid data row.
	MinFields = colFTPPath + 1
)

const (
	// CompleteGenome is the assembly level accepted by default.
	CompleteGenome = "Complete Genome"
	// NoLocation marks an assembly without downloadable files.
	NoLocation = "na"
	// CommentMarker starts header and metadata lines of a catalog.
	CommentMarker = "#"
)

// Record is one data row of an assembly catalog.
type Record struct {
	fields []string
	// Row is the 1-based line number of the record in the catalog.
	Row int
}

// NewRecord wraps tab-separated fields of a catalog row.
func NewRecord(row int, fields []string) Record {
	return Record{Row: row, fields: fields}
}

// Valid reports whether the record has all columns used by the filter.
func (r Record) Valid() bool {
	return len(r.fields) >= MinFields
}

// Accession returns the assembly accession, for example GCF_000005845.2.
func (r Record) Accession() string {
	return r.field(colAccession)
}

// TaxonID returns the taxon id of the assembly.
func (r Record) TaxonID() (int, error) {
	return strconv.Atoi(r.field(colTaxonID))
}

// Level returns the assembly level, for example "Complete Genome". The
// value is not trimmed, so it has to match a level exactly.
func (r Record) Level() string {
	if colLevel >= len(r.fields) {
		return ""
	}
	return r.fields[colLevel]
}

// FTPPath returns the base location of assembly files or NoLocation.
func (r Record) FTPPath() string {
	return r.field(colFTPPath)
}

// HasLocation reports whether the assembly has downloadable files.
func (r Record) HasLocation() bool {
	p := r.FTPPath()
	return p != "" && p != NoLocation
}

func (r Record) field(i int) string {
	if i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}
