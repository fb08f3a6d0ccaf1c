package catalog

import (
	"maps"
	"slices"
	"strings"
)

// FileType is a kind of assembly file available for download.
type FileType string

const (
	// GBFF is the full GenBank flat file record.
	GBFF FileType = "gbff"
	// FNA is the nucleotide sequence in FASTA format.
	FNA FileType = "fna"
	// FAA is the translated protein sequence in FASTA format.
	FAA FileType = "faa"
	// GFF is the feature annotation.
	GFF FileType = "gff"
)

var suffixes = map[FileType]string{
	GBFF: "_genomic.gbff.gz",
	FNA:  "_genomic.fna.gz",
	FAA:  "_protein.faa.gz",
	GFF:  "_genomic.gff.gz",
}

// FileTypes returns all supported file types, sorted.
func FileTypes() []FileType {
	return slices.Sorted(maps.Keys(suffixes))
}

// ParseFileType converts a string to a FileType. Unknown values return
// UnknownFileTypeError.
func ParseFileType(s string) (FileType, error) {
	ft := FileType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := suffixes[ft]; !ok {
		return "", UnknownFileTypeError(s, FileTypes())
	}
	return ft, nil
}

// Suffix returns the file name suffix of the file type.
func (ft FileType) Suffix() string {
	return suffixes[ft]
}

// TargetURL builds a download location from an assembly base location:
// base + "/" + last segment of base + suffix.
//
//	https://host/genomes/ASM123 -> https://host/genomes/ASM123/ASM123_genomic.fna.gz
func TargetURL(base string, ft FileType) string {
	base = strings.TrimRight(base, "/")
	name := base[strings.LastIndex(base, "/")+1:]
	return base + "/" + name + ft.Suffix()
}
