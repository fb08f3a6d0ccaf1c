package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	UnknownFileTypeError
	InvalidTaxonIDError
	CoarseTaxonError

	// Taxonomy errors
	TaxdumpMissingError
	TaxdumpReadError
	TaxonNotFoundError
	CorruptedTaxonomyError

	// Branch errors
	UnsupportedBranchError
	UnclassifiedTaxonError

	// Catalog errors
	CatalogReadError

	// Transfer errors
	FetchError
	SaveFileError
	DownloadsFailedError
	CancelledError
)
