package iogenomes

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// CatalogReadError is returned when a cached assembly catalog cannot be
// read to the end.
func CatalogReadError(path string, err error) error {
	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  "Cannot read assembly catalog <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read catalog %s: %w", path, err),
	}
}

// DownloadsFailedError is returned when some of the selected assemblies
// could not be downloaded.
func DownloadsFailedError(failed, total int) error {
	msg := `Failed downloads: <em>%d</em> of %d.
   See the log file for details, run the command again to retry.`

	plural := "s"
	if failed == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.DownloadsFailedError,
		Msg:  msg,
		Vars: []any{failed, total},
		Err:  fmt.Errorf("%d download%s of %d failed", failed, plural, total),
	}
}

// CancelledError is returned when a run is interrupted.
func CancelledError(err error) error {
	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  "Operation was cancelled",
		Err:  fmt.Errorf("run cancelled: %w", err),
	}
}
