package iotaxdump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// TaxdumpMissingError is returned when required files are absent from the
// taxonomy dump.
func TaxdumpMissingError(path string, files []string) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TaxdumpMissingError,
		Msg:  "Taxonomy dump <em>%s</em> has no %v",
		Vars: []any{path, files},
		Err:  fmt.Errorf("from %s: files %v are missing in %s", fn, files, path),
	}
}

// TaxdumpReadError is returned when the taxonomy dump cannot be
// decompressed or read.
func TaxdumpReadError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.TaxdumpReadError,
		Msg:  "Cannot read taxonomy dump <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
