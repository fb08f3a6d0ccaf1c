package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// CreateDirError is returned when a config, cache or log directory
// cannot be made.
func CreateDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  "Cannot create directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: cannot create directory: %w", fn, err),
	}
}

// CopyFileError is returned when the default config.yaml cannot be
// written.
func CopyFileError(file string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  "Cannot write default configuration to <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: cannot copy file: %w", fn, err),
	}
}

// ReadFileError is returned when a file cannot be read or parsed.
func ReadFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  "Cannot read <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
