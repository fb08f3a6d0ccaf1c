package iofetch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// FetchError is returned when a remote resource cannot be received.
func FetchError(url string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.FetchError,
		Msg:  "Cannot download <em>%s</em>",
		Vars: []any{url},
		Err:  fmt.Errorf("from %s: cannot fetch %s: %w", fn, url, err),
	}
}

// SaveFileError is returned when a received resource cannot be stored.
func SaveFileError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.SaveFileError,
		Msg:  "Cannot save <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: cannot save %s: %w", fn, path, err),
	}
}
