package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// CreateLogFileError is returned when the log file cannot be opened for
// appending.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

<em>How to fix:</em>
  Set <em>log.destination</em> to stderr in config.yaml
  or use GNGENOMES_LOG_DESTINATION=stderr`

	pc, _, _, _ := runtime.Caller(1)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: []any{path},
		Err: fmt.Errorf("from %s: cannot open log file %s: %w",
			runtime.FuncForPC(pc).Name(), path, err),
	}
}
