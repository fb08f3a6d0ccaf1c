package catalog

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// UnknownFileTypeError is returned for file types outside of the supported
// set.
func UnknownFileTypeError(s string, supported []FileType) error {
	vals := make([]string, len(supported))
	for i := range supported {
		vals[i] = "  * " + string(supported[i])
	}

	msg := `File type <em>%s</em> is not supported. Valid values are:
%s`

	return &gn.Error{
		Code: errcode.UnknownFileTypeError,
		Msg:  msg,
		Vars: []any{s, strings.Join(vals, "\n")},
		Err:  fmt.Errorf("unknown file type '%s'", s),
	}
}
