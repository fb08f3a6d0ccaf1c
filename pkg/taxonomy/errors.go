package taxonomy

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// InvalidTaxonIDError is returned when a taxon id is not a positive
// integer.
func InvalidTaxonIDError(s string, err error) error {
	msg := `<em>%s</em> is not a valid taxon id

<em>How to fix:</em>
  Use a positive NCBI taxon id, for example 562 for Escherichia coli`

	return &gn.Error{
		Code: errcode.InvalidTaxonIDError,
		Msg:  msg,
		Vars: []any{s},
		Err:  fmt.Errorf("invalid taxon id '%s': %w", s, err),
	}
}
