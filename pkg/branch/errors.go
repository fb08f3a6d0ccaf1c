package branch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/pkg/errcode"
)

// CoarseTaxonError is returned for taxa that contain several branches.
func CoarseTaxonError(taxonID int) error {
	msg := `Taxon <em>%d</em> is too broad to select a single catalog

<em>How to fix:</em>
  Use a taxon inside one branch, for example
  2 (Bacteria), 2157 (Archaea), 10239 (Viruses), 4751 (Fungi)`

	return &gn.Error{
		Code: errcode.CoarseTaxonError,
		Msg:  msg,
		Vars: []any{taxonID},
		Err:  fmt.Errorf("taxon %d spans several branches", taxonID),
	}
}

// TaxonNotFoundError is returned when the query taxon is not in the tree.
func TaxonNotFoundError(taxonID int) error {
	msg := `Taxon <em>%d</em> is not found in the taxonomy

<em>Possible causes:</em>
  - The taxon id is misspelled
  - The taxon was merged or deleted in the current taxonomy dump`

	return &gn.Error{
		Code: errcode.TaxonNotFoundError,
		Msg:  msg,
		Vars: []any{taxonID},
		Err:  fmt.Errorf("taxon %d is not in taxonomy", taxonID),
	}
}

// CorruptedTaxonomyError is returned when a lineage does not reach the root.
func CorruptedTaxonomyError(taxonID int, lineage []int) error {
	msg := `Taxonomy is corrupted: lineage of <em>%d</em> does not reach the root

<em>Partial lineage:</em> %v

<em>How to fix:</em>
  Remove the cached taxonomy dump and run the command again`

	return &gn.Error{
		Code: errcode.CorruptedTaxonomyError,
		Msg:  msg,
		Vars: []any{taxonID, lineage},
		Err:  fmt.Errorf("taxonomy corrupted, lineage %v", lineage),
	}
}

// UnclassifiedTaxonError is returned when a lineage ends before a branch
// level node.
func UnclassifiedTaxonError(taxonID int, lineage []int) error {
	msg := `Taxon <em>%d</em> is the universal root or entirely unclassified

<em>Lineage:</em> %v`

	return &gn.Error{
		Code: errcode.UnclassifiedTaxonError,
		Msg:  msg,
		Vars: []any{taxonID, lineage},
		Err:  fmt.Errorf("taxon %d has no branch level node", taxonID),
	}
}

// UnsupportedBranchError is returned when the branch level node of a
// lineage is not in the branch table.
func UnsupportedBranchError(taxonID int, lineage []int) error {
	msg := `Taxon <em>%d</em> does not belong to any supported branch

<em>Lineage:</em> %v

<em>How to fix:</em>
  Check <em>branches</em> in config.yaml`

	return &gn.Error{
		Code: errcode.UnsupportedBranchError,
		Msg:  msg,
		Vars: []any{taxonID, lineage},
		Err: fmt.Errorf(
			"taxon %d does not belong to any supported branch, lineage %v",
			taxonID, lineage,
		),
	}
}
