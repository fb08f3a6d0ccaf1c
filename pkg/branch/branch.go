// Package branch maps a taxon to one of the top-level branches of the
// assembly catalogs (Bacteria, Archaea, Viruses, Fungi...).
//
// A branch is found by taking the first lineage element below the root and
// looking it up in a Table. Grouping nodes that are never catalog keys are
// handled by a declarative list of Rules, so adding a new top-level domain
// or a new grouping node is a change of data, not of code.
package branch

import (
	"log/slog"

	"github.com/gnames/gngenomes/pkg/taxonomy"
)

const (
	// CellularOrganismsID is the NCBI grouping node "cellular organisms".
	CellularOrganismsID = 131567
	// EukaryotaID is the NCBI node "Eukaryota".
	EukaryotaID = 2759

	BacteriaID = 2
	ArchaeaID  = 2157
	VirusesID  = 10239
	// FungiID is the catalog key of Fungi. It differs from the taxonomy
	// node the Fungi lineage passes through at the branch level.
	FungiID = 4751
)

// Branch is a top-level catalog domain.
type Branch struct {
	// Name is a short label used for cache files and messages.
	Name string `mapstructure:"name" yaml:"name"`
	// TaxonID is the catalog key of the branch.
	TaxonID int `mapstructure:"taxon_id" yaml:"taxon_id"`
	// CatalogURL is the location of assembly_summary.txt for the branch.
	CatalogURL string `mapstructure:"catalog_url" yaml:"catalog_url"`
}

// Table maps catalog keys to branches.
type Table map[int]Branch

// NewTable creates a Table from a list of branches. For repeated taxon ids
// the last branch wins.
func NewTable(branches []Branch) Table {
	res := make(Table, len(branches))
	for _, v := range branches {
		res[v.TaxonID] = v
	}
	return res
}

// Rule rewrites a lineage candidate before it is looked up in a Table.
type Rule struct {
	// Name identifies the rule in configuration and diagnostics.
	Name string
	// Match is the candidate id the rule applies to.
	Match int
	// Descend replaces the candidate with the next lineage element.
	Descend bool
	// RemapTo replaces the candidate with a different catalog key.
	RemapTo int
	// Enabled turns the rule on.
	Enabled bool
}

// DefaultRules returns the standard collapsing rules for the NCBI taxonomy.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "cellular-organisms",
			Match:   CellularOrganismsID,
			Descend: true,
			Enabled: true,
		},
		{
			Name:    "eukaryota-fungi",
			Match:   EukaryotaID,
			RemapTo: FungiID,
			Enabled: true,
		},
	}
}

// Resolver finds a Branch for a taxon.
type Resolver struct {
	table Table
	rules []Rule
}

// NewResolver creates a Resolver for the given table and rules.
func NewResolver(table Table, rules []Rule) *Resolver {
	return &Resolver{table: table, rules: rules}
}

// Resolve returns the branch of taxonID and its lineage. The lineage is
// returned for diagnostics also when an error happens after it was built.
func (r *Resolver) Resolve(
	tree *taxonomy.Tree,
	taxonID int,
) (Branch, []int, error) {
	var res Branch
	if taxonID == taxonomy.RootID || taxonID == CellularOrganismsID {
		return res, nil, CoarseTaxonError(taxonID)
	}

	if !tree.Contains(taxonID) {
		return res, nil, TaxonNotFoundError(taxonID)
	}

	lineage := tree.Lineage(taxonID)
	if !taxonomy.IsRooted(lineage) {
		return res, lineage, CorruptedTaxonomyError(taxonID, lineage)
	}

	if len(lineage) < 2 {
		return res, lineage, UnclassifiedTaxonError(taxonID, lineage)
	}

	idx := 1
	candidate := lineage[idx]
	for _, rule := range r.rules {
		if !rule.Enabled || candidate != rule.Match {
			continue
		}

		switch {
		case rule.Descend:
			idx++
			if idx >= len(lineage) {
				return res, lineage, UnclassifiedTaxonError(taxonID, lineage)
			}
			candidate = lineage[idx]
		case rule.RemapTo > 0:
			candidate = rule.RemapTo
		}
		slog.Debug("Branch rule applied",
			"rule", rule.Name,
			"taxon_id", taxonID,
			"candidate", candidate,
		)
	}

	res, ok := r.table[candidate]
	if !ok {
		return res, lineage, UnsupportedBranchError(taxonID, lineage)
	}

	return res, lineage, nil
}
