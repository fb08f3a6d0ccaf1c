package iogenomes

import (
	"context"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/internal/iotaxdump"
	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/names"
)

// Lineage implements gngenomes.GNgenomes. Resolution problems that still
// leave a known lineage are reported in the result instead of an error.
func (g *genomes) Lineage(
	ctx context.Context,
	taxonID int,
) (*gngenomes.LineageReport, error) {
	tree, err := g.loadTree(ctx)
	if err != nil {
		return nil, err
	}

	if !tree.Contains(taxonID) {
		return nil, branch.TaxonNotFoundError(taxonID)
	}

	res := &gngenomes.LineageReport{TaxonID: taxonID}
	br, _, err := g.resolver().Resolve(tree, taxonID)
	if err == nil {
		res.Branch = &br
	} else {
		res.BranchError = errorText(err)
	}

	lineage := tree.Lineage(taxonID)
	sciNames, err := g.scientificNames(lineage)
	if err != nil {
		return nil, err
	}

	res.Name = sciNames[taxonID]
	res.Lineage = make([]gngenomes.Taxon, len(lineage))
	for i, id := range lineage {
		res.Lineage[i] = gngenomes.Taxon{TaxonID: id, Name: sciNames[id]}
	}
	return res, nil
}

// Find implements gngenomes.GNgenomes.
func (g *genomes) Find(
	ctx context.Context,
	name string,
) ([]names.Match, error) {
	if err := g.prepareTaxdump(ctx); err != nil {
		return nil, err
	}

	path := g.taxdumpPath(iotaxdump.NamesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := names.NewFinder().Find(f, name)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return res, nil
}

func (g *genomes) scientificNames(ids []int) (map[int]string, error) {
	path := g.taxdumpPath(iotaxdump.NamesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := names.ScientificNames(f, ids)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return res, nil
}

// errorText returns the plain description of an error.
func errorText(err error) string {
	if gnErr, ok := err.(*gn.Error); ok && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
