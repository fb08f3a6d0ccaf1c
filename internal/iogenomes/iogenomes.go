// Package iogenomes implements the GNgenomes interface. It connects the pure
// taxonomy, branch and catalog packages with the file system and the
// network: it keeps NCBI dumps and catalogs in the cache directory and saves
// assembly files to the output directory.
package iogenomes

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/internal/iotaxdump"
	"github.com/gnames/gngenomes/pkg/branch"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

type genomes struct {
	cfg     *config.Config
	fetcher gngenomes.Fetcher
	// out receives URLs of a dry run.
	out io.Writer
}

// Option configures the GNgenomes implementation.
type Option func(*genomes)

// OptOutput sets the writer for dry-run URLs, os.Stdout by default.
func OptOutput(w io.Writer) Option {
	return func(g *genomes) {
		if w != nil {
			g.out = w
		}
	}
}

// New creates GNgenomes that uses f for all transfers.
func New(
	cfg *config.Config,
	f gngenomes.Fetcher,
	opts ...Option,
) gngenomes.GNgenomes {
	res := &genomes{cfg: cfg, fetcher: f, out: os.Stdout}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (g *genomes) taxdumpPath(file string) string {
	return filepath.Join(config.TaxdumpDir(g.cfg.HomeDir), file)
}

// prepareTaxdump refreshes the cached taxonomy dump and extracts its files
// when the archive changed. A cached copy is used if the dump cannot be
// downloaded. An archive that cannot be extracted is removed.
func (g *genomes) prepareTaxdump(ctx context.Context) error {
	dir := config.TaxdumpDir(g.cfg.HomeDir)
	archive := g.taxdumpPath(iotaxdump.Archive)
	files := []string{iotaxdump.NodesFile, iotaxdump.NamesFile}

	extracted := true
	for _, v := range files {
		extracted = extracted && iofs.FileExists(g.taxdumpPath(v))
	}

	fctx := gngenomes.WithProgress(ctx, "taxdump")
	status, err := g.fetcher.Fetch(fctx, g.cfg.TaxdumpURL, archive)
	if ctx.Err() != nil {
		return CancelledError(ctx.Err())
	}
	if err != nil {
		if !extracted {
			return err
		}
		slog.Warn("Cannot update taxonomy dump, using cached files",
			"url", g.cfg.TaxdumpURL,
			"error", err,
		)
		gn.Warn("Cannot update taxonomy dump, using cached files")
		return nil
	}

	if status == gngenomes.UpToDate && extracted {
		return nil
	}

	gn.Info("Extracting taxonomy files to <em>%s</em>", dir)
	if err = iotaxdump.Extract(archive, dir, files...); err != nil {
		// the archive mtime already matches the server, without removal
		// the next run would skip extraction
		if rmErr := os.Remove(archive); rmErr != nil {
			slog.Warn("Cannot remove taxonomy dump", "path", archive, "error", rmErr)
		}
		return err
	}
	return nil
}

// loadTree builds the taxonomy tree from the cached nodes.dmp.
func (g *genomes) loadTree(ctx context.Context) (*taxonomy.Tree, error) {
	if err := g.prepareTaxdump(ctx); err != nil {
		return nil, err
	}

	path := g.taxdumpPath(iotaxdump.NodesFile)
	f, err := os.Open(path)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := taxonomy.New(f)
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	gn.Info("Taxonomy has <em>%s</em> taxa", humanize.Comma(int64(res.Len())))
	return res, nil
}

func (g *genomes) resolver() *branch.Resolver {
	return branch.NewResolver(g.cfg.BranchTable(), g.cfg.BranchRules())
}

// prepareCatalog refreshes the cached catalog of a branch and returns its
// path. A cached copy is used if the catalog cannot be downloaded.
func (g *genomes) prepareCatalog(
	ctx context.Context,
	br branch.Branch,
) (string, error) {
	res := filepath.Join(config.CatalogDir(g.cfg.HomeDir), br.Name+".txt")

	fctx := gngenomes.WithProgress(ctx, br.Name+" catalog")
	status, err := g.fetcher.Fetch(fctx, br.CatalogURL, res)
	if ctx.Err() != nil {
		return "", CancelledError(ctx.Err())
	}
	if err != nil {
		if !iofs.FileExists(res) {
			return "", err
		}
		slog.Warn("Cannot update assembly catalog, using cached file",
			"branch", br.Name,
			"url", br.CatalogURL,
			"error", err,
		)
		gn.Warn("Cannot update <em>%s</em> catalog, using cached file", br.Name)
		return res, nil
	}

	slog.Info("Assembly catalog is ready",
		"branch", br.Name,
		"path", res,
		"status", status.String(),
	)
	return res, nil
}
