package iogenomes

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/pkg/catalog"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"golang.org/x/sync/errgroup"
)

// Download implements gngenomes.GNgenomes.
func (g *genomes) Download(
	ctx context.Context,
	taxonID int,
) (*gngenomes.Summary, error) {
	startTime := time.Now()
	slog.Info("Starting download", "taxon_id", taxonID)

	tree, err := g.loadTree(ctx)
	if err != nil {
		return nil, err
	}

	br, lineage, err := g.resolver().Resolve(tree, taxonID)
	if err != nil {
		slog.Error("Cannot resolve branch",
			"taxon_id", taxonID,
			"lineage", lineage,
			"error", err,
		)
		return nil, err
	}
	slog.Info("Branch is resolved",
		"taxon_id", taxonID,
		"branch", br.Name,
		"lineage", lineage,
	)

	catPath, err := g.prepareCatalog(ctx, br)
	if err != nil {
		return nil, err
	}

	res := &gngenomes.Summary{
		TaxonID: taxonID,
		Branch:  br,
		DryRun:  g.cfg.Download.DryRun,
	}
	err = g.dispatch(ctx, tree, catPath, res)
	res.Duration = time.Since(startTime)
	g.report(res)
	if err != nil {
		return res, err
	}

	if res.Failed > 0 {
		return res, DownloadsFailedError(res.Failed, res.Accepted)
	}
	return res, nil
}

// dispatch streams the catalog and hands every accepted record to a pool
// of workers. Workers never return errors, so one failed transfer does not
// stop the others.
func (g *genomes) dispatch(
	ctx context.Context,
	tree *taxonomy.Tree,
	catPath string,
	res *gngenomes.Summary,
) error {
	f, err := os.Open(catPath)
	if err != nil {
		return iofs.ReadFileError(catPath, err)
	}
	defer f.Close()

	dl := g.cfg.Download
	if !dl.DryRun {
		if err = gnsys.MakeDir(dl.OutputDir); err != nil {
			return iofs.CreateDirError(dl.OutputDir, err)
		}
	}

	filter := catalog.NewFilter(
		tree, res.TaxonID, catalog.OptAllLevels(dl.AllLevels),
	)

	var downloaded, upToDate, failed atomic.Int64
	var bar *pb.ProgressBar
	if !dl.DryRun {
		bar = newProgressBar(0, "assemblies")
	}

	var eg errgroup.Group
	eg.SetLimit(g.cfg.JobsNumber)
	locks := newTargetLocks()

	var readErr error
	for rec, err := range filter.Records(f) {
		if err != nil {
			readErr = CatalogReadError(catPath, err)
			break
		}
		if ctx.Err() != nil {
			break
		}

		res.Accepted++
		url := catalog.TargetURL(rec.FTPPath(), dl.FileType)
		if dl.DryRun {
			fmt.Fprintln(g.out, url)
			continue
		}

		target := filepath.Join(dl.OutputDir, path.Base(url))
		accession := rec.Accession()
		bar.SetTotal(int64(res.Accepted))

		// blocks while all workers are busy
		eg.Go(func() error {
			defer bar.Increment()

			// repeated catalog rows share a target
			unlock := locks.lock(target)
			status, err := g.fetcher.Fetch(ctx, url, target)
			unlock()
			if err != nil {
				failed.Add(1)
				slog.Error("Cannot download assembly",
					"accession", accession,
					"url", url,
					"error", err,
				)
				return nil
			}

			if status == gngenomes.UpToDate {
				upToDate.Add(1)
			} else {
				downloaded.Add(1)
			}
			return nil
		})
	}

	_ = eg.Wait()
	if bar != nil {
		bar.Finish()
	}

	res.Catalog = filter.Stats()
	res.Downloaded = int(downloaded.Load())
	res.UpToDate = int(upToDate.Load())
	res.Failed = int(failed.Load())

	if readErr != nil {
		return readErr
	}
	if ctx.Err() != nil {
		return CancelledError(ctx.Err())
	}
	return nil
}

func (g *genomes) report(s *gngenomes.Summary) {
	elapsed := gnfmt.TimeString(s.Duration.Seconds())
	slog.Info("Download complete",
		"taxon_id", s.TaxonID,
		"branch", s.Branch.Name,
		"catalog_rows", s.Catalog.Rows,
		"accepted", s.Accepted,
		"downloaded", s.Downloaded,
		"up_to_date", s.UpToDate,
		"failed", s.Failed,
		"dry_run", s.DryRun,
		"duration", elapsed,
	)

	if s.DryRun {
		gn.Info(
			"Selected <em>%s</em> assemblies from <em>%s</em> catalog rows",
			humanize.Comma(int64(s.Accepted)),
			humanize.Comma(int64(s.Catalog.Rows)),
		)
		return
	}

	gn.Info(`Download complete
Assemblies downloaded: %s, up to date: %s, failed: %s, total: %s.
Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(s.Downloaded)),
		humanize.Comma(int64(s.UpToDate)),
		humanize.Comma(int64(s.Failed)),
		humanize.Comma(int64(s.Accepted)),
		elapsed,
	)
}

// targetLocks serializes transfers that write to the same file.
type targetLocks struct {
	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

func newTargetLocks() *targetLocks {
	return &targetLocks{paths: make(map[string]*sync.Mutex)}
}

// lock blocks until no other transfer writes to path and returns the
// function that releases it.
func (l *targetLocks) lock(path string) func() {
	l.mu.Lock()
	m, ok := l.paths[path]
	if !ok {
		m = &sync.Mutex{}
		l.paths[path] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// newProgressBar creates a new progress bar with consistent
// settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix+" ")
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
