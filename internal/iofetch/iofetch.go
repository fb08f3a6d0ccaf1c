// Package iofetch downloads files over HTTP(S).
//
// Requests from all goroutines share one rate limiter. A file that is
// already on disk is re-fetched only when the server has a newer copy:
// the request carries If-Modified-Since and the local modification time
// is set from Last-Modified after every transfer.
package iofetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gnsys"
	"golang.org/x/time/rate"
)

// partSuffix marks files that are still being received.
const partSuffix = ".part"

type fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*fetcher)

// OptClient sets the HTTP client used for transfers.
func OptClient(c *http.Client) Option {
	return func(f *fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// New creates a Fetcher throttled to cfg.RequestsPerSecond new requests
// per second.
func New(cfg *config.Config, opts ...Option) gngenomes.Fetcher {
	rps := cfg.RequestsPerSecond
	res := &fetcher{
		// No overall timeout: some assembly files take minutes.
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Fetch implements gngenomes.Fetcher.
func (f *fetcher) Fetch(
	ctx context.Context,
	url, path string,
) (gngenomes.FetchStatus, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return gngenomes.Downloaded, FetchError(url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gngenomes.Downloaded, FetchError(url, err)
	}

	local, statErr := os.Stat(path)
	if statErr == nil {
		req.Header.Set(
			"If-Modified-Since",
			local.ModTime().UTC().Format(http.TimeFormat),
		)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return gngenomes.Downloaded, FetchError(url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotModified:
		slog.Debug("File is up to date", "url", url)
		return gngenomes.UpToDate, nil
	default:
		err = fmt.Errorf("unexpected status '%s'", resp.Status)
		return gngenomes.Downloaded, FetchError(url, err)
	}

	remoteTime, hasTime := lastModified(resp)

	// some servers ignore If-Modified-Since
	if statErr == nil && hasTime &&
		!remoteTime.After(local.ModTime()) &&
		resp.ContentLength == local.Size() {
		slog.Debug("File is up to date", "url", url)
		return gngenomes.UpToDate, nil
	}

	n, err := save(ctx, resp, path)
	if err != nil {
		return gngenomes.Downloaded, err
	}

	if hasTime {
		if err = os.Chtimes(path, remoteTime, remoteTime); err != nil {
			slog.Warn("Cannot set modification time", "path", path, "error", err)
		}
	}

	slog.Debug("File is downloaded",
		"url", url,
		"path", path,
		"size", humanize.Bytes(uint64(n)),
	)
	return gngenomes.Downloaded, nil
}

// save writes the response body to a temporary file next to path and
// renames it to path when the transfer is complete.
func save(ctx context.Context, resp *http.Response, path string) (int64, error) {
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return 0, SaveFileError(path, err)
	}

	tmp := path + partSuffix
	file, err := os.Create(tmp)
	if err != nil {
		return 0, SaveFileError(path, err)
	}

	var body io.Reader = resp.Body
	if label, ok := gngenomes.ProgressLabel(ctx); ok && resp.ContentLength > 0 {
		bar := newProgressBar(resp.ContentLength, label)
		defer bar.Finish()
		body = bar.NewProxyReader(resp.Body)
	}

	n, err := io.Copy(file, body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return 0, FetchError(resp.Request.URL.String(), err)
	}

	if err = os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return 0, SaveFileError(path, err)
	}
	return n, nil
}

func lastModified(resp *http.Response) (time.Time, bool) {
	s := resp.Header.Get("Last-Modified")
	if s == "" {
		return time.Time{}, false
	}
	res, err := http.ParseTime(s)
	if err != nil {
		return time.Time{}, false
	}
	return res, true
}

// newProgressBar creates a byte-counting progress bar.
func newProgressBar(total int64, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start64(total)
	bar.Set("prefix", prefix+" ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
