package iofetch_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofetch"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/errcode"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var content = []byte("LOCUS       NC_000913   4641652 bp    DNA     circular\n")

type server struct {
	*httptest.Server
	modTime  atomic.Value
	requests atomic.Int32
}

// newServer serves content with Last-Modified support.
func newServer(t *testing.T, modTime time.Time) *server {
	res := &server{}
	res.modTime.Store(modTime)
	mux := http.NewServeMux()
	mux.HandleFunc("/file.gbff.gz", func(w http.ResponseWriter, r *http.Request) {
		res.requests.Add(1)
		mt := res.modTime.Load().(time.Time)
		http.ServeContent(w, r, "file.gbff.gz", mt, bytes.NewReader(content))
	})
	// ignores If-Modified-Since
	mux.HandleFunc("/plain.txt", func(w http.ResponseWriter, r *http.Request) {
		res.requests.Add(1)
		mt := res.modTime.Load().(time.Time)
		w.Header().Set("Last-Modified", mt.UTC().Format(http.TimeFormat))
		w.Write(content)
	})
	res.Server = httptest.NewServer(mux)
	t.Cleanup(res.Close)
	return res
}

func newFetcher() gngenomes.Fetcher {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptRequestsPerSecond(100)})
	return iofetch.New(cfg)
}

func TestFetch(t *testing.T) {
	modTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := newServer(t, modTime)
	f := newFetcher()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "file.gbff.gz")
	url := srv.URL + "/file.gbff.gz"

	t.Run("downloads new file", func(t *testing.T) {
		status, err := f.Fetch(ctx, url, path)
		require.NoError(t, err)
		assert.Equal(t, gngenomes.Downloaded, status)

		res, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, content, res)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, modTime.Equal(info.ModTime()))

		_, err = os.Stat(path + ".part")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keeps up to date file", func(t *testing.T) {
		status, err := f.Fetch(ctx, url, path)
		require.NoError(t, err)
		assert.Equal(t, gngenomes.UpToDate, status)
	})

	t.Run("replaces outdated file", func(t *testing.T) {
		newer := modTime.Add(24 * time.Hour)
		srv.modTime.Store(newer)

		status, err := f.Fetch(ctx, url, path)
		require.NoError(t, err)
		assert.Equal(t, gngenomes.Downloaded, status)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, newer.Equal(info.ModTime()))
	})

	assert.Equal(t, int32(3), srv.requests.Load())
}

func TestFetchNoConditionalSupport(t *testing.T) {
	modTime := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	srv := newServer(t, modTime)
	f := newFetcher()
	path := filepath.Join(t.TempDir(), "plain.txt")
	url := srv.URL + "/plain.txt"

	status, err := f.Fetch(context.Background(), url, path)
	require.NoError(t, err)
	assert.Equal(t, gngenomes.Downloaded, status)

	status, err = f.Fetch(context.Background(), url, path)
	require.NoError(t, err)
	assert.Equal(t, gngenomes.UpToDate, status)
}

func TestFetchProgress(t *testing.T) {
	srv := newServer(t, time.Now())
	f := newFetcher()
	path := filepath.Join(t.TempDir(), "file.gbff.gz")

	ctx := gngenomes.WithProgress(context.Background(), "catalog")
	status, err := f.Fetch(ctx, srv.URL+"/file.gbff.gz", path)
	require.NoError(t, err)
	assert.Equal(t, gngenomes.Downloaded, status)

	res, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, res)
}

func TestFetchErrors(t *testing.T) {
	srv := newServer(t, time.Now())
	f := newFetcher()
	dir := t.TempDir()

	t.Run("missing resource", func(t *testing.T) {
		path := filepath.Join(dir, "missing.gbff.gz")
		_, err := f.Fetch(context.Background(), srv.URL+"/missing", path)
		require.Error(t, err)

		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.FetchError, gnErr.Code)
		assert.Contains(t, gnErr.Err.Error(), "404")

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(dir, "cancelled.gbff.gz")
		_, err := f.Fetch(ctx, srv.URL+"/file.gbff.gz", path)
		require.Error(t, err)
		assert.ErrorIs(t, err.(*gn.Error).Err, context.Canceled)

		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("bad url", func(t *testing.T) {
		path := filepath.Join(dir, "bad")
		_, err := f.Fetch(context.Background(), "://bad", path)
		require.Error(t, err)
		assert.Equal(t, errcode.FetchError, err.(*gn.Error).Code)
	})
}

func TestFetchStatusString(t *testing.T) {
	assert.Equal(t, "downloaded", gngenomes.Downloaded.String())
	assert.Equal(t, "up to date", gngenomes.UpToDate.String())
}
