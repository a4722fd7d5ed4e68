package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/errors"
	"github.com/indigo-web/rawfetch/fetch"
	"github.com/indigo-web/rawfetch/testutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newCache(t *testing.T, host string, port uint16) *Cache {
	cfg := config.Default()
	cfg.Fetch.Host = host
	cfg.Fetch.Port = port
	cfg.Fetch.CacheDir = filepath.Join(t.TempDir(), "cache")
	logger := zaptest.NewLogger(t)

	return New(fetch.New(fetch.Options{Config: cfg, Logger: logger}), logger)
}

func requireExecutable(t *testing.T, path string) {
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o111), info.Mode().Perm()&0o111, "mode %s", info.Mode())
}

func requireNoEntries(t *testing.T, dir string) {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestEnsure(t *testing.T) {
	t.Run("download once", func(t *testing.T) {
		srv := testutils.Serve(t, []byte("HTTP/1.1 200 OK\r\nContent-Length: 6\r\n\r\n#!/bin"), []byte("\n"))
		c := newCache(t, srv.Host, srv.Port)

		report, err := c.Ensure("v2")
		require.NoError(t, err)
		require.False(t, report.Cached)
		require.Equal(t, c.Path("v2"), report.Output)
		requireExecutable(t, c.Path("v2"))

		data, err := os.ReadFile(c.Path("v2"))
		require.NoError(t, err)
		require.Equal(t, "#!/bin\n", string(data))

		report, err = c.Ensure("v2")
		require.NoError(t, err)
		require.True(t, report.Cached)
		require.Equal(t, "/demos/samples/v2", report.Path)

		again, err := os.ReadFile(c.Path("v2"))
		require.NoError(t, err)
		require.Equal(t, data, again)

		require.Len(t, srv.Requests(), 1)
		require.Contains(t, srv.Requests()[0], "GET /demos/samples/v2 HTTP/1.1\r\n")
	})

	t.Run("existing file is left untouched", func(t *testing.T) {
		srv := testutils.Serve(t, []byte("X\r\n\r\nnew"))
		c := newCache(t, srv.Host, srv.Port)
		require.NoError(t, os.MkdirAll(c.cfg.Fetch.CacheDir, 0o755))
		require.NoError(t, os.WriteFile(c.Path("v1"), []byte("old"), 0o600))

		report, err := c.Ensure("v1")
		require.NoError(t, err)
		require.True(t, report.Cached)
		require.Empty(t, srv.Requests())

		info, err := os.Stat(c.Path("v1"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("creates cache dir", func(t *testing.T) {
		srv := testutils.Serve(t, []byte("X\r\n\r\nbin"))
		c := newCache(t, srv.Host, srv.Port)
		c.cfg.Fetch.CacheDir = filepath.Join(c.cfg.Fetch.CacheDir, "nested", "deeper")

		_, err := c.Ensure("v3")
		require.NoError(t, err)
		requireExecutable(t, filepath.Join(c.cfg.Fetch.CacheDir, "v3"))
	})

	t.Run("not marked executable", func(t *testing.T) {
		srv := testutils.Serve(t, []byte("X\r\n\r\ndata"))
		c := newCache(t, srv.Host, srv.Port)
		c.cfg.Fetch.MarkExecutable = false

		_, err := c.Ensure("v4")
		require.NoError(t, err)
		info, err := os.Stat(c.Path("v4"))
		require.NoError(t, err)
		require.Zero(t, info.Mode().Perm()&0o111)
	})

	t.Run("failed download is retried", func(t *testing.T) {
		c := newCache(t, "127.0.0.1", testutils.FreePort(t))
		_, err := c.Ensure("v5")
		require.ErrorIs(t, err, errors.ErrConnect)

		_, err = os.Stat(c.Path("v5"))
		require.True(t, os.IsNotExist(err))

		srv := testutils.Serve(t, []byte("X\r\n\r\nfive"))
		c.cfg.Fetch.Port = srv.Port
		report, err := c.Ensure("v5")
		require.NoError(t, err)
		require.False(t, report.Cached)
		require.Len(t, srv.Requests(), 1)
	})

	t.Run("failed finalizing is retried", func(t *testing.T) {
		srv := testutils.Serve(t, []byte("X\r\n\r\nsix"))
		c := newCache(t, srv.Host, srv.Port)
		c.finalize = func(path string) error {
			return fmt.Errorf("%w: read-only file system", errors.ErrFinalize)
		}

		_, err := c.Ensure("v6")
		require.ErrorIs(t, err, errors.ErrFinalize)
		_, err = os.Stat(c.Path("v6"))
		require.True(t, os.IsNotExist(err))
		requireNoEntries(t, c.cfg.Fetch.CacheDir)

		c.finalize = MarkExecutable
		report, err := c.Ensure("v6")
		require.NoError(t, err)
		require.False(t, report.Cached)
		requireExecutable(t, c.Path("v6"))
		require.Len(t, srv.Requests(), 2)
	})

	t.Run("bad versions", func(t *testing.T) {
		c := newCache(t, "127.0.0.1", 1)

		for _, version := range []string{"", ".", "..", "../etc", "a/b", `a\b`, "a\x00b"} {
			_, err := c.Ensure(version)
			require.ErrorIs(t, err, errors.ErrBadVersion, "version %q", version)
		}
	})
}

func TestPaths(t *testing.T) {
	c := newCache(t, "127.0.0.1", 1)
	c.cfg.Fetch.CacheDir = "/tmp"
	require.Equal(t, "/tmp/v2", c.Path("v2"))
	require.Equal(t, "/demos/samples/v2", c.RemotePath("v2"))
}

func TestMarkExecutable(t *testing.T) {
	t.Run("keeps other bits", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bin")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		require.NoError(t, os.Chmod(path, 0o640))
		require.NoError(t, MarkExecutable(path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o751), info.Mode().Perm())
	})

	t.Run("missing file", func(t *testing.T) {
		err := MarkExecutable(filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, errors.ErrFinalize)
	})
}
