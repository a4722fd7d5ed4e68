// Package cache implements the "download once, make runnable" pattern: a version
// identifier is downloaded from the configured server into the cache directory, unless it
// is already there.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/rawfetch/config"
	"github.com/indigo-web/rawfetch/errors"
	"github.com/indigo-web/rawfetch/fetch"
	"go.uber.org/zap"
)

type Cache struct {
	fetcher  *fetch.Fetcher
	cfg      *config.Config
	logger   *zap.Logger
	finalize func(path string) error
}

func New(fetcher *fetch.Fetcher, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{
		fetcher:  fetcher,
		cfg:      fetcher.Config(),
		logger:   logger.Named("cache"),
		finalize: MarkExecutable,
	}
}

// Path returns where the version is stored locally.
func (c *Cache) Path(version string) string {
	return filepath.Join(c.cfg.Fetch.CacheDir, version)
}

// RemotePath returns the request path of the version.
func (c *Cache) RemotePath(version string) string {
	return c.cfg.Fetch.PathPrefix + version
}

// Ensure makes sure the version is present in the cache. If it is already there, nothing
// happens at all, the file is neither fetched again nor touched. Otherwise, it is downloaded
// and marked executable, if configured so. A file that couldn't be marked is removed, so
// the next call downloads it again.
//
// Ensure doesn't lock the cache directory, so two simultaneous first-time calls for the
// same version download it twice, the last one to finish wins.
func (c *Cache) Ensure(version string) (fetch.Report, error) {
	if err := validate(version); err != nil {
		return fetch.Report{}, err
	}

	if err := os.MkdirAll(c.cfg.Fetch.CacheDir, 0o777); err != nil {
		return fetch.Report{}, fmt.Errorf("%w: %w", errors.ErrSink, err)
	}

	path, remote := c.Path(version), c.RemotePath(version)

	switch _, err := os.Lstat(path); {
	case err == nil:
		c.logger.Info("already cached", zap.String("version", version), zap.String("output", path))

		return fetch.Report{
			Host:   c.cfg.Fetch.Host,
			Port:   c.cfg.Fetch.Port,
			Path:   remote,
			Output: path,
			Cached: true,
		}, nil
	case !os.IsNotExist(err):
		return fetch.Report{}, fmt.Errorf("%w: %w", errors.ErrSink, err)
	}

	report, err := c.fetcher.Fetch(remote, path)
	if err != nil {
		return report, err
	}

	if c.cfg.Fetch.MarkExecutable {
		if err = c.finalize(path); err != nil {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				c.logger.Warn("cannot remove unfinalized file", zap.String("output", path), zap.Error(rmErr))
			}

			return report, err
		}
	}

	return report, nil
}

func validate(version string) error {
	switch {
	case len(version) == 0:
		return fmt.Errorf("%w: empty", errors.ErrBadVersion)
	case version == "." || version == "..":
		return fmt.Errorf("%w: %q", errors.ErrBadVersion, version)
	case strings.ContainsAny(version, `/\`) || strings.ContainsRune(version, 0):
		return fmt.Errorf("%w: %q must not contain path separators", errors.ErrBadVersion, version)
	}

	return nil
}
