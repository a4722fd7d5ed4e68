package cache

import (
	"fmt"
	"os"

	"github.com/indigo-web/rawfetch/errors"
)

const executable = 0o111

// MarkExecutable adds the executable bits for owner, group and others, keeping the rest
// of the permission bits.
func MarkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFinalize, err)
	}

	if err = os.Chmod(path, info.Mode().Perm()|executable); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFinalize, err)
	}

	return nil
}
