package fetch

import (
	"fmt"
	"os"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/rawfetch/errors"
)

// sink is a file being downloaded. It is written under a temporary name next to the
// target and renamed on commit, so half-downloaded files are never observed under
// the target name.
type sink struct {
	file      *os.File
	tmp       string
	target    string
	committed bool
}

func newSink(target string) (*sink, error) {
	tmp := target + "." + uniuri.NewLen(8) + ".part"

	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrSink, err)
	}

	return &sink{
		file:   file,
		tmp:    tmp,
		target: target,
	}, nil
}

func (s *sink) Write(b []byte) (int, error) {
	return s.file.Write(b)
}

// Commit moves the file under its target name.
func (s *sink) Commit() error {
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrSink, err)
	}

	if err := os.Rename(s.tmp, s.target); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrSink, err)
	}

	s.committed = true
	return nil
}

// Discard removes the temporary file unless it was committed. Safe to call multiple times.
func (s *sink) Discard() {
	if s.committed {
		return
	}

	_ = s.file.Close()
	_ = os.Remove(s.tmp)
}
