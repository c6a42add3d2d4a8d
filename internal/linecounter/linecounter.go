// Package linecounter sums line counts over files, directory trees and
// ordered lists of roots. Traversal is sequential and stops at the first
// I/O error; only undecodable bytes are tolerated.
package linecounter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/IgorBayerl/linecount/internal/filereader"
	"github.com/IgorBayerl/linecount/internal/filesystem"
	"github.com/IgorBayerl/linecount/internal/rootconfig"
)

var (
	// ErrNotRegular is returned for files that are neither regular files nor
	// directories (FIFOs, sockets, devices). They are never opened.
	ErrNotRegular = errors.New("not a regular file")
	// ErrNotDirectory is returned when a directory root names something else.
	ErrNotDirectory = errors.New("not a directory")
)

// RootCount is the contribution of one configured root.
type RootCount struct {
	Root  rootconfig.Root
	Lines int
	Files int
}

// Summary holds the per-root counts of a run, in configuration order.
type Summary struct {
	Roots []RootCount
	Total int
}

// Files returns the number of files counted across all roots.
func (s *Summary) Files() int {
	files := 0
	for _, rc := range s.Roots {
		files += rc.Files
	}
	return files
}

// Counter counts lines through a Filesystem.
type Counter struct {
	fs     filesystem.Filesystem
	policy filereader.DecodePolicy
	logger *slog.Logger
}

// NewCounter creates a Counter. A nil fsys reads the host file system and a
// nil logger discards all records.
func NewCounter(fsys filesystem.Filesystem, policy filereader.DecodePolicy, logger *slog.Logger) *Counter {
	if fsys == nil {
		fsys = filesystem.DefaultFS{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Counter{fs: fsys, policy: policy, logger: logger}
}

// tally accumulates lines and the number of files they came from.
type tally struct {
	lines int
	files int
}

func (t *tally) add(o tally) {
	t.lines += o.lines
	t.files += o.files
}

// CountFile returns the number of lines in the file at path. Symbolic links
// are followed. Anything that is not a regular file is rejected with
// ErrNotRegular.
func (c *Counter) CountFile(path string) (int, error) {
	t, err := c.countFile(path)
	return t.lines, err
}

// CountTree returns the number of lines in all files under dir.
func (c *Counter) CountTree(dir string) (int, error) {
	t, err := c.countTree(dir)
	return t.lines, err
}

// CountRoot dispatches on the root kind.
func (c *Counter) CountRoot(root rootconfig.Root) (int, error) {
	t, err := c.countRoot(root)
	return t.lines, err
}

// CountTotal counts every root in order. The first error aborts the run and
// no partial summary is returned.
func (c *Counter) CountTotal(roots []rootconfig.Root) (*Summary, error) {
	summary := &Summary{Roots: make([]RootCount, 0, len(roots))}
	for _, root := range roots {
		t, err := c.countRoot(root)
		if err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", root, err)
		}
		c.logger.Info("Counted root.", "root", root.Path, "kind", root.Kind.String(), "files", t.files, "lines", t.lines)
		summary.Roots = append(summary.Roots, RootCount{Root: root, Lines: t.lines, Files: t.files})
		summary.Total += t.lines
	}
	return summary, nil
}

func (c *Counter) countRoot(root rootconfig.Root) (tally, error) {
	switch root.Kind {
	case rootconfig.Directory:
		return c.countTree(root.Path)
	case rootconfig.File:
		return c.countFile(root.Path)
	default:
		return tally{}, fmt.Errorf("unknown root kind %d for %s", int(root.Kind), root.Path)
	}
}

func (c *Counter) countFile(path string) (tally, error) {
	info, err := c.fs.Stat(path)
	if err != nil {
		return tally{}, err
	}
	if !info.Mode().IsRegular() {
		return tally{}, fmt.Errorf("cannot count %s (mode %s): %w", path, info.Mode(), ErrNotRegular)
	}
	return c.countRegular(path)
}

func (c *Counter) countRegular(path string) (tally, error) {
	lines, err := filereader.CountLinesInFile(c.fs, path, c.policy)
	if err != nil {
		return tally{}, err
	}
	c.logger.Debug("Counted file.", "file", path, "lines", lines)
	return tally{lines: lines, files: 1}, nil
}

func (c *Counter) countTree(dir string) (tally, error) {
	info, err := c.fs.Stat(dir)
	if err != nil {
		return tally{}, err
	}
	if !info.IsDir() {
		return tally{}, fmt.Errorf("cannot walk %s: %w", dir, ErrNotDirectory)
	}
	return c.walk(dir)
}

// walk visits dir depth-first. Symbolic links to directories are not
// descended into; symbolic links to files are counted through the link.
func (c *Counter) walk(dir string) (tally, error) {
	entries, err := c.fs.ReadDir(dir)
	if err != nil {
		return tally{}, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var total tally
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		var t tally
		switch mode := entry.Type(); {
		case mode.IsDir():
			t, err = c.walk(path)
		case mode&fs.ModeSymlink != 0:
			target, statErr := c.fs.Stat(path)
			if statErr != nil {
				return tally{}, statErr
			}
			if target.IsDir() {
				c.logger.Debug("Skipping symlinked directory.", "path", path)
				continue
			}
			t, err = c.countFile(path)
		case mode.IsRegular():
			t, err = c.countRegular(path)
		default:
			t, err = c.countFile(path)
		}
		if err != nil {
			return tally{}, err
		}
		total.add(t)
	}
	return total, nil
}
