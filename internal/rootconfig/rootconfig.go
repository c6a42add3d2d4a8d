package rootconfig

import (
	"fmt"
	"path/filepath"

	"github.com/IgorBayerl/linecount/internal/filereader"
	"github.com/IgorBayerl/linecount/internal/logging"
)

// RootKind tells the counter how a root is measured.
type RootKind int

const (
	// Directory roots are walked recursively.
	Directory RootKind = iota
	// File roots are counted as a single file.
	File
)

func (k RootKind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return fmt.Sprintf("RootKind(%d)", int(k))
	}
}

// Root is one top-level path supplied as counting input.
type Root struct {
	Kind RootKind
	Path string
}

func (r Root) String() string {
	return r.Kind.String() + " " + r.Path
}

// DefaultRoots returns the fixed root list, relative to the base directory.
// A fresh slice is returned on every call.
func DefaultRoots() []Root {
	return []Root{
		{Kind: Directory, Path: "basic"},
		{Kind: Directory, Path: "auslander-parter"},
		{Kind: Directory, Path: "sefe"},
		{Kind: File, Path: "main.cpp"},
	}
}

// CountConfiguration defines the configuration of a counting run.
type CountConfiguration interface {
	BaseDirectory() string
	Roots() []Root
	DecodePolicy() filereader.DecodePolicy
	VerbosityLevel() logging.VerbosityLevel
	ShowBreakdown() bool
}

// Configuration is a concrete implementation of CountConfiguration.
type Configuration struct {
	BaseDir   string
	RootList  []Root
	Decode    filereader.DecodePolicy
	VLevel    logging.VerbosityLevel
	Breakdown bool
}

func (c *Configuration) BaseDirectory() string                  { return c.BaseDir }
func (c *Configuration) Roots() []Root                          { return c.RootList }
func (c *Configuration) DecodePolicy() filereader.DecodePolicy  { return c.Decode }
func (c *Configuration) VerbosityLevel() logging.VerbosityLevel { return c.VLevel }
func (c *Configuration) ShowBreakdown() bool                    { return c.Breakdown }

// NewConfiguration is a constructor for Configuration.
// An empty baseDir means the working directory; a nil roots list means DefaultRoots.
func NewConfiguration(
	baseDir string,
	roots []Root,
	decode filereader.DecodePolicy,
	verbosity logging.VerbosityLevel,
	breakdown bool,
) *Configuration {
	if baseDir == "" {
		baseDir = "."
	}
	if roots == nil {
		roots = DefaultRoots()
	}
	return &Configuration{
		BaseDir:   baseDir,
		RootList:  roots,
		Decode:    decode,
		VLevel:    verbosity,
		Breakdown: breakdown,
	}
}

// ResolvedRoots returns the configured roots with relative paths joined onto
// the base directory. Absolute root paths are kept as they are.
func ResolvedRoots(cfg CountConfiguration) []Root {
	roots := cfg.Roots()
	resolved := make([]Root, 0, len(roots))
	for _, r := range roots {
		path := r.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.BaseDirectory(), path)
		}
		resolved = append(resolved, Root{Kind: r.Kind, Path: path})
	}
	return resolved
}
