package filesystem

import (
	"io"
	"io/fs"
	"os"
)

// Filesystem is the slice of the host file system the line counter reads
// through. Tests substitute mocks to simulate entries the real disk cannot
// produce portably, such as FIFOs or files vanishing mid-walk.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Open(name string) (io.ReadCloser, error)
}

// DefaultFS implements the Filesystem interface using the standard `os` package.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir returns the entries of name sorted by file name.
func (DefaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (DefaultFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}
