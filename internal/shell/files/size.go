// Package files reads file metadata from a filesystem.
package files

import (
	"io/fs"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/artpar/helpers/internal/core/size"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnreadable is returned when a path cannot be stat'ed.
	ErrUnreadable = errors.New("file is missing or unreadable")
)

// =============================================================================
// Filesystem
// =============================================================================

// Stater returns file information for a path. fs.StatFS values such as
// os.DirFS and fstest.MapFS satisfy it.
type Stater interface {
	Stat(name string) (fs.FileInfo, error)
}

// OS stats paths on the host filesystem. Unlike os.DirFS it accepts
// absolute and relative paths alike.
type OS struct{}

// Stat implements Stater.
func (OS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// =============================================================================
// Size
// =============================================================================

// Size returns the size in bytes of the file at path.
// A nil fsys uses the host filesystem.
func Size(fsys Stater, path string) (int64, error) {
	if fsys == nil {
		fsys = OS{}
	}
	info, err := fsys.Stat(path)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "stat %s", path), ErrUnreadable)
	}
	return info.Size(), nil
}

// FormattedSize returns the size of the file at path as "1.50 KB".
func FormattedSize(fsys Stater, path string) (string, error) {
	n, err := Size(fsys, path)
	if err != nil {
		return "", err
	}
	return size.Format(n), nil
}
