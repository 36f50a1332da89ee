// Package sizes adds up the bytes held by a set of paths.
package sizes

import (
	"fmt"
	"os"

	"github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// Total returns the combined size of paths. Directories are summed
// recursively; symlinks and other special files count as zero and are never
// followed. Paths that cannot be measured are reported in the returned error
// while the rest are still counted.
func Total(fs afero.Fs, paths []string) (uint64, error) {
	var total uint64
	var errs error

	for _, path := range paths {
		n, err := Path(fs, path)
		total += n
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return total, errs
}

// Path returns the size of a single file or directory tree.
func Path(fs afero.Fs, path string) (uint64, error) {
	info, err := lstat(fs, path)
	if err != nil {
		return 0, fmt.Errorf("size of %s: %w", path, err)
	}

	switch {
	case info.Mode().IsRegular():
		return uint64(info.Size()), nil
	case info.IsDir():
		return dirSize(fs, path)
	default:
		return 0, nil
	}
}

func dirSize(fs afero.Fs, root string) (uint64, error) {
	var total uint64
	var errs error

	walkErr := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("size of %s: %w", path, err))
			return nil
		}
		if info.Mode().IsRegular() {
			total += uint64(info.Size())
		}
		return nil
	})
	if walkErr != nil {
		errs = multierror.Append(errs, walkErr)
	}
	return total, errs
}

// Human formats bytes with binary units, e.g. "1.5MiB".
func Human(bytes uint64) string {
	return units.BytesSize(float64(bytes))
}

// MegaBytes converts bytes to MiB.
func MegaBytes(bytes uint64) float64 {
	return float64(bytes) / units.MiB
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lfs, ok := fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
