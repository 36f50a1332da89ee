// Package remover deletes matched paths once the user has agreed to it.
package remover

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/harrison/node-module-cleaner/internal/confirm"
	"github.com/harrison/node-module-cleaner/internal/logger"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/harrison/node-module-cleaner/internal/sizes"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// Logger is the subset of the console logger the remover reports through.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// ErrNoConfirmer is returned when a real removal has nobody to ask.
var ErrNoConfirmer = errors.New("remover: no confirmer configured")

// progressWidth is the width of the debug progress bar.
const progressWidth = 20

// Remover deletes files and directories from FS.
type Remover struct {
	FS      afero.Fs
	Confirm confirm.Confirmer
	// DryRun reports what would be removed and stops before the prompt
	DryRun bool
	Log    Logger
}

// Remove sizes the targets, asks once for confirmation and then removes files
// followed by directories. A target is only removed if it still has the type
// it was matched with. Individual failures do not stop the pass; they are
// returned together once every target has been tried.
func (r *Remover) Remove(files, dirs []string) (models.RemovalResult, error) {
	start := time.Now()
	log := r.Log
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	result := models.RemovalResult{
		TargetFiles: len(files),
		TargetDirs:  len(dirs),
		DryRun:      r.DryRun,
	}

	all := make([]string, 0, len(files)+len(dirs))
	all = append(append(all, files...), dirs...)
	total, err := sizes.Total(r.FS, all)
	if err != nil {
		log.LogError(fmt.Sprintf("Failed to calculate total size: %v", err))
	}
	result.TargetBytes = total
	log.LogInfo(fmt.Sprintf("Total target size: %d bytes (%.2f MB)", total, sizes.MegaBytes(total)))
	log.LogInfo(fmt.Sprintf("Files: %d, Directories: %d", len(files), len(dirs)))

	if len(all) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	if r.DryRun {
		log.LogWarn("Dry run is ON. No files will be deleted.")
		for _, f := range files {
			log.LogDebug(fmt.Sprintf("Would remove file: %s", f))
		}
		for _, d := range dirs {
			log.LogDebug(fmt.Sprintf("Would remove directory: %s", d))
		}
		result.Duration = time.Since(start)
		return result, nil
	}

	if r.Confirm == nil {
		return result, ErrNoConfirmer
	}
	prompt := fmt.Sprintf("About to permanently remove %d files and %d directories (%s). Proceed?",
		len(files), len(dirs), sizes.Human(total))
	if !r.Confirm.Confirm(prompt) {
		log.LogWarn("User aborted deletion.")
		result.Aborted = true
		result.Duration = time.Since(start)
		return result, nil
	}

	p := newProgress(len(all), log)
	var errs *multierror.Error

	for _, f := range files {
		switch ok, err := r.removeIf(f, false); {
		case err != nil:
			log.LogError(fmt.Sprintf("Failed to remove file %s: %v", f, err))
			errs = multierror.Append(errs, err)
			result.Failed++
		case !ok:
			log.LogWarn(fmt.Sprintf("Not a regular file, skipped: %s", f))
			result.Skipped++
		default:
			log.LogInfo(fmt.Sprintf("Removed file: %s", f))
			result.RemovedFiles++
		}
		p.step()
	}

	for _, d := range dirs {
		switch ok, err := r.removeIf(d, true); {
		case err != nil:
			log.LogError(fmt.Sprintf("Failed to remove directory %s: %v", d, err))
			errs = multierror.Append(errs, err)
			result.Failed++
		case !ok:
			log.LogWarn(fmt.Sprintf("Not a directory, skipped: %s", d))
			result.Skipped++
		default:
			log.LogInfo(fmt.Sprintf("Removed directory: %s", d))
			result.RemovedDirs++
		}
		p.step()
	}

	result.Duration = time.Since(start)
	return result, errs.ErrorOrNil()
}

// removeIf removes path when it is still a regular file (dir false) or a
// directory (dir true). It reports false without error when the type no
// longer matches or the path is gone.
func (r *Remover) removeIf(path string, dir bool) (bool, error) {
	info, err := lstat(r.FS, path)
	if err != nil {
		return false, nil
	}

	m := info.Mode()
	switch {
	case dir && m.IsDir():
		if err := r.FS.RemoveAll(path); err != nil {
			return false, fmt.Errorf("remove directory %s: %w", path, err)
		}
	case !dir && m.IsRegular():
		if err := r.FS.Remove(path); err != nil {
			return false, fmt.Errorf("remove file %s: %w", path, err)
		}
	default:
		return false, nil
	}
	return true, nil
}

// progress logs a debug progress bar at every tenth of the work.
type progress struct {
	bar  *logger.ProgressBar
	log  Logger
	last int
}

func newProgress(total int, log Logger) *progress {
	bar := logger.NewProgressBar(total, progressWidth, false)
	bar.SetPrefix("Removing ")
	return &progress{bar: bar, log: log, last: -1}
}

func (p *progress) step() {
	p.bar.Increment()
	if decile := p.bar.Percentage() / 10; decile != p.last {
		p.last = decile
		p.log.LogDebug(p.bar.Render())
	}
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lfs, ok := fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}
