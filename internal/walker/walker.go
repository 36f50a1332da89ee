// Package walker finds node_modules directories beneath a root using a fixed
// pool of goroutines.
//
// Every walk owns its own skip set, result list and counters, so several walks
// may run in one process. Workers buffer the node_modules directories they find
// and publish them in batches; a published directory lands in the skip set
// before it lands in the result list, and is never descended into.
package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harrison/node-module-cleaner/internal/classify"
	"github.com/harrison/node-module-cleaner/internal/models"
	"github.com/scylladb/go-set/strset"
	"github.com/spf13/afero"
)

// NodeModules is the directory name the walker looks for.
const NodeModules = "node_modules"

const (
	// DefaultBatchSize is the number of hits a worker buffers before publishing
	DefaultBatchSize = 20
	// DefaultWorkers is used when the available parallelism cannot be detected
	DefaultWorkers = 4
)

// Logger is the subset of the console logger the walker reports through.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
}

// Options configures a Walker.
type Options struct {
	// Workers is the pool size (0 = available parallelism)
	Workers int
	// BatchSize is the per-worker hit buffer size (0 = DefaultBatchSize)
	BatchSize int
	// Classifier prunes administratively ignored paths
	Classifier classify.Classifier
}

// Walker traverses a filesystem looking for node_modules directories.
type Walker struct {
	fs        afero.Fs
	classify  classify.Classifier
	workers   int
	batchSize int
	log       Logger
}

// Result is the outcome of one walk.
type Result struct {
	Root      string
	Workers   int
	Locations []string
	Stats     models.WalkStats
	Elapsed   time.Duration
}

// Summary converts the result for the logger.
func (r *Result) Summary() models.WalkSummary {
	return models.WalkSummary{
		Root:      r.Root,
		Workers:   r.Workers,
		Stats:     r.Stats,
		Elapsed:   r.Elapsed,
		Locations: r.Locations,
	}
}

// New creates a Walker over fs. A nil log discards messages.
func New(fs afero.Fs, opts Options, log Logger) *Walker {
	workers := opts.Workers
	if workers <= 0 {
		workers = availableParallelism()
	}
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Walker{
		fs:        fs,
		classify:  opts.Classifier,
		workers:   workers,
		batchSize: batchSize,
		log:       log,
	}
}

// Workers returns the configured pool size.
func (w *Walker) Workers() int {
	return w.workers
}

func availableParallelism() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return DefaultWorkers
}

// Walk traverses root and returns every node_modules directory found beneath
// it. The walk cannot fail: unreadable entries are skipped.
func (w *Walker) Walk(root string) *Result {
	start := time.Now()
	root = filepath.Clean(root)

	if w.log != nil {
		w.log.LogInfo(fmt.Sprintf("Using %d workers for traversal starting from %q", w.workers, root))
	}

	s := &walk{
		fs:        w.fs,
		classify:  w.classify,
		batchSize: w.batchSize,
		skip:      strset.New(),
		queue:     newWorkQueue(),
	}

	if s.visitRoot(root) {
		var wg sync.WaitGroup
		for i := 0; i < w.workers; i++ {
			wg.Add(1)
			go s.work(&wg)
		}
		wg.Wait()
	}

	result := &Result{
		Root:      root,
		Workers:   w.workers,
		Locations: s.locations,
		Stats:     s.stats(),
		Elapsed:   time.Since(start),
	}
	if result.Locations == nil {
		result.Locations = []string{}
	}

	if w.log != nil {
		w.log.LogDebug(fmt.Sprintf("Walk of %q finished: %d entries, %d node_modules in %s",
			root, result.Stats.Entries(), result.Stats.NodeModules, result.Elapsed.Round(time.Millisecond)))
	}

	return result
}

// walk is the state shared by the workers of a single traversal.
type walk struct {
	fs        afero.Fs
	classify  classify.Classifier
	batchSize int
	queue     *workQueue

	// mu guards skip and locations
	mu        sync.RWMutex
	skip      *strset.Set
	locations []string

	files       atomic.Int64
	dirs        atomic.Int64
	nodeModules atomic.Int64
	ignored     atomic.Int64
}

func (s *walk) stats() models.WalkStats {
	return models.WalkStats{
		Files:       s.files.Load(),
		Dirs:        s.dirs.Load(),
		NodeModules: s.nodeModules.Load(),
		Ignored:     s.ignored.Load(),
	}
}

// visitRoot runs the entry pipeline on the root itself and reports whether the
// workers have anything to descend into.
func (s *walk) visitRoot(root string) bool {
	info, err := lstat(s.fs, root)
	if err != nil {
		return false
	}

	if s.classify.IsIgnored(root) {
		s.ignored.Add(1)
		return false
	}
	if !info.IsDir() {
		s.files.Add(1)
		return false
	}

	s.dirs.Add(1)
	if filepath.Base(root) == NodeModules {
		s.nodeModules.Add(1)
		s.flush([]string{root})
		return false
	}

	s.queue.push(root)
	return true
}

func (s *walk) work(wg *sync.WaitGroup) {
	defer wg.Done()

	batch := make([]string, 0, s.batchSize)
	defer func() { s.flush(batch) }()

	for {
		dir, ok := s.queue.pop()
		if !ok {
			return
		}
		batch = s.scan(dir, batch)
		s.queue.done()
	}
}

// scan lists dir, counts its entries and queues the subdirectories that
// survive pruning. It returns the worker's updated hit batch.
func (s *walk) scan(dir string, batch []string) []string {
	entries, err := readDir(s.fs, dir)
	if err != nil && len(entries) == 0 {
		return batch
	}

	var subdirs []string
	for _, info := range entries {
		path := filepath.Join(dir, info.Name())
		if s.classify.IsIgnored(path) {
			s.ignored.Add(1)
			continue
		}
		if !info.IsDir() {
			s.files.Add(1)
			continue
		}
		subdirs = append(subdirs, path)
	}

	subdirs = s.dropKnown(subdirs)

	pending := subdirs[:0]
	for _, path := range subdirs {
		s.dirs.Add(1)
		if filepath.Base(path) != NodeModules {
			pending = append(pending, path)
			continue
		}

		s.nodeModules.Add(1)
		batch = append(batch, path)
		if len(batch) >= s.batchSize {
			s.flush(batch)
			batch = batch[:0]
		}
	}

	s.queue.push(pending...)
	return batch
}

// dropKnown filters out directories below an already published node_modules.
// The skip set is read-locked once for the whole listing.
func (s *walk) dropKnown(dirs []string) []string {
	if len(dirs) == 0 {
		return dirs
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.skip.IsEmpty() {
		return dirs
	}

	kept := dirs[:0]
	for _, path := range dirs {
		if !classify.IsInsideKnown(path, s.skip) {
			kept = append(kept, path)
		}
	}
	return kept
}

// flush publishes a batch of hits: skip set first, then results, under one lock.
func (s *walk) flush(batch []string) {
	if len(batch) == 0 {
		return
	}

	s.mu.Lock()
	s.skip.Add(batch...)
	s.locations = append(s.locations, batch...)
	s.mu.Unlock()
}

func lstat(fs afero.Fs, path string) (os.FileInfo, error) {
	if lfs, ok := fs.(afero.Lstater); ok {
		info, _, err := lfs.LstatIfPossible(path)
		return info, err
	}
	return fs.Stat(path)
}

// readDir lists dir without following symlinks. Partial listings are returned
// alongside the error that cut them short.
func readDir(fs afero.Fs, dir string) ([]os.FileInfo, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.Readdir(-1)
}
