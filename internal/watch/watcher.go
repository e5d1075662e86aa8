// Package watch submits transcript files as they appear in a directory.
package watch

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/colonyops/minutes/internal/core/logging"
	"github.com/colonyops/minutes/internal/core/tracker"
	"github.com/colonyops/minutes/internal/core/validate"
)

// Submitter sends a transcript for extraction. *api.Client satisfies it.
type Submitter interface {
	SubmitTranscript(ctx context.Context, text string) (tracker.Submission, error)
}

// Options configures a Watcher.
type Options struct {
	Dir      string
	Pattern  string        // doublestar pattern relative to Dir
	Debounce time.Duration // quiet period before a changed file is submitted
}

// Result reports the outcome for one file.
type Result struct {
	Path       string
	Submission tracker.Submission
	Err        error
}

// Watcher watches Dir recursively and submits files matching Pattern once
// writes to them settle. Identical content is only submitted once per path.
type Watcher struct {
	watcher  *fsnotify.Watcher
	sub      Submitter
	dir      string
	pattern  string
	debounce time.Duration
	seen     map[string][sha256.Size]byte
	log      zerolog.Logger
}

// New creates a watcher. Close must be called to release the fsnotify handle.
func New(sub Submitter, opts Options) (*Watcher, error) {
	if opts.Pattern == "" {
		opts.Pattern = "**/*.txt"
	}
	if !doublestar.ValidatePattern(opts.Pattern) {
		return nil, fmt.Errorf("invalid pattern %q", opts.Pattern)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 500 * time.Millisecond
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir: %s is not a directory", opts.Dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  fw,
		sub:      sub,
		dir:      filepath.Clean(opts.Dir),
		pattern:  opts.Pattern,
		debounce: opts.Debounce,
		seen:     make(map[string][sha256.Size]byte),
		log:      logging.Component("watch"),
	}

	if err := w.addRecursive(w.dir); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run processes file changes until ctx is cancelled, reporting every
// submission attempt to report. A cancelled context is not an error.
func (w *Watcher) Run(ctx context.Context, report func(Result)) error {
	for {
		changed, err := w.next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		for _, path := range changed {
			res, ok := w.submit(ctx, path)
			if ok && report != nil {
				report(res)
			}
		}
	}
}

// next blocks until at least one matching file changed and the debounce
// window has passed without further events.
func (w *Watcher) next(ctx context.Context) ([]string, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil, errors.New("watcher closed")
			}

			changed := map[string]bool{}
			w.classify(event, changed)

			debounce := time.NewTimer(w.debounce)
		debounceLoop:
			for {
				select {
				case <-ctx.Done():
					debounce.Stop()
					return nil, ctx.Err()
				case e, ok := <-w.watcher.Events:
					if !ok {
						break debounceLoop
					}
					w.classify(e, changed)
					debounce.Reset(w.debounce)
				case <-debounce.C:
					break debounceLoop
				}
			}

			if len(changed) == 0 {
				continue
			}
			paths := make([]string, 0, len(changed))
			for p, live := range changed {
				if live {
					paths = append(paths, p)
				}
			}
			if len(paths) == 0 {
				continue
			}
			slices.Sort(paths)
			return paths, nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil, errors.New("watcher closed")
			}
			w.log.Error().Err(err).Msg("watcher error")
		}
	}
}

// classify records event in changed. Removed or renamed paths are marked
// false so a file deleted within the debounce window is not submitted.
func (w *Watcher) classify(event fsnotify.Event, changed map[string]bool) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
			}
			// A directory moved or copied in already holds files that produced
			// no events of their own.
			w.markExisting(event.Name, changed)
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}

	w.log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("file system event")

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		changed[event.Name] = false
		delete(w.seen, event.Name)
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		changed[event.Name] = true
	}
}

// matches reports whether path is a transcript candidate.
func (w *Watcher) matches(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, suffix := range []string{".tmp", ".swp", ".swx", "~"} {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}

	rel, err := filepath.Rel(w.dir, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(w.pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// submit sends path to the backend. ok is false when nothing was sent
// because the file vanished, is empty or was already submitted unchanged.
func (w *Watcher) submit(ctx context.Context, path string) (Result, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, false
		}
		return Result{Path: path, Err: fmt.Errorf("read transcript: %w", err)}, true
	}

	text := strings.TrimSpace(string(b))
	if err := validate.Transcript(text); err != nil {
		w.log.Debug().Str("path", path).Msg("skipping empty transcript")
		return Result{}, false
	}

	sum := sha256.Sum256(b)
	if prev, ok := w.seen[path]; ok && prev == sum {
		return Result{}, false
	}

	sub, err := w.sub.SubmitTranscript(ctx, text)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("submit %s: %w", path, err)}, true
	}
	w.seen[path] = sum

	w.log.Info().Str("path", path).Int64("transcript_id", sub.TranscriptID).Msg("transcript submitted")
	return Result{Path: path, Submission: sub}, true
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			w.log.Debug().Err(err).Str("path", p).Msg("skipping path during walk")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}

// markExisting marks every matching file below root as changed.
func (w *Watcher) markExisting(root string, changed map[string]bool) {
	_ = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matches(p) {
			changed[p] = true
		}
		return nil
	})
}
