package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/minutes/internal/core/tracker"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeSubmitter) SubmitTranscript(_ context.Context, text string) (tracker.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return tracker.Submission{}, f.err
	}
	f.texts = append(f.texts, text)
	return tracker.Submission{TranscriptID: int64(len(f.texts)), Source: "rule-based"}, nil
}

func (f *fakeSubmitter) submitted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.texts)
}

type results struct {
	mu  sync.Mutex
	all []Result
}

func (r *results) add(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.all = append(r.all, res)
}

func (r *results) list() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Result(nil), r.all...)
}

func startWatcher(t *testing.T, dir string, sub Submitter, pattern string) *results {
	t.Helper()

	w, err := New(sub, Options{Dir: dir, Pattern: pattern, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	res := &results{}
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, res.add) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		_ = w.Close()
	})
	return res
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNew_Validation(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "x")

	tests := []struct {
		name string
		opts Options
	}{
		{name: "missing dir", opts: Options{Dir: filepath.Join(dir, "nope")}},
		{name: "file instead of dir", opts: Options{Dir: file}},
		{name: "bad pattern", opts: Options{Dir: dir, Pattern: "[abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&fakeSubmitter{}, tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestWatcher_SubmitsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	sub := &fakeSubmitter{}
	res := startWatcher(t, dir, sub, "**/*.txt")

	writeFile(t, filepath.Join(dir, "standup.txt"), "Alice will send the report")
	writeFile(t, filepath.Join(dir, "notes.md"), "Bob will book the room")

	require.Eventually(t, func() bool { return len(sub.submitted()) == 1 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"Alice will send the report"}, sub.submitted())

	got := res.list()
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "standup.txt"), got[0].Path)
	assert.Equal(t, int64(1), got[0].Submission.TranscriptID)
	assert.NoError(t, got[0].Err)
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	sub := &fakeSubmitter{}
	startWatcher(t, dir, sub, "**/*.txt")

	require.NoError(t, os.Mkdir(filepath.Join(dir, "2026"), 0o755))
	// Give the watcher a moment to register the new directory.
	time.Sleep(150 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "2026", "retro.txt"), "Carol should update the wiki")

	require.Eventually(t, func() bool { return len(sub.submitted()) == 1 }, 5*time.Second, 20*time.Millisecond)
}

func TestWatcher_SkipsEmptyAndUnchanged(t *testing.T) {
	dir := t.TempDir()
	sub := &fakeSubmitter{}
	startWatcher(t, dir, sub, "*.txt")

	path := filepath.Join(dir, "a.txt")
	writeFile(t, filepath.Join(dir, "empty.txt"), "   \n")
	writeFile(t, path, "Dan will order lunch")
	require.Eventually(t, func() bool { return len(sub.submitted()) == 1 }, 5*time.Second, 20*time.Millisecond)

	// Same content again is ignored; new content is submitted.
	writeFile(t, path, "Dan will order lunch")
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, sub.submitted(), 1)

	writeFile(t, path, "Dan will order lunch for twelve")
	require.Eventually(t, func() bool { return len(sub.submitted()) == 2 }, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Dan will order lunch for twelve", sub.submitted()[1])
}

func TestWatcher_ReportsSubmitErrors(t *testing.T) {
	dir := t.TempDir()
	sub := &fakeSubmitter{err: errors.New("backend down")}
	res := startWatcher(t, dir, sub, "*.txt")

	writeFile(t, filepath.Join(dir, "a.txt"), "Eve will call the vendor")

	require.Eventually(t, func() bool { return len(res.list()) == 1 }, 5*time.Second, 20*time.Millisecond)
	assert.ErrorContains(t, res.list()[0].Err, "backend down")
}

func TestWatcher_Matches(t *testing.T) {
	dir := t.TempDir()
	w, err := New(&fakeSubmitter{}, Options{Dir: dir, Pattern: "meetings/**/*.txt"})
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	tests := []struct {
		path string
		want bool
	}{
		{path: "meetings/a.txt", want: true},
		{path: "meetings/2026/05/b.txt", want: true},
		{path: "other/a.txt", want: false},
		{path: "meetings/a.md", want: false},
		{path: "meetings/.hidden.txt", want: false},
		{path: "meetings/a.txt~", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.matches(filepath.Join(dir, tt.path)))
		})
	}
}

func TestWatcher_DirectoryMovedIn(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "watched")
	staging := filepath.Join(base, "staging")
	require.NoError(t, os.Mkdir(dir, 0o755))

	writeFile(t, filepath.Join(staging, "standup.txt"), "Alice will send the report")
	writeFile(t, filepath.Join(staging, "nested", "retro.txt"), "Bob should book the room")
	writeFile(t, filepath.Join(staging, "notes.md"), "Carol must ignore this")

	sub := &fakeSubmitter{}
	startWatcher(t, dir, sub, "**/*.txt")

	require.NoError(t, os.Rename(staging, filepath.Join(dir, "2026")))

	require.Eventually(t, func() bool { return len(sub.submitted()) == 2 }, 5*time.Second, 20*time.Millisecond)
	assert.ElementsMatch(t, []string{"Alice will send the report", "Bob should book the room"}, sub.submitted())
}
