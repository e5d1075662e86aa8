package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/colonyops/minutes/internal/core/sanitize"
	"github.com/colonyops/minutes/internal/core/styles"
	"github.com/colonyops/minutes/internal/core/tracker"
)

// parseID parses a positive numeric id argument.
func parseID(what, s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("%s is required", what)
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", what, s)
	}
	return id, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readPiped reads all of r, refusing interactive terminals so a forgotten
// pipe does not hang waiting for input.
func readPiped(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}
	if isTerminal(r) {
		return "", fmt.Errorf("no input provided (stdin is a terminal); pass a file or pipe the transcript")
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

// writeItems prints one line per item with its id, checkbox and metadata.
func writeItems(w io.Writer, items []tracker.ActionItem) {
	for _, it := range items {
		_, _ = fmt.Fprintln(w, itemLine(it))
	}
}

func itemLine(it tracker.ActionItem) string {
	check := styles.CheckOpenStyle.Render(styles.IconOpen)
	task := styles.ItemTaskStyle.Render(sanitize.Line(it.Task))
	if it.Done() {
		check = styles.CheckDoneStyle.Render(styles.IconDone)
		task = styles.ItemDoneStyle.Render(sanitize.Line(it.Task))
	}

	parts := []string{
		styles.MutedStyle.Render(fmt.Sprintf("%4d", it.ID)),
		check,
		task,
	}

	var meta []string
	if it.Owner != "" {
		meta = append(meta, styles.IconOwner+sanitize.Line(it.Owner))
	}
	if it.DueDate != "" {
		meta = append(meta, styles.IconDue+" "+sanitize.Line(it.DueDate))
	}
	if len(meta) > 0 {
		parts = append(parts, styles.ItemMetaStyle.Render(strings.Join(meta, "  ")))
	}
	return strings.Join(parts, " ")
}
