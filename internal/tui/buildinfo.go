package tui

// BuildInfo holds build-time metadata shown in the title bar and help dialog.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

func (b BuildInfo) label() string {
	if b.Version == "" {
		return "dev"
	}
	return b.Version
}
