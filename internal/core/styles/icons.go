package styles

// Status glyphs. Plain unicode so no patched font is needed.
var (
	IconOpen    = "○"
	IconDone    = "✓"
	IconPending = "…"
	IconOwner   = "@"
	IconDue     = "⏲"
	IconCursor  = "›"
	IconDot     = "•"
)

// Toast icons.
var (
	IconNotifyInfo    = "✓"
	IconNotifyWarning = "!"
	IconNotifyError   = "✗"
)
