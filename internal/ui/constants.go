package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "■"
	IconFolder   = "📁"
	IconPaste    = "📋"
)

// Text fragments
const (
	ByteProgressFormat = "%s %s / %s"
	ByteCountFormat    = "%s %s"
	FailureFormat      = "%s: %v"
)

// Layout sizing
const (
	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 220
)

// Progress bar range, in percent
const (
	ProgressMin = 0.0
	ProgressMax = 100.0
)

// DefaultFileBaseName is proposed in the save dialog
const DefaultFileBaseName = "download"
