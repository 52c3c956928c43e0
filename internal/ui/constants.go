package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings  = "⚙"
	IconSearch    = "🔍"
	IconUpload    = "⇪"
	IconDownloads = "⇩"
	IconFolder    = "📁"
	IconFile      = "📄"
	IconClose     = "×"
	IconError     = "❌"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	SearchOverlayWidth float32 = 480
	UploadFormWidth    float32 = 520
	DialogWidth        float32 = 500
	DialogHeight       float32 = 400

	DownloadRowMinWidth float32 = 320
	DownloadPanelHeight float32 = 140
	StatusLabelWidth    float32 = 96
	SpeedLabelWidth     float32 = 90
	PercentLabelWidth   float32 = 48

	// Touch target minimum sizes (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
	MobileEntryHeight  float32 = 48
)

// Terminal output
const (
	// Oldest lines are dropped beyond this count
	MaxConsoleLines = 500
)

// Delays
const (
	// Pause between a successful upload and returning to the terminal
	UploadRedirectDelay = 1 * time.Second
)
