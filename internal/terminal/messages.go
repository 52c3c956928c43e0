package terminal

import "time"

// Sequencer timing
const (
	WelcomeDelay    = 500 * time.Millisecond
	ConnectDuration = 1500 * time.Millisecond
	ScanDelay       = 500 * time.Millisecond
	ScanDuration    = time.Second
	ExitDelay       = time.Second
)

// Fixed output
const (
	MsgConnecting     = "Connecting to archive..."
	MsgLoaded         = "Loaded %d papers from archive."
	MsgFetchFailed    = "ERROR: Could not connect to the paper database."
	MsgScanning       = "Scanning device..."
	MsgNotAvailable   = "N/A"
	MsgReadyDesktop   = "Ready. Press Ctrl+K (Cmd+K on macOS) to search the archive."
	MsgReadyMobile    = "Ready. Tap the search bar to search the archive."
	MsgNoResults      = "No papers found."
	MsgAccessDenied   = "Access denied."
	MsgGoodbye        = "Goodbye!"
	MsgUnknownCommand = "Command not found: %s"
	MsgHelpHint       = "Type 'help' for available commands."
)

var bannerLines = []string{
	"╔═══════════════════════════════════════════════════════════════╗",
	"║         TERMINAL ARCHIVE - Previous Year Papers               ║",
	"║                                                               ║",
	"║  Type 'help' for available commands                           ║",
	"║  Press Ctrl+K to search database                              ║",
	"╚═══════════════════════════════════════════════════════════════╝",
	"",
	"System initialized...",
}

var helpLines = []string{
	"Available commands:",
	"  help          - Show this help message",
	"  list          - List all available papers",
	"  search [text] - Search for papers",
	"  get <n>       - Download paper n of the last listing",
	"  open <n>      - Open paper n in the browser",
	"  upload        - Go to upload page",
	"  clear         - Clear terminal screen",
	"  exit          - Return to main page",
}

// HelpLines returns the command reference
func HelpLines() []Line {
	lines := make([]Line, 0, len(helpLines))
	for _, text := range helpLines {
		lines = append(lines, Line{Kind: LinePlain, Text: text})
	}
	return lines
}

// Banner returns the welcome box printed on start and after clear
func Banner() []Line {
	lines := make([]Line, 0, len(bannerLines))
	for _, text := range bannerLines {
		lines = append(lines, Line{Kind: LineInfo, Text: text})
	}
	return lines
}
