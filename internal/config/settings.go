package config

import (
	"net/url"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/joho/godotenv"

	"github.com/ytget/terminal-archive/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyServerURL   = "server_url"
	KeyDownloadDir = "download_directory"
	KeyMaxParallel = "max_parallel_downloads"
	KeyLanguage    = "app_language"
	KeyLogLevel    = "log_level"
)

// Environment variables that provide defaults before the user saves anything
const (
	EnvServerURL   = "ARCHIVE_SERVER_URL"
	EnvDownloadDir = "ARCHIVE_DOWNLOAD_DIR"
	EnvLogLevel    = "ARCHIVE_LOG_LEVEL"
	EnvFile        = ".env"
)

// Default values
const (
	DefaultServerURL   = "http://localhost:5000"
	DefaultMaxParallel = 2
	DefaultLanguage    = "system"
	DefaultLogLevel    = "info"
)

// Log levels accepted by SetLogLevel
var LogLevels = []string{"debug", "info", "warn", "error"}

// LoadEnv reads an optional .env file into the process environment.
// Variables that are already set win over the file.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{EnvFile}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetServerURL returns the base URL of the archive service
func (s *Settings) GetServerURL() string {
	value := s.app.Preferences().String(KeyServerURL)
	if value == "" {
		return envOr(EnvServerURL, DefaultServerURL)
	}
	return value
}

// SetServerURL stores the archive base URL; invalid URLs are ignored
func (s *Settings) SetServerURL(raw string) bool {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if !ValidServerURL(raw) {
		return false
	}
	s.app.Preferences().SetString(KeyServerURL, raw)
	return true
}

// ValidServerURL reports whether raw is an absolute http(s) URL
func ValidServerURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir != "" {
		return dir
	}
	if dir = os.Getenv(EnvDownloadDir); dir != "" {
		return dir
	}

	// Use system default Downloads directory
	defaultDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		defaultDir = os.TempDir()
	}
	s.SetDownloadDirectory(defaultDir)
	return defaultDir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < 1 {
		count = 1
	}
	if count > 10 {
		count = 10
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetLogLevel returns the configured log level name
func (s *Settings) GetLogLevel() string {
	level := s.app.Preferences().String(KeyLogLevel)
	if level == "" {
		return strings.ToLower(envOr(EnvLogLevel, DefaultLogLevel))
	}
	return level
}

// SetLogLevel stores the log level; unknown names fall back to the default
func (s *Settings) SetLogLevel(level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	for _, known := range LogLevels {
		if level == known {
			s.app.Preferences().SetString(KeyLogLevel, level)
			return
		}
	}
	s.app.Preferences().SetString(KeyLogLevel, DefaultLogLevel)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
