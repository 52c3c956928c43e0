// Package bootstrap wires settings, logging, services and the UI together
// and runs the application.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/terminal-archive/internal/archive"
	"github.com/ytget/terminal-archive/internal/config"
	"github.com/ytget/terminal-archive/internal/download"
	"github.com/ytget/terminal-archive/internal/logging"
	"github.com/ytget/terminal-archive/internal/platform"
	"github.com/ytget/terminal-archive/internal/ui"
	"github.com/ytget/terminal-archive/internal/upload"
)

const (
	AppID   = "com.ytget.terminal-archive"
	AppName = "Terminal Archive"

	WindowWidth  = 900
	WindowHeight = 640

	// LogDirName is created under the app storage root
	LogDirName = "logs"
)

// Run starts the application and blocks until the window is closed
func Run(version string) error {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", config.EnvFile, err)
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewTerminalTheme())
	settings := config.NewSettings(myApp)

	logger, err := logging.New(logging.Options{
		Level: settings.GetLogLevel(),
		Dir:   logDir(myApp),
	})
	if err != nil {
		logger.Warn("file logging disabled", "error", err)
	}
	defer logger.Close()
	slog.SetDefault(logger.Logger)
	logger.Info("starting", "app", AppName, "version", version, "log_file", logger.FilePath())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	client, err := newArchiveClient(settings.GetServerURL(), logger.Logger)
	if err != nil {
		return err
	}

	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		logger.Error("failed to ensure downloads dir", "dir", downloadsDir, "error", err)
	}

	// Transfers can outlast the paper list timeout; they are bounded by
	// cancellation instead.
	transfers := &http.Client{}
	downloadSvc := download.NewService(downloadsDir, settings.GetMaxParallelDownloads(), transfers, logger.Logger)
	uploadSvc := upload.NewService(client.Endpoint(archive.UploadPath), transfers, logger.Logger)

	root := ui.NewRootUI(myWindow, myApp, settings, ui.Services{
		Archive:     client,
		Uploader:    uploadSvc,
		Downloads:   downloadSvc,
		Prober:      platform.NewSystemProber(),
		Logger:      logger.Logger,
		SetLogLevel: logger.SetLevel,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	myWindow.SetOnClosed(func() {
		if err := uploadSvc.Cancel(); err == nil {
			logger.Info("upload cancelled on exit")
		}
		cancel()
	})

	root.Start(ctx)
	myWindow.ShowAndRun()
	logger.Info("stopped")
	return nil
}

// newArchiveClient connects to the configured server, falling back to the
// default address when the stored one is unusable.
func newArchiveClient(serverURL string, logger *slog.Logger) (*archive.Client, error) {
	client, err := archive.NewClient(serverURL, nil, logger)
	if err == nil {
		return client, nil
	}
	logger.Error("invalid archive server URL, using default", "url", serverURL, "error", err)

	client, err = archive.NewClient(config.DefaultServerURL, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive client: %w", err)
	}
	return client, nil
}

// logDir returns the log directory under the app storage, or "" when the
// storage root is not a local path.
func logDir(a fyne.App) string {
	root := a.Storage().RootURI()
	if root == nil || root.Scheme() != "file" || root.Path() == "" {
		return ""
	}
	return filepath.Join(root.Path(), LogDirName)
}
