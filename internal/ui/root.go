package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/terminal-archive/internal/config"
	"github.com/ytget/terminal-archive/internal/download"
	"github.com/ytget/terminal-archive/internal/model"
	"github.com/ytget/terminal-archive/internal/platform"
	"github.com/ytget/terminal-archive/internal/terminal"
)

// Services are the backends the UI drives
type Services struct {
	Archive   terminal.Archive
	Uploader  Uploader
	Downloads download.Downloader
	Prober    platform.Prober // nil probes the real system
	Logger    *slog.Logger
	// SetLogLevel applies a log level saved in the settings; optional
	SetLogLevel func(level string)
}

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	services     Services
	logger       *slog.Logger

	controller *terminal.Controller
	route      terminal.Route
	modality   platform.Modality

	console      *Console
	commandEntry *KeyEntry
	searchBar    *widget.Entry
	searchBarBox *fyne.Container
	overlay      *SearchOverlay
	downloads    *DownloadsPanel
	uploadView   *UploadView
	adminView    *AdminView
	terminalView *fyne.Container

	settingsBtn *widget.Button
	searchBtn   *widget.Button
	uploadBtn   *widget.Button
}

var _ terminal.Host = (*RootUI)(nil)

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, services Services) *RootUI {
	if services.Logger == nil {
		services.Logger = slog.Default()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app.Driver().Device()),
		services:     services,
		logger:       services.Logger,
		route:        terminal.RouteHome,
	}
	ui.modality = ui.mobile.Modality(window.Canvas().Size().Width)

	ui.console = NewConsole(ui.onLinkTapped)
	ui.controller = terminal.NewController(terminal.Options{
		Archive:     services.Archive,
		Prober:      services.Prober,
		StoragePath: ui.storagePath(),
		Console:     ui.console,
		Host:        ui,
		Modality:    ui.modality,
		Logger:      ui.logger,
	})

	window.SetTitle(localization.GetText(KeyAppTitle))
	services.Downloads.SetUpdateCallback(ui.onDownloadUpdate)

	ui.setupUI()
	ui.logger.Info("ui initialized", "modality", ui.modality.String(), "language", localization.GetCurrentLanguage())
	return ui
}

// Start runs the startup sequence in the background
func (ui *RootUI) Start(ctx context.Context) {
	go ui.controller.Boot(ctx)
}

// Controller returns the terminal controller
func (ui *RootUI) Controller() *terminal.Controller {
	return ui.controller
}

// storagePath is the volume reported by the device scan
func (ui *RootUI) storagePath() string {
	if root := ui.app.Storage().RootURI(); root != nil && root.Path() != "" {
		return root.Path()
	}
	return ui.settings.GetDownloadDirectory()
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.commandEntry = NewKeyEntry()
	ui.commandEntry.OnSubmitted = ui.onCommand
	ui.commandEntry.OnUp = func() { ui.browseHistory(ui.controller.History().Prev) }
	ui.commandEntry.OnDown = func() { ui.browseHistory(ui.controller.History().Next) }
	ui.commandEntry.OnShortcut = func(s fyne.Shortcut) bool {
		if !isSearchShortcut(s) {
			return false
		}
		ui.openSearch()
		return true
	}
	promptLabel := widget.NewLabel(terminal.PromptSymbol)
	promptLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	promptRow := container.NewBorder(nil, nil, promptLabel, nil, ui.commandEntry)

	ui.searchBar = ui.mobile.CreateMobileEntry("")
	ui.searchBar.OnSubmitted = func(query string) {
		ui.searchBar.SetText("")
		go ui.controller.Search(query)
	}
	ui.searchBarBox = container.NewPadded(ui.searchBar)

	ui.overlay = NewSearchOverlay(ui.window.Canvas(), ui.localization, func(query string) {
		go ui.controller.Search(query)
	})

	ui.downloads = NewDownloadsPanel(ui.localization, ui.onStopDownload, ui.onOpenFile, ui.onRevealFile)

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance
	ui.searchBtn = widget.NewButton(IconSearch, ui.openSearch)
	ui.searchBtn.Importance = widget.LowImportance
	ui.uploadBtn = widget.NewButton(IconUpload, func() { ui.showRoute(terminal.RouteUpload) })
	ui.uploadBtn.Importance = widget.LowImportance
	toolbar := container.NewHBox(ui.settingsBtn, ui.searchBtn, ui.uploadBtn)

	ui.terminalView = container.NewBorder(
		container.NewVBox(toolbar, ui.searchBarBox),
		container.NewVBox(ui.downloads.Container(), promptRow),
		nil,
		nil,
		ui.console.Container(),
	)

	home := func() { ui.showRoute(terminal.RouteHome) }
	ui.uploadView = NewUploadView(ui.window, ui.localization, ui.services.Uploader, ui.logger, home)
	ui.uploadView.Container().Hide()
	ui.adminView = NewAdminView(ui.localization, func() { ui.showRoute(terminal.RouteUpload) }, home)
	ui.adminView.Container().Hide()

	views := container.NewStack(ui.terminalView, ui.uploadView.Container(), ui.adminView.Container())
	ui.window.SetContent(container.New(&widthLayout{onWidth: ui.onWidth}, views))

	ui.window.Canvas().AddShortcut(SearchShortcut, func(fyne.Shortcut) { ui.openSearch() })
	ui.window.SetOnDropped(ui.onDropped)
	ui.applyModality(ui.modality)
	ui.refreshUITexts()
	ui.window.Canvas().Focus(ui.commandEntry)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	uploadItem := fyne.NewMenuItem(ui.localization.GetText(KeyUploadTitle), func() {
		ui.showRoute(terminal.RouteUpload)
	})

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	languages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		langCode := code
		langItem := fyne.NewMenuItem(languages[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), uploadItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.commandEntry.SetPlaceHolder(ui.localization.GetText(KeyCommandPlaceholder))
	ui.searchBar.SetPlaceHolder(ui.localization.GetText(KeySearchPlaceholder))
	ui.overlay.SetLocalization(ui.localization)
	ui.downloads.SetLocalization(ui.localization)
	ui.uploadView.SetLocalization(ui.localization)
	ui.adminView.SetLocalization(ui.localization)
}

// onWidth re-evaluates the presentation whenever the window width changes
func (ui *RootUI) onWidth(width float32) {
	if m := ui.mobile.Modality(width); m != ui.modality {
		ui.applyModality(m)
	}
}

// applyModality switches between the Ctrl+K overlay and the search bar
func (ui *RootUI) applyModality(m platform.Modality) {
	ui.modality = m
	ui.controller.Session().SetModality(m)
	if m == platform.ModalityMobile {
		ui.overlay.Hide()
		ui.searchBarBox.Show()
		return
	}
	ui.searchBarBox.Hide()
}

// Modality returns the current presentation
func (ui *RootUI) Modality() platform.Modality {
	return ui.modality
}

// Route returns the visible view
func (ui *RootUI) Route() terminal.Route {
	return ui.route
}

// openSearch shows the overlay on desktop and focuses the bar on mobile
func (ui *RootUI) openSearch() {
	if ui.route != terminal.RouteHome {
		return
	}
	if ui.modality == platform.ModalityMobile {
		ui.window.Canvas().Focus(ui.searchBar)
		return
	}
	if ui.overlay.Visible() {
		ui.overlay.Hide()
		return
	}
	ui.overlay.Show()
}

// showRoute switches the visible view. Returning home from the terminal
// itself, as exit does, starts over from the banner.
func (ui *RootUI) showRoute(route terminal.Route) {
	ui.overlay.Hide()
	switch route {
	case terminal.RouteUpload:
		ui.uploadView.Reset()
		ui.terminalView.Hide()
		ui.adminView.Container().Hide()
		ui.uploadView.Container().Show()
	case terminal.RouteAdmin:
		ui.adminView.SetOperator(ui.controller.Session().Operator())
		ui.terminalView.Hide()
		ui.uploadView.Container().Hide()
		ui.adminView.Container().Show()
	default:
		route = terminal.RouteHome
		if ui.route == terminal.RouteHome {
			ui.console.Clear()
			ui.console.Print(terminal.Banner()...)
		}
		ui.uploadView.Container().Hide()
		ui.adminView.Container().Hide()
		ui.terminalView.Show()
		ui.window.Canvas().Focus(ui.commandEntry)
	}
	ui.logger.Debug("navigate", "from", string(ui.route), "to", string(route))
	ui.route = route
}

// onDropped hands dropped files to the upload form when it is shown
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	if ui.route != terminal.RouteUpload {
		return
	}
	ui.uploadView.DropFiles(uris)
}

func (ui *RootUI) onCommand(text string) {
	ui.commandEntry.SetText("")
	go ui.controller.Execute(text)
}

// browseHistory replaces the prompt with a history entry
func (ui *RootUI) browseHistory(step func() (string, bool)) {
	command, ok := step()
	if !ok {
		return
	}
	ui.commandEntry.SetText(command)
	ui.commandEntry.CursorColumn = len([]rune(command))
	ui.commandEntry.Refresh()
}

// onLinkTapped opens a listed paper like the open command
func (ui *RootUI) onLinkTapped(index int) {
	go ui.controller.Execute(fmt.Sprintf("open %d", index))
}

// OpenSearch implements terminal.Host
func (ui *RootUI) OpenSearch() {
	fyne.Do(ui.openSearch)
}

// Navigate implements terminal.Host
func (ui *RootUI) Navigate(route terminal.Route) {
	fyne.Do(func() { ui.showRoute(route) })
}

// PromptAdmin implements terminal.Host
func (ui *RootUI) PromptAdmin(submit func(name string)) {
	fyne.Do(func() {
		entry := widget.NewEntry()
		item := widget.NewFormItem(ui.localization.GetText(KeyAdminName), entry)
		item.HintText = ui.localization.GetText(KeyAdminPrompt)
		form := dialog.NewForm(
			ui.localization.GetText(KeyAdminTitle),
			ui.localization.GetText(KeyEnter),
			ui.localization.GetText(KeyCancel),
			[]*widget.FormItem{item},
			func(confirmed bool) {
				if confirmed {
					go submit(entry.Text)
				}
			},
			ui.window,
		)
		form.Show()
		ui.window.Canvas().Focus(entry)
	})
}

// OpenURL implements terminal.Host
func (ui *RootUI) OpenURL(u *url.URL) error {
	return ui.app.OpenURL(u)
}

// Download implements terminal.Host
func (ui *RootUI) Download(paper model.Paper, u *url.URL) error {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	_, err := ui.services.Downloads.AddTask(paper, u.String())
	return err
}

// onDownloadUpdate receives download snapshots on service goroutines
func (ui *RootUI) onDownloadUpdate(task *model.DownloadTask) {
	if task == nil {
		return
	}
	snapshot := *task
	fyne.Do(func() { ui.downloads.Update(snapshot) })
	if snapshot.Status.IsFinished() {
		ui.controller.DownloadFinished(snapshot)
	}
}

func (ui *RootUI) onStopDownload(taskID string) {
	if err := ui.services.Downloads.StopTask(taskID); err != nil {
		ui.logger.Error("failed to stop download", "task_id", taskID, "error", err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorStoppingTask), err), ui.window)
	}
}

func (ui *RootUI) onOpenFile(filePath string) {
	if err := platform.OpenFileWithDefaultApp(filePath); err != nil {
		ui.logger.Error("failed to open file", "path", filePath, "error", err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.logger.Error("failed to reveal file", "path", filePath, "error", err)
		dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.applySettings).Show()
}

// applySettings pushes saved settings into the running services
func (ui *RootUI) applySettings(change SettingsChange) {
	if change.DownloadDir {
		dir := ui.settings.GetDownloadDirectory()
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			ui.logger.Error("failed to ensure downloads dir", "dir", dir, "error", err)
		}
		ui.services.Downloads.SetDownloadDirectory(dir)
	}
	if change.MaxParallel {
		ui.services.Downloads.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())
	}
	if change.Language {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	}
	if change.LogLevel && ui.services.SetLogLevel != nil {
		ui.services.SetLogLevel(ui.settings.GetLogLevel())
	}
	ui.logger.Info("settings applied",
		"server_url", change.ServerURL,
		"download_dir", change.DownloadDir,
		"max_parallel", change.MaxParallel,
		"language", change.Language,
		"log_level", change.LogLevel)
}
