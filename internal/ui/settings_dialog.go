package ui

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/samber/lo"

	"github.com/ytget/terminal-archive/internal/config"
)

// SettingsChange tells the caller which saved values need applying
type SettingsChange struct {
	ServerURL   bool
	DownloadDir bool
	MaxParallel bool
	Language    bool
	LogLevel    bool
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(SettingsChange)

	serverEntry      *widget.Entry
	downloadDirEntry *widget.Entry
	maxParallelEntry *widget.Entry
	languageSelect   *widget.Select
	logLevelSelect   *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func(SettingsChange)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.serverEntry = widget.NewEntry()
	sd.serverEntry.SetPlaceHolder(config.DefaultServerURL)
	sd.serverEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" || config.ValidServerURL(s) {
			return nil
		}
		return errInvalidServerURL(l)
	}

	sd.downloadDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder("1-10")

	languages := sd.settings.GetLanguageOptions()
	sd.languageCodes = lo.Invert(languages)
	names := lo.Values(languages)
	slices.Sort(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	sd.logLevelSelect = widget.NewSelect(config.LogLevels, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyServerURL)+":"),
		sd.serverEntry,

		widget.NewLabel(l.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(l.GetText(KeyMaxParallel)+":"),
		sd.maxParallelEntry,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,

		widget.NewLabel(l.GetText(KeyLogLevel)+":"),
		sd.logLevelSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.serverEntry.SetText(sd.settings.GetServerURL())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave stores the edited values and reports what changed
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	var change SettingsChange

	if server := strings.TrimSpace(sd.serverEntry.Text); server != "" && server != sd.settings.GetServerURL() {
		if !sd.settings.SetServerURL(server) {
			dialog.ShowError(errInvalidServerURL(sd.localization), sd.window)
			return
		}
		change.ServerURL = true
	}

	if dir := strings.TrimSpace(sd.downloadDirEntry.Text); dir != "" && dir != sd.settings.GetDownloadDirectory() {
		sd.settings.SetDownloadDirectory(dir)
		change.DownloadDir = true
	}

	if maxParallel, err := strconv.Atoi(strings.TrimSpace(sd.maxParallelEntry.Text)); err == nil &&
		maxParallel != sd.settings.GetMaxParallelDownloads() {
		sd.settings.SetMaxParallelDownloads(maxParallel)
		change.MaxParallel = true
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok && code != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(code)
		change.Language = true
	}

	if level := sd.logLevelSelect.Selected; level != "" && level != sd.settings.GetLogLevel() {
		sd.settings.SetLogLevel(level)
		change.LogLevel = true
	}

	if sd.onSaved != nil {
		sd.onSaved(change)
	}

	message := sd.localization.GetText(KeySettingsSaved)
	if change.ServerURL {
		message += "\n" + sd.localization.GetText(KeyRestartRequired)
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), message, sd.window)
}

func errInvalidServerURL(l *Localization) error {
	return errors.New(l.GetText(KeyInvalidServerURL))
}
