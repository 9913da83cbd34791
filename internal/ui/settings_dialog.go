package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-downloader/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	languageSelect *widget.Select
	autoRevealBox  *widget.Check

	languageByLabel map[string]string
	labelByLanguage map[string]string
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved runs after
// the user confirms.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, l *Localization, onSaved func()) {
	NewSettingsDialog(settings, l, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, l *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:        settings,
		localization:    l,
		window:          window,
		onSaved:         onSaved,
		languageByLabel: make(map[string]string),
		labelByLanguage: make(map[string]string),
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
	codes := make([]string, 0)
	for code, label := range sd.settings.GetLanguageOptions() {
		codes = append(codes, code)
		sd.languageByLabel[label] = code
		sd.labelByLanguage[code] = label
	}
	sort.Strings(codes)

	languageOptions := make([]string, 0, len(codes))
	for _, code := range codes {
		languageOptions = append(languageOptions, sd.labelByLanguage[code])
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.autoRevealBox = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyLanguage)),
		sd.languageSelect,
		widget.NewSeparator(),
		sd.autoRevealBox,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.languageSelect.SetSelected(sd.labelByLanguage[sd.settings.GetLanguage()])
	sd.autoRevealBox.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code, ok := sd.languageByLabel[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	sd.settings.SetAutoRevealOnComplete(sd.autoRevealBox.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
