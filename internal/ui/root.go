package ui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/media-downloader/internal/config"
	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
	"github.com/ytget/media-downloader/internal/workflow"
)

// RootUI is the main application window
type RootUI struct {
	window       fyne.Window
	machine      *workflow.Machine
	runner       download.Runner
	settings     *config.Settings
	localization *Localization
	clipboard    platform.ClipboardReader
	reveal       func(path string) error

	// Bound display values
	statusText binding.String
	progress   binding.Float

	// UI components
	urlEntry    *widget.Entry
	fileEntry   *widget.Entry
	pasteBtn    *widget.Button
	browseBtn   *widget.Button
	formatRadio *widget.RadioGroup
	runBtn      *widget.Button
	stopBtn     *widget.Button
	revealBtn   *widget.Button
	content     fyne.CanvasObject

	formatByLabel map[string]model.MediaFormat
	labelByFormat map[model.MediaFormat]string

	mu         sync.Mutex
	runGen     uint64 // incremented by every started run
	cancelRun  context.CancelFunc
	lastOutput string

	unsubscribe func()
}

// NewRootUI creates the main window content and binds it to runner
func NewRootUI(window fyne.Window, app fyne.App, runner download.Runner, clipboard platform.ClipboardReader) *RootUI {
	settings := config.NewSettings(app)
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:        window,
		machine:       workflow.NewMachine(model.RunConfig{Format: settings.GetMediaFormat()}),
		runner:        runner,
		settings:      settings,
		localization:  localization,
		clipboard:     clipboard,
		reveal:        platform.OpenFileInManager,
		statusText:    binding.NewString(),
		progress:      binding.NewFloat(),
		formatByLabel: make(map[string]model.MediaFormat),
		labelByFormat: make(map[model.MediaFormat]string),
	}

	ui.setupUI()
	ui.createMenu()

	ui.unsubscribe = ui.machine.Subscribe(func(state workflow.State) {
		fyne.Do(func() {
			ui.render(state)
		})
	})
	ui.render(ui.machine.State())

	return ui
}

// Content returns the root canvas object
func (ui *RootUI) Content() fyne.CanvasObject {
	return ui.content
}

// Close cancels any active run and detaches from the state machine
func (ui *RootUI) Close() {
	ui.stopRun()
	if ui.unsubscribe != nil {
		ui.unsubscribe()
	}
}

// setupUI creates the main UI layout
func (ui *RootUI) setupUI() {
	l := ui.localization

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.OnChanged = ui.onURLChanged
	ui.pasteBtn = widget.NewButton(IconPaste+" "+l.GetText(KeyPaste), ui.onPaste)

	ui.fileEntry = widget.NewEntry()
	ui.fileEntry.OnChanged = ui.onDestinationChanged
	ui.browseBtn = widget.NewButton(IconFolder+" "+l.GetText(KeyBrowse), ui.onBrowse)

	for _, format := range []model.MediaFormat{model.FormatVideo, model.FormatAudio} {
		label := l.GetText(formatKey(format))
		ui.formatByLabel[label] = format
		ui.labelByFormat[format] = label
	}
	ui.formatRadio = widget.NewRadioGroup(
		[]string{ui.labelByFormat[model.FormatVideo], ui.labelByFormat[model.FormatAudio]},
		nil,
	)
	ui.formatRadio.Horizontal = true
	ui.formatRadio.Required = true
	ui.formatRadio.SetSelected(ui.labelByFormat[ui.machine.State().Config.Format])
	ui.formatRadio.OnChanged = ui.onFormatChanged

	input := widget.NewCard(l.GetText(KeyInput), "",
		container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyURL)), ui.pasteBtn, ui.urlEntry))

	output := widget.NewCard(l.GetText(KeyOutput), "", container.NewVBox(
		container.NewBorder(nil, nil, widget.NewLabel(l.GetText(KeyFile)), ui.browseBtn, ui.fileEntry),
		container.NewHBox(widget.NewLabel(l.GetText(KeyFormat)), ui.formatRadio),
	))

	ui.runBtn = widget.NewButton(IconPlay+" "+l.GetText(KeyRun), ui.onRun)
	ui.runBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(IconStop+" "+l.GetText(KeyStop), ui.stopRun)
	ui.revealBtn = widget.NewButton(l.GetText(KeyReveal), ui.onReveal)

	bar := widget.NewProgressBarWithData(ui.progress)
	bar.Min = ProgressMin
	bar.Max = ProgressMax

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	runRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.runBtn, ui.stopBtn),
		container.NewHBox(ui.revealBtn, settingsBtn),
		bar,
	)

	ui.content = container.NewVBox(
		input,
		output,
		runRow,
		widget.NewLabelWithData(ui.statusText),
	)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyAppTitle), settingsItem),
	)
	ui.window.SetMainMenu(mainMenu)
}

// render applies state to the widgets. Must run on the main goroutine.
func (ui *RootUI) render(state workflow.State) {
	active := state.Phase.IsActive()

	if err := ui.statusText.Set(StatusText(state, ui.localization)); err != nil {
		log.Printf("Failed to update status text: %v", err)
	}
	if err := ui.progress.Set(state.Progress); err != nil {
		log.Printf("Failed to update progress: %v", err)
	}

	setEnabled(ui.runBtn, state.RunEnabled)
	setEnabled(ui.stopBtn, active)
	setEnabled(ui.revealBtn, state.Phase == model.PhaseDone && ui.output() != "")
	setEnabled(ui.pasteBtn, !active)
	setEnabled(ui.browseBtn, !active)

	if active {
		ui.urlEntry.Disable()
		ui.fileEntry.Disable()
		ui.formatRadio.Disable()
	} else {
		ui.urlEntry.Enable()
		ui.fileEntry.Enable()
		ui.formatRadio.Enable()
	}
}

// onURLChanged handles edits in the URL entry
func (ui *RootUI) onURLChanged(text string) {
	ui.render(ui.machine.SetURL(text))
}

// onDestinationChanged handles edits in the file entry
func (ui *RootUI) onDestinationChanged(text string) {
	ui.render(ui.machine.SetDestination(text))
}

// onFormatChanged switches the format and rewrites the destination extension
func (ui *RootUI) onFormatChanged(label string) {
	format, ok := ui.formatByLabel[label]
	if !ok {
		return
	}
	state := ui.machine.SetFormat(format)
	ui.settings.SetMediaFormat(format)
	if ui.fileEntry.Text != state.Config.DestinationPath {
		ui.fileEntry.SetText(state.Config.DestinationPath)
	}
	ui.render(state)
}

// onPaste replaces the URL with the clipboard text when it looks like a URL
func (ui *RootUI) onPaste() {
	text, err := ui.clipboard.ReadText()
	if err != nil {
		log.Printf("Clipboard read failed: %v", err)
		return
	}
	state, ok := ui.machine.PasteURL(text)
	if !ok {
		log.Printf("Clipboard does not hold a URL, ignoring paste")
		return
	}
	if ui.urlEntry.Text != state.Config.SourceURL {
		ui.urlEntry.SetText(state.Config.SourceURL)
	}
	ui.render(state)
}

// onBrowse asks for the destination file using the format's extension
func (ui *RootUI) onBrowse() {
	ext := ui.machine.State().Config.Format.Extension()

	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			log.Printf("Failed to close %s: %v", path, err)
		}
		if filepath.Ext(path) == "" {
			path = path + "." + ext
		}
		ui.settings.SetLastDirectory(filepath.Dir(path))
		ui.fileEntry.SetText(path)
	}, ui.window)

	save.SetFileName(DefaultFileBaseName + "." + ext)
	save.SetFilter(storage.NewExtensionFileFilter([]string{"." + ext}))
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetLastDirectory())); err == nil {
		save.SetLocation(lister)
	}
	save.Show()
}

// onRun starts a run with the current config
func (ui *RootUI) onRun() {
	cfg, err := ui.machine.Begin()
	if err != nil {
		log.Printf("Run not started: %v", err)
		return
	}
	ui.settings.SetMediaFormat(cfg.Format)

	ctx, cancel := context.WithCancel(context.Background())
	ui.mu.Lock()
	ui.runGen++
	gen := ui.runGen
	ui.cancelRun = cancel
	ui.lastOutput = ""
	ui.mu.Unlock()

	events := ui.runner.Start(ctx, cfg)
	go ui.consume(events, cancel, gen)
}

// consume applies run events to the machine until the channel closes. gen
// identifies the run so a finished consumer leaves a newer run's cancel alone.
func (ui *RootUI) consume(events <-chan workflow.Event, cancel context.CancelFunc, gen uint64) {
	defer cancel()

	for ev := range events {
		if ev.Kind == workflow.EventDone {
			ui.mu.Lock()
			ui.lastOutput = ev.OutputPath
			ui.mu.Unlock()
		}

		state, err := ui.machine.Apply(ev)
		if err != nil {
			log.Printf("Ignoring %s event: %v", ev.Kind, err)
			continue
		}
		if state.Phase == model.PhaseDone && ui.settings.GetAutoRevealOnComplete() {
			ui.revealOutput()
		}
	}

	ui.mu.Lock()
	if ui.runGen == gen {
		ui.cancelRun = nil
	}
	ui.mu.Unlock()
}

// stopRun cancels the active run, if any
func (ui *RootUI) stopRun() {
	ui.mu.Lock()
	cancel := ui.cancelRun
	ui.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// onReveal opens the file manager at the last output
func (ui *RootUI) onReveal() {
	go ui.revealOutput()
}

func (ui *RootUI) revealOutput() {
	path := ui.output()
	if path == "" {
		return
	}
	if err := ui.reveal(path); err != nil {
		log.Printf("Failed to reveal %s: %v", path, err)
		fyne.Do(func() {
			dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(KeyErrorOpeningFile), err), ui.window)
		})
	}
}

func (ui *RootUI) output() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.lastOutput
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeySettingsSaved), ui.window)
	})
}

func formatKey(format model.MediaFormat) string {
	if format == model.FormatVideo {
		return KeyVideo
	}
	return KeyAudio
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
