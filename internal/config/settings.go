package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyMediaFormat        = "media_format"
	KeyLastDirectory      = "last_directory"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultMediaFormat        = model.FormatAudio
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackDirectory         = "/tmp"
)

// Settings manages user choices persisted between sessions
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetMediaFormat returns the last chosen format
func (s *Settings) GetMediaFormat() model.MediaFormat {
	format := model.MediaFormat(s.app.Preferences().String(KeyMediaFormat))
	if !format.IsValid() {
		s.SetMediaFormat(DefaultMediaFormat)
		return DefaultMediaFormat
	}
	return format
}

// SetMediaFormat stores the chosen format; unknown values are ignored
func (s *Settings) SetMediaFormat(format model.MediaFormat) {
	if !format.IsValid() {
		return
	}
	s.app.Preferences().SetString(KeyMediaFormat, string(format))
}

// GetLastDirectory returns the directory of the last chosen destination,
// falling back to the user's Downloads directory
func (s *Settings) GetLastDirectory() string {
	dir := s.app.Preferences().String(KeyLastDirectory)
	if dir != "" {
		return dir
	}
	defaultDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return FallbackDirectory
	}
	return defaultDir
}

// SetLastDirectory remembers the destination directory
func (s *Settings) SetLastDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastDirectory, dir)
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

// GetAutoRevealOnComplete returns whether to reveal the file after a run
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal the file after a run
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
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
