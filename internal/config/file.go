package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultOutputTemplate names engine output after the media identifier
const DefaultOutputTemplate = "%(id)s.%(ext)s"

// OutputTemplateSuffix must end every output template so the produced file's
// extension can be rewritten after conversion
const OutputTemplateSuffix = ".%(ext)s"

// DefaultProbeTimeoutSeconds bounds the playlist lookup
const DefaultProbeTimeoutSeconds = 20

// DefaultConfigRelPath is the config location under the user's home
const DefaultConfigRelPath = ".config/media-downloader/config.toml"

// Engine contains settings passed to the download engine.
type Engine struct {
	FFmpegLocation      string `toml:"ffmpeg_location"`
	WorkDir             string `toml:"work_dir"`
	OutputTemplate      string `toml:"output_template"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout_seconds"`
}

// File is the optional on-disk configuration.
type File struct {
	Engine Engine `toml:"engine"`
}

// DefaultFile returns the configuration used when no file exists. The work
// directory defaults to the process working directory, where the engine
// writes by default.
func DefaultFile() File {
	return File{
		Engine: Engine{
			WorkDir:             ".",
			OutputTemplate:      DefaultOutputTemplate,
			ProbeTimeoutSeconds: DefaultProbeTimeoutSeconds,
		},
	}
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/" + DefaultConfigRelPath)
}

// LoadFile reads path (or the default location when path is empty). A missing
// file is not an error; the returned bool reports whether one was read.
func LoadFile(path string) (*File, bool, error) {
	cfg := DefaultFile()

	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, false, err
		}
		path = defaultPath
	}

	resolved, err := expandPath(path)
	if err != nil {
		return nil, false, err
	}

	exists := true
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		exists = false
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

// ProbeTimeout returns the playlist probe timeout as a duration.
func (f *File) ProbeTimeout() time.Duration {
	return time.Duration(f.Engine.ProbeTimeoutSeconds) * time.Second
}

// Validate checks the configuration for values the engine cannot use.
func (f *File) Validate() error {
	if !strings.HasSuffix(f.Engine.OutputTemplate, OutputTemplateSuffix) {
		return fmt.Errorf("engine.output_template must end with %s: %q", OutputTemplateSuffix, f.Engine.OutputTemplate)
	}
	if f.Engine.ProbeTimeoutSeconds < 0 {
		return fmt.Errorf("engine.probe_timeout_seconds must be >= 0: %d", f.Engine.ProbeTimeoutSeconds)
	}
	return nil
}

func (f *File) normalize() error {
	f.Engine.FFmpegLocation = strings.TrimSpace(f.Engine.FFmpegLocation)
	f.Engine.OutputTemplate = strings.TrimSpace(f.Engine.OutputTemplate)
	if f.Engine.OutputTemplate == "" {
		f.Engine.OutputTemplate = DefaultOutputTemplate
	}
	if strings.TrimSpace(f.Engine.WorkDir) == "" {
		f.Engine.WorkDir = "."
	}

	var err error
	if f.Engine.WorkDir, err = expandPath(f.Engine.WorkDir); err != nil {
		return fmt.Errorf("engine.work_dir: %w", err)
	}
	if f.Engine.FFmpegLocation != "" {
		if f.Engine.FFmpegLocation, err = expandPath(f.Engine.FFmpegLocation); err != nil {
			return fmt.Errorf("engine.ffmpeg_location: %w", err)
		}
	}
	return nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	return abs, nil
}
