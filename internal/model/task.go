package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaFormat is the target format chosen by the user
type MediaFormat string

const (
	FormatAudio MediaFormat = "audio"
	FormatVideo MediaFormat = "video"
)

// Default file extensions per format
const (
	AudioExtension = "mp3"
	VideoExtension = "mp4"
)

// RunIDPrefix prefixes every generated run ID
const RunIDPrefix = "run-"

// Extension returns the file extension (without dot) produced for the format
func (f MediaFormat) Extension() string {
	if f == FormatVideo {
		return VideoExtension
	}
	return AudioExtension
}

// MediaKind returns the top-level MIME type the produced file must have
func (f MediaFormat) MediaKind() string {
	if f == FormatVideo {
		return "video"
	}
	return "audio"
}

// IsValid reports whether f is a known format
func (f MediaFormat) IsValid() bool {
	return f == FormatAudio || f == FormatVideo
}

// RunConfig holds the user input for a run
type RunConfig struct {
	SourceURL       string
	DestinationPath string
	Format          MediaFormat
}

// Ready reports whether the run action may be enabled. Any non-empty value
// counts; the engine rejects a malformed URL.
func (c RunConfig) Ready() bool {
	return c.SourceURL != "" && c.DestinationPath != ""
}

// WithFormat returns a copy of c using format f. A non-empty destination gets
// its extension rewritten to match f.
func (c RunConfig) WithFormat(f MediaFormat) RunConfig {
	c.Format = f
	if c.DestinationPath != "" {
		c.DestinationPath = ReplaceExtension(c.DestinationPath, f.Extension())
	}
	return c
}

// ReplaceExtension swaps the extension of the last path element for ext
func ReplaceExtension(path, ext string) string {
	dir, file := filepath.Split(path)
	base := strings.TrimSuffix(file, filepath.Ext(file))
	return dir + base + "." + ext
}

// Run represents a single download-convert-copy run
type Run struct {
	ID         string
	Config     RunConfig
	Title      string    // media title reported by the engine
	OutputPath string    // engine-produced file in the work directory
	LastError  string    // last error message if any
	StartedAt  time.Time // when the run started
	FinishedAt time.Time // when the run reached Done or Error
}

// NewRun creates a run record for cfg
func NewRun(cfg RunConfig) *Run {
	return &Run{
		ID:        generateRunID(),
		Config:    cfg,
		StartedAt: time.Now(),
	}
}

// Elapsed returns the run duration so far, or the total once finished
func (r *Run) Elapsed() time.Duration {
	if r.FinishedAt.IsZero() {
		return time.Since(r.StartedAt)
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// GetDisplayTitle returns the media title once known, then the destination
// file name, then the URL
func (r *Run) GetDisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Config.DestinationPath != "" {
		// Support both / and \ separators regardless of host OS
		parts := strings.FieldsFunc(r.Config.DestinationPath, func(c rune) bool {
			return c == '/' || c == '\\'
		})
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}
	return r.Config.SourceURL
}

// generateRunID uses UUID v7 so IDs sort by creation time
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
