package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/media-downloader/internal/model"
)

// Engine constants
const (
	// DownloadFormat is the container requested from the engine for both targets
	DownloadFormat = "mp4"

	// ProgressInterval throttles engine progress callbacks
	ProgressInterval = 250 * time.Millisecond
)

var (
	// ErrEngineReported is returned when the engine reports an error status
	ErrEngineReported = errors.New("engine reported an error")
	// ErrNoOutput is returned when the engine finished without naming its output
	ErrNoOutput = errors.New("engine reported no output file")
)

// YTDLPEngine runs yt-dlp through go-ytdlp
type YTDLPEngine struct {
	executable string
}

// NewYTDLPEngine creates an engine. An empty executable uses yt-dlp from PATH.
func NewYTDLPEngine(executable string) *YTDLPEngine {
	return &YTDLPEngine{executable: executable}
}

// BuildCommand configures a yt-dlp command for req
func (e *YTDLPEngine) BuildCommand(req Request) *ytdlp.Command {
	dl := ytdlp.New().
		Format(DownloadFormat).
		NoPlaylist().
		ForceOverwrites().
		PrintJSON().
		Output(filepath.Join(req.WorkDir, req.OutputTemplate))

	if e.executable != "" {
		dl.SetExecutable(e.executable)
	}
	if req.FFmpegLocation != "" {
		dl.FFmpegLocation(req.FFmpegLocation)
	}
	if req.Format == model.FormatAudio {
		dl.KeepVideo().
			ExtractAudio().
			AudioFormat(req.Format.Extension())
	}
	return dl
}

// Fetch runs the engine. Engine output is captured by go-ytdlp and never
// printed. An error status from the engine aborts the run.
func (e *YTDLPEngine) Fetch(ctx context.Context, req Request, onProgress func(Progress)) (*Media, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reported atomic.Bool
	var seen mediaTracker
	dl := e.BuildCommand(req)
	dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
		seen.observe(update)
		p := convertUpdate(update)
		if p.Status == StatusError {
			reported.Store(true)
			cancel()
		}
		onProgress(p)
	})

	result, err := dl.Run(ctx, req.URL)
	if reported.Load() {
		return nil, ErrEngineReported
	}
	if err != nil {
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}

	media := seen.media()
	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("read extracted info: %w", err)
	}
	if len(info) > 0 {
		mergeInfo(media, info[0])
	}
	if media.ID == "" && media.Filename == "" {
		return nil, ErrNoOutput
	}
	return media, nil
}

// mediaTracker remembers what progress updates revealed about the download
type mediaTracker struct {
	mu      sync.Mutex
	current Media
}

func (t *mediaTracker) observe(update ytdlp.ProgressUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if update.Filename != "" && update.Status != ytdlp.ProgressStatusError {
		t.current.Filename = update.Filename
	}
	if update.Info == nil {
		return
	}
	if update.Info.ID != "" {
		t.current.ID = update.Info.ID
	}
	if update.Info.Title != nil {
		t.current.Title = *update.Info.Title
	}
}

func (t *mediaTracker) media() *Media {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := t.current
	return &m
}

// mergeInfo fills media from the engine's info JSON, which takes precedence
func mergeInfo(media *Media, info *ytdlp.ExtractedInfo) {
	if info.ID != "" {
		media.ID = info.ID
	}
	if info.Title != nil && *info.Title != "" {
		media.Title = *info.Title
	}
	switch {
	case info.Filename != nil && *info.Filename != "":
		media.Filename = *info.Filename
	case info.AltFilename != nil && *info.AltFilename != "":
		media.Filename = *info.AltFilename
	}
}

// convertUpdate maps a go-ytdlp update onto a Progress. go-ytdlp folds the
// estimated total into TotalBytes when no exact size is known.
func convertUpdate(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		Downloaded: int64(update.DownloadedBytes),
		TotalExact: int64(update.TotalBytes),
	}
	switch update.Status {
	case ytdlp.ProgressStatusError:
		p.Status = StatusError
	case ytdlp.ProgressStatusFinished:
		p.Status = StatusFinished
	case ytdlp.ProgressStatusPostProcessing:
		p.Status = StatusPostprocessing
	default:
		p.Status = StatusDownloading
	}
	return p
}
