package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/platform"
	"github.com/ytget/media-downloader/internal/workflow"
)

// Service constants
const (
	// LockFileName guards the work directory against concurrent runs
	LockFileName = ".media-downloader.lock"

	// EventBufferSize is the capacity of the per-run event channel
	EventBufferSize = 32
)

// ErrBusy is returned when another run holds the work directory lock
var ErrBusy = errors.New("another run is using the work directory")

// Options configures a Service
type Options struct {
	WorkDir        string
	OutputTemplate string
	FFmpegLocation string
	Checker        URLChecker
}

// Service handles run operations
type Service struct {
	engine   Engine
	checker  URLChecker
	workDir  string
	template string
	ffmpeg   string
	lock     *flock.Flock
	copyFile func(src, dst string) error
}

// NewService creates a new run service
func NewService(engine Engine, opts Options) *Service {
	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	template := opts.OutputTemplate
	if template == "" {
		template = "%(id)s.%(ext)s"
	}
	return &Service{
		engine:   engine,
		checker:  opts.Checker,
		workDir:  workDir,
		template: template,
		ffmpeg:   opts.FFmpegLocation,
		lock:     flock.New(filepath.Join(workDir, LockFileName)),
		copyFile: platform.CopyFile,
	}
}

// Start launches a run on a background goroutine
func (s *Service) Start(ctx context.Context, cfg model.RunConfig) <-chan workflow.Event {
	events := make(chan workflow.Event, EventBufferSize)
	go func() {
		defer close(events)
		s.run(ctx, model.NewRun(cfg), events)
	}()
	return events
}

// ProducedPath returns the final file the engine leaves for media in format.
// The reported filename wins; conversion only changes its extension. Without
// one the default template layout <id>.<ext> is assumed.
func (s *Service) ProducedPath(media *Media, format model.MediaFormat) string {
	if media.Filename != "" {
		return model.ReplaceExtension(media.Filename, format.Extension())
	}
	return filepath.Join(s.workDir, media.ID+"."+format.Extension())
}

// run drives one run. The terminal event (Done or Failed) is always delivered;
// intermediate events are dropped once ctx is cancelled.
func (s *Service) run(ctx context.Context, run *model.Run, events chan<- workflow.Event) {
	cfg := run.Config
	log.Printf("Run %s started: %s -> %q (%s)", run.ID, cfg.SourceURL, run.GetDisplayTitle(), cfg.Format)

	emit := func(ev workflow.Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
	fail := func(err error) {
		run.LastError = err.Error()
		run.FinishedAt = time.Now()
		log.Printf("Run %s failed after %s: %v", run.ID, run.Elapsed().Round(time.Millisecond), err)
		events <- workflow.Failed(err)
	}

	if err := platform.CreateDirectoryIfNotExists(s.workDir); err != nil {
		fail(fmt.Errorf("prepare work directory: %w", err))
		return
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		fail(fmt.Errorf("acquire work directory lock: %w", err))
		return
	}
	if !locked {
		fail(ErrBusy)
		return
	}
	defer func() {
		if err := s.lock.Unlock(); err != nil {
			log.Printf("Run %s: failed to release work directory lock: %v", run.ID, err)
		}
	}()

	if s.checker != nil {
		if err := s.checker.Check(ctx, cfg.SourceURL); err != nil {
			fail(err)
			return
		}
	}

	req := Request{
		URL:            cfg.SourceURL,
		Format:         cfg.Format,
		WorkDir:        s.workDir,
		OutputTemplate: s.template,
		FFmpegLocation: s.ffmpeg,
	}

	converting := false
	media, err := s.engine.Fetch(ctx, req, func(p Progress) {
		if ctx.Err() != nil {
			return
		}
		switch p.Status {
		case StatusDownloading:
			// later transfers (e.g. subtitles) do not move the bar back
			if !converting {
				emit(workflow.Progress(p.Downloaded, p.TotalExact, p.TotalEstimate))
			}
		case StatusFinished, StatusPostprocessing:
			if !converting {
				converting = true
				emit(workflow.Event{Kind: workflow.EventPostprocessing})
			}
		}
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		fail(fmt.Errorf("run cancelled: %w", ctxErr))
		return
	}
	if err != nil {
		fail(fmt.Errorf("download: %w", err))
		return
	}

	run.Title = media.Title
	run.OutputPath = s.ProducedPath(media, cfg.Format)
	if !emit(workflow.Event{Kind: workflow.EventCopying}) {
		fail(fmt.Errorf("run cancelled: %w", ctx.Err()))
		return
	}

	mime, err := platform.CheckMediaKind(run.OutputPath, cfg.Format.MediaKind())
	if err != nil {
		fail(fmt.Errorf("check produced file: %w", err))
		return
	}
	log.Printf("Run %s produced %q at %s (%s)", run.ID, run.GetDisplayTitle(), run.OutputPath, mime)

	if err := s.copyFile(run.OutputPath, cfg.DestinationPath); err != nil {
		fail(fmt.Errorf("copy to destination: %w", err))
		return
	}

	run.FinishedAt = time.Now()
	log.Printf("Run %s done in %s: %q -> %s", run.ID, run.Elapsed().Round(time.Millisecond), run.GetDisplayTitle(), cfg.DestinationPath)
	events <- workflow.Event{Kind: workflow.EventDone, OutputPath: cfg.DestinationPath}
}
