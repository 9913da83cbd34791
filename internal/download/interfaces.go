package download

import (
	"context"

	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/workflow"
)

// Runner defines the interface the UI uses to start runs.
type Runner interface {
	// Start launches a run in the background. The returned channel receives
	// workflow events and is closed once the run ends. Cancelling ctx aborts
	// the run with a Failed event wrapping context.Canceled.
	Start(ctx context.Context, cfg model.RunConfig) <-chan workflow.Event
}

// Engine performs the download and conversion.
type Engine interface {
	// Fetch downloads req.URL into req.WorkDir, calling onProgress
	// synchronously for every engine report.
	Fetch(ctx context.Context, req Request, onProgress func(Progress)) (*Media, error)
}

// URLChecker vets a URL before the engine runs.
type URLChecker interface {
	Check(ctx context.Context, rawURL string) error
}

// Request describes a single engine invocation.
type Request struct {
	URL            string
	Format         model.MediaFormat
	WorkDir        string
	OutputTemplate string
	FFmpegLocation string
}

// ProgressStatus is the status carried by an engine report.
type ProgressStatus string

const (
	StatusDownloading    ProgressStatus = "downloading"
	StatusFinished       ProgressStatus = "finished"
	StatusPostprocessing ProgressStatus = "postprocessing"
	StatusError          ProgressStatus = "error"
)

// Progress is one engine report. Byte counts <= 0 mean not reported.
type Progress struct {
	Status        ProgressStatus
	Downloaded    int64
	TotalExact    int64
	TotalEstimate int64
}

// Media describes what the engine produced. Filename is the file the engine
// downloaded before any conversion; empty when it was not reported.
type Media struct {
	ID       string
	Title    string
	Filename string
}
