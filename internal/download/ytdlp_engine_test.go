package download

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/media-downloader/internal/model"
)

func TestConvertUpdate(t *testing.T) {
	tests := []struct {
		status   ytdlp.ProgressStatus
		expected ProgressStatus
	}{
		{ytdlp.ProgressStatusDownloading, StatusDownloading},
		{ytdlp.ProgressStatusFinished, StatusFinished},
		{ytdlp.ProgressStatusPostProcessing, StatusPostprocessing},
		{ytdlp.ProgressStatusError, StatusError},
	}

	for _, test := range tests {
		p := convertUpdate(ytdlp.ProgressUpdate{Status: test.status, DownloadedBytes: 10, TotalBytes: 40})
		assert.Equal(t, test.expected, p.Status, string(test.status))
		assert.Equal(t, int64(10), p.Downloaded)
		assert.Equal(t, int64(40), p.TotalExact)
		assert.Zero(t, p.TotalEstimate)
	}
}

func TestNewYTDLPEngine(t *testing.T) {
	engine := NewYTDLPEngine("/usr/local/bin/yt-dlp")
	assert.Equal(t, "/usr/local/bin/yt-dlp", engine.executable)
	assert.NotNil(t, engine.BuildCommand(Request{WorkDir: "/tmp", OutputTemplate: "%(id)s.%(ext)s"}))
}

// fakeExecutable installs testdata/fake-yt-dlp.sh as an executable in a temp dir
func fakeExecutable(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}
	script, err := os.ReadFile(filepath.Join("testdata", "fake-yt-dlp.sh"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "yt-dlp")
	require.NoError(t, os.WriteFile(path, script, 0755))
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return path
}

func TestYTDLPEngineFetch(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		template string
		file     string
	}{
		{"info from json", "https://example.com/ok", "%(id)s.%(ext)s", "abc123.mp4"},
		{"info from progress only", "https://example.com/nojson", "%(id)s.%(ext)s", "abc123.mp4"},
		{"custom template", "https://example.com/ok", "%(id)s-%(title)s.%(ext)s", "abc123-Sample.mp4"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			engine := NewYTDLPEngine(fakeExecutable(t))
			workDir := t.TempDir()
			req := Request{URL: test.url, Format: model.FormatVideo, WorkDir: workDir, OutputTemplate: test.template}

			var statuses []ProgressStatus
			media, err := engine.Fetch(context.Background(), req, func(p Progress) {
				statuses = append(statuses, p.Status)
			})

			require.NoError(t, err)
			assert.Equal(t, "abc123", media.ID)
			assert.Equal(t, "Sample", media.Title)
			assert.Equal(t, filepath.Join(workDir, test.file), media.Filename)
			assert.FileExists(t, media.Filename)
			assert.Equal(t, []ProgressStatus{StatusDownloading, StatusFinished}, statuses)
		})
	}
}

func TestYTDLPEngineFetchErrorStatus(t *testing.T) {
	engine := NewYTDLPEngine(fakeExecutable(t))
	req := Request{URL: "https://example.com/fail", Format: model.FormatAudio, WorkDir: t.TempDir(), OutputTemplate: "%(id)s.%(ext)s"}

	var last Progress
	_, err := engine.Fetch(context.Background(), req, func(p Progress) { last = p })

	assert.ErrorIs(t, err, ErrEngineReported)
	assert.Equal(t, StatusError, last.Status)
}

func TestYTDLPEngineFetchNoOutput(t *testing.T) {
	engine := NewYTDLPEngine(fakeExecutable(t))
	req := Request{URL: "https://example.com/silent", Format: model.FormatVideo, WorkDir: t.TempDir(), OutputTemplate: "%(id)s.%(ext)s"}

	_, err := engine.Fetch(context.Background(), req, func(Progress) {})

	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestYTDLPEngineFetchCancelled(t *testing.T) {
	engine := NewYTDLPEngine(fakeExecutable(t))
	req := Request{URL: "https://example.com/slow", Format: model.FormatVideo, WorkDir: t.TempDir(), OutputTemplate: "%(id)s.%(ext)s"}

	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{}, 1)
	go func() {
		<-started
		cancel()
	}()

	begin := time.Now()
	_, err := engine.Fetch(ctx, req, func(Progress) {
		select {
		case started <- struct{}{}:
		default:
		}
	})

	require.Error(t, err)
	assert.Less(t, time.Since(begin), 5*time.Second)
}

func TestBuildCommandRequestsInfoJSON(t *testing.T) {
	engine := NewYTDLPEngine("yt-dlp")
	cmd := engine.BuildCommand(Request{URL: "https://example.com/v", Format: model.FormatAudio, WorkDir: "work", OutputTemplate: "%(id)s.%(ext)s"})

	args := strings.Join(cmd.BuildCommand(context.Background(), "https://example.com/v").Args, " ")
	assert.Contains(t, args, "--print-json")
	assert.Contains(t, args, "--no-playlist")
	assert.Contains(t, args, "--extract-audio")
	assert.Contains(t, args, filepath.Join("work", "%(id)s.%(ext)s"))
}
