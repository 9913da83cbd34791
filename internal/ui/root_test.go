package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/media-downloader/internal/download"
	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/workflow"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c fakeClipboard) ReadText() (string, error) {
	return c.text, c.err
}

// scriptedRunner replays events, or waits for cancellation when blocking is set
type scriptedRunner struct {
	events   []workflow.Event
	blocking bool
	started  chan model.RunConfig
}

func (r *scriptedRunner) Start(ctx context.Context, cfg model.RunConfig) <-chan workflow.Event {
	out := make(chan workflow.Event, len(r.events)+1)
	if r.started != nil {
		r.started <- cfg
	}
	go func() {
		defer close(out)
		for _, ev := range r.events {
			out <- ev
		}
		if r.blocking {
			<-ctx.Done()
			out <- workflow.Failed(ctx.Err())
		}
	}()
	return out
}

// handRunner hands each run a channel the test feeds and closes itself
type handRunner struct {
	mu     sync.Mutex
	events []chan workflow.Event
	ctxs   []context.Context
}

func (r *handRunner) Start(ctx context.Context, cfg model.RunConfig) <-chan workflow.Event {
	ch := make(chan workflow.Event, 4)
	r.mu.Lock()
	r.events = append(r.events, ch)
	r.ctxs = append(r.ctxs, ctx)
	r.mu.Unlock()
	return ch
}

func (r *handRunner) run(i int) (chan workflow.Event, context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[i], r.ctxs[i]
}

func newTestRootUI(t *testing.T, runner download.Runner, clip fakeClipboard) *RootUI {
	t.Helper()
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, runner, clip)
	ui.reveal = func(string) error { return nil }
	t.Cleanup(ui.Close)
	return ui
}

func waitForPhase(t *testing.T, ui *RootUI, want model.RunPhase) workflow.State {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := ui.machine.State(); state.Phase == want {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("phase did not reach %s, last %s", want, ui.machine.State().Phase)
	return workflow.State{}
}

func TestRootUI_RunButtonFollowsReadiness(t *testing.T) {
	ui := newTestRootUI(t, &scriptedRunner{}, fakeClipboard{})

	if !ui.runBtn.Disabled() {
		t.Fatal("run button should start disabled")
	}

	ui.urlEntry.SetText("https://example.com/watch?v=1")
	if !ui.runBtn.Disabled() {
		t.Error("run button should stay disabled without a destination")
	}

	ui.fileEntry.SetText("/tmp/out.mp3")
	if ui.runBtn.Disabled() {
		t.Error("run button should be enabled once url and destination are set")
	}

	ui.urlEntry.SetText("")
	if !ui.runBtn.Disabled() {
		t.Error("clearing the url should disable the run button")
	}
}

func TestRootUI_Paste(t *testing.T) {
	tests := []struct {
		name    string
		clip    fakeClipboard
		wantURL string
	}{
		{"url accepted", fakeClipboard{text: "  https://example.com/v  "}, "https://example.com/v"},
		{"plain text ignored", fakeClipboard{text: "hello"}, "keep"},
		{"multi-line ignored", fakeClipboard{text: "https://a\nhttps://b"}, "keep"},
		{"read error ignored", fakeClipboard{err: errors.New("no clipboard")}, "keep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := newTestRootUI(t, &scriptedRunner{}, tt.clip)
			ui.urlEntry.SetText("keep")

			ui.onPaste()

			if got := ui.machine.State().Config.SourceURL; got != tt.wantURL {
				t.Errorf("SourceURL = %q, want %q", got, tt.wantURL)
			}
			if ui.urlEntry.Text != tt.wantURL {
				t.Errorf("entry text = %q, want %q", ui.urlEntry.Text, tt.wantURL)
			}
		})
	}
}

func TestRootUI_FormatRewritesDestination(t *testing.T) {
	ui := newTestRootUI(t, &scriptedRunner{}, fakeClipboard{})
	ui.formatRadio.SetSelected(ui.labelByFormat[model.FormatAudio])
	ui.fileEntry.SetText("/tmp/out.mp3")

	ui.formatRadio.SetSelected(ui.labelByFormat[model.FormatVideo])
	if ui.fileEntry.Text != "/tmp/out.mp4" {
		t.Errorf("after video: %q", ui.fileEntry.Text)
	}
	if ui.settings.GetMediaFormat() != model.FormatVideo {
		t.Error("video format not remembered")
	}

	ui.formatRadio.SetSelected(ui.labelByFormat[model.FormatAudio])
	if ui.fileEntry.Text != "/tmp/out.mp3" {
		t.Errorf("after audio: %q", ui.fileEntry.Text)
	}
}

func TestRootUI_RunToDone(t *testing.T) {
	runner := &scriptedRunner{
		events: []workflow.Event{
			workflow.Progress(10, 100, 0),
			{Kind: workflow.EventPostprocessing},
			{Kind: workflow.EventCopying},
			{Kind: workflow.EventDone, OutputPath: "/tmp/out.mp3"},
		},
		started: make(chan model.RunConfig, 1),
	}
	ui := newTestRootUI(t, runner, fakeClipboard{})
	ui.urlEntry.SetText("https://example.com/v")
	ui.fileEntry.SetText("/tmp/out.mp3")

	ui.onRun()

	cfg := <-runner.started
	if cfg.SourceURL != "https://example.com/v" || cfg.DestinationPath != "/tmp/out.mp3" {
		t.Errorf("unexpected run config %+v", cfg)
	}

	state := waitForPhase(t, ui, model.PhaseDone)
	if state.Progress != 100 {
		t.Errorf("progress = %v, want 100", state.Progress)
	}
	if ui.output() != "/tmp/out.mp3" {
		t.Errorf("last output = %q", ui.output())
	}
	if got := StatusText(state, ui.localization); got != ui.localization.GetText(KeyStatusDone) {
		t.Errorf("status = %q", got)
	}
}

func TestRootUI_StopCancelsRun(t *testing.T) {
	runner := &scriptedRunner{
		events:   []workflow.Event{workflow.Progress(5, 0, 0)},
		blocking: true,
	}
	ui := newTestRootUI(t, runner, fakeClipboard{})
	ui.urlEntry.SetText("https://example.com/v")
	ui.fileEntry.SetText("/tmp/out.mp3")

	ui.onRun()
	if _, err := ui.machine.Begin(); !errors.Is(err, workflow.ErrRunActive) {
		t.Errorf("second Begin error = %v, want ErrRunActive", err)
	}

	ui.stopRun()

	state := waitForPhase(t, ui, model.PhaseError)
	if !errors.Is(state.Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", state.Err)
	}
	if got := StatusText(state, ui.localization); got != ui.localization.GetText(KeyStatusCancelled) {
		t.Errorf("status = %q", got)
	}
}

func TestRootUI_StopReachesRunStartedBeforePreviousConsumerExit(t *testing.T) {
	runner := &handRunner{}
	ui := newTestRootUI(t, runner, fakeClipboard{})
	ui.urlEntry.SetText("https://example.com/v")
	ui.fileEntry.SetText("/tmp/out.mp3")

	ui.onRun()
	first, firstCtx := runner.run(0)
	first <- workflow.Event{Kind: workflow.EventCopying}
	first <- workflow.Event{Kind: workflow.EventDone, OutputPath: "/tmp/out.mp3"}
	waitForPhase(t, ui, model.PhaseDone)

	// second run starts while the first consumer is still attached
	ui.onRun()
	second, secondCtx := runner.run(1)
	defer close(second)

	close(first)
	select {
	case <-firstCtx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("first consumer did not exit")
	}

	ui.stopRun()
	select {
	case <-secondCtx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel the second run")
	}
}
