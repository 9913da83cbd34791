package workflow

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/progress"
)

var (
	// ErrNotReady is returned by Begin when the URL or destination is empty
	ErrNotReady = errors.New("run config incomplete")
	// ErrRunActive is returned by Begin while a run is in flight
	ErrRunActive = errors.New("run already in progress")
	// ErrInvalidTransition is returned when an event does not fit the current phase
	ErrInvalidTransition = errors.New("invalid phase transition")
)

// URLSchemePrefix is what pasted text must start with to be taken as a URL
const URLSchemePrefix = "http"

// State is the derived UI state after an update
type State struct {
	Phase      model.RunPhase
	Progress   float64 // percent, 0..100
	Downloaded int64
	Total      int64 // 0 when unknown
	Err        error
	RunEnabled bool
	Config     model.RunConfig
}

// Machine tracks the run config and the phase of the current run
type Machine struct {
	mu         sync.Mutex
	cfg        model.RunConfig
	phase      model.RunPhase
	percent    float64
	downloaded int64
	err        error
	normalizer *progress.Normalizer

	listeners map[int]func(State)
	nextID    int
}

// NewMachine creates an idle machine holding cfg
func NewMachine(cfg model.RunConfig) *Machine {
	if !cfg.Format.IsValid() {
		cfg.Format = model.FormatAudio
	}
	return &Machine{
		cfg:        cfg,
		phase:      model.PhaseIdle,
		normalizer: progress.NewNormalizer(),
		listeners:  make(map[int]func(State)),
	}
}

// Subscribe registers fn to receive every new State. The returned func
// removes the subscription.
func (m *Machine) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// State returns the current derived state
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// SetURL updates the source URL
func (m *Machine) SetURL(url string) State {
	return m.editConfig(func(cfg *model.RunConfig) {
		cfg.SourceURL = url
	})
}

// SetDestination updates the destination path
func (m *Machine) SetDestination(path string) State {
	return m.editConfig(func(cfg *model.RunConfig) {
		cfg.DestinationPath = path
	})
}

// SetFormat updates the format and rewrites the destination extension
func (m *Machine) SetFormat(format model.MediaFormat) State {
	return m.editConfig(func(cfg *model.RunConfig) {
		*cfg = cfg.WithFormat(format)
	})
}

// PasteURL takes clipboard text as the source URL when it looks like a single
// URL. The bool reports whether the text was accepted.
func (m *Machine) PasteURL(text string) (State, bool) {
	pasted := strings.TrimSpace(text)
	if !LooksLikeURL(pasted) {
		return m.State(), false
	}
	return m.SetURL(pasted), true
}

// LooksLikeURL reports whether text starts with a URL scheme and is one line
func LooksLikeURL(text string) bool {
	return strings.HasPrefix(text, URLSchemePrefix) && !strings.ContainsAny(text, "\r\n")
}

// Begin starts a run and returns the config snapshot it runs with
func (m *Machine) Begin() (model.RunConfig, error) {
	m.mu.Lock()
	if m.phase.IsActive() {
		m.mu.Unlock()
		return model.RunConfig{}, ErrRunActive
	}
	if !m.cfg.Ready() {
		m.mu.Unlock()
		return model.RunConfig{}, ErrNotReady
	}
	if m.phase.IsTerminal() {
		m.resetLocked()
	}
	m.normalizer = progress.NewNormalizer()
	m.phase = model.PhaseDownloading
	cfg := m.cfg
	state := m.stateLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, state)
	return cfg, nil
}

// Apply feeds a worker event into the machine
func (m *Machine) Apply(ev Event) (State, error) {
	m.mu.Lock()
	if err := m.applyLocked(ev); err != nil {
		state := m.stateLocked()
		m.mu.Unlock()
		return state, err
	}
	state := m.stateLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, state)
	return state, nil
}

// Reset returns a finished run to Idle so the user can retry
func (m *Machine) Reset() State {
	m.mu.Lock()
	if !m.phase.IsTerminal() {
		state := m.stateLocked()
		m.mu.Unlock()
		return state
	}
	m.resetLocked()
	state := m.stateLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, state)
	return state
}

func (m *Machine) applyLocked(ev Event) error {
	switch ev.Kind {
	case EventProgress:
		if m.phase != model.PhaseDownloading {
			return fmt.Errorf("%w: progress in phase %s", ErrInvalidTransition, m.phase)
		}
		m.normalizer.Setup(ev.TotalExact, ev.TotalEstimate)
		m.downloaded = ev.Downloaded
		m.percent = m.normalizer.Observe(ev.Downloaded)
		return nil
	case EventPostprocessing:
		// engines may report several conversion steps
		if m.phase == model.PhasePostprocessing {
			return nil
		}
		return m.moveLocked(model.PhasePostprocessing, progress.PostprocessPercent)
	case EventCopying:
		return m.moveLocked(model.PhaseCopying, progress.CopyPercent)
	case EventDone:
		return m.moveLocked(model.PhaseDone, progress.DonePercent)
	case EventFailed:
		if !m.phase.IsActive() {
			return fmt.Errorf("%w: failure in phase %s", ErrInvalidTransition, m.phase)
		}
		m.phase = model.PhaseError
		m.err = ev.Err
		if m.err == nil {
			m.err = errors.New("run failed")
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown event %s", ErrInvalidTransition, ev.Kind)
	}
}

func (m *Machine) moveLocked(next model.RunPhase, percent float64) error {
	if !m.phase.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.phase, next)
	}
	m.phase = next
	m.percent = percent
	return nil
}

// editConfig applies a config edit. Outside an active run the edit clears any
// stale display; during a run it only affects the next run.
func (m *Machine) editConfig(edit func(*model.RunConfig)) State {
	m.mu.Lock()
	updated := m.cfg
	edit(&updated)
	if updated == m.cfg {
		state := m.stateLocked()
		m.mu.Unlock()
		return state
	}
	m.cfg = updated
	if !m.phase.IsActive() {
		m.resetLocked()
	}
	state := m.stateLocked()
	listeners := m.listenersLocked()
	m.mu.Unlock()

	notify(listeners, state)
	return state
}

func (m *Machine) resetLocked() {
	m.phase = model.PhaseIdle
	m.percent = 0
	m.downloaded = 0
	m.err = nil
	m.normalizer = progress.NewNormalizer()
}

func (m *Machine) stateLocked() State {
	total, _ := m.normalizer.Total()
	return State{
		Phase:      m.phase,
		Progress:   m.percent,
		Downloaded: m.downloaded,
		Total:      total,
		Err:        m.err,
		RunEnabled: m.cfg.Ready() && !m.phase.IsActive(),
		Config:     m.cfg,
	}
}

func (m *Machine) listenersLocked() []func(State) {
	out := make([]func(State), 0, len(m.listeners))
	for _, fn := range m.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(State), state State) {
	for _, fn := range listeners {
		fn(state)
	}
}
