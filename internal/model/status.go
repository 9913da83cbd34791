package model

// RunPhase represents the user-visible phase of a single run
type RunPhase string

const (
	// PhaseIdle is the initial phase and the phase entered after config edits
	PhaseIdle RunPhase = "Idle"

	// PhaseDownloading means the engine is transferring the media
	PhaseDownloading RunPhase = "Downloading"

	// PhasePostprocessing means the download finished and conversion has begun
	PhasePostprocessing RunPhase = "Postprocessing"

	// PhaseCopying means the produced file is being copied to the destination
	PhaseCopying RunPhase = "Copying"

	// PhaseDone means the copy succeeded
	PhaseDone RunPhase = "Done"

	// PhaseError means the run failed
	PhaseError RunPhase = "Error"
)

var phaseTransitions = map[RunPhase][]RunPhase{
	PhaseIdle:           {PhaseDownloading},
	PhaseDownloading:    {PhasePostprocessing, PhaseCopying, PhaseError},
	PhasePostprocessing: {PhaseCopying, PhaseError},
	PhaseCopying:        {PhaseDone, PhaseError},
	PhaseDone:           {PhaseIdle},
	PhaseError:          {PhaseIdle},
}

// String returns the string representation of RunPhase
func (p RunPhase) String() string {
	return string(p)
}

// IsActive returns true while a run is in flight
func (p RunPhase) IsActive() bool {
	return p == PhaseDownloading || p == PhasePostprocessing || p == PhaseCopying
}

// IsTerminal returns true if the run has ended (done or error)
func (p RunPhase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseError
}

// CanTransitionTo reports whether next is a legal successor of p
func (p RunPhase) CanTransitionTo(next RunPhase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
