package workflow

import "fmt"

// EventKind identifies what an Event reports
type EventKind int

const (
	// EventProgress carries transfer amounts while downloading
	EventProgress EventKind = iota
	// EventPostprocessing reports that the download finished and conversion began
	EventPostprocessing
	// EventCopying reports that the produced file is being copied
	EventCopying
	// EventDone reports that the copy succeeded
	EventDone
	// EventFailed reports an engine, copy, or cancellation error
	EventFailed
)

// String returns a readable name for the kind
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventPostprocessing:
		return "postprocessing"
	case EventCopying:
		return "copying"
	case EventDone:
		return "done"
	case EventFailed:
		return "failed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single report from the run worker.
// Totals <= 0 mean the engine did not report them.
type Event struct {
	Kind          EventKind
	Downloaded    int64
	TotalExact    int64
	TotalEstimate int64
	OutputPath    string // set on EventDone
	Err           error  // set on EventFailed
}

// Progress builds an EventProgress
func Progress(downloaded, exact, estimate int64) Event {
	return Event{Kind: EventProgress, Downloaded: downloaded, TotalExact: exact, TotalEstimate: estimate}
}

// Failed builds an EventFailed
func Failed(err error) Event {
	return Event{Kind: EventFailed, Err: err}
}
