package progress

import "math"

// Checkpoints shown by the progress bar, in percent
const (
	UnknownPercent     = 25.0
	PostprocessPercent = 80.0
	CopyPercent        = 90.0
	DonePercent        = 100.0

	// DownloadCap keeps download progress below the postprocessing checkpoint
	DownloadCap = PostprocessPercent
)

// Normalizer converts transferred amounts into a capped percentage.
// A Normalizer is created per run and is not safe for concurrent use.
type Normalizer struct {
	total       int64
	established bool
	cap         float64
	high        float64
}

// NewNormalizer returns a normalizer capped at DownloadCap
func NewNormalizer() *Normalizer {
	return &Normalizer{cap: DownloadCap}
}

// Setup establishes the total for the run. Values <= 0 mean the engine did not
// report that total. Exact wins over approximate. Once a total is known later
// calls are ignored, even if they carry a different or more precise value.
func (n *Normalizer) Setup(exact, approximate int64) {
	if n.established {
		return
	}
	switch {
	case exact > 0:
		n.total = exact
	case approximate > 0:
		n.total = approximate
	default:
		return
	}
	n.established = true
}

// Observe returns the percentage for the current transferred amount.
// Without a total it returns UnknownPercent. With a total the value is capped
// and never lower than a value previously returned for this run.
func (n *Normalizer) Observe(current int64) float64 {
	if !n.established {
		return UnknownPercent
	}
	value := math.Min(100*float64(current)/float64(n.total), n.cap)
	if value < n.high {
		return n.high
	}
	n.high = value
	return value
}

// Total returns the established total, if any
func (n *Normalizer) Total() (int64, bool) {
	return n.total, n.established
}
