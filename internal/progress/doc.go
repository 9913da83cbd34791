package progress

// Package progress maps engine transfer reports onto a bounded percentage for
// display, reserving the top of the bar for the conversion and copy checkpoints.
