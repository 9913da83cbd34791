package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/ytget/media-downloader/internal/model"
	"github.com/ytget/media-downloader/internal/workflow"
)

// StatusText returns the status line for state
func StatusText(state workflow.State, l *Localization) string {
	switch state.Phase {
	case model.PhaseDownloading:
		label := l.GetText(KeyStatusDownloading)
		switch {
		case state.Total > 0:
			return fmt.Sprintf(ByteProgressFormat, label,
				humanize.Bytes(uint64(state.Downloaded)), humanize.Bytes(uint64(state.Total)))
		case state.Downloaded > 0:
			return fmt.Sprintf(ByteCountFormat, label, humanize.Bytes(uint64(state.Downloaded)))
		default:
			return label
		}
	case model.PhasePostprocessing:
		return l.GetText(KeyStatusConverting)
	case model.PhaseCopying:
		return l.GetText(KeyStatusCopying)
	case model.PhaseDone:
		return l.GetText(KeyStatusDone)
	case model.PhaseError:
		if errors.Is(state.Err, context.Canceled) {
			return l.GetText(KeyStatusCancelled)
		}
		if state.Err != nil {
			return fmt.Sprintf(FailureFormat, l.GetText(KeyStatusFailed), state.Err)
		}
		return l.GetText(KeyStatusFailed)
	default:
		return ""
	}
}
