package platform

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// ClipboardReader returns the current clipboard text
type ClipboardReader interface {
	ReadText() (string, error)
}

// SystemClipboard reads the OS clipboard
type SystemClipboard struct{}

// NewSystemClipboard returns a reader for the OS clipboard
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{}
}

// ReadText returns the clipboard contents
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard is not supported on this system")
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}
