package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user input to the workflow state machine, starts runs through the
// download service, and renders each workflow state via data bindings. All UI
// strings are localized via Localization.
