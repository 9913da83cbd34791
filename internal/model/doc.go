package model

// Package model defines domain data structures used across the app: the run
// configuration entered by the user, the workflow phase enum, and the record of
// a single run. Structures are designed for direct binding in the UI and
// explicit state transitions.
