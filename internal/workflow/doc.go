// Package workflow implements the run state machine behind the main window.
//
// A Machine owns the RunConfig the user is editing and the phase of the
// current run. Input handlers call the Set* methods, the run action calls
// Begin, and events produced by the background download worker are fed
// through Apply. Every change yields a State value that the UI renders;
// subscribers registered with Subscribe receive each new State.
package workflow
