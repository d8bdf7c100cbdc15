// Package ui provides the Bubble Tea TUI for headlines.
package ui

import "github.com/abelbrown/headlines/internal/aggregate"

// RunComplete is sent when an aggregation run finishes.
// Seq identifies the run so results of a superseded run are dropped.
type RunComplete struct {
	Seq    int
	Result *aggregate.Result
	Err    error
}
