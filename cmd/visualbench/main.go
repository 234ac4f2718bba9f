package main

import (
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Scoring completed
	ExitScoreFailed = 1 // One or more documents failed to score
	ExitError       = 2 // Configuration or runtime error
)

// ScoreFailureError indicates the run completed but at least one document
// could not be scored.
type ScoreFailureError struct {
	Message string
}

func (e *ScoreFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		if _, ok := err.(*ScoreFailureError); ok {
			os.Exit(ExitScoreFailed)
		}
		os.Exit(ExitError)
	}
}
