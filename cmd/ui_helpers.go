package cmd

import (
	"fmt"
	"os"
	"sync"
	"time"

	"atomicgo.dev/cursor"
)

// spinnerFrames are cycled while a long-running warehouse or model call is
// in flight.
var spinnerFrames = []string{"|", "/", "-", "\\"}

const (
	spinnerInterval = 120 * time.Millisecond
	// maxSpinnerLine caps the rendered line so a runaway label cannot wrap
	// and leave artifacts on narrow terminals.
	maxSpinnerLine = 2000
)

// startSpinner animates an inline status line on stdout until the returned
// stop function is called. Stopping clears the line, so the caller can print
// the real result in its place. The terminal cursor is hidden while the
// spinner runs.
func startSpinner(text string) func() {
	cursor.Hide()

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		width := 0
		for frame := 0; ; frame++ {
			select {
			case <-done:
				fmt.Fprintf(os.Stdout, "\r%*s\r", width, "")
				return
			case <-ticker.C:
				line := fmt.Sprintf("%s %s", spinnerFrames[frame%len(spinnerFrames)], text)
				if len(line) > maxSpinnerLine {
					line = line[:maxSpinnerLine]
				}
				if len(line) > width {
					width = len(line)
				}
				fmt.Fprintf(os.Stdout, "\r%s", line)
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
		cursor.Show()
	}
}
