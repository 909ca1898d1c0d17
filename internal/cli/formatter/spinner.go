package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerDelay    = 150 * time.Millisecond
	spinnerInterval = 80 * time.Millisecond
)

// Spinner shows a "thinking" line while a turn is processed. Nothing is
// drawn when it is stopped before spinnerDelay, so instant keyword replies
// do not flicker.
type Spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
}

// StartSpinner starts a spinner on out and returns its Stop method.
func StartSpinner(out io.Writer, message string) func() {
	s := &Spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run()
	return s.Stop
}

func (s *Spinner) run() {
	defer close(s.done)

	select {
	case <-s.stop:
		return
	case <-time.After(spinnerDelay):
	}

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for frame := 0; ; frame++ {
		fmt.Fprintf(s.out, "\r  %s %s", StylePurple.Render(spinnerFrames[frame%len(spinnerFrames)]), Dim(s.message))
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop is idempotent and returns once the line has been cleared.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
