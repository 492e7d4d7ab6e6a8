package formatter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a braille spinner next to a message while a slow call
// runs. It owns its output line, redrawing it in place and clearing it on
// Stop, so nothing else should write to w while it spins.
type Spinner struct {
	w       io.Writer
	message string

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner returns a spinner writing to w. A nil w targets stdout.
func NewSpinner(w io.Writer, message string) *Spinner {
	if w == nil {
		w = os.Stdout
	}
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation in the background. Call Stop to end it.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := spinnerFrames[i%len(spinnerFrames)]
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(frame), Dim(s.message))
		select {
		case <-s.stop:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop halts the animation and clears the spinner line. Safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// StartSpinner starts a stdout spinner and returns its stop function.
func StartSpinner(message string) func() {
	s := NewSpinner(nil, message)
	s.Start()
	return s.Stop
}
