package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner redraws a single status line on out until stopped or until the
// context it was started with ends.
type spinner struct {
	out      io.Writer
	msg      string
	quit     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// startSpinner begins animating msg on w.
func startSpinner(ctx context.Context, w io.Writer, msg string) *spinner {
	s := &spinner{
		out:      w,
		msg:      msg,
		quit:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.finished)
	defer s.clear()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.msg))
		}
	}
}

func (s *spinner) clear() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.msg)+4))
}

// stop ends the animation and waits until the line is cleared. Calling it
// more than once, or after the context ended, is fine.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.finished
}
