package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	var out syncBuffer
	s := startSpinner(context.Background(), &out, "Rendering graph...")
	time.Sleep(4 * spinnerInterval)
	s.stop()

	got := out.String()
	if !strings.Contains(got, "Rendering graph...") {
		t.Errorf("spinner output %q lacks message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner output %q does not end with a cleared line", got)
	}
}

func TestSpinnerStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, &syncBuffer{}, "Rendering graph...")
	cancel()

	select {
	case <-s.finished:
	case <-time.After(time.Second):
		t.Fatal("spinner still running after context cancellation")
	}
	s.stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinner(context.Background(), &syncBuffer{}, "Rendering graph...")
	s.stop()
	s.stop()
}
