package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// lockedBuffer guards a bytes.Buffer shared with the spinner goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDraws(t *testing.T) {
	var out lockedBuffer
	s := newSpinnerWithContext(context.Background(), "Computing layout...")
	s.w = &out
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(out.String(), "Computing layout...") {
		t.Errorf("spinner output = %q, want message", out.String())
	}
}

func TestSpinnerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.w = &lockedBuffer{}
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing idempotent stop...")
	s.w = &lockedBuffer{}
	s.Start()

	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	out := captureStdout(t)
	s := newSpinnerWithContext(context.Background(), "Testing error...")
	s.w = &lockedBuffer{}
	s.Start()
	s.StopWithError("Layout failed")

	if !strings.Contains(out.String(), "Layout failed") {
		t.Errorf("output = %q, want error line", out.String())
	}
}
