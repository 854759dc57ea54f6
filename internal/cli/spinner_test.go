package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
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

func TestSpinnerBasic(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWithContext(context.Background(), &buf, "Rendering...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Rendering...") {
		t.Errorf("spinner output %q should contain the message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var buf syncBuffer
	s := newSpinnerWithContext(ctx, &buf, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf syncBuffer
	s := newSpinnerWithContext(ctx, &buf, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWithContext(context.Background(), &buf, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWithContext(context.Background(), &buf, "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")

	if !strings.Contains(buf.String(), "Failed!") {
		t.Errorf("output %q should contain the error message", buf.String())
	}
}

func TestWithSpinnerNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	got, err := withSpinner(context.Background(), &buf, "working", func(context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Fatalf("withSpinner() = %d, %v; want 42, nil", got, err)
	}
	if buf.Len() != 0 {
		t.Errorf("no spinner expected on a non-terminal writer, got %q", buf.String())
	}
}

func TestSpinWhile(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWithContext(context.Background(), &buf, "Rendering family.json")
	if _, err := spinWhile(context.Background(), s, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	}); err == nil {
		t.Fatal("spinWhile() should return fn's error")
	}
	if !strings.Contains(buf.String(), "Rendering family.json failed") {
		t.Errorf("output %q should report the failure", buf.String())
	}

	var ok syncBuffer
	s = newSpinnerWithContext(context.Background(), &ok, "Rendering family.json")
	got, err := spinWhile(context.Background(), s, func(context.Context) (int, error) {
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Fatalf("spinWhile() = %d, %v; want 7, nil", got, err)
	}
	if strings.Contains(ok.String(), "failed") {
		t.Errorf("success should not print a failure line: %q", ok.String())
	}
}

func TestSpinWhileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf syncBuffer
	s := newSpinnerWithContext(ctx, &buf, "Rendering")
	_, err := spinWhile(ctx, s, func(ctx context.Context) (int, error) {
		cancel()
		return 0, ctx.Err()
	})
	if err != context.Canceled {
		t.Fatalf("spinWhile() error = %v, want context.Canceled", err)
	}
	if strings.Contains(buf.String(), "failed") {
		t.Errorf("cancellation should not print a failure line: %q", buf.String())
	}
}
