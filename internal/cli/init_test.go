package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	applog "fintrack/internal/log"
)

func TestGracefulShutdown(t *testing.T) {
	logger := applog.Discard()

	t.Run("passes bounded context", func(t *testing.T) {
		err := GracefulShutdown(logger, time.Second, func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("expected a deadline on the shutdown context")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("returns shutdown error", func(t *testing.T) {
		want := errors.New("boom")
		err := GracefulShutdown(logger, time.Second, func(context.Context) error { return want })
		if !errors.Is(err, want) {
			t.Fatalf("got %v, want %v", err, want)
		}
	})
}

func TestSignalContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := SignalContext(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("signal context not cancelled with its parent")
	}
}
