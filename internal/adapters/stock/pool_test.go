package stock

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPoolExclusivity(t *testing.T) {
	session := NewMockProvider(nil)
	pool, err := NewPool(session)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	ctx := context.Background()

	got, release, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got != session {
		t.Fatal("Acquire returned a different session")
	}

	// Second acquire must block until release.
	blocked, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	if _, _, err := pool.Acquire(blocked); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded while session held", err)
	}

	release()

	got2, release2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	defer release2()
	if got2 != session {
		t.Fatal("released session not returned to pool")
	}
}

func TestPoolMultipleSessions(t *testing.T) {
	a, b := NewMockProvider(nil), NewMockProvider(nil)
	pool, err := NewPool(a, b)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	ctx := context.Background()

	_, releaseA, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer releaseA()

	_, releaseB, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("second Acquire with two sessions: %v", err)
	}
	defer releaseB()
}

func TestPoolRequiresSessions(t *testing.T) {
	if _, err := NewPool(); err == nil {
		t.Fatal("expected error for empty pool")
	}
	if _, err := NewPool(nil); err == nil {
		t.Fatal("expected error for nil session")
	}
}
