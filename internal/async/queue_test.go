package async_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"warehouse-backend/internal/async"
)

func TestQueue_RunsSubmittedTasks(t *testing.T) {
	q := async.NewQueue(logrus.New(), 2, 16)

	var ran atomic.Int32
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		q.Submit(func(ctx context.Context) {
			if ran.Add(1) == 5 {
				close(done)
			}
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("tasks did not run, got %d of 5", ran.Load())
	}

	q.Close(time.Second)
}

func TestQueue_CloseDrainsPendingTasks(t *testing.T) {
	q := async.NewQueue(logrus.New(), 1, 16)

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		q.Submit(func(ctx context.Context) {
			ran.Add(1)
		})
	}

	q.Close(2 * time.Second)
	if got := ran.Load(); got != 10 {
		t.Errorf("expected 10 tasks drained before close, got %d", got)
	}
}

func TestQueue_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	q := async.NewQueue(log, 1, 1)

	release := make(chan struct{})
	q.Submit(func(ctx context.Context) { <-release })

	// Fill the single buffer slot, then overflow it. Submit must return
	// immediately either way.
	submitted := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			q.Submit(func(ctx context.Context) {})
		}
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(release)
	q.Close(time.Second)
}
