package eventloop

import (
	"context"
	"testing"
	"time"
)

func TestQueueRunsInOrder(t *testing.T) {
	q := New(4)
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Post(func() { got = append(got, i) })
	}
	if n := q.Drain(); n != 3 {
		t.Fatalf("drained %d tasks, want 3", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("order = %v", got)
		}
	}
}

func TestQueueNextHonoursContext(t *testing.T) {
	q := New(1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if q.Next(ctx) {
		t.Fatalf("expected Next to give up on empty queue")
	}
}

func TestQueueAcceptsCrossGoroutinePosts(t *testing.T) {
	q := New(1)
	done := false
	go q.Post(func() { done = true })
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := q.RunUntil(ctx, func() bool { return done }); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
}
