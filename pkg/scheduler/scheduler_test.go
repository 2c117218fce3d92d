package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEnqueueReturnsTaskOutcome(t *testing.T) {
	s := New(2)
	defer s.Close()

	fut := s.Enqueue(func() (any, error) {
		return 42, nil
	})

	v, err := fut.Wait()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(int) != 42 {
		t.Errorf("got %v, want 42", v)
	}
}

func TestEnqueueForwardsErrors(t *testing.T) {
	s := New(1)
	defer s.Close()

	boom := errors.New("boom")
	fut := s.Enqueue(func() (any, error) {
		return nil, boom
	})

	if _, err := fut.Wait(); !errors.Is(err, boom) {
		t.Errorf("got %v, want %v", err, boom)
	}
}

func TestConcurrencyCeiling(t *testing.T) {
	const limit = 4
	const tasks = 40

	s := New(limit)
	defer s.Close()

	var inFlight, peak int64
	var wg sync.WaitGroup
	wg.Add(tasks)

	for i := 0; i < tasks; i++ {
		fut := s.Enqueue(func() (any, error) {
			n := atomic.AddInt64(&inFlight, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return nil, nil
		})
		go func() {
			defer wg.Done()
			fut.Wait()
		}()
	}

	wg.Wait()
	if p := atomic.LoadInt64(&peak); p > limit {
		t.Errorf("peak concurrency %d exceeds limit %d", p, limit)
	}
}

func TestEnqueueDoesNotBlock(t *testing.T) {
	s := New(1)
	defer s.Close()

	release := make(chan struct{})
	blocker := s.Enqueue(func() (any, error) {
		<-release
		return nil, nil
	})

	// With the single slot occupied, a burst of enqueues must return
	// immediately and simply grow the queue.
	done := make(chan struct{})
	var futs []*Future
	go func() {
		for i := 0; i < 1000; i++ {
			futs = append(futs, s.Enqueue(func() (any, error) { return nil, nil }))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("enqueue blocked while worker slot was occupied")
	}

	close(release)
	blocker.Wait()
	for _, f := range futs {
		if _, err := f.Wait(); err != nil {
			t.Fatalf("queued task failed: %v", err)
		}
	}
}

func TestFIFOAdmission(t *testing.T) {
	s := New(1)
	defer s.Close()

	release := make(chan struct{})
	first := s.Enqueue(func() (any, error) {
		<-release
		return nil, nil
	})

	var order []int
	var mu sync.Mutex
	var futs []*Future
	for i := 0; i < 10; i++ {
		i := i
		futs = append(futs, s.Enqueue(func() (any, error) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil, nil
		}))
	}

	close(release)
	first.Wait()
	for _, f := range futs {
		f.Wait()
	}

	for i, got := range order {
		if got != i {
			t.Fatalf("admission order %v not FIFO", order)
		}
	}
}

func TestEnqueueAfterClose(t *testing.T) {
	s := New(1)
	s.Close()

	if _, err := s.Enqueue(func() (any, error) { return nil, nil }).Wait(); !errors.Is(err, ErrClosed) {
		t.Errorf("got %v, want ErrClosed", err)
	}
}
