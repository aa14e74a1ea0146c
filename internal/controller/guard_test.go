package controller

import (
	"sync"
	"testing"
)

func TestGuard_TryAcquire(t *testing.T) {
	g := NewGuard()

	release, ok := g.TryAcquire("a")
	if !ok {
		t.Fatal("Expected first acquire to succeed")
	}
	if _, ok := g.TryAcquire("a"); ok {
		t.Error("Expected second acquire of the same key to fail")
	}
	if _, ok := g.TryAcquire("b"); !ok {
		t.Error("Expected a different key to be acquirable")
	}

	release()
	release() // second call is a no-op

	if _, ok := g.TryAcquire("a"); !ok {
		t.Error("Expected key to be acquirable after release")
	}
}

func TestGuard_Concurrent(t *testing.T) {
	g := NewGuard()
	const goroutines = 50

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners int
		hold    = make(chan struct{})
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if release, ok := g.TryAcquire("shared"); ok {
				mu.Lock()
				winners++
				mu.Unlock()
				<-hold
				release()
			}
		}()
	}

	close(hold)
	wg.Wait()

	if winners < 1 {
		t.Error("Expected at least one goroutine to acquire the key")
	}
	if g.InFlight() != 0 {
		t.Errorf("Expected no keys in flight, got %d", g.InFlight())
	}
}
