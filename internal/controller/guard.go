package controller

import "sync"

// Guard tracks which keys have a submission in flight.
type Guard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{inFlight: make(map[string]struct{})}
}

// TryAcquire marks key as busy. It returns false if key already is; otherwise
// the returned release must be called exactly once when the work settles.
func (g *Guard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return nil, false
	}
	g.inFlight[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, true
}

// InFlight returns the number of keys currently held.
func (g *Guard) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}
