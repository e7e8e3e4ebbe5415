package resilience

import (
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// SingleFlight collapses concurrent calls that share a key into one
// execution. A panic in fn reaches every waiter as an error.
type SingleFlight[T any] struct {
	mu       sync.Mutex
	inFlight map[string]*flight[T]
}

type flight[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Do runs fn for key unless a call for key is already running, in which case
// it waits for that call. shared reports whether the result came from
// another caller's execution.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (v T, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.inFlight[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flight[T])
	}
	f := &flight[T]{done: make(chan struct{})}
	g.inFlight[key] = f
	g.mu.Unlock()

	if r := panics.Try(func() { f.val, f.err = fn() }); r != nil {
		var zero T
		f.val, f.err = zero, r.AsError()
	}

	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
	close(f.done)

	return f.val, f.err, false
}
