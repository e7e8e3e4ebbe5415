package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("savant|expected|batter|2026", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_Do_PanicBecomesError(t *testing.T) {
	var g SingleFlight[int]

	v, err, shared := g.Do("boom", func() (int, error) {
		panic("decode exploded")
	})
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}
	if v != 0 || shared {
		t.Fatalf("unexpected result: value=%v shared=%v", v, shared)
	}

	// key must be released after a panic
	v, err, _ = g.Do("boom", func() (int, error) { return 1, nil })
	if err != nil || v != 1 {
		t.Fatalf("expected clean second call, got value=%v err=%v", v, err)
	}
}
