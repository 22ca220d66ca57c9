package parallel

import "sync"

// Pipeline runs a serial producing stage feeding parallel consuming stages.
// produce is called from a single goroutine until it returns ok == false;
// each produced token is handed to exactly one concurrent consume call.
// Pipeline returns once the producer has stopped and every dispatched token
// has been consumed.
//
// Termination is cooperative: a producer that must stop early (a shared
// "found" flag, say) does so by returning false. Tokens already dispatched
// still complete.
func Pipeline[T any](workers int, produce func() (T, bool), consume func(T)) {
	if workers < 1 {
		workers = 1
	}
	ch := make(chan T, workers)
	go func() {
		defer close(ch)
		for {
			t, ok := produce()
			if !ok {
				return
			}
			ch <- t
		}
	}()
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for t := range ch {
				consume(t)
			}
		}()
	}
	wg.Wait()
}
