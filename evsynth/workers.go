package main

import (
	"fmt"
	"runtime"
	"sync"

	evdisplay "github.com/argoncube/evdisplay_go/pkg"
)

type eventResult struct {
	Event   int
	Records []evdisplay.MemoryRecord
	Error   bool
}

func worker(id int, cfg synthConfig, jobs <-chan int, results chan<- eventResult) {
	for event := range jobs {
		results <- runJob(id, cfg, event)
	}
}

func runJob(id int, cfg synthConfig, event int) (result eventResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(fmt.Sprintf("Worker %d recovered from panic in event %d: %v", id, event, r))
			result = eventResult{Event: event, Error: true}
		}
	}()
	if evdisplay.GetConfiguration().Verbosity > 1 {
		logger.Info(fmt.Sprintf("Worker %d generating event %d", id, event), "workers")
	}
	return eventResult{Event: event, Records: generateEvent(cfg, event)}
}

// generateEvents spreads the events over cfg.Workers goroutines and returns
// the records of each event in event order. Failed events are left empty.
func generateEvents(cfg synthConfig) [][]evdisplay.MemoryRecord {
	nWorkers := cfg.Workers
	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}
	if cfg.Events <= 0 {
		return nil
	}

	jobs := make(chan int, nWorkers)
	results := make(chan eventResult, nWorkers)

	var wg sync.WaitGroup
	for id := 0; id < nWorkers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			worker(id, cfg, jobs, results)
		}(id)
	}

	go func() {
		for event := 0; event < cfg.Events; event++ {
			jobs <- event
		}
		close(jobs)
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	events := make([][]evdisplay.MemoryRecord, cfg.Events)
	for result := range results {
		if result.Error {
			continue
		}
		events[result.Event] = result.Records
	}
	return events
}
