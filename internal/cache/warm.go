package cache

import (
	"log"
	"sync"
	"time"
)

type WarmupJob struct {
	Key  string
	Data interface{}
	TTL  time.Duration
}

type WarmupReport struct {
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"-"`
}

// WarmupPool loads a batch of keys into the cache concurrently. Run blocks
// until every job is done, so warm-up stays inside the lifetime of the
// request that triggered it.
type WarmupPool struct {
	workers int
	cache   Cache
}

func NewWarmupPool(workers int, cache Cache) *WarmupPool {
	if workers <= 0 {
		workers = 3
	}
	return &WarmupPool{workers: workers, cache: cache}
}

func (p *WarmupPool) Run(jobs []WarmupJob) WarmupReport {
	start := time.Now()

	jobCh := make(chan WarmupJob)
	var wg sync.WaitGroup
	var mu sync.Mutex
	report := WarmupReport{}

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				err := p.cache.Set(job.Key, job.Data, job.TTL)

				mu.Lock()
				if err != nil {
					report.Failed++
				} else {
					report.Succeeded++
				}
				mu.Unlock()

				if err != nil {
					log.Printf("failed to warm cache key %s: %v", job.Key, err)
				}
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()

	report.Duration = time.Since(start)
	return report
}
