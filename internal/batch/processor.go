package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DashGL/ikaruga-asset-viewer/internal/config"
)

// Result holds the outcome of converting one asset file.
type Result struct {
	Source  string
	Outputs []Output
	Success bool
	Error   string
}

// Output describes one image written for a source file. A PVM container
// produces one output per entry.
type Output struct {
	Path   string `json:"path"`
	Name   string `json:"name,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Pixel  string `json:"pixel_format"`
	Data   string `json:"data_format"`
	Hash   string `json:"xxhash"`
}

// Run converts all files using a worker pool. One file failing never
// aborts the batch; each Result carries its own error.
func Run(cfg config.Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f files/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	fileChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = convertFile(cfg, files[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	return results
}
