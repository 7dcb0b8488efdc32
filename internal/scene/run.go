package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tryandaction/Interactive-Optics-Lab-sub001/internal/optics"
)

// Trace builds the scene and runs one pass. base supplies the limits the
// scene file leaves unset.
func (c *Config) Trace(base optics.TraceConfig) (*optics.Result, error) {
	elements, err := c.Build()
	if err != nil {
		return nil, err
	}
	return optics.Trace(elements, nil, c.TraceConfig(base)), nil
}

// traced is one finished scene file.
type traced struct {
	result Result
	stats  optics.Stats
}

// TraceFiles loads and traces every scene file, spreading the files over
// runtime.NumCPU() workers. Results keep the order of paths.
func TraceFiles(paths []string, base optics.TraceConfig) ([]Result, error) {
	out, err := traceFiles(paths, base)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(out))
	for i, t := range out {
		results[i] = t.result
	}
	return results, nil
}

func traceFiles(paths []string, base optics.TraceConfig) ([]traced, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scene files given")
	}
	workers := runtime.NumCPU()
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	out := make([]traced, len(paths))
	errs := make([]error, len(paths))
	var next, done int64

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&next, 1) - 1)
				if i >= len(paths) {
					return
				}
				cfg, err := Load(paths[i])
				if err != nil {
					errs[i] = err
					continue
				}
				res, err := cfg.Trace(base)
				if err != nil {
					errs[i] = fmt.Errorf("%s: %w", paths[i], err)
					continue
				}
				out[i] = traced{result: NewResult(cfg.Name, res), stats: res.Stats}
				n := atomic.AddInt64(&done, 1)
				optics.DebugLog("Traced %s (%d/%d): %d rays, %d iterations", paths[i], n, len(paths), len(res.Rays), res.Iterations)
			}
		}()
	}
	wg.Wait()
	optics.DebugLog("Scenes: %d, workers: %d, time: %s", len(paths), workers, time.Since(start))

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Run traces the scene files and writes either a text summary per scene or
// the JSON results to w. A single scene is written as one JSON object, more
// as an array.
func Run(w io.Writer, base optics.TraceConfig, asJSON bool, paths ...string) error {
	out, err := traceFiles(paths, base)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(out) == 1 {
			return enc.Encode(out[0].result)
		}
		results := make([]Result, len(out))
		for i, t := range out {
			results[i] = t.result
		}
		return enc.Encode(results)
	}
	for _, t := range out {
		if err := writeSummary(w, t.result, t.stats); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(w io.Writer, r Result, stats optics.Stats) error {
	if _, err := fmt.Fprintf(w, "%s: pass %s, %d rays, %d iterations\n", r.Scene, r.PassID, len(r.Rays), r.Iterations); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s\n", stats.String()); err != nil {
		return err
	}
	if r.CapReached {
		if _, err := fmt.Fprintf(w, "  iteration cap reached, %d rays dropped\n", r.Dropped); err != nil {
			return err
		}
	}
	for _, id := range r.detectorIDs() {
		if _, err := fmt.Fprintf(w, "  readout %s = %.6g\n", id, r.Readouts[id]); err != nil {
			return err
		}
	}
	return nil
}
