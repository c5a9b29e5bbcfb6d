package playback

import (
	"context"
	"image"
	"runtime"
	"sync"

	"github.com/neurosense/plantar.report/internal/heatmap"
	"github.com/neurosense/plantar.report/internal/pressure"
)

// Prerender renders every frame of a sequence ahead of playback,
// fanning the work out across a bounded worker pool. Workers share
// only the read-only renderer (config, layout, masks); results land at
// their frame's index so ordering is preserved. The first render error
// cancels the remaining work.
func Prerender(ctx context.Context, r *heatmap.Renderer, frames []*pressure.Frame, workers int) ([]*image.NRGBA, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(frames) {
		workers = len(frames)
	}
	out := make([]*image.NRGBA, len(frames))
	if len(frames) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				img, err := r.Render(frames[i])
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				out[i] = img
			}
		}()
	}

feed:
	for i := range frames {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	for _, img := range out {
		if img == nil {
			return nil, ctx.Err()
		}
	}
	return out, nil
}
