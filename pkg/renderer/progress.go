package renderer

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter polls a completion counter on a fixed interval and
// drives a progress bar. It never touches render state.
type ProgressReporter struct {
	total    int64
	interval time.Duration
	current  func() int64
	bar      *progressbar.ProgressBar
	done     chan struct{}
	stopped  chan struct{}
}

// NewProgressReporter creates a reporter for total units of work. A nil
// output discards the bar.
func NewProgressReporter(total int, interval time.Duration, output io.Writer, current func() int64) *ProgressReporter {
	if output == nil {
		output = io.Discard
	}
	if interval <= 0 {
		interval = DefaultRenderConfig().ProgressInterval
	}

	bar := progressbar.NewOptions64(int64(total),
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(interval),
	)

	return &ProgressReporter{
		total:    int64(total),
		interval: interval,
		current:  current,
		bar:      bar,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start launches the polling goroutine
func (pr *ProgressReporter) Start() {
	go pr.run()
}

func (pr *ProgressReporter) run() {
	defer close(pr.stopped)

	ticker := time.NewTicker(pr.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n := pr.current()
			_ = pr.bar.Set64(n)
			if n >= pr.total {
				return
			}
		case <-pr.done:
			return
		}
	}
}

// Stop ends polling and completes the bar with the final count
func (pr *ProgressReporter) Stop() {
	close(pr.done)
	<-pr.stopped
	_ = pr.bar.Set64(pr.current())
	_ = pr.bar.Finish()
}
