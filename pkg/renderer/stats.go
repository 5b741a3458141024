package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width        int           // Image width in pixels
	Height       int           // Image height in pixels
	TotalPixels  int           // Total number of pixels evaluated
	HitPixels    int           // Pixels whose primary ray hit a shape
	FailedPixels int           // Pixels whose evaluation failed and kept the background
	Workers      int           // Number of parallel workers used
	Duration     time.Duration // Wall-clock render time
}

// HitRatio returns the fraction of pixels that hit a shape
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}

// PixelsPerSecond returns the render throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Duration.Seconds()
}
