package renderer

import (
	"image/color"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/Arideno/graphics-engine/pkg/core"
)

// RenderConfig contains rendering configuration
type RenderConfig struct {
	NumWorkers       int           // Number of parallel workers (0 = use CPU count)
	ChunkSize        int           // Pixels per worker task
	BaseColor        color.RGBA    // Surface color at full intensity
	Background       color.RGBA    // Color for rays that hit nothing
	ProgressInterval time.Duration // How often the progress bar is refreshed
	ProgressOutput   io.Writer     // Progress bar destination (nil = no bar)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers:       runtime.NumCPU(),
		ChunkSize:        256,
		BaseColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Background:       color.RGBA{R: 255, G: 255, B: 255, A: 255},
		ProgressInterval: 250 * time.Millisecond,
	}
}

// Raytracer evaluates one primary ray per pixel in parallel
type Raytracer struct {
	scene  Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. The scene must have a camera.
func NewRaytracer(scene Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrSceneNotDefined
	}
	if scene.GetCamera() == nil {
		return nil, ErrCameraNotDefined
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = DefaultRenderConfig().ChunkSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}

	return &Raytracer{
		scene:  scene,
		config: config,
		logger: logger,
	}, nil
}

// Render produces an RGB frame. Pixels that fail keep the background color.
func (rt *Raytracer) Render() (*Frame, RenderStats) {
	camera := rt.scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	frame := NewFrame(width, height, rt.config.Background)
	hits := make([]bool, width*height)

	stats := rt.renderPixels(width, height, func(x, y int) {
		result := Shade(rt.scene, x, y)
		hits[y*width+x] = result.Hit
		frame.Set(x, y, result.Color(rt.config.BaseColor, rt.config.Background))
	})
	stats.HitPixels = countHits(hits)

	return frame, stats
}

// RenderText produces the text-mode image: one glyph per pixel, rows
// separated by newlines
func (rt *Raytracer) RenderText() (string, RenderStats) {
	camera := rt.scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	glyphs := []byte(strings.Repeat(" ", width*height))
	hits := make([]bool, width*height)

	stats := rt.renderPixels(width, height, func(x, y int) {
		result := Shade(rt.scene, x, y)
		hits[y*width+x] = result.Hit
		glyphs[y*width+x] = result.Glyph()
	})
	stats.HitPixels = countHits(hits)

	rows := make([]string, height)
	for y := 0; y < height; y++ {
		rows[y] = string(glyphs[y*width : (y+1)*width])
	}
	return strings.Join(rows, "\n"), stats
}

// renderPixels splits the flattened pixel range into chunks and evaluates
// them on the worker pool while a progress reporter watches the counter
func (rt *Raytracer) renderPixels(width, height int, evaluate func(x, y int)) RenderStats {
	start := time.Now()
	total := width * height
	numTasks := (total + rt.config.ChunkSize - 1) / rt.config.ChunkSize

	pool := NewWorkerPool(rt.config.NumWorkers, numTasks, func(index int) {
		evaluate(index%width, index/width)
	}, rt.logger)

	progress := NewProgressReporter(total, rt.config.ProgressInterval, rt.config.ProgressOutput, pool.Completed)

	if rt.logger != nil {
		rt.logger.Infof("rendering %dx%d with %d workers", width, height, pool.GetNumWorkers())
	}

	progress.Start()
	pool.Start()
	for first := 0; first < total; first += rt.config.ChunkSize {
		pool.SubmitTask(PixelTask{Start: first, End: min(first+rt.config.ChunkSize, total)})
	}
	pool.Stop()
	progress.Stop()

	stats := RenderStats{
		Width:        width,
		Height:       height,
		TotalPixels:  int(pool.Completed()),
		FailedPixels: int(pool.Failed()),
		Workers:      pool.GetNumWorkers(),
		Duration:     time.Since(start),
	}

	if rt.logger != nil {
		rt.logger.Infof("rendered %d pixels in %v", stats.TotalPixels, stats.Duration)
		if stats.FailedPixels > 0 {
			rt.logger.Warningf("%d pixels failed and were left as background", stats.FailedPixels)
		}
	}

	return stats
}

func countHits(hits []bool) int {
	n := 0
	for _, hit := range hits {
		if hit {
			n++
		}
	}
	return n
}
