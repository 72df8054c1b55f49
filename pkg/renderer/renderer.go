package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/tracer"
)

// FrameParams are the per-frame inputs of a dispatch, supplied once and
// read-only for its duration.
type FrameParams struct {
	Width, Height int       // output image dimensions in pixels
	ViewPosition  core.Vec3 // camera world position
	ViewAngle     float64   // camera yaw in degrees
	Time          float64   // frame time in seconds, drives scene animation
}

// Config contains rendering configuration
type Config struct {
	TileSize   int // size of each scheduling tile
	NumWorkers int // number of parallel workers (0 = logical CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: 0, // auto-detect CPU count
	}
}

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	TotalPixels int           // number of pixels rendered
	Tiles       int           // number of scheduling tiles
	Workers     int           // workers used
	Elapsed     time.Duration // wall-clock render time
}

// Renderer drives one independent shading computation per output pixel over
// a tile grid. Pixel computations never communicate: each worker rebuilds
// its own scene snapshot from the frame time (the builder is pure, so every
// rebuild is bit-identical) and each tile writes a disjoint region of the
// shared output image.
type Renderer struct {
	config  Config
	builder scene.Builder
	logger  core.Logger
}

// NewRenderer creates a renderer for the given scene builder
func NewRenderer(config Config, builder scene.Builder, logger core.Logger) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{config: config, builder: builder, logger: logger}
}

// RenderFrame renders a single frame. The context is checked between tiles;
// inside a tile the kernel always runs to completion (it is bounded by the
// bounce cap and has no blocking operations).
func (r *Renderer) RenderFrame(ctx context.Context, params FrameParams) (*image.RGBA, RenderStats, error) {
	if params.Width <= 0 || params.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid frame dimensions %dx%d", params.Width, params.Height)
	}

	camera := NewCamera(params.Width, params.Height, params.ViewPosition, params.ViewAngle)
	img := image.NewRGBA(image.Rect(0, 0, params.Width, params.Height))
	tiles := NewTileGrid(params.Width, params.Height, r.config.TileSize)

	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tasks := make(chan image.Rectangle, len(tiles))
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for bounds := range tasks {
				select {
				case <-ctx.Done():
					continue // drain remaining tasks without rendering
				default:
				}

				// Private snapshot per task; no synchronization needed.
				sc := r.builder(params.Time)
				renderBounds(img, bounds, camera, &sc)
			}
		}()
	}

	for _, bounds := range tiles {
		tasks <- bounds
	}
	close(tasks)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		TotalPixels: params.Width * params.Height,
		Tiles:       len(tiles),
		Workers:     numWorkers,
		Elapsed:     time.Since(start),
	}
	r.logger.Printf("Rendered %dx%d at t=%.2f in %v (%d tiles, %d workers)\n",
		params.Width, params.Height, params.Time, stats.Elapsed, stats.Tiles, stats.Workers)
	return img, stats, nil
}

// renderBounds shades every pixel within bounds. Image row 0 is the top of
// the view: the camera's y axis already runs downward from the view-plane
// top-left corner, so rows map straight through. That orientation is fixed
// here, once, for every target.
func renderBounds(img *image.RGBA, bounds image.Rectangle, camera *Camera, sc *scene.Scene) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			colorVec := tracer.Shade(camera.GetRay(x, y), sc)
			img.SetRGBA(x, y, vec3ToColor(colorVec))
		}
	}
}

// vec3ToColor converts a gamma-encoded Vec3 color to RGBA with clamping and
// a fixed alpha of 1.
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
