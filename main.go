package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "whitted",
		Short: "Render animated raytraced frames to PNG",
		Long: "Renders the animated sphere scene with direct illumination, shadows,\n" +
			"reflection and refraction, one independent computation per pixel.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(v)
		},
	}

	flags := cmd.Flags()
	flags.Int("width", 500, "output image width in pixels")
	flags.Int("height", 500, "output image height in pixels")
	flags.String("position", "0,0,0", "camera world position as x,y,z")
	flags.Float64("angle", 0, "camera yaw in degrees")
	flags.Float64("time", 0, "frame time in seconds (drives scene animation)")
	flags.Int("frames", 1, "number of frames to render")
	flags.Float64("fps", 30, "frame rate for multi-frame sequences")
	flags.Int("tile-size", 64, "scheduling tile size in pixels")
	flags.Int("workers", 0, "parallel workers (0 = logical CPU count)")
	flags.String("output", "output", "output directory")
	flags.String("config", "", "optional config file (YAML) with the same keys as the flags")

	if err := v.BindPFlags(flags); err != nil {
		panic(err) // programming error in flag registration
	}

	return cmd
}

func runRender(v *viper.Viper) error {
	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	position, err := parsePosition(v.GetString("position"))
	if err != nil {
		return err
	}

	frames := v.GetInt("frames")
	if frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", frames)
	}
	fps := v.GetFloat64("fps")
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %v", fps)
	}

	outputDir := v.GetString("output")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logger := renderer.NewDefaultLogger()
	workers := v.GetInt("workers")
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger.Printf("Rendering %d frame(s) at %dx%d with %d workers...\n",
		frames, v.GetInt("width"), v.GetInt("height"), workers)

	r := renderer.NewRenderer(renderer.Config{
		TileSize:   v.GetInt("tile-size"),
		NumWorkers: workers,
	}, scene.Build, logger)

	baseTime := v.GetFloat64("time")
	for frame := 0; frame < frames; frame++ {
		params := renderer.FrameParams{
			Width:        v.GetInt("width"),
			Height:       v.GetInt("height"),
			ViewPosition: position,
			ViewAngle:    v.GetFloat64("angle"),
			Time:         baseTime + float64(frame)/fps,
		}

		img, stats, err := r.RenderFrame(context.Background(), params)
		if err != nil {
			return fmt.Errorf("rendering frame %d: %w", frame, err)
		}

		filename := sequenceFilename(outputDir, frame, frames)
		if err := savePNG(filename, img); err != nil {
			return err
		}

		logger.Printf("Frame %d/%d rendered in %v (%d tiles), saved %s\n",
			frame+1, frames, stats.Elapsed, stats.Tiles, filename)
	}

	return nil
}

// sequenceFilename names a single frame with a timestamp and animation
// frames with a sequence number, so repeated runs never clobber each other
// but a sequence stays contiguous for encoding.
func sequenceFilename(outputDir string, frame, frames int) string {
	if frames == 1 {
		timestamp := time.Now().Format("20060102_150405")
		return filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}
	return filepath.Join(outputDir, fmt.Sprintf("frame_%04d.png", frame))
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	return nil
}

// parsePosition parses a comma-separated x,y,z triple
func parsePosition(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("position must be x,y,z, got %q", s)
	}
	var coords [3]float64
	for i, part := range parts {
		val, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid position component %q: %w", part, err)
		}
		coords[i] = val
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
