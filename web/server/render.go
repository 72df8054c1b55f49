package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RenderRequest describes one streamed render: a camera pose, a start time
// and an optional frame count for animation playback.
type RenderRequest struct {
	Width    int     // image width
	Height   int     // image height
	PosX     float64 // camera world position
	PosY     float64
	PosZ     float64
	Angle    float64 // camera yaw in degrees
	Time     float64 // frame time of the first frame
	Frames   int     // number of frames to stream
	FPS      float64 // animation time step between frames
	TileSize int     // scheduling tile size
}

// FrameUpdate is a single rendered frame sent via SSE
type FrameUpdate struct {
	FrameNumber int    `json:"frameNumber"` // 1-based
	TotalFrames int    `json:"totalFrames"`
	Time        float64 `json:"time"`      // scene time of this frame
	ImageData   string  `json:"imageData"` // base64 encoded PNG
	ElapsedMs   int64   `json:"elapsedMs"` // render time for this frame
	Workers     int     `json:"workers"`
	IsComplete  bool    `json:"isComplete"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "frame", "error"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender streams rendered frames via SSE. A single-frame request
// behaves like a still export; multi-frame requests play the animation by
// advancing the scene time between frames.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single SSE writer goroutine keeps ResponseWriter access serialized.
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		s.sendError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		close(sseEventChan)
		<-writerDone
		return
	}

	// Console messages from the renderer are forwarded to the client.
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(consoleChan)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	s.streamFrames(ctx, sseEventChan, req, webLogger)

	// The renderer is done; drain remaining console messages before closing
	// the event channel the forwarder sends to.
	close(consoleChan)
	<-consoleDone
	close(sseEventChan)
	<-writerDone
}

// streamFrames renders each requested frame and sends it as an SSE event
func (s *Server) streamFrames(ctx context.Context, sseEventChan chan SSEEvent, req *RenderRequest, logger core.Logger) {
	r := renderer.NewRenderer(renderer.Config{TileSize: req.TileSize}, scene.Build, logger)

	for frame := 0; frame < req.Frames; frame++ {
		select {
		case <-ctx.Done():
			return // client disconnected
		default:
		}

		frameTime := req.Time + float64(frame)/req.FPS
		params := renderer.FrameParams{
			Width:        req.Width,
			Height:       req.Height,
			ViewPosition: core.NewVec3(req.PosX, req.PosY, req.PosZ),
			ViewAngle:    req.Angle,
			Time:         frameTime,
		}

		img, stats, err := r.RenderFrame(ctx, params)
		if err != nil {
			s.sendError(ctx, sseEventChan, fmt.Sprintf("Render failed: %v", err))
			return
		}

		imageData, err := encodePNGBase64(img)
		if err != nil {
			s.sendError(ctx, sseEventChan, fmt.Sprintf("Encoding failed: %v", err))
			return
		}

		update := FrameUpdate{
			FrameNumber: frame + 1,
			TotalFrames: req.Frames,
			Time:        frameTime,
			ImageData:   imageData,
			ElapsedMs:   stats.Elapsed.Milliseconds(),
			Workers:     stats.Workers,
			IsComplete:  frame == req.Frames-1,
		}
		data, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshaling frame update: %v", err)
			return
		}

		select {
		case sseEventChan <- SSEEvent{Type: "frame", Data: string(data)}:
		case <-ctx.Done():
			return
		}
	}
}

// parseRenderRequest reads and validates query parameters, filling defaults
func parseRenderRequest(query url.Values) (*RenderRequest, error) {
	req := &RenderRequest{
		Width:    500,
		Height:   500,
		Frames:   1,
		FPS:      30,
		TileSize: 64,
	}

	intParams := map[string]*int{
		"width":    &req.Width,
		"height":   &req.Height,
		"frames":   &req.Frames,
		"tileSize": &req.TileSize,
	}
	for name, target := range intParams {
		if raw := query.Get(name); raw != "" {
			val, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", name, err)
			}
			*target = val
		}
	}

	floatParams := map[string]*float64{
		"px":    &req.PosX,
		"py":    &req.PosY,
		"pz":    &req.PosZ,
		"angle": &req.Angle,
		"time":  &req.Time,
		"fps":   &req.FPS,
	}
	for name, target := range floatParams {
		if raw := query.Get(name); raw != "" {
			val, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", name, err)
			}
			*target = val
		}
	}

	if req.Width <= 0 || req.Height <= 0 {
		return nil, fmt.Errorf("dimensions must be positive, got %dx%d", req.Width, req.Height)
	}
	if req.Width > 4096 || req.Height > 4096 {
		return nil, fmt.Errorf("dimensions too large, max 4096")
	}
	if req.Frames < 1 || req.Frames > 1000 {
		return nil, fmt.Errorf("frames must be in [1,1000], got %d", req.Frames)
	}
	if req.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", req.FPS)
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return // channel closed
			}

			select {
			case <-ctx.Done():
				return // client disconnected
			default:
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return // client disconnected during write
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards renderer console output to the SSE channel
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip message to avoid blocking
			}

		case <-ctx.Done():
			return
		}
	}
}

// sendError sends an error event to the client without blocking
func (s *Server) sendError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	log.Printf("Render error: %s", message)
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}

// encodePNGBase64 encodes an image as a base64 PNG string
func encodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
