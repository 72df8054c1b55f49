package server

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseRenderRequest_Defaults(t *testing.T) {
	req, err := parseRenderRequest(url.Values{})
	if err != nil {
		t.Fatalf("Expected defaults to validate, got %v", err)
	}

	if req.Width != 500 || req.Height != 500 {
		t.Errorf("Expected 500x500 default, got %dx%d", req.Width, req.Height)
	}
	if req.Frames != 1 {
		t.Errorf("Expected single frame default, got %d", req.Frames)
	}
	if req.FPS != 30 {
		t.Errorf("Expected 30 fps default, got %v", req.FPS)
	}
	if req.TileSize != 64 {
		t.Errorf("Expected tile size 64 default, got %d", req.TileSize)
	}
}

func TestParseRenderRequest_Values(t *testing.T) {
	query := url.Values{
		"width":  {"320"},
		"height": {"240"},
		"px":     {"1.5"},
		"py":     {"-2"},
		"pz":     {"0.25"},
		"angle":  {"90"},
		"time":   {"3.5"},
		"frames": {"10"},
		"fps":    {"24"},
	}

	req, err := parseRenderRequest(query)
	if err != nil {
		t.Fatalf("Expected valid request, got %v", err)
	}

	if req.Width != 320 || req.Height != 240 {
		t.Errorf("Expected 320x240, got %dx%d", req.Width, req.Height)
	}
	if req.PosX != 1.5 || req.PosY != -2 || req.PosZ != 0.25 {
		t.Errorf("Expected position (1.5, -2, 0.25), got (%v, %v, %v)",
			req.PosX, req.PosY, req.PosZ)
	}
	if req.Angle != 90 || req.Time != 3.5 {
		t.Errorf("Expected angle 90 time 3.5, got %v %v", req.Angle, req.Time)
	}
	if req.Frames != 10 || req.FPS != 24 {
		t.Errorf("Expected 10 frames at 24 fps, got %d at %v", req.Frames, req.FPS)
	}
}

func TestParseRenderRequest_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"zero width", url.Values{"width": {"0"}}},
		{"negative height", url.Values{"height": {"-10"}}},
		{"oversized", url.Values{"width": {"8192"}}},
		{"non-numeric width", url.Values{"width": {"abc"}}},
		{"non-numeric time", url.Values{"time": {"later"}}},
		{"zero frames", url.Values{"frames": {"0"}}},
		{"too many frames", url.Values{"frames": {"5000"}}},
		{"zero fps", url.Values{"fps": {"0"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseRenderRequest(tt.query); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestHandleRender_StreamsFrame(t *testing.T) {
	s := NewServer(0)

	req := httptest.NewRequest("GET", "/api/render?width=16&height=16", nil)
	w := httptest.NewRecorder()

	s.handleRender(w, req)

	resp := w.Result()
	if got := resp.Header.Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", got)
	}

	body := w.Body.String()
	if !strings.Contains(body, "event: frame") {
		t.Error("Expected a frame event in the SSE stream")
	}
	if !strings.Contains(body, `"frameNumber":1`) {
		t.Error("Expected frame 1 in the stream")
	}
	if !strings.Contains(body, `"isComplete":true`) {
		t.Error("Expected the final frame to be marked complete")
	}
	if strings.Contains(body, "event: error") {
		t.Errorf("Expected no error events, got body:\n%s", body)
	}
}

func TestHandleRender_InvalidRequest(t *testing.T) {
	s := NewServer(0)

	req := httptest.NewRequest("GET", "/api/render?width=0", nil)
	w := httptest.NewRecorder()

	s.handleRender(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "event: error") {
		t.Errorf("Expected an error event, got body:\n%s", body)
	}
	if strings.Contains(body, "event: frame") {
		t.Error("Expected no frames for an invalid request")
	}
}

func TestEncodePNGBase64(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	encoded, err := encodePNGBase64(img)
	if err != nil {
		t.Fatalf("encodePNGBase64 failed: %v", err)
	}

	// Base64 of the PNG signature always starts with "iVBOR".
	if !strings.HasPrefix(encoded, "iVBOR") {
		t.Errorf("Expected base64 PNG data, got prefix %q", encoded[:min(8, len(encoded))])
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("Expected valid base64, got %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Errorf("Expected a decodable PNG, got %v", err)
	}
}
