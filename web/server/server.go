package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// Start starts the web server
func (s *Server) Start() error {
	// Serve static files
	http.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	http.HandleFunc("/api/render", s.handleRender)
	http.HandleFunc("/api/health", s.handleHealth)

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, nil)
}

// HealthResponse reports server status and the host resources available to
// the per-pixel dispatch.
type HealthResponse struct {
	Status        string  `json:"status"`
	Workers       int     `json:"workers"`       // logical CPUs used by default
	CPUModel      string  `json:"cpuModel"`      // first CPU's model name
	TotalMemoryMB uint64  `json:"totalMemoryMB"` // total physical memory
	MemoryUsedPct float64 `json:"memoryUsedPct"` // current memory pressure
}

// handleHealth reports readiness plus host CPU and memory information
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Workers: runtime.NumCPU(),
	}

	// Host stats are best-effort: a failed probe never fails the check.
	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		resp.CPUModel = cpuInfo[0].ModelName
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		resp.TotalMemoryMB = memInfo.Total / (1024 * 1024)
		resp.MemoryUsedPct = memInfo.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding health response: %v", err)
	}
}
