package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/23skdu/longbow-scribe/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthStatus is the JSON shape served on /health and /status.
type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Uptime    time.Duration `json:"uptime"`
	System    SystemInfo    `json:"system"`
	Generator GeneratorInfo `json:"generator"`
}

type SystemInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

type GeneratorInfo struct {
	ModelLoaded     bool      `json:"model_loaded"`
	ModelPath       string    `json:"model_path"`
	Family          string    `json:"family"`
	SequencesTotal  int64     `json:"sequences_total"`
	AvgLatencyMs    float64   `json:"avg_latency_ms"`
	LastGeneration  time.Time `json:"last_generation"`
	PromptsObserved int       `json:"prompts_observed"`
}

type perfPoint struct {
	timestamp time.Time
	sequences int
	duration  time.Duration
}

// HealthMonitor serves health and metrics endpoints for a generation run.
type HealthMonitor struct {
	startTime time.Time
	server    *http.Server

	mu             sync.RWMutex
	modelPath      string
	family         string
	modelLoaded    bool
	lastGeneration time.Time
	prompts        int
	history        []perfPoint
}

func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{startTime: time.Now()}
}

// SetModel records the loaded checkpoint for status reporting.
func (hm *HealthMonitor) SetModel(path, family string) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.modelPath = path
	hm.family = family
	hm.modelLoaded = true
}

// Start serves /health, /status and /metrics until Stop is called.
func (hm *HealthMonitor) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hm.handleHealth)
	mux.HandleFunc("/healthz", hm.handleHealth)
	mux.HandleFunc("/status", hm.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	hm.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return hm.server.ListenAndServe()
}

func (hm *HealthMonitor) Stop(ctx context.Context) error {
	if hm.server != nil {
		return hm.server.Shutdown(ctx)
	}
	return nil
}

// RecordPrompt notes one prompt row entering the loop.
func (hm *HealthMonitor) RecordPrompt() {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.prompts++
}

// RecordGeneration records a completed generation call.
func (hm *HealthMonitor) RecordGeneration(sequences int, duration time.Duration) {
	hm.mu.Lock()
	defer hm.mu.Unlock()

	now := time.Now()
	hm.lastGeneration = now
	metrics.RecordGeneration(sequences, duration)

	hm.history = append(hm.history, perfPoint{timestamp: now, sequences: sequences, duration: duration})
	if len(hm.history) > 1000 {
		hm.history = hm.history[1:]
	}
}

func (hm *HealthMonitor) snapshot() HealthStatus {
	hm.mu.RLock()
	defer hm.mu.RUnlock()

	var totalMs float64
	for _, p := range hm.history {
		totalMs += float64(p.duration.Milliseconds())
	}
	avgMs := 0.0
	if len(hm.history) > 0 {
		avgMs = totalMs / float64(len(hm.history))
	}

	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(hm.startTime),
		System: SystemInfo{
			GoVersion: runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			NumCPU:    runtime.NumCPU(),
		},
		Generator: GeneratorInfo{
			ModelLoaded:     hm.modelLoaded,
			ModelPath:       hm.modelPath,
			Family:          hm.family,
			SequencesTotal:  metrics.TotalSequences(),
			AvgLatencyMs:    avgMs,
			LastGeneration:  hm.lastGeneration,
			PromptsObserved: hm.prompts,
		},
	}
}

func (hm *HealthMonitor) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(hm.snapshot()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
