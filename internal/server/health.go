package server

import (
	"net/http"
	"runtime"
	"time"

	"arcade-leaderboard/internal/i18n"
)

type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"`
}

type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"total_alloc"`
	Sys        uint64 `json:"sys"`
	HeapInuse  uint64 `json:"heap_inuse"`
	NumGC      uint32 `json:"num_gc"`
}

type DetailedHealth struct {
	HealthStatus
	Environment string      `json:"environment"`
	StoreDriver string      `json:"store_driver"`
	Entries     int         `json:"entries"`
	GoVersion   string      `json:"go_version"`
	Goroutines  int         `json:"goroutines"`
	Memory      MemoryStats `json:"memory"`
}

func (s *Server) healthStatus() HealthStatus {
	now := s.now()
	return HealthStatus{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(s.started).Round(time.Millisecond).Seconds(),
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, r, http.StatusOK, i18n.MsgHealthy, s.healthStatus())
}

func (s *Server) healthDetailed(w http.ResponseWriter, r *http.Request) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	s.writeSuccess(w, r, http.StatusOK, i18n.MsgHealthDetailed, DetailedHealth{
		HealthStatus: s.healthStatus(),
		Environment:  s.cfg.Environment,
		StoreDriver:  s.cfg.StoreDriver,
		Entries:      s.svc.Count(),
		GoVersion:    runtime.Version(),
		Goroutines:   runtime.NumGoroutine(),
		Memory: MemoryStats{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapInuse:  ms.HeapInuse,
			NumGC:      ms.NumGC,
		},
	})
}
