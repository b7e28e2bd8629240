package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics holds process-wide counters.
type Metrics struct {
	RequestsTotal      atomic.Uint64
	RequestsInProgress atomic.Int64
	RequestsSuccess    atomic.Uint64
	RequestsFailed     atomic.Uint64

	AnalysesTotal    atomic.Uint64
	AnalysesApproved atomic.Uint64
	AnalysesRejected atomic.Uint64
	AnalysesFailed   atomic.Uint64
	QuotaExceeded    atomic.Uint64
	BadRequests      atomic.Uint64
	CategoryErrors   atomic.Uint64

	StartTime time.Time
}

var globalMetrics = &Metrics{StartTime: time.Now()}

// Global returns the process metrics.
func Global() *Metrics { return globalMetrics }

// RecordVerdict counts a finished analysis by its status.
func (m *Metrics) RecordVerdict(approved bool) {
	m.AnalysesTotal.Add(1)
	if approved {
		m.AnalysesApproved.Add(1)
	} else {
		m.AnalysesRejected.Add(1)
	}
}

// RecordFailure counts an analysis aborted by the completion provider.
func (m *Metrics) RecordFailure(quota bool) {
	m.AnalysesTotal.Add(1)
	m.AnalysesFailed.Add(1)
	if quota {
		m.QuotaExceeded.Add(1)
	}
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() map[string]any {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]any{
		"requests_total":       m.RequestsTotal.Load(),
		"requests_in_progress": m.RequestsInProgress.Load(),
		"requests_success":     m.RequestsSuccess.Load(),
		"requests_failed":      m.RequestsFailed.Load(),
		"analyses_total":       m.AnalysesTotal.Load(),
		"analyses_approved":    m.AnalysesApproved.Load(),
		"analyses_rejected":    m.AnalysesRejected.Load(),
		"analyses_failed":      m.AnalysesFailed.Load(),
		"quota_exceeded":       m.QuotaExceeded.Load(),
		"bad_requests":         m.BadRequests.Load(),
		"category_errors":      m.CategoryErrors.Load(),
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
		"memory": map[string]any{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
			"num_gc":      mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request counts.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := globalMetrics
		m.RequestsTotal.Add(1)
		m.RequestsInProgress.Add(1)
		defer m.RequestsInProgress.Add(-1)

		wrapped := wrap(w)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode < http.StatusBadRequest {
			m.RequestsSuccess.Add(1)
		} else {
			m.RequestsFailed.Add(1)
		}
	})
}

// MetricsHandler serves the snapshot as JSON.
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(globalMetrics.Snapshot())
}
