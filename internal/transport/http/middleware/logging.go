package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hrdash/internal/requestctx"
)

type logEntry struct {
	Timestamp     string `json:"ts"`
	Method        string `json:"method"`
	Path          string `json:"path"`
	Status        int    `json:"status"`
	Duration      int64  `json:"durationMs"`
	UpstreamCalls int    `json:"upstreamCalls"`
	UpstreamMs    int64  `json:"upstreamMs"`
	RequestID     string `json:"requestId"`
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Logger writes one JSON access line per request, splitting total
// latency from the time spent on HR API round-trips for that request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		stats := &requestctx.UpstreamStats{}
		r = r.WithContext(requestctx.WithUpstreamStats(r.Context(), stats))

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		upstreamCalls, upstreamElapsed := stats.Snapshot()
		entry := logEntry{
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			Method:        r.Method,
			Path:          r.URL.Path,
			Status:        recorder.status,
			Duration:      time.Since(start).Milliseconds(),
			UpstreamCalls: upstreamCalls,
			UpstreamMs:    upstreamElapsed.Milliseconds(),
			RequestID:     GetRequestID(r.Context()),
		}

		payload, _ := json.Marshal(entry)
		log.Println(string(payload))
	})
}
