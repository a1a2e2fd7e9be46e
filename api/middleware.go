package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/zaparse/stmtledger/logger"
)

var (
	parseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stmtledger_parse_total",
			Help: "Total number of parsed documents by format and outcome",
		},
		[]string{"format", "outcome"},
	)

	parseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stmtledger_parse_duration_seconds",
			Help:    "Duration of parse requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 5},
		},
		[]string{"endpoint"},
	)
)

// requestLogger logs each request and puts a request scoped logger into the
// context for the parsing code.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqLog := log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context(), reqLog)))

			reqLog.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP request")
		})
	}
}
