package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OffersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_offers_created_total",
		Help: "Offers created",
	})

	OffersRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_offers_rejected_total",
		Help: "Offers refused, by error code",
	}, []string{"code"})

	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_transaction_transitions_total",
		Help: "Transaction status changes, by target status",
	}, []string{"status"})

	RatingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchange_ratings_submitted_total",
		Help: "Ratings recorded",
	})

	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exchange_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exchange_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// Middleware records request counts and latency labelled by chi route pattern,
// so ids in paths do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		endpoint := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		httpReqTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(status)).Inc()
		httpLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	})
}
