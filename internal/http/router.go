package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/compostlink/compostlink/internal/http/account"
	"github.com/compostlink/compostlink/internal/http/auth"
	"github.com/compostlink/compostlink/internal/http/rating"
	"github.com/compostlink/compostlink/internal/http/transaction"
	"github.com/compostlink/compostlink/internal/metrics"
)

// echoRequestID returns the request id assigned by middleware.RequestID to
// the client.
func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}

		next.ServeHTTP(w, r)
	})
}

type Options struct {
	AllowedOrigins []string
}

func New(
	verifier *auth.Verifier,
	opts Options,
	transactionsV1 *transaction.Handler,
	ratingsV1 *rating.Handler,
	accountsV1 *account.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(echoRequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	router.Use(metrics.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(verifier.Middleware)
		r.Use(middleware.AllowContentType("application/json"))

		transactionsV1.Routes(r)
		ratingsV1.Routes(r)
		accountsV1.Routes(r)
	})

	return router
}
