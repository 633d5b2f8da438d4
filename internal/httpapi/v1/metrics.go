package v1

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    chi "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promauto"
    "github.com/prometheus/client_golang/prometheus/promhttp"

    "github.com/tinoosan/finboard/internal/errs"
)

var (
    httpRequestsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "finboard",
            Name:      "http_requests_total",
            Help:      "Total number of HTTP requests",
        },
        []string{"method", "route", "status"},
    )
    httpRequestDuration = promauto.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "finboard",
            Name:      "http_request_duration_seconds",
            Help:      "Duration of HTTP requests in seconds",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"method", "route", "status"},
    )
    ledgerMutationsTotal = promauto.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "finboard",
            Name:      "ledger_mutations_total",
            Help:      "Ledger mutations by operation and result",
        },
        []string{"op", "result"},
    )
)

func metricsHandler() http.Handler {
    return promhttp.Handler()
}

func metricsMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
        start := time.Now()
        next.ServeHTTP(ww, r)
        route := "unmatched"
        if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
            route = rc.RoutePattern()
        }
        status := strconv.Itoa(ww.Status())
        httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
        httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
    })
}

// ObserveMutation counts a ledger mutation. It matches the store's observer hook.
func ObserveMutation(op string, err error) {
    ledgerMutationsTotal.WithLabelValues(op, mutationResult(err)).Inc()
}

func mutationResult(err error) string {
    switch {
    case err == nil:
        return "ok"
    case errors.Is(err, errs.ErrNotFound):
        return "not_found"
    case errors.Is(err, errs.ErrInvalid):
        return "invalid"
    default:
        return "error"
    }
}
