package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// persistence port
	StoreOpDuration  *prometheus.HistogramVec
	StoreErrorsTotal *prometheus.CounterVec

	// registration flow
	StepCompletions  *prometheus.CounterVec
	SelectionRejects *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sportreg",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sportreg",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "sportreg",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),
		StoreOpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sportreg",
				Subsystem: "store",
				Name:      "op_duration_seconds",
				Help:      "Progress store operation latency (logical op, not raw query)",
				Buckets:   []float64{0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.35, 0.5, 1, 2, 5},
			},
			[]string{"op", "status"},
		),
		StoreErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sportreg",
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Progress store errors by logical op and class.",
			},
			[]string{"op", "class"},
		),
		StepCompletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sportreg",
				Subsystem: "registration",
				Name:      "step_completions_total",
				Help:      "Step completion events by step number.",
			},
			[]string{"step"},
		),
		SelectionRejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sportreg",
				Subsystem: "registration",
				Name:      "selection_rejects_total",
				Help:      "Cart selections rejected at build time, by reason.",
			},
			[]string{"reason"},
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.StoreOpDuration, p.StoreErrorsTotal, p.StepCompletions, p.SelectionRejects)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}

// MarkStepComplete records a completed step; safe on a nil receiver so the
// ledger can run without metrics wired (tests).
func (p *Prom) MarkStepComplete(step int) {
	if p == nil {
		return
	}

	p.StepCompletions.WithLabelValues(strconv.Itoa(step)).Inc()
}

// MarkSelectionReject records a rejected cart selection by reason.
func (p *Prom) MarkSelectionReject(reason string) {
	if p == nil {
		return
	}

	p.SelectionRejects.WithLabelValues(reason).Inc()
}
