package viz

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides Prometheus-compatible metrics for the visualization
// core, namespaced with "viz":
//
//   - steps_resolved_total (counter, label mode): steps served to a
//     renderer, split by chosen rendering path.
//   - validation_findings_total (counter, label severity): validator
//     errors and warnings surfaced during step resolution.
//   - renderer_errors_total (counter, label entity_type): failures
//     reported by external renderers through the facade.
//   - normalize_duration_seconds (histogram): payload parse + normalize
//     latency.
//   - frames_total / dropped_frames_total (counters): animation frame
//     clock activity, fed by the anim monitor when wired.
//   - active_animations (gauge): current scheduler registry size.
//
// Construct with a private registry in tests to keep collectors isolated.
type Metrics struct {
	stepsResolved      *prometheus.CounterVec
	validationFindings *prometheus.CounterVec
	rendererErrors     *prometheus.CounterVec
	normalizeDuration  prometheus.Histogram
	framesTotal        prometheus.Counter
	droppedFrames      prometheus.Counter
	activeAnimations   prometheus.Gauge
}

// NewMetrics creates and registers all visualization metrics with the
// provided registry. A nil registry falls back to the Prometheus default
// registerer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		stepsResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "viz",
			Name:      "steps_resolved_total",
			Help:      "Steps resolved and served to a renderer, by rendering mode.",
		}, []string{"mode"}),
		validationFindings: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "viz",
			Name:      "validation_findings_total",
			Help:      "Validator findings surfaced during step resolution, by severity.",
		}, []string{"severity"}),
		rendererErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "viz",
			Name:      "renderer_errors_total",
			Help:      "Errors reported by external renderers, by entity type.",
		}, []string{"entity_type"}),
		normalizeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "viz",
			Name:      "normalize_duration_seconds",
			Help:      "Payload parse and normalization latency.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),
		framesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "viz",
			Name:      "frames_total",
			Help:      "Animation clock ticks observed.",
		}),
		droppedFrames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "viz",
			Name:      "dropped_frames_total",
			Help:      "Ticks whose delta exceeded roughly double the frame budget.",
		}),
		activeAnimations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "viz",
			Name:      "active_animations",
			Help:      "Animations currently registered with the scheduler.",
		}),
	}
}

// StepResolved records a step served under the given rendering mode.
func (m *Metrics) StepResolved(mode RenderMode) {
	if m == nil {
		return
	}
	m.stepsResolved.WithLabelValues(string(mode)).Inc()
}

// ValidationFindings records validator findings for one step.
func (m *Metrics) ValidationFindings(report ValidationReport) {
	if m == nil {
		return
	}
	if n := len(report.Errors); n > 0 {
		m.validationFindings.WithLabelValues("error").Add(float64(n))
	}
	if n := len(report.Warnings); n > 0 {
		m.validationFindings.WithLabelValues("warning").Add(float64(n))
	}
}

// RendererError records a renderer-reported failure.
func (m *Metrics) RendererError(entityType string) {
	if m == nil {
		return
	}
	if entityType == "" {
		entityType = "unknown"
	}
	m.rendererErrors.WithLabelValues(entityType).Inc()
}

// ObserveNormalize records one payload normalization duration.
func (m *Metrics) ObserveNormalize(d time.Duration) {
	if m == nil {
		return
	}
	m.normalizeDuration.Observe(d.Seconds())
}

// ObserveFrame records one animation clock tick. It satisfies the anim
// package's FrameObserver interface so a Monitor can feed frame metrics
// directly.
func (m *Metrics) ObserveFrame(_ time.Duration, dropped bool) {
	if m == nil {
		return
	}
	m.framesTotal.Inc()
	if dropped {
		m.droppedFrames.Inc()
	}
}

// SetActiveAnimations records the current scheduler registry size.
func (m *Metrics) SetActiveAnimations(n int) {
	if m == nil {
		return
	}
	m.activeAnimations.Set(float64(n))
}
