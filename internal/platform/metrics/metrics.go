package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"animal-facility/internal/domain/facility"
)

// Recorder agrupa las métricas de operaciones del dominio en un registry propio.
// No hay servidor HTTP: se exportan a un textfile (node_exporter textfile collector).
// Un *Recorder nil es válido y no registra nada.
type Recorder struct {
	reg *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	overdue    prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "facility_operations_total",
			Help: "Count of facility operations by name and result",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "facility_operation_duration_seconds",
			Help:    "Duration of facility operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "facility_overdue_treatments",
			Help: "Overdue treatments found by the last schedule report",
		}),
	}
	r.reg.MustRegister(r.operations, r.duration, r.overdue)
	return r
}

// Observe registra una operación terminada; el resultado se deriva del error.
func (r *Recorder) Observe(operation string, start time.Time, err error) {
	if r == nil {
		return
	}
	r.operations.WithLabelValues(operation, Result(err)).Inc()
	r.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (r *Recorder) SetOverdue(n int) {
	if r == nil {
		return
	}
	r.overdue.Set(float64(n))
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// WriteTextfile vuelca el registry en formato de exposición; path vacío no hace nada.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.reg)
}

// Result traduce un error del dominio a una etiqueta de baja cardinalidad.
func Result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, facility.ErrNotFound):
		return "not_found"
	case errors.Is(err, facility.ErrBoxUnavailable):
		return "box_unavailable"
	case errors.Is(err, facility.ErrBoxOccupied):
		return "box_occupied"
	case errors.Is(err, facility.ErrValidation):
		return "validation"
	case errors.Is(err, facility.ErrStorage):
		return "storage"
	default:
		return "error"
	}
}
