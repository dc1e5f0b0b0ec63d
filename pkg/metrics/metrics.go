// Package metrics expone los contadores Prometheus de la aplicación.
// Se sirven en /metrics desde cmd/api.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AllocationsTotal asignaciones FEFO por modo (sale|admin) y resultado
	// (ok|shortage|error).
	AllocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "perecederos",
		Subsystem: "inventory",
		Name:      "allocations_total",
		Help:      "Asignaciones FEFO procesadas, por modo y resultado.",
	}, []string{"mode", "result"})

	// DisposedUnitsTotal unidades desechadas por vencimiento.
	DisposedUnitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "perecederos",
		Subsystem: "inventory",
		Name:      "disposed_units_total",
		Help:      "Unidades desechadas por el proceso de desecho de vencidos.",
	})

	// AuditRecommendationsTotal recomendaciones de revisión generadas.
	AuditRecommendationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "perecederos",
		Subsystem: "audit",
		Name:      "recommendations_total",
		Help:      "Lotes recomendados para revisión física.",
	})
)
