package inventory

import (
	"time"

	"github.com/jhoicas/Perecederos-api/internal/domain/entity"
)

// batchTake descuento planificado sobre un lote concreto.
type batchTake struct {
	batch *entity.Batch
	taken int
}

// allocateFEFO recorre los lotes en orden FEFO (la lista ya viene ordenada
// por vencimiento ascendente, estable por creación) y planifica descuentos
// greedy hasta cubrir la cantidad solicitada.
//
// Reglas del recorrido:
//   - lotes sin restante (cantidad <= 0) se saltan siempre;
//   - si asOf no es nil se excluyen los lotes vencidos (expiry < asOf);
//     un lote que vence exactamente en asOf sigue siendo utilizable;
//   - de cada lote elegible se toma min(restante, pendiente) y el recorrido
//     corta en cuanto el pendiente llega a cero.
//
// Devuelve los descuentos en el orden en que se tomaron y el faltante
// (0 si la solicitud quedó cubierta). No muta los lotes: aplicar los
// descuentos es responsabilidad del caller dentro de su transacción.
func allocateFEFO(batches []*entity.Batch, requested int, asOf *time.Time) ([]batchTake, int) {
	remaining := requested
	var takes []batchTake

	for _, b := range batches {
		if remaining == 0 {
			break
		}
		if b.Quantity <= 0 {
			continue
		}
		if asOf != nil && b.Expired(*asOf) {
			continue
		}

		take := b.Quantity
		if remaining < take {
			take = remaining
		}
		takes = append(takes, batchTake{batch: b, taken: take})
		remaining -= take
	}

	return takes, remaining
}
