package reconcile

import (
	"context"
	"time"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// ReportRenderer renderiza un lote de reportes de discrepancia para
// herramientas de operador (hoy: PDF vía Maroto). Un fallo del renderer nunca
// afecta al Store: el motor ya terminó de leer cuando se llama.
type ReportRenderer interface {
	RenderDiscrepancies(ctx context.Context, reports []*entity.DiscrepancyReport, asOf time.Time) ([]byte, error)
}
