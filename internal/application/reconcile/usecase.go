package reconcile

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// Engine reconstruye el saldo esperado por (producto, ubicación) replayando
// el historial de movimientos y lo compara contra el saldo registrado. Es
// solo-lectura y se dispara a demanda por un operador: corre sin bloquear el
// Store, contra un snapshot best-effort estampado en AsOf. Las divergencias
// se reportan, nunca se autocorrigen — la única vía de mutación es una
// corrección explícita confirmada por un humano.
type Engine struct {
	records   repository.InventoryRecordRepository
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewEngine construye el motor sobre los repositorios de lectura.
func NewEngine(records repository.InventoryRecordRepository, movements repository.MovementRepository, products repository.ProductRepository) *Engine {
	return &Engine{records: records, movements: movements, products: products}
}

// Scope delimita la auditoría: un producto, una ubicación, ambos, o todo el
// Store cuando ambos campos van vacíos.
type Scope struct {
	ProductID string
	Location  string
}

type balanceKey struct {
	productID string
	location  string
}

// decimalAcc acumula el saldo esperado y sus movimientos contribuyentes. El
// zero value de decimal.Decimal es un cero válido, así que el acceso directo
// al map funciona sin inicialización.
type decimalAcc struct {
	total         decimal.Decimal
	contributions []entity.MovementContribution
}

// Run replaya los movimientos del alcance en orden de creación, honrando el
// estado actual de cada uno (cancelado/rechazado contribuye cero), y emite un
// reporte por cada (producto, ubicación) con saldo registrado, esperado,
// diferencia con signo y los movimientos que contribuyeron.
func (e *Engine) Run(ctx context.Context, scope Scope) ([]*entity.DiscrepancyReport, error) {
	location := ""
	if scope.Location != "" {
		canonical, err := dominv.Canonical(scope.Location)
		if err != nil {
			return nil, err
		}
		location = canonical
	}
	asOf := time.Now()

	movs, err := e.movements.ListForReplay(scope.ProductID, location)
	if err != nil {
		return nil, err
	}

	expected := make(map[balanceKey]decimalAcc)
	for _, m := range movs {
		for _, eff := range m.Effects() {
			if location != "" && eff.Location != location {
				continue
			}
			k := balanceKey{productID: m.ProductID, location: eff.Location}
			acc := expected[k]
			acc.total = acc.total.Add(eff.Quantity)
			acc.contributions = append(acc.contributions, entity.MovementContribution{
				MovementID:   m.ID,
				Kind:         m.Kind,
				Status:       m.Status,
				Effect:       eff.Quantity,
				Counterparty: m.Counterparty(),
				CreatedAt:    m.CreatedAt,
			})
			expected[k] = acc
		}
	}

	recs, err := e.records.List(location, 0, 0)
	if err != nil {
		return nil, err
	}

	names := newProductNames(e.products)
	var reports []*entity.DiscrepancyReport
	for _, rec := range recs {
		if scope.ProductID != "" && rec.ProductID != scope.ProductID {
			continue
		}
		k := balanceKey{productID: rec.ProductID, location: rec.Location}
		acc := expected[k]
		delete(expected, k)
		sku, name := names.lookup(rec.ProductID)
		reports = append(reports, &entity.DiscrepancyReport{
			ProductID:   rec.ProductID,
			ProductSKU:  sku,
			ProductName: name,
			Location:    rec.Location,
			Recorded:    rec.Quantity,
			Expected:    acc.total,
			Difference:  rec.Quantity.Sub(acc.total),
			Movements:   acc.contributions,
			AsOf:        asOf,
		})
	}
	// Claves con movimientos pero sin registro vivo: registrado cero.
	for k, acc := range expected {
		sku, name := names.lookup(k.productID)
		reports = append(reports, &entity.DiscrepancyReport{
			ProductID:   k.productID,
			ProductSKU:  sku,
			ProductName: name,
			Location:    k.location,
			Expected:    acc.total,
			Difference:  acc.total.Neg(),
			Movements:   acc.contributions,
			AsOf:        asOf,
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].ProductID != reports[j].ProductID {
			return reports[i].ProductID < reports[j].ProductID
		}
		return reports[i].Location < reports[j].Location
	})
	return reports, nil
}

// ListDiscrepancies devuelve solo los (producto, ubicación) cuyo saldo
// registrado difiere del replayado.
func (e *Engine) ListDiscrepancies(ctx context.Context, scope Scope) ([]*entity.DiscrepancyReport, error) {
	reports, err := e.Run(ctx, scope)
	if err != nil {
		return nil, err
	}
	out := reports[:0]
	for _, r := range reports {
		if r.HasDiscrepancy() {
			out = append(out, r)
		}
	}
	return out, nil
}

// productNames resuelve SKU/nombre de catálogo con un cache por corrida. Un
// producto borrado del catálogo deja el reporte sin nombre; el historial del
// movimiento conserva el suyo desnormalizado.
type productNames struct {
	products repository.ProductRepository
	cache    map[string]*entity.Product
}

func newProductNames(products repository.ProductRepository) *productNames {
	return &productNames{products: products, cache: make(map[string]*entity.Product)}
}

func (n *productNames) lookup(productID string) (sku, name string) {
	p, ok := n.cache[productID]
	if !ok {
		p, _ = n.products.GetByID(productID)
		n.cache[productID] = p
	}
	if p != nil {
		return p.SKU, p.Name
	}
	return "", ""
}
