package reconcile_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/application/reconcile"
	"github.com/dvintimilla/andina-api/internal/application/transfer"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fixtureEnv struct {
	store    *memory.Store
	ledger   *inventory.LedgerUseCase
	transfer *transfer.UseCase
	engine   *reconcile.Engine
}

func fixture(t *testing.T) *fixtureEnv {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now()
	require.NoError(t, r.Products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Producto 1",
		Cost: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(50),
		CreatedAt: now, UpdatedAt: now,
	}))
	return &fixtureEnv{
		store:    store,
		ledger:   inventory.NewLedgerUseCase(store.TxRunner(), r.Products, r.Records, r.Movements),
		transfer: transfer.NewUseCase(store.TxRunner(), r.Products, r.Sellers, r.ExitNotes),
		engine:   reconcile.NewEngine(r.Records, r.Movements, r.Products),
	}
}

func findReport(t *testing.T, reports []*entity.DiscrepancyReport, productID, location string) *entity.DiscrepancyReport {
	t.Helper()
	for _, r := range reports {
		if r.ProductID == productID && r.Location == location {
			return r
		}
	}
	t.Fatalf("no hay reporte para %s en %s", productID, location)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Run
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo sin overrides: entrada de 10 en origen, nota de 4 llegada al
// destino. El replay debe coincidir exactamente con los registros en ambas
// ubicaciones.
func TestRun_FlujoNormalSinDivergencias(t *testing.T) {
	f := fixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "Bodega Miami",
		Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	note, err := f.transfer.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, f.transfer.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusInTransit))
	require.NoError(t, f.transfer.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusArrived))

	reports, err := f.engine.Run(ctx, reconcile.Scope{})
	require.NoError(t, err)

	origin := findReport(t, reports, "p1", dominv.LocationOrigin)
	assert.True(t, origin.Recorded.Equal(qty(6)))
	assert.True(t, origin.Expected.Equal(qty(6)))
	assert.False(t, origin.HasDiscrepancy())

	dest := findReport(t, reports, "p1", dominv.LocationDestination)
	assert.True(t, dest.Recorded.Equal(qty(4)))
	assert.True(t, dest.Expected.Equal(qty(4)))
	assert.False(t, dest.HasDiscrepancy())
}

// Un override manual no escribe movimiento: el replay sigue esperando el
// saldo anterior y la diferencia sale con signo (registrado - esperado).
func TestRun_OverrideDejaDivergenciaConSigno(t *testing.T) {
	f := fixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami",
		Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	// Conteo físico encontró 9 en vez de 10.
	_, err = f.ledger.OverrideQuantity(ctx, inventory.OverrideInput{
		ProductID: "p1", Location: "bodega-miami",
		NewQuantity: qty(9), Reason: "conteo físico agosto",
	})
	require.NoError(t, err)

	reports, err := f.engine.ListDiscrepancies(ctx, reconcile.Scope{})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	assert.Equal(t, dominv.LocationOrigin, r.Location)
	assert.True(t, r.Recorded.Equal(qty(9)))
	assert.True(t, r.Expected.Equal(qty(10)))
	assert.True(t, r.Difference.Equal(qty(-1)), "faltante = diferencia negativa")
	assert.Equal(t, "SKU-1", r.ProductSKU)
	require.NotEmpty(t, r.Movements, "el reporte lista los movimientos contribuyentes")
	assert.Equal(t, entity.MovementKindEntry, r.Movements[0].Kind)
}

// Una nota cancelada contribuye cero al replay: tras cancelar, el origen
// vuelve a cuadrar.
func TestRun_NotaCanceladaContribuyeCero(t *testing.T) {
	f := fixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami",
		Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	note, err := f.transfer.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, f.transfer.Cancel(ctx, note.ID, "operador"))

	reports, err := f.engine.ListDiscrepancies(ctx, reconcile.Scope{})
	require.NoError(t, err)
	assert.Empty(t, reports, "la nota cancelada y su reversa se anulan en el replay")
}

// Una nota PENDING ya descontó el registro del origen y su línea descuenta
// igual en el replay: el origen cuadra, y el destino aún no ve nada.
func TestRun_NotaPendienteCuadraEnOrigen(t *testing.T) {
	f := fixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami",
		Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = f.transfer.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)

	reports, err := f.engine.Run(ctx, reconcile.Scope{Location: "bodega-miami"})
	require.NoError(t, err)
	origin := findReport(t, reports, "p1", dominv.LocationOrigin)
	assert.True(t, origin.Recorded.Equal(qty(6)))
	assert.True(t, origin.Expected.Equal(qty(6)), "la línea PENDING descuenta el origen en el replay")
	assert.False(t, origin.HasDiscrepancy())

	all, err := f.engine.ListDiscrepancies(ctx, reconcile.Scope{})
	require.NoError(t, err)
	assert.Empty(t, all, "el destino no acredita hasta la llegada, ni en registro ni en replay")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_AlcancePorUbicacionFiltra(t *testing.T) {
	f := fixture(t)
	ctx := context.Background()

	_, err := f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami",
		Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = f.ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-ecuador",
		Quantity: qty(3), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	reports, err := f.engine.Run(ctx, reconcile.Scope{Location: "Bodega Ecuador"})
	require.NoError(t, err)
	require.Len(t, reports, 1, "el alias se canonicaliza y filtra una sola ubicación")
	assert.Equal(t, dominv.LocationDestination, reports[0].Location)
}

func TestRun_UbicacionDesconocidaFalla(t *testing.T) {
	f := fixture(t)
	_, err := f.engine.Run(context.Background(), reconcile.Scope{Location: "bodega-lima"})
	assert.Error(t, err)
}
