package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// seedProduct da de alta un producto directo en el Store en memoria.
func seedProduct(t *testing.T, store *memory.Store, id, sku string) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: id, SKU: sku, Name: "Producto " + sku,
		SalePrice: decimal.NewFromInt(50),
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	require.NoError(t, store.Repos().Products.Create(p))
	return p
}

func newLedger(store *memory.Store) *inventory.LedgerUseCase {
	r := store.Repos()
	return inventory.NewLedgerUseCase(store.TxRunner(), r.Products, r.Records, r.Movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterEntry
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: la entrada crea el registro, fija costo/precio y escribe un ENTRY.
func TestRegisterEntry_CreaRegistroYMovimiento(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)

	mov, err := ledger.RegisterEntry(context.Background(), inventory.EntryInput{
		ProductID: "p1",
		Location:  "Bodega Miami", // alias, no la forma canónica
		Quantity:  qty(10),
		UnitCost:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindEntry, mov.Kind)
	assert.Equal(t, dominv.LocationOrigin, mov.Location, "la ubicación debe canonicalizarse al escribir")

	rec, err := store.Repos().Records.Get("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty(10)))
	assert.True(t, rec.UnitCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, rec.TotalCost().Equal(decimal.NewFromInt(1000)), "total = unitario * cantidad")
}

// Caso 2: una segunda entrada a otro costo recalcula el promedio ponderado y
// lo propaga al costo de catálogo.
func TestRegisterEntry_PromedioPonderadoYPropagacionACatalogo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	ctx := context.Background()

	_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami", Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	_, err = ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami", Quantity: qty(10), UnitCost: decimal.NewFromInt(200),
	})
	require.NoError(t, err)

	rec, err := store.Repos().Records.Get("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, rec.UnitCost.Equal(decimal.NewFromInt(150)),
		"10@100 + 10@200 debe promediar a 150, fue %s", rec.UnitCost)

	product, err := store.Repos().Products.GetByID("p1")
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(decimal.NewFromInt(150)),
		"el costo de catálogo debe seguir al promedio del registro")
}

// Caso 3: cantidades no enteras o no positivas se rechazan.
func TestRegisterEntry_CantidadInvalidaFalla(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	ctx := context.Background()

	for _, q := range []decimal.Decimal{decimal.Zero, qty(-3), decimal.NewFromFloat(1.5)} {
		_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{
			ProductID: "p1", Location: "bodega-miami", Quantity: q, UnitCost: decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %s", q)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RegisterCorrection
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCorrection_SinMotivoFalla(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)

	_, err := ledger.RegisterCorrection(context.Background(), inventory.CorrectionInput{
		ProductID: "p1", Location: "bodega-miami", Direction: "IN", Quantity: qty(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una corrección sin motivo debe rechazarse")
}

func TestRegisterCorrection_OutNoPuedeDejarSaldoNegativo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	ctx := context.Background()

	_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami", Quantity: qty(2), UnitCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	_, err = ledger.RegisterCorrection(ctx, inventory.CorrectionInput{
		ProductID: "p1", Location: "bodega-miami", Direction: "OUT", Quantity: qty(5), Reason: "rotura",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La transacción fallida no debe dejar rastro.
	rec, err := store.Repos().Records.Get("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty(2)), "el saldo debe quedar intacto tras el fallo")
}

func TestRegisterCorrection_EscribeMovimientoConMotivo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	ctx := context.Background()

	_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami", Quantity: qty(10), UnitCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	mov, err := ledger.RegisterCorrection(ctx, inventory.CorrectionInput{
		ProductID: "p1", Location: "bodega-miami", Direction: "OUT", Quantity: qty(3), Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindCorrectionOut, mov.Kind)
	assert.Equal(t, "conteo físico", mov.Reason)

	rec, err := store.Repos().Records.Get("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty(7)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests OverrideQuantity
// ──────────────────────────────────────────────────────────────────────────────

// El override fija la cantidad sin escribir movimiento: la divergencia que
// deja es trabajo del motor de reconciliación.
func TestOverrideQuantity_NoEscribeMovimiento(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	ctx := context.Background()

	_, err := ledger.RegisterEntry(ctx, inventory.EntryInput{
		ProductID: "p1", Location: "bodega-miami", Quantity: qty(6), UnitCost: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	rec, err := ledger.OverrideQuantity(ctx, inventory.OverrideInput{
		ProductID: "p1", Location: "bodega-miami", NewQuantity: qty(5), Reason: "conteo físico",
	})
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(qty(5)))

	movs, err := store.Repos().Movements.ListByProduct("p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1, "solo debe existir el ENTRY original, el override no deja movimiento")
	assert.Equal(t, entity.MovementKindEntry, movs[0].Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AvailabilityService
// ──────────────────────────────────────────────────────────────────────────────

// Con una nota en vuelo: el registro ya se descontó (modelo A), pero OnHand
// suma lo comprometido desde el origen y Available lo vuelve a restar.
func TestAvailability_ComprometidoRecalculadoEnCadaLectura(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	r := store.Repos()
	avail := inventory.NewAvailabilityService(r.Records, r.Movements)
	now := time.Now()

	require.NoError(t, r.Records.Upsert(&entity.InventoryRecord{
		ProductID: "p1", Location: dominv.LocationOrigin, Quantity: qty(6), UpdatedAt: now,
	}))
	require.NoError(t, r.Movements.Create(&entity.Movement{
		ID: "m1", Kind: entity.MovementKindExitNote, Status: entity.ExitNoteStatusInTransit,
		ProductID: "p1", Quantity: qty(4),
		Location: dominv.LocationOrigin, Destination: dominv.LocationDestination,
		CreatedAt: now,
	}))

	onHand, err := avail.OnHand("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, onHand.Equal(qty(10)), "físicamente presente: 6 registradas + 4 comprometidas")

	committed, err := avail.Committed("p1")
	require.NoError(t, err)
	assert.True(t, committed.Equal(qty(4)))

	available, err := avail.Available("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, available.Equal(qty(6)), "disponible = presente - comprometido")

	// El destino no ve nada hasta la llegada.
	destAvailable, err := avail.Available("p1", dominv.LocationDestination)
	require.NoError(t, err)
	assert.True(t, destAvailable.IsZero(), "el destino no ve stock en tránsito")
}

// Available nunca es negativa aunque el comprometido exceda lo presente.
func TestAvailability_DisponiblePisoEnCero(t *testing.T) {
	store := memory.NewStore()
	r := store.Repos()
	avail := inventory.NewAvailabilityService(r.Records, r.Movements)
	now := time.Now()

	require.NoError(t, r.Movements.Create(&entity.Movement{
		ID: "m1", Kind: entity.MovementKindExitNote, Status: entity.ExitNoteStatusPending,
		ProductID: "p1", Quantity: qty(9),
		Location: dominv.LocationOrigin, Destination: dominv.LocationDestination,
		CreatedAt: now,
	}))

	available, err := avail.Available("p1", dominv.LocationDestination)
	require.NoError(t, err)
	assert.True(t, available.IsZero(), "la disponibilidad se reporta con piso en cero")
}

// La lectura canonicaliza la ubicación igual que la escritura: un alias de
// texto libre lee el mismo registro, nunca un cero silencioso.
func TestAvailability_AliasLeeElMismoRegistro(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", "SKU-1")
	ledger := newLedger(store)
	r := store.Repos()
	avail := inventory.NewAvailabilityService(r.Records, r.Movements)

	_, err := ledger.RegisterEntry(context.Background(), inventory.EntryInput{
		ProductID: "p1", Location: "Bodega Miami", Quantity: qty(10), UnitCost: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	for _, alias := range []string{"Bodega Miami", "MIAMI", "bodega-miami"} {
		onHand, err := avail.OnHand("p1", alias)
		require.NoError(t, err)
		assert.True(t, onHand.Equal(qty(10)), "alias %q debe leer el registro canónico", alias)

		available, err := avail.Available("p1", alias)
		require.NoError(t, err)
		assert.True(t, available.Equal(qty(10)))
	}

	_, err = avail.OnHand("p1", "bodega-lima")
	assert.ErrorIs(t, err, domain.ErrUnknownLocation, "ubicación fuera del conjunto cerrado")
}
