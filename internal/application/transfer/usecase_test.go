package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/application/transfer"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fixture arma un Store con un producto (costo 100, precio 50) y saldo
// inicial en la bodega origen.
func fixture(t *testing.T, initial int64) (*memory.Store, *transfer.UseCase) {
	t.Helper()
	store := memory.NewStore()
	r := store.Repos()
	now := time.Now()
	require.NoError(t, r.Products.Create(&entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Producto 1",
		Cost: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(50),
		CreatedAt: now, UpdatedAt: now,
	}))
	if initial > 0 {
		require.NoError(t, r.Records.Upsert(&entity.InventoryRecord{
			ProductID: "p1", Location: dominv.LocationOrigin,
			Quantity: qty(initial), UnitCost: decimal.NewFromInt(100),
			UnitPrice: decimal.NewFromInt(50), UpdatedAt: now,
		}))
		require.NoError(t, r.Movements.Create(&entity.Movement{
			ID: "seed-entry", Kind: entity.MovementKindEntry, Status: entity.MovementStatusPosted,
			ProductID: "p1", Quantity: qty(initial),
			UnitCost: decimal.NewFromInt(100), Location: dominv.LocationOrigin,
			CreatedAt: now,
		}))
	}
	uc := transfer.NewUseCase(store.TxRunner(), r.Products, r.Sellers, r.ExitNotes)
	return store, uc
}

func seedSeller(t *testing.T, store *memory.Store, id string) {
	t.Helper()
	require.NoError(t, store.Repos().Sellers.Create(&entity.Seller{
		ID: id, Name: "Revendedor " + id, Debt: decimal.Zero, PriceTier: "minorista",
	}))
}

func recordQty(t *testing.T, store *memory.Store, productID, location string) decimal.Decimal {
	t.Helper()
	rec, err := store.Repos().Records.Get(productID, location)
	require.NoError(t, err)
	return rec.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create (modelo A: el origen se descuenta al crear)
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaOrigenDeInmediato(t *testing.T) {
	store, uc := fixture(t, 10)

	note, err := uc.Create(context.Background(), transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ExitNoteStatusPending, note.Status)
	assert.Equal(t, dominv.LocationOrigin, note.Source, "origen por defecto")

	assert.True(t, recordQty(t, store, "p1", dominv.LocationOrigin).Equal(qty(6)),
		"el registro del origen se descuenta al crear la nota")
	assert.True(t, recordQty(t, store, "p1", dominv.LocationDestination).IsZero(),
		"el destino no ve nada hasta la llegada")
}

// Una línea por encima de lo disponible aborta la transacción completa y el
// Store queda exactamente como estaba.
func TestCreate_SinDisponibleAbortaTodoSinCambios(t *testing.T) {
	store, uc := fixture(t, 10)

	_, err := uc.Create(context.Background(), transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines: []transfer.LineInput{
			{ProductID: "p1", Quantity: qty(6)},
			{ProductID: "p1", Quantity: qty(6)}, // la segunda ya no alcanza
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, recordQty(t, store, "p1", dominv.LocationOrigin).Equal(qty(10)),
		"la transacción fallida no debe dejar descuentos parciales")
	movs, err := store.Repos().Movements.ListByProduct("p1", 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 1, "solo el ENTRY inicial; ninguna línea de la nota fallida")
}

// El disponible resta lo ya comprometido: dos notas que en conjunto exceden
// el saldo no pueden crearse ambas.
func TestCreate_ComprometidoBloqueaSegundaNota(t *testing.T) {
	_, uc := fixture(t, 10)
	ctx := context.Background()

	_, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(7)}},
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(7)}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"7 + 7 sobre un saldo de 10 no puede comprometerse dos veces")
}

func TestCreate_DestinoConsignacionViaRevendedor(t *testing.T) {
	store, uc := fixture(t, 10)
	seedSeller(t, store, "seller-1")

	note, err := uc.Create(context.Background(), transfer.CreateInput{
		SellerID: "seller-1",
		Lines:    []transfer.LineInput{{ProductID: "p1", Quantity: qty(3)}},
	})
	require.NoError(t, err)
	assert.Equal(t, dominv.ConsignmentLocation("seller-1"), note.Destination)
}

func TestCreate_OrigenIgualDestinoFalla(t *testing.T) {
	_, uc := fixture(t, 10)
	_, err := uc.Create(context.Background(), transfer.CreateInput{
		Source:      "bodega-miami",
		Destination: "Bodega Miami", // alias del mismo lugar
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UpdateStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_LlegadaAcreditaDestinoUnaVez(t *testing.T) {
	store, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusInTransit))
	assert.True(t, recordQty(t, store, "p1", dominv.LocationDestination).IsZero(),
		"en tránsito el destino sigue sin ver el stock")

	require.NoError(t, uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusArrived))
	assert.True(t, recordQty(t, store, "p1", dominv.LocationDestination).Equal(qty(4)),
		"la llegada acredita el destino")

	// ARRIVED -> COMPLETED es puro status: no debe acreditar de nuevo.
	require.NoError(t, uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusCompleted))
	assert.True(t, recordQty(t, store, "p1", dominv.LocationDestination).Equal(qty(4)),
		"completar una nota ya llegada no duplica el crédito")
}

func TestUpdateStatus_TransicionInvalidaFalla(t *testing.T) {
	_, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)

	err = uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusArrived)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"PENDING no puede saltar directo a ARRIVED")
}

// El status de las líneas en el log sigue a la cabecera en la misma
// transacción: el replay de reconciliación depende de ello.
func TestUpdateStatus_SincronizaMovimientos(t *testing.T) {
	store, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusInTransit))

	movs, err := store.Repos().Movements.ListForReplay("p1", "")
	require.NoError(t, err)
	for _, m := range movs {
		if m.NoteID == note.ID && m.Kind == entity.MovementKindExitNote {
			assert.Equal(t, entity.ExitNoteStatusInTransit, m.Status)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_RestauraOrigenYDejaReversa(t *testing.T) {
	store, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, note.ID, "operador"))

	assert.True(t, recordQty(t, store, "p1", dominv.LocationOrigin).Equal(qty(10)),
		"cancelar restaura el descuento original")

	got, err := uc.GetByID(note.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ExitNoteStatusCancelled, got.Status)

	var reversals []*entity.Movement
	movs, err := store.Repos().Movements.ListByProduct("p1", 0, 0)
	require.NoError(t, err)
	for _, m := range movs {
		if m.Kind == entity.MovementKindReversal {
			reversals = append(reversals, m)
		}
	}
	require.Len(t, reversals, 1, "debe quedar exactamente una marca de reversa por línea")
	assert.Equal(t, "SKU-1", reversals[0].ProductSKU,
		"la reversa carga SKU y nombre desnormalizados como cualquier otro movimiento")
	assert.Equal(t, "Producto 1", reversals[0].ProductName)
}

// La cancelación es válida exactamente una vez: el segundo intento falla con
// ErrAlreadyReversed y no toca el Store.
func TestCancel_SegundaVezFallaSinTocarStock(t *testing.T) {
	store, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(ctx, note.ID, "operador"))

	err = uc.Cancel(ctx, note.ID, "operador")
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)
	assert.True(t, recordQty(t, store, "p1", dominv.LocationOrigin).Equal(qty(10)),
		"la doble cancelación no debe duplicar la restauración")
}

func TestCancel_SoloDesdePending(t *testing.T) {
	_, uc := fixture(t, 10)
	ctx := context.Background()

	note, err := uc.Create(ctx, transfer.CreateInput{
		Destination: "bodega-ecuador",
		Lines:       []transfer.LineInput{{ProductID: "p1", Quantity: qty(4)}},
	})
	require.NoError(t, err)
	require.NoError(t, uc.UpdateStatus(ctx, note.ID, entity.ExitNoteStatusInTransit))

	err = uc.Cancel(ctx, note.ID, "operador")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"una nota en tránsito no puede cancelarse en silencio")
}
