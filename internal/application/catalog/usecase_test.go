package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/application/catalog"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func fixture(t *testing.T, ids ...string) (*memory.Store, *catalog.UseCase) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	for _, id := range ids {
		require.NoError(t, store.Repos().Products.Create(&entity.Product{
			ID: id, SKU: "SKU-" + id, Name: "Producto " + id,
			Cost: decimal.NewFromInt(100), SalePrice: decimal.NewFromInt(50),
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	return store, catalog.NewUseCase(store.Repos().Products)
}

func ids(products []*entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AltaYDuplicadoDeSKU(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, catalog.CreateInput{
		SKU: "CAM-001", Name: "Cámara",
		Cost: decimal.NewFromInt(200), SalePrice: decimal.NewFromInt(350),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	_, err = uc.Create(ctx, catalog.CreateInput{
		SKU: "CAM-001", Name: "Otra cámara",
		Cost: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(20),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_EntradasInvalidas(t *testing.T) {
	_, uc := fixture(t)
	ctx := context.Background()

	// Caso 1: sin SKU.
	_, err := uc.Create(ctx, catalog.CreateInput{Name: "Sin SKU"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: costo negativo.
	_, err = uc.Create(ctx, catalog.CreateInput{
		SKU: "X-1", Name: "X", Cost: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El costo no es editable por catálogo: lo gobiernan las entradas de
// inventario vía promedio ponderado.
func TestUpdate_NoTocaElCosto(t *testing.T) {
	_, uc := fixture(t, "p1")

	p, err := uc.Update(context.Background(), "p1", catalog.CreateInput{
		Name: "Renombrado", Cost: decimal.NewFromInt(999),
		SalePrice: decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", p.Name)
	assert.True(t, p.SalePrice.Equal(decimal.NewFromInt(75)))
	assert.True(t, p.Cost.Equal(decimal.NewFromInt(100)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Consolidate / Unconsolidate
// ──────────────────────────────────────────────────────────────────────────────

func TestConsolidate_MarcaComboSinMoverStock(t *testing.T) {
	store, uc := fixture(t, "padre", "h1", "h2")
	now := time.Now()
	require.NoError(t, store.Repos().Records.Upsert(&entity.InventoryRecord{
		ProductID: "h1", Location: dominv.LocationOrigin,
		Quantity: decimal.NewFromInt(5), UpdatedAt: now,
	}))

	p, err := uc.Consolidate(context.Background(), "padre", []string{"h1", "h2"})
	require.NoError(t, err)
	assert.True(t, p.IsConsolidated)
	assert.Equal(t, []string{"h1", "h2"}, p.ChildIDs)

	rec, err := store.Repos().Records.Get("h1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(5)),
		"consolidar es metadato puro: el stock del hijo no se mueve")
}

func TestConsolidate_RechazosDeEntrada(t *testing.T) {
	_, uc := fixture(t, "padre", "h1")
	ctx := context.Background()

	// Caso 1: sin hijos.
	_, err := uc.Consolidate(ctx, "padre", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: autorreferencia directa.
	_, err = uc.Consolidate(ctx, "padre", []string{"padre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 3: hijo duplicado.
	_, err = uc.Consolidate(ctx, "padre", []string{"h1", "h1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 4: hijo inexistente.
	_, err = uc.Consolidate(ctx, "padre", []string{"nadie"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// a -> b ya existe; consolidar b con a cerraría el ciclo.
func TestConsolidate_RechazaCicloTransitivo(t *testing.T) {
	_, uc := fixture(t, "a", "b", "c")
	ctx := context.Background()

	_, err := uc.Consolidate(ctx, "a", []string{"b"})
	require.NoError(t, err)

	_, err = uc.Consolidate(ctx, "b", []string{"a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ciclo directo a<->b")

	// Cadena a -> b, b -> c: consolidar c con a cierra un ciclo de tres.
	_, err = uc.Consolidate(ctx, "b", []string{"c"})
	require.NoError(t, err)
	_, err = uc.Consolidate(ctx, "c", []string{"a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ciclo transitivo a->b->c->a")
}

func TestList_SellableOcultaHijosDeCombosVigentes(t *testing.T) {
	_, uc := fixture(t, "padre", "h1", "h2", "suelto")
	ctx := context.Background()

	_, err := uc.Consolidate(ctx, "padre", []string{"h1", "h2"})
	require.NoError(t, err)

	all, err := uc.List(false, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4, "sin filtro se ven todos")

	sellable, err := uc.List(true, 0, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"padre", "suelto"}, ids(sellable))
}

func TestUnconsolidate_ReExponeHijos(t *testing.T) {
	_, uc := fixture(t, "padre", "h1")
	ctx := context.Background()

	_, err := uc.Consolidate(ctx, "padre", []string{"h1"})
	require.NoError(t, err)

	p, err := uc.Unconsolidate(ctx, "padre")
	require.NoError(t, err)
	assert.False(t, p.IsConsolidated)
	assert.Empty(t, p.ChildIDs)

	sellable, err := uc.List(true, 0, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"padre", "h1"}, ids(sellable))

	_, err = uc.Unconsolidate(ctx, "padre")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no se puede desconsolidar dos veces")
}
