package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/domain"
	dominv "github.com/dvintimilla/andina-api/internal/domain/inventory"
	"github.com/dvintimilla/andina-api/internal/infrastructure/memory"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestApplyDelta_CreaRegistroYPromedia(t *testing.T) {
	records := memory.NewStore().Repos().Records
	now := time.Now()

	// Primera entrada crea el registro.
	cost, price := dec(100), dec(150)
	rec, err := dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(10), &cost, &price, now)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(dec(10)))
	assert.True(t, rec.UnitCost.Equal(dec(100)))

	// Segunda entrada a otro costo promedia ponderado: (10*100+10*200)/20.
	cost2 := dec(200)
	rec, err = dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(10), &cost2, nil, now)
	require.NoError(t, err)
	assert.True(t, rec.UnitCost.Equal(dec(150)))
	assert.True(t, rec.UnitPrice.Equal(dec(150)), "sin precio nuevo el existente no cambia")
}

// Un delta negativo nunca deja la cantidad bajo cero ni altera el costo de
// las unidades restantes.
func TestApplyDelta_NegativoConservaCostoYNoSobregira(t *testing.T) {
	records := memory.NewStore().Repos().Records
	now := time.Now()

	cost := dec(100)
	_, err := dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(5), &cost, nil, now)
	require.NoError(t, err)

	rec, err := dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(-3), nil, nil, now)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(dec(2)))
	assert.True(t, rec.UnitCost.Equal(dec(100)))

	_, err = dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(-3), nil, nil, now)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := records.Get("p1", dominv.LocationOrigin)
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(dec(2)), "el sobregiro rechazado no muta el registro")
}

func TestApplyDelta_DeltaCeroFalla(t *testing.T) {
	records := memory.NewStore().Repos().Records
	_, err := dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, decimal.Zero, nil, nil, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetQuantity_FijaSinTocarCostoNiPrecio(t *testing.T) {
	records := memory.NewStore().Repos().Records
	now := time.Now()

	cost, price := dec(100), dec(150)
	_, err := dominv.ApplyDelta(records, "p1", dominv.LocationOrigin, dec(10), &cost, &price, now)
	require.NoError(t, err)

	rec, err := dominv.SetQuantity(records, "p1", dominv.LocationOrigin, dec(7), "conteo físico", now)
	require.NoError(t, err)
	assert.True(t, rec.Quantity.Equal(dec(7)))
	assert.True(t, rec.UnitCost.Equal(dec(100)))
	assert.True(t, rec.UnitPrice.Equal(dec(150)))

	// Caso 1: sin motivo.
	_, err = dominv.SetQuantity(records, "p1", dominv.LocationOrigin, dec(7), "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Caso 2: cantidad negativa.
	_, err = dominv.SetQuantity(records, "p1", dominv.LocationOrigin, dec(-1), "ajuste", now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
