package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests Effects: la contribución de cada movimiento al replay depende de su
// kind y de su estado actual. Un movimiento cancelado contribuye cero.
// ──────────────────────────────────────────────────────────────────────────────

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestEffects_EntradaSumaEnOrigen(t *testing.T) {
	m := &entity.Movement{Kind: entity.MovementKindEntry, Status: entity.MovementStatusPosted, Location: "bodega-miami", Quantity: qty(10)}
	effects := m.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, "bodega-miami", effects[0].Location)
	assert.True(t, effects[0].Quantity.Equal(qty(10)))
}

func TestEffects_VentaCompletadaResta(t *testing.T) {
	m := &entity.Movement{Kind: entity.MovementKindSale, Status: entity.SaleStatusCompleted, Location: "bodega-ecuador", Quantity: qty(3)}
	effects := m.Effects()
	require.Len(t, effects, 1)
	assert.True(t, effects[0].Quantity.Equal(qty(-3)))
}

func TestEffects_VentaCanceladaContribuyeCero(t *testing.T) {
	m := &entity.Movement{Kind: entity.MovementKindSale, Status: entity.SaleStatusCancelled, Location: "bodega-ecuador", Quantity: qty(3)}
	assert.Empty(t, m.Effects(), "una venta cancelada no debe afectar el replay")
}

// La nota de salida descuenta el origen desde que existe; el destino solo
// aparece cuando la nota se marca llegada.
func TestEffects_NotaDeSalidaEnTransitoSoloDescuentaOrigen(t *testing.T) {
	m := &entity.Movement{
		Kind: entity.MovementKindExitNote, Status: entity.ExitNoteStatusInTransit,
		Location: "bodega-miami", Destination: "bodega-ecuador", Quantity: qty(4),
	}
	effects := m.Effects()
	require.Len(t, effects, 1)
	assert.Equal(t, "bodega-miami", effects[0].Location)
	assert.True(t, effects[0].Quantity.Equal(qty(-4)))
}

func TestEffects_NotaDeSalidaLlegadaAcreditaDestino(t *testing.T) {
	for _, status := range []string{entity.ExitNoteStatusArrived, entity.ExitNoteStatusCompleted} {
		m := &entity.Movement{
			Kind: entity.MovementKindExitNote, Status: status,
			Location: "bodega-miami", Destination: "bodega-ecuador", Quantity: qty(4),
		}
		effects := m.Effects()
		require.Len(t, effects, 2, "status %s", status)
		assert.True(t, effects[0].Quantity.Equal(qty(-4)))
		assert.Equal(t, "bodega-ecuador", effects[1].Location)
		assert.True(t, effects[1].Quantity.Equal(qty(4)))
	}
}

func TestEffects_NotaDeSalidaCanceladaContribuyeCero(t *testing.T) {
	m := &entity.Movement{
		Kind: entity.MovementKindExitNote, Status: entity.ExitNoteStatusCancelled,
		Location: "bodega-miami", Destination: "bodega-ecuador", Quantity: qty(4),
	}
	assert.Empty(t, m.Effects())
}

// Una devolución solo mueve stock mientras está APPROVED; pendiente,
// rechazada o restaurada contribuye cero.
func TestEffects_DevolucionSoloAprobadaMueveStock(t *testing.T) {
	base := entity.Movement{
		Kind:     entity.MovementKindReturn,
		Location: "consignacion:seller-1", Destination: "bodega-ecuador", Quantity: qty(2),
	}
	for _, status := range []string{entity.ReturnStatusPending, entity.ReturnStatusRejected, entity.ReturnStatusRestored} {
		m := base
		m.Status = status
		assert.Empty(t, m.Effects(), "status %s no debe contribuir", status)
	}
	m := base
	m.Status = entity.ReturnStatusApproved
	effects := m.Effects()
	require.Len(t, effects, 2)
	assert.True(t, effects[0].Quantity.Equal(qty(-2)))
	assert.True(t, effects[1].Quantity.Equal(qty(2)))
}

func TestEffects_CorreccionesYReversa(t *testing.T) {
	in := &entity.Movement{Kind: entity.MovementKindCorrectionIn, Status: entity.MovementStatusPosted, Location: "bodega-miami", Quantity: qty(5)}
	out := &entity.Movement{Kind: entity.MovementKindCorrectionOut, Status: entity.MovementStatusPosted, Location: "bodega-miami", Quantity: qty(5)}
	rev := &entity.Movement{Kind: entity.MovementKindReversal, Status: entity.MovementStatusPosted, Location: "bodega-miami", Quantity: qty(5)}

	require.Len(t, in.Effects(), 1)
	assert.True(t, in.Effects()[0].Quantity.Equal(qty(5)))
	require.Len(t, out.Effects(), 1)
	assert.True(t, out.Effects()[0].Quantity.Equal(qty(-5)))
	assert.Empty(t, rev.Effects(), "la reversa es marca de auditoría, efecto cero")
}
