package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dvintimilla/andina-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests WeightedAverage
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: stock existente más entrada a otro costo → promedio ponderado por cantidad.
func TestWeightedAverage_PromedioPonderado(t *testing.T) {
	// 10 uds a $100 + 10 uds a $200 = 20 uds a $150
	got := inventory.WeightedAverage(
		decimal.NewFromInt(10), decimal.NewFromInt(100),
		decimal.NewFromInt(10), decimal.NewFromInt(200),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(150)),
		"el costo promedio debe ponderarse por cantidad, no promediarse a secas: %s", got)
}

// Caso 2: cantidades distintas pesan distinto.
func TestWeightedAverage_PesosDesiguales(t *testing.T) {
	// 30 uds a $10 + 10 uds a $30 = 40 uds a $15
	got := inventory.WeightedAverage(
		decimal.NewFromInt(30), decimal.NewFromInt(10),
		decimal.NewFromInt(10), decimal.NewFromInt(30),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(15)), "promedio esperado 15, fue %s", got)
}

// Caso 3: sin stock previo, el costo resultante es el de la entrada.
func TestWeightedAverage_StockCeroTomaCostoEntrada(t *testing.T) {
	got := inventory.WeightedAverage(
		decimal.Zero, decimal.Zero,
		decimal.NewFromInt(5), decimal.NewFromInt(42),
	)
	assert.True(t, got.Equal(decimal.NewFromInt(42)),
		"con stock cero el promedio debe ser el costo de la entrada: %s", got)
}

// Caso 4: suma total cero no divide por cero.
func TestWeightedAverage_SumaCeroDevuelveCero(t *testing.T) {
	got := inventory.WeightedAverage(decimal.Zero, decimal.NewFromInt(99), decimal.Zero, decimal.NewFromInt(99))
	assert.True(t, got.IsZero(), "suma de cantidades cero debe devolver costo cero")
}
