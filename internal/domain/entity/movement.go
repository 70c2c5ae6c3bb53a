package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kinds de movimiento. La dirección (suma/resta) la implica el kind, nunca el
// signo: Quantity es siempre > 0.
const (
	MovementKindEntry         = "ENTRY"          // entrada de compra o recepción
	MovementKindExitNote      = "EXIT_NOTE"      // línea de nota de salida (traslado)
	MovementKindSale          = "SALE"           // venta a cliente final
	MovementKindReturn        = "RETURN"         // línea de devolución de revendedor
	MovementKindCorrectionIn  = "CORRECTION_IN"  // ajuste manual que suma
	MovementKindCorrectionOut = "CORRECTION_OUT" // ajuste manual que resta
	MovementKindReversal      = "REVERSAL"       // marca de auditoría de un deshacer; efecto cero
)

// Estados de movimiento. Entradas, correcciones y reversas nacen POSTED y no
// transicionan; ventas, notas de salida y devoluciones siguen sus workflows.
const (
	MovementStatusPosted = "POSTED"

	SaleStatusCompleted = "COMPLETED"
	SaleStatusCancelled = "CANCELLED"

	ExitNoteStatusPending   = "PENDING"
	ExitNoteStatusInTransit = "IN_TRANSIT"
	ExitNoteStatusArrived   = "ARRIVED"
	ExitNoteStatusCompleted = "COMPLETED"
	ExitNoteStatusCancelled = "CANCELLED"

	ReturnStatusPending  = "PENDING"
	ReturnStatusApproved = "APPROVED"
	ReturnStatusRejected = "REJECTED"
	ReturnStatusRestored = "RESTORED"
)

// Movement es un evento replayable que afecta stock. Se crea una vez; solo su
// Status transiciona (sincronizado con la nota/devolución dueña en la misma
// transacción). ProductSKU y ProductName se desnormalizan al momento del
// movimiento para que el historial sobreviva cambios de catálogo.
type Movement struct {
	ID          string
	Kind        string
	Status      string
	ProductID   string
	ProductSKU  string
	ProductName string
	Quantity    decimal.Decimal // siempre > 0
	UnitCost    decimal.Decimal
	UnitPrice   decimal.Decimal
	Location    string // ubicación principal (origen en notas de salida, consignación en devoluciones)
	Destination string // ubicación destino en notas de salida y devoluciones
	SellerID    string
	NoteID      string // agrupa las líneas de una nota de salida
	ReturnID    string // agrupa las líneas de una devolución
	ReversalOf  string // id del movimiento original cuando Kind es REVERSAL
	Reason      string // obligatorio en correcciones
	CreatedAt   time.Time
	CreatedBy   string
}

// StockEffect es la contribución con signo de un movimiento sobre una
// ubicación, según su estado actual.
type StockEffect struct {
	Location string
	Quantity decimal.Decimal // con signo
}

// Effects devuelve las contribuciones del movimiento al replay de saldos,
// honrando el estado actual: un movimiento cancelado/rechazado contribuye
// cero. Modelo (A) de notas de salida: el origen se descuenta al crear, el
// destino solo suma al llegar.
func (m *Movement) Effects() []StockEffect {
	switch m.Kind {
	case MovementKindEntry, MovementKindCorrectionIn:
		return []StockEffect{{Location: m.Location, Quantity: m.Quantity}}
	case MovementKindCorrectionOut:
		return []StockEffect{{Location: m.Location, Quantity: m.Quantity.Neg()}}
	case MovementKindSale:
		if m.Status == SaleStatusCancelled {
			return nil
		}
		return []StockEffect{{Location: m.Location, Quantity: m.Quantity.Neg()}}
	case MovementKindExitNote:
		if m.Status == ExitNoteStatusCancelled {
			return nil
		}
		effects := []StockEffect{{Location: m.Location, Quantity: m.Quantity.Neg()}}
		if m.Status == ExitNoteStatusArrived || m.Status == ExitNoteStatusCompleted {
			effects = append(effects, StockEffect{Location: m.Destination, Quantity: m.Quantity})
		}
		return effects
	case MovementKindReturn:
		if m.Status != ReturnStatusApproved {
			return nil
		}
		return []StockEffect{
			{Location: m.Location, Quantity: m.Quantity.Neg()},
			{Location: m.Destination, Quantity: m.Quantity},
		}
	}
	// REVERSAL y kinds desconocidos: solo auditoría, efecto cero.
	return nil
}

// Counterparty identifica a la contraparte del movimiento para reportes de
// reconciliación: el revendedor si lo hay, si no la ubicación destino.
func (m *Movement) Counterparty() string {
	if m.SellerID != "" {
		return m.SellerID
	}
	if m.Destination != "" {
		return m.Destination
	}
	return m.CreatedBy
}
