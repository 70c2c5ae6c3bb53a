package http

import (
	"github.com/dvintimilla/andina-api/internal/application/dto"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
)

// Mapeos entidad -> DTO de respuesta. Los casos de uso devuelven entidades;
// la capa HTTP decide la forma del JSON.

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Cost:           p.Cost,
		SalePrice:      p.SalePrice,
		UnitWeight:     p.UnitWeight,
		UnitVolume:     p.UnitVolume,
		IsConsolidated: p.IsConsolidated,
		ChildIDs:       p.ChildIDs,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toRecordResponse(r *entity.InventoryRecord) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		ProductID:  r.ProductID,
		Location:   r.Location,
		Quantity:   r.Quantity,
		UnitCost:   r.UnitCost,
		UnitPrice:  r.UnitPrice,
		TotalCost:  r.TotalCost(),
		TotalPrice: r.TotalPrice(),
		UpdatedAt:  r.UpdatedAt,
	}
}

func toRecordResponses(records []*entity.InventoryRecord) []dto.InventoryRecordResponse {
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordResponse(r))
	}
	return out
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		Kind:        m.Kind,
		Status:      m.Status,
		ProductID:   m.ProductID,
		ProductSKU:  m.ProductSKU,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		UnitPrice:   m.UnitPrice,
		Location:    m.Location,
		Destination: m.Destination,
		SellerID:    m.SellerID,
		NoteID:      m.NoteID,
		ReturnID:    m.ReturnID,
		ReversalOf:  m.ReversalOf,
		Reason:      m.Reason,
		CreatedAt:   m.CreatedAt,
		CreatedBy:   m.CreatedBy,
	}
}

func toMovementResponses(movements []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toExitNoteResponse(n *entity.ExitNote) dto.ExitNoteResponse {
	lines := make([]dto.ExitNoteLineResponse, 0, len(n.Lines))
	for _, l := range n.Lines {
		lines = append(lines, dto.ExitNoteLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return dto.ExitNoteResponse{
		ID:          n.ID,
		Source:      n.Source,
		Destination: n.Destination,
		SellerID:    n.SellerID,
		Status:      n.Status,
		Lines:       lines,
		TotalValue:  n.TotalValue(),
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toReturnResponse(r *entity.Return) dto.ReturnResponse {
	lines := make([]dto.ReturnLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, dto.ReturnLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return dto.ReturnResponse{
		ID:          r.ID,
		SellerID:    r.SellerID,
		Destination: r.Destination,
		Status:      r.Status,
		Lines:       lines,
		TotalValue:  r.TotalValue(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toSellerResponse(s *entity.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:        s.ID,
		Name:      s.Name,
		Debt:      s.Debt,
		PriceTier: s.PriceTier,
	}
}

func toDiscrepancyResponse(d *entity.DiscrepancyReport) dto.DiscrepancyReportResponse {
	movs := make([]dto.MovementContribution, 0, len(d.Movements))
	for _, m := range d.Movements {
		movs = append(movs, dto.MovementContribution{
			MovementID:   m.MovementID,
			Kind:         m.Kind,
			Status:       m.Status,
			Effect:       m.Effect,
			Counterparty: m.Counterparty,
			CreatedAt:    m.CreatedAt,
		})
	}
	return dto.DiscrepancyReportResponse{
		ProductID:   d.ProductID,
		ProductSKU:  d.ProductSKU,
		ProductName: d.ProductName,
		Location:    d.Location,
		Recorded:    d.Recorded,
		Expected:    d.Expected,
		Difference:  d.Difference,
		Movements:   movs,
		AsOf:        d.AsOf,
	}
}

func toDiscrepancyResponses(reports []*entity.DiscrepancyReport) []dto.DiscrepancyReportResponse {
	out := make([]dto.DiscrepancyReportResponse, 0, len(reports))
	for _, d := range reports {
		out = append(out, toDiscrepancyResponse(d))
	}
	return out
}
