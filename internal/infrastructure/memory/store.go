// Package memory implementa los puertos de persistencia en memoria, con la
// misma semántica transaccional que el adaptador PostgreSQL: el TxRunner
// serializa las transacciones con un mutex y restaura un snapshot ante
// cualquier error, así los casos de uso ven rollback real. Se usa en tests y
// para correr la API sin base de datos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dvintimilla/andina-api/internal/application/inventory"
	"github.com/dvintimilla/andina-api/internal/domain"
	"github.com/dvintimilla/andina-api/internal/domain/entity"
	"github.com/dvintimilla/andina-api/internal/domain/repository"
)

// Store contiene todo el estado compartido.
type Store struct {
	mu sync.Mutex
	d  *data
}

type data struct {
	products  map[string]*entity.Product
	records   map[string]*entity.InventoryRecord // productID + "|" + location
	movements []*entity.Movement                 // orden de creación
	exitNotes map[string]*entity.ExitNote
	returns   map[string]*entity.Return
	sellers   map[string]*entity.Seller
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{d: newData()}
}

func newData() *data {
	return &data{
		products:  make(map[string]*entity.Product),
		records:   make(map[string]*entity.InventoryRecord),
		exitNotes: make(map[string]*entity.ExitNote),
		returns:   make(map[string]*entity.Return),
		sellers:   make(map[string]*entity.Seller),
	}
}

func recordKey(productID, location string) string { return productID + "|" + location }

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.products {
		p := *v
		p.ChildIDs = append([]string(nil), v.ChildIDs...)
		c.products[k] = &p
	}
	for k, v := range d.records {
		r := *v
		c.records[k] = &r
	}
	for _, m := range d.movements {
		mm := *m
		c.movements = append(c.movements, &mm)
	}
	for k, v := range d.exitNotes {
		n := *v
		n.Lines = append([]entity.ExitNoteLine(nil), v.Lines...)
		c.exitNotes[k] = &n
	}
	for k, v := range d.returns {
		r := *v
		r.Lines = append([]entity.ReturnLine(nil), v.Lines...)
		c.returns[k] = &r
	}
	for k, v := range d.sellers {
		s := *v
		c.sellers[k] = &s
	}
	return c
}

// Repos devuelve el juego de repositorios con bloqueo por operación (lado de
// lectura y usos fuera de transacción).
func (s *Store) Repos() inventory.Repos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) inventory.Repos {
	return inventory.Repos{
		Products:  &productRepo{s: s, inTx: inTx},
		Records:   &recordRepo{s: s, inTx: inTx},
		Movements: &movementRepo{s: s, inTx: inTx},
		ExitNotes: &exitNoteRepo{s: s, inTx: inTx},
		Returns:   &returnRepo{s: s, inTx: inTx},
		Sellers:   &sellerRepo{s: s, inTx: inTx},
	}
}

// TxRunner devuelve el runner transaccional del Store.
func (s *Store) TxRunner() inventory.TxRunner { return &txRunner{s: s} }

type txRunner struct{ s *Store }

// Run serializa la transacción con el mutex del Store y restaura el snapshot
// si fn falla: el estado queda sin cambios ante cualquier error.
func (t *txRunner) Run(ctx context.Context, fn func(r inventory.Repos) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	snapshot := t.s.d.clone()
	if err := fn(t.s.repos(true)); err != nil {
		t.s.d = snapshot
		return err
	}
	return nil
}

// lock bloquea el Store salvo que ya estemos dentro de una transacción.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ── Records ──────────────────────────────────────────────────────────────────

type recordRepo struct {
	s    *Store
	inTx bool
}

var _ repository.InventoryRecordRepository = (*recordRepo)(nil)

func (r *recordRepo) Get(productID, location string) (*entity.InventoryRecord, error) {
	defer r.s.lock(r.inTx)()
	if rec, ok := r.s.d.records[recordKey(productID, location)]; ok {
		cp := *rec
		return &cp, nil
	}
	return &entity.InventoryRecord{ProductID: productID, Location: location, Quantity: decimal.Zero}, nil
}

func (r *recordRepo) GetForUpdate(productID, location string) (*entity.InventoryRecord, error) {
	return r.Get(productID, location)
}

func (r *recordRepo) Upsert(record *entity.InventoryRecord) error {
	defer r.s.lock(r.inTx)()
	cp := *record
	r.s.d.records[recordKey(record.ProductID, record.Location)] = &cp
	return nil
}

func (r *recordRepo) List(location string, limit, offset int) ([]*entity.InventoryRecord, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryRecord
	for _, rec := range r.s.d.records {
		if location != "" && rec.Location != location {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProductID != out[j].ProductID {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].Location < out[j].Location
	})
	return paginate(out, limit, offset), nil
}

func (r *recordRepo) ListByProduct(productID string) ([]*entity.InventoryRecord, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.InventoryRecord
	for _, rec := range r.s.d.records {
		if rec.ProductID == productID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

// ── Movements ────────────────────────────────────────────────────────────────

type movementRepo struct {
	s    *Store
	inTx bool
}

var _ repository.MovementRepository = (*movementRepo)(nil)

func (r *movementRepo) Create(movement *entity.Movement) error {
	defer r.s.lock(r.inTx)()
	cp := *movement
	r.s.d.movements = append(r.s.d.movements, &cp)
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	defer r.s.lock(r.inTx)()
	for _, m := range r.s.d.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *movementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Movement
	for i := len(r.s.d.movements) - 1; i >= 0; i-- {
		if r.s.d.movements[i].ProductID == productID {
			cp := *r.s.d.movements[i]
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *movementRepo) ListForReplay(productID, location string) ([]*entity.Movement, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Movement
	for _, m := range r.s.d.movements {
		if productID != "" && m.ProductID != productID {
			continue
		}
		if location != "" && m.Location != location && m.Destination != location {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *movementRepo) SumExitQuantities(productID, location string, statuses []string) (decimal.Decimal, error) {
	defer r.s.lock(r.inTx)()
	sum := decimal.Zero
	for _, m := range r.s.d.movements {
		if m.Kind != entity.MovementKindExitNote || m.ProductID != productID {
			continue
		}
		if location != "" && m.Location != location {
			continue
		}
		for _, s := range statuses {
			if m.Status == s {
				sum = sum.Add(m.Quantity)
				break
			}
		}
	}
	return sum, nil
}

func (r *movementRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	defer r.s.lock(r.inTx)()
	for _, m := range r.s.d.movements {
		if m.ID == id && m.Status == from {
			m.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (r *movementRepo) UpdateStatusByNote(noteID, status string) error {
	defer r.s.lock(r.inTx)()
	for _, m := range r.s.d.movements {
		if m.NoteID == noteID && m.Kind == entity.MovementKindExitNote {
			m.Status = status
		}
	}
	return nil
}

func (r *movementRepo) UpdateStatusByReturn(returnID, status string) error {
	defer r.s.lock(r.inTx)()
	for _, m := range r.s.d.movements {
		if m.ReturnID == returnID && m.Kind == entity.MovementKindReturn {
			m.Status = status
		}
	}
	return nil
}

// ── Exit notes ───────────────────────────────────────────────────────────────

type exitNoteRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ExitNoteRepository = (*exitNoteRepo)(nil)

func (r *exitNoteRepo) Create(note *entity.ExitNote) error {
	defer r.s.lock(r.inTx)()
	cp := *note
	cp.Lines = append([]entity.ExitNoteLine(nil), note.Lines...)
	r.s.d.exitNotes[note.ID] = &cp
	return nil
}

func (r *exitNoteRepo) GetByID(id string) (*entity.ExitNote, error) {
	defer r.s.lock(r.inTx)()
	n, ok := r.s.d.exitNotes[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	cp.Lines = append([]entity.ExitNoteLine(nil), n.Lines...)
	return &cp, nil
}

func (r *exitNoteRepo) List(status string, limit, offset int) ([]*entity.ExitNote, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.ExitNote
	for _, n := range r.s.d.exitNotes {
		if status != "" && n.Status != status {
			continue
		}
		cp := *n
		cp.Lines = append([]entity.ExitNoteLine(nil), n.Lines...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *exitNoteRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	defer r.s.lock(r.inTx)()
	n, ok := r.s.d.exitNotes[id]
	if !ok || n.Status != from {
		return false, nil
	}
	n.Status = to
	return true, nil
}

// ── Returns ──────────────────────────────────────────────────────────────────

type returnRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ReturnRepository = (*returnRepo)(nil)

func (r *returnRepo) Create(ret *entity.Return) error {
	defer r.s.lock(r.inTx)()
	cp := *ret
	cp.Lines = append([]entity.ReturnLine(nil), ret.Lines...)
	r.s.d.returns[ret.ID] = &cp
	return nil
}

func (r *returnRepo) GetByID(id string) (*entity.Return, error) {
	defer r.s.lock(r.inTx)()
	ret, ok := r.s.d.returns[id]
	if !ok {
		return nil, nil
	}
	cp := *ret
	cp.Lines = append([]entity.ReturnLine(nil), ret.Lines...)
	return &cp, nil
}

func (r *returnRepo) List(sellerID, status string, limit, offset int) ([]*entity.Return, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Return
	for _, ret := range r.s.d.returns {
		if sellerID != "" && ret.SellerID != sellerID {
			continue
		}
		if status != "" && ret.Status != status {
			continue
		}
		cp := *ret
		cp.Lines = append([]entity.ReturnLine(nil), ret.Lines...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *returnRepo) UpdateStatusGuarded(id, from, to string) (bool, error) {
	defer r.s.lock(r.inTx)()
	ret, ok := r.s.d.returns[id]
	if !ok || ret.Status != from {
		return false, nil
	}
	ret.Status = to
	return true, nil
}

// ── Sellers ──────────────────────────────────────────────────────────────────

type sellerRepo struct {
	s    *Store
	inTx bool
}

var _ repository.SellerRepository = (*sellerRepo)(nil)

func (r *sellerRepo) Create(seller *entity.Seller) error {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.d.sellers[seller.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *seller
	r.s.d.sellers[seller.ID] = &cp
	return nil
}

func (r *sellerRepo) GetByID(id string) (*entity.Seller, error) {
	defer r.s.lock(r.inTx)()
	s, ok := r.s.d.sellers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *sellerRepo) List(limit, offset int) ([]*entity.Seller, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Seller
	for _, s := range r.s.d.sellers {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *sellerRepo) AdjustDebt(id string, delta decimal.Decimal) (*entity.Seller, error) {
	defer r.s.lock(r.inTx)()
	s, ok := r.s.d.sellers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Debt = s.Debt.Add(delta)
	if s.Debt.IsNegative() {
		s.Debt = decimal.Zero
	}
	cp := *s
	return &cp, nil
}

// ── Products ─────────────────────────────────────────────────────────────────

type productRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	for _, p := range r.s.d.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	cp.ChildIDs = append([]string(nil), product.ChildIDs...)
	r.s.d.products[product.ID] = &cp
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.d.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.ChildIDs = append([]string(nil), p.ChildIDs...)
	return &cp, nil
}

func (r *productRepo) GetBySKU(sku string) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	for _, p := range r.s.d.products {
		if p.SKU == sku {
			cp := *p
			cp.ChildIDs = append([]string(nil), p.ChildIDs...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Update(product *entity.Product) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.d.products[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Name = product.Name
	p.Description = product.Description
	p.SalePrice = product.SalePrice
	p.UnitWeight = product.UnitWeight
	p.UnitVolume = product.UnitVolume
	p.UpdatedAt = product.UpdatedAt
	return nil
}

func (r *productRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.d.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Cost = cost
	return nil
}

func (r *productRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Product
	for _, p := range r.s.d.products {
		cp := *p
		cp.ChildIDs = append([]string(nil), p.ChildIDs...)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return paginate(out, limit, offset), nil
}

func (r *productRepo) SetConsolidation(productID string, consolidated bool, childIDs []string) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.d.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.IsConsolidated = consolidated
	p.ChildIDs = append([]string(nil), childIDs...)
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return nil
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
