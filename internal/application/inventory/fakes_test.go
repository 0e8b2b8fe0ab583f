package inventory_test

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un store compartido con semántica transaccional de
// copia + swap. fakeTxRunner clona el store, ejecuta fn contra la copia y
// solo la publica si fn no falla — el equivalente en memoria de
// Begin/Commit/Rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products       map[int64]*entity.Product
	movements      []*entity.Movement
	nextProductID  int64
	nextMovementID int64
	nextLineID     int64
}

func newMemStore() *memStore {
	return &memStore{products: make(map[int64]*entity.Product)}
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:       make(map[int64]*entity.Product, len(s.products)),
		nextProductID:  s.nextProductID,
		nextMovementID: s.nextMovementID,
		nextLineID:     s.nextLineID,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for _, m := range s.movements {
		cm := *m
		cm.Lines = append([]entity.Line(nil), m.Lines...)
		c.movements = append(c.movements, &cm)
	}
	return c
}

// addProduct siembra un producto directamente en el store.
func (s *memStore) addProduct(name, sku string) *entity.Product {
	s.nextProductID++
	p := &entity.Product{ID: s.nextProductID, Name: name, SKU: sku}
	s.products[p.ID] = p
	return p
}

type fakeTxRunner struct {
	s *memStore
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	work := r.s.clone()
	if err := fn(&fakeMovementRepo{s: work}, &fakeProductRepo{s: work}); err != nil {
		return err
	}
	*r.s = *work
	return nil
}

type fakeProductRepo struct {
	s *memStore
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	for _, p := range r.s.products {
		if p.Name == product.Name {
			return fmt.Errorf("product %q already exists: %w", product.Name, domain.ErrDuplicate)
		}
	}
	r.s.nextProductID++
	product.ID = r.s.nextProductID
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.Compare(list[i].Name, list[j].Name) < 0
	})
	return list, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.s.products[product.ID]; !ok {
		return fmt.Errorf("product %d: %w", product.ID, domain.ErrNotFound)
	}
	cp := *product
	r.s.products[cp.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id int64) error {
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if l.ProductID == id {
				return fmt.Errorf("product %d is referenced by movement lines: %w", id, domain.ErrConflict)
			}
		}
	}
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) NamesByID(_ context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			names[id] = p.Name
		}
	}
	return names, nil
}

type fakeMovementRepo struct {
	s *memStore
}

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	r.s.nextMovementID++
	movement.ID = r.s.nextMovementID
	for i := range movement.Lines {
		line := &movement.Lines[i]
		p, ok := r.s.products[line.ProductID]
		if !ok {
			return fmt.Errorf("details[%d]: product %d not found: %w", i, line.ProductID, domain.ErrInvalidInput)
		}
		r.s.nextLineID++
		line.ID = r.s.nextLineID
		line.MovementID = movement.ID
		line.ProductName = p.Name
	}
	cm := *movement
	cm.Lines = append([]entity.Line(nil), movement.Lines...)
	r.s.movements = append(r.s.movements, &cm)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cm := *m
			cm.Lines = append([]entity.Line(nil), m.Lines...)
			return &cm, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	return r.sorted(r.s.movements), nil
}

func (r *fakeMovementRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Movement, error) {
	var matched []*entity.Movement
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if l.ProductID == productID {
				matched = append(matched, m)
				break
			}
		}
	}
	return r.sorted(matched), nil
}

// sorted copia y ordena: timestamp descendente, empates por id descendente.
func (r *fakeMovementRepo) sorted(in []*entity.Movement) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(in))
	for _, m := range in {
		cm := *m
		cm.Lines = append([]entity.Line(nil), m.Lines...)
		out = append(out, &cm)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

type fakeSummaryRepo struct {
	s *memStore
}

var _ repository.SummaryRepository = (*fakeSummaryRepo)(nil)

func (r *fakeSummaryRepo) inOut(productID int64) (in, out int64) {
	for _, m := range r.s.movements {
		for _, l := range m.Lines {
			if l.ProductID != productID {
				continue
			}
			if m.Type == entity.MovementTypeIN {
				in += l.Quantity
			} else {
				out += l.Quantity
			}
		}
	}
	return in, out
}

func (r *fakeSummaryRepo) Summary(_ context.Context, includeUntouched bool) ([]repository.SummaryRow, error) {
	var rows []repository.SummaryRow
	for _, p := range r.s.products {
		in, out := r.inOut(p.ID)
		if !includeUntouched && in == 0 && out == 0 {
			continue
		}
		rows = append(rows, repository.SummaryRow{
			ProductID:    p.ID,
			ProductName:  p.Name,
			SKU:          p.SKU,
			InQty:        in,
			OutQty:       out,
			CurrentStock: in - out,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.Compare(rows[i].ProductName, rows[j].ProductName) < 0
	})
	return rows, nil
}

func (r *fakeSummaryRepo) StockLevels(_ context.Context) ([]repository.StockRow, error) {
	summary, _ := r.Summary(context.Background(), false)
	rows := make([]repository.StockRow, 0, len(summary))
	for _, s := range summary {
		rows = append(rows, repository.StockRow{
			ProductName:       s.ProductName,
			AvailableQuantity: s.CurrentStock,
		})
	}
	return rows, nil
}

func (r *fakeSummaryRepo) CurrentStock(_ context.Context, productID int64) (int64, error) {
	in, out := r.inOut(productID)
	return in - out, nil
}

// capturePublisher acumula los eventos publicados.
type capturePublisher struct {
	events []inventory.MovementRecordedEvent
}

func (p *capturePublisher) PublishMovementRecorded(_ context.Context, event inventory.MovementRecordedEvent) error {
	p.events = append(p.events, event)
	return nil
}
