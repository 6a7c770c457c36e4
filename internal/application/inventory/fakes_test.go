package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Fakes en memoria para los puertos de persistencia. El fakeTxRunner toma un
// snapshot antes de ejecutar el callback y lo restaura si falla, imitando el
// rollback de una transacción real.

type fakeProductRepo struct {
	products map[string]*entity.Product
	order    []string // ids en orden de creación
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll()
	// más recientes primero
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeProductRepo) Count() (int, error) {
	return len(r.products), nil
}

func (r *fakeProductRepo) ListAll() ([]*entity.Product, error) {
	list := make([]*entity.Product, 0, len(r.order))
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) UpdateStock(id string, stock int64) error {
	if p, ok := r.products[id]; ok {
		p.CurrentStock = stock
	}
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.Movement
	products  *fakeProductRepo // para resolver la referencia débil en List
	createErr error            // simula fallo de persistencia en Create
}

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) matches(m *entity.Movement, f repository.MovementFilter) bool {
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && m.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

func (r *fakeMovementRepo) List(f repository.MovementFilter, limit, offset int) ([]*entity.MovementView, error) {
	var filtered []*entity.Movement
	for _, m := range r.movements {
		if r.matches(m, f) {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	views := make([]*entity.MovementView, 0, end-offset)
	for _, m := range filtered[offset:end] {
		_, resolved := r.products.products[m.ProductID]
		views = append(views, &entity.MovementView{Movement: *m, ProductResolved: resolved})
	}
	return views, nil
}

func (r *fakeMovementRepo) Count(f repository.MovementFilter) (int, error) {
	total := 0
	for _, m := range r.movements {
		if r.matches(m, f) {
			total++
		}
	}
	return total, nil
}

func (r *fakeMovementRepo) ListUpTo(to time.Time) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.movements {
		if !m.CreatedAt.After(to) {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	// Snapshot para emular rollback.
	movsBefore := make([]*entity.Movement, len(r.movRepo.movements))
	copy(movsBefore, r.movRepo.movements)
	productsBefore := make(map[string]*entity.Product, len(r.productRepo.products))
	for id, p := range r.productRepo.products {
		cp := *p
		productsBefore[id] = &cp
	}
	orderBefore := make([]string, len(r.productRepo.order))
	copy(orderBefore, r.productRepo.order)

	if err := fn(r.movRepo, r.productRepo); err != nil {
		r.movRepo.movements = movsBefore
		r.productRepo.products = productsBefore
		r.productRepo.order = orderBefore
		return err
	}
	return nil
}

// sumSigned suma con signo los movimientos de un producto (el invariante de
// la proyección).
func sumSigned(movs []*entity.Movement, productID string) int64 {
	var total int64
	for _, m := range movs {
		if m.ProductID == productID {
			total += m.Signed()
		}
	}
	return total
}
