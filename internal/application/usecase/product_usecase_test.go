package usecase_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Fakes mínimos: solo lo que ProductUseCase toca.

type memProductRepo struct {
	products map[string]*entity.Product
	order    []string
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*entity.Product)}
}

func (r *memProductRepo) Create(p *entity.Product) error {
	// name es UNIQUE en el esquema
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.products[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	all, _ := r.ListAll()
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memProductRepo) Count() (int, error) {
	return len(r.products), nil
}

func (r *memProductRepo) ListAll() ([]*entity.Product, error) {
	var list []*entity.Product
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *memProductRepo) UpdateStock(id string, stock int64) error {
	if p, ok := r.products[id]; ok {
		p.CurrentStock = stock
	}
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type memMovementRepo struct {
	movements []*entity.Movement
}

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.movements = append(r.movements, &cp)
	return nil
}

func (r *memMovementRepo) List(repository.MovementFilter, int, int) ([]*entity.MovementView, error) {
	return nil, nil
}
func (r *memMovementRepo) Count(repository.MovementFilter) (int, error) { return 0, nil }
func (r *memMovementRepo) ListUpTo(time.Time) ([]*entity.Movement, error) {
	return r.movements, nil
}

type memTxRunner struct {
	movs     *memMovementRepo
	products *memProductRepo
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movs, r.products)
}

func newProductUC() (*usecase.ProductUseCase, *memProductRepo, *memMovementRepo) {
	products := newMemProductRepo()
	movs := &memMovementRepo{}
	tx := &memTxRunner{movs: movs, products: products}
	movementUC := inventory.NewRegisterMovementUseCase(tx)
	return usecase.NewProductUseCase(products, tx, movementUC), products, movs
}

func TestCreate_ConStockInicial(t *testing.T) {
	uc, products, movs := newProductUC()

	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name:         "Inca Kola 1L",
		Price:        decimal.NewFromFloat(4.50),
		InitialStock: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), out.CurrentStock)

	// Exactamente un movimiento INITIAL_STOCK de 20, mismo instante visible
	require.Len(t, movs.movements, 1)
	mov := movs.movements[0]
	assert.Equal(t, entity.MovementReasonInitialStock, mov.Reason)
	assert.Equal(t, entity.MovementTypeENTRY, mov.Type)
	assert.Equal(t, int64(20), mov.Quantity)
	assert.Equal(t, out.ID, mov.ProductID)
	assert.Equal(t, "Inca Kola 1L", mov.ProductName)
	assert.Equal(t, "user-1", mov.CreatedBy)

	p, _ := products.GetByID(out.ID)
	assert.Equal(t, int64(20), p.CurrentStock)
}

func TestCreate_SinStockInicialNoGeneraMovimiento(t *testing.T) {
	uc, _, movs := newProductUC()

	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Galletas Soda", Price: decimal.NewFromFloat(1.20),
	})
	require.NoError(t, err)
	assert.Zero(t, out.CurrentStock)
	assert.Empty(t, movs.movements)
}

func TestCreate_StockInicialNegativo(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Chocolate", InitialStock: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestCreate_NombreDuplicado(t *testing.T) {
	uc, _, movs := newProductUC()

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Arroz Extra", InitialStock: 10,
	})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Arroz Extra", InitialStock: 3,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	// Solo el asiento del primer producto
	assert.Len(t, movs.movements, 1)
}

func TestList_MetadataDePaginacion(t *testing.T) {
	uc, _, _ := newProductUC()
	for _, name := range []string{"Arroz", "Azúcar", "Fideos", "Lentejas", "Avena"} {
		_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{Name: name})
		require.NoError(t, err)
	}

	out, err := uc.List(context.Background(), dto.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 5, out.Page.Total)
	assert.Equal(t, 3, out.Page.TotalPages)

	// Catálogo vacío: una página igualmente
	empty, _, _ := newProductUC()
	out, err = empty.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Zero(t, out.Page.Total)
	assert.Equal(t, 1, out.Page.TotalPages)
}

func TestCreate_NombreRequerido(t *testing.T) {
	uc, _, _ := newProductUC()

	_, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_NoTocaElKardex(t *testing.T) {
	uc, products, movs := newProductUC()
	out, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Quinua", InitialStock: 5,
	})
	require.NoError(t, err)
	require.Len(t, movs.movements, 1)

	require.NoError(t, uc.Delete(context.Background(), out.ID))

	// El producto se fue del catálogo; su historia sigue ahí
	p, _ := products.GetByID(out.ID)
	assert.Nil(t, p)
	assert.Len(t, movs.movements, 1)
	assert.Equal(t, "Quinua", movs.movements[0].ProductName)
}

func TestDelete_ProductoInexistente(t *testing.T) {
	uc, _, _ := newProductUC()
	err := uc.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetByID_NoEncontrado(t *testing.T) {
	uc, _, _ := newProductUC()
	_, err := uc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
