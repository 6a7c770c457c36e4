package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El stock nunca se
// edita directamente: nace con el movimiento INITIAL_STOCK y después solo lo
// mueve el motor de inventario.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	movement *inventory.RegisterMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	movement *inventory.RegisterMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, movement: movement}
}

// Create crea un producto. Si InitialStock > 0, el producto y su asiento de
// apertura se escriben en la misma transacción: nunca existe un producto con
// stock sin el movimiento que lo justifica.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialStock < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Price:        in.Price,
		CategoryID:   in.CategoryID,
		UnitID:       in.UnitID,
		CurrentStock: in.InitialStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		return uc.movement.RegisterInitialStockInTx(movRepo, product, in.InitialStock, userID, now)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación (más recientes primero).
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	products, err := uc.repo.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	totalPages := (total + page.PageSize - 1) / page.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return &dto.ProductListResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Delete elimina el producto del catálogo. Sus movimientos quedan intactos:
// el kardex conserva la historia con el nombre snapshot y la referencia débil
// pasa a no resolver (la vista de auditoría lo marca como huérfano).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		CategoryID:   p.CategoryID,
		UnitID:       p.UnitID,
		CurrentStock: p.CurrentStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
