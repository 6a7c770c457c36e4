package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock (ENTRY, EXIT) de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) sobre el producto y
// Commit/Rollback. Es el único escritor de la proyección CurrentStock.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	ProductID string
	UserID    string
	Type      string // ENTRY, EXIT
	Quantity  int64
	Reason    string // vacío = MANUAL
}

// RegisterMovement valida la entrada, y dentro de una transacción bloquea la
// fila del producto, verifica stock para salidas, escribe la nueva proyección
// y agrega el asiento al kardex. Devuelve el stock resultante.
//
// Las validaciones de cantidad ocurren antes de tocar la BD; un rechazo no
// deja ningún efecto. No hay reintentos: un error de persistencia se devuelve
// tal cual (la tx ya hizo rollback, no queda estado parcial).
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (int64, error) {
	switch input.Type {
	case entity.MovementTypeENTRY, entity.MovementTypeEXIT:
	default:
		return 0, domain.ErrInvalidInput
	}
	if input.ProductID == "" {
		return 0, domain.ErrInvalidInput
	}
	if input.Quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	reason := input.Reason
	if reason == "" {
		reason = entity.MovementReasonManual
	}

	now := time.Now()
	var newStock int64

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos movimientos concurrentes sobre el
		// mismo producto se serializan aquí.
		product, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		switch input.Type {
		case entity.MovementTypeENTRY:
			newStock = product.CurrentStock + input.Quantity
		case entity.MovementTypeEXIT:
			if input.Quantity > product.CurrentStock {
				return &domain.InsufficientStockError{Available: product.CurrentStock}
			}
			newStock = product.CurrentStock - input.Quantity
		}

		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   product.ID,
			ProductName: product.Name, // snapshot: sobrevive al borrado del producto
			Type:        input.Type,
			Quantity:    input.Quantity,
			Reason:      reason,
			CreatedAt:   now,
			CreatedBy:   input.UserID,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// RegisterInitialStockInTx escribe el asiento INITIAL_STOCK usando el
// repositorio proporcionado (misma transacción del caller). Lo invoca la
// creación de producto para que el producto y su saldo de apertura se vuelvan
// visibles juntos. Solo debe llamarse con quantity > 0.
func (uc *RegisterMovementUseCase) RegisterInitialStockInTx(
	movRepo repository.MovementRepository,
	product *entity.Product,
	quantity int64,
	userID string,
	now time.Time,
) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	mov := &entity.Movement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Type:        entity.MovementTypeENTRY,
		Quantity:    quantity,
		Reason:      entity.MovementReasonInitialStock,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	return movRepo.Create(mov)
}
