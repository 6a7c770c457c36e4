package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// ProductRepository puerto de persistencia para el catálogo de productos.
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// Count cuenta los productos del catálogo (para la metadata de paginación).
	Count() (int, error)
	// ListAll devuelve el snapshot completo del catálogo (id, nombre, stock).
	// Lo usa el motor de conciliación para sembrar acumuladores.
	ListAll() ([]*entity.Product, error)
	// UpdateStock escribe la proyección de stock. Solo el motor de inventario
	// debe llamarlo, bajo el bloqueo de fila de GetForUpdate.
	UpdateStock(id string, stock int64) error
	// Delete elimina el producto del catálogo. Nunca toca sus movimientos.
	Delete(id string) error
}
