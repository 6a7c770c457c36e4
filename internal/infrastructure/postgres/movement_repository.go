package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o
// tx). La tabla movements es append-only: este repo no expone UPDATE ni
// DELETE y ninguna operación del sistema los ejecuta.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un asiento del kardex.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, product_name, type, quantity, reason, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := nullable(movement.CreatedBy)
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.ProductName,
		movement.Type, movement.Quantity, movement.Reason,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// movementWhere arma el WHERE compartido entre List y Count.
func movementWhere(filter repository.MovementFilter) (string, []any) {
	where := " WHERE 1=1"
	var args []any
	pos := 1
	if filter.ProductID != "" {
		where += fmt.Sprintf(" AND m.product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND m.created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND m.created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	return where, args
}

// List lista movimientos ordenados por fecha descendente. El LEFT JOIN con
// products calcula si la referencia débil aún resuelve: huérfanos salen con
// product_resolved = false y se muestran con el nombre snapshot.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.MovementView, error) {
	where, args := movementWhere(filter)
	query := `
		SELECT m.id, m.product_id, m.product_name, m.type, m.quantity, m.reason, m.created_at, m.created_by,
		       (p.id IS NOT NULL) AS product_resolved
		FROM movements m
		LEFT JOIN products p ON p.id = m.product_id` + where
	query += fmt.Sprintf(" ORDER BY m.created_at DESC, m.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementView
	for rows.Next() {
		var v entity.MovementView
		var createdBy *string
		if err := rows.Scan(&v.ID, &v.ProductID, &v.ProductName, &v.Type, &v.Quantity,
			&v.Reason, &v.CreatedAt, &createdBy, &v.ProductResolved); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			v.CreatedBy = *createdBy
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Count cuenta movimientos bajo el mismo filtro que List.
func (r *MovementRepo) Count(filter repository.MovementFilter) (int, error) {
	where, args := movementWhere(filter)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM movements m`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// ListUpTo devuelve todos los movimientos con fecha <= to, ascendente.
// Scan completo sin cota inferior: solo lo usa el motor de conciliación.
func (r *MovementRepo) ListUpTo(to time.Time) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, product_name, type, quantity, reason, created_at, created_by
		FROM movements WHERE created_at <= $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, to)
	if err != nil {
		return nil, fmt.Errorf("list movements up to: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ProductName, &m.Type, &m.Quantity,
			&m.Reason, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
