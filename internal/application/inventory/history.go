package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/dates"
)

// MovementHistoryUseCase vista paginada del kardex para auditoría.
// Solo lee: el historial nunca se modifica desde aquí.
type MovementHistoryUseCase struct {
	movRepo repository.MovementRepository
	loc     *time.Location
}

// NewMovementHistoryUseCase construye el caso de uso. loc define el día local
// para los filtros de fecha (misma semántica que el reporte kardex).
func NewMovementHistoryUseCase(movRepo repository.MovementRepository, loc *time.Location) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movRepo: movRepo, loc: loc}
}

// ListMovements lista movimientos ordenados por fecha descendente, con filtro
// opcional por producto y rango de fechas calendario (límites inclusivos).
// Una página fuera de rango devuelve items vacíos sin error; un resultado
// vacío reporta igualmente una página.
func (uc *MovementHistoryUseCase) ListMovements(ctx context.Context, in dto.HistoryRequest) (*dto.MovementHistoryResponse, error) {
	in.DefaultPage()

	filter := repository.MovementFilter{ProductID: in.ProductID}
	if in.From != "" {
		from, err := dates.DayStart(in.From, uc.loc)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := dates.DayEnd(in.To, uc.loc)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	total, err := uc.movRepo.Count(filter)
	if err != nil {
		return nil, err
	}
	views, err := uc.movRepo.List(filter, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementRowDTO, 0, len(views))
	for _, v := range views {
		items = append(items, dto.MovementRowDTO{
			ID:              v.ID,
			ProductID:       v.ProductID,
			ProductName:     v.ProductName,
			ProductResolved: v.ProductResolved,
			Type:            v.Type,
			Quantity:        v.Quantity,
			Reason:          v.Reason,
			CreatedAt:       v.CreatedAt,
			CreatedBy:       v.CreatedBy,
		})
	}

	totalPages := (total + in.PageSize - 1) / in.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return &dto.MovementHistoryResponse{
		Items: items,
		Page: dto.PageResponse{
			Page:       in.Page,
			PageSize:   in.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}
