package inventory

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/dates"
)

// KardexReportUseCase motor de conciliación: reconstruye saldos de apertura y
// cierre por producto sobre un rango de fechas, reproduciendo el kardex
// completo hasta el fin del período. No hay saldos materializados: cada
// reporte reproduce toda la historia (aceptado como trade-off de simplicidad).
type KardexReportUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	loc         *time.Location
}

// NewKardexReportUseCase construye el caso de uso.
func NewKardexReportUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	loc *time.Location,
) *KardexReportUseCase {
	return &KardexReportUseCase{movRepo: movRepo, productRepo: productRepo, loc: loc}
}

// acumulador por producto durante la reproducción.
type kardexAccum struct {
	productID string
	name      string
	deleted   bool
	opening   int64
	entries   int64
	exits     int64
}

// GenerateReport genera el reporte de conciliación para [fromDate, toDate]
// (fechas calendario, límites de día local inclusive).
//
// Siembra un acumulador por producto del catálogo actual (productos sin
// movimientos aparecen con todo en cero), luego reproduce todos los
// movimientos con fecha <= fin del período: los anteriores al inicio aportan
// al saldo de apertura con signo; los del período suman en entradas o salidas
// por separado (nunca se netean). Movimientos cuyo producto ya no existe en
// el catálogo se agrupan bajo una clave sintética por nombre histórico y se
// marcan como eliminados. El resultado se ordena por nombre (collation es).
func (uc *KardexReportUseCase) GenerateReport(ctx context.Context, fromDate, toDate string) ([]dto.KardexRowDTO, error) {
	periodStart, err := dates.DayStart(fromDate, uc.loc)
	if err != nil {
		return nil, err
	}
	periodEnd, err := dates.DayEnd(toDate, uc.loc)
	if err != nil {
		return nil, err
	}

	products, err := uc.productRepo.ListAll()
	if err != nil {
		return nil, err
	}
	accums := make(map[string]*kardexAccum, len(products))
	for _, p := range products {
		accums[p.ID] = &kardexAccum{productID: p.ID, name: p.Name}
	}

	movements, err := uc.movRepo.ListUpTo(periodEnd)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		acc, ok := accums[m.ProductID]
		if !ok {
			// Referencia débil rota: el producto fue eliminado del catálogo.
			// Se agrupa por nombre histórico, creado en el primer encuentro.
			key := "deleted:" + m.ProductName
			acc, ok = accums[key]
			if !ok {
				acc = &kardexAccum{name: m.ProductName, deleted: true}
				accums[key] = acc
			}
		}
		if m.CreatedAt.Before(periodStart) {
			acc.opening += m.Signed()
			continue
		}
		// periodStart <= CreatedAt <= periodEnd (ListUpTo garantiza la cota superior)
		if m.Signed() > 0 {
			acc.entries += m.Quantity
		} else {
			acc.exits += m.Quantity
		}
	}

	rows := make([]dto.KardexRowDTO, 0, len(accums))
	for _, acc := range accums {
		rows = append(rows, dto.KardexRowDTO{
			ProductID:    acc.productID,
			ProductName:  acc.name,
			Deleted:      acc.deleted,
			OpeningStock: acc.opening,
			Entries:      acc.entries,
			Exits:        acc.exits,
			ClosingStock: acc.opening + acc.entries - acc.exits,
		})
	}

	// Orden por nombre con collation en español (tildes y ñ bien ubicadas).
	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		return col.CompareString(rows[i].ProductName, rows[j].ProductName) < 0
	})
	return rows, nil
}
