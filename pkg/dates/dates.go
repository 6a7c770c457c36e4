// Package dates centraliza la conversión de fechas calendario a instantes
// absolutos. La vista de historial y el motor de conciliación deben usar
// exactamente los mismos límites de día; comparar strings de fecha contra
// timestamps almacenados como instantes produce errores de un día entre
// zonas horarias.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layout formato esperado para fechas calendario en la API.
const Layout = "2006-01-02"

// ErrInvalidDate indica una fecha calendario que no cumple el Layout.
var ErrInvalidDate = errors.New("fecha inválida")

// DayStart convierte una fecha calendario ("2006-01-02") al instante de inicio
// del día (00:00:00.000) en la zona horaria dada.
func DayStart(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// DayEnd convierte una fecha calendario al instante de fin del día
// (23:59:59.999) en la zona horaria dada. Límite inclusivo.
func DayEnd(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	// Inicio del día siguiente menos 1ms: correcto también en días con
	// cambio de horario (23 o 25 horas).
	next := time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, loc)
	return next.Add(-time.Millisecond), nil
}
