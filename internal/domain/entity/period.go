package entity

import (
	"fmt"
	"time"
)

// PeriodKey identificador de mes calendario en formato YYYY-MM.
// Todas las consultas de consolidación se acotan por un PeriodKey.
type PeriodKey string

const periodLayout = "2006-01"

// ParsePeriodKey valida un string YYYY-MM.
func ParsePeriodKey(s string) (PeriodKey, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", fmt.Errorf("período inválido %q (esperado YYYY-MM): %w", s, err)
	}
	return PeriodKey(t.Format(periodLayout)), nil
}

// PeriodOf devuelve el PeriodKey del mes calendario de t.
func PeriodOf(t time.Time) PeriodKey {
	return PeriodKey(t.Format(periodLayout))
}

// String implementa fmt.Stringer.
func (p PeriodKey) String() string { return string(p) }

// Bounds devuelve el primer y el último día del mes (ambos a las 00:00 en loc).
// Las columnas de fecha se comparan con >= inicio y <= fin.
func (p PeriodKey) Bounds(loc *time.Location) (start, end time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(periodLayout, string(p), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("período inválido %q: %w", string(p), err)
	}
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// Contains informa si la fecha cae dentro del mes calendario.
func (p PeriodKey) Contains(t time.Time) bool {
	return PeriodOf(t) == p
}
