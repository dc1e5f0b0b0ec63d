package inventory

import "time"

// dateOnly normaliza un instante a fecha (medianoche UTC). Todas las
// comparaciones de vencimiento del motor trabajan sobre fechas normalizadas.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween días completos desde from hasta to (negativo si to es anterior).
func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)) / (24 * time.Hour))
}

// parseDate interpreta una fecha 2006-01-02; cadena vacía devuelve zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
