package sales

import (
	"time"

	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// Window intervalo [Start, End) que cubre q. Para ModeByProduct sin From/To devuelve
// tiempos cero: sin recorte.
func Window(q Query) (start, end time.Time) {
	loc := q.Ref.Location()
	day := startOfDay(q.Ref)
	switch q.Mode {
	case ModeDayOfWeek:
		start = day.AddDate(0, 0, -weekdayIndex(day))
		return start, start.AddDate(0, 0, 7)
	case ModeWeekOfMonth:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	case ModeMonthOfYear:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	case ModeCustomDay:
		return day, day.AddDate(0, 0, 1)
	case ModeDateRange, ModeByProduct:
		if q.From.IsZero() || q.To.IsZero() {
			return time.Time{}, time.Time{}
		}
		start = startOfDay(q.From.In(loc))
		return start, startOfDay(q.To.In(loc)).AddDate(0, 0, 1)
	}
	return time.Time{}, time.Time{}
}

// Filter ventas cuyo CreatedAt cae en la ventana de q, en el orden de entrada.
func Filter(list []entity.Sale, q Query) []entity.Sale {
	start, end := Window(q)
	out := make([]entity.Sale, 0, len(list))
	for i := range list {
		if !start.IsZero() {
			t := list[i].CreatedAt
			if t.Before(start) || !t.Before(end) {
				continue
			}
		}
		out = append(out, list[i])
	}
	return out
}
