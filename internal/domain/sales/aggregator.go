// Package sales agrupa registros de venta en buckets para gráficas y reportes.
// Reducción pura: no consulta repositorios ni depende del orden de entrada.
package sales

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pines-admin-api/internal/domain"
	"github.com/jhoicas/pines-admin-api/internal/domain/entity"
)

// Mode modo de agrupación.
type Mode string

// Modos soportados.
const (
	ModeDayOfWeek   Mode = "day-of-week"
	ModeWeekOfMonth Mode = "week-of-month"
	ModeMonthOfYear Mode = "month-of-year"
	ModeCustomDay   Mode = "custom-day"
	ModeDateRange   Mode = "date-range"
	ModeByProduct   Mode = "by-product"
)

// MaxRangeDays tope de días para ModeDateRange.
const MaxRangeDays = 366

var dayNames = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

var monthNames = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ParseMode valida el modo recibido por query string.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeDayOfWeek, ModeWeekOfMonth, ModeMonthOfYear, ModeCustomDay, ModeDateRange, ModeByProduct:
		return m, nil
	}
	return "", fmt.Errorf("%w: modo de reporte desconocido %q", domain.ErrInvalidInput, s)
}

// Query parámetros de agregación.
// Ref fija la semana, el mes, el año o el día según el modo; su Location define los cortes de día.
// From y To solo aplican a ModeDateRange (fechas inclusivas).
type Query struct {
	Mode Mode
	Ref  time.Time
	From time.Time
	To   time.Time
}

// Bucket fila agregada: Count ventas, Units pines vendidos, Total suma de TotalPrice.
type Bucket struct {
	Label string
	Count int
	Units int
	Total decimal.Decimal
}

func (b *Bucket) add(s *entity.Sale) {
	b.Count++
	b.Units += s.Quantity
	b.Total = b.Total.Add(s.TotalPrice)
}

// Aggregate reduce sales según q.Mode. El orden de salida lo fija el modo.
func Aggregate(list []entity.Sale, q Query) ([]Bucket, error) {
	loc := q.Ref.Location()
	switch q.Mode {
	case ModeDayOfWeek:
		return byDayOfWeek(list, q.Ref), nil
	case ModeWeekOfMonth:
		return byWeekOfMonth(list, q.Ref), nil
	case ModeMonthOfYear:
		return byMonthOfYear(list, q.Ref), nil
	case ModeCustomDay:
		return byHour(list, q.Ref), nil
	case ModeDateRange:
		return byDateRange(list, startOfDay(q.From.In(loc)), startOfDay(q.To.In(loc)))
	case ModeByProduct:
		return byProduct(list), nil
	}
	return nil, fmt.Errorf("%w: modo de reporte desconocido %q", domain.ErrInvalidInput, q.Mode)
}

func byDayOfWeek(list []entity.Sale, ref time.Time) []Bucket {
	day := startOfDay(ref)
	start := day.AddDate(0, 0, -weekdayIndex(day))
	end := start.AddDate(0, 0, 7)

	out := make([]Bucket, 7)
	for i := range out {
		out[i] = Bucket{Label: dayNames[i], Total: decimal.Zero}
	}
	for i := range list {
		t := list[i].CreatedAt.In(ref.Location())
		if t.Before(start) || !t.Before(end) {
			continue
		}
		out[weekdayIndex(t)].add(&list[i])
	}
	return out
}

// weekSpans parte el mes en semanas lunes-domingo; la primera y la última pueden ser cortas.
func weekSpans(year int, month time.Month, loc *time.Location) [][2]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	var spans [][2]int
	from := 1
	to := from + 6 - weekdayIndex(first)
	for from <= lastDay {
		if to > lastDay {
			to = lastDay
		}
		spans = append(spans, [2]int{from, to})
		from = to + 1
		to = from + 6
	}
	return spans
}

func byWeekOfMonth(list []entity.Sale, ref time.Time) []Bucket {
	loc := ref.Location()
	spans := weekSpans(ref.Year(), ref.Month(), loc)

	out := make([]Bucket, len(spans))
	for i, sp := range spans {
		out[i] = Bucket{Label: fmt.Sprintf("%02d-%02d", sp[0], sp[1]), Total: decimal.Zero}
	}
	for i := range list {
		t := list[i].CreatedAt.In(loc)
		if t.Year() != ref.Year() || t.Month() != ref.Month() {
			continue
		}
		for j, sp := range spans {
			if t.Day() >= sp[0] && t.Day() <= sp[1] {
				out[j].add(&list[i])
				break
			}
		}
	}
	return out
}

func byMonthOfYear(list []entity.Sale, ref time.Time) []Bucket {
	out := make([]Bucket, 12)
	for i := range out {
		out[i] = Bucket{Label: monthNames[i], Total: decimal.Zero}
	}
	for i := range list {
		t := list[i].CreatedAt.In(ref.Location())
		if t.Year() != ref.Year() {
			continue
		}
		out[t.Month()-1].add(&list[i])
	}
	return out
}

func byHour(list []entity.Sale, ref time.Time) []Bucket {
	day := startOfDay(ref)
	next := day.AddDate(0, 0, 1)

	out := make([]Bucket, 24)
	for h := range out {
		out[h] = Bucket{Label: fmt.Sprintf("%02d:00", h), Total: decimal.Zero}
	}
	for i := range list {
		t := list[i].CreatedAt.In(ref.Location())
		if t.Before(day) || !t.Before(next) {
			continue
		}
		out[t.Hour()].add(&list[i])
	}
	return out
}

func byDateRange(list []entity.Sale, from, to time.Time) ([]Bucket, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: la fecha final es anterior a la inicial", domain.ErrInvalidInput)
	}
	var out []Bucket
	index := make(map[string]int)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if len(out) == MaxRangeDays {
			return nil, fmt.Errorf("%w: el rango supera %d días", domain.ErrInvalidInput, MaxRangeDays)
		}
		key := d.Format("2006-01-02")
		index[key] = len(out)
		out = append(out, Bucket{Label: d.Format("02/01"), Total: decimal.Zero})
	}
	for i := range list {
		key := list[i].CreatedAt.In(from.Location()).Format("2006-01-02")
		if j, ok := index[key]; ok {
			out[j].add(&list[i])
		}
	}
	return out, nil
}

func byProduct(list []entity.Sale) []Bucket {
	index := make(map[string]int)
	var out []Bucket
	for i := range list {
		name := list[i].ProductName
		if name == "" {
			name = list[i].Product
		}
		label := ProductLabel(name)
		j, ok := index[label]
		if !ok {
			j = len(out)
			index[label] = j
			out = append(out, Bucket{Label: label, Total: decimal.Zero})
		}
		out[j].add(&list[i])
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Units != out[b].Units {
			return out[a].Units > out[b].Units
		}
		return out[a].Label < out[b].Label
	})
	if out == nil {
		out = []Bucket{}
	}
	return out
}

// weekdayIndex lunes=0 … domingo=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthName nombre del mes en español (1-12).
func MonthName(m time.Month) string {
	return monthNames[m-1]
}
