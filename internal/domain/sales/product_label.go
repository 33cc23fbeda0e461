package sales

import "regexp"

var (
	freeFirePrefixRe = regexp.MustCompile(`(?i)^\s*free\s*fire\s*[-–:|]?\s*`)
	diamondsRe       = regexp.MustCompile(`(?i)^(\d[\d.,]*)\s*diamantes\b`)
)

// ProductLabel etiqueta corta de un producto para gráficas y reportes.
// "Free Fire - 1.060 Diamantes + 106 Bono" → "1.060 Diamantes".
// Si el nombre no contiene "<número> Diamantes" se devuelve sin cambios.
func ProductLabel(name string) string {
	rest := freeFirePrefixRe.ReplaceAllString(name, "")
	if m := diamondsRe.FindStringSubmatch(rest); m != nil {
		return m[1] + " Diamantes"
	}
	return name
}
