// Package similarity puntúa y ordena productos parecidos a uno de referencia.
package similarity

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// DefaultLimit cantidad de sugerencias por producto.
const DefaultLimit = 5

// Pesos del puntaje.
const (
	weightCategory = 50
	weightPrice    = 30
	weightFlags    = 15
	weightName     = 5
)

// priceBand tolerancia de precio (±30% del precio de referencia), expresada en décimas.
const priceBand = 3

var folder = cases.Fold()

// normalizeCategory compara categorías sin importar mayúsculas ni tildes ("Niño" == "nino").
func normalizeCategory(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return folder.String(out)
}

// Score puntaje de p respecto de ref (0..100).
func Score(ref, p *entity.Product) int {
	score := 0
	rc, pc := normalizeCategory(ref.Category), normalizeCategory(p.Category)
	if rc != "" && rc == pc {
		score += weightCategory
	}
	diff := ref.Price - p.Price
	if diff < 0 {
		diff = -diff
	}
	if diff*10 <= ref.Price*priceBand {
		score += weightPrice
	}
	if (ref.IsNew && p.IsNew) || (ref.OnSale && p.OnSale) {
		score += weightFlags
	}
	wd := wordCount(ref.Name) - wordCount(p.Name)
	if wd < 0 {
		wd = -wd
	}
	if wd <= 2 {
		score += weightName
	}
	return score
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// Scored producto con su puntaje.
type Scored struct {
	Product *entity.Product
	Score   int
}

// Rank devuelve hasta limit productos de all ordenados por puntaje descendente, sin incluir ref.
// A igual puntaje se conserva el orden de entrada.
func Rank(ref *entity.Product, all []*entity.Product, limit int) []Scored {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := make([]Scored, 0, len(all))
	for _, p := range all {
		if p == nil || p.ID == ref.ID {
			continue
		}
		out = append(out, Scored{Product: p, Score: Score(ref, p)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
