// Package format reúne los formateos de presentación compartidos por la API:
// moneda en soles, número de pedido y slugs para URLs del catálogo.
package format

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const currencySymbol = "S/"

var (
	storeLocale = language.MustParse("es-PE")
	nonSlugRun  = regexp.MustCompile(`[^a-z0-9]+`)
)

// Currency formatea un monto en soles con dos decimales según la convención es-PE.
func Currency(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	p := message.NewPrinter(storeLocale)
	return p.Sprintf("%s %v", currencySymbol,
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// CurrencyString formatea un monto recibido como texto; lo que no sea numérico se muestra como 0.
func CurrencyString(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Currency(decimal.Zero)
	}
	return Currency(d)
}

// OrderNumber devuelve el id del pedido con relleno a 6 dígitos, ej. 42 -> "000042".
func OrderNumber(id int64) string {
	return fmt.Sprintf("%06d", id)
}

// Slugify normaliza un texto para usarlo en URLs: sin tildes, minúsculas y guiones.
func Slugify(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	clean, _, err := transform.String(t, input)
	if err != nil {
		clean = input
	}
	clean = strings.TrimSpace(strings.ToLower(clean))
	clean = nonSlugRun.ReplaceAllString(clean, "-")
	return strings.Trim(clean, "-")
}
