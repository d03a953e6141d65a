// seed_catalog genera un script SQL para cargar productos en la tabla productos
// a partir de un CSV exportado de la hoja de inventario.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Formato: nombre;precio;stock;imagen_url (con o sin cabecera), UTF-8 o ISO-8859-1.
// Escribe: internal/infrastructure/postgres/seeds/catalog.sql
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productRow struct {
	name     string
	price    decimal.Decimal
	stock    int
	imageURL string
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	rows, err := parseCatalog(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene productos")
		os.Exit(1)
	}

	outDir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	outPath := filepath.Join(outDir, "catalog.sql")
	if err := os.WriteFile(outPath, []byte(renderSQL(rows)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(rows))
}

// decodeInput devuelve un lector UTF-8; si los bytes no son UTF-8 válido se leen como ISO-8859-1.
func decodeInput(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func parseCatalog(raw []byte) ([]productRow, error) {
	r := csv.NewReader(decodeInput(raw))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var out []productRow
	line := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "nombre") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: se esperaban al menos 3 columnas", line)
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			continue
		}
		// Las hojas en español suelen usar coma decimal.
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[1]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio inválido %q", line, rec[1])
		}
		stock, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock inválido %q", line, rec[2])
		}
		row := productRow{name: name, price: price.Round(2), stock: stock}
		if len(rec) > 3 {
			row.imageURL = strings.TrimSpace(rec[3])
		}
		out = append(out, row)
	}
	return out, nil
}

func renderSQL(rows []productRow) string {
	var b strings.Builder
	b.WriteString("-- Catálogo inicial de productos\n")
	b.WriteString("-- Generado por cmd/seed_catalog\n\n")
	b.WriteString("INSERT INTO productos (nombre, precio, stock, imagen_url) VALUES\n")
	for i, p := range rows {
		img := "NULL"
		if p.imageURL != "" {
			img = "'" + escapeSQL(p.imageURL) + "'"
		}
		fmt.Fprintf(&b, "  ('%s', %s, %d, %s)", escapeSQL(p.name), p.price.StringFixed(2), p.stock, img)
		if i < len(rows)-1 {
			b.WriteString(",\n")
		} else {
			b.WriteString(";\n")
		}
	}
	return b.String()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
