package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_UTF8ConCabecera(t *testing.T) {
	raw := []byte("nombre;precio;stock;imagen_url\nPolera niño;29,90;12;https://cdn/p.jpg\nShort;45;0;\n")

	rows, err := parseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Polera niño", rows[0].name)
	assert.Equal(t, "29.90", rows[0].price.StringFixed(2))
	assert.Equal(t, 12, rows[0].stock)
	assert.Equal(t, "https://cdn/p.jpg", rows[0].imageURL)
	assert.Empty(t, rows[1].imageURL)
}

func TestParseCatalog_Latin1(t *testing.T) {
	// "Niño" en ISO-8859-1: ñ = 0xF1
	raw := []byte("Ni\xf1o;10;3\n")

	rows, err := parseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Niño", rows[0].name)
}

func TestParseCatalog_PrecioInvalido(t *testing.T) {
	_, err := parseCatalog([]byte("Polera;abc;3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 1")
}

func TestRenderSQL(t *testing.T) {
	rows, err := parseCatalog([]byte("D'Blama;5;1;\nGorro;12.5;4;https://cdn/g.jpg\n"))
	require.NoError(t, err)

	sql := renderSQL(rows)
	assert.Contains(t, sql, "('D''Blama', 5.00, 1, NULL),\n")
	assert.Contains(t, sql, "('Gorro', 12.50, 4, 'https://cdn/g.jpg');\n")
}
