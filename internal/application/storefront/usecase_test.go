package storefront_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/dto"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/application/storefront"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/entity"
	"github.com/MartinMaldo592/Mitiendaonline2026/internal/domain/repository"
)

type fakeProducts struct {
	byID   map[int64]*entity.Product
	list   []entity.Product
	filter repository.CatalogFilter
	err    error
	gets   int
}

func (f *fakeProducts) CountBelowStock(context.Context, int) (int, error) { return 0, nil }
func (f *fakeProducts) ListBelowStock(context.Context, int) ([]entity.Product, error) {
	return nil, nil
}
func (f *fakeProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	f.gets++
	return f.byID[id], f.err
}
func (f *fakeProducts) ListCatalog(_ context.Context, filter repository.CatalogFilter) ([]entity.Product, error) {
	f.filter = filter
	return f.list, f.err
}

func TestGetByRawID_IDInvalidoEsNotFound(t *testing.T) {
	p := &fakeProducts{}
	uc := storefront.NewCatalogUseCase(p)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := uc.GetByRawID(context.Background(), raw)
		assert.ErrorIs(t, err, domain.ErrNotFound, raw)
	}
	assert.Zero(t, p.gets, "no se consulta la DB con un id inválido")
}

func TestGetByRawID_Ficha(t *testing.T) {
	imgs := []string{"", "a.jpg"}
	for i := 0; i < 12; i++ {
		imgs = append(imgs, "x.jpg")
	}
	p := &fakeProducts{byID: map[int64]*entity.Product{
		7: {ID: 7, Name: "Polera Básica Niño", Price: decimal.RequireFromString("49.9"), Stock: 0, Images: imgs, CategoryName: "Ropa"},
	}}

	got, err := storefront.NewCatalogUseCase(p).GetByRawID(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "polera-basica-nino", got.Slug)
	assert.Len(t, got.Images, 10)
	assert.Equal(t, "a.jpg", got.Images[0])
	assert.False(t, got.InStock)
	assert.Equal(t, "Ropa", got.Category)
}

func TestGetByRawID_Inexistente(t *testing.T) {
	_, err := storefront.NewCatalogUseCase(&fakeProducts{}).GetByRawID(context.Background(), "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_NormalizaCategoriaYPagina(t *testing.T) {
	p := &fakeProducts{list: []entity.Product{{ID: 1, Name: "Gorra", ImageURL: "g.jpg", Stock: 2}}}

	resp, err := storefront.NewCatalogUseCase(p).List(context.Background(), dto.CatalogQuery{Category: "Accesorios Niños"})
	require.NoError(t, err)

	assert.Equal(t, "accesorios-ninos", p.filter.CategorySlug)
	assert.Equal(t, 20, p.filter.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, []string{"g.jpg"}, resp.Items[0].Images)
	assert.True(t, resp.Items[0].InStock)
}

func TestList_Error(t *testing.T) {
	_, err := storefront.NewCatalogUseCase(&fakeProducts{err: errors.New("db")}).List(context.Background(), dto.CatalogQuery{})
	assert.Error(t, err)
}
