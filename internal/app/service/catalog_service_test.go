package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/db"
)

const testMediaBaseURL = "https://media.flora.example"

func setupCatalogTest(t *testing.T) (*gorm.DB, CatalogService) {
	t.Helper()

	gdb, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(gdb) })

	svc := NewCatalogService(
		repository.NewProductRepository(gdb),
		repository.NewCategoryRepository(gdb),
		testMediaBaseURL,
	)
	return gdb, svc
}

func TestResolveDisplayImage(t *testing.T) {
	tests := []struct {
		name   string
		images []model.ProductImage
		want   string
	}{
		{
			name:   "uploaded image resolved against media host",
			images: []model.ProductImage{{ImagePath: "products/rose.jpg"}},
			want:   "https://media.flora.example/products/rose.jpg",
		},
		{
			name:   "external url used verbatim",
			images: []model.ProductImage{{ImageURL: "https://cdn.other.example/rose.jpg"}},
			want:   "https://cdn.other.example/rose.jpg",
		},
		{
			name: "uploaded image wins over external url",
			images: []model.ProductImage{
				{ImageURL: "https://cdn.other.example/rose.jpg"},
				{ImagePath: "products/rose.jpg"},
			},
			want: "https://media.flora.example/products/rose.jpg",
		},
		{
			name:   "no images",
			images: nil,
			want:   "",
		},
		{
			name:   "leading slash in stored path",
			images: []model.ProductImage{{ImagePath: "/products/rose.jpg"}},
			want:   "https://media.flora.example/products/rose.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDisplayImage(testMediaBaseURL, tt.images))
		})
	}
}

func TestListProducts_SetsDisplayImage(t *testing.T) {
	gdb, svc := setupCatalogTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, gdb.Create(&product).Error)
	require.NoError(t, gdb.Create(&model.ProductImage{
		ProductID: product.ID,
		ImagePath: "products/rose.jpg",
	}).Error)

	products, err := svc.ListProducts("", "")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "https://media.flora.example/products/rose.jpg", products[0].DisplayImage)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	gdb, svc := setupCatalogTest(t)

	category := model.Category{Name: "Roses", Slug: "roses"}
	require.NoError(t, gdb.Create(&category).Error)
	require.NoError(t, gdb.Create(&model.Product{
		Name: "Red Rose", Slug: "red-rose", Price: 150, CategoryID: &category.ID,
	}).Error)
	require.NoError(t, gdb.Create(&model.Product{
		Name: "White Tulip", Slug: "white-tulip", Price: 90,
	}).Error)

	products, err := svc.ListProducts("", "roses")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Red Rose", products[0].Name)
}

func TestListProducts_UnknownCategory(t *testing.T) {
	_, svc := setupCatalogTest(t)

	_, err := svc.ListProducts("", "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestGetProductBySlug(t *testing.T) {
	gdb, svc := setupCatalogTest(t)

	product := model.Product{Name: "Red Rose", Slug: "red-rose", Price: 150}
	require.NoError(t, gdb.Create(&product).Error)
	require.NoError(t, gdb.Create(&model.ProductImage{
		ProductID: product.ID,
		ImageURL:  "https://cdn.other.example/rose.jpg",
	}).Error)

	got, err := svc.GetProductBySlug("red-rose")
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, "https://cdn.other.example/rose.jpg", got.DisplayImage)
}

func TestGetProductBySlug_NotFound(t *testing.T) {
	_, svc := setupCatalogTest(t)

	_, err := svc.GetProductBySlug("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearchSuggestions(t *testing.T) {
	gdb, svc := setupCatalogTest(t)

	require.NoError(t, gdb.Create(&model.Product{Name: "Hair Oil", Slug: "hair-oil", Price: 20}).Error)
	require.NoError(t, gdb.Create(&model.Product{Name: "Face Cream", Slug: "face-cream", Price: 30}).Error)

	suggestions, err := svc.SearchSuggestions("oi")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Hair Oil", suggestions[0].Name)
	assert.Equal(t, "hair-oil", suggestions[0].Slug)
}

func TestSearchSuggestions_EmptyQuery(t *testing.T) {
	gdb, svc := setupCatalogTest(t)
	require.NoError(t, gdb.Create(&model.Product{Name: "Hair Oil", Slug: "hair-oil", Price: 20}).Error)

	suggestions, err := svc.SearchSuggestions("")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
