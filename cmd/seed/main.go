package main

import (
	"fmt"
	"log"

	"github.com/florashop/flora-backend/config"
	"github.com/florashop/flora-backend/internal/app/model"
	"github.com/florashop/flora-backend/internal/db"
	"github.com/florashop/flora-backend/pkg/util"
)

// Seeds the admin account and a small starter catalog. Safe to run
// more than once: existing slugs are skipped.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := db.SeedAdminUser(&cfg.Admin); err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}

	categories := map[string]*model.Category{}
	for _, name := range []string{"Roses", "Bouquets", "Indoor Plants"} {
		category, err := upsertCategory(name)
		if err != nil {
			log.Fatal("Failed to seed category:", err)
		}
		categories[name] = category
	}

	products := []struct {
		name     string
		category string
		price    float64
		stock    int
		hotSale  bool
		imageURL string
	}{
		{"Red Rose", "Roses", 150, 40, true, "https://images.flora.example/red-rose.jpg"},
		{"White Rose", "Roses", 140, 25, false, "https://images.flora.example/white-rose.jpg"},
		{"Spring Bouquet", "Bouquets", 320, 12, true, "https://images.flora.example/spring-bouquet.jpg"},
		{"Peace Lily", "Indoor Plants", 210, 18, false, "https://images.flora.example/peace-lily.jpg"},
	}

	seeded := 0
	for _, p := range products {
		created, err := upsertProduct(p.name, p.price, p.stock, p.hotSale, p.imageURL, categories[p.category])
		if err != nil {
			log.Fatal("Failed to seed product:", err)
		}
		if created {
			seeded++
		}
	}

	fmt.Printf("Seed complete: %d categories, %d new products\n", len(categories), seeded)
}

func upsertCategory(name string) (*model.Category, error) {
	gdb := db.GetDB()
	slug := util.Slugify(name)

	var category model.Category
	err := gdb.Where("slug = ?", slug).First(&category).Error
	if err == nil {
		return &category, nil
	}

	category = model.Category{Name: name, Slug: slug}
	if err := gdb.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func upsertProduct(name string, price float64, stock int, hotSale bool, imageURL string, category *model.Category) (bool, error) {
	gdb := db.GetDB()
	slug := util.Slugify(name)

	var existing model.Product
	if err := gdb.Where("slug = ?", slug).First(&existing).Error; err == nil {
		return false, nil
	}

	product := model.Product{
		Name:       name,
		Slug:       slug,
		Price:      price,
		Stock:      stock,
		HotSale:    hotSale,
		CategoryID: &category.ID,
	}
	if err := gdb.Create(&product).Error; err != nil {
		return false, err
	}

	if imageURL != "" {
		image := model.ProductImage{ProductID: product.ID, ImageURL: imageURL}
		if err := gdb.Create(&image).Error; err != nil {
			return false, err
		}
	}
	return true, nil
}
