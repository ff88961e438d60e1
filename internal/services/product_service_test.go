package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
	"loomhouse/internal/testutil"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		cat := testutil.CreateTestCategory(t, db, nil)

		product, err := svc.CreateProduct(ctx, ProductInput{
			CategoryID:  cat.ID,
			Name:        "Organic Cotton Twill",
			Composition: "100% organic cotton",
			GSM:         240,
			MinOrderQty: 1000,
			PriceFrom:   decimal.RequireFromString("4.456"),
			Currency:    "eur",
			IsActive:    true,
		})
		testutil.AssertNoError(t, err)

		if product.Slug != "organic-cotton-twill" {
			t.Errorf("expected derived slug, got %s", product.Slug)
		}
		if !product.PriceFrom.Equal(decimal.RequireFromString("4.46")) {
			t.Errorf("expected price rounded to 4.46, got %s", product.PriceFrom)
		}
		if product.Currency != "EUR" {
			t.Errorf("expected currency EUR, got %s", product.Currency)
		}
	})

	t.Run("default_currency", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		cat := testutil.CreateTestCategory(t, db, nil)

		product, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Jersey"})
		testutil.AssertNoError(t, err)
		if product.Currency != "USD" {
			t.Errorf("expected USD, got %s", product.Currency)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)

		_, err := svc.CreateProduct(ctx, ProductInput{CategoryID: "018f2a6e-0000-7000-8000-000000000000", Name: "Lost"})
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("negative_price", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		cat := testutil.CreateTestCategory(t, db, nil)

		_, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Cheap", PriceFrom: decimal.NewFromInt(-1)})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("duplicate_slug", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		cat := testutil.CreateTestCategory(t, db, nil)

		_, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Canvas"})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Heavy Canvas", Slug: "canvas"})
		testutil.AssertAppError(t, err, "DUPLICATE_SLUG")
	})

	t.Run("derived_slug_gets_suffix", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewProductService(db)
		cat := testutil.CreateTestCategory(t, db, nil)

		first, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Canvas"})
		testutil.AssertNoError(t, err)
		second, err := svc.CreateProduct(ctx, ProductInput{CategoryID: cat.ID, Name: "Canvas"})
		testutil.AssertNoError(t, err)
		if first.Slug != "canvas" || second.Slug != "canvas-2" {
			t.Errorf("expected canvas and canvas-2, got %s and %s", first.Slug, second.Slug)
		}
	})
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	woven := testutil.CreateTestCategory(t, db, nil)
	knit := testutil.CreateTestCategory(t, db, nil)
	a := testutil.CreateTestProduct(t, db, woven.ID)
	testutil.CreateTestProduct(t, db, knit.ID)
	hidden := testutil.CreateTestProduct(t, db, woven.ID)
	db.Exec("UPDATE products SET is_active = ? WHERE id = ?", false, hidden.ID)
	db.Exec("UPDATE products SET is_featured = ? WHERE id = ?", true, a.ID)

	t.Run("by_category_active_only", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{CategoryIDs: []string{woven.ID}, ActiveOnly: true}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != a.ID {
			t.Errorf("expected only %s, got %d items", a.ID, page.TotalItems)
		}
	})

	t.Run("all_for_admin", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 products, got %d", page.TotalItems)
		}
	})

	t.Run("empty_category_set", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{CategoryIDs: []string{}}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 0 {
			t.Errorf("expected no products, got %d", page.TotalItems)
		}
	})

	t.Run("featured", func(t *testing.T) {
		featured, err := svc.FeaturedProducts(ctx, 5)
		testutil.AssertNoError(t, err)
		if len(featured) != 1 || featured[0].ID != a.ID {
			t.Errorf("expected one featured product, got %d", len(featured))
		}
	})
}

func TestGetProductBySlug(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	cat := testutil.CreateTestCategory(t, db, nil)
	product := testutil.CreateTestProduct(t, db, cat.ID)

	got, err := svc.GetProductBySlug(ctx, product.Slug)
	testutil.AssertNoError(t, err)
	if got.Category == nil || got.Category.ID != cat.ID {
		t.Error("expected category to be preloaded")
	}

	db.Exec("UPDATE products SET is_active = ? WHERE id = ?", false, product.ID)
	_, err = svc.GetProductBySlug(ctx, product.Slug)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
}

func TestPublicProducts_HiddenCategories(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	shown := testutil.CreateTestCategory(t, db, nil)
	retired := testutil.CreateTestCategory(t, db, nil)
	// Active itself, but under an inactive main category.
	orphaned := testutil.CreateTestCategory(t, db, &retired.ID)
	db.Exec("UPDATE categories SET is_active = ? WHERE id = ?", false, retired.ID)

	visible := testutil.CreateTestProduct(t, db, shown.ID)
	inRetired := testutil.CreateTestProduct(t, db, retired.ID)
	inOrphaned := testutil.CreateTestProduct(t, db, orphaned.ID)
	db.Exec("UPDATE products SET is_featured = ?", true)

	t.Run("public_list", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{ActiveOnly: true}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 || page.Data[0].ID != visible.ID {
			t.Errorf("expected only %s, got %d items", visible.ID, page.TotalItems)
		}
	})

	t.Run("public_list_by_category", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{CategoryIDs: []string{orphaned.ID}, ActiveOnly: true}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 0 {
			t.Errorf("expected no products, got %d", page.TotalItems)
		}
	})

	t.Run("detail", func(t *testing.T) {
		_, err := svc.GetProductBySlug(ctx, visible.Slug)
		testutil.AssertNoError(t, err)

		for _, p := range []*models.Product{inRetired, inOrphaned} {
			_, err := svc.GetProductBySlug(ctx, p.Slug)
			testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
		}
	})

	t.Run("featured", func(t *testing.T) {
		featured, err := svc.FeaturedProducts(ctx, 10)
		testutil.AssertNoError(t, err)
		if len(featured) != 1 || featured[0].ID != visible.ID {
			t.Errorf("expected only %s featured, got %d", visible.ID, len(featured))
		}
	})

	t.Run("admin_sees_all", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 3 {
			t.Errorf("expected 3 products, got %d", page.TotalItems)
		}
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	cat := testutil.CreateTestCategory(t, db, nil)
	other := testutil.CreateTestCategory(t, db, nil)
	product := testutil.CreateTestProduct(t, db, cat.ID)

	price := decimal.RequireFromString("5.10")
	featured := true
	updated, err := svc.UpdateProduct(ctx, product.ID, ProductUpdate{
		CategoryID: &other.ID,
		PriceFrom:  &price,
		IsFeatured: &featured,
	})
	testutil.AssertNoError(t, err)

	if updated.CategoryID != other.ID {
		t.Errorf("expected category %s, got %s", other.ID, updated.CategoryID)
	}
	if !updated.PriceFrom.Equal(price) {
		t.Errorf("expected price %s, got %s", price, updated.PriceFrom)
	}
	if !updated.IsFeatured {
		t.Error("expected product to be featured")
	}

	negative := -5
	_, err = svc.UpdateProduct(ctx, product.ID, ProductUpdate{GSM: &negative})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	missing := "018f2a6e-0000-7000-8000-000000000000"
	_, err = svc.UpdateProduct(ctx, product.ID, ProductUpdate{CategoryID: &missing})
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewProductService(db)

	cat := testutil.CreateTestCategory(t, db, nil)
	product := testutil.CreateTestProduct(t, db, cat.ID)

	testutil.AssertNoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err := svc.GetProductByID(ctx, product.ID)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")

	err = svc.DeleteProduct(ctx, product.ID)
	testutil.AssertAppError(t, err, "PRODUCT_NOT_FOUND")
}
