package testutil_test

import (
	"testing"

	"loomhouse/internal/errors"
	"loomhouse/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "categories", "products", "employees", "csr_icons", "service_offerings", "contacts", "reviews", "audit_logs"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestSetupTestDB_Isolated(t *testing.T) {
	first := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, first)
	second := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, second)

	testutil.CreateTestUser(t, first)

	var count int64
	second.Table("users").Count(&count)
	if count != 0 {
		t.Errorf("expected a fresh database, found %d users", count)
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have an ID")
	}

	root := testutil.CreateTestCategory(t, db, nil)
	child := testutil.CreateTestCategory(t, db, &root.ID)
	if child.ParentID == nil || *child.ParentID != root.ID {
		t.Errorf("expected child of %s, got %v", root.ID, child.ParentID)
	}

	product := testutil.CreateTestProduct(t, db, child.ID)
	if product.PriceFrom.String() != "3.25" {
		t.Errorf("expected price 3.25, got %s", product.PriceFrom)
	}

	review := testutil.CreateTestReview(t, db, 4, true)
	if !review.IsApproved {
		t.Error("expected approved review")
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCategoryNotFound, "custom message")
	appErr := testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	if appErr.Message != "custom message" || appErr.HTTPStatus() != 404 {
		t.Errorf("unexpected AppError %+v", appErr)
	}
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
