package services

import (
	"context"
	"testing"

	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
	"loomhouse/internal/testutil"
)

func TestEmployeeService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewEmployeeService(db)

	emp, err := svc.CreateEmployee(ctx, EmployeeInput{Name: "Rina", Title: "Head of Sourcing", Email: "RINA@loomhouse.test", IsActive: true})
	testutil.AssertNoError(t, err)
	if emp.Email != "rina@loomhouse.test" {
		t.Errorf("expected lowercased email, got %s", emp.Email)
	}

	_, err = svc.CreateEmployee(ctx, EmployeeInput{Name: ""})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	updated, err := svc.UpdateEmployee(ctx, emp.ID, EmployeeInput{Name: "Rina S.", Title: "Director", IsActive: false})
	testutil.AssertNoError(t, err)
	if updated.Name != "Rina S." || updated.IsActive {
		t.Errorf("unexpected update result: %+v", updated)
	}

	testutil.CreateTestEmployee(t, db)

	public, err := svc.ListEmployees(ctx, true, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if public.TotalItems != 1 {
		t.Errorf("expected 1 active employee, got %d", public.TotalItems)
	}
	all, err := svc.ListEmployees(ctx, false, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if all.TotalItems != 2 {
		t.Errorf("expected 2 employees, got %d", all.TotalItems)
	}

	testutil.AssertNoError(t, svc.DeleteEmployee(ctx, emp.ID))
	_, err = svc.GetEmployeeByID(ctx, emp.ID)
	testutil.AssertAppError(t, err, "EMPLOYEE_NOT_FOUND")
}

func TestCSRIconService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCSRIconService(db)

	second, err := svc.CreateCSRIcon(ctx, BadgeInput{Title: "Fair Wages", SortOrder: 2, IsActive: true})
	testutil.AssertNoError(t, err)
	first, err := svc.CreateCSRIcon(ctx, BadgeInput{Title: "GOTS Certified", SortOrder: 1, IsActive: true})
	testutil.AssertNoError(t, err)
	_, err = svc.CreateCSRIcon(ctx, BadgeInput{Title: "Draft", IsActive: false})
	testutil.AssertNoError(t, err)

	icons, err := svc.ListCSRIcons(ctx, true)
	testutil.AssertNoError(t, err)
	if len(icons) != 2 || icons[0].ID != first.ID || icons[1].ID != second.ID {
		t.Errorf("expected active icons in sort order, got %+v", icons)
	}

	updated, err := svc.UpdateCSRIcon(ctx, second.ID, BadgeInput{Title: "Living Wages", Description: "Audited yearly", IsActive: true})
	testutil.AssertNoError(t, err)
	if updated.Title != "Living Wages" || updated.Description != "Audited yearly" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	_, err = svc.UpdateCSRIcon(ctx, second.ID, BadgeInput{Title: " "})
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	testutil.AssertNoError(t, svc.DeleteCSRIcon(ctx, second.ID))
	_, err = svc.GetCSRIconByID(ctx, second.ID)
	testutil.AssertAppError(t, err, "CSR_ICON_NOT_FOUND")
}

func TestServiceOfferingService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewServiceOfferingService(db)

	offering, err := svc.CreateServiceOffering(ctx, BadgeInput{Title: "Mill Audits", Description: "On-site quality checks", IsActive: true})
	testutil.AssertNoError(t, err)
	if offering.Summary != "On-site quality checks" {
		t.Errorf("expected summary to be stored, got %q", offering.Summary)
	}

	updated, err := svc.UpdateServiceOffering(ctx, offering.ID, BadgeInput{Title: "Mill Audits", Description: "Quarterly", IsActive: false})
	testutil.AssertNoError(t, err)
	if updated.Summary != "Quarterly" || updated.IsActive {
		t.Errorf("unexpected update result: %+v", updated)
	}

	active, err := svc.ListServiceOfferings(ctx, true)
	testutil.AssertNoError(t, err)
	if len(active) != 0 {
		t.Errorf("expected no active offerings, got %d", len(active))
	}

	testutil.AssertNoError(t, svc.DeleteServiceOffering(ctx, offering.ID))
	err = svc.DeleteServiceOffering(ctx, offering.ID)
	testutil.AssertAppError(t, err, "SERVICE_NOT_FOUND")
}

func TestContactService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewContactService(db)

	t.Run("submit", func(t *testing.T) {
		contact, err := svc.SubmitContact(ctx, ContactInput{
			Name:      "Buyer",
			Email:     "Buyer@Brand.test",
			Message:   "Need 5,000m of poplin",
			IPAddress: "203.0.113.7",
		})
		testutil.AssertNoError(t, err)
		if contact.Status != models.ContactStatusNew {
			t.Errorf("expected status new, got %s", contact.Status)
		}
		if contact.Email != "buyer@brand.test" {
			t.Errorf("expected lowercased email, got %s", contact.Email)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := svc.SubmitContact(ctx, ContactInput{Name: "x", Email: "not-an-email", Message: "hi"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = svc.SubmitContact(ctx, ContactInput{Name: "x", Email: "x@y.test", Message: ""})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("status_workflow", func(t *testing.T) {
		contact := testutil.CreateTestContact(t, db)

		updated, err := svc.UpdateContactStatus(ctx, contact.ID, models.ContactStatusRead)
		testutil.AssertNoError(t, err)
		if updated.Status != models.ContactStatusRead {
			t.Errorf("expected status read, got %s", updated.Status)
		}

		_, err = svc.UpdateContactStatus(ctx, contact.ID, "spam")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		status := models.ContactStatusRead
		page, err := svc.ListContacts(ctx, &status, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 1 {
			t.Errorf("expected 1 read contact, got %d", page.TotalItems)
		}

		testutil.AssertNoError(t, svc.DeleteContact(ctx, contact.ID))
		_, err = svc.GetContactByID(ctx, contact.ID)
		testutil.AssertAppError(t, err, "CONTACT_NOT_FOUND")
	})
}

func TestReviewService(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReviewService(db)

	t.Run("submit_is_pending", func(t *testing.T) {
		review, err := svc.SubmitReview(ctx, ReviewInput{Author: "Lena", Rating: 5, Body: "Fast sampling"})
		testutil.AssertNoError(t, err)
		if review.IsApproved {
			t.Error("expected new review to await approval")
		}
	})

	t.Run("rating_bounds", func(t *testing.T) {
		_, err := svc.SubmitReview(ctx, ReviewInput{Author: "Lena", Rating: 6, Body: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
		_, err = svc.SubmitReview(ctx, ReviewInput{Author: "Lena", Rating: 0, Body: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("approve_and_summary", func(t *testing.T) {
		pending := testutil.CreateTestReview(t, db, 4, false)
		testutil.CreateTestReview(t, db, 5, true)

		_, err := svc.SetApproved(ctx, pending.ID, true)
		testutil.AssertNoError(t, err)

		summary, err := svc.Summary(ctx)
		testutil.AssertNoError(t, err)
		if summary.Count != 2 {
			t.Errorf("expected 2 approved reviews, got %d", summary.Count)
		}
		if summary.AverageRating != 4.5 {
			t.Errorf("expected average 4.5, got %v", summary.AverageRating)
		}

		approved := true
		page, err := svc.ListReviews(ctx, &approved, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if page.TotalItems != 2 {
			t.Errorf("expected 2 approved reviews listed, got %d", page.TotalItems)
		}
	})

	t.Run("delete", func(t *testing.T) {
		review := testutil.CreateTestReview(t, db, 3, false)
		testutil.AssertNoError(t, svc.DeleteReview(ctx, review.ID))
		_, err := svc.SetApproved(ctx, review.ID, true)
		testutil.AssertAppError(t, err, "REVIEW_NOT_FOUND")
	})
}

func TestReviewSummary_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewReviewService(db)

	summary, err := svc.Summary(context.Background())
	testutil.AssertNoError(t, err)
	if summary.Count != 0 || summary.AverageRating != 0 {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestHomeService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	main := testutil.CreateTestCategory(t, db, nil)
	testutil.CreateTestCategory(t, db, &main.ID)
	product := testutil.CreateTestProduct(t, db, main.ID)
	db.Exec("UPDATE products SET is_featured = ? WHERE id = ?", true, product.ID)
	testutil.CreateTestCSRIcon(t, db)
	testutil.CreateTestReview(t, db, 5, true)
	testutil.CreateTestReview(t, db, 1, false)

	svc := NewHomeService(NewCategoryService(db), NewProductService(db), NewCSRIconService(db), NewReviewService(db))
	page, err := svc.Home(context.Background())
	testutil.AssertNoError(t, err)

	if len(page.Categories) != 1 || page.Categories[0].ID != main.ID {
		t.Errorf("expected only main categories, got %+v", page.Categories)
	}
	if len(page.FeaturedProducts) != 1 {
		t.Errorf("expected 1 featured product, got %d", len(page.FeaturedProducts))
	}
	if len(page.CSRIcons) != 1 {
		t.Errorf("expected 1 csr icon, got %d", len(page.CSRIcons))
	}
	if len(page.Reviews) != 1 || page.ReviewSummary.Count != 1 {
		t.Errorf("expected only the approved review, got %d (summary %d)", len(page.Reviews), page.ReviewSummary.Count)
	}
}
