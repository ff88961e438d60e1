package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "loomhouse/internal/errors"
	"loomhouse/internal/hierarchy"
	"loomhouse/internal/models"
	"loomhouse/internal/pagination"
	"loomhouse/internal/services"
)

const (
	rootID  = "0190f4c2-1111-7000-8000-000000000001"
	subID   = "0190f4c2-1111-7000-8000-000000000002"
	childID = "0190f4c2-1111-7000-8000-000000000003"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn       func(in services.CategoryInput) (*models.Category, error)
	createNestedCategoryFn func(in services.NestedCategoryInput) (*models.Category, error)
	listCategoriesFn       func(filter services.CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[services.CategoryView], error)
	getCategoryByIDFn      func(id string) (*services.CategoryView, error)
	getChildrenFn          func(id string) ([]models.Category, error)
	updateCategoryFn       func(id string, in services.CategoryUpdate) (*models.Category, error)
	deleteCategoryFn       func(id string) error
	navbarTreeFn           func() ([]*hierarchy.TreeNode, string, error)
	breadcrumbFn           func(id string) ([]hierarchy.Category, error)
	rootCategoriesFn       func() ([]hierarchy.Category, error)
	publicSubtreeFn        func(id string) ([]string, error)
	integrityFn            func() (*services.IntegrityReport, error)
}

func (m *mockCategoryService) CreateCategory(_ context.Context, in services.CategoryInput) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(in)
	}
	return &models.Category{Base: models.Base{ID: rootID}, Name: in.Name, ParentID: in.ParentID, IsActive: in.IsActive}, nil
}

func (m *mockCategoryService) CreateNestedCategory(_ context.Context, in services.NestedCategoryInput) (*models.Category, error) {
	if m.createNestedCategoryFn != nil {
		return m.createNestedCategoryFn(in)
	}
	parent := in.SubcategoryID
	return &models.Category{Base: models.Base{ID: childID}, Name: in.Name, ParentID: &parent, IsActive: true}, nil
}

func (m *mockCategoryService) ListCategories(_ context.Context, filter services.CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[services.CategoryView], error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(filter, page)
	}
	resp := pagination.NewPageResponse([]services.CategoryView{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockCategoryService) GetCategoryByID(_ context.Context, id string) (*services.CategoryView, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(id)
	}
	return &services.CategoryView{Category: models.Category{Base: models.Base{ID: id}}, Level: hierarchy.LevelMain}, nil
}

func (m *mockCategoryService) GetChildren(_ context.Context, id string) ([]models.Category, error) {
	if m.getChildrenFn != nil {
		return m.getChildrenFn(id)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(_ context.Context, id string, in services.CategoryUpdate) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(id, in)
	}
	return &models.Category{Base: models.Base{ID: id}}, nil
}

func (m *mockCategoryService) DeleteCategory(_ context.Context, id string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(id)
	}
	return nil
}

func (m *mockCategoryService) NavbarTree(_ context.Context) ([]*hierarchy.TreeNode, string, error) {
	if m.navbarTreeFn != nil {
		return m.navbarTreeFn()
	}
	return []*hierarchy.TreeNode{}, `"0"`, nil
}

func (m *mockCategoryService) Breadcrumb(_ context.Context, id string) ([]hierarchy.Category, error) {
	if m.breadcrumbFn != nil {
		return m.breadcrumbFn(id)
	}
	return []hierarchy.Category{}, nil
}

func (m *mockCategoryService) RootCategories(_ context.Context) ([]hierarchy.Category, error) {
	if m.rootCategoriesFn != nil {
		return m.rootCategoriesFn()
	}
	return []hierarchy.Category{}, nil
}

func (m *mockCategoryService) PublicSubtree(_ context.Context, id string) ([]string, error) {
	if m.publicSubtreeFn != nil {
		return m.publicSubtreeFn(id)
	}
	return []string{id}, nil
}

func (m *mockCategoryService) Integrity(_ context.Context) (*services.IntegrityReport, error) {
	if m.integrityFn != nil {
		return m.integrityFn()
	}
	return &services.IntegrityReport{Dangling: []hierarchy.Category{}}, nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectSession(testUserID))
	auth.POST("/categories", handler.CreateCategory)
	auth.POST("/categories/nested", handler.CreateNestedCategory)
	auth.GET("/categories", handler.ListCategories)
	auth.GET("/categories/integrity", handler.Integrity)
	auth.GET("/categories/:id", handler.GetCategoryByID)
	auth.GET("/categories/:id/children", handler.GetChildren)
	auth.PUT("/categories/:id", handler.UpdateCategory)
	auth.DELETE("/categories/:id", handler.DeleteCategory)
	r.GET("/public/categories/navbar", handler.Navbar)
	r.GET("/public/categories/:id/breadcrumb", handler.Breadcrumb)
	return r
}

// --- tests ---

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 and defaults to active", func(t *testing.T) {
		var got services.CategoryInput
		svc := &mockCategoryService{
			createCategoryFn: func(in services.CategoryInput) (*models.Category, error) {
				got = in
				return &models.Category{Base: models.Base{ID: rootID}, Name: in.Name, IsActive: in.IsActive}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(svc, audit))

		rec := doRequest(r, "POST", "/categories", `{"name":"Woven Fabrics"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.IsActive {
			t.Error("expected is_active to default to true")
		}
		if got.ParentID != nil {
			t.Errorf("expected no parent, got %v", *got.ParentID)
		}
		category := parseJSON(t, rec)["category"].(map[string]interface{})
		if category["name"] != "Woven Fabrics" {
			t.Errorf("expected Woven Fabrics, got %v", category["name"])
		}
		if entry := audit.last(t); entry.Action != services.AuditActionCreate || entry.ResourceID != rootID {
			t.Errorf("unexpected audit entry %+v", entry)
		}
	})

	t.Run("accepts empty parent_id as top level", func(t *testing.T) {
		called := false
		svc := &mockCategoryService{
			createCategoryFn: func(in services.CategoryInput) (*models.Category, error) {
				called = true
				return &models.Category{Base: models.Base{ID: rootID}, Name: in.Name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Denim","parent_id":""}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !called {
			t.Error("expected the service to be called")
		}
	})

	t.Run("returns 400 on malformed parent_id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Denim","parent_id":"42"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("passes parent_id through", func(t *testing.T) {
		var got services.CategoryInput
		svc := &mockCategoryService{
			createCategoryFn: func(in services.CategoryInput) (*models.Category, error) {
				got = in
				return &models.Category{Base: models.Base{ID: subID}, Name: in.Name, ParentID: in.ParentID}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Cotton","parent_id":"`+rootID+`","is_active":false}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.ParentID == nil || *got.ParentID != rootID {
			t.Errorf("expected parent %s, got %v", rootID, got.ParentID)
		}
		if got.IsActive {
			t.Error("expected explicit is_active=false to be kept")
		}
	})

	t.Run("returns 400 on missing name", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"description":"no name"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on malformed parent_id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Cotton","parent_id":"42"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on invalid slug", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Cotton","slug":"Not A Slug"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate sibling", func(t *testing.T) {
		svc := &mockCategoryService{
			createCategoryFn: func(_ services.CategoryInput) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories", `{"name":"Cotton"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY")
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := gin.New()
		r.POST("/categories", handler.CreateCategory)

		rec := doRequest(r, "POST", "/categories", `{"name":"Cotton"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_CreateNestedCategory(t *testing.T) {
	t.Run("returns 201 under the chosen subcategory", func(t *testing.T) {
		var got services.NestedCategoryInput
		svc := &mockCategoryService{
			createNestedCategoryFn: func(in services.NestedCategoryInput) (*models.Category, error) {
				got = in
				parent := in.SubcategoryID
				return &models.Category{Base: models.Base{ID: childID}, Name: in.Name, ParentID: &parent}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories/nested",
			`{"parent_id":"`+rootID+`","subcategory_id":"`+subID+`","name":"Poplin"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.ParentID != rootID || got.SubcategoryID != subID || got.Name != "Poplin" {
			t.Errorf("unexpected input %+v", got)
		}
		category := parseJSON(t, rec)["category"].(map[string]interface{})
		if category["parent_id"] != subID {
			t.Errorf("expected parent_id %s, got %v", subID, category["parent_id"])
		}
	})

	t.Run("returns 400 when subcategory is missing", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories/nested", `{"parent_id":"`+rootID+`","name":"Poplin"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on a selection outside the main category", func(t *testing.T) {
		svc := &mockCategoryService{
			createNestedCategoryFn: func(_ services.NestedCategoryInput) (*models.Category, error) {
				return nil, apperrors.ErrInvalidSelection
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/categories/nested",
			`{"parent_id":"`+rootID+`","subcategory_id":"`+childID+`","name":"Poplin"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_SELECTION")
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("returns paginated views", func(t *testing.T) {
		svc := &mockCategoryService{
			listCategoriesFn: func(_ services.CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[services.CategoryView], error) {
				views := []services.CategoryView{{
					Category: models.Category{Base: models.Base{ID: subID}, Name: "Cotton"},
					Level:    hierarchy.LevelSub,
					Path:     []hierarchy.Category{{ID: rootID, Name: "Woven"}, {ID: subID, Name: "Cotton"}},
				}}
				resp := pagination.NewPageResponse(views, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?page=1&page_size=10", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 item, got %d", len(data))
		}
		item := data[0].(map[string]interface{})
		if item["level"] != "sub" {
			t.Errorf("expected level sub, got %v", item["level"])
		}
		if path := item["path"].([]interface{}); len(path) != 2 {
			t.Errorf("expected path of 2, got %d", len(path))
		}
		if result["page_size"] != float64(10) {
			t.Errorf("expected page_size 10, got %v", result["page_size"])
		}
	})

	t.Run("passes filters through", func(t *testing.T) {
		var got services.CategoryFilter
		svc := &mockCategoryService{
			listCategoriesFn: func(filter services.CategoryFilter, _ pagination.PageRequest) (*pagination.PageResponse[services.CategoryView], error) {
				got = filter
				resp := pagination.NewPageResponse([]services.CategoryView{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?parent_id="+rootID+"&level=nested&search=pop", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.ParentID == nil || *got.ParentID != rootID {
			t.Errorf("expected parent filter %s, got %v", rootID, got.ParentID)
		}
		if got.Level == nil || *got.Level != hierarchy.LevelNested {
			t.Errorf("expected nested level filter, got %v", got.Level)
		}
		if got.Search != "pop" {
			t.Errorf("expected search pop, got %q", got.Search)
		}
	})

	t.Run("empty parent_id asks for main categories", func(t *testing.T) {
		var got services.CategoryFilter
		svc := &mockCategoryService{
			listCategoriesFn: func(filter services.CategoryFilter, _ pagination.PageRequest) (*pagination.PageResponse[services.CategoryView], error) {
				got = filter
				resp := pagination.NewPageResponse([]services.CategoryView{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?parent_id=", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.ParentID == nil || *got.ParentID != "" {
			t.Errorf("expected empty parent filter, got %v", got.ParentID)
		}
	})

	t.Run("returns 400 on unknown level", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?level=top", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed parent_id", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?parent_id=abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories?page_size=500", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetCategoryByID(t *testing.T) {
	t.Run("returns 200 with level", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/"+rootID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		category := parseJSON(t, rec)["category"].(map[string]interface{})
		if category["id"] != rootID || category["level"] != "main" {
			t.Errorf("unexpected category %v", category)
		}
	})

	t.Run("returns 400 on invalid ID", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/abc", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		svc := &mockCategoryService{
			getCategoryByIDFn: func(_ string) (*services.CategoryView, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/categories/"+rootID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_GetChildren(t *testing.T) {
	svc := &mockCategoryService{
		getChildrenFn: func(id string) ([]models.Category, error) {
			if id != rootID {
				t.Errorf("expected %s, got %s", rootID, id)
			}
			parent := rootID
			return []models.Category{{Base: models.Base{ID: subID}, Name: "Cotton", ParentID: &parent}}, nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/categories/"+rootID+"/children", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if children := parseJSON(t, rec)["categories"].([]interface{}); len(children) != 1 {
		t.Errorf("expected 1 child, got %d", len(children))
	}
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		var got services.CategoryUpdate
		svc := &mockCategoryService{
			updateCategoryFn: func(id string, in services.CategoryUpdate) (*models.Category, error) {
				got = in
				return &models.Category{Base: models.Base{ID: id}, Name: *in.Name}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/"+subID, `{"name":"Organic Cotton","parent_id":""}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.ParentID == nil || *got.ParentID != "" {
			t.Errorf("expected empty parent_id to reach the service, got %v", got.ParentID)
		}
		if got.SortOrder != nil {
			t.Error("expected untouched sort_order to stay nil")
		}
	})

	t.Run("accepts empty slug and image_url", func(t *testing.T) {
		var got services.CategoryUpdate
		svc := &mockCategoryService{
			updateCategoryFn: func(id string, in services.CategoryUpdate) (*models.Category, error) {
				got = in
				return &models.Category{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/"+subID, `{"slug":"","image_url":""}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Slug == nil || got.ImageURL == nil {
			t.Error("expected empty slug and image_url to reach the service")
		}
		if got.ParentID != nil {
			t.Error("expected absent parent_id to stay nil")
		}
	})

	t.Run("returns 400 on malformed parent_id", func(t *testing.T) {
		rec := doRequest(setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})),
			"PUT", "/categories/"+subID, `{"parent_id":"not-a-uuid"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on cycle", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(_ string, _ services.CategoryUpdate) (*models.Category, error) {
				return nil, apperrors.ErrCategoryCycle
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/"+rootID, `{"parent_id":"`+childID+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_CYCLE")
	})

	t.Run("returns 400 on self parent", func(t *testing.T) {
		svc := &mockCategoryService{
			updateCategoryFn: func(_ string, _ services.CategoryUpdate) (*models.Category, error) {
				return nil, apperrors.ErrSelfParentCategory
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/categories/"+rootID, `{"parent_id":"`+rootID+`"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SELF_PARENT_CATEGORY")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}, audit))

		rec := doRequest(r, "DELETE", "/categories/"+rootID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if entry := audit.last(t); entry.Action != services.AuditActionDelete {
			t.Errorf("expected delete audit, got %+v", entry)
		}
	})

	t.Run("returns 409 when category has children", func(t *testing.T) {
		svc := &mockCategoryService{
			deleteCategoryFn: func(_ string) error { return apperrors.ErrCategoryHasChildren },
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/categories/"+rootID, "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_HAS_CHILDREN")
	})
}

func TestCategoryHandler_Integrity(t *testing.T) {
	missing := "0190f4c2-9999-7000-8000-000000000009"
	svc := &mockCategoryService{
		integrityFn: func() (*services.IntegrityReport, error) {
			return &services.IntegrityReport{
				Total:    3,
				Dangling: []hierarchy.Category{{ID: childID, Name: "Orphan", ParentID: &missing}},
			}, nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

	rec := doRequest(r, "GET", "/categories/integrity", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total"] != float64(3) {
		t.Errorf("expected total 3, got %v", result["total"])
	}
	if dangling := result["dangling"].([]interface{}); len(dangling) != 1 {
		t.Errorf("expected 1 dangling category, got %d", len(dangling))
	}
}

func TestCategoryHandler_Navbar(t *testing.T) {
	const etag = `"5f2a9c"`
	svc := &mockCategoryService{
		navbarTreeFn: func() ([]*hierarchy.TreeNode, string, error) {
			return []*hierarchy.TreeNode{{
				Category: hierarchy.Category{ID: rootID, Name: "Woven"},
				Level:    hierarchy.LevelMain,
				Children: []*hierarchy.TreeNode{{
					Category: hierarchy.Category{ID: subID, Name: "Cotton", ParentID: strPtr(rootID)},
					Level:    hierarchy.LevelSub,
					Children: []*hierarchy.TreeNode{},
				}},
			}}, etag, nil
		},
	}
	r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

	t.Run("returns the tree with an ETag", func(t *testing.T) {
		rec := doRequest(r, "GET", "/public/categories/navbar", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("ETag") != etag {
			t.Errorf("expected ETag %s, got %q", etag, rec.Header().Get("ETag"))
		}
		roots := parseJSON(t, rec)["categories"].([]interface{})
		if len(roots) != 1 {
			t.Fatalf("expected 1 root, got %d", len(roots))
		}
		root := roots[0].(map[string]interface{})
		if root["level"] != "main" {
			t.Errorf("expected main level, got %v", root["level"])
		}
		if children := root["children"].([]interface{}); len(children) != 1 {
			t.Errorf("expected 1 child, got %d", len(children))
		}
	})

	for _, header := range []string{etag, `W/` + etag, `"other", ` + etag, "*"} {
		t.Run("returns 304 for If-None-Match "+header, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/public/categories/navbar", nil)
			req.Header.Set("If-None-Match", header)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusNotModified {
				t.Fatalf("expected 304, got %d", rec.Code)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("expected empty body, got %q", rec.Body.String())
			}
		})
	}

	t.Run("returns 200 for a stale ETag", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/public/categories/navbar", nil)
		req.Header.Set("If-None-Match", `"stale"`)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_Breadcrumb(t *testing.T) {
	t.Run("returns the trail root first", func(t *testing.T) {
		svc := &mockCategoryService{
			breadcrumbFn: func(id string) ([]hierarchy.Category, error) {
				return []hierarchy.Category{
					{ID: rootID, Name: "Woven"},
					{ID: subID, Name: "Cotton", ParentID: strPtr(rootID)},
					{ID: id, Name: "Poplin", ParentID: strPtr(subID)},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/public/categories/"+childID+"/breadcrumb", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		trail := parseJSON(t, rec)["breadcrumb"].([]interface{})
		if len(trail) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(trail))
		}
		if first := trail[0].(map[string]interface{}); first["id"] != rootID {
			t.Errorf("expected root first, got %v", first["id"])
		}
	})

	t.Run("returns 404 for an unknown category", func(t *testing.T) {
		svc := &mockCategoryService{
			breadcrumbFn: func(_ string) ([]hierarchy.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/public/categories/"+childID+"/breadcrumb", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func strPtr(s string) *string {
	return &s
}
