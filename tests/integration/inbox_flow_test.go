package integration

import (
	"net/http"
	"testing"
)

func TestInboxFlow_ContactLifecycle(t *testing.T) {
	app := setupApp(t)
	token := app.adminToken(t)

	body := `{"name":"Mira Hale","email":"mira@buyer.test","company":"Hale Apparel","message":"Looking for 5000m of cotton poplin."}`
	rec := app.request(http.MethodPost, "/api/v1/public/contacts", body, "")
	expectStatus(t, rec, http.StatusCreated)

	rec = app.request(http.MethodPost, "/api/v1/public/contacts", `{"name":"Nobody","email":"not-an-email","message":"hi"}`, "")
	expectStatus(t, rec, http.StatusBadRequest)

	rec = app.request(http.MethodGet, "/api/v1/contacts?status=new", "", token)
	expectStatus(t, rec, http.StatusOK)
	list := parseJSON(t, rec)
	if list["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 new contact, got %v", list["total_items"])
	}
	id := list["data"].([]interface{})[0].(map[string]interface{})["id"].(string)

	rec = app.request(http.MethodPatch, "/api/v1/contacts/"+id+"/status", `{"status":"read"}`, token)
	expectStatus(t, rec, http.StatusOK)
	if status := parseJSON(t, rec)["contact"].(map[string]interface{})["status"]; status != "read" {
		t.Errorf("expected status read, got %v", status)
	}

	rec = app.request(http.MethodGet, "/api/v1/contacts?status=new", "", token)
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["total_items"].(float64); got != 0 {
		t.Errorf("expected no new contacts, got %v", got)
	}

	rec = app.request(http.MethodDelete, "/api/v1/contacts/"+id, "", token)
	expectStatus(t, rec, http.StatusOK)
	rec = app.request(http.MethodGet, "/api/v1/contacts/"+id, "", token)
	expectStatus(t, rec, http.StatusNotFound)
}

func TestInboxFlow_ReviewModeration(t *testing.T) {
	app := setupApp(t)
	token := app.adminToken(t)

	rec := app.request(http.MethodPost, "/api/v1/public/reviews", `{"author":"Jon Ede","company":"Ede Knits","rating":5,"body":"Reliable lead times."}`, "")
	expectStatus(t, rec, http.StatusCreated)
	rec = app.request(http.MethodPost, "/api/v1/public/reviews", `{"author":"Lee","rating":3,"body":"Good samples."}`, "")
	expectStatus(t, rec, http.StatusCreated)
	rec = app.request(http.MethodPost, "/api/v1/public/reviews", `{"author":"Max","rating":6,"body":"Too good."}`, "")
	expectStatus(t, rec, http.StatusBadRequest)

	// Nothing is public until approved.
	rec = app.request(http.MethodGet, "/api/v1/public/reviews", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["total_items"].(float64); got != 0 {
		t.Fatalf("expected no public reviews, got %v", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/reviews?approved=false", "", token)
	expectStatus(t, rec, http.StatusOK)
	pending := parseJSON(t, rec)["data"].([]interface{})
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending reviews, got %d", len(pending))
	}

	for _, raw := range pending {
		id := raw.(map[string]interface{})["id"].(string)
		rec = app.request(http.MethodPatch, "/api/v1/reviews/"+id+"/approve", `{"approved":true}`, token)
		expectStatus(t, rec, http.StatusOK)
	}

	rec = app.request(http.MethodGet, "/api/v1/public/reviews", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["total_items"].(float64); got != 2 {
		t.Errorf("expected 2 public reviews, got %v", got)
	}

	rec = app.request(http.MethodGet, "/api/v1/public/home", "", "")
	expectStatus(t, rec, http.StatusOK)
	summary := parseJSON(t, rec)["review_summary"].(map[string]interface{})
	if summary["count"].(float64) != 2 || summary["average_rating"].(float64) != 4 {
		t.Errorf("expected 2 reviews averaging 4, got %v", summary)
	}
}

func TestInboxFlow_ContentPublishing(t *testing.T) {
	app := setupApp(t)
	token := app.adminToken(t)

	rec := app.request(http.MethodPost, "/api/v1/services", `{"title":"Fabric Sourcing","description":"Mill-direct sourcing"}`, token)
	expectStatus(t, rec, http.StatusCreated)
	rec = app.request(http.MethodPost, "/api/v1/csr-icons", `{"title":"Zero Discharge","is_active":false}`, token)
	expectStatus(t, rec, http.StatusCreated)
	rec = app.request(http.MethodPost, "/api/v1/employees", `{"name":"Ana Ruiz","title":"Head of Sourcing"}`, token)
	expectStatus(t, rec, http.StatusCreated)

	rec = app.request(http.MethodGet, "/api/v1/public/services", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["services"].([]interface{}); len(got) != 1 {
		t.Errorf("expected 1 public service, got %d", len(got))
	}

	// Inactive icons stay in the admin list only.
	rec = app.request(http.MethodGet, "/api/v1/public/csr-icons", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["csr_icons"].([]interface{}); len(got) != 0 {
		t.Errorf("expected no public CSR icons, got %d", len(got))
	}
	rec = app.request(http.MethodGet, "/api/v1/csr-icons", "", token)
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["csr_icons"].([]interface{}); len(got) != 1 {
		t.Errorf("expected 1 admin CSR icon, got %d", len(got))
	}

	rec = app.request(http.MethodGet, "/api/v1/public/employees", "", "")
	expectStatus(t, rec, http.StatusOK)
	if got := parseJSON(t, rec)["total_items"].(float64); got != 1 {
		t.Errorf("expected 1 public employee, got %v", got)
	}
}
