package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/ledger"
	"github.com/VBWEBcorp/Gestion-clients-vbweb/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Repository) {
	t.Helper()
	repo, err := storage.NewRepository(filepath.Join(t.TempDir(), "clients.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	return NewServer(":0", ledger.NewService(repo, nil)), repo
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestIndexPage(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Gestion clients VBWEB") {
		t.Error("expected page title in body")
	}
	if !strings.Contains(body, "0,00 €") {
		t.Error("expected zero totals on an empty ledger")
	}
}

func TestCreateRecordFlow(t *testing.T) {
	srv, repo := newTestServer(t)

	rec := postForm(t, srv, "/records", url.Values{
		"leader":    {"Erwan"},
		"company":   {"COMIZI"},
		"email":     {"erwan@comizi.fr"},
		"service":   {"Site web"},
		"amountHt":  {"150,5"},
		"frequency": {"MONTHLY"},
		"status":    {"ACTIVE"},
		"startDate": {"2024-12-05"},
		"endDate":   {""},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q, want %q", loc, "/")
	}

	records, err := repo.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].AmountHT.String(); got != "150.5" {
		t.Errorf("AmountHT = %s, want 150.5", got)
	}

	page := httptest.NewRecorder()
	srv.Handler.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
	body := page.Body.String()
	if !strings.Contains(body, "COMIZI") {
		t.Error("expected created record on the index page")
	}
	if !strings.Contains(body, "180,60 €") {
		t.Errorf("expected TTC total 180,60 € on the page")
	}
	if !strings.Contains(body, "05/12/2024") {
		t.Error("expected start date rendered as 05/12/2024")
	}
}

func TestCreateRecordIncompleteIsDropped(t *testing.T) {
	srv, repo := newTestServer(t)

	rec := postForm(t, srv, "/records", url.Values{
		"leader":   {"Erwan"},
		"company":  {""},
		"email":    {"erwan@comizi.fr"},
		"service":  {"Site web"},
		"amountHt": {"100"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	records, err := repo.ListRecords(context.Background())
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records, want 0 after dropped submission", len(records))
	}
}

func TestCreateRecordMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if allow := rec.Header().Get("Allow"); allow != "POST" {
		t.Errorf("Allow = %q, want POST", allow)
	}
}

func TestDeleteMissingRecord(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := postForm(t, srv, "/records/delete", url.Values{"id": {"999"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdateSettingsFlow(t *testing.T) {
	srv, repo := newTestServer(t)

	rec := postForm(t, srv, "/settings", url.Values{
		"vatRate": {"21,5"},
		"taxRate": {"30"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	settings, err := repo.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if got := settings.VATRate.String(); got != "21.5" {
		t.Errorf("VATRate = %s, want 21.5", got)
	}
	if got := settings.TaxRate.String(); got != "30" {
		t.Errorf("TaxRate = %s, want 30", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}

func TestUnknownPathReturns404(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
