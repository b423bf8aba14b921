package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/vitrine-shop/go-backend/internal/cfg"
	"github.com/vitrine-shop/go-backend/internal/domain"
	"github.com/vitrine-shop/go-backend/internal/guard"
	"github.com/vitrine-shop/go-backend/internal/usecase"
	"github.com/vitrine-shop/go-backend/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type fakeCatalogUC struct {
	products []domain.Product
	listErr  error
	opErr    error

	lastCreate *usecase.CreateProductReq
	lastUpdate *usecase.UpdateProductReq
	lastID     string
}

func (f *fakeCatalogUC) ListProducts(_ context.Context) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func (f *fakeCatalogUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*domain.Product, error) {
	f.lastCreate = req
	if f.opErr != nil {
		return nil, f.opErr
	}
	return &domain.Product{ID: "66f000000000000000000001", Name: req.Name, Price: "5.00", Image: req.Image}, nil
}

func (f *fakeCatalogUC) UpdateProduct(_ context.Context, id string, req *usecase.UpdateProductReq) (*domain.Product, error) {
	f.lastID = id
	f.lastUpdate = req
	if f.opErr != nil {
		return nil, f.opErr
	}
	return &domain.Product{ID: id, Name: "Lamp", Price: "5.00", Image: "http://x"}, nil
}

func (f *fakeCatalogUC) DeleteProduct(_ context.Context, id string) error {
	f.lastID = id
	return f.opErr
}

func newTestServer(t *testing.T, uc usecase.CatalogUC, guardCfg *cfg.GuardCfg) *httptest.Server {
	t.Helper()

	mux := chi.NewRouter()
	router := NewRouter(mux, nopLogger{})
	router.Init(uc, guard.NewGuard(guardCfg), &cfg.HTTPConfig{AppEnv: cfg.EnvDevelopment})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func decodeEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	defer resp.Body.Close()

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestListProducts(t *testing.T) {
	uc := &fakeCatalogUC{products: []domain.Product{{ID: "a", Name: "Lamp", Price: "5.00", Image: "http://x"}}}
	srv := newTestServer(t, uc, &cfg.GuardCfg{})

	resp, err := http.Get(srv.URL + "/api/products")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if !env.Success {
		t.Fatalf("expected success envelope: %+v", env)
	}
	list, ok := env.Data.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("expected one product in data, got %+v", env.Data)
	}
}

func TestListProductsInternalError(t *testing.T) {
	uc := &fakeCatalogUC{listErr: e.Wrap("CatalogUseCase.ListProducts", e.ErrInternalServerError)}
	srv := newTestServer(t, uc, &cfg.GuardCfg{})

	resp, err := http.Get(srv.URL + "/api/products")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Success || env.Message != "server error" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateRequiresPassword(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{AdminPassword: "s3cret"})

	resp, err := http.Post(srv.URL+"/api/products", "application/json",
		strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Success || env.Message != e.ErrPasswordRequired.Error() {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if uc.lastCreate != nil {
		t.Fatalf("handler must not run without credentials")
	}
}

func TestCreateWrongPassword(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{AdminPassword: "s3cret"})

	resp, err := http.Post(srv.URL+"/api/products", "application/json",
		strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x","adminPassword":"nope"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if uc.lastCreate != nil {
		t.Fatalf("handler must not run with a wrong password")
	}
}

func TestCreatePasswordFromBody(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{AdminPassword: "s3cret"})

	resp, err := http.Post(srv.URL+"/api/products", "application/json",
		strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x","adminPassword":"s3cret"}`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Тело восстановлено после чтения пароля: payload дошёл до хендлера
	if uc.lastCreate == nil || uc.lastCreate.Name != "Lamp" || uc.lastCreate.Price != "5" {
		t.Fatalf("payload did not reach handler: %+v", uc.lastCreate)
	}
}

func TestCreatePasswordFromHeader(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{AdminPassword: "s3cret"})

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/products",
		strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Password", "s3cret")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestCreateMalformedBody(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{})

	resp, err := http.Post(srv.URL+"/api/products", "application/json", strings.NewReader(`{not json`))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateOversizedBodyRejected(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{})

	// Корректный JSON чуть больше лимита тела мутирующего запроса
	oversized := `{"name":"` + strings.Repeat("a", maxGuardedBodySize+1024) + `","price":"5","image":"http://x"}`

	resp, err := http.Post(srv.URL+"/api/products", "application/json", strings.NewReader(oversized))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env.Success || env.Message != e.ErrRequestTooLarge.Error() {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if uc.lastCreate != nil {
		t.Fatalf("oversized body must not reach the handler")
	}
}

func TestIPAllowList(t *testing.T) {
	guardCfg := &cfg.GuardCfg{
		IPCheckEnabled: true,
		AllowedIPs:     []string{"203.0.113.5"},
	}

	t.Run("allowed forwarded address", func(t *testing.T) {
		uc := &fakeCatalogUC{}
		srv := newTestServer(t, uc, guardCfg)

		req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/products",
			strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x"}`))
		req.Header.Set("X-Forwarded-For", "::ffff:203.0.113.5, 10.0.0.1")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", resp.StatusCode)
		}
	})

	t.Run("unlisted address rejected", func(t *testing.T) {
		uc := &fakeCatalogUC{}
		srv := newTestServer(t, uc, guardCfg)

		resp, err := http.Post(srv.URL+"/api/products", "application/json",
			strings.NewReader(`{"name":"Lamp","price":"5","image":"http://x"}`))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", resp.StatusCode)
		}

		env := decodeEnvelope(t, resp)
		if env.Message != e.ErrIPNotAllowed.Error() {
			t.Fatalf("unexpected message: %q", env.Message)
		}
		if uc.lastCreate != nil {
			t.Fatalf("handler must not run from an unlisted address")
		}
	})
}

func TestUpdateErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid id", e.Wrap("CatalogUseCase.UpdateProduct", e.ErrInvalidProductID), http.StatusBadRequest},
		{"not found", e.Wrap("CatalogUseCase.UpdateProduct", e.ErrProductNotFound), http.StatusNotFound},
		{"invalid price", e.Wrap("CatalogUseCase.UpdateProduct", e.ErrInvalidPrice), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeCatalogUC{opErr: tc.err}
			srv := newTestServer(t, uc, &cfg.GuardCfg{})

			req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/products/abc",
				strings.NewReader(`{"price":"5"}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}

			env := decodeEnvelope(t, resp)
			if env.Success {
				t.Fatalf("expected failure envelope: %+v", env)
			}
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	uc := &fakeCatalogUC{}
	srv := newTestServer(t, uc, &cfg.GuardCfg{})

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/products/66f000000000000000000001", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if !env.Success || env.Message != "Product deleted" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if uc.lastID != "66f000000000000000000001" {
		t.Fatalf("unexpected id %q", uc.lastID)
	}
}

func TestDebugIP(t *testing.T) {
	srv := newTestServer(t, &fakeCatalogUC{}, &cfg.GuardCfg{})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/debug/ip", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.5:51000")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	diag, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected diagnostics map, got %+v", env.Data)
	}
	if diag["resolved_ip"] != "203.0.113.5" {
		t.Fatalf("unexpected resolved_ip: %v", diag["resolved_ip"])
	}
}
