package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/stockmanager/admin-console/internal/api/handler"
	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/core/ports"
	"github.com/stockmanager/admin-console/internal/infrastructure/notify"
)

// fixedSession serves a constant snapshot; every transition is a no-op.
type fixedSession struct {
	ports.SessionService
	snap domain.Session
}

func (s fixedSession) Snapshot() domain.Session { return s.snap }

type emptyList struct{}

func (emptyList) LoadProductList(_ context.Context, f domain.ViewFilterState) domain.ProductListView {
	return domain.ProductListView{Filter: f, Products: []domain.Product{}, Categories: []domain.Category{}}
}

func newTestRouter(snap domain.Session) http.Handler {
	return NewRouter(Deps{
		Session:  fixedSession{snap: snap},
		Products: emptyList{},
		Notices:  notify.NewFlash(10, zerolog.Nop()),
		Checks:   map[string]handler.DependencyCheck{},
		Registry: prometheus.NewRegistry(),
		Logger:   zerolog.Nop(),
	})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_ProtectedPageFollowsSession(t *testing.T) {
	tests := []struct {
		name string
		snap domain.Session
		code int
	}{
		{"loading", domain.NewSession(), http.StatusServiceUnavailable},
		{"anonymous", domain.AnonymousSession(), http.StatusFound},
		{"authenticated", domain.AuthenticatedSession(domain.User{Username: "a", Roles: []string{domain.RoleReader}}), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestRouter(tt.snap), http.MethodGet, "/products")
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestRouter_ReaderCannotMutate(t *testing.T) {
	reader := domain.AuthenticatedSession(domain.User{Username: "r", Roles: []string{domain.RoleReader}})
	rec := serve(newTestRouter(reader), http.MethodDelete, "/products/1")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_RootRedirectsToProducts(t *testing.T) {
	rec := serve(newTestRouter(domain.AnonymousSession()), http.MethodGet, "/")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/products" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestRouter_InfraRoutesArePublic(t *testing.T) {
	h := newTestRouter(domain.NewSession())
	for _, path := range []string{"/health", "/health/ready", "/metrics", "/notifications"} {
		if rec := serve(h, http.MethodGet, path); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
