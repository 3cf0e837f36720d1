package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmanager/admin-console/internal/core/domain"
	"github.com/stockmanager/admin-console/internal/infrastructure/tokenstore"
)

func newTestClient(t *testing.T, h http.HandlerFunc, tokens *tokenstore.MemoryStore) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Options{BaseURL: srv.URL + "/products/api/v1"}, tokens, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestNew_RejectsInvalidBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "not a url"}, nil, zerolog.Nop())
	assert.Error(t, err)
}

func TestClient_AttachesBearerWhenTokenStored(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(context.Background(), domain.TokenPair{Access: "A", Refresh: "R"}))

	var gotAuth, gotPath, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `[{"id":1,"name":"Widget","price":"9.50","quantity":3,"sold_quantity":0,"category":null,"category_details":null}]`)
	}, tokens)

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Bearer A", gotAuth)
	assert.Equal(t, "/products/api/v1/products/", gotPath)
	assert.NotEmpty(t, gotRequestID)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("9.5")))
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	var sawHeader bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		_, _ = io.WriteString(w, `[]`)
	}, tokenstore.NewMemoryStore())

	_, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader)
}

func TestClient_ReadsTokenAtDispatchTime(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `[]`)
	}, tokens)

	ctx := context.Background()
	_, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.NoError(t, tokens.Set(ctx, domain.TokenPair{Access: "late"}))
	_, err = c.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer late"}, seen)
}

func TestClient_LoginDecodesPairAndPostsCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products/api/v1/auth/login/", r.URL.Path)
		var creds domain.Credentials
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, domain.Credentials{Username: "admin", Password: "pw"}, creds)
		_, _ = io.WriteString(w, `{"access":"A","refresh":"R"}`)
	}, tokenstore.NewMemoryStore())

	pair, err := c.Login(context.Background(), domain.Credentials{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, domain.TokenPair{Access: "A", Refresh: "R"}, pair)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	ctx := context.Background()
	login := func(c *Client) error {
		_, err := c.Login(ctx, domain.Credentials{})
		return err
	}
	register := func(c *Client) error {
		_, err := c.Register(ctx, domain.Registration{})
		return err
	}
	me := func(c *Client) error {
		_, err := c.CurrentUser(ctx)
		return err
	}
	profile := func(c *Client) error {
		_, err := c.UpdateProfile(ctx, domain.ProfileUpdate{})
		return err
	}
	deleteProduct := func(c *Client) error { return c.DeleteProduct(ctx, 1) }
	getProduct := func(c *Client) error {
		_, err := c.GetProduct(ctx, 9)
		return err
	}
	createCategory := func(c *Client) error {
		_, err := c.CreateCategory(ctx, domain.CategoryInput{})
		return err
	}
	stats := func(c *Client) error {
		_, err := c.Stats(ctx)
		return err
	}

	tests := []struct {
		name   string
		status int
		call   func(c *Client) error
		want   error
	}{
		{"login 401", 401, login, domain.ErrAuth},
		{"login 400", 400, login, domain.ErrAuth},
		{"register 400", 400, register, domain.ErrValidation},
		{"me 403", 403, me, domain.ErrAuth},
		{"profile 401", 401, profile, domain.ErrAuth},
		{"profile 400", 400, profile, domain.ErrValidation},
		{"product 403", 403, deleteProduct, domain.ErrForbidden},
		{"product 404", 404, getProduct, domain.ErrNotFound},
		{"category 400", 400, createCategory, domain.ErrValidation},
		{"stats 500", 500, stats, domain.ErrServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"detail":"nope"}`)
			}, tokenstore.NewMemoryStore())

			err := tt.call(c)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "nope", apiErr.Message())
		})
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: base}, tokenstore.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, err)

	_, err = c.ListProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestClient_AuthFailureHookFiresOnlyForBearerRequests(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, tokens)

	var fired atomic.Int32
	var rejected string
	c.OnAuthFailure(func(_ context.Context, token string) {
		fired.Add(1)
		rejected = token
	})
	ctx := context.Background()

	_, err := c.ListProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, int32(0), fired.Load(), "no token was sent")

	require.NoError(t, tokens.Set(ctx, domain.TokenPair{Access: "stale"}))
	_, err = c.Login(ctx, domain.Credentials{Username: "x", Password: "y"})
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, int32(0), fired.Load(), "login is a credential exchange")

	_, err = c.ListProducts(ctx)
	assert.ErrorIs(t, err, domain.ErrAuth)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, "stale", rejected, "hook receives the token that was sent")
}

func TestClient_DeleteAcceptsNoContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/api/v1/categories/4/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}, tokenstore.NewMemoryStore())

	assert.NoError(t, c.DeleteCategory(context.Background(), 4))
}

func TestClient_PingTreatsAnyStatusAsReachable(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	require.NoError(t, tokens.Set(context.Background(), domain.TokenPair{Access: "secret"}))
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNotFound)
	}, tokens)

	assert.NoError(t, c.Ping(context.Background()))
}
