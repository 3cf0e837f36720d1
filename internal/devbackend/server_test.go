package devbackend

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockmanager/admin-console/internal/core/domain"
)

type testBackend struct {
	t      *testing.T
	server http.Handler
	store  *Store
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()
	store := NewStore(bcrypt.MinCost)
	require.NoError(t, store.Seed())
	issuer := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	return &testBackend{t: t, server: NewServer(store, issuer, zerolog.Nop()), store: store}
}

func (b *testBackend) do(method, path, token, body string) *httptest.ResponseRecorder {
	b.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, BasePath+path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	b.server.ServeHTTP(rec, req)
	return rec
}

func (b *testBackend) login(username string) string {
	b.t.Helper()
	rec := b.do(http.MethodPost, "/auth/login/", "", `{"username":"`+username+`","password":"`+username+`"}`)
	require.Equal(b.t, http.StatusOK, rec.Code, rec.Body.String())
	var pair domain.TokenPair
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &pair))
	require.NotEmpty(b.t, pair.Access)
	require.NotEmpty(b.t, pair.Refresh)
	return pair.Access
}

func TestServer_LoginRejectsBadCredentials(t *testing.T) {
	b := newTestBackend(t)

	rec := b.do(http.MethodPost, "/auth/login/", "", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No active account found")

	rec = b.do(http.MethodPost, "/auth/login/", "", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"password":["This field is required."]}`, rec.Body.String())
}

func TestServer_MeRequiresToken(t *testing.T) {
	b := newTestBackend(t)

	rec := b.do(http.MethodGet, "/auth/me/", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = b.do(http.MethodGet, "/auth/me/", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_not_valid")

	rec = b.do(http.MethodGet, "/auth/me/", b.login("manager"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var user domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "manager", user.Username)
	assert.Equal(t, []string{domain.RoleManager}, user.Roles)
}

func TestServer_RegisterDefaultsToReader(t *testing.T) {
	b := newTestBackend(t)

	rec := b.do(http.MethodPost, "/auth/register/", "", `{"username":"newbie","password":"pw","email":"n@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var ack domain.RegisterAck
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.NotNil(t, ack.User)
	assert.Equal(t, []string{domain.RoleReader}, ack.User.Roles)

	rec = b.do(http.MethodPost, "/auth/register/", "", `{"username":"newbie","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username already exists"}`, rec.Body.String())
}

func TestServer_ReaderCanReadButNotWrite(t *testing.T) {
	b := newTestBackend(t)
	token := b.login("reader")

	rec := b.do(http.MethodGet, "/products/", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"price":"12.50"`)

	rec = b.do(http.MethodDelete, "/products/1/", token, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You do not have permission")
}

func TestServer_ProductCRUD(t *testing.T) {
	b := newTestBackend(t)
	token := b.login("manager")

	rec := b.do(http.MethodPost, "/products/", token, `{"name":"Saw","price":"15.5","quantity":3,"category":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created productResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "15.50", created.Price)
	require.NotNil(t, created.CategoryDetails)
	assert.Equal(t, "Tools", created.CategoryDetails.Name)

	rec = b.do(http.MethodPut, "/products/"+strconv.FormatInt(created.ID, 10)+"/", token, `{"name":"Saw","price":"16","quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"category":null`)

	rec = b.do(http.MethodPost, "/products/", token, `{"name":"","price":"1.234","quantity":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errs fieldErrors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "quantity")

	rec = b.do(http.MethodPost, "/products/", token, `{"name":"X","price":"1","quantity":1,"category":999}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "object does not exist")

	rec = b.do(http.MethodDelete, "/products/"+strconv.FormatInt(created.ID, 10)+"/", token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = b.do(http.MethodGet, "/products/"+strconv.FormatInt(created.ID, 10)+"/", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DeleteCategoryDetachesProducts(t *testing.T) {
	b := newTestBackend(t)
	token := b.login("admin")

	rec := b.do(http.MethodDelete, "/categories/1/", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	for _, p := range b.store.Products() {
		assert.False(t, p.InCategory(1), "product %d still references deleted category", p.ID)
	}
}

func TestServer_ProfileUpdate(t *testing.T) {
	b := newTestBackend(t)
	token := b.login("reader")

	rec := b.do(http.MethodPut, "/auth/profile/", token, `{"username":"reader","email":"r@example.com","first_name":"Rita","new_password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Current password is required to change password"}`, rec.Body.String())

	rec = b.do(http.MethodPut, "/auth/profile/", token, `{"username":"reader","email":"r@example.com","first_name":"Rita","current_password":"nope","new_password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.do(http.MethodPut, "/auth/profile/", token, `{"username":"reader","email":"r@example.com","first_name":"Rita","current_password":"reader","new_password":"fresh"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"first_name":"Rita"`)

	_, err := b.store.Authenticate("reader", "fresh")
	assert.NoError(t, err)
}

func TestServer_Stats(t *testing.T) {
	b := newTestBackend(t)

	rec := b.do(http.MethodGet, "/stats/", b.login("reader"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats domain.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 6, stats.Metrics.TotalProducts)
	assert.Equal(t, 1, stats.Metrics.OutOfStockCount)
	assert.Equal(t, 2, stats.Metrics.LowStockCount)
	// 24*12.50 + 4*19.99 + 500*0.35 + 5*2.10 + 18*6.75
	assert.Equal(t, "686.96", stats.Metrics.TotalStockValue.StringFixed(2))
	assert.NotEmpty(t, stats.Charts.TopProducts)
}
