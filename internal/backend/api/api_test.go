package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/backend/store"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestServer(t *testing.T, token string, seed int) (*gin.Engine, []store.Order) {
	t.Helper()
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	repo := store.NewRepo(db)
	created, err := repo.Seed(context.Background(), store.SeedOptions{Count: seed, Seed: 1})
	require.NoError(t, err)
	return NewRouter(repo, Config{Token: token}), created
}

func do(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type body struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) body {
	t.Helper()
	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b))
	return b
}

func TestAuth(t *testing.T) {
	r, _ := newTestServer(t, "s3cret", 1)

	w := do(r, http.MethodGet, "/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode(t, w).Success)

	w = do(r, http.MethodGet, "/orders", "", "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/orders", "", "s3cret")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
}

func TestList_UnknownStatusFilter(t *testing.T) {
	r, _ := newTestServer(t, "", 1)

	w := do(r, http.MethodGet, "/orders?status=lost", "", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	r, _ := newTestServer(t, "", 0)

	w := do(r, http.MethodGet, "/orders/nope", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "order not found", decode(t, w).Message)
}

func TestUpdateStatus_Responses(t *testing.T) {
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	repo := store.NewRepo(db)
	r := NewRouter(repo, Config{Now: func() time.Time { return time.Now().UTC() }})

	o := store.Order{ID: "o-1", OrderNumber: "ORD-1", CustomerName: "A", CustomerEmail: "a@x.test", Status: "pending"}
	require.NoError(t, repo.Create(context.Background(), &o))

	w := do(r, http.MethodPut, "/orders/o-1/status", `{"status":"shipped"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, decode(t, w).Success)

	w = do(r, http.MethodPut, "/orders/o-1/status", `{"status":"bogus"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/orders/o-1/status", `not json`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/orders/missing/status", `{"status":"confirmed"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPut, "/orders/o-1/status", `{"status":"confirmed","message":"called customer"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var upd struct {
		Status string `json:"status"`
		Entry  struct {
			Message   string `json:"message"`
			AdminName string `json:"admin_name"`
		} `json:"history_entry"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &upd))
	assert.Equal(t, "confirmed", upd.Status)
	assert.Equal(t, "called customer", upd.Entry.Message)
	assert.Equal(t, "admin", upd.Entry.AdminName)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestServer(t, "", 0)

	w := do(r, http.MethodGet, "/nope", "", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}
