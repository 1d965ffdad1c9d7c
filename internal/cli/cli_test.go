package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/internal/backend/api"
	"pehlione.com/admin/internal/backend/store"
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/shared/apperr"
)

const token = "cli-token"

func newBackend(t *testing.T) (string, *store.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	repo := store.NewRepo(db)
	srv := httptest.NewServer(api.NewRouter(repo, api.Config{Token: token}))
	t.Cleanup(srv.Close)
	return srv.URL, repo
}

func addOrder(t *testing.T, repo *store.Repo, number string, status orders.Status) string {
	t.Helper()
	id := uuid.NewString()
	now := time.Now().UTC()
	o := store.Order{
		ID: id, OrderNumber: number, CustomerName: "Jane Roe", CustomerEmail: "jane@example.test",
		TotalAmount: decimal.RequireFromString("19.99"), ItemCount: 1, Status: string(status),
		CreatedAt: now, UpdatedAt: now,
		Items:  []store.OrderItem{{ID: uuid.NewString(), OrderID: id, ProductID: "p1", ProductName: "Kettle", Price: decimal.RequireFromString("19.99"), Quantity: 1}},
		Events: []store.StatusEvent{{ID: uuid.NewString(), OrderID: id, Status: string(status), Message: "Order placed", CreatedAt: now}},
	}
	require.NoError(t, repo.Create(context.Background(), &o))
	return id
}

func run(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(&out, nil)
	root.SetArgs(append([]string{"--api", url, "--token", token}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestListAndSearch(t *testing.T) {
	url, repo := newBackend(t)
	addOrder(t, repo, "ORD-100", orders.StatusPending)
	addOrder(t, repo, "ORD-200", orders.StatusShipped)

	out, err := run(t, url, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ORD-100")
	assert.Contains(t, out, "ORD-200")
	assert.Contains(t, out, "$19.99")
	assert.Contains(t, out, "page 1 of 1, 2 orders")

	out, err = run(t, url, "list", "--status", "shipped")
	require.NoError(t, err)
	assert.NotContains(t, out, "ORD-100")

	out, err = run(t, url, "search", "ord-200")
	require.NoError(t, err)
	assert.Contains(t, out, "ORD-200")
	assert.NotContains(t, out, "ORD-100")

	_, err = run(t, url, "list", "--status", "lost")
	assert.ErrorContains(t, err, `unknown status "lost"`)
}

func TestGetAndSetStatus(t *testing.T) {
	url, repo := newBackend(t)
	id := addOrder(t, repo, "ORD-300", orders.StatusShipped)

	out, err := run(t, url, "--admin", "ops", "set-status", id, "delivered", "-m", "signed for")
	require.NoError(t, err)
	assert.Contains(t, out, "is now delivered")

	out, err = run(t, url, "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Kettle")
	assert.Contains(t, out, "delivered by ops: signed for")

	_, err = run(t, url, "set-status", id, "pending")
	require.Error(t, err)

	_, err = run(t, url, "set-status", id, "archived")
	assert.ErrorContains(t, err, "unknown status")
}

func TestStatsJSON(t *testing.T) {
	url, repo := newBackend(t)
	addOrder(t, repo, "ORD-1", orders.StatusDelivered)
	addOrder(t, repo, "ORD-2", orders.StatusCancelled)

	out, err := run(t, url, "-o", "json", "stats")
	require.NoError(t, err)

	var s orders.OrderStats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, int64(2), s.TotalOrders)
	assert.True(t, s.TotalRevenue.Equal(decimal.RequireFromString("19.99")))

	out, err = run(t, url, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "total orders")
	assert.Contains(t, out, "recent:")
}

func TestWrongTokenFails(t *testing.T) {
	url, _ := newBackend(t)
	var out bytes.Buffer
	root := NewRootCmd(&out, nil)
	root.SetArgs([]string{"--api", url, "--token", "nope", "list"})
	assert.Error(t, root.Execute())
}

func browse(t *testing.T, svc Service, url, script string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(&out, svc)
	root.SetIn(strings.NewReader(script))
	root.SetArgs(append([]string{"--api", url, "--token", token, "browse"}, args...))
	require.NoError(t, root.Execute())
	return out.String()
}

func TestBrowseSession(t *testing.T) {
	url, repo := newBackend(t)
	for i := range 11 {
		addOrder(t, repo, fmt.Sprintf("ORD-%d", 100+i), orders.StatusPending)
	}
	id := addOrder(t, repo, "ORD-900", orders.StatusShipped)

	script := strings.Join([]string{
		"n",
		"g 9",
		"g 3",
		"n",
		"p",
		"f shipped",
		"v " + id,
		"e " + id,
		"set archived",
		"c",
		"set delivered signed for",
		"s ORD-105",
		"s",
		"r",
		"dance",
		"q",
	}, "\n")
	out := browse(t, nil, url, script, "--limit", "5")

	assert.Contains(t, out, "page 1 of 3, 12 orders")
	assert.Contains(t, out, "page 2 of 3, 12 orders")
	assert.Contains(t, out, "page out of range")
	assert.Contains(t, out, "page 3 of 3, 12 orders")
	assert.Contains(t, out, "no next page")
	assert.Contains(t, out, "status shipped")
	assert.Contains(t, out, "Kettle")
	assert.Contains(t, out, "changing ORD-900 (currently shipped)")
	assert.Contains(t, out, "error: Choose a valid status.")
	assert.Contains(t, out, "error: No order selected.", "closed dialog refuses the submit")
	assert.Contains(t, out, `search "ORD-105"`)
	assert.Contains(t, out, "nothing to retry")
	assert.Contains(t, out, `unknown command "dance"`)
	assert.NotContains(t, out, "is now delivered")

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, string(orders.StatusShipped), stored.Status)
}

func TestBrowseChangesStatus(t *testing.T) {
	url, repo := newBackend(t)
	id := addOrder(t, repo, "ORD-1", orders.StatusShipped)

	out := browse(t, nil, url, "e "+id+"\nset Delivered signed for\nq\n", "--admin", "ops")

	assert.Contains(t, out, "order "+id+" is now delivered")
	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, string(orders.StatusDelivered), stored.Status)
}

// flakyService fails the first list and order fetch, then answers.
type flakyService struct {
	Service
	lists, gets int
}

func (f *flakyService) ListOrders(_ context.Context, in orders.ListParams) (orders.Page, error) {
	f.lists++
	if f.lists == 1 {
		return orders.Page{}, apperr.UnavailableErr(errors.New("dial tcp: connection refused"))
	}
	return orders.Page{
		Orders:     []orders.Order{{ID: "a", OrderNumber: "ORD-A", Status: orders.StatusPending}},
		Pagination: orders.Pagination{CurrentPage: 1, TotalPages: 1, TotalOrders: 1},
	}, nil
}

func (f *flakyService) GetOrder(_ context.Context, id string) (orders.Order, error) {
	f.gets++
	if f.gets == 1 {
		return orders.Order{}, apperr.UnavailableErr(errors.New("dial tcp: connection refused"))
	}
	return orders.Order{ID: id, OrderNumber: "ORD-A", Status: orders.StatusPending}, nil
}

func TestBrowseRetriesFailures(t *testing.T) {
	svc := &flakyService{}
	out := browse(t, svc, "http://unused", "v a\nr\nr\nq\n")

	assert.Equal(t, 2, strings.Count(out, "error: The order service is unreachable. (r to retry)"))
	assert.Contains(t, out, "ORD-A (a)")
	assert.Contains(t, out, "page 1 of 1, 1 orders")
	assert.Contains(t, out, "nothing to retry")
	assert.Equal(t, 2, svc.lists)
	assert.Equal(t, 2, svc.gets)
}
