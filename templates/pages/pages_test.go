package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pehlione.com/admin/pkg/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestOrdersListEmptyState(t *testing.T) {
	out := render(t, AdminOrdersList(nil, "ada", view.AdminOrdersListPage{Empty: true, Page: 1, TotalPages: 1}))

	assert.Contains(t, out, "No orders found.")
	assert.NotContains(t, out, `role="alert"`)
	assert.Contains(t, out, "ada")
}

func TestOrdersListEscapesAndRendersDialogs(t *testing.T) {
	vm := view.AdminOrdersListPage{
		Items: []view.AdminOrderListItem{{
			ID: "o1", Number: "ORD-1", Customer: "<script>x</script>", Status: "shipped",
			StatusLabel: "Shipped", ViewURL: "/admin/orders?view=o1",
		}},
		Page: 1, TotalPages: 2, NextURL: "/admin/orders?page=2",
		Detail:   &view.AdminOrderDetail{Number: "ORD-1", Status: "shipped", StatusLabel: "Shipped"},
		Editor:   &view.StatusEditor{Number: "ORD-1", Current: "shipped", Action: "/admin/orders/o1/status", Error: &view.Notice{Message: "cannot change status", Kind: "conflict"}},
		CloseURL: "/admin/orders",
	}
	out := render(t, AdminOrdersList(&view.Flash{Kind: view.FlashSuccess, Message: "Saved"}, "ada", vm))

	assert.NotContains(t, out, "<script>x</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `rel="next"`)
	assert.Contains(t, out, `aria-labelledby="detail-title"`)
	assert.Contains(t, out, "cannot change status")
	assert.Contains(t, out, `flash--success`)
}

func TestStatusDialogOnly(t *testing.T) {
	out := render(t, StatusDialog(nil, "ada", view.StatusEditor{
		Number: "ORD-9", Current: "delivered", Action: "/admin/orders/o9/status",
		Options: []view.StatusOption{{Value: "pending", Label: "Pending", Selected: true}},
		Error:   &view.Notice{Message: "Order can no longer change status.", Kind: "conflict"},
	}))

	assert.Contains(t, out, "ORD-9")
	assert.Contains(t, out, "Order can no longer change status.")
	assert.NotContains(t, out, "<table")
}

func TestDashboardStates(t *testing.T) {
	out := render(t, AdminDashboard(nil, view.DashboardPage{
		Admin:     "ada",
		Summary:   view.WidgetView{State: "ready"},
		Cards:     []view.StatCard{{Label: "Total orders", Value: "12"}},
		Breakdown: view.WidgetView{State: "failed", Notice: &view.Notice{Message: "Backend unavailable", RetryURL: "/admin?retry=breakdown"}},
	}))

	assert.Contains(t, out, "Total orders")
	assert.Contains(t, out, "No orders yet.")
	assert.Contains(t, out, "Backend unavailable")
	assert.Contains(t, out, "Retry")
}

func TestLoginAndError(t *testing.T) {
	out := render(t, Login(nil, view.LoginForm{Name: "ada"}, map[string]string{"token": "This field is required."}, ""))
	assert.Contains(t, out, "This field is required.")
	assert.Contains(t, out, `value="ada"`)

	out = render(t, Error(502, "Backend unavailable", "rid-1", nil))
	assert.Contains(t, out, "502")
	assert.Contains(t, out, "rid-1")
}
