package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/http/middleware"
	"pehlione.com/admin/internal/http/render"
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/orderview"
	"pehlione.com/admin/internal/shared/apperr"
	"pehlione.com/admin/pkg/view"
	"pehlione.com/admin/templates/pages"
)

type DashboardHandler struct {
	Svc orderview.DashboardService
	Log *slog.Logger
}

func NewDashboardHandler(svc orderview.DashboardService, l *slog.Logger) *DashboardHandler {
	if l == nil {
		l = slog.Default()
	}
	return &DashboardHandler{Svc: svc, Log: l}
}

// Show loads both widgets concurrently; each one fails on its own.
func (h *DashboardHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	summary := orderview.NewStatsWidget(h.Svc, h.Log)
	breakdown := orderview.NewOrderStatsWidget(h.Svc, h.Log)
	defer summary.Unmount()
	defer breakdown.Unmount()

	if err := orderview.LoadAll(ctx, summary, breakdown); err != nil {
		middleware.Fail(c, apperr.UnavailableErr(err))
		return
	}

	admin, _ := middleware.CurrentAdmin(c)
	vm := dashboardPage(admin.Name, summary, breakdown, c.Request.URL.RequestURI())
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, vm)
		return
	}
	render.Component(c, http.StatusOK, pages.AdminDashboard(middleware.GetFlash(c), vm))
}

func dashboardPage(admin string, summary *orderview.Widget[orders.DashboardStats], breakdown *orderview.Widget[orders.OrderStats], retryURL string) view.DashboardPage {
	vm := view.DashboardPage{
		Admin:     admin,
		Summary:   view.WidgetView{State: summary.State().String(), Notice: notice(summary.Notice(), retryURL)},
		Breakdown: view.WidgetView{State: breakdown.State().String(), Notice: notice(breakdown.Notice(), retryURL)},
	}

	if summary.State() == orderview.WidgetReady {
		s := summary.Data()
		vm.Cards = []view.StatCard{
			{Label: "Total orders", Value: strconv.FormatInt(s.TotalOrders, 10)},
			{Label: "Revenue", Value: view.Money(s.TotalRevenue)},
			{Label: "Pending", Value: strconv.FormatInt(s.PendingOrders, 10)},
			{Label: "Delivered", Value: strconv.FormatInt(s.DeliveredOrders, 10)},
			{Label: "Today", Value: strconv.FormatInt(s.TodayOrders, 10)},
		}
		for _, o := range s.RecentOrders {
			vm.Recent = append(vm.Recent, listItem(o, orderview.Query{Page: 1, Status: orders.FilterAll}))
		}
	}

	if breakdown.State() == orderview.WidgetReady {
		s := breakdown.Data()
		vm.Revenue = view.Money(s.TotalRevenue)
		vm.Average = view.Money(s.AverageOrderValue)
		for _, st := range orders.Statuses {
			vm.Counts = append(vm.Counts, view.StatusCount{
				Status: string(st),
				Label:  statusLabel(string(st)),
				Count:  s.StatusCounts[st],
			})
		}
	}
	return vm
}
