// Package cli implements ordersctl, a terminal client for the order API.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pehlione.com/admin/internal/apiclient"
	"pehlione.com/admin/internal/modules/orders"
)

type Service interface {
	ListOrders(ctx context.Context, in orders.ListParams) (orders.Page, error)
	SearchOrders(ctx context.Context, term string, page, pageSize int) (orders.Page, error)
	GetOrder(ctx context.Context, id string) (orders.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status orders.Status, message string) (orders.StatusUpdate, error)
	GetDashboardStats(ctx context.Context) (orders.DashboardStats, error)
	GetOrderStats(ctx context.Context) (orders.OrderStats, error)
}

type app struct {
	v   *viper.Viper
	out io.Writer
	svc Service // set in tests; built from flags otherwise
}

func (a *app) service() (Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}
	client, err := apiclient.New(a.v.GetString("api"), apiclient.StaticToken(a.v.GetString("token")))
	if err != nil {
		return nil, err
	}
	return orders.NewService(client), nil
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if n := a.v.GetString("admin"); n != "" {
		ctx = apiclient.WithAdminName(ctx, n)
	}
	return ctx
}

func (a *app) jsonOutput() bool { return strings.EqualFold(a.v.GetString("output"), "json") }

// NewRootCmd builds the command tree. svc may be nil.
func NewRootCmd(out io.Writer, svc Service) *cobra.Command {
	a := &app{v: viper.New(), out: out, svc: svc}

	root := &cobra.Command{
		Use:           "ordersctl",
		Short:         "Inspect and update orders through the order API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.String("api", "http://localhost:8081", "API base URL (env API_BASE_URL)")
	pf.String("token", "", "Bearer token (env API_TOKEN)")
	pf.String("admin", "", "Name recorded on status changes")
	pf.StringP("output", "o", "table", "Output format: table or json")

	_ = a.v.BindPFlag("api", pf.Lookup("api"))
	_ = a.v.BindPFlag("token", pf.Lookup("token"))
	_ = a.v.BindPFlag("admin", pf.Lookup("admin"))
	_ = a.v.BindPFlag("output", pf.Lookup("output"))
	_ = a.v.BindEnv("api", "API_BASE_URL")
	_ = a.v.BindEnv("token", "API_TOKEN")

	root.AddCommand(
		a.listCmd(),
		a.searchCmd(),
		a.getCmd(),
		a.setStatusCmd(),
		a.dashboardCmd(),
		a.statsCmd(),
		a.browseCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd(os.Stdout, nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
