package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pehlione.com/admin/internal/modules/orders"
)

func (a *app) listCmd() *cobra.Command {
	var page, limit int
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if status != orders.FilterAll {
				if _, ok := orders.ParseStatus(status); !ok {
					return fmt.Errorf("unknown status %q", status)
				}
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			p, err := svc.ListOrders(a.ctx(cmd), orders.ListParams{Page: page, PageSize: limit, Status: status})
			if err != nil {
				return err
			}
			return a.printPage(p)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Orders per page")
	cmd.Flags().StringVar(&status, "status", orders.FilterAll, "Status filter")
	return cmd
}

func (a *app) searchCmd() *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Search by order number, customer name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			p, err := svc.SearchOrders(a.ctx(cmd), args[0], page, limit)
			if err != nil {
				return err
			}
			return a.printPage(p)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Orders per page")
	return cmd
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one order with items and status history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			o, err := svc.GetOrder(a.ctx(cmd), args[0])
			if err != nil {
				return err
			}
			return a.printOrder(o)
		},
	}
}

func (a *app) setStatusCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Change the status of an order",
		Long:  "Change the status of an order. Allowed statuses: " + statusList() + ". The server decides which transitions are valid.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok := orders.ParseStatus(strings.ToLower(args[1]))
			if !ok {
				return fmt.Errorf("unknown status %q (want one of %s)", args[1], statusList())
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			upd, err := svc.UpdateOrderStatus(a.ctx(cmd), args[0], st, message)
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(upd)
			}
			fmt.Fprintf(a.out, "order %s is now %s\n", upd.ID, upd.Status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Note stored with the status change")
	return cmd
}

func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard totals and recent orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			s, err := svc.GetDashboardStats(a.ctx(cmd))
			if err != nil {
				return err
			}
			return a.printDashboard(s)
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show revenue and order counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			s, err := svc.GetOrderStats(a.ctx(cmd))
			if err != nil {
				return err
			}
			return a.printStats(s)
		},
	}
}

func statusList() string {
	out := make([]string, len(orders.Statuses))
	for i, s := range orders.Statuses {
		out[i] = string(s)
	}
	return strings.Join(out, ", ")
}
