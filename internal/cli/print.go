package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/pkg/view"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

func (a *app) printPage(p orders.Page) error {
	if a.jsonOutput() {
		return a.printJSON(p)
	}
	if len(p.Orders) == 0 {
		fmt.Fprintln(a.out, "No orders found.")
		return nil
	}
	tw := a.table()
	fmt.Fprintln(tw, "ID\tNUMBER\tCUSTOMER\tSTATUS\tTOTAL\tITEMS\tCREATED")
	for _, o := range p.Orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			o.ID, o.OrderNumber, o.CustomerName, o.Status, view.Money(o.TotalAmount), o.ItemCount, view.DateTime(o.CreatedAt))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	pg := p.Pagination
	fmt.Fprintf(a.out, "page %d of %d, %d orders\n", pg.CurrentPage, pg.TotalPages, pg.TotalOrders)
	return nil
}

func (a *app) printOrder(o orders.Order) error {
	if a.jsonOutput() {
		return a.printJSON(o)
	}
	fmt.Fprintf(a.out, "%s (%s)\n", o.OrderNumber, o.ID)
	fmt.Fprintf(a.out, "status:   %s\n", o.Status)
	fmt.Fprintf(a.out, "customer: %s <%s>\n", o.CustomerName, o.CustomerEmail)
	if o.ShippingAddress != "" {
		fmt.Fprintf(a.out, "ship to:  %s\n", o.ShippingAddress)
	}
	fmt.Fprintf(a.out, "total:    %s\n\n", view.Money(o.TotalAmount))

	tw := a.table()
	fmt.Fprintln(tw, "PRODUCT\tSKU\tQTY\tPRICE\tLINE")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", it.Product.Name, it.Product.SKU, it.Quantity, view.Money(it.Price), view.Money(it.LineTotal()))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nhistory:")
	for _, h := range o.StatusHistory {
		line := fmt.Sprintf("  %s  %s", view.DateTime(h.CreatedAt), h.Status)
		if h.AdminName != "" {
			line += " by " + h.AdminName
		}
		if h.Message != "" {
			line += ": " + h.Message
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *app) printDashboard(s orders.DashboardStats) error {
	if a.jsonOutput() {
		return a.printJSON(s)
	}
	tw := a.table()
	fmt.Fprintf(tw, "total orders\t%d\n", s.TotalOrders)
	fmt.Fprintf(tw, "revenue\t%s\n", view.Money(s.TotalRevenue))
	fmt.Fprintf(tw, "pending\t%d\n", s.PendingOrders)
	fmt.Fprintf(tw, "delivered\t%d\n", s.DeliveredOrders)
	fmt.Fprintf(tw, "today\t%d\n", s.TodayOrders)
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(s.RecentOrders) > 0 {
		fmt.Fprintln(a.out, "\nrecent:")
		return a.printPage(orders.Page{Orders: s.RecentOrders, Pagination: orders.Pagination{CurrentPage: 1, TotalPages: 1, TotalOrders: int64(len(s.RecentOrders))}})
	}
	return nil
}

func (a *app) printStats(s orders.OrderStats) error {
	if a.jsonOutput() {
		return a.printJSON(s)
	}
	tw := a.table()
	fmt.Fprintf(tw, "total orders\t%d\n", s.TotalOrders)
	fmt.Fprintf(tw, "revenue\t%s\n", view.Money(s.TotalRevenue))
	fmt.Fprintf(tw, "average order\t%s\n", view.Money(s.AverageOrderValue))
	for _, st := range orders.Statuses {
		fmt.Fprintf(tw, "%s\t%d\n", st, s.StatusCounts[st])
	}
	return tw.Flush()
}
