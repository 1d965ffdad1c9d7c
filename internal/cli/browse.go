package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/orderview"
)

const browseHelp = `commands:
  n             next page
  p             previous page
  g N           go to page N
  f STATUS      filter by status, or all
  s [TERM]      search; no term returns to the full list
  v ID          show an order
  e ID          start a status change
  set STATUS [MESSAGE]
                submit the status change
  c             close the open order or status change
  r             retry what failed
  h             this help
  q             quit`

func (a *app) browseCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through orders interactively",
		Long:  "Page through orders interactively, one command per line.\n\n" + browseHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			ctx := a.ctx(cmd)
			v := orderview.NewListView(svc, orderview.WithPageSize(limit))
			defer v.Unmount()

			v.Mount(ctx)
			if err := a.showList(v); err != nil {
				return err
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(a.out, "> ")
				if !sc.Scan() {
					fmt.Fprintln(a.out)
					return sc.Err()
				}
				name, arg, _ := strings.Cut(strings.TrimSpace(sc.Text()), " ")
				if name == "q" || name == "quit" {
					return nil
				}
				if err := a.browseStep(ctx, v, name, strings.TrimSpace(arg)); err != nil {
					return err
				}
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Orders per page")
	return cmd
}

func (a *app) browseStep(ctx context.Context, v *orderview.ListView, name, arg string) error {
	switch name {
	case "":
		return nil
	case "n":
		return a.move(ctx, v, v.NextPage(), "no next page")
	case "p":
		return a.move(ctx, v, v.PrevPage(), "no previous page")
	case "g":
		n, err := strconv.Atoi(arg)
		return a.move(ctx, v, err == nil && v.GoToPage(n), "page out of range")
	case "f":
		v.SetStatusFilter(arg)
		v.Sync(ctx)
		return a.showList(v)
	case "s":
		v.Search(ctx, arg)
		return a.showList(v)
	case "v":
		if !v.ViewOrder(ctx, arg) {
			a.showNotice(v.State().DetailNotice)
			return nil
		}
		return a.printOrder(*v.State().Selected)
	case "e":
		if !v.OpenStatusEditor(ctx, arg) {
			a.showNotice(v.State().DetailNotice)
			return nil
		}
		o := v.State().Selected
		fmt.Fprintf(a.out, "changing %s (currently %s), allowed: %s\n", o.OrderNumber, o.Status, statusList())
		return nil
	case "set":
		status, msg, _ := strings.Cut(arg, " ")
		if !v.SubmitStatus(ctx, orders.Status(strings.ToLower(status)), msg) {
			a.showNotice(v.State().StatusError)
			return nil
		}
		upd := v.State().LastUpdate
		fmt.Fprintf(a.out, "order %s is now %s\n", upd.ID, upd.Status)
		return a.showList(v)
	case "c":
		if v.State().EditingStatus {
			v.CloseStatusEditor()
		} else {
			v.CloseDetail()
		}
		return nil
	case "r":
		if !v.Retry(ctx) {
			fmt.Fprintln(a.out, "nothing to retry")
			return nil
		}
		st := v.State()
		a.showNotice(st.DetailNotice)
		if st.DetailNotice == nil && st.ViewingDetail {
			if err := a.printOrder(*st.Selected); err != nil {
				return err
			}
		}
		return a.showList(v)
	case "h", "help":
		fmt.Fprintln(a.out, browseHelp)
		return nil
	default:
		fmt.Fprintf(a.out, "unknown command %q, h for help\n", name)
		return nil
	}
}

func (a *app) move(ctx context.Context, v *orderview.ListView, moved bool, refusal string) error {
	if !moved {
		fmt.Fprintln(a.out, refusal)
		return nil
	}
	v.Sync(ctx)
	return a.showList(v)
}

func (a *app) showList(v *orderview.ListView) error {
	st := v.State()
	if st.Notice != nil {
		a.showNotice(st.Notice)
		return nil
	}
	if st.SearchTerm != "" {
		fmt.Fprintf(a.out, "search %q\n", st.SearchTerm)
	} else if st.StatusFilter != orders.FilterAll {
		fmt.Fprintf(a.out, "status %s\n", st.StatusFilter)
	}
	return a.printPage(orders.Page{Orders: st.Orders, Pagination: st.Pagination})
}

func (a *app) showNotice(n *orderview.Notice) {
	if n == nil {
		return
	}
	if n.Retryable {
		fmt.Fprintf(a.out, "error: %s (r to retry)\n", n.Message)
		return
	}
	fmt.Fprintf(a.out, "error: %s\n", n.Message)
}
