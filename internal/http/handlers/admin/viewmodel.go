package admin

import (
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/orderview"
	"pehlione.com/admin/pkg/view"
	"pehlione.com/admin/templates/shared"
)

var statusLabel = shared.StatusLabel

func listItem(o orders.Order, q orderview.Query) view.AdminOrderListItem {
	return view.AdminOrderListItem{
		ID:          o.ID,
		Number:      o.OrderNumber,
		Customer:    o.CustomerName,
		Email:       o.CustomerEmail,
		Status:      string(o.Status),
		StatusLabel: statusLabel(string(o.Status)),
		Total:       view.Money(o.TotalAmount),
		ItemCount:   o.ItemCount,
		CreatedAt:   view.DateTime(o.CreatedAt),
		ViewURL:     view.ListURL(q.Page, q.Status, q.Term, "view", o.ID),
		EditURL:     view.ListURL(q.Page, q.Status, q.Term, "edit", o.ID),
	}
}

func listPage(v *orderview.ListView, retryURL string) view.AdminOrdersListPage {
	st := v.State()
	q := v.Query()
	pg := st.Pagination

	vm := view.AdminOrdersListPage{
		Q:           st.SearchTerm,
		Status:      st.StatusFilter,
		Statuses:    filterOptions(st.StatusFilter),
		Page:        st.Page,
		TotalPages:  max(pg.TotalPages, 1),
		TotalOrders: pg.TotalOrders,
		Empty:       v.IsEmpty(),
		Notice:      notice(st.Notice, retryURL),
		CloseURL:    view.ListURL(q.Page, q.Status, q.Term),

		DetailNotice: notice(st.DetailNotice, retryURL),
	}
	for _, o := range st.Orders {
		vm.Items = append(vm.Items, listItem(o, q))
	}
	if pg.HasPrevPage {
		vm.PrevURL = view.ListURL(st.Page-1, q.Status, q.Term)
	}
	if pg.HasNextPage {
		vm.NextURL = view.ListURL(st.Page+1, q.Status, q.Term)
	}
	if st.Selected != nil && st.ViewingDetail {
		vm.Detail = orderDetail(*st.Selected, q)
	}
	if st.EditingStatus {
		vm.Editor = statusEditor(st, "")
	}
	return vm
}

func orderDetail(o orders.Order, q orderview.Query) *view.AdminOrderDetail {
	d := &view.AdminOrderDetail{
		ID:              o.ID,
		Number:          o.OrderNumber,
		Status:          string(o.Status),
		StatusLabel:     statusLabel(string(o.Status)),
		Customer:        o.CustomerName,
		Email:           o.CustomerEmail,
		Phone:           o.CustomerPhone,
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       view.DateTime(o.CreatedAt),
		Total:           view.Money(o.TotalAmount),
		EditURL:         view.ListURL(q.Page, q.Status, q.Term, "view", o.ID, "edit", o.ID),
	}
	for _, it := range o.Items {
		d.Items = append(d.Items, view.AdminOrderItem{
			ProductName: it.Product.Name,
			SKU:         it.Product.SKU,
			Qty:         it.Quantity,
			Unit:        view.Money(it.Price),
			Line:        view.Money(it.LineTotal()),
		})
	}
	for _, e := range o.StatusHistory {
		d.Events = append(d.Events, view.AdminOrderEvent{
			Status: string(e.Status),
			Note:   e.Message,
			Admin:  e.AdminName,
			At:     view.DateTime(e.CreatedAt),
		})
	}
	return d
}

func statusEditor(st orderview.State, message string) *view.StatusEditor {
	ed := &view.StatusEditor{
		Message:      message,
		Error:        notice(st.StatusError, ""),
		Page:         st.Page,
		StatusFilter: st.StatusFilter,
		Q:            st.SearchTerm,
	}
	if o := st.Selected; o != nil {
		ed.OrderID = o.ID
		ed.Number = o.OrderNumber
		ed.Current = string(o.Status)
		ed.Action = "/admin/orders/" + o.ID + "/status"
	}
	for _, s := range orders.Statuses {
		ed.Options = append(ed.Options, view.StatusOption{
			Value:    string(s),
			Label:    statusLabel(string(s)),
			Selected: string(s) == ed.Current,
		})
	}
	return ed
}

func selectStatus(opts []view.StatusOption, value string) {
	for i := range opts {
		opts[i].Selected = opts[i].Value == value
	}
}

func filterOptions(current string) []view.StatusOption {
	out := []view.StatusOption{{Value: orders.FilterAll, Label: statusLabel(orders.FilterAll), Selected: current == orders.FilterAll}}
	for _, s := range orders.Statuses {
		out = append(out, view.StatusOption{Value: string(s), Label: statusLabel(string(s)), Selected: current == string(s)})
	}
	return out
}

func notice(n *orderview.Notice, retryURL string) *view.Notice {
	if n == nil {
		return nil
	}
	out := &view.Notice{Message: n.Message, Kind: string(n.Kind), Status: n.Status}
	if n.Retryable {
		out.RetryURL = retryURL
	}
	return out
}
