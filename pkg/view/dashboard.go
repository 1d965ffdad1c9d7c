package view

type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type StatusCount struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Count  int64  `json:"count"`
}

// WidgetView is one independently loaded dashboard block.
type WidgetView struct {
	State  string  `json:"state"` // loading | ready | failed
	Notice *Notice `json:"notice,omitempty"`
}

type DashboardPage struct {
	Admin string `json:"admin"`

	Summary WidgetView           `json:"summary"`
	Cards   []StatCard           `json:"cards,omitempty"`
	Recent  []AdminOrderListItem `json:"recent_orders,omitempty"`

	Breakdown WidgetView    `json:"breakdown"`
	Revenue   string        `json:"revenue,omitempty"`
	Average   string        `json:"average_order_value,omitempty"`
	Counts    []StatusCount `json:"status_counts,omitempty"`
}
