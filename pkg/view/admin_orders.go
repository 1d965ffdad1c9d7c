package view

type AdminOrderListItem struct {
	ID          string `json:"id"`
	Number      string `json:"order_number"`
	Customer    string `json:"customer_name"`
	Email       string `json:"customer_email"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	Total       string `json:"total"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
	ViewURL     string `json:"-"`
	EditURL     string `json:"-"`
}

type StatusOption struct {
	Value    string
	Label    string
	Selected bool
}

// Notice is an inline message shown next to the data it concerns.
type Notice struct {
	Message  string `json:"message"`
	Kind     string `json:"kind"`
	Status   int    `json:"status,omitempty"`
	RetryURL string `json:"retry_url,omitempty"`
}

type AdminOrdersListPage struct {
	Items       []AdminOrderListItem `json:"orders"`
	Q           string               `json:"q"`
	Status      string               `json:"status"`
	Statuses    []StatusOption       `json:"-"`
	Page        int                  `json:"page"`
	TotalPages  int                  `json:"total_pages"`
	TotalOrders int64                `json:"total_orders"`
	PrevURL     string               `json:"-"`
	NextURL     string               `json:"-"`
	Empty       bool                 `json:"empty"`
	Notice      *Notice              `json:"notice,omitempty"`

	// DetailNotice reports a failed order load for the view or edit dialog.
	DetailNotice *Notice `json:"detail_notice,omitempty"`

	Detail *AdminOrderDetail `json:"detail,omitempty"`
	Editor *StatusEditor     `json:"editor,omitempty"`

	// CloseURL returns to the list without any dialog open.
	CloseURL string `json:"-"`
}

type AdminOrderItem struct {
	ProductName string `json:"product_name"`
	SKU         string `json:"sku,omitempty"`
	Qty         int    `json:"quantity"`
	Unit        string `json:"unit_price"`
	Line        string `json:"line_total"`
}

type AdminOrderEvent struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
	Admin  string `json:"admin_name,omitempty"`
	At     string `json:"at"`
}

type AdminOrderDetail struct {
	ID              string `json:"id"`
	Number          string `json:"order_number"`
	Status          string `json:"status"`
	StatusLabel     string `json:"status_label"`
	Customer        string `json:"customer_name"`
	Email           string `json:"customer_email"`
	Phone           string `json:"customer_phone,omitempty"`
	ShippingAddress string `json:"shipping_address,omitempty"`
	CreatedAt       string `json:"created_at"`
	Total           string `json:"total"`
	EditURL         string `json:"-"`

	Items  []AdminOrderItem  `json:"items"`
	Events []AdminOrderEvent `json:"events"`
}

// StatusEditor is the status dialog. Hidden fields carry the list position
// so the redirect after a successful update lands on the same page.
type StatusEditor struct {
	OrderID     string            `json:"order_id"`
	Number      string            `json:"order_number"`
	Current     string            `json:"current_status"`
	Options     []StatusOption    `json:"-"`
	Message     string            `json:"message,omitempty"`
	Error       *Notice           `json:"error,omitempty"`
	FieldErrors map[string]string `json:"fields,omitempty"`
	Action      string            `json:"-"`

	Page         int    `json:"-"`
	StatusFilter string `json:"-"`
	Q            string `json:"-"`
}
