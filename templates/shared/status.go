package shared

import "strings"

// StatusLabel capitalises a status value for display: "shipped" -> "Shipped".
func StatusLabel(s string) string {
	if s == "" {
		return ""
	}
	if s == "all" {
		return "All statuses"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// StatusClass is the badge modifier class for a status.
func StatusClass(s string) string {
	switch s {
	case "pending":
		return "badge--warning"
	case "confirmed", "processing":
		return "badge--info"
	case "shipped":
		return "badge--primary"
	case "delivered":
		return "badge--success"
	case "cancelled":
		return "badge--danger"
	default:
		return "badge--muted"
	}
}
