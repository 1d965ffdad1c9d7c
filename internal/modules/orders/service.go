package orders

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// API is the subset of the REST client the service needs.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// Service exposes the order endpoints as typed calls. Each call is one round
// trip and returns the client's *apperr.AppError untouched on failure.
type Service struct {
	api API
}

func NewService(api API) *Service { return &Service{api: api} }

type ListParams struct {
	Page     int
	PageSize int
	Status   string // a Status value, FilterAll or empty
}

type statusBody struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

func (s *Service) ListOrders(ctx context.Context, in ListParams) (Page, error) {
	q := pageQuery(in.Page, in.PageSize)
	if st := strings.TrimSpace(in.Status); st != "" && st != FilterAll {
		q.Set("status", st)
	}

	var out Page
	if err := s.api.Get(ctx, "/orders", q, &out); err != nil {
		return Page{}, err
	}
	return out, nil
}

func (s *Service) SearchOrders(ctx context.Context, term string, page, pageSize int) (Page, error) {
	q := pageQuery(page, pageSize)
	q.Set("search", term)

	var out Page
	if err := s.api.Get(ctx, "/orders/search", q, &out); err != nil {
		return Page{}, err
	}
	return out, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (Order, error) {
	var out Order
	if err := s.api.Get(ctx, "/orders/"+url.PathEscape(id), nil, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

// UpdateOrderStatus asks the backend for a transition. Whether it is legal is
// decided there.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status Status, message string) (StatusUpdate, error) {
	var out StatusUpdate
	body := statusBody{Status: status, Message: message}
	if err := s.api.Put(ctx, "/orders/"+url.PathEscape(id)+"/status", body, &out); err != nil {
		return StatusUpdate{}, err
	}
	return out, nil
}

func (s *Service) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	if err := s.api.Get(ctx, "/orders/dashboard", nil, &out); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

func (s *Service) GetOrderStats(ctx context.Context) (OrderStats, error) {
	var out OrderStats
	if err := s.api.Get(ctx, "/orders/stats", nil, &out); err != nil {
		return OrderStats{}, err
	}
	return out, nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}
	return q
}
