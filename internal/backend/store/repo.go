package store

import (
	"context"
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrDuplicate = errors.New("order number already exists")
)

const mysqlDupEntry = 1062

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

type ListParams struct {
	Q        string // matched against number and customer fields
	Status   string
	Page     int
	PageSize int
}

type ListResult struct {
	Items      []Order
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	size := in.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	base := r.db.WithContext(ctx).Model(&Order{})
	if status := strings.TrimSpace(in.Status); status != "" {
		base = base.Where("status = ?", status)
	}
	if q := strings.ToLower(strings.TrimSpace(in.Q)); q != "" {
		like := "%" + q + "%"
		base = base.Where(
			"(LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR LOWER(customer_email) LIKE ? OR customer_phone LIKE ?)",
			like, like, like, like,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	// page is clamped so the response never points outside [1, totalPages]
	totalPages := pagesFromTotal(total, size)
	page := in.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	var items []Order
	if err := base.
		Order("created_at DESC").
		Order("id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return ListResult{}, err
	}

	return ListResult{Items: items, Total: total, Page: page, PageSize: size, TotalPages: totalPages}, nil
}

// Get loads an order with its items and status history.
func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Events", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC").Order("id ASC") }).
		First(&o, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// Create inserts an order together with its items and events.
func (r *Repo) Create(ctx context.Context, o *Order) error {
	err := r.db.WithContext(ctx).Create(o).Error
	if isDuplicateKey(err) {
		return ErrDuplicate
	}
	return err
}

// isDuplicateKey recognises unique violations from every supported driver.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDupEntry {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}

func pagesFromTotal(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	p := int((total + int64(size) - 1) / int64(size))
	if p < 1 {
		return 1
	}
	return p
}
