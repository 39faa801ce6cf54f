package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a row of the product catalog.
type Product struct {
	ID            int             `db:"id" json:"productId"`
	Name          string          `db:"name" json:"productName"`
	Description   *string         `db:"description" json:"description,omitempty"`
	Category      *string         `db:"category" json:"category,omitempty"`
	Color         *string         `db:"color" json:"color,omitempty"`
	Size          *string         `db:"size" json:"size,omitempty"`
	Price         decimal.Decimal `db:"price" json:"price"`
	StockQuantity int             `db:"stock_quantity" json:"stockQuantity"`
	ImageURL      *string         `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt     *time.Time      `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt     *time.Time      `db:"updated_at" json:"updatedAt,omitempty"`
}

// ProductInsert is the payload for adding a catalog row.
type ProductInsert struct {
	Name          string          `valid:"required"`
	Description   *string         `valid:"-"`
	Category      *string         `valid:"-"`
	Color         *string         `valid:"-"`
	Size          *string         `valid:"-"`
	Price         decimal.Decimal `valid:"-"`
	StockQuantity int             `valid:"-"`
	ImageURL      *string         `valid:"-"`
}

type StockStatus string

const (
	StockAll   StockStatus = "all"
	OutOfStock StockStatus = "out_of_stock"
	LowStock   StockStatus = "low_stock"
	InStock    StockStatus = "in_stock"
)

// LowStockThreshold is the stock quantity at or below which a product
// counts as low stock (exclusive of zero, which is out of stock).
const LowStockThreshold = 10

var validStockStatuses = map[StockStatus]bool{
	StockAll:   true,
	OutOfStock: true,
	LowStock:   true,
	InStock:    true,
}

func IsValidStockStatus(s StockStatus) bool {
	return validStockStatuses[s]
}

type OrderFactor string

const (
	Ascending  OrderFactor = "ASC"
	Descending OrderFactor = "DESC"
)

func (of *OrderFactor) String() string {
	if of != nil && *of == Descending {
		return "DESC"
	}
	return "ASC"
}
