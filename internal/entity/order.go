package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order represents the customer_order table.
type Order struct {
	ID            int             `db:"id" json:"-"`
	Number        string          `db:"number" json:"orderNumber"`
	CustomerName  string          `db:"customer_name" json:"customerName"`
	CustomerEmail *string         `db:"customer_email" json:"customerEmail,omitempty"`
	Status        OrderStatus     `db:"status" json:"status"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
	OrderDate     time.Time       `db:"order_date" json:"orderDate"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	Modified      time.Time       `db:"modified" json:"modified"`
}

// OrderLine represents one product line within an order. Subtotal is
// computed at insert time as quantity * unit_price and trusted as given
// by all downstream consumers.
type OrderLine struct {
	ID        int             `db:"id" json:"-"`
	OrderID   int             `db:"order_id" json:"-"`
	ProductID int             `db:"product_id" json:"productId"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
}

// OrderLineWithDate is an order line annotated with its parent order's
// date. OrderDate is nil when the parent order cannot be resolved.
type OrderLineWithDate struct {
	OrderLine
	OrderDate *time.Time `db:"order_date" json:"orderDate,omitempty"`
}

type OrderLineInsert struct {
	ProductID int             `valid:"required"`
	Quantity  int             `valid:"required"`
	UnitPrice decimal.Decimal `valid:"-"`
}

type OrderNew struct {
	CustomerName  string            `valid:"required"`
	CustomerEmail *string           `valid:"email,optional"`
	Lines         []OrderLineInsert `valid:"required"`
}

type OrderFull struct {
	Order    Order       `json:"order"`
	Lines    []OrderLine `json:"lines"`
	Shipment *Shipment   `json:"shipment,omitempty"`
}

type ReturnStatus string

const (
	ReturnRequested ReturnStatus = "requested"
	ReturnApproved  ReturnStatus = "approved"
	ReturnRefunded  ReturnStatus = "refunded"
	ReturnRejected  ReturnStatus = "rejected"
)

// returnTransitions lists the allowed status moves for a return.
var returnTransitions = map[ReturnStatus][]ReturnStatus{
	ReturnRequested: {ReturnApproved, ReturnRejected},
	ReturnApproved:  {ReturnRefunded, ReturnRejected},
}

func CanTransitionReturn(from, to ReturnStatus) bool {
	for _, next := range returnTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Return represents the order_return table.
type Return struct {
	ID           int             `db:"id" json:"returnId"`
	OrderID      int             `db:"order_id" json:"-"`
	OrderNumber  string          `db:"order_number" json:"orderNumber"`
	ProductID    int             `db:"product_id" json:"productId"`
	Quantity     int             `db:"quantity" json:"quantity"`
	Reason       string          `db:"reason" json:"reason"`
	Status       ReturnStatus    `db:"status" json:"status"`
	RefundAmount decimal.Decimal `db:"refund_amount" json:"refundAmount"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	Modified     time.Time       `db:"modified" json:"modified"`
}

type ReturnNew struct {
	OrderNumber  string          `valid:"required"`
	ProductID    int             `valid:"required"`
	Quantity     int             `valid:"required"`
	Reason       string          `valid:"required"`
	RefundAmount decimal.Decimal `valid:"-"`
}

type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentShipped   ShipmentStatus = "shipped"
	ShipmentDelivered ShipmentStatus = "delivered"
)

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentPending: {ShipmentShipped},
	ShipmentShipped: {ShipmentDelivered},
}

func CanTransitionShipment(from, to ShipmentStatus) bool {
	for _, next := range shipmentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Shipment represents the shipment table, one per order.
type Shipment struct {
	ID             int            `db:"id" json:"-"`
	OrderID        int            `db:"order_id" json:"-"`
	Carrier        string         `db:"carrier" json:"carrier"`
	TrackingNumber *string        `db:"tracking_number" json:"trackingNumber,omitempty"`
	Status         ShipmentStatus `db:"status" json:"status"`
	ShippedAt      *time.Time     `db:"shipped_at" json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time     `db:"delivered_at" json:"deliveredAt,omitempty"`
}

type ShipmentNew struct {
	Carrier        string  `valid:"required"`
	TrackingNumber *string `valid:"-"`
}
