package form

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/entity"
)

// OrderLineRequest is one line of an order entry payload.
type OrderLineRequest struct {
	ProductID int     `json:"productId" valid:"required"`
	Quantity  int     `json:"quantity" valid:"required"`
	UnitPrice *string `json:"unitPrice,omitempty" valid:"-"`
}

// OrderRequest is the order entry payload.
type OrderRequest struct {
	CustomerName  string             `json:"customerName" valid:"required"`
	CustomerEmail *string            `json:"customerEmail,omitempty" valid:"-"`
	Lines         []OrderLineRequest `json:"lines" valid:"-"`
}

// Validate checks the payload and converts it to the store input.
func (r *OrderRequest) Validate() (*entity.OrderNew, error) {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return nil, err
	}
	if r.CustomerEmail != nil && *r.CustomerEmail != "" && !govalidator.IsEmail(*r.CustomerEmail) {
		return nil, fmt.Errorf("invalid customer email")
	}
	if len(r.Lines) == 0 {
		return nil, fmt.Errorf("order requires at least one line")
	}

	on := &entity.OrderNew{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
	}
	for _, l := range r.Lines {
		if l.Quantity <= 0 {
			return nil, fmt.Errorf("product %d: quantity must be positive", l.ProductID)
		}
		li := entity.OrderLineInsert{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		}
		if l.UnitPrice != nil && *l.UnitPrice != "" {
			price, err := decimal.NewFromString(*l.UnitPrice)
			if err != nil || price.IsNegative() {
				return nil, fmt.Errorf("product %d: invalid unit price %q", l.ProductID, *l.UnitPrice)
			}
			li.UnitPrice = price
		}
		on.Lines = append(on.Lines, li)
	}
	return on, nil
}

// ReturnRequest is the return creation payload.
type ReturnRequest struct {
	OrderNumber  string  `json:"orderNumber" valid:"required"`
	ProductID    int     `json:"productId" valid:"required"`
	Quantity     int     `json:"quantity" valid:"required"`
	Reason       string  `json:"reason" valid:"required"`
	RefundAmount *string `json:"refundAmount,omitempty" valid:"-"`
}

func (r *ReturnRequest) Validate() (*entity.ReturnNew, error) {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return nil, err
	}
	if r.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	rn := &entity.ReturnNew{
		OrderNumber: r.OrderNumber,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		Reason:      r.Reason,
	}
	if r.RefundAmount != nil && *r.RefundAmount != "" {
		amount, err := decimal.NewFromString(*r.RefundAmount)
		if err != nil || amount.IsNegative() {
			return nil, fmt.Errorf("invalid refund amount %q", *r.RefundAmount)
		}
		rn.RefundAmount = amount
	}
	return rn, nil
}

// ShipmentRequest is the shipment creation payload.
type ShipmentRequest struct {
	Carrier        string  `json:"carrier" valid:"required"`
	TrackingNumber *string `json:"trackingNumber,omitempty" valid:"-"`
}

func (r *ShipmentRequest) Validate() (*entity.ShipmentNew, error) {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return nil, err
	}
	return &entity.ShipmentNew{
		Carrier:        r.Carrier,
		TrackingNumber: r.TrackingNumber,
	}, nil
}

// StatusRequest carries a bare status transition.
type StatusRequest struct {
	Status string `json:"status" valid:"required"`
}

func (r *StatusRequest) Validate() error {
	_, err := govalidator.ValidateStruct(r)
	return err
}
