package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

type shipmentStore struct {
	*MYSQLStore
}

// Shipments returns an object implementing Shipments interface
func (ms *MYSQLStore) Shipments() dependency.Shipments {
	return &shipmentStore{
		MYSQLStore: ms,
	}
}

// UpsertShipment creates the shipment record for an order or updates
// the carrier and tracking number of the existing one. One shipment
// per order.
func (ms *MYSQLStore) UpsertShipment(ctx context.Context, orderNumber string, sn *entity.ShipmentNew) (*entity.Shipment, error) {
	var shipment *entity.Shipment
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Orders().GetOrderByNumber(ctx, orderNumber)
		if err != nil {
			return err
		}

		err = ExecNamed(ctx, rep.DB(), `INSERT INTO shipment (order_id, carrier, tracking_number, status)
		VALUES (:orderId, :carrier, :trackingNumber, :status)
		ON DUPLICATE KEY UPDATE carrier = :carrier, tracking_number = :trackingNumber`,
			map[string]any{
				"orderId":        order.Order.ID,
				"carrier":        sn.Carrier,
				"trackingNumber": sn.TrackingNumber,
				"status":         entity.ShipmentPending,
			})
		if err != nil {
			return fmt.Errorf("failed to upsert shipment: %w", err)
		}

		shipment, err = getShipmentByOrderIDTx(ctx, rep, order.Order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// SetShipmentStatus advances a shipment and stamps shipped_at or
// delivered_at accordingly. The order status follows the shipment.
func (ms *MYSQLStore) SetShipmentStatus(ctx context.Context, orderNumber string, status entity.ShipmentStatus) (*entity.Shipment, error) {
	var shipment *entity.Shipment
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Orders().GetOrderByNumber(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.Shipment == nil {
			return fmt.Errorf("order %s has no shipment", orderNumber)
		}
		if !entity.CanTransitionShipment(order.Shipment.Status, status) {
			return fmt.Errorf("shipment for order %s: cannot move from %s to %s",
				orderNumber, order.Shipment.Status, status)
		}

		now := rep.Now()
		params := map[string]any{
			"status":  status,
			"orderId": order.Order.ID,
			"now":     now,
		}
		var query string
		var orderStatus entity.OrderStatus
		switch status {
		case entity.ShipmentShipped:
			query = `UPDATE shipment SET status = :status, shipped_at = :now WHERE order_id = :orderId`
			orderStatus = entity.OrderShipped
		case entity.ShipmentDelivered:
			query = `UPDATE shipment SET status = :status, delivered_at = :now WHERE order_id = :orderId`
			orderStatus = entity.OrderDelivered
		default:
			query = `UPDATE shipment SET status = :status WHERE order_id = :orderId`
		}
		if err := ExecNamed(ctx, rep.DB(), query, params); err != nil {
			return fmt.Errorf("failed to update shipment status: %w", err)
		}

		if orderStatus != "" {
			err = ExecNamed(ctx, rep.DB(), `UPDATE customer_order SET status = :status, modified = :now WHERE id = :id`,
				map[string]any{
					"status": orderStatus,
					"now":    now,
					"id":     order.Order.ID,
				})
			if err != nil {
				return fmt.Errorf("failed to update order status: %w", err)
			}
		}

		shipment, err = getShipmentByOrderIDTx(ctx, rep, order.Order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

func (ms *MYSQLStore) GetShipmentByOrder(ctx context.Context, orderNumber string) (*entity.Shipment, error) {
	order, err := ms.Orders().GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Shipment == nil {
		return nil, fmt.Errorf("order %s has no shipment", orderNumber)
	}
	return order.Shipment, nil
}

// getShipmentByOrderID returns nil without an error when the order has
// no shipment yet.
func (ms *MYSQLStore) getShipmentByOrderID(ctx context.Context, orderID int) (*entity.Shipment, error) {
	shipment, err := QueryNamedOne[entity.Shipment](ctx, ms.DB(),
		`SELECT * FROM shipment WHERE order_id = :orderId`,
		map[string]any{"orderId": orderID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	return &shipment, nil
}

func getShipmentByOrderIDTx(ctx context.Context, rep dependency.Repository, orderID int) (*entity.Shipment, error) {
	shipment, err := QueryNamedOne[entity.Shipment](ctx, rep.DB(),
		`SELECT * FROM shipment WHERE order_id = :orderId`,
		map[string]any{"orderId": orderID})
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	return &shipment, nil
}
