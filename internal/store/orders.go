package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

var ErrOrderNotFound = errors.New("order not found")

type orderStore struct {
	*MYSQLStore
}

// Orders returns an object implementing Orders interface
func (ms *MYSQLStore) Orders() dependency.Orders {
	return &orderStore{
		MYSQLStore: ms,
	}
}

// CreateOrder inserts the order with its lines, reduces product stock
// per line and totals the order, all in one transaction.
func (ms *MYSQLStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.OrderFull, error) {
	var full *entity.OrderFull
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		number := uuid.New().String()
		now := rep.Now()

		orderID, err := ExecNamedLastId(ctx, rep.DB(), `INSERT INTO customer_order
		(number, customer_name, customer_email, status, total_amount, order_date, created_at, modified)
		VALUES (:number, :customerName, :customerEmail, :status, 0, :orderDate, :createdAt, :modified)`,
			map[string]any{
				"number":        number,
				"customerName":  orderNew.CustomerName,
				"customerEmail": orderNew.CustomerEmail,
				"status":        entity.OrderPlaced,
				"orderDate":     now,
				"createdAt":     now,
				"modified":      now,
			})
		if err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}

		total := decimal.Zero
		rows := make([]map[string]any, 0, len(orderNew.Lines))
		for _, l := range orderNew.Lines {
			if l.Quantity <= 0 {
				return fmt.Errorf("product %d: quantity must be positive", l.ProductID)
			}
			unitPrice := l.UnitPrice
			if unitPrice.IsZero() {
				prd, err := rep.Products().GetProductByID(ctx, l.ProductID)
				if err != nil {
					return err
				}
				unitPrice = prd.Price
			}
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
			total = total.Add(subtotal)

			if err := rep.Products().ReduceStock(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}

			rows = append(rows, map[string]any{
				"order_id":   orderID,
				"product_id": l.ProductID,
				"quantity":   l.Quantity,
				"unit_price": unitPrice.String(),
				"subtotal":   subtotal.String(),
			})
		}

		if err := BulkInsert(ctx, rep.DB(), "order_line", rows); err != nil {
			return fmt.Errorf("failed to insert order lines: %w", err)
		}

		err = ExecNamed(ctx, rep.DB(), `UPDATE customer_order SET total_amount = :total WHERE id = :id`,
			map[string]any{
				"total": total.String(),
				"id":    orderID,
			})
		if err != nil {
			return fmt.Errorf("failed to set order total: %w", err)
		}

		full, err = rep.Orders().GetOrderByNumber(ctx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return full, nil
}

func (ms *MYSQLStore) GetOrderByNumber(ctx context.Context, number string) (*entity.OrderFull, error) {
	order, err := QueryNamedOne[entity.Order](ctx, ms.DB(),
		`SELECT * FROM customer_order WHERE number = :number`,
		map[string]any{"number": number})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, number)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lines, err := QueryListNamed[entity.OrderLine](ctx, ms.DB(),
		`SELECT * FROM order_line WHERE order_id = :orderId`,
		map[string]any{"orderId": order.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}

	shipment, err := ms.getShipmentByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &entity.OrderFull{
		Order:    order,
		Lines:    lines,
		Shipment: shipment,
	}, nil
}

func (ms *MYSQLStore) ListOrdersPaged(ctx context.Context, limit, offset int, of entity.OrderFactor) ([]entity.Order, error) {
	query := fmt.Sprintf(`SELECT * FROM customer_order ORDER BY order_date %s LIMIT :limit OFFSET :offset`, of.String())
	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrderLinesWithDate returns every order line with its parent
// order's date. The LEFT JOIN keeps lines whose order row is missing,
// those carry a NULL date.
func (ms *MYSQLStore) GetOrderLinesWithDate(ctx context.Context) ([]entity.OrderLineWithDate, error) {
	query := `SELECT ol.id, ol.order_id, ol.product_id, ol.quantity, ol.unit_price, ol.subtotal, co.order_date
	FROM order_line ol
	LEFT JOIN customer_order co ON co.id = ol.order_id`

	lines, err := QueryListNamed[entity.OrderLineWithDate](ctx, ms.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	return lines, nil
}
