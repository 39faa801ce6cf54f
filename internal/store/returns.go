package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

type returnStore struct {
	*MYSQLStore
}

// Returns returns an object implementing Returns interface
func (ms *MYSQLStore) Returns() dependency.Returns {
	return &returnStore{
		MYSQLStore: ms,
	}
}

// CreateReturn records a return request against an existing order line.
// The refund amount defaults to quantity * unit price of the line when
// the caller leaves it zero.
func (ms *MYSQLStore) CreateReturn(ctx context.Context, ret *entity.ReturnNew) (*entity.Return, error) {
	var created *entity.Return
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := rep.Orders().GetOrderByNumber(ctx, ret.OrderNumber)
		if err != nil {
			return err
		}

		var line *entity.OrderLine
		for i := range order.Lines {
			if order.Lines[i].ProductID == ret.ProductID {
				line = &order.Lines[i]
				break
			}
		}
		if line == nil {
			return fmt.Errorf("order %s has no line for product %d", ret.OrderNumber, ret.ProductID)
		}
		if ret.Quantity <= 0 || ret.Quantity > line.Quantity {
			return fmt.Errorf("return quantity %d out of range for product %d", ret.Quantity, ret.ProductID)
		}

		refund := ret.RefundAmount
		if refund.IsZero() {
			refund = line.UnitPrice.Mul(decimal.NewFromInt(int64(ret.Quantity)))
		}

		now := rep.Now()
		id, err := ExecNamedLastId(ctx, rep.DB(), `INSERT INTO order_return
		(order_id, product_id, quantity, reason, status, refund_amount, created_at, modified)
		VALUES (:orderId, :productId, :quantity, :reason, :status, :refundAmount, :createdAt, :modified)`,
			map[string]any{
				"orderId":      order.Order.ID,
				"productId":    ret.ProductID,
				"quantity":     ret.Quantity,
				"reason":       ret.Reason,
				"status":       entity.ReturnRequested,
				"refundAmount": refund.String(),
				"createdAt":    now,
				"modified":     now,
			})
		if err != nil {
			return fmt.Errorf("failed to insert return: %w", err)
		}

		created, err = getReturnByID(ctx, rep, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// SetReturnStatus moves a return through its lifecycle. Refunded
// returns put the quantity back in stock.
func (ms *MYSQLStore) SetReturnStatus(ctx context.Context, id int, status entity.ReturnStatus) (*entity.Return, error) {
	var updated *entity.Return
	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		ret, err := getReturnByID(ctx, rep, id)
		if err != nil {
			return err
		}
		if !entity.CanTransitionReturn(ret.Status, status) {
			return fmt.Errorf("return %d: cannot move from %s to %s", id, ret.Status, status)
		}

		err = ExecNamed(ctx, rep.DB(), `UPDATE order_return SET status = :status, modified = :modified WHERE id = :id`,
			map[string]any{
				"status":   status,
				"modified": rep.Now(),
				"id":       id,
			})
		if err != nil {
			return fmt.Errorf("failed to update return status: %w", err)
		}

		if status == entity.ReturnRefunded {
			if err := rep.Products().RestoreStock(ctx, ret.ProductID, ret.Quantity); err != nil {
				return err
			}
		}

		updated, err = getReturnByID(ctx, rep, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (ms *MYSQLStore) ListReturnsPaged(ctx context.Context, limit, offset int, of entity.OrderFactor) ([]entity.Return, error) {
	query := fmt.Sprintf(`SELECT r.id, r.order_id, co.number AS order_number, r.product_id, r.quantity,
	r.reason, r.status, r.refund_amount, r.created_at, r.modified
	FROM order_return r
	JOIN customer_order co ON co.id = r.order_id
	ORDER BY r.created_at %s LIMIT :limit OFFSET :offset`, of.String())

	returns, err := QueryListNamed[entity.Return](ctx, ms.DB(), query, map[string]any{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list returns: %w", err)
	}
	return returns, nil
}

func getReturnByID(ctx context.Context, rep dependency.Repository, id int) (*entity.Return, error) {
	ret, err := QueryNamedOne[entity.Return](ctx, rep.DB(), `SELECT r.id, r.order_id, co.number AS order_number,
	r.product_id, r.quantity, r.reason, r.status, r.refund_amount, r.created_at, r.modified
	FROM order_return r
	JOIN customer_order co ON co.id = r.order_id
	WHERE r.id = :id`, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("return not found: id %d", id)
		}
		return nil, fmt.Errorf("failed to get return: %w", err)
	}
	return &ret, nil
}
