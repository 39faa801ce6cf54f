package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/retailops/backoffice/internal/entity"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	Products interface {
		ContextStore
		// GetReportProducts returns catalog rows matching the
		// store-side report predicates (price range, stock status,
		// name search), ordered by product name. Category and date
		// conditions are applied by the caller.
		GetReportProducts(ctx context.Context, filter entity.ReportFilter) ([]entity.Product, error)
		GetProductByID(ctx context.Context, id int) (*entity.Product, error)
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error)
		// ReduceStock decrements stock for a product, failing when the
		// remaining quantity is insufficient.
		ReduceStock(ctx context.Context, productID, quantity int) error
		RestoreStock(ctx context.Context, productID, quantity int) error
	}

	Orders interface {
		ContextStore
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.OrderFull, error)
		GetOrderByNumber(ctx context.Context, number string) (*entity.OrderFull, error)
		ListOrdersPaged(ctx context.Context, limit, offset int, of entity.OrderFactor) ([]entity.Order, error)
		// GetOrderLinesWithDate returns every order line annotated
		// with its parent order's date; the date is nil when the
		// parent order cannot be resolved.
		GetOrderLinesWithDate(ctx context.Context) ([]entity.OrderLineWithDate, error)
	}

	Returns interface {
		ContextStore
		CreateReturn(ctx context.Context, ret *entity.ReturnNew) (*entity.Return, error)
		SetReturnStatus(ctx context.Context, id int, status entity.ReturnStatus) (*entity.Return, error)
		ListReturnsPaged(ctx context.Context, limit, offset int, of entity.OrderFactor) ([]entity.Return, error)
	}

	Shipments interface {
		UpsertShipment(ctx context.Context, orderNumber string, sn *entity.ShipmentNew) (*entity.Shipment, error)
		SetShipmentStatus(ctx context.Context, orderNumber string, status entity.ShipmentStatus) (*entity.Shipment, error)
		GetShipmentByOrder(ctx context.Context, orderNumber string) (*entity.Shipment, error)
	}

	// ReportSource is the slice of the repository the report engine
	// reads from.
	ReportSource interface {
		Products() Products
		Orders() Orders
	}

	Repository interface {
		Products() Products
		Orders() Orders
		Returns() Returns
		Shipments() Shipments
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrUniqueViolation(err error) bool
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// ReportExporter renders a computed report into a downloadable
	// document.
	ReportExporter interface {
		Export(report *entity.ProductReport, filter entity.ReportFilter) ([]byte, error)
	}
)
