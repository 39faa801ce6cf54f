package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/retailops/backoffice/internal/dependency"
	"github.com/retailops/backoffice/internal/entity"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing Products interface
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

// buildReportProductClauses translates the store-side report filter
// conditions into WHERE predicates. Category and date conditions are
// intentionally absent, they are applied over fetched rows.
func buildReportProductClauses(f entity.ReportFilter) ([]string, map[string]any) {
	var clauses []string
	params := map[string]any{}

	if f.MinPrice != nil {
		clauses = append(clauses, "price >= :minPrice")
		params["minPrice"] = f.MinPrice.String()
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, "price <= :maxPrice")
		params["maxPrice"] = f.MaxPrice.String()
	}

	switch f.StockStatus {
	case entity.OutOfStock:
		clauses = append(clauses, "stock_quantity = 0")
	case entity.LowStock:
		clauses = append(clauses, "stock_quantity > 0", "stock_quantity <= :lowStock")
		params["lowStock"] = entity.LowStockThreshold
	case entity.InStock:
		clauses = append(clauses, "stock_quantity > :lowStock")
		params["lowStock"] = entity.LowStockThreshold
	}

	if f.NameSearch != "" {
		clauses = append(clauses, "LOWER(name) LIKE :nameSearch")
		params["nameSearch"] = "%" + strings.ToLower(f.NameSearch) + "%"
	}

	return clauses, params
}

func (ms *MYSQLStore) GetReportProducts(ctx context.Context, filter entity.ReportFilter) ([]entity.Product, error) {
	query := `SELECT id, name, description, category, color, size, price, stock_quantity, image_url, created_at, updated_at FROM product`

	clauses, params := buildReportProductClauses(filter)
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	products, err := QueryListNamed[entity.Product](ctx, ms.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get report products: %w", err)
	}
	return products, nil
}

func (ms *MYSQLStore) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT id, name, description, category, color, size, price, stock_quantity, image_url, created_at, updated_at FROM product WHERE id = :id`
	product, err := QueryNamedOne[entity.Product](ctx, ms.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: id %d", id)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (ms *MYSQLStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error) {
	query := `INSERT INTO product
	(name, description, category, color, size, price, stock_quantity, image_url)
	VALUES (:name, :description, :category, :color, :size, :price, :stockQuantity, :imageUrl)`

	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"name":          prd.Name,
		"description":   prd.Description,
		"category":      prd.Category,
		"color":         prd.Color,
		"size":          prd.Size,
		"price":         prd.Price.String(),
		"stockQuantity": prd.StockQuantity,
		"imageUrl":      prd.ImageURL,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add product: %w", err)
	}
	return id, nil
}

// ReduceStock decrements the stock of a product. The guard in the WHERE
// clause keeps the quantity from going negative under concurrent orders.
func (ms *MYSQLStore) ReduceStock(ctx context.Context, productID, quantity int) error {
	query := `UPDATE product
	SET stock_quantity = stock_quantity - :quantity
	WHERE id = :id AND stock_quantity >= :quantity`

	affected, err := ExecNamedAffected(ctx, ms.DB(), query, map[string]any{
		"id":       productID,
		"quantity": quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to reduce stock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", productID, ErrInsufficientStock)
	}
	return nil
}

func (ms *MYSQLStore) RestoreStock(ctx context.Context, productID, quantity int) error {
	query := `UPDATE product SET stock_quantity = stock_quantity + :quantity WHERE id = :id`
	err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id":       productID,
		"quantity": quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	return nil
}
