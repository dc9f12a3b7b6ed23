package postgresrepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64        `db:"id"`
	OrderId   int64        `db:"order_id"`
	FoodId    int64        `db:"food_id"`
	FoodName  string       `db:"food_name"`
	Quantity  int          `db:"quantity"`
	UnitPrice money.Amount `db:"unit_price"`
	Subtotal  money.Amount `db:"subtotal"`
	CreatedAt time.Time    `db:"created_at"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		FoodID:    oi.FoodId,
		FoodName:  oi.FoodName,
		Quantity:  oi.Quantity,
		UnitPrice: oi.UnitPrice,
		Subtotal:  oi.Subtotal,
		CreatedAt: oi.CreatedAt,
	}
}

var orderItemColumns = []string{
	"id",
	"order_id",
	"food_id",
	"food_name",
	"quantity",
	"unit_price",
	"subtotal",
	"created_at",
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.Conn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrderItem(row pgx.Row) (*orderitem.OrderItem, error) {
	var dal OrderItemDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.FoodId,
		&dal.FoodName,
		&dal.Quantity,
		&dal.UnitPrice,
		&dal.Subtotal,
		&dal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// BulkInsert persists the item snapshots of one order.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(items) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.Insert("order_items").
		Columns("order_id", "food_id", "food_name", "quantity", "unit_price", "subtotal")
	for _, item := range items {
		builder = builder.Values(
			item.OrderID,
			item.FoodID,
			item.FoodName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		)
	}

	query, args, err := builder.
		Suffix("RETURNING " + strings.Join(orderItemColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(items))
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByOrderIDs returns all items belonging to the given orders.
func (r *PostgresOrderItemRepository) QueryByOrderIDs(
	ctx context.Context,
	orderIDs []int64,
) ([]orderitem.OrderItem, error) {
	if len(orderIDs) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	query, args, err := r.sb.Select(orderItemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	result := []orderitem.OrderItem{}
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
