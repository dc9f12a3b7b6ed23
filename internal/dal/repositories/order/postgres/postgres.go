package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/order"
	"github.com/fooddash/marketplace/internal/service/models/orderitem"
	"github.com/jackc/pgx/v5"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id              int64        `db:"id"`
	BuyerId         int64        `db:"buyer_id"`
	SellerId        int64        `db:"seller_id"`
	DriverId        *int64       `db:"driver_id"`
	OrderNumber     string       `db:"order_number"`
	Status          string       `db:"status"`
	Subtotal        money.Amount `db:"subtotal"`
	DeliveryFee     money.Amount `db:"delivery_fee"`
	TotalAmount     money.Amount `db:"total_amount"`
	DeliveryAddress string       `db:"delivery_address"`
	DeliveryPhone   string       `db:"delivery_phone"`
	DeliveryNotes   string       `db:"delivery_notes"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	DeliveredAt     *time.Time   `db:"delivered_at"`
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:              o.Id,
		BuyerID:         o.BuyerId,
		SellerID:        o.SellerId,
		DriverID:        o.DriverId,
		OrderNumber:     o.OrderNumber,
		Status:          status,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		DeliveryPhone:   o.DeliveryPhone,
		DeliveryNotes:   o.DeliveryNotes,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		DeliveredAt:     o.DeliveredAt,
		Items:           []orderitem.OrderItem{}, // Populated separately
	}, nil
}

var orderColumns = []string{
	"id",
	"buyer_id",
	"seller_id",
	"driver_id",
	"order_number",
	"status",
	"subtotal",
	"delivery_fee",
	"total_amount",
	"delivery_address",
	"delivery_phone",
	"delivery_notes",
	"created_at",
	"updated_at",
	"delivered_at",
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanOrder(row pgx.Row) (*order.Order, error) {
	var dal OrderDal
	err := row.Scan(
		&dal.Id,
		&dal.BuyerId,
		&dal.SellerId,
		&dal.DriverId,
		&dal.OrderNumber,
		&dal.Status,
		&dal.Subtotal,
		&dal.DeliveryFee,
		&dal.TotalAmount,
		&dal.DeliveryAddress,
		&dal.DeliveryPhone,
		&dal.DeliveryNotes,
		&dal.CreatedAt,
		&dal.UpdatedAt,
		&dal.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists a new order and returns it with generated fields.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	query, args, err := r.sb.Insert("orders").
		Columns(
			"buyer_id",
			"seller_id",
			"order_number",
			"status",
			"subtotal",
			"delivery_fee",
			"total_amount",
			"delivery_address",
			"delivery_phone",
			"delivery_notes",
		).
		Values(
			o.BuyerID,
			o.SellerID,
			o.OrderNumber,
			o.Status,
			o.Subtotal,
			o.DeliveryFee,
			o.TotalAmount,
			o.DeliveryAddress,
			o.DeliveryPhone,
			o.DeliveryNotes,
		).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves an order by its id.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	o, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("order with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return o, nil
}

// UpdateStatus persists a status transition.
func (r *PostgresOrderRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status order.Status,
	deliveredAt *time.Time,
) (*order.Order, error) {
	builder := r.sb.Update("orders").
		Set("status", status).
		Set("updated_at", time.Now())

	if deliveredAt != nil {
		builder = builder.Set("delivered_at", *deliveredAt)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanOrder(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("order with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return updated, nil
}

func (r *PostgresOrderRepository) applyFilter(builder sq.SelectBuilder, filter *order.QueryOrdersModel) sq.SelectBuilder {
	if filter.BuyerID != 0 {
		builder = builder.Where(sq.Eq{"buyer_id": filter.BuyerID})
	}
	if filter.SellerID != 0 {
		builder = builder.Where(sq.Eq{"seller_id": filter.SellerID})
	}
	if filter.DriverID != 0 {
		builder = builder.Where(sq.Eq{"driver_id": filter.DriverID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.OrderNumber != "" {
		builder = builder.Where(sq.ILike{"order_number": "%" + filter.OrderNumber + "%"})
	}
	if filter.MinAmount != nil {
		builder = builder.Where(sq.GtOrEq{"total_amount": *filter.MinAmount})
	}
	if filter.MaxAmount != nil {
		builder = builder.Where(sq.LtOrEq{"total_amount": *filter.MaxAmount})
	}
	if filter.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.EndDate})
	}

	return builder
}

var orderSortFields = map[string]string{
	"created_at":   "created_at",
	"total_amount": "total_amount",
	"status":       "status",
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.applyFilter(r.sb.Select(orderColumns...).From("orders"), filter)
	builder = builder.OrderBy(orderByClause(orderSortFields, filter.SortBy, filter.SortOrder))

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	result := []order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of orders matching the filter.
func (r *PostgresOrderRepository) Count(ctx context.Context, filter *order.QueryOrdersModel) (int64, error) {
	query, args, err := r.applyFilter(r.sb.Select("COUNT(*)").From("orders"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

// orderByClause maps a requested sort onto a whitelisted column.
func orderByClause(allowed map[string]string, sortBy, sortOrder string) string {
	column, ok := allowed[sortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}
