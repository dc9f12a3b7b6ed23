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
	"github.com/fooddash/marketplace/internal/service/models/payment"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// PaymentDal represents payment data access layer model.
type PaymentDal struct {
	Id            int64        `db:"id"`
	OrderId       int64        `db:"order_id"`
	PaymentNumber string       `db:"payment_number"`
	Method        string       `db:"payment_method"`
	Amount        money.Amount `db:"amount"`
	Status        string       `db:"status"`
	TransactionId string       `db:"transaction_id"`
	PaymentNotes  string       `db:"payment_notes"`
	PaidAt        *time.Time   `db:"paid_at"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// ToModel converts PaymentDal to service layer Payment model.
func (p *PaymentDal) ToModel() (*payment.Payment, error) {
	method, err := payment.ParseMethod(p.Method)
	if err != nil {
		return nil, err
	}
	status, err := payment.ParseStatus(p.Status)
	if err != nil {
		return nil, err
	}

	return &payment.Payment{
		ID:            p.Id,
		OrderID:       p.OrderId,
		PaymentNumber: p.PaymentNumber,
		Method:        method,
		Amount:        p.Amount,
		Status:        status,
		TransactionID: p.TransactionId,
		PaymentNotes:  p.PaymentNotes,
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

var paymentColumns = []string{
	"id",
	"order_id",
	"payment_number",
	"payment_method",
	"amount",
	"status",
	"transaction_id",
	"payment_notes",
	"paid_at",
	"created_at",
	"updated_at",
}

// PostgresPaymentRepository represents a Postgres payment repository.
type PostgresPaymentRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresPaymentRepository creates a new Postgres payment repository.
func NewPostgresPaymentRepository(conn postgres.Conn) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanPayment(row pgx.Row) (*payment.Payment, error) {
	var dal PaymentDal
	err := row.Scan(
		&dal.Id,
		&dal.OrderId,
		&dal.PaymentNumber,
		&dal.Method,
		&dal.Amount,
		&dal.Status,
		&dal.TransactionId,
		&dal.PaymentNotes,
		&dal.PaidAt,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel()
}

// Insert persists a new payment. The uniqueness constraint on order_id is
// the backstop against concurrent duplicate payments.
func (r *PostgresPaymentRepository) Insert(ctx context.Context, p payment.Payment) (*payment.Payment, error) {
	query, args, err := r.sb.Insert("payments").
		Columns(
			"order_id",
			"payment_number",
			"payment_method",
			"amount",
			"status",
			"transaction_id",
			"payment_notes",
		).
		Values(
			p.OrderID,
			p.PaymentNumber,
			p.Method,
			p.Amount,
			p.Status,
			p.TransactionID,
			p.PaymentNotes,
		).
		Suffix("RETURNING " + strings.Join(paymentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanPayment(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperror.Conflict("payment already exists for order %d", p.OrderID)
		}

		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	return inserted, nil
}

// GetByID retrieves a payment by its id.
func (r *PostgresPaymentRepository) GetByID(ctx context.Context, id int64) (*payment.Payment, error) {
	query, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	p, err := scanPayment(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("payment with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// GetByOrderID retrieves the payment settling the given order.
func (r *PostgresPaymentRepository) GetByOrderID(ctx context.Context, orderID int64) (*payment.Payment, error) {
	query, args, err := r.sb.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	p, err := scanPayment(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("payment for order %d not found", orderID)
		}

		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// UpdateStatus persists a status transition.
func (r *PostgresPaymentRepository) UpdateStatus(
	ctx context.Context,
	id int64,
	status payment.Status,
	transactionID string,
	paidAt *time.Time,
) (*payment.Payment, error) {
	builder := r.sb.Update("payments").
		Set("status", status).
		Set("updated_at", time.Now())

	if transactionID != "" {
		builder = builder.Set("transaction_id", transactionID)
	}
	if paidAt != nil {
		builder = builder.Set("paid_at", *paidAt)
	}

	query, args, err := builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(paymentColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanPayment(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("payment with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	return updated, nil
}

func (r *PostgresPaymentRepository) applyFilter(builder sq.SelectBuilder, filter *payment.QueryPaymentsModel) sq.SelectBuilder {
	if filter.OrderID != 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderID})
	}
	if filter.BuyerID != 0 {
		builder = builder.Where(sq.Expr(
			"order_id IN (SELECT id FROM orders WHERE buyer_id = ?)",
			filter.BuyerID,
		))
	}
	if filter.Method != "" {
		builder = builder.Where(sq.Eq{"payment_method": filter.Method})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.PaymentNumber != "" {
		builder = builder.Where(sq.ILike{"payment_number": "%" + filter.PaymentNumber + "%"})
	}
	if filter.MinAmount != nil {
		builder = builder.Where(sq.GtOrEq{"amount": *filter.MinAmount})
	}
	if filter.MaxAmount != nil {
		builder = builder.Where(sq.LtOrEq{"amount": *filter.MaxAmount})
	}
	if filter.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.EndDate})
	}

	return builder
}

var paymentSortFields = map[string]string{
	"created_at": "created_at",
	"amount":     "amount",
	"status":     "status",
}

// Query retrieves payments based on filter criteria.
func (r *PostgresPaymentRepository) Query(ctx context.Context, filter *payment.QueryPaymentsModel) ([]payment.Payment, error) {
	builder := r.applyFilter(r.sb.Select(paymentColumns...).From("payments"), filter)
	builder = builder.OrderBy(orderByClause(paymentSortFields, filter.SortBy, filter.SortOrder))

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
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	result := []payment.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of payments matching the filter.
func (r *PostgresPaymentRepository) Count(ctx context.Context, filter *payment.QueryPaymentsModel) (int64, error) {
	query, args, err := r.applyFilter(r.sb.Select("COUNT(*)").From("payments"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
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
