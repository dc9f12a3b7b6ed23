package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/jackc/pgx/v5"
)

// PostgresBuyerRepository represents a Postgres buyer profile repository.
type PostgresBuyerRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresBuyerRepository creates a new Postgres buyer profile repository.
func NewPostgresBuyerRepository(conn postgres.Conn) *PostgresBuyerRepository {
	return &PostgresBuyerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByUserID retrieves a buyer profile by the owning user id.
func (r *PostgresBuyerRepository) GetByUserID(ctx context.Context, userID int64) (*user.BuyerProfile, error) {
	query, args, err := r.sb.Select(
		"id",
		"user_id",
		"address",
		"total_orders",
		"total_spent",
		"created_at",
		"updated_at",
	).
		From("buyers").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var profile user.BuyerProfile
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Address,
		&profile.TotalOrders,
		&profile.TotalSpent,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("buyer profile for user %d not found", userID)
		}

		return nil, fmt.Errorf("failed to get buyer profile: %w", err)
	}

	return &profile, nil
}

// IncrementStats bumps the buyer's running counters for one placed order.
// The counters are never decremented, even when the order is cancelled.
func (r *PostgresBuyerRepository) IncrementStats(ctx context.Context, userID int64, spentDelta int64) error {
	query, args, err := r.sb.Update("buyers").
		Set("total_orders", sq.Expr("total_orders + 1")).
		Set("total_spent", sq.Expr("total_spent + ?", spentDelta)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update buyer stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("buyer profile for user %d not found", userID)
	}

	return nil
}
