package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/jackc/pgx/v5"
)

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.Conn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID retrieves a user by its id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query, args, err := r.sb.Select(
		"id",
		"email",
		"username",
		"full_name",
		"phone_number",
		"role",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var (
		u       user.User
		roleRaw string
	)
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.FullName,
		&u.PhoneNumber,
		&roleRaw,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("user with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.Role, err = user.ParseRole(roleRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user role: %w", err)
	}

	return &u, nil
}

// GetActor resolves a user id to an actor with its role-specific profile id.
func (r *PostgresUserRepository) GetActor(ctx context.Context, userID int64) (user.Actor, error) {
	u, err := r.GetByID(ctx, userID)
	if err != nil {
		return user.Actor{}, err
	}
	if !u.IsActive {
		return user.Actor{}, apperror.Forbidden("user %d is inactive", userID)
	}

	actor := user.Actor{UserID: u.ID, Role: u.Role}

	var table string
	switch u.Role {
	case user.RoleSeller:
		table = "sellers"
	case user.RoleBuyer:
		table = "buyers"
	case user.RoleDriver:
		table = "drivers"
	}

	query, args, err := r.sb.Select("id").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return user.Actor{}, fmt.Errorf("failed to build select query: %w", err)
	}

	var profileID int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&profileID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.Actor{}, apperror.NotFound("%s profile for user %d not found", u.Role, userID)
		}

		return user.Actor{}, fmt.Errorf("failed to get %s profile: %w", u.Role, err)
	}

	switch u.Role {
	case user.RoleSeller:
		actor.SellerID = profileID
	case user.RoleBuyer:
		actor.BuyerID = profileID
	case user.RoleDriver:
		actor.DriverID = profileID
	}

	return actor, nil
}
