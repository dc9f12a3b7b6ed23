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
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/jackc/pgx/v5"
)

// FoodDal represents food data access layer model.
type FoodDal struct {
	Id            int64        `db:"id"`
	SellerId      int64        `db:"seller_id"`
	Name          string       `db:"name"`
	Description   string       `db:"description"`
	Price         money.Amount `db:"price"`
	ImageUrl      string       `db:"image_url"`
	IsAvailable   bool         `db:"is_available"`
	StockQuantity int          `db:"stock_quantity"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// ToModel converts FoodDal to service layer Food model.
func (f *FoodDal) ToModel() *food.Food {
	return &food.Food{
		ID:            f.Id,
		SellerID:      f.SellerId,
		Name:          f.Name,
		Description:   f.Description,
		Price:         f.Price,
		ImageURL:      f.ImageUrl,
		IsAvailable:   f.IsAvailable,
		StockQuantity: f.StockQuantity,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}

var foodColumns = []string{
	"id",
	"seller_id",
	"name",
	"description",
	"price",
	"image_url",
	"is_available",
	"stock_quantity",
	"created_at",
	"updated_at",
}

// PostgresFoodRepository represents a Postgres food repository.
type PostgresFoodRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresFoodRepository creates a new Postgres food repository.
func NewPostgresFoodRepository(conn postgres.Conn) *PostgresFoodRepository {
	return &PostgresFoodRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func scanFood(row pgx.Row) (*food.Food, error) {
	var dal FoodDal
	err := row.Scan(
		&dal.Id,
		&dal.SellerId,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.ImageUrl,
		&dal.IsAvailable,
		&dal.StockQuantity,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return dal.ToModel(), nil
}

// GetByID retrieves a food by its id.
func (r *PostgresFoodRepository) GetByID(ctx context.Context, id int64) (*food.Food, error) {
	query, args, err := r.sb.Select(foodColumns...).
		From("foods").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	f, err := scanFood(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("food with id %d not found", id)
		}

		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	return f, nil
}

// Insert persists a new food.
func (r *PostgresFoodRepository) Insert(ctx context.Context, f food.Food) (*food.Food, error) {
	query, args, err := r.sb.Insert("foods").
		Columns("seller_id", "name", "description", "price", "image_url", "is_available", "stock_quantity").
		Values(f.SellerID, f.Name, f.Description, f.Price, f.ImageURL, f.IsAvailable, f.StockQuantity).
		Suffix("RETURNING " + strings.Join(foodColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	inserted, err := scanFood(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to insert food: %w", err)
	}

	return inserted, nil
}

// Update persists edits of a food owned by f.SellerID.
func (r *PostgresFoodRepository) Update(ctx context.Context, f food.Food) (*food.Food, error) {
	query, args, err := r.sb.Update("foods").
		Set("name", f.Name).
		Set("description", f.Description).
		Set("price", f.Price).
		Set("image_url", f.ImageURL).
		Set("is_available", f.IsAvailable).
		Set("stock_quantity", f.StockQuantity).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": f.ID, "seller_id": f.SellerID}).
		Suffix("RETURNING " + strings.Join(foodColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	updated, err := scanFood(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("food with id %d not found", f.ID)
		}

		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	return updated, nil
}

// Delete removes a food owned by sellerID.
func (r *PostgresFoodRepository) Delete(ctx context.Context, id, sellerID int64) error {
	query, args, err := r.sb.Delete("foods").
		Where(sq.Eq{"id": id, "seller_id": sellerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("food with id %d not found", id)
	}

	return nil
}

// ReserveStock conditionally decrements stock. The WHERE guard makes the
// decrement atomic, so two concurrent orders cannot drive stock negative.
func (r *PostgresFoodRepository) ReserveStock(ctx context.Context, foodID int64, quantity int) (bool, error) {
	query, args, err := r.sb.Update("foods").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": foodID}).
		Where(sq.GtOrEq{"stock_quantity": quantity}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build reserve query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to reserve stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PostgresFoodRepository) applyFilter(builder sq.SelectBuilder, filter *food.QueryFoodsModel) sq.SelectBuilder {
	if filter.SellerID != 0 {
		builder = builder.Where(sq.Eq{"seller_id": filter.SellerID})
	}
	if filter.IsAvailable != nil {
		builder = builder.Where(sq.Eq{"is_available": *filter.IsAvailable})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if filter.MinPrice != nil {
		builder = builder.Where(sq.GtOrEq{"price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		builder = builder.Where(sq.LtOrEq{"price": *filter.MaxPrice})
	}

	return builder
}

var foodSortFields = map[string]string{
	"name":       "name",
	"price":      "price",
	"created_at": "created_at",
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

// Query retrieves foods based on filter criteria.
func (r *PostgresFoodRepository) Query(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, error) {
	builder := r.applyFilter(r.sb.Select(foodColumns...).From("foods"), filter)
	builder = builder.OrderBy(orderByClause(foodSortFields, filter.SortBy, filter.SortOrder))

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
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}
	defer rows.Close()

	result := []food.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		result = append(result, *f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Count returns the number of foods matching the filter.
func (r *PostgresFoodRepository) Count(ctx context.Context, filter *food.QueryFoodsModel) (int64, error) {
	query, args, err := r.applyFilter(r.sb.Select("COUNT(*)").From("foods"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count foods: %w", err)
	}

	return total, nil
}
