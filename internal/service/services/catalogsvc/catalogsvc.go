package catalogsvc

import (
	"context"

	"github.com/fooddash/marketplace/internal/dal/interfaces/ifoodrepo"
	"github.com/fooddash/marketplace/internal/dal/postgres"
	foodrepo "github.com/fooddash/marketplace/internal/dal/repositories/food/postgres"
	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/fooddash/marketplace/internal/service/policy"
)

// CatalogService owns the seller-managed food catalog and its public
// browse surface. Catalog operations are single statements, so no unit of
// work is needed here.
type CatalogService struct {
	foodRepo ifoodrepo.IFoodRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.foodRepo = foodrepo.NewPostgresFoodRepository(pgClient.Pool())
	}
}

// WithFoodRepository sets the food repository directly.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithFoodRepository(foodRepo ifoodrepo.IFoodRepository) option {
	return func(s *CatalogService) {
		s.foodRepo = foodRepo
	}
}

func validateFood(f food.Food) error {
	if f.Name == "" {
		return apperror.Invalid("food name is required")
	}
	if f.Price.IsNegative() {
		return apperror.Invalid("price must not be negative")
	}
	if f.StockQuantity < 0 {
		return apperror.Invalid("stock quantity must not be negative")
	}

	return nil
}

// CreateFood adds a food to the calling seller's catalog.
func (s *CatalogService) CreateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error) {
	if err := policy.RequireRole(actor, user.RoleSeller); err != nil {
		return nil, err
	}
	if err := validateFood(f); err != nil {
		return nil, err
	}

	f.SellerID = actor.SellerID

	return s.foodRepo.Insert(ctx, f)
}

// UpdateFood replaces a food's mutable fields. Ownership is enforced by
// the repository: a food outside the seller's catalog reads as not found.
func (s *CatalogService) UpdateFood(ctx context.Context, actor user.Actor, f food.Food) (*food.Food, error) {
	if err := policy.RequireRole(actor, user.RoleSeller); err != nil {
		return nil, err
	}
	if err := validateFood(f); err != nil {
		return nil, err
	}

	f.SellerID = actor.SellerID

	return s.foodRepo.Update(ctx, f)
}

// DeleteFood removes a food from the calling seller's catalog.
func (s *CatalogService) DeleteFood(ctx context.Context, actor user.Actor, foodID int64) error {
	if err := policy.RequireRole(actor, user.RoleSeller); err != nil {
		return err
	}

	return s.foodRepo.Delete(ctx, foodID, actor.SellerID)
}

// GetFoods is the public browse listing with filters and pagination.
func (s *CatalogService) GetFoods(ctx context.Context, filter *food.QueryFoodsModel) ([]food.Food, int64, error) {
	foods, err := s.foodRepo.Query(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.foodRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return foods, total, nil
}

// GetFood retrieves one food by id.
func (s *CatalogService) GetFood(ctx context.Context, foodID int64) (*food.Food, error) {
	return s.foodRepo.GetByID(ctx, foodID)
}
