package catalogsvc

import (
	"context"
	"testing"

	"github.com/fooddash/marketplace/internal/service/models/apperror"
	"github.com/fooddash/marketplace/internal/service/models/food"
	"github.com/fooddash/marketplace/internal/service/models/money"
	"github.com/fooddash/marketplace/internal/service/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFoodRepo struct {
	foods   map[int64]food.Food
	nextID  int64
	deleted []int64
	filter  *food.QueryFoodsModel
}

func (r *fakeFoodRepo) GetByID(_ context.Context, id int64) (*food.Food, error) {
	f, ok := r.foods[id]
	if !ok {
		return nil, apperror.NotFound("food with id %d not found", id)
	}

	return &f, nil
}

func (r *fakeFoodRepo) Insert(_ context.Context, f food.Food) (*food.Food, error) {
	r.nextID++
	f.ID = r.nextID
	r.foods[f.ID] = f

	return &f, nil
}

func (r *fakeFoodRepo) Update(_ context.Context, f food.Food) (*food.Food, error) {
	existing, ok := r.foods[f.ID]
	if !ok || existing.SellerID != f.SellerID {
		return nil, apperror.NotFound("food with id %d not found", f.ID)
	}
	r.foods[f.ID] = f

	return &f, nil
}

func (r *fakeFoodRepo) Delete(_ context.Context, id, sellerID int64) error {
	existing, ok := r.foods[id]
	if !ok || existing.SellerID != sellerID {
		return apperror.NotFound("food with id %d not found", id)
	}
	delete(r.foods, id)
	r.deleted = append(r.deleted, id)

	return nil
}

func (r *fakeFoodRepo) ReserveStock(context.Context, int64, int) (bool, error) { return true, nil }

func (r *fakeFoodRepo) Query(_ context.Context, filter *food.QueryFoodsModel) ([]food.Food, error) {
	r.filter = filter
	out := make([]food.Food, 0, len(r.foods))
	for _, f := range r.foods {
		out = append(out, f)
	}

	return out, nil
}

func (r *fakeFoodRepo) Count(context.Context, *food.QueryFoodsModel) (int64, error) {
	return int64(len(r.foods)), nil
}

func newFixture() (*CatalogService, *fakeFoodRepo) {
	repo := &fakeFoodRepo{foods: map[int64]food.Food{}}
	svc := MustNewCatalogService(WithFoodRepository(repo))

	return svc, repo
}

func sellerActor() user.Actor {
	return user.Actor{UserID: 2, Role: user.RoleSeller, SellerID: 7}
}

func TestCreateFood(t *testing.T) {
	svc, _ := newFixture()

	created, err := svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name:          "Nasi Goreng",
		Price:         money.FromInt(45000),
		IsAvailable:   true,
		StockQuantity: 10,
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	// Ownership always comes from the actor, never from the payload.
	assert.Equal(t, int64(7), created.SellerID)
}

func TestCreateFoodValidation(t *testing.T) {
	svc, _ := newFixture()

	_, err := svc.CreateFood(context.Background(), sellerActor(), food.Food{Price: money.FromInt(1)})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	_, err = svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name: "Sate", Price: money.FromInt(-5),
	})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))

	_, err = svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name: "Sate", Price: money.FromInt(5), StockQuantity: -1,
	})
	assert.Equal(t, apperror.KindInvalid, apperror.KindOf(err))
}

func TestCreateFoodSellerOnly(t *testing.T) {
	svc, _ := newFixture()

	buyer := user.Actor{UserID: 1, Role: user.RoleBuyer, BuyerID: 1}
	_, err := svc.CreateFood(context.Background(), buyer, food.Food{
		Name: "Sate", Price: money.FromInt(5),
	})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestUpdateFoodOwnership(t *testing.T) {
	svc, _ := newFixture()

	created, err := svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name: "Sate", Price: money.FromInt(55000),
	})
	require.NoError(t, err)

	created.Price = money.FromInt(60000)
	updated, err := svc.UpdateFood(context.Background(), sellerActor(), *created)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(money.FromInt(60000)))

	// A foreign seller sees someone else's food as missing, not forbidden.
	foreign := user.Actor{UserID: 5, Role: user.RoleSeller, SellerID: 9}
	_, err = svc.UpdateFood(context.Background(), foreign, *created)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteFood(t *testing.T) {
	svc, repo := newFixture()

	created, err := svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name: "Sate", Price: money.FromInt(55000),
	})
	require.NoError(t, err)

	foreign := user.Actor{UserID: 5, Role: user.RoleSeller, SellerID: 9}
	err = svc.DeleteFood(context.Background(), foreign, created.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	require.NoError(t, svc.DeleteFood(context.Background(), sellerActor(), created.ID))
	assert.Equal(t, []int64{created.ID}, repo.deleted)
}

func TestGetFoods(t *testing.T) {
	svc, repo := newFixture()

	_, err := svc.CreateFood(context.Background(), sellerActor(), food.Food{
		Name: "Sate", Price: money.FromInt(55000),
	})
	require.NoError(t, err)

	foods, total, err := svc.GetFoods(context.Background(), &food.QueryFoodsModel{Search: "sate"})
	require.NoError(t, err)
	assert.Len(t, foods, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "sate", repo.filter.Search)
}
