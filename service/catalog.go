package service

import (
	"context"
	"errors"

	"coffeeshop/model"
	"coffeeshop/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogService is the read-only view of coffee types, coffees and their size tiers.
type CatalogService struct {
	store *repository.Store
}

func NewCatalogService(store *repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) ListTypes(ctx context.Context) ([]model.CoffeeType, error) {
	return s.store.Coffees.ListTypes(ctx)
}

func (s *CatalogService) ListCoffees(ctx context.Context) ([]model.Coffee, error) {
	return s.store.Coffees.List(ctx)
}

// PriceFor returns the current price of the coffee in the given size. ok is
// false when the coffee or the tier does not exist.
func (s *CatalogService) PriceFor(ctx context.Context, coffeeID uint, size string) (price decimal.Decimal, ok bool, err error) {
	return priceFor(ctx, s.store, coffeeID, size)
}

func (s *CatalogService) IsValidSize(ctx context.Context, coffeeID uint, size string) (bool, error) {
	_, ok, err := priceFor(ctx, s.store, coffeeID, size)
	return ok, err
}

func priceFor(ctx context.Context, store *repository.Store, coffeeID uint, size string) (decimal.Decimal, bool, error) {
	tier, err := store.Coffees.SizeTier(ctx, coffeeID, size)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}
	return tier.Price, true, nil
}

// coffeeWithSize loads the coffee and checks that size is one of its tiers.
func coffeeWithSize(ctx context.Context, store *repository.Store, coffeeID uint, size string) (*model.Coffee, error) {
	coffee, err := store.Coffees.ByID(ctx, coffeeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("COFFEE_NOT_FOUND", "Coffee not found")
	}
	if err != nil {
		return nil, err
	}
	if _, ok := coffee.SizeTier(size); !ok {
		return nil, invalid("INVALID_SIZE", "Invalid size for this coffee")
	}
	return coffee, nil
}

func requireUser(ctx context.Context, store *repository.Store, userID uint) error {
	ok, err := store.Users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("USER_NOT_FOUND", "User not found")
	}
	return nil
}
