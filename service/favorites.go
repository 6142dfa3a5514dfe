package service

import (
	"context"
	"errors"

	"coffeeshop/model"
	"coffeeshop/repository"

	"gorm.io/gorm"
)

type FavoriteService struct {
	store *repository.Store
}

func NewFavoriteService(store *repository.Store) *FavoriteService {
	return &FavoriteService{store: store}
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]model.FavoriteLine, error) {
	return s.store.Favorites.ListByUser(ctx, userID)
}

func (s *FavoriteService) Add(ctx context.Context, userID, coffeeID uint, size string) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := coffeeWithSize(ctx, tx, coffeeID, size); err != nil {
			return err
		}

		exists, err := tx.Favorites.Exists(ctx, userID, coffeeID, size)
		if err != nil {
			return err
		}
		if exists {
			return newError(ErrConflict, "FAVORITE_EXISTS", "Coffee with this size already in favorites")
		}

		err = tx.Favorites.Create(ctx, &model.FavoriteLine{UserID: userID, CoffeeID: coffeeID, Size: size})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return newError(ErrConflict, "FAVORITE_EXISTS", "Coffee with this size already in favorites")
		}
		return err
	})
}

// Remove deletes one favorite line when size is non-empty, otherwise every
// size variant of the coffee.
func (s *FavoriteService) Remove(ctx context.Context, userID, coffeeID uint, size string) error {
	if size != "" {
		n, err := s.store.Favorites.Delete(ctx, userID, coffeeID, size)
		if err != nil {
			return err
		}
		if n == 0 {
			return notFound("FAVORITE_NOT_FOUND", "Coffee with this size not in favorites")
		}
		return nil
	}

	n, err := s.store.Favorites.DeleteCoffee(ctx, userID, coffeeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("FAVORITE_NOT_FOUND", "Coffee not in favorites")
	}
	return nil
}
