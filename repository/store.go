package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB, which is either
// the pool or an open transaction.
type Store struct {
	db        *gorm.DB
	Users     *UserRepo
	Coffees   *CoffeeRepo
	Carts     *CartRepo
	Favorites *FavoriteRepo
	Orders    *OrderRepo
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepo(db),
		Coffees:   NewCoffeeRepo(db),
		Carts:     NewCartRepo(db),
		Favorites: NewFavoriteRepo(db),
		Orders:    NewOrderRepo(db),
	}
}

// Transaction runs fn against a Store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
