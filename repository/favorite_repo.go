package repository

import (
	"context"

	"coffeeshop/model"

	"gorm.io/gorm"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo {
	return &FavoriteRepo{db: db}
}

// ListByUser skips lines whose coffee no longer exists.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint) ([]model.FavoriteLine, error) {
	db := r.db.WithContext(ctx)
	var out []model.FavoriteLine
	err := db.
		Where("user_id = ?", userID).
		Where("coffee_id IN (?)", db.Model(&model.Coffee{}).Select("id")).
		Order("coffee_id ASC, size ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, userID, coffeeID uint, size string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.FavoriteLine{}).
		Where("user_id = ? AND coffee_id = ? AND size = ?", userID, coffeeID, size).
		Count(&n).Error
	return n > 0, err
}

func (r *FavoriteRepo) Create(ctx context.Context, f *model.FavoriteLine) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FavoriteRepo) Delete(ctx context.Context, userID, coffeeID uint, size string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND coffee_id = ? AND size = ?", userID, coffeeID, size).
		Delete(&model.FavoriteLine{})
	return res.RowsAffected, res.Error
}

// DeleteCoffee removes every size variant of coffeeID from the user's favorites.
func (r *FavoriteRepo) DeleteCoffee(ctx context.Context, userID, coffeeID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND coffee_id = ?", userID, coffeeID).
		Delete(&model.FavoriteLine{})
	return res.RowsAffected, res.Error
}
