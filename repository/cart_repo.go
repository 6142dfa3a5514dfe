package repository

import (
	"context"

	"coffeeshop/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct{ db *gorm.DB }

func NewCartRepo(db *gorm.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) ListByUser(ctx context.Context, userID uint) ([]model.CartLine, error) {
	var out []model.CartLine
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("coffee_id ASC, size ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LockByUser reads the user's lines with FOR UPDATE. Only meaningful inside a transaction.
func (r *CartRepo) LockByUser(ctx context.Context, userID uint) ([]model.CartLine, error) {
	var out []model.CartLine
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("coffee_id ASC, size ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CartRepo) Exists(ctx context.Context, userID, coffeeID uint, size string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CartLine{}).
		Where("user_id = ? AND coffee_id = ? AND size = ?", userID, coffeeID, size).
		Count(&n).Error
	return n > 0, err
}

// Accumulate inserts the line or, if it already exists, adds its quantity to
// the stored one in a single statement.
func (r *CartRepo) Accumulate(ctx context.Context, line *model.CartLine) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "coffee_id"}, {Name: "size"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_lines.quantity + excluded.quantity"),
		}),
	}).Create(line).Error
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, coffeeID uint, size string, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.CartLine{}).
		Where("user_id = ? AND coffee_id = ? AND size = ?", userID, coffeeID, size).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (r *CartRepo) Delete(ctx context.Context, userID, coffeeID uint, size string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND coffee_id = ? AND size = ?", userID, coffeeID, size).
		Delete(&model.CartLine{})
	return res.RowsAffected, res.Error
}

func (r *CartRepo) DeleteAll(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartLine{}).Error
}
