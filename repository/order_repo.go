package repository

import (
	"context"

	"coffeeshop/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create inserts the order row only; items are written with CreateItems.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (r *OrderRepo) UpdateTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Update("total_amount", total).Error
}

func (r *OrderRepo) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *OrderRepo) ByID(ctx context.Context, id uint) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var out []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
