package repository

import (
	"context"
	"errors"

	"coffeeshop/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CoffeeRepo struct{ db *gorm.DB }

func NewCoffeeRepo(db *gorm.DB) *CoffeeRepo {
	return &CoffeeRepo{db: db}
}

func orderedSizes(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (r *CoffeeRepo) ListTypes(ctx context.Context) ([]model.CoffeeType, error) {
	var out []model.CoffeeType
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CoffeeRepo) List(ctx context.Context) ([]model.Coffee, error) {
	var out []model.Coffee
	err := r.db.WithContext(ctx).
		Preload("Type").
		Preload("Sizes", orderedSizes).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CoffeeRepo) ByID(ctx context.Context, id uint) (*model.Coffee, error) {
	var c model.Coffee
	if err := r.db.WithContext(ctx).Preload("Sizes", orderedSizes).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ByIDs loads the coffees that still exist among ids, keyed by id.
func (r *CoffeeRepo) ByIDs(ctx context.Context, ids []uint) (map[uint]model.Coffee, error) {
	out := make(map[uint]model.Coffee, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var coffees []model.Coffee
	if err := r.db.WithContext(ctx).Preload("Sizes", orderedSizes).Where("id IN ?", ids).Find(&coffees).Error; err != nil {
		return nil, err
	}
	for _, c := range coffees {
		out[c.ID] = c
	}
	return out, nil
}

func (r *CoffeeRepo) SizeTier(ctx context.Context, coffeeID uint, size string) (*model.CoffeeSize, error) {
	var s model.CoffeeSize
	if err := r.db.WithContext(ctx).Where("coffee_id = ? AND size = ?", coffeeID, size).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CoffeeRepo) UpsertType(ctx context.Context, label string) (*model.CoffeeType, error) {
	t := model.CoffeeType{Label: label}
	if err := r.db.WithContext(ctx).Where("label = ?", label).FirstOrCreate(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// UpsertCoffee matches on name and overwrites type, description and image.
func (r *CoffeeRepo) UpsertCoffee(ctx context.Context, c *model.Coffee) error {
	db := r.db.WithContext(ctx)
	var existing model.Coffee
	err := db.Where("name = ?", c.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Omit(clause.Associations).Create(c).Error
	}
	if err != nil {
		return err
	}
	c.ID = existing.ID
	return db.Model(&existing).Updates(map[string]interface{}{
		"type_id":     c.TypeID,
		"description": c.Description,
		"image_name":  c.ImageName,
	}).Error
}

func (r *CoffeeRepo) UpsertSize(ctx context.Context, coffeeID uint, size string, price decimal.Decimal) error {
	tier := model.CoffeeSize{CoffeeID: coffeeID, Size: size, Price: price}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "coffee_id"}, {Name: "size"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&tier).Error
}
