package model

import "github.com/shopspring/decimal"

type CoffeeType struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Label string `json:"type" gorm:"size:20;uniqueIndex;not null"`
}

type Coffee struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	TypeID      uint         `json:"-" gorm:"not null;index"`
	Type        CoffeeType   `json:"type" gorm:"foreignKey:TypeID"`
	Name        string       `json:"name" gorm:"size:50;uniqueIndex;not null"`
	Description string       `json:"description" gorm:"size:500;not null"`
	ImageName   string       `json:"image_name" gorm:"size:50;not null"`
	Sizes       []CoffeeSize `json:"sizes" gorm:"foreignKey:CoffeeID;constraint:OnDelete:CASCADE"`
}

// CoffeeSize is one size/price tier of a coffee.
type CoffeeSize struct {
	ID       uint            `json:"-" gorm:"primaryKey"`
	CoffeeID uint            `json:"-" gorm:"not null;uniqueIndex:idx_coffee_size"`
	Size     string          `json:"size" gorm:"size:10;not null;uniqueIndex:idx_coffee_size"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
}

// SizeTier returns the tier labelled size, if the coffee offers it.
func (c *Coffee) SizeTier(size string) (CoffeeSize, bool) {
	for _, s := range c.Sizes {
		if s.Size == size {
			return s, true
		}
	}
	return CoffeeSize{}, false
}
