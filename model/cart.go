package model

// CartLine is keyed by (user, coffee, size). Users and coffees are referenced
// by id only: a line whose coffee disappears is skipped by readers.
type CartLine struct {
	UserID   uint   `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CoffeeID uint   `json:"coffee_id" gorm:"primaryKey;autoIncrement:false"`
	Size     string `json:"selected_size" gorm:"primaryKey;size:10"`
	Quantity int    `json:"quantity" gorm:"not null;default:1"`
}

type FavoriteLine struct {
	UserID   uint   `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	CoffeeID uint   `json:"coffee_id" gorm:"primaryKey;autoIncrement:false"`
	Size     string `json:"selected_size" gorm:"primaryKey;size:10"`
}
