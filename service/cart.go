package service

import (
	"context"

	"coffeeshop/model"
	"coffeeshop/repository"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	CoffeeID     uint            `json:"id"`
	Name         string          `json:"name"`
	SelectedSize string          `json:"selected_size"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ImageName    string          `json:"image_name"`
}

type CartSummary struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CartService struct {
	store *repository.Store
}

func NewCartService(store *repository.Store) *CartService {
	return &CartService{store: store}
}

// Get prices every line at the current catalog price. Lines whose coffee or
// size tier no longer exists are left out of the summary.
func (s *CartService) Get(ctx context.Context, userID uint) (*CartSummary, error) {
	lines, err := s.store.Carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.CoffeeID)
	}
	coffees, err := s.store.Coffees.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{Items: []CartItem{}, TotalPrice: decimal.Zero}
	for _, l := range lines {
		coffee, ok := coffees[l.CoffeeID]
		if !ok {
			continue
		}
		tier, ok := coffee.SizeTier(l.Size)
		if !ok {
			continue
		}

		lineTotal := tier.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		summary.Items = append(summary.Items, CartItem{
			CoffeeID:     coffee.ID,
			Name:         coffee.Name,
			SelectedSize: l.Size,
			Price:        tier.Price,
			Quantity:     l.Quantity,
			TotalPrice:   lineTotal,
			ImageName:    coffee.ImageName,
		})
		summary.TotalItems += l.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(lineTotal)
	}
	return summary, nil
}

// Add puts quantity units of (coffee, size) into the cart. created reports
// whether a new line was started rather than an existing one incremented.
func (s *CartService) Add(ctx context.Context, userID, coffeeID uint, size string, quantity int) (created bool, err error) {
	if quantity <= 0 {
		return false, invalid("INVALID_QUANTITY", "Quantity must be greater than 0")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := coffeeWithSize(ctx, tx, coffeeID, size); err != nil {
			return err
		}

		exists, err := tx.Carts.Exists(ctx, userID, coffeeID, size)
		if err != nil {
			return err
		}
		created = !exists

		return tx.Carts.Accumulate(ctx, &model.CartLine{
			UserID:   userID,
			CoffeeID: coffeeID,
			Size:     size,
			Quantity: quantity,
		})
	})
	return created, err
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, coffeeID uint, size string, quantity int) error {
	if quantity <= 0 {
		return invalid("INVALID_QUANTITY", "Quantity must be greater than 0")
	}

	n, err := s.store.Carts.SetQuantity(ctx, userID, coffeeID, size, quantity)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("CART_ITEM_NOT_FOUND", "Cart item not found")
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, userID, coffeeID uint, size string) error {
	n, err := s.store.Carts.Delete(ctx, userID, coffeeID, size)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound("CART_ITEM_NOT_FOUND", "Cart item not found")
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.store.Carts.DeleteAll(ctx, userID)
}
