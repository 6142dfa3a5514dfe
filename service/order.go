package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"coffeeshop/model"
	"coffeeshop/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderLine struct {
	CoffeeID     uint
	SelectedSize string
}

type CheckoutRequest struct {
	DeliveryAddress string
	DeliveryFee     decimal.Decimal
	Items           []OrderLine
}

type CheckoutResult struct {
	OrderID     uint            `json:"order_id"`
	Reference   string          `json:"reference"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	ItemsAmount decimal.Decimal `json:"items_amount"`
}

type OrderService struct {
	store *repository.Store
	now   func() time.Time
}

func NewOrderService(store *repository.Store) *OrderService {
	return &OrderService{store: store, now: time.Now}
}

// Checkout turns the requested subset of the user's cart into an order. The
// whole sequence runs in one transaction with the cart lines locked, so a
// cart line is billed by at most one order.
func (s *OrderService) Checkout(ctx context.Context, userID uint, req CheckoutRequest) (*CheckoutResult, error) {
	var result *CheckoutResult

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if strings.TrimSpace(req.DeliveryAddress) == "" {
			return invalid("ADDRESS_REQUIRED", "Delivery address is required")
		}
		if req.DeliveryFee.IsNegative() {
			return invalid("INVALID_DELIVERY_FEE", "Delivery fee must not be negative")
		}
		if len(req.Items) == 0 {
			return invalid("NO_ITEMS_SELECTED", "No items selected for order")
		}

		cart, err := tx.Carts.LockByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(cart) == 0 {
			return invalid("CART_EMPTY", "Cart is empty")
		}

		selected := selectLines(cart, req.Items)
		if len(selected) == 0 {
			return invalid("ITEMS_NOT_IN_CART", "Selected items not found in cart")
		}

		order := &model.Order{
			Reference:       s.reference(),
			UserID:          userID,
			TotalAmount:     decimal.Zero,
			DeliveryFee:     req.DeliveryFee,
			DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
			OrderDate:       s.now().UTC(),
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		ids := make([]uint, 0, len(selected))
		for _, l := range selected {
			ids = append(ids, l.CoffeeID)
		}
		coffees, err := tx.Coffees.ByIDs(ctx, ids)
		if err != nil {
			return err
		}

		itemsAmount := decimal.Zero
		items := make([]model.OrderItem, 0, len(selected))
		for _, line := range selected {
			coffee, ok := coffees[line.CoffeeID]
			if !ok {
				continue
			}
			tier, ok := coffee.SizeTier(line.Size)
			if !ok {
				continue
			}

			itemTotal := tier.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))

			n, err := tx.Carts.Delete(ctx, userID, line.CoffeeID, line.Size)
			if err != nil {
				return err
			}
			if n == 0 {
				continue
			}

			itemsAmount = itemsAmount.Add(itemTotal)
			items = append(items, model.OrderItem{
				OrderID:      order.ID,
				CoffeeName:   coffee.Name,
				SelectedSize: line.Size,
				UnitPrice:    tier.Price,
				Quantity:     line.Quantity,
				TotalPrice:   itemTotal,
			})
		}
		if len(items) == 0 {
			return invalid("ITEMS_UNAVAILABLE", "Selected items are no longer available")
		}

		total := itemsAmount.Add(req.DeliveryFee)
		if err := tx.Orders.UpdateTotal(ctx, order.ID, total); err != nil {
			return err
		}
		if err := tx.Orders.CreateItems(ctx, items); err != nil {
			return err
		}

		result = &CheckoutResult{
			OrderID:     order.ID,
			Reference:   order.Reference,
			TotalAmount: total,
			DeliveryFee: req.DeliveryFee,
			ItemsAmount: itemsAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// selectLines keeps the cart lines matching a requested (coffee, size) pair
// exactly. Requested pairs missing from the cart are ignored.
func selectLines(cart []model.CartLine, requested []OrderLine) []model.CartLine {
	want := make(map[OrderLine]struct{}, len(requested))
	for _, r := range requested {
		want[r] = struct{}{}
	}
	var out []model.CartLine
	for _, l := range cart {
		if _, ok := want[OrderLine{CoffeeID: l.CoffeeID, SelectedSize: l.Size}]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (s *OrderService) reference() string {
	return s.now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

func (s *OrderService) History(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.store.Orders.ListByUser(ctx, userID)
}

func (s *OrderService) Details(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	order, err := s.store.Orders.ByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("ORDER_NOT_FOUND", "Order not found")
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, newError(ErrForbidden, "ACCESS_DENIED", "Access denied")
	}
	return order, nil
}
