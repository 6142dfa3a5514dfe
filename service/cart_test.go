package service

import (
	"testing"

	"coffeeshop/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAccumulates(t *testing.T) {
	db, store := newStore(t)
	user := databasetest.CreateUser(t, db, "ann@example.com")
	latte := databasetest.CreateCoffee(t, db, "Latte", "M", "100")
	cart := NewCartService(store)

	created, err := cart.Add(ctx, user.ID, latte.ID, "M", 2)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = cart.Add(ctx, user.ID, latte.ID, "M", 3)
	require.NoError(t, err)
	assert.False(t, created)

	summary, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 5, summary.Items[0].Quantity)
	assert.Equal(t, 5, summary.TotalItems)
	assertDecimal(t, "500", summary.TotalPrice)
}

func TestCartAddValidation(t *testing.T) {
	db, store := newStore(t)
	user := databasetest.CreateUser(t, db, "ann@example.com")
	latte := databasetest.CreateCoffee(t, db, "Latte", "M", "100")
	cart := NewCartService(store)

	for _, q := range []int{0, -1} {
		_, err := cart.Add(ctx, user.ID, latte.ID, "M", q)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, "INVALID_QUANTITY", Code(err))
	}

	_, err := cart.Add(ctx, user.ID, latte.ID, "XL", 1)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "INVALID_SIZE", Code(err))

	_, err = cart.Add(ctx, user.ID, latte.ID+7, "M", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "COFFEE_NOT_FOUND", Code(err))

	_, err = cart.Add(ctx, user.ID+7, latte.ID, "M", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "USER_NOT_FOUND", Code(err))

	summary, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalItems)
	assertDecimal(t, "0", summary.TotalPrice)
}

func TestCartGetUsesLivePricesAndSkipsMissingCoffee(t *testing.T) {
	db, store := newStore(t)
	user := databasetest.CreateUser(t, db, "ann@example.com")
	latte := databasetest.CreateCoffee(t, db, "Latte", "M", "100", "L", "120")
	mocha := databasetest.CreateCoffee(t, db, "Mocha", "S", "50")
	cart := NewCartService(store)

	_, err := cart.Add(ctx, user.ID, latte.ID, "M", 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, user.ID, latte.ID, "L", 1)
	require.NoError(t, err)
	_, err = cart.Add(ctx, user.ID, mocha.ID, "S", 1)
	require.NoError(t, err)

	summary, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 3)
	assertDecimal(t, "370", summary.TotalPrice)

	databasetest.SetPrice(t, db, latte.ID, "M", "110.25")
	databasetest.DeleteCoffee(t, db, mocha.ID)

	summary, err = cart.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, "L", summary.Items[0].SelectedSize)
	assert.Equal(t, "M", summary.Items[1].SelectedSize)
	assertDecimal(t, "110.25", summary.Items[1].Price)
	assertDecimal(t, "220.5", summary.Items[1].TotalPrice)
	assert.Equal(t, 3, summary.TotalItems)
	assertDecimal(t, "340.5", summary.TotalPrice)
}

func TestCartUpdateQuantity(t *testing.T) {
	db, store := newStore(t)
	user := databasetest.CreateUser(t, db, "ann@example.com")
	latte := databasetest.CreateCoffee(t, db, "Latte", "M", "100")
	cart := NewCartService(store)

	err := cart.UpdateQuantity(ctx, user.ID, latte.ID, "M", 0)
	assert.ErrorIs(t, err, ErrValidation)

	err = cart.UpdateQuantity(ctx, user.ID, latte.ID, "M", 4)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "CART_ITEM_NOT_FOUND", Code(err))

	_, err = cart.Add(ctx, user.ID, latte.ID, "M", 1)
	require.NoError(t, err)
	require.NoError(t, cart.UpdateQuantity(ctx, user.ID, latte.ID, "M", 4))
	assert.ErrorIs(t, cart.UpdateQuantity(ctx, user.ID, latte.ID, "M", -1), ErrValidation)

	summary, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 4, summary.Items[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	db, store := newStore(t)
	user := databasetest.CreateUser(t, db, "ann@example.com")
	other := databasetest.CreateUser(t, db, "bob@example.com")
	latte := databasetest.CreateCoffee(t, db, "Latte", "M", "100", "L", "120")
	cart := NewCartService(store)

	for _, size := range []string{"M", "L"} {
		_, err := cart.Add(ctx, user.ID, latte.ID, size, 1)
		require.NoError(t, err)
	}
	_, err := cart.Add(ctx, other.ID, latte.ID, "M", 1)
	require.NoError(t, err)

	require.NoError(t, cart.Remove(ctx, user.ID, latte.ID, "M"))
	assert.ErrorIs(t, cart.Remove(ctx, user.ID, latte.ID, "M"), ErrNotFound)

	summary, err := cart.Get(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "L", summary.Items[0].SelectedSize)

	require.NoError(t, cart.Clear(ctx, user.ID))
	require.NoError(t, cart.Clear(ctx, user.ID))

	summary, err = cart.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)

	summary, err = cart.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 1)
}
