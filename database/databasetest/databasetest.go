// Package databasetest opens throwaway gorm databases for tests.
package databasetest

import (
	"path/filepath"
	"testing"

	"coffeeshop/database"
	"coffeeshop/model"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated SQLite database in t.TempDir(). The pool holds a
// single connection, so concurrent transactions run one after another.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "coffeeshop.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: "Test " + email, PasswordHash: "-"}
	require.NoError(t, db.Create(u).Error)
	return u
}

// CreateCoffee stores a coffee with one tier per size/price pair, e.g.
// CreateCoffee(t, db, "Latte", "M", "100", "L", "150").
func CreateCoffee(t testing.TB, db *gorm.DB, name string, sizePrices ...string) *model.Coffee {
	t.Helper()
	require.True(t, len(sizePrices)%2 == 0, "sizePrices must be size/price pairs")

	var ct model.CoffeeType
	require.NoError(t, db.Where(model.CoffeeType{Label: "milk"}).FirstOrCreate(&ct).Error)

	c := &model.Coffee{
		TypeID:      ct.ID,
		Name:        name,
		Description: name + " description",
		ImageName:   name + ".jpg",
	}
	for i := 0; i < len(sizePrices); i += 2 {
		c.Sizes = append(c.Sizes, model.CoffeeSize{
			Size:  sizePrices[i],
			Price: decimal.RequireFromString(sizePrices[i+1]),
		})
	}
	require.NoError(t, db.Omit("Type").Create(c).Error)
	return c
}

func SetPrice(t testing.TB, db *gorm.DB, coffeeID uint, size, price string) {
	t.Helper()
	res := db.Model(&model.CoffeeSize{}).
		Where("coffee_id = ? AND size = ?", coffeeID, size).
		Update("price", decimal.RequireFromString(price))
	require.NoError(t, res.Error)
	require.EqualValues(t, 1, res.RowsAffected)
}

func DeleteCoffee(t testing.TB, db *gorm.DB, coffeeID uint) {
	t.Helper()
	require.NoError(t, db.Where("coffee_id = ?", coffeeID).Delete(&model.CoffeeSize{}).Error)
	require.NoError(t, db.Delete(&model.Coffee{}, coffeeID).Error)
}
