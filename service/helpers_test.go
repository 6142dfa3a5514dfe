package service

import (
	"context"
	"testing"

	"coffeeshop/database/databasetest"
	"coffeeshop/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*gorm.DB, *repository.Store) {
	t.Helper()
	db := databasetest.Open(t)
	return db, repository.NewStore(db)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

var ctx = context.Background()
