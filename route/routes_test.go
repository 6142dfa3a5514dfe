package route

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"coffeeshop/database/databasetest"
	"coffeeshop/model"
	"coffeeshop/repository"
	"coffeeshop/service"
	"coffeeshop/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
	tokens *utils.JWTManager
	images string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := databasetest.Open(t)
	store := repository.NewStore(db)

	imagesDir := filepath.Join(t.TempDir(), "coffee")
	images, err := service.NewDirImageStore(imagesDir)
	require.NoError(t, err)

	tokens := utils.NewJWTManager("route-secret", time.Minute, time.Hour)
	router := gin.New()
	CoffeeRoutes(router, Dependencies{
		Catalog:   service.NewCatalogService(store),
		Favorites: service.NewFavoriteService(store),
		Carts:     service.NewCartService(store),
		Orders:    service.NewOrderService(store),
		Accounts:  service.NewAccountService(store, &utils.BcryptHasher{Cost: bcrypt.MinCost}, tokens),
		Images:    images,
		Tokens:    tokens,
	})

	return &testServer{t: t, db: db, router: router, tokens: tokens, images: imagesDir}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

// login registers email and returns its access token.
func (s *testServer) login(email string) string {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "s3cret", "name": "Tester",
	})
	require.Equal(s.t, http.StatusCreated, w.Code)

	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "s3cret"})
	require.Equal(s.t, http.StatusOK, w.Code)
	var data struct {
		Token       string `json:"token"`
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.Equal(s.t, "Bearer "+data.AccessToken, data.Token)
	return data.AccessToken
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	s.login("ann@example.com")

	w, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "ann@example.com", "password": "x", "name": "Dup",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", env.Code)

	w, env = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "not-an-email", "password": "x", "name": "N"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Code)

	w, wrongPassword := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ann@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, unknown := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ghost@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, wrongPassword.Error, unknown.Error)

	_, refresh, err := s.tokens.Issue(1, "ann@example.com")
	require.NoError(t, err)
	w, _ = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refresh_token": refresh})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/api/auth/refresh", "", gin.H{"refresh_token": "junk"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/coffee/cart", "/api/coffee/favorites", "/api/coffee/orders/history"} {
		w, env := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.False(t, env.Success)
	}

	orphan, _, err := s.tokens.Issue(99, "ghost@example.com")
	require.NoError(t, err)
	w, env := s.do(http.MethodGet, "/api/coffee/cart", orphan, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", env.Code)
}

func TestCatalogAndImages(t *testing.T) {
	s := newTestServer(t)
	databasetest.CreateCoffee(t, s.db, "Latte", "M", "100")
	require.NoError(t, os.WriteFile(filepath.Join(s.images, "Latte.png"), []byte("png"), 0644))

	w, env := s.do(http.MethodGet, "/api/coffee", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var coffees []model.Coffee
	require.NoError(t, json.Unmarshal(env.Data, &coffees))
	require.Len(t, coffees, 1)
	assert.Equal(t, "milk", coffees[0].Type.Label)

	w, _ = s.do(http.MethodGet, "/api/coffee/types", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/coffee/image/Latte.png", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "png", w.Body.String())

	w, env = s.do(http.MethodGet, "/api/coffee/image/missing.jpg", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "IMAGE_NOT_FOUND", env.Code)
}

func TestFavoritesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	latte := databasetest.CreateCoffee(t, s.db, "Latte", "M", "100", "L", "120")
	token := s.login("ann@example.com")

	w, _ := s.do(http.MethodPost, "/api/coffee/favorites", token, gin.H{"coffee_id": latte.ID, "selected_size": "M"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, env := s.do(http.MethodPost, "/api/coffee/favorites", token, gin.H{"coffee_id": latte.ID, "selected_size": "M"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "FAVORITE_EXISTS", env.Code)
	w, _ = s.do(http.MethodPost, "/api/coffee/favorites", token, gin.H{"coffee_id": latte.ID, "selected_size": "L"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(http.MethodGet, "/api/coffee/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%d,"selected_size":"L"},{"id":%d,"selected_size":"M"}]`, latte.ID, latte.ID), string(env.Data))

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/coffee/favorites/%d?size=L", latte.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/coffee/favorites/%d", latte.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/coffee/favorites/%d", latte.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/coffee/favorites/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartCheckoutAndOrders(t *testing.T) {
	s := newTestServer(t)
	a := databasetest.CreateCoffee(t, s.db, "Americano", "M", "100")
	b := databasetest.CreateCoffee(t, s.db, "Bicerin", "S", "50")
	ann := s.login("ann@example.com")
	bob := s.login("bob@example.com")

	w, _ := s.do(http.MethodPost, "/api/coffee/cart", ann, gin.H{"coffee_id": a.ID, "selected_size": "M"})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodPost, "/api/coffee/cart", ann, gin.H{"coffee_id": a.ID, "selected_size": "M", "quantity": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/api/coffee/cart", ann, gin.H{"coffee_id": b.ID, "selected_size": "S", "quantity": 3})
	assert.Equal(t, http.StatusCreated, w.Code)
	w, env := s.do(http.MethodPost, "/api/coffee/cart", ann, gin.H{"coffee_id": b.ID, "selected_size": "XL"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SIZE", env.Code)

	w, _ = s.do(http.MethodPut, fmt.Sprintf("/api/coffee/cart/%d/S", b.ID), ann, gin.H{"quantity": 1})
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPut, fmt.Sprintf("/api/coffee/cart/%d/S", b.ID), ann, gin.H{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/coffee/cart", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cart service.CartSummary
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 3, cart.TotalItems)
	assert.True(t, decimal.NewFromInt(250).Equal(cart.TotalPrice), cart.TotalPrice.String())

	w, env = s.do(http.MethodPost, "/api/coffee/checkout", ann, gin.H{
		"delivery_address": "1 Main St",
		"delivery_fee":     30,
		"items":            []gin.H{{"coffee_id": a.ID, "selected_size": "M"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var result service.CheckoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, decimal.NewFromInt(200).Equal(result.ItemsAmount))
	assert.True(t, decimal.NewFromInt(230).Equal(result.TotalAmount))

	w, env = s.do(http.MethodPost, "/api/coffee/checkout", ann, gin.H{
		"delivery_address": "1 Main St",
		"items":            []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "NO_ITEMS_SELECTED", env.Code)

	w, env = s.do(http.MethodGet, "/api/coffee/orders/history", ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []model.Order
	require.NoError(t, json.Unmarshal(env.Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, result.OrderID, history[0].ID)

	orderPath := fmt.Sprintf("/api/coffee/orders/%d", result.OrderID)
	w, _ = s.do(http.MethodGet, orderPath, ann, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(http.MethodGet, orderPath, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCESS_DENIED", env.Code)
	w, _ = s.do(http.MethodGet, "/api/coffee/orders/9999", ann, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/coffee/orders/history/export", ann, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/coffee/cart/%d/S", b.ID), ann, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/coffee/cart/%d/S", b.ID), ann, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/coffee/cart", ann, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
