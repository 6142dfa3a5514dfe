package controller

import (
	"net/http"

	"coffeeshop/service"

	"github.com/gin-gonic/gin"
)

type cartAddRequest struct {
	CoffeeID     uint   `json:"coffee_id" binding:"required"`
	SelectedSize string `json:"selected_size" binding:"required"`
	Quantity     *int   `json:"quantity"`
}

type cartQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func GetCart(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		summary, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Cart retrieved successfully", summary)
	}
}

func AddToCart(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req cartAddRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "coffee_id and selected_size are required")
			return
		}
		quantity := 1
		if req.Quantity != nil {
			quantity = *req.Quantity
		}

		created, err := carts.Add(c.Request.Context(), userID, req.CoffeeID, req.SelectedSize, quantity)
		if err != nil {
			RespondError(c, err)
			return
		}
		if created {
			respond(c, http.StatusCreated, "Coffee added to cart", nil)
			return
		}
		respond(c, http.StatusOK, "Cart item quantity updated", nil)
	}
}

func UpdateCartQuantity(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		coffeeID, ok := paramID(c, "coffeeId")
		if !ok {
			return
		}

		var req cartQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "quantity is required")
			return
		}

		if err := carts.UpdateQuantity(c.Request.Context(), userID, coffeeID, c.Param("size"), *req.Quantity); err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Cart item quantity updated", nil)
	}
}

func RemoveFromCart(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		coffeeID, ok := paramID(c, "coffeeId")
		if !ok {
			return
		}

		if err := carts.Remove(c.Request.Context(), userID, coffeeID, c.Param("size")); err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Cart item removed", nil)
	}
}

func ClearCart(carts *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		if err := carts.Clear(c.Request.Context(), userID); err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Cart cleared", nil)
	}
}
