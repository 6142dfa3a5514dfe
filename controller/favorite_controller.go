package controller

import (
	"net/http"

	"coffeeshop/service"

	"github.com/gin-gonic/gin"
)

type favoriteRequest struct {
	CoffeeID     uint   `json:"coffee_id" binding:"required"`
	SelectedSize string `json:"selected_size" binding:"required"`
}

type favoriteResponse struct {
	CoffeeID     uint   `json:"id"`
	SelectedSize string `json:"selected_size"`
}

func GetFavorites(favorites *service.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		lines, err := favorites.List(c.Request.Context(), userID)
		if err != nil {
			RespondError(c, err)
			return
		}

		out := make([]favoriteResponse, 0, len(lines))
		for _, l := range lines {
			out = append(out, favoriteResponse{CoffeeID: l.CoffeeID, SelectedSize: l.Size})
		}
		respond(c, http.StatusOK, "Favorites retrieved successfully", out)
	}
}

func AddFavorite(favorites *service.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req favoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "coffee_id and selected_size are required")
			return
		}

		if err := favorites.Add(c.Request.Context(), userID, req.CoffeeID, req.SelectedSize); err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Coffee added to favorites", nil)
	}
}

// RemoveFavorite deletes one size when ?size= is given, otherwise every size of the coffee.
func RemoveFavorite(favorites *service.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		coffeeID, ok := paramID(c, "coffeeId")
		if !ok {
			return
		}

		if err := favorites.Remove(c.Request.Context(), userID, coffeeID, c.Query("size")); err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Coffee removed from favorites", nil)
	}
}
