package route

import (
	"coffeeshop/auth"
	"coffeeshop/controller"
	"coffeeshop/service"
	"coffeeshop/utils"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Catalog   *service.CatalogService
	Favorites *service.FavoriteService
	Carts     *service.CartService
	Orders    *service.OrderService
	Accounts  *service.AccountService
	Images    service.ImageStore
	Tokens    *utils.JWTManager
}

func CoffeeRoutes(router *gin.Engine, d Dependencies) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", auth.Register(d.Accounts))
		authGroup.POST("/login", auth.Login(d.Accounts))
		authGroup.POST("/refresh", auth.RefreshToken(d.Accounts))
	}

	coffee := router.Group("/api/coffee")
	{
		coffee.GET("", controller.GetCoffees(d.Catalog))
		coffee.GET("/types", controller.GetCoffeeTypes(d.Catalog))
		coffee.GET("/image/:name", controller.GetCoffeeImage(d.Images))
	}

	user := coffee.Group("")
	user.Use(utils.AuthMiddleware(d.Tokens, d.Accounts))
	{
		user.GET("/favorites", controller.GetFavorites(d.Favorites))
		user.POST("/favorites", controller.AddFavorite(d.Favorites))
		user.DELETE("/favorites/:coffeeId", controller.RemoveFavorite(d.Favorites))

		user.GET("/cart", controller.GetCart(d.Carts))
		user.POST("/cart", controller.AddToCart(d.Carts))
		user.DELETE("/cart", controller.ClearCart(d.Carts))
		user.PUT("/cart/:coffeeId/:size", controller.UpdateCartQuantity(d.Carts))
		user.DELETE("/cart/:coffeeId/:size", controller.RemoveFromCart(d.Carts))

		user.POST("/checkout", controller.Checkout(d.Orders))
		user.GET("/orders/history", controller.GetOrderHistory(d.Orders))
		user.GET("/orders/history/export", controller.ExportOrderHistory(d.Orders))
		user.GET("/orders/:orderId", controller.GetOrderDetails(d.Orders))
	}
}
