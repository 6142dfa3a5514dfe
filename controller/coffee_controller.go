package controller

import (
	"net/http"

	"coffeeshop/service"

	"github.com/gin-gonic/gin"
)

func GetCoffeeTypes(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := catalog.ListTypes(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Coffee types retrieved successfully", types)
	}
}

func GetCoffees(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		coffees, err := catalog.ListCoffees(c.Request.Context())
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Coffees retrieved successfully", coffees)
	}
}

func GetCoffeeImage(images service.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		body, size, err := images.Open(name)
		if err != nil {
			RespondError(c, err)
			return
		}
		defer body.Close()

		c.DataFromReader(http.StatusOK, size, service.ImageContentType(name), body, nil)
	}
}
