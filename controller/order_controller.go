package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"coffeeshop/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type checkoutItem struct {
	CoffeeID     uint   `json:"coffee_id"`
	SelectedSize string `json:"selected_size"`
}

type checkoutRequest struct {
	DeliveryAddress string          `json:"delivery_address"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	Items           []checkoutItem  `json:"items"`
}

func Checkout(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid checkout request: "+err.Error())
			return
		}

		lines := make([]service.OrderLine, 0, len(req.Items))
		for _, it := range req.Items {
			lines = append(lines, service.OrderLine{CoffeeID: it.CoffeeID, SelectedSize: it.SelectedSize})
		}

		result, err := orders.Checkout(c.Request.Context(), userID, service.CheckoutRequest{
			DeliveryAddress: req.DeliveryAddress,
			DeliveryFee:     req.DeliveryFee,
			Items:           lines,
		})
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Order created successfully", result)
	}
}

func GetOrderHistory(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		history, err := orders.History(c.Request.Context(), userID)
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Order history retrieved successfully", history)
	}
}

func GetOrderDetails(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}
		orderID, ok := paramID(c, "orderId")
		if !ok {
			return
		}

		order, err := orders.Details(c.Request.Context(), userID, orderID)
		if err != nil {
			RespondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Order retrieved successfully", order)
	}
}

func ExportOrderHistory(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUser(c)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := orders.ExportHistory(c.Request.Context(), userID, &buf); err != nil {
			RespondError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%d.xlsx"`, userID))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	}
}
