package main

import (
	"net/http"
	"strconv"
	"time"

	"GameMarketAPI/internal/middleware"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createOrderRequest struct {
	Items []model.OrderItemInput `json:"items"`
}

type updateOrderItemsRequest struct {
	Items []model.OrderItemInput `json:"items"`
}

type removeOrderItemsRequest struct {
	ProductIDs []int64 `json:"productids"`
}

type orderResponse struct {
	ID           int64             `json:"id"`
	Items        []model.OrderItem `json:"items"`
	Amount       int               `json:"amount"`
	TotalAmount  float64           `json:"totalamount"`
	IsPaid       bool              `json:"ispaid"`
	Status       model.OrderStatus `json:"status"`
	CreationDate time.Time         `json:"creationdate"`
}

func toOrderResponse(o *model.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		Items:        o.Items,
		Amount:       o.Amount(),
		TotalAmount:  o.TotalAmount(),
		IsPaid:       o.IsPaid,
		Status:       o.Status,
		CreationDate: o.CreationDate,
	}
}

// registerOrderRoutes mounts order endpoints (all authenticated):
//
//	POST   /orders           -> create order from (product, quantity) pairs
//	GET    /orders           -> list own orders, or one via ?orderId=
//	PUT    /orders/:id/items -> overwrite quantities of existing line items
//	DELETE /orders/:id/items -> remove line items (empty order is deleted)
//	POST   /orders/:id/buy   -> finalize; the order becomes immutable
func registerOrderRoutes(g *echo.Group, os *services.OrderService) {
	protected := g.Group("")
	protected.Use(middleware.JWTMiddleware())

	protected.POST("/orders", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		req := new(createOrderRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		order, err := os.CreateOrder(c.Request().Context(), claims.UserID, req.Items)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, toOrderResponse(order))
	})

	protected.GET("/orders", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orderID, _ := strconv.ParseInt(c.QueryParam("orderId"), 10, 64)
		orders, err := os.GetOrders(c.Request().Context(), claims.UserID, orderID)
		if err != nil {
			return jsonError(c, err)
		}
		resp := make([]orderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i]))
		}
		return c.JSON(http.StatusOK, resp)
	})

	protected.PUT("/orders/:id/items", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(updateOrderItemsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		order, err := os.UpdateOrderItems(c.Request().Context(), claims.UserID, orderID, req.Items)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, toOrderResponse(order))
	})

	protected.DELETE("/orders/:id/items", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(removeOrderItemsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := os.RemoveOrderItems(c.Request().Context(), claims.UserID, orderID, req.ProductIDs); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})

	protected.POST("/orders/:id/buy", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := os.BuyItems(c.Request().Context(), claims.UserID, orderID); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
