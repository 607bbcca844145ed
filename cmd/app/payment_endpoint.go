package main

import (
	"net/http"
	"strconv"

	"GameMarketAPI/internal/middleware"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
)

// registerPaymentRoutes mounts checkout endpoints:
//
//	POST /payments/snap?orderId=       -> snap redirect URL (authenticated)
//	POST /payments/midtrans/notification -> gateway webhook (public)
func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	protected := g.Group("")
	protected.Use(middleware.JWTMiddleware())

	protected.POST("/payments/snap", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		orderID, err := strconv.ParseInt(c.QueryParam("orderId"), 10, 64)
		if err != nil || orderID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid orderId"})
		}
		url, err := ps.CreateSnapPayment(c.Request().Context(), claims.UserID, orderID)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"redirect_url": url})
	})

	g.POST("/payments/midtrans/notification", func(c echo.Context) error {
		payload := map[string]interface{}{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := ps.HandleNotification(c.Request().Context(), payload); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusOK)
	})
}
