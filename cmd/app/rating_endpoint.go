package main

import (
	"net/http"
	"strconv"

	"GameMarketAPI/internal/middleware"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type createRatingRequest struct {
	Rating int `json:"rating"`
}

// registerRatingRoutes mounts rating endpoints (authenticated):
//
//	POST   /products/:id/ratings -> rate a product (once per user)
//	DELETE /products/:id/ratings -> withdraw own rating
func registerRatingRoutes(g *echo.Group, rs *services.RatingService) {
	protected := g.Group("")
	protected.Use(middleware.JWTMiddleware())

	protected.POST("/products/:id/ratings", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(createRatingRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		rating, err := rs.CreateRating(c.Request().Context(), claims.UserID, productID, req.Rating)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, rating)
	})

	protected.DELETE("/products/:id/ratings", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
		}
		productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := rs.DeleteRating(c.Request().Context(), claims.UserID, productID); err != nil {
			return jsonError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
