package main

import (
	"net/http"

	"GameMarketAPI/internal/middleware"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerAuthRoutes mounts registration and login.
func registerAuthRoutes(g *echo.Group, as *services.AuthService) {
	g.POST("/auth/register", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		id, err := as.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
	})

	g.POST("/auth/login", func(c echo.Context) error {
		req := new(credentialsRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		user, err := as.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, 72)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not issue token"})
		}
		return c.JSON(http.StatusOK, map[string]string{"token": token})
	})
}
