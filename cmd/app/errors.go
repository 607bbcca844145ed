package main

import (
	"net/http"

	"GameMarketAPI/internal/apperr"

	"github.com/labstack/echo/v4"
)

// jsonError maps business error kinds onto HTTP statuses:
// NotFound -> 404, InvalidData/InvalidOperation -> 400, everything else -> 500.
// Only the business kinds expose their message; the 500 branch wraps store
// and driver errors whose text is not for clients.
func jsonError(c echo.Context, err error) error {
	if kind, ok := apperr.KindOf(err); ok {
		switch kind {
		case apperr.NotFound:
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		case apperr.InvalidData, apperr.InvalidOperation:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
