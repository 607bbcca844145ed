package main

import (
	"net/http"
	"strconv"

	"GameMarketAPI/internal/middleware"
	"GameMarketAPI/internal/model"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type productRequest struct {
	Name     string  `json:"name"`
	Genre    string  `json:"genre"`
	Platform int     `json:"platform"`
	Rating   int     `json:"rating"`
	Price    float64 `json:"price"`
}

// registerProductRoutes mounts catalog endpoints.
// Public:
//
//	GET /products              -> filtered, sorted, paginated listing
//	GET /products/search       -> name search (?term=&limit=&offset=)
//	GET /products/topPlatforms -> top three platforms by product count
//	GET /products/:id          -> single product
//
// Protected (admin):
//
//	POST /products, PUT /products/:id, DELETE /products/:id
func registerProductRoutes(g *echo.Group, cs *services.CatalogService) {
	g.GET("/products", func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))
		minAge, _ := strconv.Atoi(c.QueryParam("age"))

		q := model.ProductQuery{
			Genre:         c.QueryParam("genre"),
			MinAge:        minAge,
			SortBy:        c.QueryParam("sortBy"),
			SortDirection: c.QueryParam("sortDir"),
			Page:          page,
			PageSize:      pageSize,
		}
		list, err := cs.ListProducts(c.Request().Context(), q)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/search", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		list, err := cs.SearchProducts(c.Request().Context(), c.QueryParam("term"), limit, offset)
		if err != nil {
			return jsonError(c, err)
		}
		if list == nil {
			list = []model.Product{}
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/products/topPlatforms", func(c echo.Context) error {
		top, err := cs.TopPlatforms(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, top)
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		product, err := cs.GetProduct(c.Request().Context(), id)
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	protected := g.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.AdminOnly)

	protected.POST("/products", func(c echo.Context) error {
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product, err := cs.CreateProduct(c.Request().Context(), &model.Product{
			Name:     req.Name,
			Genre:    req.Genre,
			Platform: model.Platform(req.Platform),
			Rating:   model.AgeRating(req.Rating),
			Price:    req.Price,
		})
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusCreated, product)
	})

	protected.PUT("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		req := new(productRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		product, err := cs.UpdateProduct(c.Request().Context(), &model.Product{
			ID:       id,
			Name:     req.Name,
			Genre:    req.Genre,
			Platform: model.Platform(req.Platform),
			Rating:   model.AgeRating(req.Rating),
			Price:    req.Price,
		})
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, product)
	})

	protected.DELETE("/products/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		if err := cs.DeleteProduct(c.Request().Context(), id); err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
