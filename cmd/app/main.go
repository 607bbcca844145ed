package main

import (
	"context"
	"log"

	"GameMarketAPI/external/midtrans"
	"GameMarketAPI/internal/config"
	"GameMarketAPI/internal/db"
	"GameMarketAPI/internal/repository"
	"GameMarketAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	ctx := context.Background()

	// ======================
	// INFRA
	// ======================
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Fatal(err)
	}
	if cfg.SeedData {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatal(err)
		}
	}

	// ======================
	// EXTERNALS
	// ======================
	snapClient := midtrans.NewSnapClient(cfg.Midtrans.ServerKey)

	// ======================
	// REPOSITORIES
	// ======================
	catalogRepo := repository.NewCatalogRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(userRepo)
	catalogSvc := services.NewCatalogService(catalogRepo)
	ratingSvc := services.NewRatingService(catalogRepo)
	orderSvc := services.NewOrderService(orderRepo, catalogRepo)
	paymentSvc := services.NewPaymentService(orderRepo, snapClient, cfg.Midtrans.ServerKey)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/game-market")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerProductRoutes(api, catalogSvc)
	registerRatingRoutes(api, ratingSvc)
	registerOrderRoutes(api, orderSvc)
	registerPaymentRoutes(api, paymentSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.HTTP.Host + ":" + cfg.HTTP.Port))
}
