package main

import (
	"fmt"
	"os"

	"fleet-route-service/internal/client"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/db"
	"fleet-route-service/internal/export"
	httphandler "fleet-route-service/internal/http"
	"fleet-route-service/internal/logger"
	"fleet-route-service/internal/repository"
	"fleet-route-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	settingRepo := repository.NewSettingRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	deliveryRepo := repository.NewDeliveryRepository(database)
	routeRepo := repository.NewRouteRepository(database)

	geocodeClient := client.NewGeocodeClient(cfg.ExternalServices.GeocoderURL)
	routingClient := client.NewRoutingClient(cfg.ExternalServices.RouterURL)

	exporter := export.NewDeliveryExporter(cfg.Export.DeliveriesPath, appLogger)

	geocodeService := service.NewGeocodeService(geocodeClient)
	routeService := service.NewRouteService(routingClient, settingRepo, routeRepo, vehicleRepo, appLogger)
	vehicleService := service.NewVehicleService(vehicleRepo, deliveryRepo, routeRepo)
	deliveryService := service.NewDeliveryService(deliveryRepo, vehicleRepo, exporter)
	settingService := service.NewSettingService(settingRepo)
	dashboardService := service.NewDashboardService(vehicleRepo, deliveryRepo, routeRepo)

	handler := httphandler.NewHandler(
		geocodeService,
		routeService,
		vehicleService,
		deliveryService,
		settingService,
		dashboardService,
		appLogger,
	)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting fleet route service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
