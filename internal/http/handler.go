package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-route-service/internal/model"
	"fleet-route-service/internal/service"
)

type Handler struct {
	geocodeService   *service.GeocodeService
	routeService     *service.RouteService
	vehicleService   *service.VehicleService
	deliveryService  *service.DeliveryService
	settingService   *service.SettingService
	dashboardService *service.DashboardService
	log              zerolog.Logger
}

func NewHandler(
	geocodeService *service.GeocodeService,
	routeService *service.RouteService,
	vehicleService *service.VehicleService,
	deliveryService *service.DeliveryService,
	settingService *service.SettingService,
	dashboardService *service.DashboardService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		geocodeService:   geocodeService,
		routeService:     routeService,
		vehicleService:   vehicleService,
		deliveryService:  deliveryService,
		settingService:   settingService,
		dashboardService: dashboardService,
		log:              log,
	}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.index)

	api := r.Group("/api")
	{
		api.POST("/geocode", h.geocode)
		api.POST("/calculate-route", h.calculateRoute)

		api.GET("/veiculos", h.listVehicles)
		api.POST("/veiculos", h.createVehicle)
		api.GET("/veiculos/:id", h.getVehicle)
		api.PUT("/veiculos/:id", h.updateVehicle)
		api.DELETE("/veiculos/:id", h.deleteVehicle)

		api.GET("/entregas", h.listDeliveries)
		api.POST("/entregas", h.createDelivery)
		api.GET("/entregas/export", h.exportDeliveries)
		api.GET("/entregas/:id", h.getDelivery)
		api.PUT("/entregas/:id", h.updateDelivery)
		api.DELETE("/entregas/:id", h.deleteDelivery)

		api.GET("/rotas", h.listRoutes)

		api.GET("/configuracoes", h.listSettings)
		api.POST("/configuracoes", h.saveSettings)

		api.GET("/dashboard/stats", h.dashboardStats)
		api.GET("/dashboard/charts", h.dashboardCharts)
	}
}

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{
		"current_time": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (h *Handler) geocode(c *gin.Context) {
	var req struct {
		Address string `json:"endereco" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.geocodeService.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lat":          result.Lat,
		"lon":          result.Lon,
		"display_name": result.DisplayName,
	})
}

func (h *Handler) calculateRoute(c *gin.Context) {
	var req struct {
		Waypoints [][]float64 `json:"waypoints" binding:"required"`
		Name      string      `json:"nome"`
		VehicleID *string     `json:"veiculo_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	waypoints := make([]model.Waypoint, 0, len(req.Waypoints))
	for _, pair := range req.Waypoints {
		if len(pair) != 2 {
			c.JSON(http.StatusBadRequest, errorResponse("each waypoint must be a [lat, lon] pair"))
			return
		}
		waypoints = append(waypoints, model.Waypoint{Lat: pair[0], Lon: pair[1]})
	}

	estimate, err := h.routeService.Estimate(c.Request.Context(), service.EstimateInput{
		Name:      req.Name,
		VehicleID: req.VehicleID,
		Waypoints: waypoints,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"distance":          estimate.DistanceKm,
		"duration":          estimate.DurationMin,
		"geometry":          estimate.Geometry,
		"custo_combustivel": estimate.FuelCost,
		"custo_funcionario": estimate.LaborCost,
		"custo_total":       estimate.TotalCost,
		"steps":             estimate.Steps,
	})
}

type vehicleRequest struct {
	Plate           string   `json:"placa"`
	Type            string   `json:"tipo"`
	Model           string   `json:"modelo"`
	Capacity        float64  `json:"capacidade"`
	FuelConsumption float64  `json:"consumo"`
	HourlyCost      *float64 `json:"custo_hora"`
	Status          string   `json:"status"`
	Color           string   `json:"cor"`
}

func (r vehicleRequest) toInput() service.VehicleInput {
	return service.VehicleInput{
		Plate:           r.Plate,
		Type:            r.Type,
		Model:           r.Model,
		Capacity:        r.Capacity,
		FuelConsumption: r.FuelConsumption,
		HourlyCost:      r.HourlyCost,
		Status:          r.Status,
		Color:           r.Color,
	}
}

func (h *Handler) listVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) createVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

func (h *Handler) getVehicle(c *gin.Context) {
	vehicle, err := h.vehicleService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) updateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	if err := h.vehicleService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type deliveryRequest struct {
	Client    string  `json:"cliente"`
	Address   string  `json:"endereco"`
	Weight    float64 `json:"peso"`
	Volume    float64 `json:"volume"`
	Deadline  string  `json:"prazo"`
	Status    string  `json:"status"`
	Priority  string  `json:"prioridade"`
	Note      string  `json:"observacao"`
	VehicleID *string `json:"veiculo_id"`
}

func (r deliveryRequest) toInput() service.DeliveryInput {
	return service.DeliveryInput{
		Client:    r.Client,
		Address:   r.Address,
		Weight:    r.Weight,
		Volume:    r.Volume,
		Deadline:  r.Deadline,
		Status:    r.Status,
		Priority:  r.Priority,
		Note:      r.Note,
		VehicleID: r.VehicleID,
	}
}

func (h *Handler) listDeliveries(c *gin.Context) {
	deliveries, err := h.deliveryService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

func (h *Handler) createDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	delivery, err := h.deliveryService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

func (h *Handler) getDelivery(c *gin.Context) {
	delivery, err := h.deliveryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

func (h *Handler) updateDelivery(c *gin.Context) {
	var req deliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	delivery, err := h.deliveryService.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

func (h *Handler) deleteDelivery(c *gin.Context) {
	if err := h.deliveryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// exportDeliveries answers 200 even when the export fails; the export is a
// batch convenience and its failures stay soft.
func (h *Handler) exportDeliveries(c *gin.Context) {
	path, ok, err := h.deliveryService.Export(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "export failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "file": path})
}

func (h *Handler) listRoutes(c *gin.Context) {
	routes, err := h.routeService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *Handler) listSettings(c *gin.Context) {
	settings, err := h.settingService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) saveSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.settingService.Save(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handler) dashboardCharts(c *gin.Context) {
	charts, err := h.dashboardService.Charts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, charts)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrRouteUnavailable):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse(err.Error()))
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
