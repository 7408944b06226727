package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	resourceService *service.ResourceService
	vehicleRepo     repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(resourceService *service.ResourceService, vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{
		resourceService: resourceService,
		vehicleRepo:     vehicleRepo,
	}
}

// RegisterVehicleRequest is the HTTP request body for vehicle onboarding.
type RegisterVehicleRequest struct {
	VehicleType     string  `json:"vehicle_type"`
	Model           string  `json:"model"`
	SeatingCapacity int     `json:"seating_capacity"`
	Category        string  `json:"category"`
	BaseCost        float64 `json:"base_cost"`
	PerKmCost       float64 `json:"per_km_cost"`
	FuelEfficiency  float64 `json:"fuel_efficiency,omitempty"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID              string  `json:"id"`
	VehicleType     string  `json:"vehicle_type"`
	Model           string  `json:"model"`
	SeatingCapacity int     `json:"seating_capacity"`
	Category        string  `json:"category"`
	Availability    string  `json:"availability"`
	BaseCost        float64 `json:"base_cost"`
	PerKmCost       float64 `json:"per_km_cost"`
	FuelEfficiency  float64 `json:"fuel_efficiency,omitempty"`
}

// Register handles POST /v1/vehicles/register
func (h *VehicleHandler) Register(c *gin.Context) {
	var req RegisterVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.resourceService.RegisterVehicle(c.Request.Context(), service.RegisterVehicleRequest{
		VehicleType:     req.VehicleType,
		Model:           req.Model,
		SeatingCapacity: req.SeatingCapacity,
		Category:        req.Category,
		BaseCost:        req.BaseCost,
		PerKmCost:       req.PerKmCost,
		FuelEfficiency:  req.FuelEfficiency,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleToResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, vehicleToResponse(v))
	}

	c.JSON(http.StatusOK, response)
}

// SetAvailability handles POST /v1/vehicles/:id/availability
func (h *VehicleHandler) SetAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.resourceService.SetVehicleAvailability(c.Request.Context(), c.Param("id"), req.Availability)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, vehicleToResponse(vehicle))
}

func vehicleToResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		VehicleType:     v.VehicleType,
		Model:           v.Model,
		SeatingCapacity: v.SeatingCapacity,
		Category:        string(v.Category),
		Availability:    string(v.Availability),
		BaseCost:        v.BaseCost,
		PerKmCost:       v.PerKmCost,
		FuelEfficiency:  v.FuelEfficiency,
	}
}
