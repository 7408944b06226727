package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	resourceService *service.ResourceService
	driverRepo      repository.DriverRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(resourceService *service.ResourceService, driverRepo repository.DriverRepository) *DriverHandler {
	return &DriverHandler{
		resourceService: resourceService,
		driverRepo:      driverRepo,
	}
}

// RegisterDriverRequest is the HTTP request body for driver onboarding.
type RegisterDriverRequest struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	LicenseType     string  `json:"license_type"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `json:"rating"`
	BaseRate        float64 `json:"base_rate"`
	PerKmRate       float64 `json:"per_km_rate"`
}

// AvailabilityRequest is the HTTP request body for availability changes.
type AvailabilityRequest struct {
	Availability string `json:"availability"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone,omitempty"`
	LicenseType     string  `json:"license_type,omitempty"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `json:"rating"`
	Availability    string  `json:"availability"`
	BaseRate        float64 `json:"base_rate"`
	PerKmRate       float64 `json:"per_km_rate"`
	Active          bool    `json:"active"`
}

// Register handles POST /v1/drivers/register
func (h *DriverHandler) Register(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.resourceService.RegisterDriver(c.Request.Context(), service.RegisterDriverRequest{
		Name:            req.Name,
		Phone:           req.Phone,
		LicenseType:     req.LicenseType,
		ExperienceYears: req.ExperienceYears,
		Rating:          req.Rating,
		BaseRate:        req.BaseRate,
		PerKmRate:       req.PerKmRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverToResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, driverToResponse(d))
	}

	c.JSON(http.StatusOK, response)
}

// SetAvailability handles POST /v1/drivers/:id/availability
func (h *DriverHandler) SetAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	driver, err := h.resourceService.SetDriverAvailability(c.Request.Context(), c.Param("id"), req.Availability)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driverToResponse(driver))
}

// Deactivate handles POST /v1/drivers/:id/deactivate
func (h *DriverHandler) Deactivate(c *gin.Context) {
	if err := h.resourceService.DeactivateDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func driverToResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		Phone:           d.Phone,
		LicenseType:     d.LicenseType,
		ExperienceYears: d.ExperienceYears,
		Rating:          d.Rating,
		Availability:    string(d.Availability),
		BaseRate:        d.BaseRate,
		PerKmRate:       d.PerKmRate,
		Active:          d.Active,
	}
}
