package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	dispatchService *service.DispatchService
	lifecycle       *service.TripLifecycle
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(dispatchService *service.DispatchService, lifecycle *service.TripLifecycle) *TripHandler {
	return &TripHandler{
		dispatchService: dispatchService,
		lifecycle:       lifecycle,
	}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	Stops          []string `json:"stops,omitempty"`
	PreferredDate  string   `json:"preferred_date"`
	PreferredTime  string   `json:"preferred_time"`
	ReturnDate     string   `json:"return_date,omitempty"`
	ReturnTime     string   `json:"return_time,omitempty"`
	Category       string   `json:"category"`
	Priority       string   `json:"priority,omitempty"`
	PassengerCount int      `json:"passenger_count"`
	PassengerNames []string `json:"passenger_names,omitempty"`
	ContactName    string   `json:"contact_name"`
	ContactPhone   string   `json:"contact_phone"`
	ContactEmail   string   `json:"contact_email"`
	VehicleType    string   `json:"vehicle_type,omitempty"`
}

// ConfirmAssignmentRequest is the HTTP request body for confirming a trip.
type ConfirmAssignmentRequest struct {
	DriverID      string  `json:"driver_id"`
	VehicleID     string  `json:"vehicle_id"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// TransitionRequest is the HTTP request body for a status change.
type TransitionRequest struct {
	Target string `json:"target"`
	Reason string `json:"reason,omitempty"`
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	ID                  string   `json:"id"`
	Origin              string   `json:"origin"`
	Destination         string   `json:"destination"`
	Stops               []string `json:"stops,omitempty"`
	OriginLat           *float64 `json:"origin_lat,omitempty"`
	OriginLng           *float64 `json:"origin_lng,omitempty"`
	DestinationLat      *float64 `json:"destination_lat,omitempty"`
	DestinationLng      *float64 `json:"destination_lng,omitempty"`
	EstimatedDistanceKm float64  `json:"estimated_distance_km,omitempty"`
	PreferredDate       string   `json:"preferred_date"`
	PreferredTime       string   `json:"preferred_time"`
	ReturnDate          string   `json:"return_date,omitempty"`
	ReturnTime          string   `json:"return_time,omitempty"`
	Category            string   `json:"category"`
	Priority            string   `json:"priority,omitempty"`
	PassengerCount      int      `json:"passenger_count"`
	PassengerNames      []string `json:"passenger_names,omitempty"`
	ContactName         string   `json:"contact_name"`
	ContactPhone        string   `json:"contact_phone"`
	ContactEmail        string   `json:"contact_email"`
	VehicleType         string   `json:"vehicle_type,omitempty"`
	AssignedDriverID    string   `json:"assigned_driver_id,omitempty"`
	AssignedVehicleID   string   `json:"assigned_vehicle_id,omitempty"`
	EstimatedCost       float64  `json:"estimated_cost,omitempty"`
	Status              string   `json:"status"`
	CancelReason        string   `json:"cancel_reason,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// EligibleResourcesResponse is the HTTP response for candidate listing.
type EligibleResourcesResponse struct {
	Drivers  []DriverResponse  `json:"drivers"`
	Vehicles []VehicleResponse `json:"vehicles"`
}

// QuoteResponse is the HTTP response for a cost estimation.
type QuoteResponse struct {
	DistanceKm          float64 `json:"distance_km"`
	BaseCost            float64 `json:"base_cost"`
	DistanceCost        float64 `json:"distance_cost"`
	PassengerCost       float64 `json:"passenger_cost"`
	TimeCost            float64 `json:"time_cost"`
	CategoryMultiplier  float64 `json:"category_multiplier"`
	RoundTripMultiplier float64 `json:"round_trip_multiplier"`
	PriorityMultiplier  float64 `json:"priority_multiplier"`
	Subtotal            float64 `json:"subtotal"`
	FuelCost            float64 `json:"fuel_cost"`
	Total               float64 `json:"total"`
}

// CreateTrip handles POST /v1/trips
func (h *TripHandler) CreateTrip(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.dispatchService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		Origin:         req.Origin,
		Destination:    req.Destination,
		Stops:          req.Stops,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		ReturnDate:     req.ReturnDate,
		ReturnTime:     req.ReturnTime,
		Category:       req.Category,
		Priority:       req.Priority,
		PassengerCount: req.PassengerCount,
		PassengerNames: req.PassengerNames,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		VehicleType:    req.VehicleType,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, tripToResponse(trip))
}

// GetTrip handles GET /v1/trips/:id
func (h *TripHandler) GetTrip(c *gin.Context) {
	trip, err := h.dispatchService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripToResponse(trip))
}

// GetAll handles GET /v1/trips
func (h *TripHandler) GetAll(c *gin.Context) {
	trips, err := h.dispatchService.GetAllTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		response = append(response, tripToResponse(trip))
	}

	c.JSON(http.StatusOK, response)
}

// ListEligibleResources handles GET /v1/trips/:id/eligible
func (h *TripHandler) ListEligibleResources(c *gin.Context) {
	eligible, err := h.dispatchService.ListEligibleResources(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := EligibleResourcesResponse{
		Drivers:  make([]DriverResponse, 0, len(eligible.Drivers)),
		Vehicles: make([]VehicleResponse, 0, len(eligible.Vehicles)),
	}
	for _, d := range eligible.Drivers {
		response.Drivers = append(response.Drivers, driverToResponse(d))
	}
	for _, v := range eligible.Vehicles {
		response.Vehicles = append(response.Vehicles, vehicleToResponse(v))
	}

	respondJSON(c, http.StatusOK, response)
}

// EstimateCost handles GET /v1/trips/:id/estimate?driver_id=&vehicle_id=
func (h *TripHandler) EstimateCost(c *gin.Context) {
	quote, err := h.dispatchService.EstimateCost(
		c.Request.Context(),
		c.Param("id"),
		c.Query("driver_id"),
		c.Query("vehicle_id"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, QuoteResponse{
		DistanceKm:          quote.DistanceKm,
		BaseCost:            quote.BaseCost,
		DistanceCost:        quote.DistanceCost,
		PassengerCost:       quote.PassengerCost,
		TimeCost:            quote.TimeCost,
		CategoryMultiplier:  quote.CategoryMultiplier,
		RoundTripMultiplier: quote.RoundTripMultiplier,
		PriorityMultiplier:  quote.PriorityMultiplier,
		Subtotal:            quote.Subtotal,
		FuelCost:            quote.FuelCost,
		Total:               quote.Total,
	})
}

// ConfirmAssignment handles POST /v1/trips/:id/confirm
func (h *TripHandler) ConfirmAssignment(c *gin.Context) {
	var req ConfirmAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.lifecycle.ConfirmAssignment(c.Request.Context(), service.ConfirmAssignmentRequest{
		TripID:        c.Param("id"),
		DriverID:      req.DriverID,
		VehicleID:     req.VehicleID,
		EstimatedCost: req.EstimatedCost,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripToResponse(trip))
}

// Transition handles POST /v1/trips/:id/transition
func (h *TripHandler) Transition(c *gin.Context) {
	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.lifecycle.Transition(c.Request.Context(), service.TransitionRequest{
		TripID: c.Param("id"),
		Target: domain.TripStatus(req.Target),
		Reason: req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, tripToResponse(trip))
}

func tripToResponse(trip *domain.Trip) TripResponse {
	resp := TripResponse{
		ID:                  trip.ID,
		Origin:              trip.Origin,
		Destination:         trip.Destination,
		Stops:               trip.Stops,
		EstimatedDistanceKm: trip.EstimatedDistanceKm,
		PreferredDate:       trip.PreferredDate,
		PreferredTime:       trip.PreferredTime,
		ReturnDate:          trip.ReturnDate,
		ReturnTime:          trip.ReturnTime,
		Category:            string(trip.Category),
		Priority:            string(trip.Priority),
		PassengerCount:      trip.PassengerCount,
		PassengerNames:      trip.PassengerNames,
		ContactName:         trip.ContactName,
		ContactPhone:        trip.ContactPhone,
		ContactEmail:        trip.ContactEmail,
		VehicleType:         trip.VehicleType,
		AssignedDriverID:    trip.AssignedDriverID,
		AssignedVehicleID:   trip.AssignedVehicleID,
		EstimatedCost:       trip.EstimatedCost,
		Status:              string(trip.Status),
		CancelReason:        trip.CancelReason,
		CreatedAt:           trip.CreatedAt.Format(timeLayout),
		UpdatedAt:           trip.UpdatedAt.Format(timeLayout),
	}

	if trip.OriginCoords != nil {
		resp.OriginLat = &trip.OriginCoords.Lat
		resp.OriginLng = &trip.OriginCoords.Lng
	}
	if trip.DestinationCoords != nil {
		resp.DestinationLat = &trip.DestinationCoords.Lat
		resp.DestinationLng = &trip.DestinationCoords.Lng
	}

	return resp
}
