package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dispatch/internal/domain"
	"dispatch/internal/geo"
	"dispatch/internal/repository"
)

// DispatchService handles trip intake and the operator-facing dispatch
// operations: listing eligible resources and quoting assignments.
type DispatchService struct {
	tripRepo     repository.TripRepository
	driverRepo   repository.DriverRepository
	vehicleRepo  repository.VehicleRepository
	matcher      *ResourceMatcher
	pricing      *PricingCalculator
	resolver     *geo.Resolver
	notification *NotificationService
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(
	tripRepo repository.TripRepository,
	driverRepo repository.DriverRepository,
	vehicleRepo repository.VehicleRepository,
	matcher *ResourceMatcher,
	pricing *PricingCalculator,
	resolver *geo.Resolver,
	notification *NotificationService,
) *DispatchService {
	return &DispatchService{
		tripRepo:     tripRepo,
		driverRepo:   driverRepo,
		vehicleRepo:  vehicleRepo,
		matcher:      matcher,
		pricing:      pricing,
		resolver:     resolver,
		notification: notification,
	}
}

// CreateTripRequest contains the parameters for a customer trip request.
type CreateTripRequest struct {
	Origin         string
	Destination    string
	Stops          []string
	PreferredDate  string
	PreferredTime  string
	ReturnDate     string
	ReturnTime     string
	Category       string
	Priority       string
	PassengerCount int
	PassengerNames []string
	ContactName    string
	ContactPhone   string
	ContactEmail   string
	VehicleType    string
}

// CreateTrip validates and persists a new trip request in pending state.
// Route coordinates and distance are resolved up front and cached on the
// trip so later pricing calls skip the geocoder.
func (s *DispatchService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	if req.Origin == "" {
		return nil, ErrInvalidOrigin
	}
	if req.Destination == "" {
		return nil, ErrInvalidDestination
	}
	if req.PassengerCount < 1 {
		return nil, ErrInvalidPassengerCount
	}
	category, ok := domain.ParseCategory(req.Category)
	if !ok {
		return nil, ErrInvalidCategory
	}
	priority, ok := domain.ParsePriority(req.Priority)
	if !ok {
		return nil, ErrInvalidPriority
	}
	if req.ContactName == "" || req.ContactPhone == "" || req.ContactEmail == "" {
		return nil, ErrMissingContact
	}

	now := time.Now()
	trip := &domain.Trip{
		ID:             uuid.New().String(),
		Origin:         req.Origin,
		Destination:    req.Destination,
		Stops:          req.Stops,
		PreferredDate:  req.PreferredDate,
		PreferredTime:  req.PreferredTime,
		ReturnDate:     req.ReturnDate,
		ReturnTime:     req.ReturnTime,
		Category:       category,
		Priority:       priority,
		PassengerCount: req.PassengerCount,
		PassengerNames: req.PassengerNames,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		VehicleType:    req.VehicleType,
		Status:         domain.TripStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Resolution never fails; worst case the fallback coordinates make the
	// distance an approximation.
	origin := s.resolver.Resolve(ctx, trip.Origin)
	destination := s.resolver.Resolve(ctx, trip.Destination)
	trip.OriginCoords = &origin
	trip.DestinationCoords = &destination
	trip.EstimatedDistanceKm = geo.DistanceKm(origin, destination)

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, err
	}

	if s.notification != nil {
		_ = s.notification.NotifyTripRequested(ctx, trip)
	}

	return trip, nil
}

// GetTrip retrieves a trip by ID.
func (s *DispatchService) GetTrip(ctx context.Context, tripID string) (*domain.Trip, error) {
	if tripID == "" {
		return nil, ErrInvalidTripID
	}
	return s.tripRepo.GetByID(ctx, tripID)
}

// GetAllTrips retrieves all trips.
func (s *DispatchService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.tripRepo.GetAll(ctx)
}

// ListEligibleResources returns ranked candidate drivers and vehicles for a
// pending trip.
func (s *DispatchService) ListEligibleResources(ctx context.Context, tripID string) (EligibleResources, error) {
	if tripID == "" {
		return EligibleResources{}, ErrInvalidTripID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return EligibleResources{}, err
	}

	return s.matcher.FindEligible(ctx, trip)
}

// EstimateCost quotes the cost of assigning the given driver and vehicle to
// the trip.
func (s *DispatchService) EstimateCost(ctx context.Context, tripID, driverID, vehicleID string) (Quote, error) {
	if tripID == "" {
		return Quote{}, ErrInvalidTripID
	}
	if driverID == "" {
		return Quote{}, ErrInvalidDriverID
	}
	if vehicleID == "" {
		return Quote{}, ErrInvalidVehicleID
	}

	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return Quote{}, err
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return Quote{}, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return Quote{}, err
	}

	return s.pricing.EstimateCost(ctx, trip, driver, vehicle), nil
}
