package tests

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/domain"
	"dispatch/internal/geo"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

func newDispatchService(trips *MockTripRepository, drivers *MockDriverRepository, vehicles *MockVehicleRepository) *service.DispatchService {
	resolver := geo.NewResolver("", "lk")
	return service.NewDispatchService(
		trips,
		drivers,
		vehicles,
		service.NewResourceMatcher(drivers, vehicles),
		service.NewPricingCalculator(resolver),
		resolver,
		nil,
	)
}

func validCreateRequest() service.CreateTripRequest {
	return service.CreateTripRequest{
		Origin:         "Colombo",
		Destination:    "Kandy",
		PreferredDate:  "2026-09-20",
		PreferredTime:  "08:00",
		Category:       "Tour",
		PassengerCount: 2,
		ContactName:    "Nimal Perera",
		ContactPhone:   "+94771234567",
		ContactEmail:   "nimal@example.com",
	}
}

func TestCreateTrip_PersistsPendingWithRoute(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	svc := newDispatchService(trips, NewMockDriverRepository(), NewMockVehicleRepository())

	trip, err := svc.CreateTrip(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trip.ID == "" {
		t.Error("expected generated trip ID")
	}
	if trip.Status != domain.TripStatusPending {
		t.Errorf("expected pending status, got %s", trip.Status)
	}
	if trip.OriginCoords == nil || trip.DestinationCoords == nil {
		t.Fatal("expected resolved route coordinates")
	}
	if trip.EstimatedDistanceKm <= 0 {
		t.Errorf("expected positive estimated distance, got %v", trip.EstimatedDistanceKm)
	}
	if stored := trips.GetTrip(trip.ID); stored == nil {
		t.Error("trip not persisted")
	}
}

func TestCreateTrip_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := newDispatchService(NewMockTripRepository(), NewMockDriverRepository(), NewMockVehicleRepository())

	cases := []struct {
		name   string
		mutate func(*service.CreateTripRequest)
		want   error
	}{
		{"missing origin", func(r *service.CreateTripRequest) { r.Origin = "" }, service.ErrInvalidOrigin},
		{"missing destination", func(r *service.CreateTripRequest) { r.Destination = "" }, service.ErrInvalidDestination},
		{"zero passengers", func(r *service.CreateTripRequest) { r.PassengerCount = 0 }, service.ErrInvalidPassengerCount},
		{"unknown category", func(r *service.CreateTripRequest) { r.Category = "Submarine" }, service.ErrInvalidCategory},
		{"unknown priority", func(r *service.CreateTripRequest) { r.Priority = "urgent" }, service.ErrInvalidPriority},
		{"missing contact phone", func(r *service.CreateTripRequest) { r.ContactPhone = "" }, service.ErrMissingContact},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.CreateTrip(context.Background(), req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateTrip_UnsetPriorityAccepted(t *testing.T) {
	t.Parallel()

	svc := newDispatchService(NewMockTripRepository(), NewMockDriverRepository(), NewMockVehicleRepository())

	req := validCreateRequest()
	req.Priority = ""
	trip, err := svc.CreateTrip(context.Background(), req)
	if err != nil {
		t.Fatalf("unset priority must be valid: %v", err)
	}
	if trip.Priority != domain.Priority("") {
		t.Errorf("expected unset priority, got %q", trip.Priority)
	}
}

func TestListEligibleResources_UnknownTrip(t *testing.T) {
	t.Parallel()

	svc := newDispatchService(NewMockTripRepository(), NewMockDriverRepository(), NewMockVehicleRepository())

	_, err := svc.ListEligibleResources(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEstimateCost_ThroughService(t *testing.T) {
	t.Parallel()

	trips := NewMockTripRepository()
	drivers := NewMockDriverRepository()
	vehicles := NewMockVehicleRepository()

	trip := pendingTrip("t1")
	trip.EstimatedDistanceKm = 115
	trip.Category = domain.CategoryTour
	trips.AddTrip(trip)
	drivers.AddDriver(&domain.Driver{ID: "d1", Availability: domain.DriverAvailable, Active: true, BaseRate: 50, PerKmRate: 2})
	vehicles.AddVehicle(&domain.Vehicle{ID: "v1", SeatingCapacity: 4, Category: domain.CategoryTour, Availability: domain.VehicleAvailable, BaseCost: 30, PerKmCost: 2, FuelEfficiency: 10})

	svc := newDispatchService(trips, drivers, vehicles)

	quote, err := svc.EstimateCost(context.Background(), "t1", "d1", "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Total < service.MinimumFare {
		t.Errorf("total %v below minimum fare", quote.Total)
	}
	if quote.DistanceKm != 115 {
		t.Errorf("expected cached distance, got %v", quote.DistanceKm)
	}

	if _, err := svc.EstimateCost(context.Background(), "t1", "", "v1"); !errors.Is(err, service.ErrInvalidDriverID) {
		t.Errorf("expected ErrInvalidDriverID, got %v", err)
	}
	if _, err := svc.EstimateCost(context.Background(), "t1", "d1", "ghost"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown vehicle, got %v", err)
	}
}

func TestRegisterDriver_ClampsRating(t *testing.T) {
	t.Parallel()

	drivers := NewMockDriverRepository()
	svc := service.NewResourceService(drivers, NewMockVehicleRepository())

	driver, err := svc.RegisterDriver(context.Background(), service.RegisterDriverRequest{
		Name:   "Kamal",
		Rating: 7.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.Rating != 5 {
		t.Errorf("expected rating clamped to 5, got %v", driver.Rating)
	}
	if driver.Availability != domain.DriverAvailable || !driver.Active {
		t.Errorf("new driver should be active and available, got %+v", driver)
	}
}

func TestSetDriverAvailability_RejectsUnknownState(t *testing.T) {
	t.Parallel()

	drivers := NewMockDriverRepository()
	seedDriver(drivers, "d1", 4.0, 3)
	svc := service.NewResourceService(drivers, NewMockVehicleRepository())

	if _, err := svc.SetDriverAvailability(context.Background(), "d1", "napping"); !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	driver, err := svc.SetDriverAvailability(context.Background(), "d1", "on-leave")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driver.Availability != domain.DriverOnLeave {
		t.Errorf("expected on-leave, got %s", driver.Availability)
	}
}

func TestRegisterVehicle_Validation(t *testing.T) {
	t.Parallel()

	svc := service.NewResourceService(NewMockDriverRepository(), NewMockVehicleRepository())

	if _, err := svc.RegisterVehicle(context.Background(), service.RegisterVehicleRequest{
		VehicleType: "van", SeatingCapacity: 0, Category: "Casual",
	}); !errors.Is(err, service.ErrInvalidPassengerCount) {
		t.Errorf("expected ErrInvalidPassengerCount, got %v", err)
	}

	vehicle, err := svc.RegisterVehicle(context.Background(), service.RegisterVehicleRequest{
		VehicleType: "van", SeatingCapacity: 8, Category: "Safari",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vehicle.Availability != domain.VehicleAvailable {
		t.Errorf("new vehicle should be available, got %s", vehicle.Availability)
	}
	if vehicle.Category != domain.CategorySafari {
		t.Errorf("expected Safari category, got %s", vehicle.Category)
	}
}
