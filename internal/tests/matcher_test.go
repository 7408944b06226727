package tests

import (
	"context"
	"testing"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

func seedDriver(repo *MockDriverRepository, id string, rating float64, experience int) {
	repo.AddDriver(&domain.Driver{
		ID:              id,
		Name:            "Driver " + id,
		Rating:          rating,
		ExperienceYears: experience,
		Availability:    domain.DriverAvailable,
		Active:          true,
	})
}

func seedVehicle(repo *MockVehicleRepository, id string, capacity int, category domain.Category, vehicleType string) {
	repo.AddVehicle(&domain.Vehicle{
		ID:              id,
		VehicleType:     vehicleType,
		SeatingCapacity: capacity,
		Category:        category,
		Availability:    domain.VehicleAvailable,
	})
}

func TestFindEligible_CapacityFilter(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "d1", 4.5, 5)
	seedVehicle(vehicleRepo, "small", 2, domain.CategoryCasual, "car")
	seedVehicle(vehicleRepo, "van", 8, domain.CategoryCasual, "van")

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	result, err := matcher.FindEligible(context.Background(), &domain.Trip{PassengerCount: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Vehicles) != 1 {
		t.Fatalf("expected 1 eligible vehicle, got %d", len(result.Vehicles))
	}
	if result.Vehicles[0].ID != "van" {
		t.Errorf("expected van to survive the capacity filter, got %s", result.Vehicles[0].ID)
	}
}

func TestFindEligible_DriverRanking(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "rookie", 4.0, 1)
	seedDriver(driverRepo, "veteran", 4.8, 12)
	seedDriver(driverRepo, "senior", 4.8, 3)
	seedDriver(driverRepo, "junior", 3.5, 20)
	seedVehicle(vehicleRepo, "v1", 4, domain.CategoryCasual, "car")

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	result, err := matcher.FindEligible(context.Background(), &domain.Trip{PassengerCount: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"veteran", "senior", "rookie", "junior"}
	if len(result.Drivers) != len(want) {
		t.Fatalf("expected %d drivers, got %d", len(want), len(result.Drivers))
	}
	for i, id := range want {
		if result.Drivers[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, result.Drivers[i].ID)
		}
	}
}

func TestFindEligible_VehicleRankingSmallestSufficientFirst(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "d1", 4.5, 5)
	seedVehicle(vehicleRepo, "bus", 30, domain.CategoryCasual, "bus")
	seedVehicle(vehicleRepo, "sedan", 4, domain.CategoryCasual, "car")
	seedVehicle(vehicleRepo, "van", 8, domain.CategoryCasual, "van")

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	result, err := matcher.FindEligible(context.Background(), &domain.Trip{PassengerCount: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"sedan", "van", "bus"}
	for i, id := range want {
		if result.Vehicles[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, result.Vehicles[i].ID)
		}
	}
}

func TestFindEligible_CategoryPreferenceIsAdvisory(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "d1", 4.5, 5)
	// Same capacity: the category match should rank first, the mismatch
	// must still be listed.
	seedVehicle(vehicleRepo, "plain", 6, domain.CategoryCasual, "van")
	seedVehicle(vehicleRepo, "jeep", 6, domain.CategorySafari, "jeep")

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	trip := &domain.Trip{PassengerCount: 4, Category: domain.CategorySafari}
	result, err := matcher.FindEligible(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Vehicles) != 2 {
		t.Fatalf("category filter must not exclude vehicles, got %d of 2", len(result.Vehicles))
	}
	if result.Vehicles[0].ID != "jeep" {
		t.Errorf("expected category match ranked first, got %s", result.Vehicles[0].ID)
	}
}

func TestFindEligible_VehicleTypeHintPreferred(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "d1", 4.5, 5)
	seedVehicle(vehicleRepo, "sedan", 4, domain.CategoryCasual, "car")
	seedVehicle(vehicleRepo, "mini", 4, domain.CategoryCasual, "Van")

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	trip := &domain.Trip{PassengerCount: 2, Category: domain.CategoryTour, VehicleType: "van"}
	result, err := matcher.FindEligible(context.Background(), trip)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Vehicles[0].ID != "mini" {
		t.Errorf("expected type-hint match ranked first, got %s", result.Vehicles[0].ID)
	}
}

func TestFindEligible_ExcludesBoundResources(t *testing.T) {
	t.Parallel()

	driverRepo := NewMockDriverRepository()
	vehicleRepo := NewMockVehicleRepository()
	seedDriver(driverRepo, "free", 4.0, 5)
	seedDriver(driverRepo, "busy", 5.0, 10)
	seedVehicle(vehicleRepo, "open", 4, domain.CategoryCasual, "car")
	seedVehicle(vehicleRepo, "taken", 4, domain.CategoryCasual, "car")

	if err := driverRepo.BindIfAvailable(context.Background(), "busy"); err != nil {
		t.Fatalf("bind driver: %v", err)
	}
	if err := vehicleRepo.BindIfAvailable(context.Background(), "taken"); err != nil {
		t.Fatalf("bind vehicle: %v", err)
	}

	matcher := service.NewResourceMatcher(driverRepo, vehicleRepo)
	result, err := matcher.FindEligible(context.Background(), &domain.Trip{PassengerCount: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Drivers) != 1 || result.Drivers[0].ID != "free" {
		t.Errorf("expected only the free driver, got %+v", result.Drivers)
	}
	if len(result.Vehicles) != 1 || result.Vehicles[0].ID != "open" {
		t.Errorf("expected only the open vehicle, got %+v", result.Vehicles)
	}
}

func TestFindEligible_EmptyPools(t *testing.T) {
	t.Parallel()

	matcher := service.NewResourceMatcher(NewMockDriverRepository(), NewMockVehicleRepository())
	result, err := matcher.FindEligible(context.Background(), &domain.Trip{PassengerCount: 2})
	if err != nil {
		t.Fatalf("empty pools must not error: %v", err)
	}
	if !result.Empty() {
		t.Error("expected empty result")
	}
}
