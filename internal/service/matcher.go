package service

import (
	"context"
	"sort"
	"strings"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// ResourceMatcher filters the driver and vehicle pools down to those
// eligible for a trip and ranks them for presentation to the operator.
type ResourceMatcher struct {
	driverRepo  repository.DriverRepository
	vehicleRepo repository.VehicleRepository
}

// NewResourceMatcher creates a new ResourceMatcher.
func NewResourceMatcher(driverRepo repository.DriverRepository, vehicleRepo repository.VehicleRepository) *ResourceMatcher {
	return &ResourceMatcher{
		driverRepo:  driverRepo,
		vehicleRepo: vehicleRepo,
	}
}

// EligibleResources holds the candidate pools for one trip.
type EligibleResources struct {
	Drivers  []*domain.Driver
	Vehicles []*domain.Vehicle
}

// Empty reports whether no driver or no vehicle qualifies, the
// "no resources available" condition surfaced to the operator.
func (e EligibleResources) Empty() bool {
	return len(e.Drivers) == 0 || len(e.Vehicles) == 0
}

// FindEligible returns candidate drivers and vehicles for the trip.
// Resources bound to an active trip never appear: binding flips their
// availability out of the available pool. Empty pools are a valid result,
// never an error.
//
// Drivers are ranked by rating then experience, both descending. Vehicles
// are ranked smallest sufficient capacity first, with vehicles matching the
// trip's category or type hint ahead of equal-capacity non-matches. The
// category and vehicle-type filters are advisory only; operators may
// override, so non-matching vehicles stay in the list.
func (m *ResourceMatcher) FindEligible(ctx context.Context, trip *domain.Trip) (EligibleResources, error) {
	drivers, err := m.driverRepo.GetAvailable(ctx)
	if err != nil {
		return EligibleResources{}, err
	}

	vehicles, err := m.vehicleRepo.GetAvailable(ctx)
	if err != nil {
		return EligibleResources{}, err
	}

	eligible := make([]*domain.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		if v.SeatingCapacity < trip.PassengerCount {
			continue
		}
		eligible = append(eligible, v)
	}

	rankDrivers(drivers)
	rankVehicles(eligible, trip)

	return EligibleResources{Drivers: drivers, Vehicles: eligible}, nil
}

func rankDrivers(drivers []*domain.Driver) {
	sort.SliceStable(drivers, func(i, j int) bool {
		if drivers[i].Rating != drivers[j].Rating {
			return drivers[i].Rating > drivers[j].Rating
		}
		return drivers[i].ExperienceYears > drivers[j].ExperienceYears
	})
}

func rankVehicles(vehicles []*domain.Vehicle, trip *domain.Trip) {
	sort.SliceStable(vehicles, func(i, j int) bool {
		if vehicles[i].SeatingCapacity != vehicles[j].SeatingCapacity {
			return vehicles[i].SeatingCapacity < vehicles[j].SeatingCapacity
		}

		mi := vehicleMatches(vehicles[i], trip)
		mj := vehicleMatches(vehicles[j], trip)
		return mi && !mj
	})
}

// vehicleMatches reports whether the vehicle matches the trip's advisory
// category or vehicle-type hint.
func vehicleMatches(v *domain.Vehicle, trip *domain.Trip) bool {
	if v.Category == trip.Category {
		return true
	}
	if trip.VehicleType != "" && strings.EqualFold(v.VehicleType, trip.VehicleType) {
		return true
	}
	return false
}
