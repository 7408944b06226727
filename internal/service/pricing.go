package service

import (
	"context"
	"math"

	"dispatch/internal/domain"
	"dispatch/internal/geo"
)

// Pricing constants. Every rate and multiplier in the quote formula is a
// named constant so operators can reproduce and override quotes by hand.
const (
	// PerPassengerRate is added per passenger on the trip.
	PerPassengerRate = 10.0

	// PerHourRate bills estimated travel time.
	PerHourRate = 15.0

	// MinimumBillableHours is the time-cost floor: short hops still bill
	// two hours of driver time.
	MinimumBillableHours = 2.0

	// AssumedAverageSpeedKmh converts distance to estimated travel time.
	AssumedAverageSpeedKmh = 40.0

	// RoundTripMultiplier applies when the trip has a return leg. Below
	// 2.0 since the return positioning is already paid for.
	RoundTripMultiplier = 1.8

	// DefaultFuelEfficiencyKmPerLiter is assumed when a vehicle's fuel
	// efficiency is unknown.
	DefaultFuelEfficiencyKmPerLiter = 10.0

	// FuelPricePerLiter feeds the fuel surcharge.
	FuelPricePerLiter = 3.7

	// MinimumFare floors every quote.
	MinimumFare = 50.0
)

// CategoryMultiplier returns the pricing multiplier for a vehicle category.
// Casual is the baseline.
func CategoryMultiplier(c domain.Category) float64 {
	switch c {
	case domain.CategoryLuxury:
		return 2.0
	case domain.CategorySafari:
		return 1.6
	case domain.CategoryTour:
		return 1.4
	case domain.CategoryAdventure:
		return 1.3
	case domain.CategoryCasual:
		return 1.0
	default:
		return 1.0
	}
}

// PriorityMultiplier returns the pricing multiplier for a trip priority.
// Unset priority is the baseline.
func PriorityMultiplier(p domain.Priority) float64 {
	switch p {
	case domain.PriorityHigh:
		return 1.5
	case domain.PriorityMedium:
		return 1.2
	case domain.PriorityLow:
		return 1.0
	default:
		return 1.0
	}
}

// Quote is the itemized result of a cost estimation.
type Quote struct {
	DistanceKm          float64
	BaseCost            float64
	DistanceCost        float64
	PassengerCost       float64
	TimeCost            float64
	CategoryMultiplier  float64
	RoundTripMultiplier float64
	PriorityMultiplier  float64
	Subtotal            float64
	FuelCost            float64
	Total               float64
}

// PricingCalculator computes estimated trip costs from distance, category
// and resource rates. Malformed inputs default to documented constants
// rather than failing, consistent with the resolver's
// availability-over-precision policy.
type PricingCalculator struct {
	resolver *geo.Resolver
}

// NewPricingCalculator creates a new PricingCalculator.
func NewPricingCalculator(resolver *geo.Resolver) *PricingCalculator {
	return &PricingCalculator{resolver: resolver}
}

// EstimateCost produces an itemized quote for assigning driver and vehicle
// to the trip. The trip's cached distance is used when present; otherwise
// the route is resolved and measured.
func (p *PricingCalculator) EstimateCost(ctx context.Context, trip *domain.Trip, driver *domain.Driver, vehicle *domain.Vehicle) Quote {
	distanceKm := p.tripDistanceKm(ctx, trip)

	baseCost := driver.BaseRate + vehicle.BaseCost
	distanceCost := distanceKm * (driver.PerKmRate + vehicle.PerKmCost)

	passengers := trip.PassengerCount
	if passengers < 1 {
		passengers = 1
	}
	passengerCost := float64(passengers) * PerPassengerRate

	billableHours := math.Max(MinimumBillableHours, distanceKm/AssumedAverageSpeedKmh)
	timeCost := billableHours * PerHourRate

	roundTrip := 1.0
	if trip.RoundTrip() {
		roundTrip = RoundTripMultiplier
	}

	categoryMult := CategoryMultiplier(vehicle.Category)
	priorityMult := PriorityMultiplier(trip.Priority)

	subtotal := (baseCost + distanceCost + passengerCost + timeCost) * categoryMult * roundTrip * priorityMult

	efficiency := vehicle.FuelEfficiency
	if efficiency <= 0 {
		efficiency = DefaultFuelEfficiencyKmPerLiter
	}
	fuelCost := (distanceKm / efficiency) * FuelPricePerLiter

	total := subtotal + fuelCost
	if total < MinimumFare {
		total = MinimumFare
	}

	return Quote{
		DistanceKm:          distanceKm,
		BaseCost:            round2(baseCost),
		DistanceCost:        round2(distanceCost),
		PassengerCost:       round2(passengerCost),
		TimeCost:            round2(timeCost),
		CategoryMultiplier:  categoryMult,
		RoundTripMultiplier: roundTrip,
		PriorityMultiplier:  priorityMult,
		Subtotal:            round2(subtotal),
		FuelCost:            round2(fuelCost),
		Total:               round2(total),
	}
}

// tripDistanceKm returns the trip's cached distance, resolving and
// measuring the route when absent.
func (p *PricingCalculator) tripDistanceKm(ctx context.Context, trip *domain.Trip) float64 {
	if trip.EstimatedDistanceKm > 0 {
		return trip.EstimatedDistanceKm
	}

	origin := trip.OriginCoords
	if origin == nil {
		c := p.resolver.Resolve(ctx, trip.Origin)
		origin = &c
	}
	destination := trip.DestinationCoords
	if destination == nil {
		c := p.resolver.Resolve(ctx, trip.Destination)
		destination = &c
	}

	return geo.DistanceKm(*origin, *destination)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
