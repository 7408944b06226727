package domain

// VehicleAvailability represents the current availability of a vehicle.
type VehicleAvailability string

const (
	VehicleAvailable   VehicleAvailability = "Available"
	VehicleUnavailable VehicleAvailability = "Unavailable"
	VehicleMaintenance VehicleAvailability = "Maintenance"
	VehicleBooked      VehicleAvailability = "Booked"
)

// ParseVehicleAvailability validates an availability string.
func ParseVehicleAvailability(s string) (VehicleAvailability, bool) {
	switch VehicleAvailability(s) {
	case VehicleAvailable, VehicleUnavailable, VehicleMaintenance, VehicleBooked:
		return VehicleAvailability(s), true
	default:
		return "", false
	}
}

// Vehicle represents a candidate resource for trip assignment.
type Vehicle struct {
	ID              string
	VehicleType     string
	Model           string
	SeatingCapacity int
	Category        Category
	Availability    VehicleAvailability
	BaseCost        float64
	PerKmCost       float64
	FuelEfficiency  float64 // km per liter; 0 means unknown
}
