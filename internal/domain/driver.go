package domain

// DriverAvailability represents the current availability of a driver.
type DriverAvailability string

const (
	DriverAvailable   DriverAvailability = "available"
	DriverOnTrip      DriverAvailability = "on-trip"
	DriverOnLeave     DriverAvailability = "on-leave"
	DriverOffline     DriverAvailability = "offline"
	DriverMaintenance DriverAvailability = "maintenance"
)

// ParseDriverAvailability validates an availability string.
func ParseDriverAvailability(s string) (DriverAvailability, bool) {
	switch DriverAvailability(s) {
	case DriverAvailable, DriverOnTrip, DriverOnLeave, DriverOffline, DriverMaintenance:
		return DriverAvailability(s), true
	default:
		return "", false
	}
}

// Driver represents a candidate resource for trip assignment.
type Driver struct {
	ID              string
	Name            string
	Phone           string
	LicenseType     string
	ExperienceYears int
	Rating          float64 // 0–5
	Availability    DriverAvailability
	BaseRate        float64
	PerKmRate       float64
	Active          bool // drivers are deactivated, never deleted
}
