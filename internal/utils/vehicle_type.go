package utils

import "strings"

// NormalizeVehicleType folds a vehicle type label to its stored form, so
// "Car", " car " and "CAR" all name the same category.
func NormalizeVehicleType(vehicleType string) string {
	return strings.ToLower(strings.TrimSpace(vehicleType))
}
