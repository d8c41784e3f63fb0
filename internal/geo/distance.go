package geo

import (
	"fmt"
	"math"

	"bloodconnect/pkg/types"
)

const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two points in
// decimal degrees using the haversine formula on a spherical Earth.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// ValidateCoordinate checks that lat is within [-90,90] and lon within
// [-180,180]. NaN and infinities are rejected.
func ValidateCoordinate(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", types.ErrInvalidCoordinate, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %v out of range", types.ErrInvalidCoordinate, lon)
	}
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
