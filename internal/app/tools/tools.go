package tools

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// Location - a reference point on the ground
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GetLocation parses a "lat,lon" string
func GetLocation(data string) (Location, error) {
	result := Location{}
	latlon := strings.Split(data, ",")
	if len(latlon) != 2 {
		return result, errors.New("Location malformed - need , for separating lat and lon coordinate")
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(latlon[0]), 64)
	if errLat != nil {
		return result, errLat
	}
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(latlon[1]), 64)
	if errLon != nil {
		return result, errLon
	}
	if lat < -90 || lat > 90 {
		return result, errors.New("Location malformed - latitude out of range")
	}
	if lon < -180 || lon > 180 {
		return result, errors.New("Location malformed - longitude out of range")
	}
	result.Lat = lat
	result.Lon = lon
	return result, nil
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm returns the great circle distance in km between two points (haversine)
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := deg2rad(lat1)
	phi2 := deg2rad(lat2)
	dPhi := deg2rad(lat2 - lat1)
	dLambda := deg2rad(lon2 - lon1)

	a := math.Pow(math.Sin(dPhi/2), 2) + math.Cos(phi1)*math.Cos(phi2)*math.Pow(math.Sin(dLambda/2), 2)
	// clamp rounding noise, asin is undefined above 1
	if a > 1 {
		a = 1
	}
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

// Distance from the location to a point, in km
func (l Location) Distance(lat, lon float64) float64 {
	return DistanceKm(l.Lat, l.Lon, lat, lon)
}
