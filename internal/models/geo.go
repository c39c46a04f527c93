// server/internal/models/geo.go
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GeoPoint is a GeoJSON Point. Coordinates are ordered [longitude, latitude],
// matching the 2dsphere index convention. Callers never build one by hand;
// NewGeoPoint and ParseCoordinatePair are the only write paths, so a document
// can never be persisted with a malformed pair.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

var (
	ErrCoordinateArity = errors.New("coordinates must be a \"longitude, latitude\" pair")
	ErrCoordinateValue = errors.New("coordinates must be finite numbers")
)

// NewGeoPoint builds a validated Point from a longitude/latitude pair.
func NewGeoPoint(longitude, latitude float64) (GeoPoint, error) {
	for _, v := range []float64{longitude, latitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return GeoPoint{}, ErrCoordinateValue
		}
	}
	if longitude < -180 || longitude > 180 {
		return GeoPoint{}, fmt.Errorf("longitude %v out of range [-180, 180]", longitude)
	}
	if latitude < -90 || latitude > 90 {
		return GeoPoint{}, fmt.Errorf("latitude %v out of range [-90, 90]", latitude)
	}

	return GeoPoint{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}, nil
}

// ParseCoordinatePair parses a "longitude, latitude" form value, e.g.
// "77.5, 12.9". Longitude comes first.
func ParseCoordinatePair(s string) (GeoPoint, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return GeoPoint{}, ErrCoordinateArity
	}

	values := make([]float64, 2)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return GeoPoint{}, ErrCoordinateValue
		}
		values[i] = v
	}

	return NewGeoPoint(values[0], values[1])
}
