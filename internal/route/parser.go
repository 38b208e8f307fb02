package route

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/faist23/rideweather/internal/course"
	"github.com/faist23/rideweather/internal/shared/geo"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported route file format")
	ErrNoTrackData       = errors.New("route file contains no usable track points")
)

// Parse decodes a route file into ordered points with cumulative distance.
// The format is chosen by file extension; .gpx and .fit are supported.
func Parse(filename string, data []byte) ([]course.RoutePoint, string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gpx":
		points, err := parseGPX(data)
		return points, "gpx", err
	case ".fit":
		points, err := parseFIT(data)
		return points, "fit", err
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// rawPoint is a decoded track point before distance accumulation.
type rawPoint struct {
	lat, lon     float64
	elevation    float64
	hasElevation bool
}

// accumulate assigns cumulative haversine distance to decoded points.
func accumulate(raw []rawPoint) ([]course.RoutePoint, error) {
	if len(raw) < 2 {
		return nil, ErrNoTrackData
	}

	points := make([]course.RoutePoint, len(raw))
	distance := 0.0
	for i, rp := range raw {
		if i > 0 {
			prev := raw[i-1]
			distance += geo.HaversineKm(prev.lat, prev.lon, rp.lat, rp.lon) * 1000
		}
		p := course.RoutePoint{Lat: rp.lat, Lon: rp.lon, Distance: distance}
		if rp.hasElevation {
			e := rp.elevation
			p.Elevation = &e
		}
		points[i] = p
	}
	return points, nil
}
