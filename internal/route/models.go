package route

import (
	"time"

	"github.com/faist23/rideweather/internal/course"
)

// Route is a stored ride route. Points are kept as a JSON document next
// to the summary columns; routes are read back whole for course builds.
type Route struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	SourceFormat   string    `json:"source_format"`
	DistanceM      float64   `json:"distance_m"`
	ElevationGainM float64   `json:"elevation_gain_m"`
	ElevationLossM float64   `json:"elevation_loss_m"`
	PointCount     int       `json:"point_count"`
	CreatedAt      time.Time `json:"created_at"`

	Points []course.RoutePoint `json:"points,omitempty"`
}

// Summary is the list view of a route, without points.
type Summary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DistanceM      float64   `json:"distance_m"`
	ElevationGainM float64   `json:"elevation_gain_m"`
	PointCount     int       `json:"point_count"`
	CreatedAt      time.Time `json:"created_at"`
}
