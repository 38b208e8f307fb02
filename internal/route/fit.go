package route

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tormoder/fit"

	"github.com/faist23/rideweather/internal/course"
)

// parseFIT reads position records out of an activity FIT file. Records
// without a valid position are skipped; altitude outside a plausible
// range counts as missing.
func parseFIT(data []byte) ([]course.RoutePoint, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode fit: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("fit activity expected: %w", err)
	}

	var raw []rawPoint
	for _, rec := range activity.Records {
		if rec == nil {
			continue
		}
		lat := rec.PositionLat.Degrees()
		lon := rec.PositionLong.Degrees()
		if math.IsNaN(lat) || math.IsNaN(lon) {
			continue
		}
		rp := rawPoint{lat: lat, lon: lon}
		if alt := rec.GetAltitudeScaled(); plausibleAltitude(alt) {
			rp.elevation = alt
			rp.hasElevation = true
		}
		raw = append(raw, rp)
	}
	return accumulate(raw)
}

func plausibleAltitude(alt float64) bool {
	return !math.IsNaN(alt) && !math.IsInf(alt, 0) && alt > -500 && alt < 9000
}
