package plan

import "github.com/faist23/rideweather/internal/course"

// Grade bands for segmenting a route. A segment closes whenever the
// band changes and the open segment is long enough to stand alone.
const (
	climbGradePct   = 3.0
	descentGradePct = -1.0

	minSegmentMeters = 500.0

	climbPowerFactor   = 0.95
	flatPowerFactor    = 0.75
	descentPowerFactor = 0.55
)

type gradeBand int

const (
	bandFlat gradeBand = iota
	bandClimb
	bandDescent
)

// GenerateSegments splits a route into grade-homogeneous pacing segments
// with power targets derived from the rider's FTP. Time estimates come
// from a simplified flat-speed model adjusted by grade; they are
// deliberately coarse and exist to seed checkpoints, not to predict
// race times.
func GenerateSegments(points []course.RoutePoint, ftpWatts float64) []course.PacingSegment {
	if len(points) < 2 || ftpWatts <= 0 {
		return nil
	}

	var segments []course.PacingSegment
	segStart := 0.0
	segGradeSum := 0.0
	segGradeN := 0
	band := bandFor(gradeBetween(points[0], points[1]))

	closeSegment := func(end float64) {
		length := end - segStart
		if length <= 0 {
			return
		}
		avgGrade := 0.0
		if segGradeN > 0 {
			avgGrade = segGradeSum / float64(segGradeN)
		}
		watts := ftpWatts * powerFactor(band)
		segments = append(segments, course.PacingSegment{
			DistanceMeters:       length,
			TargetPowerWatts:     watts,
			EstimatedTimeSeconds: length / speedFor(watts, avgGrade),
		})
		segStart = end
		segGradeSum = 0
		segGradeN = 0
	}

	for i := 1; i < len(points); i++ {
		g := gradeBetween(points[i-1], points[i])
		segGradeSum += g
		segGradeN++

		next := bandFor(g)
		if next != band && points[i].Distance-segStart >= minSegmentMeters {
			closeSegment(points[i].Distance)
			band = next
		}
	}
	closeSegment(points[len(points)-1].Distance)

	return segments
}

// gradeBetween returns the percent grade between two consecutive points.
func gradeBetween(a, b course.RoutePoint) float64 {
	run := b.Distance - a.Distance
	if run <= 0 || a.Elevation == nil || b.Elevation == nil {
		return 0
	}
	return (*b.Elevation - *a.Elevation) / run * 100
}

func bandFor(gradePct float64) gradeBand {
	switch {
	case gradePct >= climbGradePct:
		return bandClimb
	case gradePct <= descentGradePct:
		return bandDescent
	default:
		return bandFlat
	}
}

func powerFactor(band gradeBand) float64 {
	switch band {
	case bandClimb:
		return climbPowerFactor
	case bandDescent:
		return descentPowerFactor
	default:
		return flatPowerFactor
	}
}

// speedFor maps target watts and average grade to a riding speed in m/s.
// Roughly 30 km/h at 250W on the flat, slower uphill, faster downhill,
// clamped to keep the estimate sane on extreme grades.
func speedFor(watts, gradePct float64) float64 {
	speedKmh := watts * 0.12
	speedKmh *= 1 - gradePct*0.09
	if speedKmh < 5 {
		speedKmh = 5
	}
	if speedKmh > 60 {
		speedKmh = 60
	}
	return speedKmh / 3.6
}
