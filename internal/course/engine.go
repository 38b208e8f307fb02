package course

import "fmt"

const (
	// DefaultTargetPoints is the downsample target. Garmin rejects
	// courses above roughly this many geo points.
	DefaultTargetPoints = 3500

	// maxGeoPoints is the hard vendor ceiling checked before handoff.
	// The downsampler targets DefaultTargetPoints but boundary-forced
	// indices can push the result a little above it.
	maxGeoPoints = 3600
)

// Build runs the full pipeline: elevation accounting, segment boundaries,
// checkpoints, downsampling, checkpoint assignment, annotation, and
// payload assembly. It is pure and deterministic; plan may be nil.
func Build(points []RoutePoint, plan *Plan, name, activityType string) (*CoursePayload, error) {
	return BuildWithTarget(points, plan, name, activityType, DefaultTargetPoints)
}

// BuildWithTarget is Build with an explicit downsample target.
func BuildWithTarget(points []RoutePoint, plan *Plan, name, activityType string, target int) (*CoursePayload, error) {
	gain, loss, total, err := accumulateElevation(points)
	if err != nil {
		return nil, err
	}

	var (
		segments []PacingSegment
		units    = UnitsMetric
	)
	if plan != nil {
		segments = plan.Segments
		if plan.Units != "" {
			units = plan.Units
		}
	}

	boundaries := buildBoundaries(segments)

	var checkpoints []Checkpoint
	if plan != nil && plan.CheckpointsEnabled && plan.CheckpointIntervalMeters > 0 {
		checkpoints = generateCheckpoints(segments, plan.CheckpointIntervalMeters, total)
	}

	kept := downsample(points, boundaries, target)
	checkpointMarks := assignCheckpoints(checkpoints, kept)
	powerMarks := assignPowerTargets(boundaries, kept)
	annotated := annotate(kept, checkpointMarks, powerMarks, units)

	return buildPayload(annotated, name, activityType, gain, loss, total, len(segments), len(checkpointMarks))
}

// Summarize validates a route and returns its elevation gain, loss and
// total distance. Used at ingest time so invalid files are rejected
// before they are ever stored.
func Summarize(points []RoutePoint) (gain, loss, total float64, err error) {
	return accumulateElevation(points)
}

// accumulateElevation walks consecutive point pairs once, summing positive
// deltas into gain and negative deltas into loss. A missing elevation
// counts as zero for the delta, it is not skipped.
func accumulateElevation(points []RoutePoint) (gain, loss, total float64, err error) {
	if len(points) < 2 {
		return 0, 0, 0, fmt.Errorf("%w: need at least 2 points, got %d", ErrInvalidRoute, len(points))
	}

	prev := elevationOrZero(points[0])
	for i := 1; i < len(points); i++ {
		if points[i].Distance < points[i-1].Distance {
			return 0, 0, 0, fmt.Errorf("%w: distance decreases at point %d", ErrInvalidRoute, i)
		}
		cur := elevationOrZero(points[i])
		delta := cur - prev
		if delta > 0 {
			gain += delta
		} else {
			loss += -delta
		}
		prev = cur
	}
	return gain, loss, points[len(points)-1].Distance, nil
}

func elevationOrZero(p RoutePoint) float64 {
	if p.Elevation == nil {
		return 0
	}
	return *p.Elevation
}

// buildBoundaries converts ordered pacing segments into contiguous
// absolute-distance intervals. Output order matches input order.
func buildBoundaries(segments []PacingSegment) []SegmentBoundary {
	if len(segments) == 0 {
		return nil
	}
	boundaries := make([]SegmentBoundary, 0, len(segments))
	cursor := 0.0
	for _, seg := range segments {
		boundaries = append(boundaries, SegmentBoundary{
			StartDistance:    cursor,
			EndDistance:      cursor + seg.DistanceMeters,
			TargetPowerWatts: seg.TargetPowerWatts,
		})
		cursor += seg.DistanceMeters
	}
	return boundaries
}
