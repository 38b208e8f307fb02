package course

import "fmt"

const (
	metersPerKilometer = 1000.0
	metersPerMile      = 1609.344

	// powerLabelRadius limits power labels to points sitting close to a
	// segment start, so a coarse downsample does not advertise a target
	// watts minutes after the segment actually began.
	powerLabelRadius = 50.0
)

// assignPowerTargets picks at most one retained point per segment
// boundary: the first point at or past the boundary start, provided it
// still sits inside the segment and within powerLabelRadius of the
// start. A boundary whose nearest eligible point lies outside the
// radius yields no label.
func assignPowerTargets(boundaries []SegmentBoundary, kept []indexedPoint) map[int]SegmentBoundary {
	if len(boundaries) == 0 || len(kept) == 0 {
		return nil
	}
	marks := make(map[int]SegmentBoundary, len(boundaries))
	for _, b := range boundaries {
		best := -1
		bestDelta := 0.0
		for _, p := range kept {
			d := p.Point.Distance
			if d < b.StartDistance || d >= b.EndDistance {
				continue
			}
			delta := d - b.StartDistance
			if delta >= powerLabelRadius {
				continue
			}
			if best < 0 || delta < bestDelta {
				best = p.Index
				bestDelta = delta
			}
		}
		if best >= 0 {
			marks[best] = b
		}
	}
	return marks
}

// annotate resolves at most one label per retained point. A checkpoint
// assignment wins over a power target; a point neither map claims stays
// unlabeled.
func annotate(kept []indexedPoint, checkpoints map[int]Checkpoint, powers map[int]SegmentBoundary, units UnitSystem) []AnnotatedPoint {
	annotated := make([]AnnotatedPoint, len(kept))
	for i, p := range kept {
		annotated[i] = AnnotatedPoint{
			Point: p.Point,
			Label: resolveLabel(p, checkpoints, powers, units),
		}
	}
	return annotated
}

func resolveLabel(p indexedPoint, checkpoints map[int]Checkpoint, powers map[int]SegmentBoundary, units UnitSystem) Label {
	if cp, ok := checkpoints[p.Index]; ok {
		return Label{Kind: LabelCheckpoint, Text: checkpointText(cp, units)}
	}
	if b, ok := powers[p.Index]; ok {
		return Label{Kind: LabelPowerTarget, Text: fmt.Sprintf("Power %.0fW", b.TargetPowerWatts)}
	}
	return Label{}
}

func checkpointText(cp Checkpoint, units UnitSystem) string {
	value, suffix := convertDistance(cp.DistanceMeters, units)
	return fmt.Sprintf("%.1f%s %s", value, suffix, formatClock(cp.ElapsedTimeSeconds))
}

func convertDistance(meters float64, units UnitSystem) (float64, string) {
	if units == UnitsImperial {
		return meters / metersPerMile, "mi"
	}
	return meters / metersPerKilometer, "km"
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
