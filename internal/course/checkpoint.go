package course

// generateCheckpoints emits a checkpoint every interval meters, starting
// at the first interval and stopping before the route end.
func generateCheckpoints(segments []PacingSegment, interval, totalDistance float64) []Checkpoint {
	if interval <= 0 {
		return nil
	}
	var checkpoints []Checkpoint
	for d := interval; d < totalDistance; d += interval {
		checkpoints = append(checkpoints, Checkpoint{
			DistanceMeters:     d,
			ElapsedTimeSeconds: elapsedTimeAt(segments, d),
		})
	}
	return checkpoints
}

// elapsedTimeAt estimates time to reach distance d by walking the plan
// segments in order. Inside a segment the estimate is linear in distance,
// not in time: pace is assumed uniform within a segment.
func elapsedTimeAt(segments []PacingSegment, d float64) float64 {
	elapsed := 0.0
	segmentStart := 0.0
	for _, seg := range segments {
		if d <= segmentStart {
			break
		}
		segmentEnd := segmentStart + seg.DistanceMeters
		if d >= segmentEnd {
			elapsed += seg.EstimatedTimeSeconds
			segmentStart = segmentEnd
			continue
		}
		if seg.DistanceMeters > 0 {
			elapsed += seg.EstimatedTimeSeconds * (d - segmentStart) / seg.DistanceMeters
		}
		break
	}
	return elapsed
}

// assignCheckpoints maps every checkpoint to the retained point nearest
// by distance, keyed by the point's original route index. When two
// checkpoints resolve to the same point the later one in distance order
// overwrites the earlier (last-write-wins).
func assignCheckpoints(checkpoints []Checkpoint, kept []indexedPoint) map[int]Checkpoint {
	if len(checkpoints) == 0 || len(kept) == 0 {
		return nil
	}
	assignments := make(map[int]Checkpoint, len(checkpoints))
	for _, cp := range checkpoints {
		best := kept[0].Index
		bestDelta := absf(kept[0].Point.Distance - cp.DistanceMeters)
		for _, p := range kept[1:] {
			delta := absf(p.Point.Distance - cp.DistanceMeters)
			if delta < bestDelta {
				best = p.Index
				bestDelta = delta
			}
		}
		assignments[best] = cp
	}
	return assignments
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
