package course

import "sort"

// boundarySearchWindow bounds the local scan around the estimated index
// when locating the point nearest a segment boundary. Keeps the search
// linear in the number of boundaries rather than O(points × boundaries),
// at the cost of possibly missing the true nearest point on routes with
// very uneven point spacing.
const boundarySearchWindow = 500

// indexedPoint is a retained route point together with its position in
// the original dense route.
type indexedPoint struct {
	Index int
	Point RoutePoint
}

// downsample reduces the route to roughly target points. Index 0, the
// last index, and the point nearest every segment-boundary start are
// always retained; a uniform stride fills the remainder. When the route
// already fits, all points pass through unchanged.
func downsample(points []RoutePoint, boundaries []SegmentBoundary, target int) []indexedPoint {
	n := len(points)
	if n == 0 {
		return nil
	}

	if n <= target {
		kept := make([]indexedPoint, n)
		for i, p := range points {
			kept[i] = indexedPoint{Index: i, Point: p}
		}
		return kept
	}

	retained := map[int]struct{}{
		0:     {},
		n - 1: {},
	}

	totalDistance := points[n-1].Distance
	for _, b := range boundaries {
		retained[nearestIndex(points, b.StartDistance, totalDistance)] = struct{}{}
	}

	step := float64(n) / float64(target)
	for i := 0; i <= target; i++ {
		idx := int(float64(i) * step)
		if idx > n-1 {
			idx = n - 1
		}
		retained[idx] = struct{}{}
	}

	indices := make([]int, 0, len(retained))
	for idx := range retained {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	kept := make([]indexedPoint, len(indices))
	for i, idx := range indices {
		kept[i] = indexedPoint{Index: idx, Point: points[idx]}
	}
	return kept
}

// nearestIndex finds the index whose cumulative distance is closest to
// target. It estimates a starting index assuming roughly uniform spacing
// and scans a bounded window around it. Targets beyond the route end
// clamp to the last index.
func nearestIndex(points []RoutePoint, target, totalDistance float64) int {
	n := len(points)
	estimate := 0
	if totalDistance > 0 {
		estimate = int(target / totalDistance * float64(n))
	}
	if estimate > n-1 {
		estimate = n - 1
	}
	if estimate < 0 {
		estimate = 0
	}
	lo := estimate - boundarySearchWindow
	if lo < 0 {
		lo = 0
	}
	hi := estimate + boundarySearchWindow
	if hi > n-1 {
		hi = n - 1
	}

	best := lo
	bestDelta := absf(points[lo].Distance - target)
	for i := lo + 1; i <= hi; i++ {
		delta := absf(points[i].Distance - target)
		if delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}
	return best
}
