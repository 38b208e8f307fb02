package course

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDownsampleNoOpBelowTarget(t *testing.T) {
	points := evenRoute(100, 1000, nil)
	kept := downsample(points, nil, 3500)
	if len(kept) != 100 {
		t.Fatalf("expected pass-through, got %d points", len(kept))
	}
	for i, p := range kept {
		if p.Index != i || p.Point != points[i] {
			t.Fatalf("pass-through must preserve order and identity at %d", i)
		}
	}
}

func TestDownsampleRetainsEndpointsAndBoundaries(t *testing.T) {
	points := evenRoute(10000, 50000, nil)
	boundaries := buildBoundaries(fivePowerPlan().Segments)

	kept := downsample(points, boundaries, 1000)
	if kept[0].Index != 0 {
		t.Fatalf("index 0 must be retained")
	}
	if kept[len(kept)-1].Index != 9999 {
		t.Fatalf("last index must be retained")
	}
	if n := len(kept); n < 990 || n > 1010 {
		t.Fatalf("expected roughly 1000 points, got %d", n)
	}

	for _, b := range boundaries {
		bestDelta := -1.0
		for _, p := range kept {
			if d := absf(p.Point.Distance - b.StartDistance); bestDelta < 0 || d < bestDelta {
				bestDelta = d
			}
		}
		// spacing is 5m, so the nearest retained point to a boundary
		// start must be within half a step
		if bestDelta > 3 {
			t.Fatalf("boundary start %v not covered, nearest at %vm", b.StartDistance, bestDelta)
		}
	}

	for i := 1; i < len(kept); i++ {
		if kept[i].Index <= kept[i-1].Index {
			t.Fatalf("indices must be strictly increasing")
		}
	}
}

func TestNearestIndexBoundedWindow(t *testing.T) {
	points := evenRoute(10000, 50000, nil)
	idx := nearestIndex(points, 25000, 50000)
	if d := absf(points[idx].Distance - 25000); d > 3 {
		t.Fatalf("nearest index off by %vm", d)
	}

	if idx := nearestIndex(points, 0, 50000); idx != 0 {
		t.Fatalf("expected index 0 for route start, got %d", idx)
	}
	if idx := nearestIndex(points, 50000, 50000); idx != 9999 {
		t.Fatalf("expected last index for route end, got %d", idx)
	}
	// targets past the route end must clamp instead of indexing out of range
	if idx := nearestIndex(points, 125000, 50000); idx != 9999 {
		t.Fatalf("expected last index for target beyond route, got %d", idx)
	}
}

func TestAssignCheckpointsLastWriteWins(t *testing.T) {
	kept := []indexedPoint{
		{Index: 0, Point: RoutePoint{Distance: 0}},
		{Index: 50, Point: RoutePoint{Distance: 5000}},
		{Index: 99, Point: RoutePoint{Distance: 10000}},
	}
	// both checkpoints are nearest to the middle retained point
	checkpoints := []Checkpoint{
		{DistanceMeters: 4800, ElapsedTimeSeconds: 700},
		{DistanceMeters: 5200, ElapsedTimeSeconds: 760},
	}

	assignments := assignCheckpoints(checkpoints, kept)
	if len(assignments) != 1 {
		t.Fatalf("expected a single assignment, got %d", len(assignments))
	}
	cp, ok := assignments[50]
	if !ok {
		t.Fatalf("expected assignment at index 50")
	}
	if cp.DistanceMeters != 5200 {
		t.Fatalf("later checkpoint must win, got %v", cp.DistanceMeters)
	}
}

func TestAssignCheckpointsEmpty(t *testing.T) {
	if got := assignCheckpoints(nil, []indexedPoint{{Index: 0}}); got != nil {
		t.Fatalf("no checkpoints, no assignments")
	}
	if got := assignCheckpoints([]Checkpoint{{DistanceMeters: 1}}, nil); got != nil {
		t.Fatalf("no retained points, no assignments")
	}
}

func TestAssignPowerTargetsOnePerBoundary(t *testing.T) {
	boundaries := []SegmentBoundary{
		{StartDistance: 0, EndDistance: 1000, TargetPowerWatts: 210},
		{StartDistance: 1000, EndDistance: 2000, TargetPowerWatts: 260},
		{StartDistance: 2000, EndDistance: 3000, TargetPowerWatts: 230},
	}
	// several retained points crowd the second boundary start within the
	// 50m radius; only the closest may carry the label
	kept := []indexedPoint{
		{Index: 0, Point: RoutePoint{Distance: 0}},
		{Index: 1, Point: RoutePoint{Distance: 500}},
		{Index: 2, Point: RoutePoint{Distance: 1004}},
		{Index: 3, Point: RoutePoint{Distance: 1018}},
		{Index: 4, Point: RoutePoint{Distance: 1032}},
		{Index: 5, Point: RoutePoint{Distance: 1046}},
		{Index: 6, Point: RoutePoint{Distance: 2050}},
	}

	marks := assignPowerTargets(boundaries, kept)
	if len(marks) != 2 {
		t.Fatalf("expected one mark per reachable boundary, got %d", len(marks))
	}
	if marks[0].TargetPowerWatts != 210 {
		t.Fatalf("route start must carry the first segment's power")
	}
	if marks[2].TargetPowerWatts != 260 {
		t.Fatalf("closest point past the boundary must carry the label")
	}
	// boundary three's nearest point sits exactly 50m past the start,
	// outside the radius
	if _, ok := marks[6]; ok {
		t.Fatalf("point at the radius edge must stay unlabeled")
	}
}

func TestAnnotateResolvesAssignments(t *testing.T) {
	kept := []indexedPoint{
		{Index: 0, Point: RoutePoint{Distance: 0}},
		{Index: 1, Point: RoutePoint{Distance: 500}},
		{Index: 2, Point: RoutePoint{Distance: 1000}},
	}
	checkpoints := map[int]Checkpoint{2: {DistanceMeters: 1000, ElapsedTimeSeconds: 120}}
	powers := map[int]SegmentBoundary{
		0: {StartDistance: 0, EndDistance: 1000, TargetPowerWatts: 210},
		2: {StartDistance: 1000, EndDistance: 2000, TargetPowerWatts: 260},
	}

	annotated := annotate(kept, checkpoints, powers, UnitsMetric)
	if annotated[0].Label.Text != "Power 210W" {
		t.Fatalf("boundary start must carry power label, got %q", annotated[0].Label.Text)
	}
	if annotated[1].Label.Kind != LabelNone {
		t.Fatalf("unclaimed point must stay unlabeled")
	}
	if annotated[2].Label.Kind != LabelCheckpoint {
		t.Fatalf("checkpoint must win over power target, got %v", annotated[2].Label.Kind)
	}
}

func TestCheckpointTextUnits(t *testing.T) {
	cp := Checkpoint{DistanceMeters: 16093.44, ElapsedTimeSeconds: 3723}

	if got := checkpointText(cp, UnitsMetric); got != "16.1km 01:02:03" {
		t.Fatalf("metric label: %q", got)
	}
	if got := checkpointText(cp, UnitsImperial); got != "10.0mi 01:02:03" {
		t.Fatalf("imperial label: %q", got)
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Alpine Loop", "Alpine Loop"},
		{"  --Col du Galibier!!  ", "Col du Galibier"},
		{"a/b\\c:d", "abcd"},
		{"___", ""},
	}
	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	if got := SanitizeName(string(long)); len(got) != 100 {
		t.Fatalf("expected 100-char cap, got %d", len(got))
	}

	// the cap counts runes; multi-byte letters must not be cut mid-rune
	accented := strings.Repeat("é", 150)
	got := SanitizeName(accented)
	if utf8.RuneCountInString(got) != 100 {
		t.Fatalf("expected 100-rune cap, got %d runes", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid utf-8")
	}
}
