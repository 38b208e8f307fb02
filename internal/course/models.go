package course

// RoutePoint is a single point of a parsed route. Distance is cumulative
// meters from the route start and never decreases. Elevation is nil when
// the source file carried no elevation for the point.
type RoutePoint struct {
	Lat       float64  `json:"lat"`
	Lon       float64  `json:"lon"`
	Elevation *float64 `json:"elevation,omitempty"`
	Distance  float64  `json:"distance"`
}

// PacingSegment is one physically homogeneous stretch of the planned ride.
type PacingSegment struct {
	DistanceMeters       float64 `json:"distance_m"`
	TargetPowerWatts     float64 `json:"target_power_w"`
	EstimatedTimeSeconds float64 `json:"estimated_time_s"`
}

// UnitSystem selects how checkpoint distances are rendered.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// Plan carries the ordered pacing segments plus the plan-level settings
// the engine needs. A nil Plan degrades to a pure uniform downsample.
type Plan struct {
	Segments                 []PacingSegment `json:"segments"`
	Units                    UnitSystem      `json:"units"`
	CheckpointsEnabled       bool            `json:"checkpoints_enabled"`
	CheckpointIntervalMeters float64         `json:"checkpoint_interval_m"`
}

// SegmentBoundary is the absolute-distance interval of one pacing segment.
// Boundaries are contiguous: boundary i+1 starts where boundary i ends.
type SegmentBoundary struct {
	StartDistance    float64
	EndDistance      float64
	TargetPowerWatts float64
}

// Checkpoint is an expected elapsed time at a given distance.
type Checkpoint struct {
	DistanceMeters     float64
	ElapsedTimeSeconds float64
}

// LabelKind discriminates the annotation variants. A point carries at most
// one label; checkpoint labels always win over power labels.
type LabelKind int

const (
	LabelNone LabelKind = iota
	LabelCheckpoint
	LabelPowerTarget
)

func (k LabelKind) String() string {
	switch k {
	case LabelCheckpoint:
		return "checkpoint"
	case LabelPowerTarget:
		return "power_target"
	default:
		return "none"
	}
}

// Label is the single optional annotation of a course point.
type Label struct {
	Kind LabelKind `json:"kind"`
	Text string    `json:"text"`
}

// AnnotatedPoint is a retained route point plus its resolved label.
type AnnotatedPoint struct {
	Point RoutePoint `json:"point"`
	Label Label      `json:"label"`
}

// CoursePayload is the finished export structure handed to the vendor
// transport. Built once per export request and never mutated after.
type CoursePayload struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	TotalDistance    float64          `json:"total_distance_m"`
	ElevationGain    float64          `json:"elevation_gain_m"`
	ElevationLoss    float64          `json:"elevation_loss_m"`
	Points           []AnnotatedPoint `json:"points"`
	ActivityType     string           `json:"activity_type"`
	CoordinateSystem string           `json:"coordinate_system"`
}
