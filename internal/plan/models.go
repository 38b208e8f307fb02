package plan

import (
	"time"

	"github.com/faist23/rideweather/internal/course"
)

// Plan is a stored pacing plan for one route.
type Plan struct {
	ID                       string                 `json:"id"`
	RouteID                  string                 `json:"route_id"`
	UserID                   string                 `json:"user_id"`
	Units                    course.UnitSystem      `json:"units"`
	CheckpointsEnabled       bool                   `json:"checkpoints_enabled"`
	CheckpointIntervalMeters float64                `json:"checkpoint_interval_m"`
	Segments                 []course.PacingSegment `json:"segments"`
	CreatedAt                time.Time              `json:"created_at"`
}

// EnginePlan converts the stored plan into the engine's input form.
func (p Plan) EnginePlan() *course.Plan {
	return &course.Plan{
		Segments:                 p.Segments,
		Units:                    p.Units,
		CheckpointsEnabled:       p.CheckpointsEnabled,
		CheckpointIntervalMeters: p.CheckpointIntervalMeters,
	}
}
