package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/faist23/rideweather/internal/course"
	"github.com/faist23/rideweather/internal/db"

	"github.com/google/uuid"
)

var ErrInvalidSegments = errors.New("invalid pacing segments")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Plan) (Plan, error) {
	if err := validateSegments(input.Segments); err != nil {
		return Plan{}, err
	}
	if input.Units == "" {
		input.Units = course.UnitsMetric
	}
	input.ID = uuid.NewString()

	doc, err := json.Marshal(input.Segments)
	if err != nil {
		return Plan{}, fmt.Errorf("encode segments: %w", err)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO plans (id, route_id, user_id, units, checkpoints_enabled, checkpoint_interval_m, segments)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.RouteID, input.UserID, string(input.Units), input.CheckpointsEnabled, input.CheckpointIntervalMeters, doc)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Plan{}, err
	}
	return input, nil
}

// Generate builds a pacing plan from the stored route's points and the
// rider's FTP, then persists it. A non-positive ftpWatts falls back to
// the FTP stored on the rider's profile.
func (s *Service) Generate(ctx context.Context, routeID, userID string, ftpWatts float64, settings Plan) (Plan, error) {
	if ftpWatts <= 0 {
		if err := s.db.QueryRow(ctx, `SELECT COALESCE(ftp_watts, 0) FROM users WHERE id=$1`, userID).Scan(&ftpWatts); err != nil {
			return Plan{}, err
		}
		if ftpWatts <= 0 {
			return Plan{}, fmt.Errorf("%w: rider FTP not set", ErrInvalidSegments)
		}
	}

	var doc []byte
	if err := s.db.QueryRow(ctx, `SELECT points FROM routes WHERE id=$1`, routeID).Scan(&doc); err != nil {
		return Plan{}, err
	}
	var points []course.RoutePoint
	if err := json.Unmarshal(doc, &points); err != nil {
		return Plan{}, fmt.Errorf("decode points: %w", err)
	}

	segments := GenerateSegments(points, ftpWatts)
	if len(segments) == 0 {
		return Plan{}, fmt.Errorf("%w: route too short or FTP missing", ErrInvalidSegments)
	}

	return s.Create(ctx, Plan{
		RouteID:                  routeID,
		UserID:                   userID,
		Units:                    settings.Units,
		CheckpointsEnabled:       settings.CheckpointsEnabled,
		CheckpointIntervalMeters: settings.CheckpointIntervalMeters,
		Segments:                 segments,
	})
}

func (s *Service) Get(ctx context.Context, id string) (Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, user_id, units, checkpoints_enabled, checkpoint_interval_m, segments, created_at
		FROM plans WHERE id=$1
	`, id)

	var p Plan
	var units string
	var doc []byte
	if err := row.Scan(&p.ID, &p.RouteID, &p.UserID, &units, &p.CheckpointsEnabled, &p.CheckpointIntervalMeters, &doc, &p.CreatedAt); err != nil {
		return Plan{}, err
	}
	p.Units = course.UnitSystem(units)
	if err := json.Unmarshal(doc, &p.Segments); err != nil {
		return Plan{}, fmt.Errorf("decode segments: %w", err)
	}
	return p, nil
}

func (s *Service) ListByRoute(ctx context.Context, routeID string) ([]Plan, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, route_id, user_id, units, checkpoints_enabled, checkpoint_interval_m, segments, created_at
		FROM plans WHERE route_id=$1
		ORDER BY created_at DESC
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var units string
		var doc []byte
		if err := rows.Scan(&p.ID, &p.RouteID, &p.UserID, &units, &p.CheckpointsEnabled, &p.CheckpointIntervalMeters, &doc, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Units = course.UnitSystem(units)
		if err := json.Unmarshal(doc, &p.Segments); err != nil {
			return nil, fmt.Errorf("decode segments: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	return err
}

func validateSegments(segments []course.PacingSegment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: at least one segment required", ErrInvalidSegments)
	}
	for i, seg := range segments {
		if seg.DistanceMeters <= 0 {
			return fmt.Errorf("%w: segment %d has non-positive distance", ErrInvalidSegments, i)
		}
		if seg.TargetPowerWatts < 0 || seg.EstimatedTimeSeconds < 0 {
			return fmt.Errorf("%w: segment %d has negative power or time", ErrInvalidSegments, i)
		}
	}
	return nil
}
