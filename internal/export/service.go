package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/faist23/rideweather/internal/course"
	"github.com/faist23/rideweather/internal/db"
	"github.com/faist23/rideweather/internal/garmin"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const payloadCacheTTL = time.Hour

// CoursePusher is the vendor transport used to upload a built course.
type CoursePusher interface {
	PushCourse(ctx context.Context, token string, payload *course.CoursePayload) (string, error)
}

// TokenLoader resolves the rider's vendor OAuth token.
type TokenLoader interface {
	Load(ctx context.Context, userID string) (string, error)
}

type Service struct {
	db     db.Querier
	cache  *redis.Client
	pusher CoursePusher
	tokens TokenLoader
}

func NewService(db db.Querier, cache *redis.Client, pusher CoursePusher, tokens TokenLoader) *Service {
	return &Service{db: db, cache: cache, pusher: pusher, tokens: tokens}
}

// Export builds the course for a stored route (and optional plan) and
// pushes it to the vendor. The export row records the outcome either
// way; engine failures abort before any row is written.
func (s *Service) Export(ctx context.Context, userID string, req Request) (Export, error) {
	points, err := s.loadRoutePoints(ctx, req.RouteID)
	if err != nil {
		return Export{}, err
	}

	var enginePlan *course.Plan
	if req.PlanID != "" {
		enginePlan, err = s.loadPlan(ctx, req.PlanID)
		if err != nil {
			return Export{}, err
		}
	}

	payload, err := course.Build(points, enginePlan, req.CourseName, req.ActivityType)
	if err != nil {
		return Export{}, err
	}

	exp := Export{
		ID:           uuid.NewString(),
		UserID:       userID,
		RouteID:      req.RouteID,
		PlanID:       req.PlanID,
		CourseName:   payload.Name,
		ActivityType: payload.ActivityType,
		PointCount:   len(payload.Points),
	}

	s.cachePayload(ctx, exp.ID, payload)

	token, err := s.tokens.Load(ctx, userID)
	if err != nil {
		exp.Status = StatusFailed
		exp.ErrorKind = "upstream_auth"
		if saveErr := s.save(ctx, &exp); saveErr != nil {
			return Export{}, saveErr
		}
		return exp, fmt.Errorf("load vendor token: %w", err)
	}

	vendorID, pushErr := s.pusher.PushCourse(ctx, token, payload)
	if pushErr != nil {
		exp.Status = StatusFailed
		exp.ErrorKind = errorKind(pushErr)
	} else {
		exp.Status = StatusUploaded
		exp.VendorCourseID = vendorID
	}

	if err := s.save(ctx, &exp); err != nil {
		return Export{}, err
	}
	return exp, pushErr
}

func (s *Service) Get(ctx context.Context, id string) (Export, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, route_id, COALESCE(plan_id,''), course_name, activity_type, status,
		       COALESCE(vendor_course_id,''), COALESCE(error_kind,''), point_count, created_at
		FROM exports WHERE id=$1
	`, id)
	var exp Export
	if err := row.Scan(&exp.ID, &exp.UserID, &exp.RouteID, &exp.PlanID, &exp.CourseName, &exp.ActivityType,
		&exp.Status, &exp.VendorCourseID, &exp.ErrorKind, &exp.PointCount, &exp.CreatedAt); err != nil {
		return Export{}, err
	}
	return exp, nil
}

// CachedPayload returns the payload built for a recent export, if still
// in the cache.
func (s *Service) CachedPayload(ctx context.Context, exportID string) (*course.CoursePayload, error) {
	if s.cache == nil {
		return nil, redis.Nil
	}
	doc, err := s.cache.Get(ctx, payloadKey(exportID)).Bytes()
	if err != nil {
		return nil, err
	}
	var payload course.CoursePayload
	if err := json.Unmarshal(doc, &payload); err != nil {
		return nil, fmt.Errorf("decode cached payload: %w", err)
	}
	return &payload, nil
}

func (s *Service) loadRoutePoints(ctx context.Context, routeID string) ([]course.RoutePoint, error) {
	var doc []byte
	if err := s.db.QueryRow(ctx, `SELECT points FROM routes WHERE id=$1`, routeID).Scan(&doc); err != nil {
		return nil, err
	}
	var points []course.RoutePoint
	if err := json.Unmarshal(doc, &points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}

func (s *Service) loadPlan(ctx context.Context, planID string) (*course.Plan, error) {
	row := s.db.QueryRow(ctx, `
		SELECT units, checkpoints_enabled, checkpoint_interval_m, segments
		FROM plans WHERE id=$1
	`, planID)

	var units string
	var p course.Plan
	var doc []byte
	if err := row.Scan(&units, &p.CheckpointsEnabled, &p.CheckpointIntervalMeters, &doc); err != nil {
		return nil, err
	}
	p.Units = course.UnitSystem(units)
	if err := json.Unmarshal(doc, &p.Segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	return &p, nil
}

func (s *Service) save(ctx context.Context, exp *Export) error {
	var planID any
	if exp.PlanID != "" {
		planID = exp.PlanID
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO exports (id, user_id, route_id, plan_id, course_name, activity_type, status, vendor_course_id, error_kind, point_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NULLIF($8,''),NULLIF($9,''),$10)
		RETURNING created_at
	`, exp.ID, exp.UserID, exp.RouteID, planID, exp.CourseName, exp.ActivityType, exp.Status, exp.VendorCourseID, exp.ErrorKind, exp.PointCount)
	return row.Scan(&exp.CreatedAt)
}

// cachePayload is best-effort; a cold cache only costs a rebuild.
func (s *Service) cachePayload(ctx context.Context, exportID string, payload *course.CoursePayload) {
	if s.cache == nil {
		return
	}
	doc, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, payloadKey(exportID), doc, payloadCacheTTL).Err()
}

func payloadKey(exportID string) string {
	return "export:payload:" + exportID
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, garmin.ErrUnauthorized):
		return "upstream_auth"
	case errors.Is(err, garmin.ErrInsufficientPermission):
		return "upstream_permission"
	case errors.Is(err, garmin.ErrRateLimited):
		return "upstream_rate_limited"
	default:
		return "upstream_api"
	}
}
