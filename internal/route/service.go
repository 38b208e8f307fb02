package route

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/faist23/rideweather/internal/course"
	"github.com/faist23/rideweather/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Import parses a route file, validates it, and stores the route with
// its full point list.
func (s *Service) Import(ctx context.Context, userID, name, filename string, data []byte) (Route, error) {
	points, format, err := Parse(filename, data)
	if err != nil {
		return Route{}, err
	}

	gain, loss, total, err := course.Summarize(points)
	if err != nil {
		return Route{}, err
	}

	if name == "" {
		name = filename
	}

	doc, err := json.Marshal(points)
	if err != nil {
		return Route{}, fmt.Errorf("encode points: %w", err)
	}

	rt := Route{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		SourceFormat:   format,
		DistanceM:      total,
		ElevationGainM: gain,
		ElevationLossM: loss,
		PointCount:     len(points),
		Points:         points,
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, user_id, name, source_format, distance_m, elevation_gain_m, elevation_loss_m, point_count, points)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, rt.ID, rt.UserID, rt.Name, rt.SourceFormat, rt.DistanceM, rt.ElevationGainM, rt.ElevationLossM, rt.PointCount, doc)
	if err := row.Scan(&rt.CreatedAt); err != nil {
		return Route{}, err
	}
	return rt, nil
}

// Get loads a route including its points.
func (s *Service) Get(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, source_format, distance_m, elevation_gain_m, elevation_loss_m, point_count, points, created_at
		FROM routes WHERE id=$1
	`, id)

	var rt Route
	var doc []byte
	if err := row.Scan(&rt.ID, &rt.UserID, &rt.Name, &rt.SourceFormat, &rt.DistanceM, &rt.ElevationGainM, &rt.ElevationLossM, &rt.PointCount, &doc, &rt.CreatedAt); err != nil {
		return Route{}, err
	}
	if err := json.Unmarshal(doc, &rt.Points); err != nil {
		return Route{}, fmt.Errorf("decode points: %w", err)
	}
	return rt, nil
}

// Points loads only the point list of a route.
func (s *Service) Points(ctx context.Context, id string) ([]course.RoutePoint, error) {
	var doc []byte
	if err := s.db.QueryRow(ctx, `SELECT points FROM routes WHERE id=$1`, id).Scan(&doc); err != nil {
		return nil, err
	}
	var points []course.RoutePoint
	if err := json.Unmarshal(doc, &points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, distance_m, elevation_gain_m, point_count, created_at
		FROM routes WHERE user_id=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.DistanceM, &s.ElevationGainM, &s.PointCount, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}
