package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/faist23/rideweather/internal/course"
)

// Typed upstream outcomes. The transport never retries; callers decide
// what a 429 or an expired token means for them.
var (
	ErrUnauthorized           = errors.New("garmin: token invalid")
	ErrInsufficientPermission = errors.New("garmin: insufficient permission")
	ErrRateLimited            = errors.New("garmin: rate limited")
	ErrAPI                    = errors.New("garmin: api error")
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

type geoPoint struct {
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Elevation   *float64   `json:"elevation,omitempty"`
	Information *pointInfo `json:"information,omitempty"`
}

type pointInfo struct {
	Name            string `json:"name"`
	CoursePointType string `json:"coursePointType"`
}

type courseRequest struct {
	CourseName       string     `json:"courseName"`
	Description      string     `json:"description"`
	Distance         float64    `json:"distance"`
	ElevationGain    float64    `json:"elevationGain"`
	ElevationLoss    float64    `json:"elevationLoss"`
	GeoPoints        []geoPoint `json:"geoPoints"`
	ActivityType     string     `json:"activityType"`
	CoordinateSystem string     `json:"coordinateSystem"`
}

type courseResponse struct {
	CourseID string `json:"courseId"`
}

// PushCourse serializes the payload into the vendor's course-creation
// schema and POSTs it. Returns the vendor's course ID on success.
func (c *Client) PushCourse(ctx context.Context, token string, payload *course.CoursePayload) (string, error) {
	body, err := json.Marshal(toCourseRequest(payload))
	if err != nil {
		return "", fmt.Errorf("encode course: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/course-service/course", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var created courseResponse
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			return "", fmt.Errorf("%w: decode response: %v", ErrAPI, err)
		}
		return created.CourseID, nil
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	case http.StatusPreconditionFailed:
		return "", ErrInsufficientPermission
	case http.StatusTooManyRequests:
		return "", ErrRateLimited
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", ErrAPI, resp.StatusCode, detail)
	}
}

func toCourseRequest(payload *course.CoursePayload) courseRequest {
	points := make([]geoPoint, len(payload.Points))
	for i, p := range payload.Points {
		gp := geoPoint{
			Latitude:  p.Point.Lat,
			Longitude: p.Point.Lon,
			Elevation: p.Point.Elevation,
		}
		if p.Label.Kind != course.LabelNone {
			gp.Information = &pointInfo{
				Name:            p.Label.Text,
				CoursePointType: "GENERIC",
			}
		}
		points[i] = gp
	}
	return courseRequest{
		CourseName:       payload.Name,
		Description:      payload.Description,
		Distance:         payload.TotalDistance,
		ElevationGain:    payload.ElevationGain,
		ElevationLoss:    payload.ElevationLoss,
		GeoPoints:        points,
		ActivityType:     payload.ActivityType,
		CoordinateSystem: payload.CoordinateSystem,
	}
}
