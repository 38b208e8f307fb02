package export

import "time"

const (
	StatusUploaded = "uploaded"
	StatusFailed   = "failed"
)

// Export records one attempt to push a built course to the device vendor.
type Export struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	RouteID        string    `json:"route_id"`
	PlanID         string    `json:"plan_id,omitempty"`
	CourseName     string    `json:"course_name"`
	ActivityType   string    `json:"activity_type"`
	Status         string    `json:"status"`
	VendorCourseID string    `json:"vendor_course_id,omitempty"`
	ErrorKind      string    `json:"error_kind,omitempty"`
	PointCount     int       `json:"point_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// Request is the caller's view of an export invocation.
type Request struct {
	RouteID      string `json:"route_id"`
	PlanID       string `json:"plan_id"`
	CourseName   string `json:"course_name"`
	ActivityType string `json:"activity_type"`
}
