package course

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxCourseNameLen = 100

// buildPayload assembles the final export structure and runs the
// defensive size check against the vendor ceiling.
func buildPayload(points []AnnotatedPoint, name, activityType string, gain, loss, total float64, segmentCount, checkpointCount int) (*CoursePayload, error) {
	if len(points) > maxGeoPoints {
		return nil, fmt.Errorf("%w: %d points exceeds ceiling of %d", ErrPayloadTooLarge, len(points), maxGeoPoints)
	}

	if activityType == "" {
		activityType = "ROAD_CYCLING"
	}

	return &CoursePayload{
		Name:             SanitizeName(name),
		Description:      describe(segmentCount, checkpointCount),
		TotalDistance:    total,
		ElevationGain:    gain,
		ElevationLoss:    loss,
		Points:           points,
		ActivityType:     activityType,
		CoordinateSystem: "WGS84",
	}, nil
}

func describe(segmentCount, checkpointCount int) string {
	if segmentCount == 0 {
		return "Course exported by RideWeather"
	}
	return fmt.Sprintf("Paced course: %d power segments, %d time checkpoints", segmentCount, checkpointCount)
}

// SanitizeName strips a course name down to what the vendor accepts:
// letters, digits, whitespace, hyphen and underscore, trimmed of
// leading/trailing separators and capped at 100 characters.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), " \t\n-_")
	if utf8.RuneCountInString(cleaned) > maxCourseNameLen {
		runes := []rune(cleaned)
		cleaned = string(runes[:maxCourseNameLen])
	}
	return cleaned
}
