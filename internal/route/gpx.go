package route

import (
	"encoding/xml"
	"fmt"

	"github.com/faist23/rideweather/internal/course"
)

type gpxFile struct {
	XMLName xml.Name   `xml:"gpx"`
	Tracks  []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Name     string       `xml:"name"`
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

type gpxPoint struct {
	Lat float64  `xml:"lat,attr"`
	Lon float64  `xml:"lon,attr"`
	Ele *float64 `xml:"ele"`
}

// parseGPX flattens all track segments into one ordered point list.
func parseGPX(data []byte) ([]course.RoutePoint, error) {
	var doc gpxFile
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	var raw []rawPoint
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, pt := range seg.Points {
				rp := rawPoint{lat: pt.Lat, lon: pt.Lon}
				if pt.Ele != nil {
					rp.elevation = *pt.Ele
					rp.hasElevation = true
				}
				raw = append(raw, rp)
			}
		}
	}
	return accumulate(raw)
}
