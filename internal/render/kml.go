package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/paulmach/orb"
	kml "github.com/twpayne/go-kml"

	"github.com/jz2447/csci420-gps-proj/internal/models"
)

const timeLayout = "2006-01-02T15:04:05Z"

// marker palette
var (
	yellow = color.RGBA{R: 255, G: 255, A: 255}
	green  = color.RGBA{G: 255, A: 255}
	blue   = color.RGBA{B: 255, A: 255}
	red    = color.RGBA{R: 255, A: 255}
)

const iconHref = "http://maps.google.com/mapfiles/kml/shapes/placemark_circle.png"

// style ids
const (
	styleRoute = "route"
	styleStart = "start"
	styleEnd   = "end"
	styleTurn  = "left-turn"
	styleStop  = "stop"
)

// KML writes track as a KML document: one LineString placemark per segment,
// start and end markers, a marker per left turn and a marker per stop
func KML(track *models.AnnotatedTrack, w io.Writer) error {
	doc := kml.Document(
		kml.Name("GPS track"),
		kml.Description(fmt.Sprintf("%.0f m, %s", track.DistanceMeters, track.Duration.Total)),
		kml.SharedStyle(styleRoute,
			kml.LineStyle(kml.Color(yellow), kml.Width(3)),
		),
		iconStyle(styleStart, green, 1.3),
		iconStyle(styleEnd, blue, 1.3),
		iconStyle(styleTurn, yellow, 1.0),
		iconStyle(styleStop, red, 1.2),
	)

	for i, seg := range track.Segments {
		doc.Add(kml.Placemark(
			kml.Name(fmt.Sprintf("Route %d", i+1)),
			kml.StyleURL("#"+styleRoute),
			kml.LineString(
				kml.Extrude(true),
				kml.Tessellate(true),
				kml.AltitudeMode(kml.AltitudeModeClampToGround),
				kml.Coordinates(coordinates(seg)...),
			),
		))
	}

	doc.Add(markerPlacemark(track.Start.Name, track.Start.Description, styleStart, track.Start.Latitude, track.Start.Longitude))
	doc.Add(markerPlacemark(track.End.Name, track.End.Description, styleEnd, track.End.Latitude, track.End.Longitude))

	for _, turn := range track.Turns {
		doc.Add(markerPlacemark("Left Turn", fmt.Sprintf("heading change %.1f deg", turn.DeltaDeg),
			styleTurn, turn.Latitude, turn.Longitude))
	}
	for _, stop := range track.Stops {
		doc.Add(markerPlacemark("Stop", fmt.Sprintf("Stop time: %s (%d samples)",
			stop.Timestamp.UTC().Format(timeLayout), stop.Samples),
			styleStop, stop.Latitude, stop.Longitude))
	}

	return kml.KML(doc).WriteIndent(w, "", "  ")
}

func iconStyle(id string, c color.Color, scale float64) kml.Element {
	return kml.SharedStyle(id,
		kml.IconStyle(
			kml.Color(c),
			kml.Scale(scale),
			kml.Icon(kml.Href(iconHref)),
		),
	)
}

func markerPlacemark(name, description, style string, lat, lon float64) kml.Element {
	return kml.Placemark(
		kml.Name(name),
		kml.Description(description),
		kml.StyleURL("#"+style),
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: lon, Lat: lat})),
	)
}

func coordinates(ls orb.LineString) []kml.Coordinate {
	coords := make([]kml.Coordinate, len(ls))
	for i, p := range ls {
		coords[i] = kml.Coordinate{Lon: p.Lon(), Lat: p.Lat()}
	}
	return coords
}
