package views

import (
	"cityfix-client/internal/models"
	"cityfix-client/internal/state"
)

// MarkerColor is the status-derived marker tint.
type MarkerColor string

const (
	MarkerGreen MarkerColor = "green"
	MarkerBlue  MarkerColor = "blue"
	MarkerRed   MarkerColor = "red"
)

// Marker is one map pin.
type Marker struct {
	IssueID string
	Lat     float64
	Lng     float64
	Color   MarkerColor
	Popup   string
}

// Bounds is the box enclosing all markers, already padded.
type Bounds struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// MapView is the computed marker set. KeepView means there is nothing
// to frame and the surface should leave its previous bounds alone.
type MapView struct {
	Markers  []Marker
	Bounds   Bounds
	KeepView bool
}

// boundsPadding is the fractional margin added around the markers when
// fitting the view.
const boundsPadding = 0.1

// BuildMap computes one marker per issue with both coordinates present.
// Issues missing either coordinate stay in the feed but are excluded
// here.
func BuildMap(snap state.Snapshot) MapView {
	var v MapView
	for i := range snap.Issues {
		issue := &snap.Issues[i]
		if !issue.HasCoordinates() {
			continue
		}
		v.Markers = append(v.Markers, Marker{
			IssueID: issue.ID,
			Lat:     *issue.Lat,
			Lng:     *issue.Lng,
			Color:   statusColor(issue.Status),
			Popup:   issue.Type + " at " + issue.Location,
		})
	}
	if len(v.Markers) == 0 {
		v.KeepView = true
		return v
	}
	v.Bounds = fitBounds(v.Markers)
	return v
}

func statusColor(s models.Status) MarkerColor {
	switch s {
	case models.StatusSolved:
		return MarkerGreen
	case models.StatusInProgress:
		return MarkerBlue
	}
	return MarkerRed
}

func fitBounds(markers []Marker) Bounds {
	b := Bounds{
		MinLat: markers[0].Lat,
		MaxLat: markers[0].Lat,
		MinLng: markers[0].Lng,
		MaxLng: markers[0].Lng,
	}
	for _, m := range markers[1:] {
		if m.Lat < b.MinLat {
			b.MinLat = m.Lat
		}
		if m.Lat > b.MaxLat {
			b.MaxLat = m.Lat
		}
		if m.Lng < b.MinLng {
			b.MinLng = m.Lng
		}
		if m.Lng > b.MaxLng {
			b.MaxLng = m.Lng
		}
	}
	padLat := (b.MaxLat - b.MinLat) * boundsPadding
	padLng := (b.MaxLng - b.MinLng) * boundsPadding
	b.MinLat -= padLat
	b.MaxLat += padLat
	b.MinLng -= padLng
	b.MaxLng += padLng
	return b
}
