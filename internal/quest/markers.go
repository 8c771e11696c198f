package quest

import "github.com/wegmarke/wegmarke/internal/geo"

// MarkerType distinguishes main-quest markers from sub-quest markers.
type MarkerType string

const (
	MarkerMain MarkerType = "main"
	MarkerSub  MarkerType = "sub"
)

// Marker is a map pin derived from the area collection. Markers are never
// stored; they are rebuilt whenever the underlying areas change.
type Marker struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	Type       MarkerType      `json:"type"`
	Coordinate *geo.Coordinate `json:"coordinates,omitempty"`
	Completed  bool            `json:"completed"`
	AreaID     string          `json:"areaId"`
}

// BuildMarkers derives the marker list from the area collection. Every area
// contributes its main-quest marker regardless of lock state; sub-quest
// markers appear only once their area is unlocked. Marker ids are prefixed
// by role so they stay unique across areas.
func BuildMarkers(areas []Area) []Marker {
	markers := make([]Marker, 0, len(areas))

	for i := range areas {
		area := &areas[i]

		markers = append(markers, Marker{
			ID:         "main-" + area.MainQuest.ID,
			Title:      area.MainQuest.Title,
			Type:       MarkerMain,
			Coordinate: area.MainQuest.Coordinate,
			Completed:  area.MainQuest.Completed,
			AreaID:     area.ID,
		})

		if !area.Unlocked {
			continue
		}

		for _, q := range area.QuestList {
			markers = append(markers, Marker{
				ID:         "sub-" + q.ID,
				Title:      q.Title,
				Type:       MarkerSub,
				Coordinate: q.Coordinate,
				Completed:  q.Completed,
				AreaID:     area.ID,
			})
		}
	}

	return markers
}
