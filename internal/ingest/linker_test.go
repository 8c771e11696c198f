package ingest

import (
	"testing"

	"github.com/wegmarke/wegmarke/internal/geo"
	"github.com/wegmarke/wegmarke/internal/quest"
)

func linkerAreas() []quest.Area {
	return []quest.Area{
		{
			ID:   "area_altstadt",
			Name: "Altstadt",
			Coordinates: []geo.Coordinate{
				{Latitude: 51.95, Longitude: 7.61},
				{Latitude: 51.97, Longitude: 7.61},
				{Latitude: 51.97, Longitude: 7.63},
				{Latitude: 51.95, Longitude: 7.63},
			}, // centroid 51.96, 7.62
		},
		{
			ID:   "area_muehlenviertel",
			Name: "Mühlenviertel",
			Coordinates: []geo.Coordinate{
				{Latitude: 52.05, Longitude: 7.71},
				{Latitude: 52.07, Longitude: 7.71},
				{Latitude: 52.07, Longitude: 7.73},
				{Latitude: 52.05, Longitude: 7.73},
			}, // centroid 52.06, 7.72
		},
	}
}

func TestFindByExplicitName(t *testing.T) {
	linker := NewLinker(linkerAreas())

	idx, ok := linker.Find("Altstadt", nil)
	if !ok || idx != 0 {
		t.Errorf("Find(Altstadt) = (%d, %v), want (0, true)", idx, ok)
	}

	// Encoding drift in the forArea column must still match
	tests := []string{"MÃ¼hlenviertel", " mühlenviertel ", "Muhlenviertel"}
	for _, name := range tests {
		idx, ok := linker.Find(name, nil)
		if !ok || idx != 1 {
			t.Errorf("Find(%q) = (%d, %v), want (1, true)", name, idx, ok)
		}
	}
}

func TestFindByCentroidFallback(t *testing.T) {
	linker := NewLinker(linkerAreas())

	// Close to the Altstadt centroid
	point := &geo.Coordinate{Latitude: 51.962, Longitude: 7.621}
	idx, ok := linker.Find("", point)
	if !ok || idx != 0 {
		t.Errorf("Find by centroid = (%d, %v), want (0, true)", idx, ok)
	}

	// Between both areas but nearer the second
	point = &geo.Coordinate{Latitude: 52.055, Longitude: 7.715}
	idx, ok = linker.Find("", point)
	if !ok || idx != 1 {
		t.Errorf("Find nearest centroid = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestFindOrphan(t *testing.T) {
	linker := NewLinker(linkerAreas())

	// Outside the centroid threshold of every area
	point := &geo.Coordinate{Latitude: 50.0, Longitude: 6.0}
	if _, ok := linker.Find("", point); ok {
		t.Error("A distant point should not link to any area")
	}

	// Unknown explicit name without a usable point
	if _, ok := linker.Find("Nirgendwo", nil); ok {
		t.Error("An unknown area name without a point should be an orphan")
	}
}

func TestFindUnknownNameFallsBackToCentroid(t *testing.T) {
	linker := NewLinker(linkerAreas())

	point := &geo.Coordinate{Latitude: 51.961, Longitude: 7.619}
	idx, ok := linker.Find("Tippfehlerviertel", point)
	if !ok || idx != 0 {
		t.Errorf("Unknown name with nearby point = (%d, %v), want (0, true)", idx, ok)
	}
}
