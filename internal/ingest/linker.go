package ingest

import (
	"github.com/wegmarke/wegmarke/internal/geo"
	"github.com/wegmarke/wegmarke/internal/quest"
)

// centroidThreshold is the maximum centroid distance, in degrees, for the
// spatial fallback to consider a quest inside an area.
const centroidThreshold = 0.01

// Linker assigns freestanding quest records to their enclosing area. The
// explicit forArea column wins; records without one fall back to the
// nearest area centroid within a small fixed threshold.
type Linker struct {
	areas     []quest.Area
	byName    map[string]int
	centroids []geo.Coordinate
}

// NewLinker indexes the already-built area list. The index is read-only, so
// quest rows can be linked in any order.
func NewLinker(areas []quest.Area) *Linker {
	l := &Linker{
		areas:     areas,
		byName:    make(map[string]int, len(areas)),
		centroids: make([]geo.Coordinate, len(areas)),
	}

	for i := range areas {
		l.byName[NormalizeName(areas[i].Name)] = i
		if centroid, err := geo.Centroid(areas[i].Coordinates); err == nil {
			l.centroids[i] = centroid
		}
	}

	return l
}

// Find resolves the index of the area owning a quest record. Returns false
// when no area matches: the record is an orphan.
func (l *Linker) Find(forArea string, point *geo.Coordinate) (int, bool) {
	if name := NormalizeName(forArea); name != "" {
		if idx, ok := l.byName[name]; ok {
			return idx, true
		}
	}

	if point == nil {
		return 0, false
	}

	// Nearest centroid within the threshold
	best := -1
	bestDist := centroidThreshold
	for i := range l.areas {
		if len(l.areas[i].Coordinates) == 0 {
			continue
		}
		if d := geo.Distance(l.centroids[i], *point); d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}
