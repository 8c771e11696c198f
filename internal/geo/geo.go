// Package geo provides WKT-style geometry parsing and the small amount of
// planar math the spatial linker needs.
package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Coordinate is a single latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geometry is the result of parsing a WKT string. Exactly one of Point or
// Ring is set.
type Geometry struct {
	Point *Coordinate  // Set for POINT geometries
	Ring  []Coordinate // Set for POLYGON geometries, boundary order preserved
}

// ErrNoRing is returned by Centroid when the ring is empty.
var ErrNoRing = errors.New("polygon has no vertices")

var (
	pointRe   = regexp.MustCompile(`^POINT\s*\(([^)]+)\)`)
	polygonRe = regexp.MustCompile(`^POLYGON\s*\(\(([^)]+)\)\)`)
)

// Parse parses a WKT geometry string. WKT stores pairs longitude-first;
// the returned coordinates are latitude-first.
//
// An unrecognized shape tag yields (nil, nil): the caller treats this as
// "no geometry available" and skips the record. A malformed coordinate is
// a hard error for the record.
func Parse(wkt string) (*Geometry, error) {
	wkt = strings.TrimSpace(wkt)

	if strings.HasPrefix(wkt, "POINT") {
		match := pointRe.FindStringSubmatch(wkt)
		if match == nil {
			return nil, fmt.Errorf("malformed POINT geometry: %q", wkt)
		}
		coord, err := parsePair(match[1])
		if err != nil {
			return nil, err
		}
		return &Geometry{Point: &coord}, nil
	}

	if strings.HasPrefix(wkt, "POLYGON") {
		match := polygonRe.FindStringSubmatch(wkt)
		if match == nil {
			return nil, fmt.Errorf("malformed POLYGON geometry: %q", wkt)
		}
		ring, err := parseRing(match[1])
		if err != nil {
			return nil, err
		}
		return &Geometry{Ring: ring}, nil
	}

	// Unknown shape tag: absent result, not an error
	return nil, nil
}

// parsePair parses a single "longitude latitude" pair, swapping to
// latitude-first on output.
func parsePair(s string) (Coordinate, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Coordinate{}, fmt.Errorf("expected \"longitude latitude\" pair, got %q", s)
	}

	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", fields[0], err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", fields[1], err)
	}

	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// parseRing parses a polygon ring. The two upstream exporters disagree on
// the pair delimiter (one emits semicolons, one commas), so both are
// accepted here. Ring order is preserved as it defines the boundary path.
func parseRing(s string) ([]Coordinate, error) {
	delim := ","
	if strings.Contains(s, ";") {
		delim = ";"
	}

	parts := strings.Split(s, delim)
	ring := make([]Coordinate, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		coord, err := parsePair(part)
		if err != nil {
			return nil, err
		}
		ring = append(ring, coord)
	}

	if len(ring) == 0 {
		return nil, fmt.Errorf("polygon ring is empty: %q", s)
	}

	return ring, nil
}

// Centroid returns the arithmetic mean of the ring's vertices.
func Centroid(ring []Coordinate) (Coordinate, error) {
	if len(ring) == 0 {
		return Coordinate{}, ErrNoRing
	}

	var sumLat, sumLon float64
	for _, c := range ring {
		sumLat += c.Latitude
		sumLon += c.Longitude
	}

	n := float64(len(ring))
	return Coordinate{Latitude: sumLat / n, Longitude: sumLon / n}, nil
}

// Distance returns the planar euclidean distance between two coordinates
// in degrees. Good enough for the small areas the linker deals with.
func Distance(a, b Coordinate) float64 {
	dLat := a.Latitude - b.Latitude
	dLon := a.Longitude - b.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
