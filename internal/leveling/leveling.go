// Package leveling holds the points-to-level math.
package leveling

// PointsPerLevel is the flat XP cost of every level.
const PointsPerLevel = 100

// LevelForPoints returns the level reached with the given total points.
// Levels start at 1; every 100 points is one level.
func LevelForPoints(points int) int {
	if points < 0 {
		points = 0
	}
	return points/PointsPerLevel + 1
}

// XPWithinLevel returns the points earned inside the current level.
func XPWithinLevel(points int) int {
	if points < 0 {
		points = 0
	}
	return points % PointsPerLevel
}

// XPToNextLevel returns the points needed to advance a level. The curve is
// flat, so this is constant.
func XPToNextLevel() int {
	return PointsPerLevel
}
