// Package quest holds the quest/area domain model and the progression store.
package quest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wegmarke/wegmarke/internal/geo"
)

// Quest is a single solvable objective. A quest is either the main quest of
// an area or one of its sub-quests; the distinction lives on the Area.
type Quest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	// Reward is free text embedding a point value, e.g. "150 Punkte" or "50 XP".
	Reward       string          `json:"reward"`
	Completed    bool            `json:"completed"`
	Progress     int             `json:"progress"`
	TotalSteps   int             `json:"totalSteps"`
	SolutionWord string          `json:"solutionWord,omitempty"`
	Coordinate   *geo.Coordinate `json:"coordinates,omitempty"`
}

// Area is a named geographic region gating its sub-quests behind a single
// main quest. Coordinates form the closed polygon boundary in path order.
type Area struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Unlocked    bool             `json:"unlocked"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	// Progress counts completed quests including the main quest. It is
	// recomputed after every mutation, never set independently.
	Progress    int     `json:"progress"`
	TotalQuests int     `json:"totalQuests"`
	MainQuest   Quest   `json:"mainQuest"`
	QuestList   []Quest `json:"questList"`
}

// CompletedQuests returns the number of completed quests in the area,
// main quest included.
func (a *Area) CompletedQuests() int {
	count := 0
	if a.MainQuest.Completed {
		count++
	}
	for _, q := range a.QuestList {
		if q.Completed {
			count++
		}
	}
	return count
}

// QuestCount returns the total number of quests in the area, main quest
// included.
func (a *Area) QuestCount() int {
	return 1 + len(a.QuestList)
}

var digitsRe = regexp.MustCompile(`\d+`)

// RewardPoints extracts the point value from a reward string: the first run
// of digits, or 0 if the string carries none.
func RewardPoints(reward string) int {
	match := digitsRe.FindString(reward)
	if match == "" {
		return 0
	}
	points, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return points
}

// MatchSolution compares a submitted answer against a quest's solution word.
// The comparison trims whitespace and ignores case. It does not fold
// diacritics: "Munster" does not match "Münster".
func MatchSolution(input, word string) bool {
	return strings.EqualFold(strings.TrimSpace(input), strings.TrimSpace(word))
}
