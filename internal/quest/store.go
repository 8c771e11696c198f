package quest

import (
	"errors"
	"sync"

	"github.com/wegmarke/wegmarke/internal/geo"
	"github.com/wegmarke/wegmarke/internal/leveling"
)

// Sentinel errors for progression operations. Unknown ids signal a caller
// bug and are never absorbed into a no-op.
var (
	ErrAreaNotFound  = errors.New("area not found")
	ErrQuestNotFound = errors.New("quest not found")
	ErrAreaLocked    = errors.New("area is locked")
)

// Result reports what a completion operation did. Repeating a completion is
// not an error; it is a no-op with an explicit status.
type Result string

const (
	ResultCompleted        Result = "completed"
	ResultAlreadyCompleted Result = "already_completed"
)

// Store holds the authoritative in-memory progression state. It is an
// explicit session object: construct one from the fixture at startup and
// pass it to whoever needs it. Mutations are serialized by a single lock so
// the one-way quest and area state machines hold under concurrent callers.
type Store struct {
	mu    sync.RWMutex
	areas []Area

	badgePending  bool
	lastCompleted int
	subscribers   []func()
}

// NewStore builds a store from the fixture's area collection. The areas are
// deep-copied and their derived counters recomputed so a sloppy fixture
// cannot violate the progress invariants.
func NewStore(areas []Area) *Store {
	copied := copyAreas(areas)
	for i := range copied {
		copied[i].TotalQuests = copied[i].QuestCount()
		copied[i].Progress = copied[i].CompletedQuests()
	}

	s := &Store{areas: copied}
	s.lastCompleted = s.completedCountLocked()
	return s
}

// CompleteMainQuest marks an area's main quest complete and unlocks the
// area. Completing an already-completed main quest is a no-op reported as
// ResultAlreadyCompleted.
func (s *Store) CompleteMainQuest(areaID string) (Result, error) {
	s.mu.Lock()

	area := s.findAreaLocked(areaID)
	if area == nil {
		s.mu.Unlock()
		return "", ErrAreaNotFound
	}

	if area.MainQuest.Completed {
		s.mu.Unlock()
		return ResultAlreadyCompleted, nil
	}

	area.MainQuest.Completed = true
	area.MainQuest.Progress = area.MainQuest.TotalSteps
	area.Unlocked = true
	area.Progress = area.CompletedQuests()

	fire, subs := s.checkAchievementsLocked()
	s.mu.Unlock()

	if fire {
		notifyAll(subs)
	}
	return ResultCompleted, nil
}

// CompleteSubQuest marks a sub-quest of an unlocked area complete.
// Sub-quests of locked areas are not a valid player action and are rejected
// with ErrAreaLocked.
func (s *Store) CompleteSubQuest(areaID, questID string) (Result, error) {
	s.mu.Lock()

	area := s.findAreaLocked(areaID)
	if area == nil {
		s.mu.Unlock()
		return "", ErrAreaNotFound
	}

	if !area.Unlocked {
		s.mu.Unlock()
		return "", ErrAreaLocked
	}

	q := findQuest(area.QuestList, questID)
	if q == nil {
		s.mu.Unlock()
		return "", ErrQuestNotFound
	}

	if q.Completed {
		s.mu.Unlock()
		return ResultAlreadyCompleted, nil
	}

	q.Completed = true
	q.Progress = q.TotalSteps
	area.Progress = area.CompletedQuests()

	fire, subs := s.checkAchievementsLocked()
	s.mu.Unlock()

	if fire {
		notifyAll(subs)
	}
	return ResultCompleted, nil
}

// SubmitSolution checks a submitted solution word against the named quest
// (main or sub) and completes it on a match. A wrong word is a normal
// negative result, not an error, and leaves state untouched. A quest with
// no solution word accepts any submission.
func (s *Store) SubmitSolution(areaID, questID, input string) (bool, Result, error) {
	s.mu.RLock()
	area := s.findAreaLocked(areaID)
	if area == nil {
		s.mu.RUnlock()
		return false, "", ErrAreaNotFound
	}

	isMain := area.MainQuest.ID == questID
	var word string
	if isMain {
		word = area.MainQuest.SolutionWord
	} else {
		q := findQuest(area.QuestList, questID)
		if q == nil {
			s.mu.RUnlock()
			return false, "", ErrQuestNotFound
		}
		if !area.Unlocked {
			s.mu.RUnlock()
			return false, "", ErrAreaLocked
		}
		word = q.SolutionWord
	}
	s.mu.RUnlock()

	if word != "" && !MatchSolution(input, word) {
		return false, "", nil
	}

	var result Result
	var err error
	if isMain {
		result, err = s.CompleteMainQuest(areaID)
	} else {
		result, err = s.CompleteSubQuest(areaID, questID)
	}
	if err != nil {
		return false, "", err
	}
	return true, result, nil
}

// Areas returns a deep copy of the area collection.
func (s *Store) Areas() []Area {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyAreas(s.areas)
}

// Area returns a deep copy of a single area.
func (s *Store) Area(areaID string) (Area, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	area := s.findAreaLocked(areaID)
	if area == nil {
		return Area{}, ErrAreaNotFound
	}
	return copyArea(*area), nil
}

// Markers derives the current map marker list.
func (s *Store) Markers() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return BuildMarkers(s.areas)
}

// CompletedQuestCount counts completed quests across all areas, locked or not.
func (s *Store) CompletedQuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.completedCountLocked()
}

// TotalQuestCount counts every quest across all areas, locked or not.
func (s *Store) TotalQuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalCountLocked()
}

// CompletedUnlockedQuestCount counts completed quests in unlocked areas only.
func (s *Store) CompletedUnlockedQuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.areas {
		if s.areas[i].Unlocked {
			count += s.areas[i].CompletedQuests()
		}
	}
	return count
}

// TotalUnlockedQuestCount counts every quest in unlocked areas only.
func (s *Store) TotalUnlockedQuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.areas {
		if s.areas[i].Unlocked {
			count += s.areas[i].QuestCount()
		}
	}
	return count
}

// TotalPoints sums the reward points of every completed quest across all
// areas, regardless of lock state.
func (s *Store) TotalPoints() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.totalPointsLocked()
}

// Level returns the player's current level.
func (s *Store) Level() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return leveling.LevelForPoints(s.totalPointsLocked())
}

// XP returns the points earned inside the current level.
func (s *Store) XP() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return leveling.XPWithinLevel(s.totalPointsLocked())
}

// XPToNextLevel returns the points needed to advance a level.
func (s *Store) XPToNextLevel() int {
	return leveling.XPToNextLevel()
}

func (s *Store) findAreaLocked(areaID string) *Area {
	for i := range s.areas {
		if s.areas[i].ID == areaID {
			return &s.areas[i]
		}
	}
	return nil
}

func findQuest(quests []Quest, questID string) *Quest {
	for i := range quests {
		if quests[i].ID == questID {
			return &quests[i]
		}
	}
	return nil
}

func (s *Store) completedCountLocked() int {
	count := 0
	for i := range s.areas {
		count += s.areas[i].CompletedQuests()
	}
	return count
}

func (s *Store) totalCountLocked() int {
	count := 0
	for i := range s.areas {
		count += s.areas[i].QuestCount()
	}
	return count
}

func (s *Store) totalPointsLocked() int {
	points := 0
	for i := range s.areas {
		area := &s.areas[i]
		if area.MainQuest.Completed {
			points += RewardPoints(area.MainQuest.Reward)
		}
		for _, q := range area.QuestList {
			if q.Completed {
				points += RewardPoints(q.Reward)
			}
		}
	}
	return points
}

func copyAreas(areas []Area) []Area {
	copied := make([]Area, len(areas))
	for i := range areas {
		copied[i] = copyArea(areas[i])
	}
	return copied
}

func copyArea(a Area) Area {
	out := a
	out.Coordinates = append([]geo.Coordinate(nil), a.Coordinates...)
	out.MainQuest = copyQuest(a.MainQuest)
	out.QuestList = make([]Quest, len(a.QuestList))
	for i := range a.QuestList {
		out.QuestList[i] = copyQuest(a.QuestList[i])
	}
	return out
}

func copyQuest(q Quest) Quest {
	out := q
	if q.Coordinate != nil {
		coord := *q.Coordinate
		out.Coordinate = &coord
	}
	return out
}
