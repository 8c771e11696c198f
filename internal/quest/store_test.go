package quest

import (
	"errors"
	"testing"
)

// testAreas builds two areas: one with two sub-quests, one with three.
func testAreas() []Area {
	return []Area{
		{
			ID:   "area_altstadt",
			Name: "Altstadt",
			MainQuest: Quest{
				ID: "quest_dom", Title: "Dom", Reward: "150 Punkte",
				TotalSteps: 1, SolutionWord: "dom",
			},
			QuestList: []Quest{
				{ID: "quest_rathaus", Title: "Rathaus", Reward: "50 Punkte", TotalSteps: 1, SolutionWord: "frieden"},
				{ID: "quest_markt", Title: "Markt", Reward: "50 Punkte", TotalSteps: 1},
			},
		},
		{
			ID:   "area_hafen",
			Name: "Hafen",
			MainQuest: Quest{
				ID: "quest_kran", Title: "Kran", Reward: "150 Punkte", TotalSteps: 1,
			},
			QuestList: []Quest{
				{ID: "quest_speicher", Title: "Speicher", Reward: "50 Punkte", TotalSteps: 1},
				{ID: "quest_kai", Title: "Kai", Reward: "50 Punkte", TotalSteps: 1},
				{ID: "quest_werft", Title: "Werft", Reward: "50 Punkte", TotalSteps: 1},
			},
		},
	}
}

func TestNewStoreRecomputesDerivedCounters(t *testing.T) {
	areas := testAreas()
	areas[0].TotalQuests = 99 // sloppy fixture value
	areas[0].Progress = 42

	store := NewStore(areas)

	got := store.Areas()
	if got[0].TotalQuests != 3 {
		t.Errorf("TotalQuests = %d, want 3", got[0].TotalQuests)
	}
	if got[0].Progress != 0 {
		t.Errorf("Progress = %d, want 0", got[0].Progress)
	}
}

func TestCompleteMainQuestUnlocksArea(t *testing.T) {
	store := NewStore(testAreas())

	result, err := store.CompleteMainQuest("area_altstadt")
	if err != nil {
		t.Fatalf("CompleteMainQuest returned error: %v", err)
	}
	if result != ResultCompleted {
		t.Errorf("Result = %q, want %q", result, ResultCompleted)
	}

	area, err := store.Area("area_altstadt")
	if err != nil {
		t.Fatalf("Area returned error: %v", err)
	}
	if !area.Unlocked {
		t.Error("Area should be unlocked after main quest completion")
	}
	if !area.MainQuest.Completed {
		t.Error("Main quest should be completed")
	}
	if area.MainQuest.Progress != area.MainQuest.TotalSteps {
		t.Errorf("Main quest progress = %d, want %d", area.MainQuest.Progress, area.MainQuest.TotalSteps)
	}
	if area.Progress != 1 {
		t.Errorf("Area progress = %d, want 1", area.Progress)
	}
}

func TestCompleteMainQuestAlreadyCompleted(t *testing.T) {
	store := NewStore(testAreas())

	if _, err := store.CompleteMainQuest("area_altstadt"); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}

	result, err := store.CompleteMainQuest("area_altstadt")
	if err != nil {
		t.Fatalf("repeat completion should not error, got %v", err)
	}
	if result != ResultAlreadyCompleted {
		t.Errorf("Result = %q, want %q", result, ResultAlreadyCompleted)
	}

	// Still exactly one completed quest
	if got := store.CompletedQuestCount(); got != 1 {
		t.Errorf("CompletedQuestCount = %d, want 1", got)
	}
}

func TestCompleteMainQuestUnknownArea(t *testing.T) {
	store := NewStore(testAreas())

	if _, err := store.CompleteMainQuest("area_nirgendwo"); !errors.Is(err, ErrAreaNotFound) {
		t.Errorf("err = %v, want ErrAreaNotFound", err)
	}
}

func TestCompleteSubQuestRequiresUnlockedArea(t *testing.T) {
	store := NewStore(testAreas())

	if _, err := store.CompleteSubQuest("area_altstadt", "quest_rathaus"); !errors.Is(err, ErrAreaLocked) {
		t.Errorf("err = %v, want ErrAreaLocked", err)
	}

	// Unlock, then the same operation succeeds
	if _, err := store.CompleteMainQuest("area_altstadt"); err != nil {
		t.Fatalf("CompleteMainQuest failed: %v", err)
	}

	result, err := store.CompleteSubQuest("area_altstadt", "quest_rathaus")
	if err != nil {
		t.Fatalf("CompleteSubQuest returned error: %v", err)
	}
	if result != ResultCompleted {
		t.Errorf("Result = %q, want %q", result, ResultCompleted)
	}

	area, _ := store.Area("area_altstadt")
	if area.Progress != 2 {
		t.Errorf("Area progress = %d, want 2 (main + one sub)", area.Progress)
	}
}

func TestCompleteSubQuestUnknownQuest(t *testing.T) {
	store := NewStore(testAreas())
	store.CompleteMainQuest("area_altstadt")

	if _, err := store.CompleteSubQuest("area_altstadt", "quest_fehlt"); !errors.Is(err, ErrQuestNotFound) {
		t.Errorf("err = %v, want ErrQuestNotFound", err)
	}
}

func TestProgressInvariantAfterEveryMutation(t *testing.T) {
	store := NewStore(testAreas())

	check := func(step string) {
		for _, area := range store.Areas() {
			if area.TotalQuests != 1+len(area.QuestList) {
				t.Errorf("%s: area %s TotalQuests = %d, want %d",
					step, area.ID, area.TotalQuests, 1+len(area.QuestList))
			}
			if area.Progress != area.CompletedQuests() {
				t.Errorf("%s: area %s Progress = %d, want %d",
					step, area.ID, area.Progress, area.CompletedQuests())
			}
			if area.MainQuest.Progress > area.MainQuest.TotalSteps {
				t.Errorf("%s: area %s main quest progress exceeds total steps", step, area.ID)
			}
		}
	}

	check("initial")
	store.CompleteMainQuest("area_altstadt")
	check("after main")
	store.CompleteSubQuest("area_altstadt", "quest_rathaus")
	check("after sub")
	store.CompleteSubQuest("area_altstadt", "quest_markt")
	check("after second sub")
	store.CompleteMainQuest("area_hafen")
	check("after second main")
}

func TestProgressIsMonotonic(t *testing.T) {
	store := NewStore(testAreas())

	store.CompleteMainQuest("area_altstadt")
	before, _ := store.Area("area_altstadt")

	// Invalid and repeated operations must never decrease progress
	store.CompleteMainQuest("area_altstadt")
	store.CompleteSubQuest("area_altstadt", "quest_fehlt")
	store.CompleteSubQuest("area_nirgendwo", "quest_rathaus")

	after, _ := store.Area("area_altstadt")
	if after.Progress < before.Progress {
		t.Errorf("Area progress decreased: %d -> %d", before.Progress, after.Progress)
	}
	if !after.Unlocked {
		t.Error("Unlocked must never revert to false")
	}
	if !after.MainQuest.Completed {
		t.Error("Completed must never revert to false")
	}
}

func TestUnlockOnlyViaMainQuest(t *testing.T) {
	store := NewStore(testAreas())

	for _, area := range store.Areas() {
		if area.Unlocked {
			t.Fatalf("area %s unlocked without main quest completion", area.ID)
		}
	}

	store.CompleteMainQuest("area_hafen")

	for _, area := range store.Areas() {
		want := area.ID == "area_hafen"
		if area.Unlocked != want {
			t.Errorf("area %s unlocked = %v, want %v", area.ID, area.Unlocked, want)
		}
	}
}

func TestPointsAndLevelArithmetic(t *testing.T) {
	store := NewStore([]Area{
		{
			ID:        "area_punkte",
			MainQuest: Quest{ID: "quest_m", Reward: "50 XP", TotalSteps: 1},
			QuestList: []Quest{
				{ID: "quest_a", Reward: "100 Punkte", TotalSteps: 1},
				{ID: "quest_b", Reward: "25 Punkte", TotalSteps: 1},
			},
		},
	})

	store.CompleteMainQuest("area_punkte")
	store.CompleteSubQuest("area_punkte", "quest_a")
	store.CompleteSubQuest("area_punkte", "quest_b")

	if got := store.TotalPoints(); got != 175 {
		t.Errorf("TotalPoints = %d, want 175", got)
	}
	if got := store.Level(); got != 2 {
		t.Errorf("Level = %d, want 2", got)
	}
	if got := store.XP(); got != 75 {
		t.Errorf("XP = %d, want 75", got)
	}
	if got := store.XPToNextLevel(); got != 100 {
		t.Errorf("XPToNextLevel = %d, want 100", got)
	}
}

func TestUnlockedScopedCounts(t *testing.T) {
	store := NewStore(testAreas())

	if got := store.TotalQuestCount(); got != 7 {
		t.Errorf("TotalQuestCount = %d, want 7", got)
	}
	if got := store.TotalUnlockedQuestCount(); got != 0 {
		t.Errorf("TotalUnlockedQuestCount = %d, want 0 before any unlock", got)
	}

	store.CompleteMainQuest("area_altstadt")

	if got := store.TotalUnlockedQuestCount(); got != 3 {
		t.Errorf("TotalUnlockedQuestCount = %d, want 3", got)
	}
	if got := store.CompletedUnlockedQuestCount(); got != 1 {
		t.Errorf("CompletedUnlockedQuestCount = %d, want 1", got)
	}
	if got := store.CompletedQuestCount(); got != 1 {
		t.Errorf("CompletedQuestCount = %d, want 1", got)
	}
}

func TestSubmitSolution(t *testing.T) {
	store := NewStore(testAreas())

	// Wrong word: normal negative result, no mutation
	correct, _, err := store.SubmitSolution("area_altstadt", "quest_dom", "falsch")
	if err != nil {
		t.Fatalf("SubmitSolution returned error: %v", err)
	}
	if correct {
		t.Error("Wrong solution word should not match")
	}
	if store.CompletedQuestCount() != 0 {
		t.Error("Wrong solution word must leave state unchanged")
	}

	// Case and whitespace insensitive match on the main quest
	correct, result, err := store.SubmitSolution("area_altstadt", "quest_dom", " DOM ")
	if err != nil {
		t.Fatalf("SubmitSolution returned error: %v", err)
	}
	if !correct || result != ResultCompleted {
		t.Errorf("correct=%v result=%q, want true/%q", correct, result, ResultCompleted)
	}

	area, _ := store.Area("area_altstadt")
	if !area.Unlocked {
		t.Error("Solving the main quest should unlock the area")
	}

	// Quest without a solution word accepts any submission
	correct, result, err = store.SubmitSolution("area_altstadt", "quest_markt", "egal")
	if err != nil {
		t.Fatalf("SubmitSolution returned error: %v", err)
	}
	if !correct || result != ResultCompleted {
		t.Errorf("correct=%v result=%q, want true/%q", correct, result, ResultCompleted)
	}

	// Repeat submission is a no-op with an explicit status
	correct, result, err = store.SubmitSolution("area_altstadt", "quest_dom", "dom")
	if err != nil {
		t.Fatalf("SubmitSolution returned error: %v", err)
	}
	if !correct || result != ResultAlreadyCompleted {
		t.Errorf("correct=%v result=%q, want true/%q", correct, result, ResultAlreadyCompleted)
	}

	// Sub-quest of a locked area is rejected
	if _, _, err := store.SubmitSolution("area_hafen", "quest_speicher", "x"); !errors.Is(err, ErrAreaLocked) {
		t.Errorf("err = %v, want ErrAreaLocked", err)
	}

	// Unknown ids are hard errors
	if _, _, err := store.SubmitSolution("area_nirgendwo", "quest_dom", "x"); !errors.Is(err, ErrAreaNotFound) {
		t.Errorf("err = %v, want ErrAreaNotFound", err)
	}
	if _, _, err := store.SubmitSolution("area_altstadt", "quest_fehlt", "x"); !errors.Is(err, ErrQuestNotFound) {
		t.Errorf("err = %v, want ErrQuestNotFound", err)
	}
}

func TestAreasReturnsCopies(t *testing.T) {
	store := NewStore(testAreas())

	areas := store.Areas()
	areas[0].MainQuest.Completed = true
	areas[0].Unlocked = true

	fresh, _ := store.Area("area_altstadt")
	if fresh.MainQuest.Completed || fresh.Unlocked {
		t.Error("Mutating a returned area must not affect store state")
	}
}
