package quest

import (
	"testing"

	"github.com/wegmarke/wegmarke/internal/geo"
)

func TestRewardPoints(t *testing.T) {
	tests := []struct {
		reward string
		want   int
	}{
		{"100 Punkte", 100},
		{"50 XP", 50},
		{"25 Punkte", 25},
		{"Punkte", 0},
		{"", 0},
		{"Belohnung: 150 Punkte extra", 150},
	}

	for _, tt := range tests {
		if got := RewardPoints(tt.reward); got != tt.want {
			t.Errorf("RewardPoints(%q) = %d, want %d", tt.reward, got, tt.want)
		}
	}
}

func TestMatchSolution(t *testing.T) {
	tests := []struct {
		input string
		word  string
		want  bool
	}{
		{"münster", "Münster", true},
		{" MÜNSTER ", "Münster", true},
		{"Munster", "Münster", false}, // no diacritic folding
		{"prinzipalmarkt", "Prinzipalmarkt", true},
		{"", "Münster", false},
		{"anything", "", true}, // no solution word set accepts any input
	}

	for _, tt := range tests {
		if got := MatchSolution(tt.input, tt.word); got != tt.want {
			t.Errorf("MatchSolution(%q, %q) = %v, want %v", tt.input, tt.word, got, tt.want)
		}
	}
}

func TestAreaCounts(t *testing.T) {
	area := Area{
		ID:        "area_test",
		MainQuest: Quest{ID: "quest_main", Completed: true},
		QuestList: []Quest{
			{ID: "quest_a", Completed: true},
			{ID: "quest_b", Completed: false},
		},
	}

	if got := area.QuestCount(); got != 3 {
		t.Errorf("QuestCount() = %d, want 3", got)
	}
	if got := area.CompletedQuests(); got != 2 {
		t.Errorf("CompletedQuests() = %d, want 2", got)
	}
}

func TestBuildMarkersVisibility(t *testing.T) {
	coord := &geo.Coordinate{Latitude: 51.96, Longitude: 7.62}
	areas := []Area{
		{
			ID:        "area_locked",
			Unlocked:  false,
			MainQuest: Quest{ID: "quest_locked_main", Title: "Locked Main", Coordinate: coord},
			QuestList: []Quest{
				{ID: "quest_l1", Coordinate: coord},
				{ID: "quest_l2", Coordinate: coord},
			},
		},
		{
			ID:        "area_open",
			Unlocked:  true,
			MainQuest: Quest{ID: "quest_open_main", Title: "Open Main", Coordinate: coord},
			QuestList: []Quest{
				{ID: "quest_o1", Coordinate: coord},
				{ID: "quest_o2", Coordinate: coord},
				{ID: "quest_o3", Coordinate: coord},
			},
		},
	}

	markers := BuildMarkers(areas)

	mains, subs := 0, 0
	for _, m := range markers {
		switch m.Type {
		case MarkerMain:
			mains++
		case MarkerSub:
			subs++
		}
	}

	if mains != 2 {
		t.Errorf("Main marker count = %d, want 2 (always visible)", mains)
	}
	if subs != 3 {
		t.Errorf("Sub marker count = %d, want 3 (unlocked area only)", subs)
	}

	// Marker ids carry a role prefix so they stay unique across areas
	seen := make(map[string]bool)
	for _, m := range markers {
		if seen[m.ID] {
			t.Errorf("Duplicate marker id %q", m.ID)
		}
		seen[m.ID] = true
	}
	if !seen["main-quest_locked_main"] {
		t.Error("Expected main marker id main-quest_locked_main")
	}
	if !seen["sub-quest_o1"] {
		t.Error("Expected sub marker id sub-quest_o1")
	}
	if seen["sub-quest_l1"] {
		t.Error("Sub markers of a locked area must not be emitted")
	}
}
