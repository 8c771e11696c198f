// Package fixture reads and writes the static dataset snapshot the
// application loads at startup. The snapshot shape is the sole contract
// between the ingestion pipeline and the progression store.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/wegmarke/wegmarke/internal/quest"
)

// Snapshot is the serialized dataset: areas with their embedded quests, the
// flattened marker list, and the generation timestamp.
type Snapshot struct {
	QuestAreas      []quest.Area   `json:"questAreas"`
	MapQuestMarkers []quest.Marker `json:"mapQuestMarkers"`
	GeneratedAt     time.Time      `json:"generatedAt"`
}

// AreaList is the area-only artifact emitted alongside the full snapshot.
type AreaList struct {
	QuestAreas  []quest.Area `json:"questAreas"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// Load reads a snapshot from disk.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse fixture JSON: %w", err)
	}

	return &snap, nil
}

// Save writes a snapshot to disk as indented JSON.
func Save(path string, snap *Snapshot) error {
	return writeJSON(path, snap)
}

// SaveAreaList writes the area-only artifact to disk.
func SaveAreaList(path string, list *AreaList) error {
	return writeJSON(path, list)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Reset force-clears every completed flag in the snapshot: main quests,
// sub-quests, and markers. Every other field is preserved. Returns the
// number of flags cleared.
func Reset(snap *Snapshot) int {
	cleared := 0

	for i := range snap.QuestAreas {
		area := &snap.QuestAreas[i]
		if area.MainQuest.Completed {
			area.MainQuest.Completed = false
			cleared++
		}
		for j := range area.QuestList {
			if area.QuestList[j].Completed {
				area.QuestList[j].Completed = false
				cleared++
			}
		}
	}

	for i := range snap.MapQuestMarkers {
		if snap.MapQuestMarkers[i].Completed {
			snap.MapQuestMarkers[i].Completed = false
			cleared++
		}
	}

	return cleared
}
