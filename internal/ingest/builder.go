package ingest

import (
	"hash/fnv"
	"math/rand"
	"strings"

	"github.com/wegmarke/wegmarke/internal/geo"
	"github.com/wegmarke/wegmarke/internal/quest"
)

// RecordKind classifies a source row by its type tag.
type RecordKind string

const (
	KindArea      RecordKind = "QuestArea"
	KindMainQuest RecordKind = "MainQuest"
	KindQuest     RecordKind = "Quest"
)

// Reward denominations and filler descriptions for rows without
// authoritative values upstream.
var (
	rewardTiers = []string{"50 Punkte", "100 Punkte", "150 Punkte", "200 Punkte", "250 Punkte"}

	fallbackDescriptions = []string{
		"Entdecke die versteckten Schätze dieser Gegend.",
		"Löse das Rätsel und finde den geheimen Pfad.",
		"Erkunde die historischen Stätten und sammle Hinweise.",
		"Finde die versteckten Symbole und entschlüssle die Botschaft.",
		"Entdecke die lokalen Legenden und Geschichten.",
	}
)

const (
	defaultMainReward = "150 Punkte"
	defaultSubReward  = "50 Punkte"
)

// Builder turns raw tabular rows into normalized quest and area records.
//
// In production mode every field is derived deterministically from the row,
// so re-running ingestion on unchanged input reproduces identical output.
// Demo mode takes an explicit seed and may vary rewards, filler descriptions
// and completed flags; it never randomizes ids or solution words.
type Builder struct {
	rng           *rand.Rand
	demoCompleted bool
}

// NewBuilder returns a production-mode builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewDemoBuilder returns a seeded demo-mode builder. With markCompleted set,
// roughly a third of the generated quests start completed, for exercising
// progression UIs against a non-pristine dataset.
func NewDemoBuilder(seed int64, markCompleted bool) *Builder {
	return &Builder{
		rng:           rand.New(rand.NewSource(seed)),
		demoCompleted: markCompleted,
	}
}

// Slug lower-cases a name and replaces every non-alphanumeric rune with an
// underscore. Stable across runs so ids referenced elsewhere never drift.
func Slug(name string) string {
	name = strings.ToLower(FixEncoding(name))
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// QuestID derives the stable id for a quest record.
func QuestID(name string) string {
	return "quest_" + Slug(name)
}

// AreaID derives the stable id for an area record.
func AreaID(name string) string {
	return "area_" + Slug(name)
}

// solutionWordFromName synthesizes a solution word from the record name:
// lower-cased with whitespace removed. Deterministic, so a valid passcode
// never changes between ingestion runs.
func solutionWordFromName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(FixEncoding(name)), ""))
}

// pick selects an entry from a fixed set: seeded-random in demo mode,
// hash-of-name otherwise.
func (b *Builder) pick(name string, set []string) string {
	if b.rng != nil {
		return set[b.rng.Intn(len(set))]
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return set[int(h.Sum32())%len(set)]
}

// BuildQuest produces a normalized quest record from a source row.
func (b *Builder) BuildQuest(kind RecordKind, name, question, passcode string, point *geo.Coordinate) quest.Quest {
	name = strings.TrimSpace(FixEncoding(name))

	description := strings.TrimSpace(FixEncoding(question))
	if description == "" {
		description = b.pick(name, fallbackDescriptions)
	}

	var reward string
	if b.rng != nil {
		reward = b.pick(name, rewardTiers)
	} else if kind == KindMainQuest {
		reward = defaultMainReward
	} else {
		reward = defaultSubReward
	}

	solution := strings.ToLower(strings.TrimSpace(FixEncoding(passcode)))
	if solution == "" {
		solution = solutionWordFromName(name)
	}

	q := quest.Quest{
		ID:           QuestID(name),
		Title:        name,
		Description:  description,
		Reward:       reward,
		Completed:    false,
		Progress:     0,
		TotalSteps:   1,
		SolutionWord: solution,
		Coordinate:   point,
	}

	if b.demoCompleted && b.rng != nil && b.rng.Float64() > 0.7 {
		q.Completed = true
		q.Progress = q.TotalSteps
	}

	return q
}

// BuildArea produces a normalized area record from a source row. Quests are
// attached later by the linker.
func (b *Builder) BuildArea(name string, ring []geo.Coordinate) quest.Area {
	name = strings.TrimSpace(FixEncoding(name))

	return quest.Area{
		ID:          AreaID(name),
		Name:        name,
		Unlocked:    false,
		Coordinates: ring,
		Progress:    0,
		TotalQuests: 0,
	}
}

// PlaceholderMainQuest synthesizes a main quest for an area whose source
// rows carried none, keeping the one-main-quest-per-area invariant intact.
func (b *Builder) PlaceholderMainQuest(area *quest.Area) quest.Quest {
	var point *geo.Coordinate
	if len(area.Coordinates) > 0 {
		coord := area.Coordinates[0]
		point = &coord
	}
	return b.BuildQuest(KindMainQuest, area.Name+" Hauptquest", "", "", point)
}
