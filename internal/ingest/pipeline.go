// Package ingest transforms the tabular quest export into the static
// fixture the application loads at startup. The pipeline is a one-shot
// batch run: bad rows are skipped with a diagnostic, never fatal, and
// re-running on unchanged input reproduces identical ids.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wegmarke/wegmarke/internal/geo"
	"github.com/wegmarke/wegmarke/internal/logger"
	"github.com/wegmarke/wegmarke/internal/quest"
)

// Options configures a pipeline run.
type Options struct {
	// Builder used for record construction. Nil selects production mode.
	Builder *Builder

	// UnlockFirstArea marks the first area of the emitted dataset as
	// unlocked, so a fresh install has somewhere to start.
	UnlockFirstArea bool
}

// Result carries the emitted dataset and the run's bookkeeping counters.
type Result struct {
	Areas   []quest.Area
	Markers []quest.Marker

	RowsRead     int
	RowsSkipped  int
	Orphans      int
	DroppedMains int
	Placeholders int
}

type questRecord struct {
	q       quest.Quest
	forArea string
	name    string
}

// Run reads the CSV source and produces the linked dataset. Expected
// columns: WKT geometry, name, type tag, forArea, then optional question
// and passcode. The first row is the header.
func Run(r io.Reader, opts Options) (*Result, error) {
	builder := opts.Builder
	if builder == nil {
		builder = NewBuilder()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	logger.Debug("Read CSV header", "columns", len(header))

	result := &Result{}
	var areas []quest.Area
	var mains, subs []questRecord

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.RowsSkipped++
			logger.Warning("Skipping unreadable CSV row", "error", err)
			continue
		}
		result.RowsRead++

		area, main, sub, skip := processRow(builder, row)
		if skip != "" {
			result.RowsSkipped++
			logger.Warning("Skipping row", "reason", skip, "row", result.RowsRead)
			continue
		}

		switch {
		case area != nil:
			areas = append(areas, *area)
		case main != nil:
			mains = append(mains, *main)
		case sub != nil:
			subs = append(subs, *sub)
		}
	}

	link(builder, areas, mains, subs, result)

	if opts.UnlockFirstArea && len(areas) > 0 {
		areas[0].Unlocked = true
	}

	for i := range areas {
		areas[i].TotalQuests = areas[i].QuestCount()
		areas[i].Progress = areas[i].CompletedQuests()
	}

	result.Areas = areas
	result.Markers = quest.BuildMarkers(areas)

	logger.Info("Ingestion run finished",
		"areas", len(areas),
		"main_quests", len(mains),
		"sub_quests", len(subs),
		"rows_skipped", result.RowsSkipped,
		"orphans", result.Orphans,
		"placeholders", result.Placeholders)

	return result, nil
}

// processRow classifies and builds a single row. A non-empty skip reason
// means the row is dropped; the run continues.
func processRow(builder *Builder, row []string) (area *quest.Area, main, sub *questRecord, skip string) {
	if len(row) < 4 {
		return nil, nil, nil, fmt.Sprintf("expected at least 4 columns, got %d", len(row))
	}

	wkt := clean(row[0])
	name := clean(row[1])
	kind := RecordKind(clean(row[2]))
	forArea := clean(row[3])

	var question, passcode string
	if len(row) > 4 {
		question = clean(row[4])
	}
	if len(row) > 5 {
		passcode = clean(row[5])
	}

	if name == "" {
		return nil, nil, nil, "missing name"
	}

	geom, err := geo.Parse(wkt)
	if err != nil {
		return nil, nil, nil, fmt.Sprintf("bad geometry for %q: %v", name, err)
	}
	if geom == nil {
		return nil, nil, nil, fmt.Sprintf("no usable geometry for %q", name)
	}

	switch kind {
	case KindArea:
		if geom.Ring == nil {
			return nil, nil, nil, fmt.Sprintf("area %q requires a polygon", name)
		}
		a := builder.BuildArea(name, geom.Ring)
		return &a, nil, nil, ""

	case KindMainQuest:
		if geom.Point == nil {
			return nil, nil, nil, fmt.Sprintf("main quest %q requires a point", name)
		}
		q := builder.BuildQuest(KindMainQuest, name, question, passcode, geom.Point)
		return nil, &questRecord{q: q, forArea: forArea, name: name}, nil, ""

	case KindQuest:
		if geom.Point == nil {
			return nil, nil, nil, fmt.Sprintf("quest %q requires a point", name)
		}
		q := builder.BuildQuest(KindQuest, name, question, passcode, geom.Point)
		return nil, nil, &questRecord{q: q, forArea: forArea, name: name}, ""

	default:
		return nil, nil, nil, fmt.Sprintf("unknown type tag %q", kind)
	}
}

// clean strips stray line breaks and surrounding whitespace from a CSV cell.
func clean(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.TrimSpace(s)
}

// link attaches quest records to their areas and synthesizes placeholder
// main quests where the source carried none.
func link(builder *Builder, areas []quest.Area, mains, subs []questRecord, result *Result) {
	linker := NewLinker(areas)

	for _, rec := range mains {
		idx, ok := linker.Find(rec.forArea, rec.q.Coordinate)
		if !ok {
			result.DroppedMains++
			logger.Warning("Dropping main quest without a matching area", "quest", rec.name, "for_area", rec.forArea)
			continue
		}
		if areas[idx].MainQuest.ID != "" {
			logger.Warning("Area already has a main quest, keeping the first", "area", areas[idx].Name, "quest", rec.name)
			continue
		}
		areas[idx].MainQuest = rec.q
	}

	for i := range areas {
		if areas[i].MainQuest.ID == "" {
			areas[i].MainQuest = builder.PlaceholderMainQuest(&areas[i])
			result.Placeholders++
			logger.Info("Synthesized placeholder main quest", "area", areas[i].Name)
		}
	}

	for _, rec := range subs {
		idx, ok := linker.Find(rec.forArea, rec.q.Coordinate)
		if !ok {
			result.Orphans++
			logger.Warning("Dropping orphaned quest", "quest", rec.name, "for_area", rec.forArea)
			continue
		}
		areas[idx].QuestList = append(areas[idx].QuestList, rec.q)
	}
}
