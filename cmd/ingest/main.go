// The ingest tool transforms a tabular quest export (CSV) into the static
// fixture JSON the application loads at startup. It is a one-shot batch run:
// malformed rows are skipped with a diagnostic and the run always completes.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wegmarke/wegmarke/internal/fixture"
	"github.com/wegmarke/wegmarke/internal/ingest"
	"github.com/wegmarke/wegmarke/internal/logger"
)

func main() {
	inputFile := flag.String("input", "data/questlist.csv", "Path to the quest list CSV export")
	outputFile := flag.String("output", "data/fixture.json", "Path to the fixture JSON to write")
	areasFile := flag.String("areas", "", "Optional path for the area-only artifact (empty to skip)")
	unlockFirst := flag.Bool("unlock-first", false, "Mark the first area as unlocked in the emitted dataset")
	demo := flag.Bool("demo", false, "Demo mode: seeded random rewards and filler descriptions")
	demoCompleted := flag.Bool("demo-completed", false, "Demo mode only: mark a random subset of quests completed")
	seed := flag.Int64("seed", 1, "Seed for demo mode randomness")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	opts := ingest.Options{UnlockFirstArea: *unlockFirst}
	if *demo {
		opts.Builder = ingest.NewDemoBuilder(*seed, *demoCompleted)
		logger.Info("Running in demo mode", "seed", *seed, "random_completed", *demoCompleted)
	} else if *demoCompleted {
		fmt.Fprintln(os.Stderr, "-demo-completed requires -demo")
		os.Exit(1)
	}

	in, err := os.Open(*inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening input: %v\n", err)
		os.Exit(1)
	}
	defer in.Close()

	result, err := ingest.Run(in, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingestion failed: %v\n", err)
		os.Exit(1)
	}

	now := time.Now().UTC()

	snap := &fixture.Snapshot{
		QuestAreas:      result.Areas,
		MapQuestMarkers: result.Markers,
		GeneratedAt:     now,
	}
	if err := fixture.Save(*outputFile, snap); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing fixture: %v\n", err)
		os.Exit(1)
	}
	logger.Info("Wrote fixture", "path", *outputFile, "areas", len(result.Areas), "markers", len(result.Markers))

	if *areasFile != "" {
		list := &fixture.AreaList{QuestAreas: result.Areas, GeneratedAt: now}
		if err := fixture.SaveAreaList(*areasFile, list); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing area list: %v\n", err)
			os.Exit(1)
		}
		logger.Info("Wrote area list", "path", *areasFile)
	}
}
