// The resetfixture tool clears all completion state from one or more fixture
// files, returning them to a freshly-ingested state without re-running the
// ingestion pipeline. Quest content, area unlocks and marker layout survive.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wegmarke/wegmarke/internal/fixture"
	"github.com/wegmarke/wegmarke/internal/logger"
)

func main() {
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"data/fixture.json"}
	}

	for _, path := range paths {
		snap, err := fixture.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
			os.Exit(1)
		}

		cleared := fixture.Reset(snap)

		if err := fixture.Save(path, snap); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}
		logger.Info("Reset fixture", "path", path, "cleared", cleared)
	}
}
