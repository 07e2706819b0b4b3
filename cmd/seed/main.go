package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/paceline/paceline/internal/seed"
)

// Default generation parameters.
const (
	defaultRunners   = 12
	defaultFirstYear = 2019
	defaultLastYear  = 2024
	defaultSeed      = 42
	defaultTimeout   = 2 * time.Minute
	outputPermission = 0o600
)

func main() {
	var (
		out       = flag.String("out", "results.csv", "Output file (.csv or .xlsx)")
		runners   = flag.Int("runners", defaultRunners, "Number of runners to generate")
		firstYear = flag.Int("first-year", defaultFirstYear, "First event year")
		lastYear  = flag.Int("last-year", defaultLastYear, "Last event year")
		rngSeed   = flag.Int64("seed", defaultSeed, "RNG seed; same seed, same rows")
		upload    = flag.String("upload", "", "Base URL of a running service to post the file to (optional)")
	)
	flag.Parse()

	gen := seed.NewGenerator(*rngSeed, *runners, *firstYear, *lastYear)

	var (
		content []byte
		err     error
	)
	if strings.HasSuffix(*out, ".xlsx") {
		content, err = gen.XLSX()
	} else {
		content, err = gen.CSV()
	}
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := os.WriteFile(*out, content, outputPermission); err != nil {
		os.Stderr.WriteString("write failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	if *upload != "" {
		ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		batchID, err := seed.Upload(ctx, *upload, *out, content)
		if err != nil {
			os.Stderr.WriteString("upload failed: " + err.Error() + "\n")
			os.Exit(1)
		}
		os.Stdout.WriteString("uploaded batch " + batchID + "\n")
	}
}
