// Command imdbpipe runs the IMDb rating-category classification
// pipeline: dataset acquisition, schema normalization, feature
// derivation, and model training.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/mbayonal/sentiment-classification-model/internal/config"
	"github.com/mbayonal/sentiment-classification-model/internal/dataset"
	"github.com/mbayonal/sentiment-classification-model/internal/features"
	"github.com/mbayonal/sentiment-classification-model/internal/fetch"
	"github.com/mbayonal/sentiment-classification-model/internal/log"
	"github.com/mbayonal/sentiment-classification-model/internal/normalize"
	"github.com/mbayonal/sentiment-classification-model/internal/pipeline"
	"github.com/mbayonal/sentiment-classification-model/internal/sample"
	"github.com/mbayonal/sentiment-classification-model/internal/train"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: imdbpipe <command> [flags]

Commands:
  fetch       Download the IMDb datasets and cap oversized files
  preprocess  Normalize raw datasets into typed JSONL tables
  features    Build the merged movie feature table
  train       Train, evaluate, and select the rating classifiers
  run         Run every stage in order
  status      Report per-stage artifact presence
  version     Print version and exit

Global flags:
  -h, --help      Show this help

Run 'imdbpipe <command> --help' for more information on a command.
`

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first {
	case "fetch", "preprocess", "features", "train":
		return runStage(first, os.Args[2:])
	case "run":
		return runAll(os.Args[2:])
	case "status":
		return runStatus(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "imdbpipe: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("imdbpipe %s\n", version)
}

// stages is the explicit pipeline definition: every stage in execution
// order with the artifacts it produces.
func stages() []pipeline.Stage {
	return []pipeline.Stage{
		{
			Name: "fetch",
			Outputs: func(p config.Params) []string {
				out := make([]string, 0, len(dataset.AllKinds()))
				for _, kind := range dataset.AllKinds() {
					out = append(out, p.RawPath(kind))
				}
				return out
			},
			Run: func(p config.Params, logger *log.Logger) error {
				if err := fetch.Run(p, logger); err != nil {
					return err
				}
				return sample.Run(p, logger)
			},
		},
		{
			Name: "preprocess",
			Outputs: func(p config.Params) []string {
				out := make([]string, 0, len(dataset.AllKinds()))
				for _, kind := range dataset.AllKinds() {
					out = append(out, p.NormalizedPath(kind))
				}
				return out
			},
			Run: normalize.Run,
		},
		{
			Name:    "features",
			Outputs: func(p config.Params) []string { return []string{p.FeaturesPath()} },
			Run:     features.Run,
		},
		{
			Name: "train",
			Outputs: func(p config.Params) []string {
				return []string{p.BestModelPath(), p.MetadataPath()}
			},
			Run: train.Run,
		},
	}
}

// stageFlags builds the flag set shared by every stage subcommand.
func stageFlags(name string, paramsPath *string, verbose *bool) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVarP(paramsPath, "params", "p", "", "Path to params.yaml (default: ./params.yaml if present)")
	fs.BoolVarP(verbose, "verbose", "v", false, "Enable diagnostic output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: imdbpipe %s [flags]\n\nFlags:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// loadParams resolves the params document: an explicit path must parse,
// otherwise ./params.yaml is used when present, otherwise defaults.
func loadParams(path string) (config.Params, error) {
	if path == "" {
		if _, err := os.Stat("params.yaml"); err == nil {
			path = "params.yaml"
		}
	}
	return config.Load(path)
}

func runStage(name string, args []string) int {
	var (
		paramsPath string
		verbose    bool
	)
	fs := stageFlags(name, &paramsPath, &verbose)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := loadParams(paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 2
	}
	logger := &log.Logger{Verbose: verbose, W: os.Stderr}

	runner := &pipeline.Runner{Stages: stages()}
	if err := runner.RunStage(name, p, logger); err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 1
	}
	return 0
}

func runAll(args []string) int {
	var (
		paramsPath string
		verbose    bool
	)
	fs := stageFlags("run", &paramsPath, &verbose)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := loadParams(paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 2
	}
	logger := &log.Logger{Verbose: verbose, W: os.Stderr}

	runner := &pipeline.Runner{Stages: stages()}
	if err := runner.Run(p, logger); err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	var (
		paramsPath string
		verbose    bool
	)
	fs := stageFlags("status", &paramsPath, &verbose)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	p, err := loadParams(paramsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 2
	}

	runner := &pipeline.Runner{Stages: stages()}
	statuses, err := runner.Status(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "imdbpipe: %v\n", err)
		return 1
	}

	for _, status := range statuses {
		state := "incomplete"
		if status.Complete {
			state = "complete"
		}
		fmt.Printf("%s: %s\n", status.Name, state)
		for _, artifact := range status.Artifacts {
			fmt.Printf("  %s: %d file(s)\n", artifact.Pattern, artifact.Count)
		}
	}
	return 0
}
