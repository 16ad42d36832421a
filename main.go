package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gocv.io/x/gocv"

	"motiontracker/app"
	"motiontracker/capture"
	"motiontracker/config"
	"motiontracker/export"
	"motiontracker/opencv"
	"motiontracker/recording"
	"motiontracker/stats"
	"motiontracker/tracking"
	"motiontracker/types"
	"motiontracker/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to a YAML configuration file (optional)")
	algorithm := flag.String("algorithm", "", "Tracking algorithm: csrt, kcf or mil (overrides config)")
	outputDir := flag.String("output", "", "Output directory for video and statistics (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path to archive session statistics (optional)")
	noPlot := flag.Bool("no-plot", false, "Skip the trajectory plots")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: motiontracker [flags] [camera ID or video file]")
		flag.PrintDefaults()
	}
	flag.Parse()

	device := "0"
	if flag.NArg() > 0 {
		device = flag.Arg(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Configuration error: %v", err)
		return 2
	}
	if *algorithm != "" {
		cfg.Tracking.Algorithm = *algorithm
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *dbPath != "" {
		cfg.Output.DBPath = *dbPath
	}
	if *noPlot {
		cfg.Output.PlotPNG = ""
		cfg.Output.PlotHTML = ""
	}
	if err := config.Validate(cfg); err != nil {
		log.Printf("Configuration error: %v", err)
		return 2
	}

	debug := types.NewDebugLogger(cfg.UI.MaxDebugLogs)
	debug.SetAsLogOutput()
	defer debug.RestoreOriginalLogOutput()

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		log.Printf("Failed to create output dir: %v", err)
		return 1
	}

	factory, err := opencv.NewTrackerFactory(cfg.Tracking.Algorithm)
	if err != nil {
		log.Println(err)
		return 2
	}

	source, err := capture.Open(device, cfg.Capture)
	if err != nil {
		log.Println(err)
		return 1
	}

	outPath := func(name string) string { return filepath.Join(cfg.Output.Dir, name) }

	loop := &app.Loop[gocv.Mat]{
		Source:    source,
		Display:   ui.NewWindow(cfg.UI),
		Session:   tracking.NewSession[gocv.Mat](factory),
		Recorder:  recording.NewController[gocv.Mat](outPath(cfg.Output.VideoFile), opencv.NewWriterOpener(cfg.Video)),
		FrameSize: capture.FrameSize,
		Debug:     debug,
		PollDelay: cfg.UI.PollDelayMs,
	}

	ui.PrintStartupInstructions()
	startedAt := time.Now()

	result, err := loop.Run()
	if err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Printf("Session ended (%s) after %d frames with %d objects", result.Reason, result.Frames, len(result.History))

	report := stats.Compute(result.History)
	runInfo := export.RunInfo{
		ID:        uuid.New(),
		Source:    source.Name,
		StartedAt: startedAt,
		Frames:    result.Frames,
	}
	if !writeArtifacts(cfg.Output, outPath, runInfo, report) {
		return 1
	}
	return 0
}

// writeArtifacts produces every configured output and reports whether all succeeded
func writeArtifacts(out types.OutputConfig, outPath func(string) string, run export.RunInfo, report stats.Report) bool {
	ok := true
	fail := func(what string, err error) {
		log.Printf("Failed to write %s: %v", what, err)
		ok = false
	}

	fmt.Println("\nTracking Statistics:")
	if err := export.PrintTable(os.Stdout, report.Objects); err != nil {
		fail("statistics table", err)
	}

	csvPath := outPath(out.StatsFile)
	if err := export.WriteCSV(csvPath, report.Objects); err != nil {
		fail("statistics", err)
	} else {
		fmt.Printf("\nStats saved to: %s\n", csvPath)
	}

	if len(report.Trajectories) > 0 {
		if out.PlotPNG != "" {
			if err := export.SavePlotPNG(outPath(out.PlotPNG), report.Trajectories); err != nil {
				fail("plot", err)
			} else {
				fmt.Printf("Motion paths saved to: %s\n", outPath(out.PlotPNG))
			}
		}
		if out.PlotHTML != "" {
			if err := export.SavePlotHTML(outPath(out.PlotHTML), report.Trajectories); err != nil {
				fail("interactive plot", err)
			} else {
				fmt.Printf("Interactive motion paths: %s\n", outPath(out.PlotHTML))
			}
		}
	}

	if out.DBPath != "" {
		if err := export.SaveRun(context.Background(), out.DBPath, run, report); err != nil {
			fail("run archive", err)
		} else {
			fmt.Printf("Run %s archived in %s\n", run.ID, out.DBPath)
		}
	}

	return ok
}
