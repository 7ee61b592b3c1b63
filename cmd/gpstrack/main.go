package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/analysis"
	"github.com/jz2447/csci420-gps-proj/internal/config"
	"github.com/jz2447/csci420-gps-proj/internal/logging"
	"github.com/jz2447/csci420-gps-proj/internal/models"
	"github.com/jz2447/csci420-gps-proj/internal/render"
	"github.com/jz2447/csci420-gps-proj/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("gpstrack", flag.ContinueOnError)
	configFilePath := fs.String("c", "", "path to a YAML config file")
	outputPath := fs.String("o", "", "KML output path (default: <input base>.kml)")
	asJSON := fs.Bool("json", false, "print the track as JSON instead of writing KML")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "Missing the gps file. Try again.")
		return 0
	}
	input := fs.Arg(0)

	cfg, err := config.Load(*configFilePath)
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		return 1
	}
	if err := logging.Configure(cfg.GetLogLevel(), cfg.LogFilePath, cfg.LogMaxAgeDays); err != nil {
		log.Errorf("Failed to configure logging: %v", err)
		return 1
	}

	svc := service.NewTrackService(analysis.NewPipeline(cfg.Pipeline), nil)
	track, err := svc.AnalyzeFile(input)
	if err != nil {
		log.Errorf("Failed to reconstruct %s: %v", input, err)
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(track); err != nil {
			log.Errorf("Failed to encode track: %v", err)
			return 1
		}
		return 0
	}

	out := *outputPath
	if out == "" {
		out = strings.TrimSuffix(input, filepath.Ext(input)) + ".kml"
	}
	if err := writeKML(track, out); err != nil {
		log.Errorf("Failed to write %s: %v", out, err)
		return 1
	}

	printSummary(stdout, track)
	fmt.Fprintf(stdout, "KML written to %s\n", out)
	return 0
}

func writeKML(track *models.AnnotatedTrack, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.KML(track, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, track *models.AnnotatedTrack) {
	d := track.Duration
	if d.StartedInMotion {
		fmt.Fprintln(w, "GPS file started while the car was in motion. The total duration will be an estimate.")
	}
	if d.EndedInMotion {
		fmt.Fprintln(w, "GPS file ended while the car was in motion. The total duration will be an estimate.")
	}
	fmt.Fprintln(w, "Trip started at:", track.Start.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, "Trip ended at:", track.End.Timestamp.UTC().Format("2006-01-02 15:04:05"))
	fmt.Fprintln(w, "Total driving time:", d.Total.Round(time.Second))
	fmt.Fprintf(w, "Distance: %.2f km, %d left turns, %d stops\n",
		track.DistanceMeters/1000, len(track.Turns), len(track.Stops))
}
