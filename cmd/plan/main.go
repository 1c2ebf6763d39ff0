// Command plan runs a single planning pass over a JSON scenario file and
// prints the resulting motion instructions.
//
// Grounded on cmd/preprocess/main.go's flag-driven single-pass-with-timing
// shape: open input, run the pipeline stages with log.Printf progress
// lines, write output, report elapsed time.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
	"chessmotion/pkg/search"
	"chessmotion/pkg/toolpath"
	"chessmotion/pkg/visibility"
)

// scenario is the JSON scenario-file shape: a set of obstacle discs plus
// a start and goal point.
type scenario struct {
	Discs []discJSON `json:"discs"`
	Start pointJSON  `json:"start"`
	Goal  pointJSON  `json:"goal"`
}

type discJSON struct {
	Center pointJSON `json:"center"`
	Radius float64   `json:"radius"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p pointJSON) toPoint() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

func main() {
	input := flag.String("input", "", "Path to scenario JSON file")
	output := flag.String("output", "", "Output file for motion instructions (empty = stdout)")
	feedrate := flag.Float64("feedrate", 0, "Override feedrate (0 = use default)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: plan --input <scenario.json> [--output path] [--feedrate N]")
		os.Exit(1)
	}

	start := time.Now()

	log.Printf("Reading scenario from %s...", *input)
	raw, err := os.ReadFile(*input)
	if err != nil {
		log.Fatalf("Failed to read scenario file: %v", err)
	}

	var sc scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		log.Fatalf("Failed to parse scenario JSON: %v", err)
	}

	discs := make([]model.Disc, len(sc.Discs))
	for i, d := range sc.Discs {
		discs[i] = model.Disc{Center: d.Center.toPoint(), Radius: d.Radius}
	}

	log.Printf("Building visibility graph over %d obstacles...", len(discs))
	g, err := visibility.Build(discs)
	if err != nil {
		log.Fatalf("Failed to build visibility graph: %v", err)
	}

	startNode, err := visibility.InsertPoint(g, sc.Start.toPoint())
	if err != nil {
		log.Fatalf("Failed to insert start point: %v", err)
	}
	goalNode, err := visibility.InsertPoint(g, sc.Goal.toPoint())
	if err != nil {
		log.Fatalf("Failed to insert goal point: %v", err)
	}
	log.Printf("Graph: %d discs, %d nodes, %d surfing edges, %d hugging edges",
		g.NumDiscs(), g.NumNodes(), len(g.SurfingEdges), len(g.HuggingEdges))

	log.Println("Searching for shortest path...")
	path, err := search.Run(g, startNode, goalNode)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	cost := search.PathCost(g, path)
	log.Printf("Found path of %d nodes, cost %.3f", len(path), cost)

	cfg := toolpath.DefaultConfig()
	if *feedrate > 0 {
		cfg.Feedrate = *feedrate
	}
	gcode := toolpath.Emit(g, path, cfg)

	if *output == "" {
		fmt.Println(gcode)
	} else {
		if err := os.WriteFile(*output, []byte(gcode+"\n"), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		log.Printf("Wrote motion instructions to %s", *output)
	}

	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}
