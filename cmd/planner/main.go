// Command planner serves the motion-planning HTTP API (pkg/api) backed
// by a reference board (pkg/boardref) and a pluggable chess engine.
//
// Grounded on cmd/server/main.go's flag parsing, startup log lines, and
// graceful shutdown via api.ListenAndServe.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chessmotion/pkg/api"
	"chessmotion/pkg/board"
	"chessmotion/pkg/boardref"
	"chessmotion/pkg/orchestrator"
)

// stubEngine always returns an error, so board_state requests fail and
// only explicit moves can be planned; real deployments wire a UCI
// engine or similar here instead.
type stubEngine struct{}

func (stubEngine) BestMove(boardState string) (board.Move, error) {
	return "", fmt.Errorf("planner: no chess engine configured; pass move directly instead of board_state")
}

func main() {
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Println("Setting up reference board in the standard starting position...")
	b := boardref.NewStandard()
	orch := orchestrator.New(b, stubEngine{})

	log.Printf("Ready in %s", time.Since(start).Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	handlers := api.NewHandlers(orch)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
