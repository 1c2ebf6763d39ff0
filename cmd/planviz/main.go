// Command planviz serves a local debug page that renders a planning
// scenario (obstacle discs, start, goal) as an SVG drawing of the
// obstacle discs and the chosen path; graph edges are not drawn.
//
// Grounded on cmd/visualize/main.go's embed.FS static serving + JSON API
// shape. The external ORS/Google comparison calls are dropped — no
// network collaborators belong in the planning core — and replaced with
// a local SVG render of the planner's own graph.
package main

import (
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"chessmotion/pkg/geometry"
	"chessmotion/pkg/model"
	"chessmotion/pkg/search"
	"chessmotion/pkg/visibility"
)

//go:embed static
var staticFiles embed.FS

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p pointJSON) toPoint() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

type discJSON struct {
	Center pointJSON `json:"center"`
	Radius float64   `json:"radius"`
}

type renderRequest struct {
	Discs []discJSON `json:"discs"`
	Start pointJSON  `json:"start"`
	Goal  pointJSON  `json:"goal"`
}

type renderResponse struct {
	SVG   string  `json:"svg,omitempty"`
	Cost  float64 `json:"cost,omitempty"`
	Error string  `json:"error,omitempty"`
}

func main() {
	port := flag.Int("port", 3000, "HTTP port to serve on")
	flag.Parse()

	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/api/render", handleRender)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("planviz server starting on http://localhost:%d", *port)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		writeRenderError(w, "invalid request body")
		return
	}

	discs := make([]model.Disc, len(req.Discs))
	for i, d := range req.Discs {
		discs[i] = model.Disc{Center: d.Center.toPoint(), Radius: d.Radius}
	}

	g, err := visibility.Build(discs)
	if err != nil {
		writeRenderError(w, err.Error())
		return
	}
	startNode, err := visibility.InsertPoint(g, req.Start.toPoint())
	if err != nil {
		writeRenderError(w, err.Error())
		return
	}
	goalNode, err := visibility.InsertPoint(g, req.Goal.toPoint())
	if err != nil {
		writeRenderError(w, err.Error())
		return
	}

	path, err := search.Run(g, startNode, goalNode)
	if err != nil {
		writeRenderError(w, err.Error())
		return
	}

	resp := renderResponse{
		SVG:  renderSVG(g, path),
		Cost: search.PathCost(g, path),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeRenderError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(renderResponse{Error: msg})
}

// renderSVG draws every disc as a circle and the planned path as a
// connected polyline over the node positions. This is a debug
// visualization, not a faithful arc rendering of hugging edges.
func renderSVG(g *model.Graph, path []model.NodeHandle) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-20 -20 300 300">`)

	for _, h := range g.DiscHandles() {
		d := g.Disc(h)
		if d.IsPoint() {
			continue
		}
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="none" stroke="gray"/>`, d.Center.X, d.Center.Y, d.Radius)
	}

	if len(path) > 0 {
		b.WriteString(`<polyline points="`)
		for _, n := range path {
			p := g.Node(n).Position
			fmt.Fprintf(&b, "%g,%g ", p.X, p.Y)
		}
		b.WriteString(`" fill="none" stroke="blue" stroke-width="0.5"/>`)

		for _, n := range path {
			p := g.Node(n).Position
			fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="0.3" fill="red"/>`, p.X, p.Y)
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}
