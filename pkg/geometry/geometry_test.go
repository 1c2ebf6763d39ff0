package geometry

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"3-4-5 triangle", Point{0, 0}, Point{3, 4}, 5},
		{"horizontal", Point{0, 0}, Point{10, 0}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dist(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Dist = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestV2VAngle(t *testing.T) {
	tests := []struct {
		name       string
		from, to   Point
		wantRadian float64
	}{
		{"east", Point{0, 0}, Point{1, 0}, 0},
		{"north", Point{0, 0}, Point{0, 1}, math.Pi / 2},
		{"west", Point{0, 0}, Point{-1, 0}, math.Pi},
		{"south", Point{0, 0}, Point{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := V2VAngle(tt.from, tt.to)
			if math.Abs(got-tt.wantRadian) > 1e-9 {
				t.Errorf("V2VAngle = %f, want %f", got, tt.wantRadian)
			}
		})
	}
}

func TestPolarOffset(t *testing.T) {
	origin := Point{5, 5}
	got := PolarOffset(origin, 1, 0)
	want := Point{6, 5}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("PolarOffset = %+v, want %+v", got, want)
	}
}

func TestNormalizeAngle0to2Pi(t *testing.T) {
	tests := []struct {
		name  string
		theta float64
		want  float64
	}{
		{"already in range", math.Pi, math.Pi},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"over 2pi", 2*math.Pi + 0.5, 0.5},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngle0to2Pi(tt.theta)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NormalizeAngle0to2Pi(%f) = %f, want %f", tt.theta, got, tt.want)
			}
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("NormalizeAngle0to2Pi(%f) = %f, out of [0, 2pi)", tt.theta, got)
			}
		})
	}
}

func TestSegmentCircleIntersects(t *testing.T) {
	tests := []struct {
		name   string
		seg    Segment
		center Point
		r      float64
		want   bool
	}{
		{
			name:   "crosses through center",
			seg:    Segment{Point{0, 0}, Point{10, 0}},
			center: Point{5, 0},
			r:      1,
			want:   true,
		},
		{
			name:   "tangent touch is not an intersection",
			seg:    Segment{Point{0, 0}, Point{10, 0}},
			center: Point{5, 1},
			r:      1,
			want:   false,
		},
		{
			name:   "clear miss",
			seg:    Segment{Point{0, 0}, Point{10, 0}},
			center: Point{5, 5},
			r:      1,
			want:   false,
		},
		{
			name:   "center projects before segment start, endpoint far enough",
			seg:    Segment{Point{5, 0}, Point{10, 0}},
			center: Point{0, 0},
			r:      1,
			want:   false,
		},
		{
			name:   "center projects before segment start, within radius of start endpoint",
			seg:    Segment{Point{5, 0}, Point{10, 0}},
			center: Point{4.5, 0},
			r:      1,
			want:   true,
		},
		{
			name:   "center projects after segment end, within radius of end endpoint",
			seg:    Segment{Point{0, 0}, Point{5, 0}},
			center: Point{5.5, 0},
			r:      1,
			want:   true,
		},
		{
			name:   "degenerate segment inside circle",
			seg:    Segment{Point{0, 0}, Point{0, 0}},
			center: Point{0.1, 0},
			r:      1,
			want:   true,
		},
		{
			name:   "degenerate segment outside circle",
			seg:    Segment{Point{10, 10}, Point{10, 10}},
			center: Point{0, 0},
			r:      1,
			want:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentCircleIntersects(tt.seg, tt.center, tt.r)
			if got != tt.want {
				t.Errorf("SegmentCircleIntersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{0.5, 0.5},
		{1.0000001, 1},
		{-1.0000001, -1},
		{-0.999, -0.999},
	}
	for _, tt := range tests {
		if got := ClampUnit(tt.x); got != tt.want {
			t.Errorf("ClampUnit(%f) = %f, want %f", tt.x, got, tt.want)
		}
	}
}

func BenchmarkSegmentCircleIntersects(b *testing.B) {
	seg := Segment{Point{0, 0}, Point{10, 0}}
	center := Point{5, 1}
	for b.Loop() {
		SegmentCircleIntersects(seg, center, 1)
	}
}
