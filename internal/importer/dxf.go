package importer

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/wallcalc/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// point is a 2D drawing coordinate in drawing units.
type point struct {
	X, Y float64
}

// segment is a line between two points, used for chaining disconnected LINE
// entities into closed outlines.
type segment struct {
	start point
	end   point
}

// WallImportResult holds the wall read from an elevation drawing.
type WallImportResult struct {
	Wall     model.WallSpec
	Warnings []string
}

// ErrNoWallOutline is returned when a drawing contains no usable closed shape.
var ErrNoWallOutline = errors.New("no closed wall outline found in DXF file")

// ImportWallDXF reads a wall elevation from a DXF file. The largest closed
// shape (LWPOLYLINE or chain of connected LINEs) is taken as the wall and its
// bounding box becomes the wall size. unitsPerInch converts drawing units to
// inches; pass 1 for drawings in inches, 25.4 for millimetres.
func ImportWallDXF(path string, unitsPerInch float64) (WallImportResult, error) {
	result := WallImportResult{}
	if !model.IsUsableLength(unitsPerInch) {
		return result, fmt.Errorf("invalid drawing scale %v", unitsPerInch)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		return result, fmt.Errorf("cannot open DXF file: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return result, ErrNoWallOutline
	}

	// Closed polylines are outlines as-is; loose LINEs are collected for chaining
	var outlines [][]point
	var segments []segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			outline := make([]point, len(e.Vertices))
			for i, v := range e.Vertices {
				outline[i] = point{X: v[0], Y: v[1]}
			}
			outlines = append(outlines, outline)

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Dimensions, text and arcs carry no wall geometry
		}
	}

	// Chain loose segments into closed outlines
	outlines = append(outlines, chainSegments(segments, 0.01)...)
	if len(outlines) == 0 {
		return result, ErrNoWallOutline
	}

	// Sort outlines by area (largest first); the largest is the wall
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest as the wall", len(outlines)))
	}

	// Bounding box in drawing units, scaled to inches
	min, max := boundingBox(outlines[0])
	width := (max.X - min.X) / unitsPerInch
	height := (max.Y - min.Y) / unitsPerInch
	if width < 0.01 || height < 0.01 {
		return result, fmt.Errorf("degenerate wall outline (%.2f x %.2f in)", width, height)
	}

	result.Wall = model.WallSpec{WidthInches: width, HeightInches: height}
	return result, nil
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
// Open chains are discarded.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		// Find the first unused segment
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Keep the chain only if it is closed, without the duplicate closing point
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

func boundingBox(o []point) (point, point) {
	min := point{X: math.Inf(1), Y: math.Inf(1)}
	max := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range o {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
