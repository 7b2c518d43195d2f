// Package objfile reads just enough of a Wavefront OBJ file to support
// auto-fit normalization: per-group vertex bounds in the file's own
// (Skewer, Y-up) coordinates. Full geometry import stays with the host.
package objfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Group is one object/group within an OBJ file that contains geometry.
type Group struct {
	Name     string
	Min, Max [3]float64
	Verts    int
}

// Corners returns the eight bounding-box corners of the group.
func (g Group) Corners() [8][3]float64 {
	var out [8][3]float64
	for i := 0; i < 8; i++ {
		c := [3]float64{g.Min[0], g.Min[1], g.Min[2]}
		if i&1 != 0 {
			c[0] = g.Max[0]
		}
		if i&2 != 0 {
			c[1] = g.Max[1]
		}
		if i&4 != 0 {
			c[2] = g.Max[2]
		}
		out[i] = c
	}
	return out
}

// ReadBounds scans an OBJ file and returns the groups that contain at least
// one vertex, in file order. Vertices before any o/g statement fall into a
// group named "default". Lines that are not v/o/g records are ignored.
func ReadBounds(path string) ([]Group, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("objfile: open %s: %w", path, err)
	}
	defer f.Close()

	var groups []Group
	var cur *Group

	ensure := func(name string) *Group {
		groups = append(groups, Group{Name: name})
		return &groups[len(groups)-1]
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "o", "g":
			name := "default"
			if len(fields) > 1 {
				name = fields[1]
			}
			cur = ensure(name)
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("objfile: %s:%d: short vertex line", path, lineNo)
			}
			var v [3]float64
			for i := 0; i < 3; i++ {
				v[i], err = strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("objfile: %s:%d: bad vertex: %w", path, lineNo, err)
				}
			}
			if cur == nil {
				cur = ensure("default")
			}
			addVertex(cur, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("objfile: read %s: %w", path, err)
	}

	// Drop groups declared without geometry.
	out := groups[:0]
	for _, g := range groups {
		if g.Verts > 0 {
			out = append(out, g)
		}
	}
	return out, nil
}

func addVertex(g *Group, v [3]float64) {
	if g.Verts == 0 {
		g.Min, g.Max = v, v
	} else {
		for i := 0; i < 3; i++ {
			if v[i] < g.Min[i] {
				g.Min[i] = v[i]
			}
			if v[i] > g.Max[i] {
				g.Max[i] = v[i]
			}
		}
	}
	g.Verts++
}
