package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/voxelstore/internal/draw"
)

// parsePos parses "x,y,z".
func parsePos(s string) (draw.Pos, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return draw.Pos{}, fmt.Errorf("position %q: want x,y,z", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return draw.Pos{}, fmt.Errorf("position %q: %w", s, err)
		}
		v[i] = n
	}
	return draw.Pos{X: v[0], Y: v[1], Z: v[2]}, nil
}

// parsePoints parses "x,y,z;x,y,z;...". Empty input yields no points.
func parsePoints(s string) ([]draw.Pos, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pts []draw.Pos
	for _, part := range strings.Split(s, ";") {
		p, err := parsePos(part)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}
