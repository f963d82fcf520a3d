package ggtarget

import "github.com/phanxgames/rendernode"

type point struct {
	x, y float64
}

// clipPolygon clips the convex polygon in against r, one edge at a time
// (Sutherland-Hodgman). It returns the clipped polygon and the buffer that
// is free for reuse; both alias the two input slices.
func clipPolygon(in, buf []point, r rendernode.Rect) ([]point, []point) {
	edges := [4]struct {
		inside func(p point) bool
		cross  func(a, b point) point
	}{
		{
			func(p point) bool { return p.x >= r.X },
			func(a, b point) point { return crossX(a, b, r.X) },
		},
		{
			func(p point) bool { return p.x <= r.Right() },
			func(a, b point) point { return crossX(a, b, r.Right()) },
		},
		{
			func(p point) bool { return p.y >= r.Y },
			func(a, b point) point { return crossY(a, b, r.Y) },
		},
		{
			func(p point) bool { return p.y <= r.Bottom() },
			func(a, b point) point { return crossY(a, b, r.Bottom()) },
		},
	}
	for _, e := range edges {
		out := buf[:0]
		for i, cur := range in {
			prev := in[(i+len(in)-1)%len(in)]
			curIn, prevIn := e.inside(cur), e.inside(prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, e.cross(prev, cur), cur)
			case prevIn:
				out = append(out, e.cross(prev, cur))
			}
		}
		in, buf = out, in
		if len(in) == 0 {
			break
		}
	}
	return in, buf
}

func crossX(a, b point, x float64) point {
	t := (x - a.x) / (b.x - a.x)
	return point{x, a.y + t*(b.y-a.y)}
}

func crossY(a, b point, y float64) point {
	t := (y - a.y) / (b.y - a.y)
	return point{a.x + t*(b.x-a.x), y}
}
