package export

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/eqtree/pkg/theme"
	"github.com/vanderheijden86/eqtree/pkg/tree"
)

// Diagram geometry in pixels.
const (
	boxWidth   = 168
	boxHeight  = 32
	colGap     = 48
	rowGap     = 12
	margin     = 24
	labelCells = 22
)

type placed struct {
	node  *tree.Node
	depth int
	x, y  int // top-left of the box
}

// layout assigns each leaf its own row and centres branches on the span of
// their children, left to right by depth.
func layout(roots []*tree.Node) ([]placed, int, int) {
	var (
		out      []placed
		nextRow  int
		maxDepth int
	)
	var visit func(n *tree.Node, depth int) int
	visit = func(n *tree.Node, depth int) int {
		if depth > maxDepth {
			maxDepth = depth
		}
		idx := len(out)
		out = append(out, placed{node: n, depth: depth, x: margin + depth*(boxWidth+colGap)})

		if n.IsLeaf() {
			out[idx].y = margin + nextRow*(boxHeight+rowGap)
			nextRow++
			return out[idx].y
		}
		first, last := 0, 0
		for i, child := range n.Children {
			y := visit(child, depth+1)
			if i == 0 {
				first = y
			}
			last = y
		}
		out[idx].y = (first + last) / 2
		return out[idx].y
	}
	for _, root := range roots {
		visit(root, 0)
	}

	width := 2*margin + (maxDepth+1)*boxWidth + maxDepth*colGap
	height := 2*margin + nextRow*(boxHeight+rowGap) - rowGap
	if nextRow == 0 {
		width, height = 2*margin+boxWidth, 2*margin+boxHeight
	}
	return out, width, height
}

// SVG draws roots as a left-to-right diagram coloured from p.
func SVG(w io.Writer, roots []*tree.Node, p theme.Palette) error {
	nodes, width, height := layout(roots)

	pos := make(map[*tree.Node]placed, len(nodes))
	for _, pl := range nodes {
		pos[pl.node] = pl
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(width, height)
	canvas.Title("eqt tree")
	canvas.Rect(0, 0, width, height, "fill:"+solid(p.PrimaryDark, "#ffffff"))

	canvas.Gid("edges")
	for _, pl := range nodes {
		for _, child := range pl.node.Children {
			c := pos[child]
			x1, y1 := pl.x+boxWidth, pl.y+boxHeight/2
			x2, y2 := c.x, c.y+boxHeight/2
			mid := x1 + colGap/2
			canvas.Path(fmt.Sprintf("M%d,%d H%d V%d H%d", x1, y1, mid, y2, x2),
				"fill:none;stroke:"+solid(p.CardBorder, "#888888")+";stroke-width:1.5")
		}
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, pl := range nodes {
		fill, text := solid(p.Card, "#f4f4f4"), solid(p.Label, "#222222")
		if !pl.node.IsLeaf() {
			fill, text = solid(p.TertiaryDark, "#e4e4e4"), solid(p.LabelBold, "#000000")
		}
		if pl.depth == 0 {
			fill = solid(p.Primary, "#4466cc")
		}
		canvas.Roundrect(pl.x, pl.y, boxWidth, boxHeight, 6, 6,
			"fill:"+fill+";stroke:"+solid(p.CardBorder, "#888888"))
		canvas.Text(pl.x+10, pl.y+boxHeight/2+5,
			runewidth.Truncate(pl.node.Label, labelCells, "…"),
			"font-family:sans-serif;font-size:13px;fill:"+text)
	}
	canvas.Gend()

	canvas.End()
	return ew.err
}

// solid returns c when it is a plain hex colour, otherwise fallback. Custom
// stylesheets may use values (gradients, rgb()) that make poor SVG fills.
func solid(c, fallback string) string {
	if len(c) > 1 && c[0] == '#' {
		return c
	}
	return fallback
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(b []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(b)
	if err != nil {
		e.err = err
	}
	return n, err
}
