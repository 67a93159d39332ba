// Package render draws a programme's prerequisite graph as a PNG. Courses are
// laid out in one column per year and semester, prerequisites as arrows from
// the earlier course to the later one.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sort"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yigit/curricula/internal/app/prerequisites"
)

const (
	boxWidth   = 180.0
	boxHeight  = 48.0
	colGap     = 80.0
	rowGap     = 24.0
	margin     = 40.0
	headerSize = 70.0
	arrowSize  = 9.0
	labelSize  = 12.0
	titleSize  = 20.0
	maxLabel   = 26
)

var (
	colorBackground = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	colorBox        = color.NRGBA{R: 0xe3, G: 0xee, B: 0xfa, A: 0xff}
	colorBoxBorder  = color.NRGBA{R: 0x2f, G: 0x5d, B: 0x8a, A: 0xff}
	colorFlagged    = color.NRGBA{R: 0xfd, G: 0xe2, B: 0xe1, A: 0xff}
	colorEdge       = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorEdgeBad    = color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	colorText       = color.NRGBA{R: 0x1d, G: 0x1d, B: 0x1d, A: 0xff}
)

// Node is one course box.
type Node struct {
	ID       int64
	Label    string
	Year     int
	Semester int
}

// Graph is everything drawn on one image.
type Graph struct {
	Title string
	Nodes []Node
	Edges []prerequisites.Edge
	// Flagged courses have integrity issues and are drawn in red.
	Flagged map[int64]bool
}

var (
	fontsOnce sync.Once
	regular   *truetype.Font
	bold      *truetype.Font
	fontsErr  error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regular, fontsErr = truetype.Parse(goregular.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse regular font: %w", fontsErr)
			return
		}
		bold, fontsErr = truetype.Parse(gobold.TTF)
		if fontsErr != nil {
			fontsErr = fmt.Errorf("failed to parse bold font: %w", fontsErr)
		}
	})
	return fontsErr
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

type slot struct{ year, semester int }

type placed struct {
	node Node
	x, y float64
}

// layout assigns every node a position and returns the canvas size.
func layout(nodes []Node) (map[int64]placed, []slot, int, int) {
	bySlot := make(map[slot][]Node)
	for _, n := range nodes {
		s := slot{n.Year, n.Semester}
		bySlot[s] = append(bySlot[s], n)
	}

	slots := make([]slot, 0, len(bySlot))
	for s := range bySlot {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].year != slots[j].year {
			return slots[i].year < slots[j].year
		}
		return slots[i].semester < slots[j].semester
	})

	positions := make(map[int64]placed, len(nodes))
	tallest := 0
	for col, s := range slots {
		column := bySlot[s]
		sort.Slice(column, func(i, j int) bool {
			if column[i].Label != column[j].Label {
				return column[i].Label < column[j].Label
			}
			return column[i].ID < column[j].ID
		})
		if len(column) > tallest {
			tallest = len(column)
		}
		for row, n := range column {
			positions[n.ID] = placed{
				node: n,
				x:    margin + float64(col)*(boxWidth+colGap),
				y:    margin + headerSize + float64(row)*(boxHeight+rowGap),
			}
		}
	}

	cols := len(slots)
	if cols == 0 {
		cols = 1
	}
	if tallest == 0 {
		tallest = 1
	}
	width := int(2*margin + float64(cols)*boxWidth + float64(cols-1)*colGap)
	height := int(2*margin + headerSize + float64(tallest)*boxHeight + float64(tallest-1)*rowGap)
	return positions, slots, width, height
}

// PNG renders g and returns the encoded image.
func PNG(g Graph) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	positions, slots, width, height := layout(g.Nodes)

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackground)
	dc.Clear()

	dc.SetFontFace(newFace(bold, titleSize))
	dc.SetColor(colorText)
	dc.DrawStringAnchored(g.Title, margin, margin, 0, 0.5)

	dc.SetFontFace(newFace(bold, labelSize))
	for col, s := range slots {
		x := margin + float64(col)*(boxWidth+colGap) + boxWidth/2
		dc.DrawStringAnchored(fmt.Sprintf("Year %d / Sem %d", s.year, s.semester), x, margin+headerSize/2+8, 0.5, 0.5)
	}

	for _, e := range g.Edges {
		from, okFrom := positions[e.DependsOnID]
		to, okTo := positions[e.CourseID]
		if !okFrom || !okTo {
			continue
		}
		c := colorEdge
		if g.Flagged[e.CourseID] && g.Flagged[e.DependsOnID] {
			c = colorEdgeBad
		}
		drawArrow(dc, from, to, c)
	}

	dc.SetFontFace(newFace(regular, labelSize))
	for _, p := range positions {
		fill := colorBox
		if g.Flagged[p.node.ID] {
			fill = colorFlagged
		}
		dc.DrawRoundedRectangle(p.x, p.y, boxWidth, boxHeight, 6)
		dc.SetColor(fill)
		dc.FillPreserve()
		dc.SetColor(colorBoxBorder)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(truncate(p.node.Label, maxLabel), p.x+boxWidth/2, p.y+boxHeight/2, 0.5, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawArrow connects the right side of the prerequisite box to the left side
// of the dependent box. Edges inside one column bend around it.
func drawArrow(dc *gg.Context, from, to placed, c color.Color) {
	x1, y1 := from.x+boxWidth, from.y+boxHeight/2
	x2, y2 := to.x, to.y+boxHeight/2

	dc.SetColor(c)
	dc.SetLineWidth(1.4)
	dc.MoveTo(x1, y1)
	if x2 <= x1 {
		bend := math.Max(x1, x2+boxWidth) + colGap/2
		dc.CubicTo(bend, y1, bend, y2, x2+boxWidth, y2)
		x2 += boxWidth
		dc.Stroke()
		arrowHead(dc, bend, y2, x2, y2)
		return
	}
	midX := (x1 + x2) / 2
	dc.CubicTo(midX, y1, midX, y2, x2, y2)
	dc.Stroke()
	arrowHead(dc, midX, y2, x2, y2)
}

func arrowHead(dc *gg.Context, fromX, fromY, tipX, tipY float64) {
	angle := math.Atan2(tipY-fromY, tipX-fromX)
	dc.MoveTo(tipX, tipY)
	dc.LineTo(tipX-arrowSize*math.Cos(angle-math.Pi/7), tipY-arrowSize*math.Sin(angle-math.Pi/7))
	dc.LineTo(tipX-arrowSize*math.Cos(angle+math.Pi/7), tipY-arrowSize*math.Sin(angle+math.Pi/7))
	dc.ClosePath()
	dc.Fill()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
