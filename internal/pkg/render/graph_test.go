package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/yigit/curricula/internal/app/prerequisites"
)

func TestPNGLayout(t *testing.T) {
	g := Graph{
		Title: "Computer Science",
		Nodes: []Node{
			{ID: 1, Label: "Programming I", Year: 1, Semester: 1},
			{ID: 2, Label: "Programming II", Year: 1, Semester: 2},
			{ID: 3, Label: "Algorithms", Year: 2, Semester: 1},
			{ID: 4, Label: "Discrete Mathematics", Year: 1, Semester: 1},
		},
		Edges: []prerequisites.Edge{
			{CourseID: 2, DependsOnID: 1},
			{CourseID: 3, DependsOnID: 2},
			{CourseID: 3, DependsOnID: 4},
			{CourseID: 3, DependsOnID: 99},
		},
		Flagged: map[int64]bool{3: true},
	}

	raw, err := PNG(g)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Three columns, two rows.
	wantW := int(2*margin + 3*boxWidth + 2*colGap)
	wantH := int(2*margin + headerSize + 2*boxHeight + rowGap)
	if b := img.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Fatalf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}
}

func TestPNGEmptyProgramme(t *testing.T) {
	raw, err := PNG(Graph{Title: "Empty"})
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Short", 10); got != "Short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("Введение в программирование", 8); got != "Введени…" {
		t.Fatalf("got %q", got)
	}
}
