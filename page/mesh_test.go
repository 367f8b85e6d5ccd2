package page

import (
	"image"
	"testing"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
	"github.com/gogpu/curl/recording"
)

func drawnVertices(t *testing.T, rec *recording.Recorder) (image.Image, []gles.Vertex) {
	t.Helper()
	for _, c := range rec.Commands() {
		if d, ok := c.(recording.DrawTrianglesCommand); ok {
			return d.Texture, d.Vertices
		}
	}
	t.Fatal("no DrawTriangles command recorded")
	return nil, nil
}

func TestMeshDrawEmpty(t *testing.T) {
	tests := []struct {
		name string
		mesh func() *Mesh
	}{
		{"no rect", func() *Mesh {
			m := NewMesh()
			m.SetTextures(image.NewRGBA(image.Rect(0, 0, 2, 2)), nil)
			return m
		}},
		{"no texture", func() *Mesh {
			m := NewMesh()
			m.SetRect(curl.Rect{Left: -1, Top: 1, Right: 1, Bottom: -1})
			return m
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := recording.NewRecorder()
			if err := tt.mesh().Draw(rec); err != nil {
				t.Fatalf("Draw() error = %v", err)
			}
			if n := len(rec.Commands()); n != 0 {
				t.Errorf("recorded %d commands, want 0", n)
			}
		})
	}
}

func TestMeshDraw(t *testing.T) {
	front := image.NewRGBA(image.Rect(0, 0, 2, 2))
	m := NewMesh()
	m.SetRect(curl.Rect{Left: 0, Top: 1, Right: 2, Bottom: -1})
	m.SetTextures(front, nil)
	m.SetTint(0x80FFFFFF)

	rec := recording.NewRecorder()
	if err := m.Draw(rec); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	want := []recording.CommandType{
		recording.CmdEnable, recording.CmdEnable, recording.CmdDrawTriangles,
		recording.CmdDisable, recording.CmdDisable,
	}
	got := rec.FinishRecording().Types()
	if len(got) != len(want) {
		t.Fatalf("commands = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("commands = %v, want %v", got, want)
		}
	}

	rec2 := recording.NewRecorder()
	_ = m.Draw(rec2)
	tex, verts := drawnVertices(t, rec2)
	if tex != image.Image(front) {
		t.Error("front texture not drawn")
	}
	if len(verts) != 6 {
		t.Fatalf("len(vertices) = %d, want 6", len(verts))
	}
	tl := verts[0]
	if tl.X != 0 || tl.Y != 1 || tl.U != 0 || tl.V != 0 {
		t.Errorf("top-left vertex = %+v", tl)
	}
	br := verts[5]
	if br.X != 2 || br.Y != -1 || br.U != 1 || br.V != 1 {
		t.Errorf("bottom-right vertex = %+v", br)
	}
	if tl.R != 1 || tl.A != float32(0x80)/255 {
		t.Errorf("tint = (%v, %v), want (1, %v)", tl.R, tl.A, float32(0x80)/255)
	}
}

func TestMeshFlipped(t *testing.T) {
	front := image.NewRGBA(image.Rect(0, 0, 2, 2))
	back := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rect := curl.Rect{Left: -1, Top: 1, Right: 1, Bottom: -1}

	t.Run("back texture", func(t *testing.T) {
		m := NewMesh()
		m.SetRect(rect)
		m.SetTextures(front, back)
		m.SetFlipped(true)
		rec := recording.NewRecorder()
		_ = m.Draw(rec)
		tex, verts := drawnVertices(t, rec)
		if tex != image.Image(back) {
			t.Error("back texture not drawn")
		}
		if verts[0].U != 0 {
			t.Errorf("back texture mirrored, u = %v", verts[0].U)
		}
	})

	t.Run("mirrored front", func(t *testing.T) {
		m := NewMesh()
		m.SetRect(rect)
		m.SetTextures(front, nil)
		m.SetFlipped(true)
		if !m.Flipped() {
			t.Fatal("Flipped() = false")
		}
		rec := recording.NewRecorder()
		_ = m.Draw(rec)
		tex, verts := drawnVertices(t, rec)
		if tex != image.Image(front) {
			t.Error("front texture not drawn")
		}
		if verts[0].U != 1 || verts[5].U != 0 {
			t.Errorf("u = %v..%v, want 1..0", verts[0].U, verts[5].U)
		}
	})
}
