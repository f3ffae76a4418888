package viz

import (
	"pinchlab/internal/project"
	"pinchlab/internal/vecmath"
	"pinchlab/internal/world"
)

// Renderer maps world coordinates onto the canvas pixel grid.
type Renderer struct {
	canvas *Canvas
	sx, sy float64
}

func NewRenderer(cols, rows int, w *world.World) *Renderer {
	return &Renderer{
		canvas: NewCanvas(cols, rows),
		sx:     float64(cols*2) / w.Width,
		sy:     float64(rows*4) / w.Height,
	}
}

func (r *Renderer) px(x, y float64) (int, int) {
	return int(x * r.sx), int(y * r.sy)
}

// Draw renders one frame: floor, soft bodies, rigid wireframes, spring
// tethers and the hand cursor.
func (r *Renderer) Draw(w *world.World, hand vecmath.Vec3) string {
	r.canvas.Clear()

	fx0, fy := r.px(0, w.Height-w.Cfg.Margin)
	fx1, _ := r.px(w.Width, 0)
	r.canvas.Line(fx0, fy, fx1, fy)

	for _, o := range w.Soft {
		for _, st := range o.Sticks {
			if !st.Visible {
				continue
			}
			a := o.Points[st.A].Pos
			b := o.Points[st.B].Pos
			x0, y0 := r.px(a.X, a.Y)
			x1, y1 := r.px(b.X, b.Y)
			r.canvas.Line(x0, y0, x1, y1)
		}
	}

	for _, b := range w.Bodies {
		size := b.Scale.Scale(w.Cfg.BaseSize)
		for _, face := range b.Faces {
			n := len(face.Loop)
			for i := 0; i < n; i++ {
				va := project.WorldVertex(b.Verts[face.Loop[i]], b.Orient, size, b.Pos)
				vb := project.WorldVertex(b.Verts[face.Loop[(i+1)%n]], b.Orient, size, b.Pos)
				ax, ay, _, aok := w.Camera.Project(va)
				bx, by, _, bok := w.Camera.Project(vb)
				if !aok || !bok {
					continue
				}
				x0, y0 := r.px(ax, ay)
				x1, y1 := r.px(bx, by)
				r.canvas.Line(x0, y0, x1, y1)
			}
		}
	}

	for _, s := range w.Attachments() {
		if s.Object >= len(w.Soft) || s.Point >= len(w.Soft[s.Object].Points) {
			continue
		}
		p := w.Soft[s.Object].Points[s.Point].Pos
		x0, y0 := r.px(p.X, p.Y)
		x1, y1 := r.px(s.Anchor.X, s.Anchor.Y)
		r.canvas.Line(x0, y0, x1, y1)
	}

	hx, hy := r.px(hand.X, hand.Y)
	r.canvas.Dot(hx, hy, 2)

	return r.canvas.String()
}
