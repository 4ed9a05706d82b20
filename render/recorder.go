package render

import "github.com/lixenwraith/eyelaser/vmath"

// OpKind identifies a recorded drawing intent
type OpKind uint8

const (
	OpFill OpKind = iota
	OpEllipse
	OpLine
	OpText
)

// Op is one recorded drawing intent
type Op struct {
	Kind     OpKind
	From     vmath.Vec2 // ellipse center, line start, text position
	To       vmath.Vec2 // line end
	Diameter float64
	Style    Style // Fill carries the color for fill, line and text ops
	Text     string
}

// Recorder is a Canvas that keeps intents instead of drawing them
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

// NewRecorder creates a recorder with the given field size
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Fill(c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Style: Style{Fill: c}})
}

func (r *Recorder) Ellipse(center vmath.Vec2, diameter float64, style Style) {
	r.Ops = append(r.Ops, Op{Kind: OpEllipse, From: center, Diameter: diameter, Style: style})
}

func (r *Recorder) Line(from, to vmath.Vec2, c Color, weight float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, From: from, To: to, Style: Style{Fill: c, Weight: weight}})
}

func (r *Recorder) Text(pos vmath.Vec2, s string, c Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, From: pos, Style: Style{Fill: c}, Text: s})
}

// Count returns how many ops of kind were recorded
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops recorded ops
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
