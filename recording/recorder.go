package recording

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/gogpu/curl/gles"
)

// Recorder captures gles.GL calls as commands.
// It implements gles.GL but draws nothing. Use FinishRecording to obtain
// an immutable Recording that can be inspected or replayed to another GL.
//
// Example:
//
//	rec := recording.NewRecorder()
//	renderer.OnDrawFrame(rec)
//	r := rec.FinishRecording()
//	r.Playback(softwareGL)
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		commands: make([]Command, 0, 64),
	}
}

// FinishRecording returns an immutable Recording containing all recorded
// commands and resets the Recorder, so the same Recorder can capture the
// next frame.
func (r *Recorder) FinishRecording() *Recording {
	rec := &Recording{commands: r.commands}
	r.commands = make([]Command, 0, cap(rec.commands))
	return rec
}

// Commands returns the commands recorded so far.
// The returned slice must not be modified.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	return countType(r.commands, t)
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// ClearColor implements gles.GL.
func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record(ClearColorCommand{R: red, G: green, B: blue, A: alpha})
}

// Clear implements gles.GL.
func (r *Recorder) Clear(mask gles.ClearMask) {
	r.record(ClearCommand{Mask: mask})
}

// Viewport implements gles.GL.
func (r *Recorder) Viewport(x, y, width, height int) {
	r.record(ViewportCommand{X: x, Y: y, Width: width, Height: height})
}

// MatrixMode implements gles.GL.
func (r *Recorder) MatrixMode(mode gles.MatrixMode) {
	r.record(MatrixModeCommand{Mode: mode})
}

// LoadIdentity implements gles.GL.
func (r *Recorder) LoadIdentity() {
	r.record(LoadIdentityCommand{})
}

// LoadMatrix implements gles.GL.
func (r *Recorder) LoadMatrix(m gles.Matrix) {
	r.record(LoadMatrixCommand{Matrix: m})
}

// MultMatrix implements gles.GL.
func (r *Recorder) MultMatrix(m gles.Matrix) {
	r.record(MultMatrixCommand{Matrix: m})
}

// Ortho2D implements gles.GL.
func (r *Recorder) Ortho2D(left, right, bottom, top float32) {
	r.record(Ortho2DCommand{Left: left, Right: right, Bottom: bottom, Top: top})
}

// PushMatrix implements gles.GL.
func (r *Recorder) PushMatrix() {
	r.record(PushMatrixCommand{})
}

// PopMatrix implements gles.GL.
func (r *Recorder) PopMatrix() {
	r.record(PopMatrixCommand{})
}

// ShadeModel implements gles.GL.
func (r *Recorder) ShadeModel(model gles.ShadeModel) {
	r.record(ShadeModelCommand{Model: model})
}

// Hint implements gles.GL.
func (r *Recorder) Hint(target gles.HintTarget, mode gles.HintMode) {
	r.record(HintCommand{Target: target, Mode: mode})
}

// Enable implements gles.GL.
func (r *Recorder) Enable(c gles.Capability) {
	r.record(EnableCommand{Capability: c})
}

// Disable implements gles.GL.
func (r *Recorder) Disable(c gles.Capability) {
	r.record(DisableCommand{Capability: c})
}

// DrawTriangles implements gles.GL.
func (r *Recorder) DrawTriangles(tex image.Image, vertices []gles.Vertex) {
	v := make([]gles.Vertex, len(vertices))
	copy(v, vertices)
	r.record(DrawTrianglesCommand{Texture: tex, Vertices: v})
}

// Recording is an immutable list of recorded GL commands.
type Recording struct {
	commands []Command
}

// Commands returns the recorded commands.
// The returned slice must not be modified.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	return countType(r.commands, t)
}

// Types returns the command types in recording order.
func (r *Recording) Types() []CommandType {
	types := make([]CommandType, len(r.commands))
	for i, c := range r.commands {
		types[i] = c.Type()
	}
	return types
}

// Playback replays the recording to gl.
func (r *Recording) Playback(gl gles.GL) error {
	if gl == nil {
		return ErrNilTarget
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case ClearColorCommand:
			gl.ClearColor(c.R, c.G, c.B, c.A)
		case ClearCommand:
			gl.Clear(c.Mask)
		case ViewportCommand:
			gl.Viewport(c.X, c.Y, c.Width, c.Height)
		case MatrixModeCommand:
			gl.MatrixMode(c.Mode)
		case LoadIdentityCommand:
			gl.LoadIdentity()
		case LoadMatrixCommand:
			gl.LoadMatrix(c.Matrix)
		case MultMatrixCommand:
			gl.MultMatrix(c.Matrix)
		case Ortho2DCommand:
			gl.Ortho2D(c.Left, c.Right, c.Bottom, c.Top)
		case PushMatrixCommand:
			gl.PushMatrix()
		case PopMatrixCommand:
			gl.PopMatrix()
		case ShadeModelCommand:
			gl.ShadeModel(c.Model)
		case HintCommand:
			gl.Hint(c.Target, c.Mode)
		case EnableCommand:
			gl.Enable(c.Capability)
		case DisableCommand:
			gl.Disable(c.Capability)
		case DrawTrianglesCommand:
			gl.DrawTriangles(c.Texture, c.Vertices)
		default:
			return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
		}
	}

	return nil
}

// WriteTo writes a one-line-per-command trace of the recording to w.
func (r *Recording) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for i, cmd := range r.commands {
		fmt.Fprintf(&sb, "%4d %s", i, cmd.Type())
		switch c := cmd.(type) {
		case ClearColorCommand:
			fmt.Fprintf(&sb, " r=%.3f g=%.3f b=%.3f a=%.3f", c.R, c.G, c.B, c.A)
		case ViewportCommand:
			fmt.Fprintf(&sb, " %d,%d %dx%d", c.X, c.Y, c.Width, c.Height)
		case MatrixModeCommand:
			fmt.Fprintf(&sb, " %s", c.Mode)
		case Ortho2DCommand:
			fmt.Fprintf(&sb, " l=%g r=%g b=%g t=%g", c.Left, c.Right, c.Bottom, c.Top)
		case DrawTrianglesCommand:
			fmt.Fprintf(&sb, " triangles=%d textured=%t", len(c.Vertices)/3, c.Texture != nil)
		}
		sb.WriteByte('\n')
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

func countType(commands []Command, t CommandType) int {
	n := 0
	for _, c := range commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Ensure Recorder implements gles.GL.
var _ gles.GL = (*Recorder)(nil)
