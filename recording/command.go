package recording

import (
	"image"

	"github.com/gogpu/curl/gles"
)

// CommandType identifies the type of a command.
// Each command type corresponds to one gles.GL method.
type CommandType uint8

const (
	// State commands
	CmdClearColor CommandType = iota // Set clear color
	CmdViewport                      // Set device viewport
	CmdMatrixMode                    // Select matrix stack
	CmdShadeModel                    // Select shading
	CmdHint                          // Record quality hint
	CmdEnable                        // Enable capability
	CmdDisable                       // Disable capability

	// Matrix commands
	CmdLoadIdentity // Reset current matrix
	CmdLoadMatrix   // Replace current matrix
	CmdMultMatrix   // Multiply current matrix
	CmdOrtho2D      // Multiply by orthographic projection
	CmdPushMatrix   // Duplicate current matrix
	CmdPopMatrix    // Discard current matrix

	// Drawing commands
	CmdClear         // Clear buffers
	CmdDrawTriangles // Draw textured triangles
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdClearColor:    "ClearColor",
	CmdViewport:      "Viewport",
	CmdMatrixMode:    "MatrixMode",
	CmdShadeModel:    "ShadeModel",
	CmdHint:          "Hint",
	CmdEnable:        "Enable",
	CmdDisable:       "Disable",
	CmdLoadIdentity:  "LoadIdentity",
	CmdLoadMatrix:    "LoadMatrix",
	CmdMultMatrix:    "MultMatrix",
	CmdOrtho2D:       "Ortho2D",
	CmdPushMatrix:    "PushMatrix",
	CmdPopMatrix:     "PopMatrix",
	CmdClear:         "Clear",
	CmdDrawTriangles: "DrawTriangles",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// --------------------------------------------------------------------------
// State Commands
// --------------------------------------------------------------------------

// ClearColorCommand sets the color used by Clear.
type ClearColorCommand struct {
	R, G, B, A float32
}

// Type implements Command.
func (ClearColorCommand) Type() CommandType { return CmdClearColor }

// ViewportCommand sets the device viewport.
type ViewportCommand struct {
	X, Y, Width, Height int
}

// Type implements Command.
func (ViewportCommand) Type() CommandType { return CmdViewport }

// MatrixModeCommand selects the active matrix stack.
type MatrixModeCommand struct {
	Mode gles.MatrixMode
}

// Type implements Command.
func (MatrixModeCommand) Type() CommandType { return CmdMatrixMode }

// ShadeModelCommand selects flat or smooth shading.
type ShadeModelCommand struct {
	Model gles.ShadeModel
}

// Type implements Command.
func (ShadeModelCommand) Type() CommandType { return CmdShadeModel }

// HintCommand records a quality hint.
type HintCommand struct {
	Target gles.HintTarget
	Mode   gles.HintMode
}

// Type implements Command.
func (HintCommand) Type() CommandType { return CmdHint }

// EnableCommand turns a capability on.
type EnableCommand struct {
	Capability gles.Capability
}

// Type implements Command.
func (EnableCommand) Type() CommandType { return CmdEnable }

// DisableCommand turns a capability off.
type DisableCommand struct {
	Capability gles.Capability
}

// Type implements Command.
func (DisableCommand) Type() CommandType { return CmdDisable }

// --------------------------------------------------------------------------
// Matrix Commands
// --------------------------------------------------------------------------

// LoadIdentityCommand resets the current matrix.
type LoadIdentityCommand struct{}

// Type implements Command.
func (LoadIdentityCommand) Type() CommandType { return CmdLoadIdentity }

// LoadMatrixCommand replaces the current matrix.
type LoadMatrixCommand struct {
	Matrix gles.Matrix
}

// Type implements Command.
func (LoadMatrixCommand) Type() CommandType { return CmdLoadMatrix }

// MultMatrixCommand multiplies the current matrix.
type MultMatrixCommand struct {
	Matrix gles.Matrix
}

// Type implements Command.
func (MultMatrixCommand) Type() CommandType { return CmdMultMatrix }

// Ortho2DCommand multiplies the current matrix by an orthographic projection.
type Ortho2DCommand struct {
	Left, Right, Bottom, Top float32
}

// Type implements Command.
func (Ortho2DCommand) Type() CommandType { return CmdOrtho2D }

// PushMatrixCommand duplicates the current matrix.
type PushMatrixCommand struct{}

// Type implements Command.
func (PushMatrixCommand) Type() CommandType { return CmdPushMatrix }

// PopMatrixCommand discards the current matrix.
type PopMatrixCommand struct{}

// Type implements Command.
func (PopMatrixCommand) Type() CommandType { return CmdPopMatrix }

// --------------------------------------------------------------------------
// Drawing Commands
// --------------------------------------------------------------------------

// ClearCommand clears the buffers selected by Mask.
type ClearCommand struct {
	Mask gles.ClearMask
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// DrawTrianglesCommand draws textured triangles.
// Vertices is a private copy; Texture is shared with the caller.
type DrawTrianglesCommand struct {
	Texture  image.Image
	Vertices []gles.Vertex
}

// Type implements Command.
func (DrawTrianglesCommand) Type() CommandType { return CmdDrawTriangles }
