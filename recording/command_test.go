package recording

import "testing"

func TestCommandTypeString(t *testing.T) {
	tests := []struct {
		typ  CommandType
		want string
	}{
		{CmdClearColor, "ClearColor"},
		{CmdViewport, "Viewport"},
		{CmdOrtho2D, "Ortho2D"},
		{CmdClear, "Clear"},
		{CmdDrawTriangles, "DrawTriangles"},
		{CommandType(200), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandTypes(t *testing.T) {
	commands := []struct {
		cmd  Command
		want CommandType
	}{
		{ClearColorCommand{}, CmdClearColor},
		{ViewportCommand{}, CmdViewport},
		{MatrixModeCommand{}, CmdMatrixMode},
		{ShadeModelCommand{}, CmdShadeModel},
		{HintCommand{}, CmdHint},
		{EnableCommand{}, CmdEnable},
		{DisableCommand{}, CmdDisable},
		{LoadIdentityCommand{}, CmdLoadIdentity},
		{LoadMatrixCommand{}, CmdLoadMatrix},
		{MultMatrixCommand{}, CmdMultMatrix},
		{Ortho2DCommand{}, CmdOrtho2D},
		{PushMatrixCommand{}, CmdPushMatrix},
		{PopMatrixCommand{}, CmdPopMatrix},
		{ClearCommand{}, CmdClear},
		{DrawTrianglesCommand{}, CmdDrawTriangles},
	}

	for _, c := range commands {
		if got := c.cmd.Type(); got != c.want {
			t.Errorf("%T.Type() = %s, want %s", c.cmd, got, c.want)
		}
	}
}
