package curl

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a packed 32-bit color in 0xAARRGGBB order, the layout used for
// background colors throughout the renderer.
type Color uint32

// DefaultBackground is the background applied when the surface is created.
const DefaultBackground Color = 0xFF303030

// ARGB packs 8-bit channels into a Color.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Red returns the red channel.
func (c Color) Red() uint8 { return uint8(c >> 16) }

// Green returns the green channel.
func (c Color) Green() uint8 { return uint8(c >> 8) }

// Blue returns the blue channel.
func (c Color) Blue() uint8 { return uint8(c) }

// Normalized returns the channels scaled to [0, 1] in r, g, b, a order,
// the form expected by gles.GL.ClearColor.
func (c Color) Normalized() (r, g, b, a float32) {
	return float32(c.Red()) / 255,
		float32(c.Green()) / 255,
		float32(c.Blue()) / 255,
		float32(c.Alpha()) / 255
}

// RGBA implements color.Color. The packed value is not premultiplied,
// so the channels are premultiplied here as color.Color requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts the color to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red(), G: c.Green(), B: c.Blue(), A: c.Alpha()}
}

// FromColor converts a standard color.Color to a packed Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ARGB(n.A, n.R, n.G, n.B)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RRGGBB", "AARRGGBB", with an optional leading '#'.
// Malformed input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var v uint32
	for i := 0; i < len(hex); i++ {
		d, ok := hexDigit(hex[i])
		if !ok {
			return ARGB(0xFF, 0, 0, 0)
		}
		v = v<<4 | d
	}

	switch len(hex) {
	case 3: // RGB
		r, g, b := (v>>8)&0xF, (v>>4)&0xF, v&0xF
		return ARGB(0xFF, uint8(r*17), uint8(g*17), uint8(b*17))
	case 6: // RRGGBB
		return Color(0xFF000000 | v)
	case 8: // AARRGGBB
		return Color(v)
	default:
		return ARGB(0xFF, 0, 0, 0)
	}
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	default:
		return 0, false
	}
}

// HSL creates an opaque color from HSL values.
// h is hue [0, 360), s is saturation [0, 1], l is lightness [0, 1].
func HSL(h, s, l float32) Color {
	h = math32.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math32.Abs(2*l-1)) * s
	x := c * (1 - math32.Abs(math32.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float32
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return ARGB(0xFF, unit8(r+m), unit8(g+m), unit8(b+m))
}

// unit8 maps [0, 1] to [0, 255] with rounding and clamping.
func unit8(x float32) uint8 {
	return uint8(math32.Round(clamp01(x) * 255))
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
