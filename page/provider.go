package page

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/go-text/typesetting/di"
	tsfont "github.com/go-text/typesetting/font"
	tslang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/curl"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Provider supplies page bitmaps.
//
// Page is called with the bitmap size the renderer reports and may be
// called from any goroutine. The returned image must not be modified
// afterwards.
type Provider interface {
	PageCount() int
	Page(index, width, height int) (image.Image, error)
}

// LabelProvider generates numbered pages: a solid background with the page
// label centered on it.
type LabelProvider struct {
	// Count is the number of pages.
	Count int

	// Format is the label format; it receives the 1-based page number.
	Format string

	// Language localizes the page number. The zero value means English.
	Language language.Tag

	// Text is the label color.
	Text curl.Color

	// Background returns the background color of page index. Nil uses a
	// hue that rotates from page to page.
	Background func(index int) curl.Color
}

// NewLabelProvider creates a provider of count pages labelled "Page N".
func NewLabelProvider(count int) *LabelProvider {
	return &LabelProvider{
		Count:    count,
		Format:   "Page %d",
		Language: language.English,
		Text:     0xFF000000,
	}
}

// PageCount implements Provider.
func (p *LabelProvider) PageCount() int {
	return p.Count
}

// PageColor returns the background color of page index.
func (p *LabelProvider) PageColor(index int) curl.Color {
	if p.Background != nil {
		return p.Background(index)
	}
	return curl.HSL(float32(index*47), 0.45, 0.8)
}

// Label returns the label text of page index, with the page number
// formatted for Language.
func (p *LabelProvider) Label(index int) string {
	return message.NewPrinter(p.language()).Sprintf(p.Format, index+1)
}

func (p *LabelProvider) language() language.Tag {
	if p.Language == language.Und {
		return language.English
	}
	return p.Language
}

// Page implements Provider.
func (p *LabelProvider) Page(index, width, height int) (image.Image, error) {
	if index < 0 || index >= p.Count {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, index, p.Count)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.PageColor(index).NRGBA()), image.Point{}, draw.Src)

	if err := drawLabel(img, p.Label(index), p.language(), p.Text.NRGBA()); err != nil {
		return nil, fmt.Errorf("page %d label: %w", index, err)
	}
	return img, nil
}

// Label sizes in pixels. Labels are at most maxLabelWidth of the page wide
// and are left out when they would be smaller than minLabelSize.
const (
	labelSizeRatio = 6
	maxLabelWidth  = 0.8
	minLabelSize   = 4
)

// labelFont is the Go Regular face, parsed once for shaping and once for
// outlines. Both parsed fonts are safe for concurrent use.
type labelFont struct {
	face    *tsfont.Font
	outline *sfnt.Font
	shapers sync.Pool
}

var loadLabelFont = sync.OnceValues(func() (*labelFont, error) {
	face, err := tsfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	outline, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label outlines: %w", err)
	}
	return &labelFont{
		face:    face.Font,
		outline: outline,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
})

// shape returns the positioned glyphs of s at size pixels per em.
func (f *labelFont) shape(s string, lang language.Tag, size float64) []shaping.Glyph {
	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      tsfont.NewFace(f.face),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  tslang.NewLanguage(lang.String()),
	}
	hb := f.shapers.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	f.shapers.Put(hb)
	return out.Glyphs
}

func detectScript(runes []rune) tslang.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return tslang.LookupScript(r)
	}
	return tslang.Latin
}

func advance(glyphs []shaping.Glyph) float64 {
	var w fixed.Int26_6
	for _, g := range glyphs {
		w += g.Advance
	}
	return float64(w) / 64
}

// drawLabel shapes s and fills its outlines centered on img.
func drawLabel(img *image.RGBA, s string, lang language.Tag, c color.Color) error {
	if s == "" {
		return nil
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	size := float64(height) / labelSizeRatio
	if size < minLabelSize {
		return nil
	}

	f, err := loadLabelFont()
	if err != nil {
		return err
	}
	glyphs := f.shape(s, lang, size)
	if w := advance(glyphs); w > maxLabelWidth*float64(width) {
		size *= maxLabelWidth * float64(width) / w
		if size < minLabelSize {
			return nil
		}
		glyphs = f.shape(s, lang, size)
	}
	textWidth := advance(glyphs)
	if textWidth <= 0 {
		return nil
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(size * 64)
	m, err := f.outline.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return err
	}
	x := (float64(width) - textWidth) / 2
	baseline := (float64(height) + float64(m.Ascent-m.Descent)/64) / 2

	z := vector.NewRasterizer(width, height)
	for _, g := range glyphs {
		segs, err := f.outline.LoadGlyph(&buf, sfnt.GlyphIndex(g.GlyphID), ppem, nil)
		if err != nil {
			return fmt.Errorf("glyph %d: %w", g.GlyphID, err)
		}
		ox := float32(x + float64(g.XOffset)/64)
		oy := float32(baseline - float64(g.YOffset)/64)
		addOutline(z, segs, ox, oy)
		x += float64(g.Advance) / 64
	}
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	return nil
}

// addOutline appends glyph segments, which are y-down and relative to the
// pen position, to z at (ox, oy).
func addOutline(z *vector.Rasterizer, segs sfnt.Segments, ox, oy float32) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		return ox + float32(p.X)/64, oy + float32(p.Y)/64
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(seg.Args[0])
			cx, cy := pt(seg.Args[1])
			dx, dy := pt(seg.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

var _ Provider = (*LabelProvider)(nil)
