package curl

// ViewMode selects how many pages share the view.
type ViewMode int

const (
	// SinglePage shows one page covering the whole view.
	SinglePage ViewMode = iota + 1

	// DoublePage shows two pages side by side, split at x = 0.
	DoublePage
)

// String returns the view mode name.
func (m ViewMode) String() string {
	switch m {
	case SinglePage:
		return "single"
	case DoublePage:
		return "double"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known view mode.
func (m ViewMode) Valid() bool {
	return m == SinglePage || m == DoublePage
}

// ParseViewMode converts "single" or "double" (also "1" or "2") to a
// ViewMode.
func ParseViewMode(s string) (ViewMode, bool) {
	switch s {
	case "single", "one", "1":
		return SinglePage, true
	case "double", "two", "2":
		return DoublePage, true
	default:
		return 0, false
	}
}

// PageSide selects one half of a two-page layout.
type PageSide int

const (
	// PageLeft is the left page. It is empty in SinglePage mode.
	PageLeft PageSide = iota + 1

	// PageRight is the right page, or the only page in SinglePage mode.
	PageRight
)

// String returns the page side name.
func (s PageSide) String() string {
	switch s {
	case PageLeft:
		return "left"
	case PageRight:
		return "right"
	default:
		return "unknown"
	}
}

// pageLayout is the result of partitioning the view rectangle for a mode.
type pageLayout struct {
	left, right Rect

	// bitmapWidth and bitmapHeight are the pixel dimensions page content
	// must be supplied at.
	bitmapWidth, bitmapHeight int
}

// layoutPages partitions view for mode on a width x height pixel surface.
// It returns false for an unknown mode.
func layoutPages(mode ViewMode, view Rect, width, height int) (pageLayout, bool) {
	switch mode {
	case SinglePage:
		return pageLayout{
			right:        view,
			bitmapWidth:  width,
			bitmapHeight: height,
		}, true
	case DoublePage:
		left, right := view, view
		left.Right = 0
		right.Left = 0
		return pageLayout{
			left:  left,
			right: right,
			// Round up so odd widths are not under-allocated.
			bitmapWidth:  (width + 1) / 2,
			bitmapHeight: height,
		}, true
	default:
		return pageLayout{}, false
	}
}

// rect returns the rectangle for side.
func (l pageLayout) rect(side PageSide) (Rect, bool) {
	switch side {
	case PageLeft:
		return l.left, true
	case PageRight:
		return l.right, true
	default:
		return Rect{}, false
	}
}
