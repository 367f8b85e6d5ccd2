package curl

import "testing"

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.viewMode != SinglePage {
		t.Errorf("viewMode = %v, want single", o.viewMode)
	}
	if o.background != 0xFF303030 {
		t.Errorf("background = %#08x, want 0xff303030", uint32(o.background))
	}
}

func TestWithViewMode(t *testing.T) {
	r := NewRenderer(nil, WithViewMode(DoublePage))
	if r.ViewMode() != DoublePage {
		t.Errorf("ViewMode() = %v, want double", r.ViewMode())
	}

	r = NewRenderer(nil, WithViewMode(ViewMode(9)))
	if r.ViewMode() != SinglePage {
		t.Errorf("invalid option changed mode to %v", r.ViewMode())
	}
}

func TestWithBackgroundColor(t *testing.T) {
	r := NewRenderer(nil, WithBackgroundColor(0xFF112233))
	if r.defaultBackground != 0xFF112233 {
		t.Errorf("defaultBackground = %#08x", uint32(r.defaultBackground))
	}

	// Later options win.
	r = NewRenderer(nil, WithBackgroundColor(1), WithBackgroundColor(2))
	if r.defaultBackground != 2 {
		t.Errorf("defaultBackground = %d, want 2", r.defaultBackground)
	}
}
