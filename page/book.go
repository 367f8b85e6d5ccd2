package page

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/curl"
)

// Book keeps page meshes in sync with a curl.Renderer.
//
// The Book is the renderer's observer. Whenever the renderer reports a new
// page bitmap size, and whenever the current page changes, the Book fetches
// the visible pages from its Provider and registers one Mesh per visible
// page in the renderer's page rectangles. In DoublePage mode the current
// page is on the right and the page before it on the left.
//
// All methods are safe for concurrent use with the render goroutine.
type Book struct {
	provider Provider
	renderer *curl.Renderer
	left     *Mesh
	right    *Mesh
	onDone   func()

	// syncMu serializes page placement and guards cache. It is never held
	// while calling Renderer.SetViewMode, which reports back synchronously.
	syncMu sync.Mutex
	cache  map[pageKey]image.Image

	mu     sync.Mutex
	index  int
	width  int
	height int
	err    error
}

type pageKey struct {
	index, width, height int
}

// NewBook creates a book over provider together with the renderer it
// observes.
func NewBook(provider Provider, opts ...Option) (*Book, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b := &Book{
		provider: provider,
		left:     NewMesh(),
		right:    NewMesh(),
		onDone:   o.onDone,
		cache:    make(map[pageKey]image.Image),
	}
	b.index = clampIndex(o.startIndex, maxIndex(o.viewMode, provider.PageCount()))

	ropts := []curl.Option{curl.WithViewMode(o.viewMode)}
	if o.background != nil {
		ropts = append(ropts, curl.WithBackgroundColor(*o.background))
	}
	b.renderer = curl.NewRenderer(b, ropts...)
	return b, nil
}

// Renderer returns the renderer the book observes.
func (b *Book) Renderer() *curl.Renderer {
	return b.renderer
}

// Provider returns the page source.
func (b *Book) Provider() Provider {
	return b.provider
}

// Mesh returns the mesh used for side.
func (b *Book) Mesh(side curl.PageSide) *Mesh {
	switch side {
	case curl.PageLeft:
		return b.left
	case curl.PageRight:
		return b.right
	default:
		return nil
	}
}

// CurrentIndex returns the current page index.
func (b *Book) CurrentIndex() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index
}

// SetCurrentIndex shows page index. In DoublePage mode index may equal the
// page count, which leaves only the last page visible on the left.
func (b *Book) SetCurrentIndex(index int) error {
	last := maxIndex(b.renderer.ViewMode(), b.provider.PageCount())
	if index < 0 || index > last {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrPageOutOfRange, index, last)
	}
	b.mu.Lock()
	b.index = index
	b.mu.Unlock()
	return b.sync()
}

// Next turns to the next page. It returns false at the end of the book.
func (b *Book) Next() bool {
	return b.turn(1)
}

// Prev turns to the previous page. It returns false at the start of the
// book.
func (b *Book) Prev() bool {
	return b.turn(-1)
}

func (b *Book) turn(delta int) bool {
	last := maxIndex(b.renderer.ViewMode(), b.provider.PageCount())
	b.mu.Lock()
	index := b.index + delta
	if index < 0 || index > last {
		b.mu.Unlock()
		return false
	}
	b.index = index
	b.mu.Unlock()

	curl.Logger().Debug("page: turned", "index", index)
	_ = b.sync()
	return true
}

// SetViewMode switches the renderer between one and two visible pages.
// The current index is clamped to the new mode's range.
func (b *Book) SetViewMode(mode curl.ViewMode) {
	if !mode.Valid() {
		return
	}
	last := maxIndex(mode, b.provider.PageCount())
	b.mu.Lock()
	b.index = clampIndex(b.index, last)
	b.mu.Unlock()

	b.renderer.SetViewMode(mode)
}

// HitTest returns the page under the pixel (x, y).
func (b *Book) HitTest(x, y float32) (curl.PageSide, bool) {
	p := b.renderer.PixelToView(x, y)
	for _, side := range []curl.PageSide{curl.PageLeft, curl.PageRight} {
		rect, ok := b.renderer.PageRect(side)
		if ok && !rect.IsEmpty() && rect.Contains(p) {
			return side, true
		}
	}
	return 0, false
}

// Err returns the error of the latest page placement, if any.
func (b *Book) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// OnBitmapSizeChanged implements curl.Observer.
func (b *Book) OnBitmapSizeChanged(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.mu.Unlock()

	curl.Logger().Debug("page: bitmap size changed", "width", width, "height", height)
	_ = b.sync()
}

// OnRenderDone implements curl.Observer.
func (b *Book) OnRenderDone() {
	if b.onDone != nil {
		b.onDone()
	}
}

// sync places the visible pages into the renderer. Nothing is placed until
// the bitmap size is known.
func (b *Book) sync() error {
	b.syncMu.Lock()
	defer b.syncMu.Unlock()

	b.mu.Lock()
	index, width, height := b.index, b.width, b.height
	b.mu.Unlock()
	if width <= 0 || height <= 0 {
		return nil
	}

	keep := make(map[pageKey]image.Image, 2)
	var err error
	if b.renderer.ViewMode() == curl.DoublePage {
		err = b.place(b.left, curl.PageLeft, pageKey{index - 1, width, height}, keep)
	} else {
		b.renderer.RemoveMesh(b.left)
	}
	err = errors.Join(err, b.place(b.right, curl.PageRight, pageKey{index, width, height}, keep))
	b.cache = keep

	b.mu.Lock()
	b.err = err
	b.mu.Unlock()
	if err != nil {
		curl.Logger().Warn("page: placing pages failed", "index", index, "err", err)
	}
	return err
}

// place shows page key on m in the rectangle for side, or unregisters m
// when there is no such page. syncMu must be held.
func (b *Book) place(m *Mesh, side curl.PageSide, key pageKey, keep map[pageKey]image.Image) error {
	rect, _ := b.renderer.PageRect(side)
	if key.index < 0 || key.index >= b.provider.PageCount() || rect.IsEmpty() {
		b.renderer.RemoveMesh(m)
		return nil
	}

	img, ok := b.cache[key]
	if !ok {
		var err error
		img, err = b.provider.Page(key.index, key.width, key.height)
		if err != nil {
			b.renderer.RemoveMesh(m)
			return fmt.Errorf("page: load page %d: %w", key.index, err)
		}
	}
	keep[key] = img

	m.SetRect(rect)
	m.SetTextures(img, nil)
	b.renderer.AddMesh(m)
	return nil
}

// maxIndex returns the largest valid current index for mode.
func maxIndex(mode curl.ViewMode, count int) int {
	if mode == curl.DoublePage {
		return count
	}
	return max(count-1, 0)
}

func clampIndex(index, last int) int {
	return min(max(index, 0), last)
}

var _ curl.Observer = (*Book)(nil)
