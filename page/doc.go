// Package page provides page content for the curl renderer.
//
// A Book is the observer/controller a host pairs with a curl.Renderer. It
// owns one Mesh per visible page, fetches page bitmaps from a Provider at
// the size the renderer reports, and places the meshes in the renderer's
// page rectangles.
//
// Example:
//
//	book, err := page.NewBook(page.NewLabelProvider(12),
//	    page.WithViewMode(curl.DoublePage))
//	if err != nil {
//	    return err
//	}
//	r := book.Renderer()
//	// drive r from the render goroutine, turn pages from anywhere:
//	book.Next()
package page
