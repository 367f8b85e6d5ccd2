package curl

import "github.com/gogpu/curl/gles"

// Mesh is an independently drawable scene element, typically a page.
//
// The renderer only references meshes; it never copies or releases them.
// Draw is called on the render goroutine with the modelview matrix reset
// to identity and the projection set to the view rectangle, so a mesh
// emits view-space vertices directly. A mesh that changes matrix state
// must restore it before returning.
//
// Mesh values are compared with ==, so implementations should be pointer
// types. The renderer ignores meshes whose dynamic type is not comparable,
// such as a struct value holding a slice, and logs a warning.
type Mesh interface {
	Draw(gl gles.GL) error
}

// MeshFunc adapts a function to the Mesh interface. Because functions are
// not comparable, wrap a MeshFunc in a pointer before registering it:
//
//	m := curl.MeshFunc(draw)
//	r.AddMesh(&m)
type MeshFunc func(gl gles.GL) error

// Draw implements Mesh.
func (f *MeshFunc) Draw(gl gles.GL) error {
	return (*f)(gl)
}
