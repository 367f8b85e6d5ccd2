// Package recording captures gles.GL calls as typed commands.
//
// A Recorder is a GL that draws nothing. Handing it to the renderer's
// lifecycle hooks yields an exact trace of what a frame asked the graphics
// context to do, which is how the renderer is tested and how the demo CLI
// prints frame traces.
//
// # Basic Usage
//
//	rec := recording.NewRecorder()
//	renderer.OnSurfaceCreated(rec)
//	renderer.OnSurfaceChanged(rec, 800, 400)
//	if err := renderer.OnDrawFrame(rec); err != nil {
//	    return err
//	}
//	frame := rec.FinishRecording()
//	fmt.Println(frame.Count(recording.CmdDrawTriangles))
//
// # Playback
//
// A Recording can be replayed to any other GL, for example a software
// rasterizer:
//
//	gl, err := render.NewSoftwareGL(render.NewPixmapTarget(800, 400))
//	if err != nil {
//	    return err
//	}
//	if err := frame.Playback(gl); err != nil {
//	    return err
//	}
//
// Commands are typed structs rather than an encoded byte stream, so tests
// can assert on them directly with a type switch.
package recording
