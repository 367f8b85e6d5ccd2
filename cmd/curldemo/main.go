// Command curldemo renders a book of generated pages with the curl
// renderer and writes the frames as PNG files.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
	"github.com/gogpu/curl/host"
	"github.com/gogpu/curl/page"
	"github.com/gogpu/curl/recording"
	"github.com/gogpu/curl/render"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "curldemo:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	curl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		curl.Logger().Error("curldemo failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	log := curl.Logger()
	gpuAvailable(render.NullDeviceHandle{}, cfg.Width, cfg.Height)

	pages := page.NewLabelProvider(cfg.Pages)
	pages.Language = cfg.language()
	book, err := page.NewBook(pages,
		page.WithViewMode(cfg.viewMode()),
		page.WithBackgroundColor(curl.Hex(cfg.Background)),
	)
	if err != nil {
		return err
	}

	target := render.NewPixmapTarget(cfg.Width, cfg.Height)
	gl, err := render.NewSoftwareGL(target)
	if err != nil {
		return err
	}

	out, err := newFrameWriter(cfg, gl)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	loop := host.NewLoop(book.Renderer(), out.surface(),
		host.WithSize(cfg.Width, cfg.Height),
		host.WithFrameInterval(cfg.interval()),
		host.WithMaxFrames(uint64(cfg.Frames)),
		host.WithFrameHook(out.writeFrame),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(ctx)
	})
	g.Go(func() error {
		return turnPages(ctx, book, loop, cfg.interval()*time.Duration(max(cfg.TurnEvery, 1)))
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("curldemo done", "frames", loop.Frames(), "page", book.CurrentIndex())
	return nil
}

// turnPages advances the book every period until the loop stops, starting
// over after the last page.
func turnPages(ctx context.Context, book *page.Book, loop *host.Loop, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-loop.Done():
			return nil
		case <-ticker.C:
			if !book.Next() {
				if err := book.SetCurrentIndex(0); err != nil {
					return err
				}
			}
			if err := book.Err(); err != nil {
				return err
			}
		}
	}
}

// gpuAvailable reports whether handle can run the GPU page path, by
// flushing one cleared frame through a GPUGL. The demo has no windowing
// host, so it always renders in software.
func gpuAvailable(handle render.DeviceHandle, width, height int) bool {
	log := curl.Logger()
	pipe, err := render.NewGPUPipeline(handle)
	switch {
	case errors.Is(err, render.ErrNoDevice):
		log.Info("no GPU device, using software rendering")
		return false
	case err != nil:
		log.Warn("GPU pipeline unavailable, using software rendering", "err", err)
		return false
	}
	defer pipe.Destroy()

	gl, err := render.NewGPUGL(pipe, width, height)
	if err != nil {
		log.Warn("GPU target unavailable, using software rendering", "err", err)
		return false
	}
	defer gl.Destroy()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gles.ColorBufferBit)
	if err := gl.Flush(); err != nil {
		log.Warn("GPU frame failed, using software rendering", "err", err)
		return false
	}
	log.Info("GPU pipeline ready", "format", pipe.Format())
	return true
}

// frameWriter saves every frame as PNG and optionally traces GL commands.
type frameWriter struct {
	cfg   config
	gl    *render.SoftwareGL
	trace *os.File
	rec   *tracingSurface
}

// tracingSurface records GL commands; they are replayed onto the software
// GL once per frame.
type tracingSurface struct {
	*recording.Recorder
	gl *render.SoftwareGL
}

func (s *tracingSurface) Resize(width, height int) {
	s.gl.Resize(width, height)
}

func newFrameWriter(cfg config, gl *render.SoftwareGL) (*frameWriter, error) {
	w := &frameWriter{cfg: cfg, gl: gl}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			return nil, fmt.Errorf("create trace: %w", err)
		}
		w.trace = f
		w.rec = &tracingSurface{Recorder: recording.NewRecorder(), gl: gl}
	}
	return w, nil
}

func (w *frameWriter) surface() host.Surface {
	if w.rec != nil {
		return w.rec
	}
	return w.gl
}

func (w *frameWriter) writeFrame(frame uint64) error {
	if w.rec != nil {
		rec := w.rec.FinishRecording()
		if err := rec.Playback(w.gl); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w.trace, "# frame %d\n", frame); err != nil {
			return err
		}
		if _, err := rec.WriteTo(w.trace); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
	}
	if err := w.gl.Err(); err != nil {
		return fmt.Errorf("gl: %w", err)
	}

	if w.cfg.Output == "" {
		return nil
	}
	name := fmt.Sprintf(w.cfg.Output, frame)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := w.gl.Target().WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	curl.Logger().Debug("frame written", "file", name)
	return f.Close()
}

func (w *frameWriter) Close() error {
	if w.trace != nil {
		return w.trace.Close()
	}
	return nil
}
