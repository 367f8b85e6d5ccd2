package main

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/curl/render"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
)

func TestRunWritesFramesAndTrace(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 64, 32
	cfg.Frames = 2
	cfg.IntervalMS = 1
	cfg.Output = filepath.Join(dir, "frame-%d.png")
	cfg.Trace = filepath.Join(dir, "trace.txt")

	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, name := range []string{"frame-1.png", "frame-2.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("frame not written: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	f, err := os.Open(cfg.Trace)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	var frames, draws int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if strings.HasPrefix(line, "# frame") {
			frames++
		}
		if strings.Contains(line, "DrawTriangles") {
			draws++
		}
	}
	if frames != 2 {
		t.Errorf("trace frames = %d, want 2", frames)
	}
	if draws == 0 {
		t.Error("trace has no DrawTriangles")
	}
}

func TestRunWithoutOutput(t *testing.T) {
	cfg := defaultConfig()
	cfg.Width, cfg.Height = 16, 8
	cfg.Frames = 1
	cfg.IntervalMS = 1
	cfg.Output = ""
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

// noopHandle exposes a noop HAL device.
type noopHandle struct {
	render.NullDeviceHandle
	device, queue any
}

func (h noopHandle) HalDevice() any { return h.device }
func (h noopHandle) HalQueue() any  { return h.queue }

func TestGPUAvailable(t *testing.T) {
	if gpuAvailable(render.NullDeviceHandle{}, 16, 8) {
		t.Error("gpuAvailable(NullDeviceHandle) = true")
	}
	if _, err := render.CompilePageShader(); err != nil {
		t.Skipf("page shader unavailable: %v", err)
	}

	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer dev.Device.Destroy()

	if !gpuAvailable(noopHandle{device: dev.Device, queue: dev.Queue}, 16, 8) {
		t.Error("gpuAvailable(noop) = false")
	}
}
