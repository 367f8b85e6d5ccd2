// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded page shader source.
//
//go:embed shaders/page.wgsl
var pageShaderSource string

// Page vertex layout: position (2 floats), uv (2 floats), color (4 floats).
const (
	pageVertexStride = 8 * 4
	pageUniformSize  = 16 * 4
)

const spirvMagic uint32 = 0x07230203

// CompilePageShader compiles the page shader from WGSL to SPIR-V words.
func CompilePageShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(pageShaderSource)
	if err != nil {
		return nil, fmt.Errorf("render: compile page shader: %w", err)
	}
	if len(spirvBytes) < 4 || len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("render: page shader: malformed SPIR-V (%d bytes)", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("render: page shader: bad SPIR-V magic %#08x", words[0])
	}
	return words, nil
}

// GPUPipeline holds the GPU objects needed to draw page triangles on a
// host-provided device: the page shader module, its bind group layout, a
// linear sampler and the render pipeline targeting the host surface format.
//
// Vertex data is produced by EncodeVertices and the transform uniform by
// EncodeTransform, both matching the layout the pipeline declares.
type GPUPipeline struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	pipeline   hal.RenderPipeline
}

// NewGPUPipeline prepares the page pipeline on the device exposed by handle.
//
// The handle must expose HAL objects through HalDevice() any and
// HalQueue() any; otherwise ErrNoDevice is returned and the caller should
// fall back to SoftwareGL.
func NewGPUPipeline(handle DeviceHandle) (*GPUPipeline, error) {
	if handle == nil {
		return nil, ErrNilDeviceHandle
	}
	device, queue, err := halDevice(handle)
	if err != nil {
		return nil, err
	}

	format := handle.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}

	p := &GPUPipeline{device: device, queue: queue, format: format}
	if err := p.create(); err != nil {
		p.Destroy()
		return nil, err
	}
	curl.Logger().Info("render: page pipeline ready", "format", format)
	return p, nil
}

// Format returns the color target format of the pipeline.
func (p *GPUPipeline) Format() gputypes.TextureFormat {
	return p.format
}

// Ready reports whether all pipeline objects exist.
func (p *GPUPipeline) Ready() bool {
	return p.pipeline != nil
}

func (p *GPUPipeline) create() error {
	spirv, err := CompilePageShader()
	if err != nil {
		return err
	}

	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "page_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("render: create page shader module: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: transform (uniform buffer, vertex)
	//   Binding 1: page texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "page_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create page bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "page_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create page pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "page_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("render: create page sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "page_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    pageVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("render: create page pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// Destroy releases all GPU objects. Safe to call multiple times.
func (p *GPUPipeline) Destroy() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

func pageVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: pageVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// EncodeVertices packs vertices into the page vertex buffer layout.
func EncodeVertices(vertices []gles.Vertex) []byte {
	buf := make([]byte, 0, len(vertices)*pageVertexStride)
	for _, v := range vertices {
		for _, f := range [8]float32{v.X, v.Y, v.U, v.V, v.R, v.G, v.B, v.A} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}

// EncodeTransform packs projection * modelview as the page shader uniform.
func EncodeTransform(projection, modelView gles.Matrix) []byte {
	m := projection.Multiply(modelView).Mat4()
	buf := make([]byte, 0, pageUniformSize)
	for _, f := range m {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
