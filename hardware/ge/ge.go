// This file is part of GopherGE.
//
// GopherGE is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherGE is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherGE.  If not, see <https://www.gnu.org/licenses/>.

package ge

import (
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/render"
)

// GPU is the command-stream interpreter and the state it interprets into.
// All fields are owned by the render thread; the event queue is the only
// structure other threads touch.
type GPU struct {
	cfg  Config
	mem  *memory.Mem
	rend *render.Renderer

	flags  [256]CommandFlags
	mirror [256]uint32

	// derived floating-point caches, updated as the corresponding
	// registers are written
	lights       [4]Light
	uvScale      [4]float32 // uscale, vscale, uoffset, voffset
	morphWeights [8]float32

	// texture dimensions from the level-zero size register. a
	// render-to-texture override may install values the register does not
	// hold
	curTextureWidth  int
	curTextureHeight int

	// matrix files
	worldMatrix [worldMatrixSize]float32
	viewMatrix  [viewMatrixSize]float32
	projMatrix  [projMatrixSize]float32
	tgenMatrix  [tgenMatrixSize]float32
	boneMatrix  [boneMatrixSize]float32

	// absolute addresses computed from the relative-address commands
	vertexAddr uint32
	indexAddr  uint32
	offsetAddr uint32

	textureChanged  bool
	framebufChanged bool
	skipDraw        int

	cyclesExecuted int64
	stats          Statistics

	events chan Event

	// the list currently being run
	list *render.DisplayList
}

// NewGPU is the preferred method of initialisation for the GPU type. The
// configuration is copied and never consulted again; mem and rend are
// borrowed for the lifetime of the GPU.
func NewGPU(cfg Config, mem *memory.Mem, rend *render.Renderer) *GPU {
	gpu := &GPU{
		cfg:    cfg,
		mem:    mem,
		rend:   rend,
		flags:  newFlagsTable(cfg),
		events: make(chan Event, maxPendingEvents),
	}
	gpu.textureChanged = true
	return gpu
}

// CommandFlags returns the flag set for a command. The table is immutable
// after construction.
func (gpu *GPU) CommandFlags(cmd Command) CommandFlags {
	return gpu.flags[cmd]
}

// Mirror returns the last full command word written for a command.
func (gpu *GPU) Mirror(cmd Command) uint32 {
	return gpu.mirror[cmd]
}

// Register implements render.RegisterReader. The subsystems read the
// mirror at flush and bind time rather than tracking every write.
func (gpu *GPU) Register(cmd uint8) uint32 {
	return gpu.mirror[cmd]
}

// The matrix accessors return the matrix files. The slices alias GPU state
// and must only be read on the render thread, between flushes.
func (gpu *GPU) WorldMatrix() []float32 { return gpu.worldMatrix[:] }
func (gpu *GPU) ViewMatrix() []float32  { return gpu.viewMatrix[:] }
func (gpu *GPU) ProjMatrix() []float32  { return gpu.projMatrix[:] }
func (gpu *GPU) TGenMatrix() []float32  { return gpu.tgenMatrix[:] }
func (gpu *GPU) BoneMatrix() []float32  { return gpu.boneMatrix[:] }

// Light returns the derived floating-point cache for one hardware light.
func (gpu *GPU) Light(n int) Light {
	return gpu.lights[n]
}

// UVScale returns the texture coordinate scale and offset as uscale,
// vscale, uoffset, voffset.
func (gpu *GPU) UVScale() [4]float32 {
	return gpu.uvScale
}

// MorphWeight returns the morph weight for a frame.
func (gpu *GPU) MorphWeight(n int) float32 {
	return gpu.morphWeights[n]
}

// TextureDimensions returns the level-zero texture size, including any
// render-to-texture override.
func (gpu *GPU) TextureDimensions() (width int, height int) {
	return gpu.curTextureWidth, gpu.curTextureHeight
}

// VertexAddr returns the current absolute vertex address.
func (gpu *GPU) VertexAddr() uint32 {
	return gpu.vertexAddr
}

// IndexAddr returns the current absolute index address.
func (gpu *GPU) IndexAddr() uint32 {
	return gpu.indexAddr
}

// CyclesExecuted returns the accumulated cycle estimate.
func (gpu *GPU) CyclesExecuted() int64 {
	return gpu.cyclesExecuted
}

// SetSkipDraw replaces the skip-draw reasons for the current frame.
func (gpu *GPU) SetSkipDraw(reasons int) {
	gpu.skipDraw = reasons
}

// relativeAddr computes an absolute address from a 24-bit relative payload,
// the base register and the offset address.
func (gpu *GPU) relativeAddr(data uint32) uint32 {
	base := (gpu.mirror[CmdBase] & 0x000f0000) << 8
	return (gpu.offsetAddr + (base | data)) & 0x0fffffff
}

// SetDisplayFramebuffer records the guest address being displayed.
func (gpu *GPU) SetDisplayFramebuffer(addr uint32, stride int, format render.BufferFormat) {
	gpu.rend.Framebuf.SetDisplayFramebuffer(addr, stride, format)
}

// FramebufferDirty returns true if the displayed framebuffer has been
// rendered to since it was last displayed. With a separate CPU thread the
// call synchronizes with the event queue first so the answer is stable.
func (gpu *GPU) FramebufferDirty() bool {
	if gpu.cfg.SeparateCPUThread {
		gpu.SyncThread()
	}

	vfb := gpu.rend.Framebuf.GetDisplayVFB()
	if vfb != nil {
		dirty := vfb.DirtyAfterDisplay
		vfb.DirtyAfterDisplay = false
		return dirty
	}
	return true
}

// FramebufferReallyDirty is FramebufferDirty ignoring draws that could not
// have changed a pixel.
func (gpu *GPU) FramebufferReallyDirty() bool {
	if gpu.cfg.SeparateCPUThread {
		gpu.SyncThread()
	}

	vfb := gpu.rend.Framebuf.GetDisplayVFB()
	if vfb != nil {
		dirty := vfb.ReallyDirtyAfterDisplay
		vfb.ReallyDirtyAfterDisplay = false
		return dirty
	}
	return true
}
