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

package render

// Drawer buffers vertex submissions between flushes and performs the actual
// draws. The core never draws; it hands raw guest vertex bytes to the
// Drawer and asks for a Flush when accumulated state must be realized.
type Drawer interface {
	// SubmitPrim queues a primitive for drawing. verts and inds are raw
	// windows onto guest memory (inds is nil for non-indexed formats).
	// Returns the number of vertex bytes consumed, which the caller uses
	// to advance the vertex address.
	SubmitPrim(verts []uint8, inds []uint8, prim PrimitiveType, count int, vtype VertexType) int

	// SubmitBezier and SubmitSpline queue tessellated patches.
	SubmitBezier(verts []uint8, inds []uint8, ucount int, vcount int, patchPrim PatchPrimType, vtype VertexType)
	SubmitSpline(verts []uint8, inds []uint8, ucount int, vcount int, utype int, vtype int, patchPrim PatchPrimType, vt VertexType)

	// TestBoundingBox decodes count control points and tests them against
	// the current view volume. Returns true if any part of the box is
	// visible.
	TestBoundingBox(verts []uint8, count int, vtype VertexType) bool

	// SetupVertexDecoder prepares the decoder for the vertex format
	// without submitting anything. Used when a draw is skipped but cycle
	// accounting still applies.
	SetupVertexDecoder(vtype VertexType)

	// EstimatePerVertexCost returns the estimated GPU cycles consumed per
	// vertex under the current lighting state.
	EstimatePerVertexCost() int

	// Flush draws everything queued since the previous flush.
	Flush()

	// tracked vertex array maintenance
	DecimateTrackedVertexArrays()
	ClearTrackedVertexArrays()

	// GetCurrentSimpleVertices returns up to count decoded vertices from
	// the most recent submission. Debug readback only.
	GetCurrentSimpleVertices(count int) []SimpleVertex
}

// ShaderManager maintains the program cache and the uniform dirty state.
type ShaderManager interface {
	// DirtyUniform adds groups to the set re-uploaded before the next
	// draw.
	DirtyUniform(groups UniformGroup)

	// DirtyShader forces re-selection of the program on the next draw.
	// DirtyLastShader additionally forgets which program was last bound.
	DirtyShader()
	DirtyLastShader()

	// ClearCache drops all cached programs. When deletePrograms is false
	// the underlying objects are assumed already lost (device lost).
	ClearCache(deletePrograms bool)

	// cache gauges for statistics
	NumVertexShaders() int
	NumFragmentShaders() int
	NumPrograms() int
}

// TextureCache maintains decoded guest textures and the palette.
type TextureCache interface {
	// LoadClut materializes the color lookup table from guest memory
	// immediately.
	LoadClut(addr uint32, bytes int)

	// Invalidate marks the address range stale. InvalidateAll applies to
	// every entry.
	Invalidate(addr uint32, size int, kind InvalidationKind)
	InvalidateAll(kind InvalidationKind)

	// StartFrame begins per-frame housekeeping (decimation).
	StartFrame()

	// Clear drops all entries. ClearNextFrame defers the clear to the
	// next StartFrame.
	Clear(deleteThem bool)
	ClearNextFrame()

	// SetTexture binds the texture described by the current register
	// state, loading it if necessary.
	SetTexture()

	// cache gauge for statistics
	NumLoadedTextures() int
}

// FramebufferManager maintains the list of virtual framebuffers backing
// guest render targets and the path to the output surface.
type FramebufferManager interface {
	// SetDisplayFramebuffer records which guest address is being
	// displayed.
	SetDisplayFramebuffer(addr uint32, stride int, format BufferFormat)

	// SetRenderFrameBuffer binds the render target described by the
	// current register state, creating it if necessary.
	SetRenderFrameBuffer()

	// CopyDisplayToOutput presents the displayed virtual framebuffer on
	// the output surface.
	CopyDisplayToOutput()

	// InitClear binds the default viewport over the output surface. When
	// clear is true the color, depth and stencil planes are cleared to
	// opaque black first.
	InitClear(clear bool, width int, height int)

	// frame lifecycle
	BeginFrame()
	EndFrame()
	DeviceLost()
	DestroyAllFBOs()

	// NotifyBlockTransfer reports a completed guest block transfer so a
	// transfer between framebuffers can be promoted to a blit.
	// NotifyFramebufferCopy reports a framebuffer readback to RAM.
	NotifyBlockTransfer(dst uint32, src uint32)
	NotifyFramebufferCopy(src uint32, dst uint32, size int)

	// UpdateFromMemory re-reads a guest range into any framebuffer
	// overlapping it. safe requests a full reload.
	UpdateFromMemory(addr uint32, size int, safe bool)

	// DrawPixels uploads raw guest pixels to the current render target.
	DrawPixels(pixels []uint8, format BufferFormat, stride int)

	// display addresses for transfer promotion decisions
	DisplayFramebufAddr() uint32
	PrevDisplayFramebufAddr() uint32

	// virtual framebuffer inspection
	GetDisplayVFB() *FramebufferInfo
	GetFramebufferList() []FramebufferInfo

	// Resized reports that the output surface changed size.
	Resized()

	// debug readbacks. ok is false when no buffer is bound
	GetCurrentFramebuffer() (pixels []uint8, ok bool)
	GetCurrentDepthbuffer() (pixels []uint8, ok bool)
	GetCurrentStencilbuffer() (pixels []uint8, ok bool)
}

// RegisterReader provides the subsystems read access to the command
// register mirror. Implemented by the command-stream interpreter. The
// subsystems read the mirror at flush and bind time rather than tracking
// every register write themselves.
type RegisterReader interface {
	Register(cmd uint8) uint32
}

// Renderer bundles the four subsystems the core drives. The references are
// non-owning; the renderer implementation owns its parts.
type Renderer struct {
	Draw     Drawer
	Shader   ShaderManager
	Texture  TextureCache
	Framebuf FramebufferManager
}
