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

package headless

import (
	"github.com/hakea/gopherge/render"
)

// Drawer is a recording implementation of render.Drawer.
type Drawer struct {
	Trace *Trace

	// bytes reported consumed per vertex by SubmitPrim. when zero the
	// stride of the submitted vertex type is used instead
	BytesPerVertex int

	// cycles reported per vertex
	VertexCost int

	// verdicts returned by successive TestBoundingBox calls. once
	// exhausted every test reports true
	BBoxVerdicts []bool

	bboxCalls int
}

// SubmitPrim implements render.Drawer.
func (dr *Drawer) SubmitPrim(verts []uint8, inds []uint8, prim render.PrimitiveType, count int, vtype render.VertexType) int {
	dr.Trace.record("SubmitPrim", prim, count, vtype)
	if dr.BytesPerVertex > 0 {
		return count * dr.BytesPerVertex
	}
	return count * vtype.Size()
}

// SubmitBezier implements render.Drawer.
func (dr *Drawer) SubmitBezier(verts []uint8, inds []uint8, ucount int, vcount int, patchPrim render.PatchPrimType, vtype render.VertexType) {
	dr.Trace.record("SubmitBezier", ucount, vcount, patchPrim, vtype)
}

// SubmitSpline implements render.Drawer.
func (dr *Drawer) SubmitSpline(verts []uint8, inds []uint8, ucount int, vcount int, utype int, vtype int, patchPrim render.PatchPrimType, vt render.VertexType) {
	dr.Trace.record("SubmitSpline", ucount, vcount, utype, vtype, patchPrim, vt)
}

// TestBoundingBox implements render.Drawer.
func (dr *Drawer) TestBoundingBox(verts []uint8, count int, vtype render.VertexType) bool {
	dr.Trace.record("TestBoundingBox", count, vtype)
	if dr.bboxCalls < len(dr.BBoxVerdicts) {
		v := dr.BBoxVerdicts[dr.bboxCalls]
		dr.bboxCalls++
		return v
	}
	dr.bboxCalls++
	return true
}

// SetupVertexDecoder implements render.Drawer.
func (dr *Drawer) SetupVertexDecoder(vtype render.VertexType) {
	dr.Trace.record("SetupVertexDecoder", vtype)
}

// EstimatePerVertexCost implements render.Drawer.
func (dr *Drawer) EstimatePerVertexCost() int {
	return dr.VertexCost
}

// Flush implements render.Drawer.
func (dr *Drawer) Flush() {
	dr.Trace.record("Flush")
}

// DecimateTrackedVertexArrays implements render.Drawer.
func (dr *Drawer) DecimateTrackedVertexArrays() {
	dr.Trace.record("DecimateTrackedVertexArrays")
}

// ClearTrackedVertexArrays implements render.Drawer.
func (dr *Drawer) ClearTrackedVertexArrays() {
	dr.Trace.record("ClearTrackedVertexArrays")
}

// GetCurrentSimpleVertices implements render.Drawer.
func (dr *Drawer) GetCurrentSimpleVertices(count int) []render.SimpleVertex {
	return nil
}

// Shader is a recording implementation of render.ShaderManager.
type Shader struct {
	Trace *Trace

	// union of every group dirtied since the last Reset
	Dirtied render.UniformGroup
}

// DirtyUniform implements render.ShaderManager.
func (sh *Shader) DirtyUniform(groups render.UniformGroup) {
	sh.Trace.record("DirtyUniform", groups)
	sh.Dirtied |= groups
}

// DirtyShader implements render.ShaderManager.
func (sh *Shader) DirtyShader() {
	sh.Trace.record("DirtyShader")
}

// DirtyLastShader implements render.ShaderManager.
func (sh *Shader) DirtyLastShader() {
	sh.Trace.record("DirtyLastShader")
}

// ClearCache implements render.ShaderManager.
func (sh *Shader) ClearCache(deletePrograms bool) {
	sh.Trace.record("ClearCache", deletePrograms)
}

// NumVertexShaders implements render.ShaderManager.
func (sh *Shader) NumVertexShaders() int { return 0 }

// NumFragmentShaders implements render.ShaderManager.
func (sh *Shader) NumFragmentShaders() int { return 0 }

// NumPrograms implements render.ShaderManager.
func (sh *Shader) NumPrograms() int { return 0 }

// Texture is a recording implementation of render.TextureCache.
type Texture struct {
	Trace *Trace
}

// LoadClut implements render.TextureCache.
func (tx *Texture) LoadClut(addr uint32, bytes int) {
	tx.Trace.record("LoadClut", addr, bytes)
}

// Invalidate implements render.TextureCache.
func (tx *Texture) Invalidate(addr uint32, size int, kind render.InvalidationKind) {
	tx.Trace.record("Invalidate", addr, size, kind)
}

// InvalidateAll implements render.TextureCache.
func (tx *Texture) InvalidateAll(kind render.InvalidationKind) {
	tx.Trace.record("InvalidateAll", kind)
}

// StartFrame implements render.TextureCache.
func (tx *Texture) StartFrame() {
	tx.Trace.record("StartFrame")
}

// Clear implements render.TextureCache.
func (tx *Texture) Clear(deleteThem bool) {
	tx.Trace.record("Clear", deleteThem)
}

// ClearNextFrame implements render.TextureCache.
func (tx *Texture) ClearNextFrame() {
	tx.Trace.record("ClearNextFrame")
}

// SetTexture implements render.TextureCache.
func (tx *Texture) SetTexture() {
	tx.Trace.record("SetTexture")
}

// NumLoadedTextures implements render.TextureCache.
func (tx *Texture) NumLoadedTextures() int { return 0 }

// Framebuf is a recording implementation of render.FramebufferManager.
type Framebuf struct {
	Trace *Trace

	// the virtual framebuffer returned by GetDisplayVFB. nil by default
	DisplayVFB *render.FramebufferInfo

	// addresses returned by DisplayFramebufAddr and
	// PrevDisplayFramebufAddr
	DisplayAddr uint32
	PrevAddr    uint32

	// framebuffers reported by GetFramebufferList
	Framebuffers []render.FramebufferInfo
}

// SetDisplayFramebuffer implements render.FramebufferManager.
func (fb *Framebuf) SetDisplayFramebuffer(addr uint32, stride int, format render.BufferFormat) {
	fb.Trace.record("SetDisplayFramebuffer", addr, stride, format)
	fb.PrevAddr = fb.DisplayAddr
	fb.DisplayAddr = addr
}

// SetRenderFrameBuffer implements render.FramebufferManager.
func (fb *Framebuf) SetRenderFrameBuffer() {
	fb.Trace.record("SetRenderFrameBuffer")
}

// CopyDisplayToOutput implements render.FramebufferManager.
func (fb *Framebuf) CopyDisplayToOutput() {
	fb.Trace.record("CopyDisplayToOutput")
}

// InitClear implements render.FramebufferManager.
func (fb *Framebuf) InitClear(clear bool, width int, height int) {
	fb.Trace.record("InitClear", clear, width, height)
}

// BeginFrame implements render.FramebufferManager.
func (fb *Framebuf) BeginFrame() {
	fb.Trace.record("BeginFrame")
}

// EndFrame implements render.FramebufferManager.
func (fb *Framebuf) EndFrame() {
	fb.Trace.record("EndFrame")
}

// DeviceLost implements render.FramebufferManager.
func (fb *Framebuf) DeviceLost() {
	fb.Trace.record("DeviceLost")
}

// DestroyAllFBOs implements render.FramebufferManager.
func (fb *Framebuf) DestroyAllFBOs() {
	fb.Trace.record("DestroyAllFBOs")
}

// NotifyBlockTransfer implements render.FramebufferManager.
func (fb *Framebuf) NotifyBlockTransfer(dst uint32, src uint32) {
	fb.Trace.record("NotifyBlockTransfer", dst, src)
}

// NotifyFramebufferCopy implements render.FramebufferManager.
func (fb *Framebuf) NotifyFramebufferCopy(src uint32, dst uint32, size int) {
	fb.Trace.record("NotifyFramebufferCopy", src, dst, size)
}

// UpdateFromMemory implements render.FramebufferManager.
func (fb *Framebuf) UpdateFromMemory(addr uint32, size int, safe bool) {
	fb.Trace.record("UpdateFromMemory", addr, size, safe)
}

// DrawPixels implements render.FramebufferManager.
func (fb *Framebuf) DrawPixels(pixels []uint8, format render.BufferFormat, stride int) {
	fb.Trace.record("DrawPixels", format, stride)
}

// DisplayFramebufAddr implements render.FramebufferManager.
func (fb *Framebuf) DisplayFramebufAddr() uint32 { return fb.DisplayAddr }

// PrevDisplayFramebufAddr implements render.FramebufferManager.
func (fb *Framebuf) PrevDisplayFramebufAddr() uint32 { return fb.PrevAddr }

// GetDisplayVFB implements render.FramebufferManager.
func (fb *Framebuf) GetDisplayVFB() *render.FramebufferInfo {
	return fb.DisplayVFB
}

// GetFramebufferList implements render.FramebufferManager.
func (fb *Framebuf) GetFramebufferList() []render.FramebufferInfo {
	return fb.Framebuffers
}

// Resized implements render.FramebufferManager.
func (fb *Framebuf) Resized() {
	fb.Trace.record("Resized")
}

// GetCurrentFramebuffer implements render.FramebufferManager.
func (fb *Framebuf) GetCurrentFramebuffer() ([]uint8, bool) { return nil, false }

// GetCurrentDepthbuffer implements render.FramebufferManager.
func (fb *Framebuf) GetCurrentDepthbuffer() ([]uint8, bool) { return nil, false }

// GetCurrentStencilbuffer implements render.FramebufferManager.
func (fb *Framebuf) GetCurrentStencilbuffer() ([]uint8, bool) { return nil, false }

// Renderer bundles the four recording doubles around a shared trace.
type Renderer struct {
	Trace    *Trace
	Draw     *Drawer
	Shader   *Shader
	Texture  *Texture
	Framebuf *Framebuf
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type.
func NewRenderer() *Renderer {
	tr := &Trace{}
	return &Renderer{
		Trace:    tr,
		Draw:     &Drawer{Trace: tr, VertexCost: 1},
		Shader:   &Shader{Trace: tr},
		Texture:  &Texture{Trace: tr},
		Framebuf: &Framebuf{Trace: tr},
	}
}

// Renderer returns the doubles bundled as a render.Renderer for the GPU
// constructor.
func (hr *Renderer) Renderer() *render.Renderer {
	return &render.Renderer{
		Draw:     hr.Draw,
		Shader:   hr.Shader,
		Texture:  hr.Texture,
		Framebuf: hr.Framebuf,
	}
}
