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

package gles

import (
	"image"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
	"golang.org/x/image/draw"
)

// virtual framebuffers unused for this many frames are dropped during
// BeginFrame
const framebufferKillAge = 30

// vfb is a guest render target realized as an FBO.
type vfb struct {
	info render.FramebufferInfo

	fbo          uint32
	tex          uint32
	depthStencil uint32

	lastFrame int
}

// FramebufferManager implements render.FramebufferManager. Guest render
// targets are matched to FBOs by address; the displayed target is blitted
// to the output surface.
type FramebufferManager struct {
	mem  *memory.Mem
	regs *registers

	vfbs    []*vfb
	current *vfb

	displayAddr     uint32
	prevDisplayAddr uint32
	displayStride   int
	displayFormat   render.BufferFormat

	outputWidth  int
	outputHeight int

	frame int

	// scratch texture and FBO for pixel uploads
	uploadTex uint32
	uploadFBO uint32
}

func newFramebufferManager(mem *memory.Mem, regs *registers, outputWidth int, outputHeight int) *FramebufferManager {
	fm := &FramebufferManager{
		mem:           mem,
		regs:          regs,
		outputWidth:   outputWidth,
		outputHeight:  outputHeight,
		displayStride: 512,
		displayFormat: render.Buffer8888,
	}
	gl.GenTextures(1, &fm.uploadTex)
	gl.GenFramebuffers(1, &fm.uploadFBO)
	return fm
}

// SetDisplayFramebuffer implements render.FramebufferManager.
func (fm *FramebufferManager) SetDisplayFramebuffer(addr uint32, stride int, format render.BufferFormat) {
	fm.prevDisplayAddr = fm.displayAddr
	fm.displayAddr = addr
	fm.displayStride = stride
	fm.displayFormat = format
}

func (fm *FramebufferManager) findVFB(addr uint32) *vfb {
	for _, fb := range fm.vfbs {
		if fb.info.Address == addr {
			return fb
		}
	}
	return nil
}

func (fm *FramebufferManager) createVFB(addr uint32, stride int, width int, height int, format render.BufferFormat) *vfb {
	fb := &vfb{
		info: render.FramebufferInfo{
			Address: addr,
			Stride:  stride,
			Width:   width,
			Height:  height,
			Format:  format,
		},
		lastFrame: fm.frame,
	}

	gl.GenTextures(1, &fb.tex)
	gl.BindTexture(gl.TEXTURE_2D, fb.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenRenderbuffers(1, &fb.depthStencil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depthStencil)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))

	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.tex, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.depthStencil)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		logger.Logf(logger.Allow, "gles", "incomplete framebuffer: %08x", addr)
	}

	fm.vfbs = append(fm.vfbs, fb)
	return fb
}

// SetRenderFrameBuffer implements render.FramebufferManager.
func (fm *FramebufferManager) SetRenderFrameBuffer() {
	addr := fm.regs.framebufAddr()
	stride := fm.regs.framebufStride()
	format := fm.regs.framebufFormat()
	width, height := fm.regs.regionSize()

	fb := fm.findVFB(addr)
	if fb == nil {
		if stride == 0 {
			stride = width
		}
		fb = fm.createVFB(addr, stride, width, height, format)
	}
	fb.lastFrame = fm.frame
	fb.info.Format = format

	if addr == fm.displayAddr {
		fb.info.DirtyAfterDisplay = true
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, int32(fb.info.Width), int32(fb.info.Height))
	fm.current = fb
}

// markReallyDirty is called by the draw engine when a flush issued draws
// that could have changed pixels.
func (fm *FramebufferManager) markReallyDirty() {
	if fm.current != nil && fm.current.info.Address == fm.displayAddr {
		fm.current.info.ReallyDirtyAfterDisplay = true
	}
}

// boundFBO returns the FBO draws should target. Zero is the output surface.
func (fm *FramebufferManager) boundFBO() uint32 {
	if fm.current != nil {
		return fm.current.fbo
	}
	return 0
}

// renderDimensions returns the size of the current render target.
func (fm *FramebufferManager) renderDimensions() (width int, height int) {
	if fm.current != nil {
		return fm.current.info.Width, fm.current.info.Height
	}
	return fm.outputWidth, fm.outputHeight
}

// CopyDisplayToOutput implements render.FramebufferManager.
func (fm *FramebufferManager) CopyDisplayToOutput() {
	fb := fm.findVFB(fm.displayAddr)
	if fb == nil {
		// no draw ever targeted the displayed address. present whatever
		// the guest wrote there directly
		fm.current = nil
		fm.presentFromMemory()
		return
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(
		0, 0, int32(fb.info.Width), int32(fb.info.Height),
		0, 0, int32(fm.outputWidth), int32(fm.outputHeight),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	fm.current = nil
}

// presentFromMemory converts the displayed guest pixels and blits them to
// the output surface.
func (fm *FramebufferManager) presentFromMemory() {
	pixels, err := fm.mem.Window(fm.displayAddr)
	if err != nil {
		return
	}
	fm.blitPixels(pixels, fm.displayFormat, fm.displayStride, 480, 272, 0, fm.outputWidth, fm.outputHeight)
}

// DrawPixels implements render.FramebufferManager.
func (fm *FramebufferManager) DrawPixels(pixels []uint8, format render.BufferFormat, stride int) {
	width, height := fm.renderDimensions()
	fm.blitPixels(pixels, format, stride, 480, 272, fm.boundFBO(), width, height)
}

// blitPixels converts guest pixels to an RGBA image, scales them in
// software and blits the result to the target FBO.
func (fm *FramebufferManager) blitPixels(pixels []uint8, format render.BufferFormat, stride int, srcWidth int, srcHeight int, fbo uint32, dstWidth int, dstHeight int) {
	src := guestToRGBA(pixels, format, stride, srcWidth, srcHeight)
	if src == nil {
		return
	}

	img := src
	if srcWidth != dstWidth || srcHeight != dstHeight {
		img = image.NewRGBA(image.Rect(0, 0, dstWidth, dstHeight))
		draw.ApproxBiLinear.Scale(img, img.Bounds(), src, src.Bounds(), draw.Src, nil)
	}

	gl.BindTexture(gl.TEXTURE_2D, fm.uploadTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(dstWidth), int32(dstHeight), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fm.uploadFBO)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fm.uploadTex, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, fbo)
	gl.BlitFramebuffer(
		0, 0, int32(dstWidth), int32(dstHeight),
		0, 0, int32(dstWidth), int32(dstHeight),
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

// guestToRGBA converts guest pixels to an RGBA image. Returns nil when the
// source window is too small.
func guestToRGBA(pixels []uint8, format render.BufferFormat, stride int, width int, height int) *image.RGBA {
	bpp := format.BytesPerPixel()
	if len(pixels) < ((height-1)*stride+width)*bpp {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		row := pixels[y*stride*bpp:]
		for x := 0; x < width; x++ {
			var c uint32
			if format == render.Buffer8888 {
				c = uint32(row[x*4]) | uint32(row[x*4+1])<<8 |
					uint32(row[x*4+2])<<16 | uint32(row[x*4+3])<<24
			} else {
				v := uint32(row[x*2]) | uint32(row[x*2+1])<<8
				c = expandColor16(v, format)
			}
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(c)
			img.Pix[i+1] = uint8(c >> 8)
			img.Pix[i+2] = uint8(c >> 16)
			img.Pix[i+3] = uint8(c >> 24)
		}
	}
	return img
}

// InitClear implements render.FramebufferManager.
func (fm *FramebufferManager) InitClear(clear bool, width int, height int) {
	fm.outputWidth = width
	fm.outputHeight = height
	fm.current = nil

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Disable(gl.SCISSOR_TEST)

	if clear {
		gl.ColorMask(true, true, true, true)
		gl.DepthMask(true)
		gl.ClearColor(0, 0, 0, 1)
		gl.ClearDepth(1)
		gl.ClearStencil(0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	}
}

// BeginFrame implements render.FramebufferManager.
func (fm *FramebufferManager) BeginFrame() {
	fm.frame++

	keep := fm.vfbs[:0]
	for _, fb := range fm.vfbs {
		if fm.frame-fb.lastFrame > framebufferKillAge && fb.info.Address != fm.displayAddr {
			fm.destroyVFB(fb)
			continue
		}
		keep = append(keep, fb)
	}
	fm.vfbs = keep
}

// EndFrame implements render.FramebufferManager.
func (fm *FramebufferManager) EndFrame() {
	fm.current = nil
}

func (fm *FramebufferManager) destroyVFB(fb *vfb) {
	gl.DeleteFramebuffers(1, &fb.fbo)
	gl.DeleteTextures(1, &fb.tex)
	gl.DeleteRenderbuffers(1, &fb.depthStencil)
}

// destroy deletes every GL object the manager owns, including the upload
// path objects DestroyAllFBOs leaves alone.
func (fm *FramebufferManager) destroy() {
	fm.DestroyAllFBOs()
	gl.DeleteTextures(1, &fm.uploadTex)
	gl.DeleteFramebuffers(1, &fm.uploadFBO)
}

// DeviceLost implements render.FramebufferManager. The GL objects are gone
// with the context so nothing is deleted.
func (fm *FramebufferManager) DeviceLost() {
	fm.vfbs = nil
	fm.current = nil
}

// DestroyAllFBOs implements render.FramebufferManager.
func (fm *FramebufferManager) DestroyAllFBOs() {
	for _, fb := range fm.vfbs {
		fm.destroyVFB(fb)
	}
	fm.vfbs = nil
	fm.current = nil
}

// NotifyBlockTransfer implements render.FramebufferManager. A transfer
// between two known render targets is promoted to a blit so the result
// reflects rendered rather than stale guest pixels.
func (fm *FramebufferManager) NotifyBlockTransfer(dst uint32, src uint32) {
	srcFB := fm.findVFB(src)
	dstFB := fm.findVFB(dst)
	if srcFB == nil || dstFB == nil {
		return
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, srcFB.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, dstFB.fbo)
	gl.BlitFramebuffer(
		0, 0, int32(srcFB.info.Width), int32(srcFB.info.Height),
		0, 0, int32(dstFB.info.Width), int32(dstFB.info.Height),
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fm.boundFBO())

	if dst == fm.displayAddr {
		dstFB.info.DirtyAfterDisplay = true
		dstFB.info.ReallyDirtyAfterDisplay = true
	}
}

// NotifyFramebufferCopy implements render.FramebufferManager. The rendered
// pixels are read back and written to guest memory so the destination range
// holds what the guest expects to copy.
func (fm *FramebufferManager) NotifyFramebufferCopy(src uint32, dst uint32, size int) {
	fb := fm.findVFB(src)
	if fb == nil {
		return
	}

	w := fb.info.Width
	h := fb.info.Height
	pixels := make([]uint8, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.fbo)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, fm.boundFBO())

	bpp := fb.info.Format.BytesPerPixel()
	need := h * fb.info.Stride * bpp
	if need > size {
		need = size
	}
	dest, err := fm.mem.Slice(dst, uint32(need))
	if err != nil {
		return
	}
	rgbaToGuest(dest, pixels, fb.info.Format, fb.info.Stride, w, h)
}

// rgbaToGuest converts RGBA pixels back to a guest buffer format.
func rgbaToGuest(dst []uint8, src []uint8, format render.BufferFormat, stride int, width int, height int) {
	bpp := format.BytesPerPixel()
	for y := 0; y < height; y++ {
		if (y*stride+width)*bpp > len(dst) {
			return
		}
		row := dst[y*stride*bpp:]
		for x := 0; x < width; x++ {
			r := uint32(src[(y*width+x)*4])
			g := uint32(src[(y*width+x)*4+1])
			b := uint32(src[(y*width+x)*4+2])
			a := uint32(src[(y*width+x)*4+3])
			switch format {
			case render.Buffer8888:
				row[x*4] = uint8(r)
				row[x*4+1] = uint8(g)
				row[x*4+2] = uint8(b)
				row[x*4+3] = uint8(a)
			case render.Buffer565:
				v := (r >> 3) | ((g >> 2) << 5) | ((b >> 3) << 11)
				row[x*2] = uint8(v)
				row[x*2+1] = uint8(v >> 8)
			case render.Buffer5551:
				v := (r >> 3) | ((g >> 3) << 5) | ((b >> 3) << 10)
				if a >= 0x80 {
					v |= 0x8000
				}
				row[x*2] = uint8(v)
				row[x*2+1] = uint8(v >> 8)
			case render.Buffer4444:
				v := (r >> 4) | ((g >> 4) << 4) | ((b >> 4) << 8) | ((a >> 4) << 12)
				row[x*2] = uint8(v)
				row[x*2+1] = uint8(v >> 8)
			}
		}
	}
}

// UpdateFromMemory implements render.FramebufferManager.
func (fm *FramebufferManager) UpdateFromMemory(addr uint32, size int, safe bool) {
	end := addr + uint32(size)
	for _, fb := range fm.vfbs {
		bpp := fb.info.Format.BytesPerPixel()
		fbEnd := fb.info.Address + uint32(fb.info.Height*fb.info.Stride*bpp)
		if fb.info.Address >= end || fbEnd <= addr {
			continue
		}

		pixels, err := fm.mem.Window(fb.info.Address)
		if err != nil {
			continue
		}
		img := guestToRGBA(pixels, fb.info.Format, fb.info.Stride, fb.info.Width, fb.info.Height)
		if img == nil {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, fb.tex)
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0,
			int32(fb.info.Width), int32(fb.info.Height),
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
}

// DisplayFramebufAddr implements render.FramebufferManager.
func (fm *FramebufferManager) DisplayFramebufAddr() uint32 {
	return fm.displayAddr
}

// PrevDisplayFramebufAddr implements render.FramebufferManager.
func (fm *FramebufferManager) PrevDisplayFramebufAddr() uint32 {
	return fm.prevDisplayAddr
}

// GetDisplayVFB implements render.FramebufferManager.
func (fm *FramebufferManager) GetDisplayVFB() *render.FramebufferInfo {
	if fb := fm.findVFB(fm.displayAddr); fb != nil {
		return &fb.info
	}
	return nil
}

// GetFramebufferList implements render.FramebufferManager.
func (fm *FramebufferManager) GetFramebufferList() []render.FramebufferInfo {
	list := make([]render.FramebufferInfo, len(fm.vfbs))
	for i, fb := range fm.vfbs {
		list[i] = fb.info
	}
	return list
}

// Resized implements render.FramebufferManager. The new dimensions arrive
// with the next InitClear.
func (fm *FramebufferManager) Resized() {
	fm.current = nil
}

// GetCurrentFramebuffer implements render.FramebufferManager.
func (fm *FramebufferManager) GetCurrentFramebuffer() ([]uint8, bool) {
	if fm.current == nil {
		return nil, false
	}
	w := fm.current.info.Width
	h := fm.current.info.Height
	pixels := make([]uint8, w*h*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fm.current.fbo)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, fm.current.fbo)
	return pixels, true
}

// GetCurrentDepthbuffer implements render.FramebufferManager.
func (fm *FramebufferManager) GetCurrentDepthbuffer() ([]uint8, bool) {
	if fm.current == nil {
		return nil, false
	}
	w := fm.current.info.Width
	h := fm.current.info.Height
	depth := make([]float32, w*h)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fm.current.fbo)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(depth))
	gl.BindFramebuffer(gl.FRAMEBUFFER, fm.current.fbo)

	pixels := make([]uint8, w*h*2)
	for i, d := range depth {
		v := uint16(d * 65535.0)
		pixels[i*2] = uint8(v)
		pixels[i*2+1] = uint8(v >> 8)
	}
	return pixels, true
}

// GetCurrentStencilbuffer implements render.FramebufferManager.
func (fm *FramebufferManager) GetCurrentStencilbuffer() ([]uint8, bool) {
	if fm.current == nil {
		return nil, false
	}
	w := fm.current.info.Width
	h := fm.current.info.Height
	pixels := make([]uint8, w*h)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fm.current.fbo)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.STENCIL_INDEX, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.FRAMEBUFFER, fm.current.fbo)
	return pixels, true
}
