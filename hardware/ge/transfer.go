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
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// blockTransfer performs a rectangular copy between two guest memory
// regions. Both endpoints are validated before any byte moves so a bad
// transfer is skipped entirely rather than partially applied.
func (gpu *GPU) blockTransfer() {
	srcBase := (gpu.mirror[CmdTransferSrc] & 0x00fffff0) | ((gpu.mirror[CmdTransferSrcW] & 0x00ff0000) << 8)
	srcStride := int(gpu.mirror[CmdTransferSrcW] & 0x7f8)
	dstBase := (gpu.mirror[CmdTransferDst] & 0x00fffff0) | ((gpu.mirror[CmdTransferDstW] & 0x00ff0000) << 8)
	dstStride := int(gpu.mirror[CmdTransferDstW] & 0x7f8)

	srcX := int(gpu.mirror[CmdTransferSrcPos] & 0x3ff)
	srcY := int((gpu.mirror[CmdTransferSrcPos] >> 10) & 0x3ff)
	dstX := int(gpu.mirror[CmdTransferDstPos] & 0x3ff)
	dstY := int((gpu.mirror[CmdTransferDstPos] >> 10) & 0x3ff)

	width := int(gpu.mirror[CmdTransferSize]&0x3ff) + 1
	height := int((gpu.mirror[CmdTransferSize]>>10)&0x3ff) + 1

	bpp := 2
	if gpu.mirror[CmdTransferStart]&1 == 1 {
		bpp = 4
	}

	if !gpu.mem.Valid(srcBase) {
		logger.Logf(logger.Allow, "ge", "bad block transfer source %08x", srcBase)
		return
	}
	if !gpu.mem.Valid(dstBase) {
		logger.Logf(logger.Allow, "ge", "bad block transfer destination %08x", dstBase)
		return
	}

	// the last byte of both rectangles must also be in bounds
	srcLast := srcBase + uint32(((height-1+srcY)*srcStride+srcX+width-1)*bpp)
	dstLast := dstBase + uint32(((height-1+dstY)*dstStride+dstX+width-1)*bpp)
	if !gpu.mem.Valid(srcLast) {
		logger.Logf(logger.Allow, "ge", "block transfer source ends out of bounds at %08x", srcLast)
		return
	}
	if !gpu.mem.Valid(dstLast) {
		logger.Logf(logger.Allow, "ge", "block transfer destination ends out of bounds at %08x", dstLast)
		return
	}

	for y := 0; y < height; y++ {
		srcRow := srcBase + uint32(((y+srcY)*srcStride+srcX)*bpp)
		dstRow := dstBase + uint32(((y+dstY)*dstStride+dstX)*bpp)

		src, err := gpu.mem.Slice(srcRow, uint32(width*bpp))
		if err != nil {
			continue
		}
		dst, err := gpu.mem.Slice(dstRow, uint32(width*bpp))
		if err != nil {
			continue
		}
		copy(dst, src)
	}

	// a transfer between two framebuffers can be promoted to a blit
	gpu.rend.Framebuf.NotifyBlockTransfer(dstBase, srcBase)

	gpu.rend.Texture.Invalidate(dstBase+uint32((dstY*dstStride+dstX)*bpp),
		height*dstStride*bpp, render.InvalidateHint)

	// a whole-surface upload from RAM into a VRAM framebuffer, as video
	// playback does, refreshes the framebuffer from memory
	if gpu.mem.InRAM(srcBase) && gpu.mem.InVRAM(dstBase) {
		if dstStride == srcStride && dstY == 0 && dstX == 0 && srcX == 0 && srcY == 0 {
			gpu.rend.Framebuf.UpdateFromMemory(dstBase, (dstY+height)*dstStride*bpp, true)
		}
	}

	// some streams blast video frames straight over the displayed
	// framebuffer instead of drawing them
	backBuffer := gpu.rend.Framebuf.PrevDisplayFramebufAddr()
	displayBuffer := gpu.rend.Framebuf.DisplayFramebufAddr()

	if ((backBuffer != 0 && dstBase == backBuffer) ||
		(displayBuffer != 0 && dstBase == displayBuffer)) &&
		dstStride == 512 && height == 272 {
		if pixels, err := gpu.mem.Window(dstBase); err == nil {
			gpu.rend.Framebuf.DrawPixels(pixels, render.Buffer8888, 512)
		}
	}
}
