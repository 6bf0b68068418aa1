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

package ge_test

import (
	"testing"

	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/test"
)

func TestBlockTransfer(t *testing.T) {
	h := newHarness(ge.Config{})

	// a full 480x272 32bpp frame from RAM into the displayed framebuffer
	const src = uint32(0x08010000)
	const dst = uint32(0x04000000)
	const lastPixel = uint32((271*512 + 479) * 4)

	h.mem.Write32(src, 0xdeadbeef)
	h.mem.Write32(src+lastPixel, 0xcafef00d)

	h.gpu.SetDisplayFramebuffer(dst, 512, render.Buffer8888)
	h.rnd.Trace.Reset()

	h.run([]uint32{
		word(ge.CmdTransferSrc, 0x010000),
		word(ge.CmdTransferSrcW, 0x080200),
		word(ge.CmdTransferDst, 0x000000),
		word(ge.CmdTransferDstW, 0x040200),
		word(ge.CmdTransferSrcPos, 0),
		word(ge.CmdTransferDstPos, 0),
		word(ge.CmdTransferSize, 271<<10|479),
		word(ge.CmdTransferStart, 1),
	})

	test.Equate(t, h.mem.Read32(dst), 0xdeadbeef)
	test.Equate(t, h.mem.Read32(dst+lastPixel), 0xcafef00d)

	c := h.rnd.Trace.Last("NotifyBlockTransfer")
	test.Equate(t, c != nil, true)
	test.Equate(t, c.Args[0].(uint32), dst)
	test.Equate(t, c.Args[1].(uint32), src)

	// a whole-surface upload from RAM refreshes the framebuffer
	test.Equate(t, h.rnd.Trace.Count("UpdateFromMemory"), 1)

	// the destination may hold a texture
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 1)

	// the destination is the displayed framebuffer at video dimensions
	// so the pixels are pushed straight to the display
	test.Equate(t, h.rnd.Trace.Count("DrawPixels"), 1)
	c = h.rnd.Trace.Last("DrawPixels")
	test.Equate(t, int(c.Args[0].(render.BufferFormat)), int(render.Buffer8888))
	test.Equate(t, c.Args[1].(int), 512)
}

func TestBlockTransferOutOfBounds(t *testing.T) {
	h := newHarness(ge.Config{})

	// the destination rectangle runs off the top of RAM. nothing at all
	// must be copied
	const src = uint32(0x08010000)
	const dst = uint32(0x09fffff0)

	h.mem.Write32(src, 0xdeadbeef)
	h.mem.Write32(dst, 0x12345678)

	h.run([]uint32{
		word(ge.CmdTransferSrc, 0x010000),
		word(ge.CmdTransferSrcW, 0x080200),
		word(ge.CmdTransferDst, 0xfffff0),
		word(ge.CmdTransferDstW, 0x090000),
		word(ge.CmdTransferSrcPos, 0),
		word(ge.CmdTransferDstPos, 0),
		word(ge.CmdTransferSize, 63), // 64x1 pixels
		word(ge.CmdTransferStart, 1),
	})

	test.Equate(t, h.mem.Read32(dst), 0x12345678)
	test.Equate(t, h.rnd.Trace.Count("NotifyBlockTransfer"), 0)
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 0)
}
