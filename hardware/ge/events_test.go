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

func TestEventsImmediate(t *testing.T) {
	// without a separate CPU thread every event runs on the calling
	// goroutine
	h := newHarness(ge.Config{OutputWidth: 960, OutputHeight: 544})

	h.gpu.InitClear()
	test.Equate(t, h.rnd.Trace.Count("InitClear"), 1)
	c := h.rnd.Trace.Last("InitClear")
	test.Equate(t, c.Args[0].(bool), false)
	test.Equate(t, c.Args[1].(int), 960)
	test.Equate(t, c.Args[2].(int), 544)

	h.gpu.BeginFrame()
	test.Equate(t, h.rnd.Trace.Count("StartFrame"), 1)
	test.Equate(t, h.rnd.Trace.Count("BeginFrame"), 1)
	test.Equate(t, int(h.rnd.Shader.Dirtied), int(render.UniformAll))

	h.gpu.CopyDisplayToOutput()
	test.Equate(t, h.rnd.Trace.Count("Flush"), 1)
	test.Equate(t, h.rnd.Trace.Count("CopyDisplayToOutput"), 1)
	test.Equate(t, h.rnd.Trace.Count("EndFrame"), 1)
}

func TestEventsDeferred(t *testing.T) {
	// with a separate CPU thread events queue until the render thread
	// drains them
	h := newHarness(ge.Config{SeparateCPUThread: true})

	h.gpu.InvalidateCache(0x04000000, 0x1000, render.InvalidateSafe)
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 0)

	h.gpu.ProcessEvents()
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 1)
	c := h.rnd.Trace.Last("Invalidate")
	test.Equate(t, c.Args[0].(uint32), 0x04000000)
	test.Equate(t, c.Args[1].(int), 0x1000)

	// a safe invalidation re-reads the range into the framebuffer
	test.Equate(t, h.rnd.Trace.Count("UpdateFromMemory"), 1)
}

func TestInvalidateCacheAll(t *testing.T) {
	h := newHarness(ge.Config{})

	// a non-positive size invalidates the whole cache and the
	// InvalidateAll kind skips the framebuffer re-read
	h.gpu.InvalidateCache(0, 0, render.InvalidateAll)
	test.Equate(t, h.rnd.Trace.Count("InvalidateAll"), 1)
	test.Equate(t, h.rnd.Trace.Count("UpdateFromMemory"), 0)
}

func TestUpdateMemoryReadback(t *testing.T) {
	h := newHarness(ge.Config{})

	// a VRAM to RAM copy outside the GE is tracked as a framebuffer
	// readback
	h.gpu.UpdateMemory(0x08010000, 0x04000000, 0x1000)
	test.Equate(t, h.rnd.Trace.Count("NotifyFramebufferCopy"), 1)
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 1)

	h.rnd.Trace.Reset()

	// a RAM to RAM copy is not
	h.gpu.UpdateMemory(0x08020000, 0x08010000, 0x1000)
	test.Equate(t, h.rnd.Trace.Count("NotifyFramebufferCopy"), 0)
	test.Equate(t, h.rnd.Trace.Count("Invalidate"), 1)
}
