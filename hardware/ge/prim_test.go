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

// u16 texture coordinates and float positions. four bytes of coordinate,
// twelve bytes of position, sixteen per vertex
const testVType = uint32(0x182)

// primWord assembles a PRIM payload from a primitive type and a vertex
// count.
func primWord(prim render.PrimitiveType, count int) uint32 {
	return word(ge.CmdPrim, uint32(prim)<<16|uint32(count))
}

func TestPrimSubmission(t *testing.T) {
	h := newHarness(ge.Config{})

	h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		primWord(render.PrimTriangles, 3),
	})

	test.Equate(t, h.rnd.Trace.Count("SubmitPrim"), 1)
	test.Equate(t, h.rnd.Trace.Count("SetRenderFrameBuffer"), 1)

	c := h.rnd.Trace.Last("SubmitPrim")
	test.Equate(t, int(c.Args[0].(render.PrimitiveType)), int(render.PrimTriangles))
	test.Equate(t, c.Args[1].(int), 3)
	test.Equate(t, uint32(c.Args[2].(render.VertexType)), testVType)

	st := h.gpu.Stats()
	test.Equate(t, st.DrawCalls, 1)

	// one cycle per vertex from the headless cost model
	test.Equate(t, int(h.gpu.CyclesExecuted()), 3)

	// the vertex address advances past the consumed data
	test.Equate(t, h.gpu.VertexAddr(), uint32(0x08010000+3*16))
}

func TestPrimZeroCount(t *testing.T) {
	h := newHarness(ge.Config{})

	h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		primWord(render.PrimTriangles, 0),
	})

	test.Equate(t, h.rnd.Trace.Count("SubmitPrim"), 0)
	test.Equate(t, h.rnd.Trace.Count("SetRenderFrameBuffer"), 0)
	test.Equate(t, h.gpu.Stats().DrawCalls, 0)
}

func TestPrimBadVertexAddress(t *testing.T) {
	h := newHarness(ge.Config{})

	// the vertex address resolves to zero which is not mapped. the draw
	// is dropped but the render target is still bound
	h.run([]uint32{
		word(ge.CmdVAddr, 0x000000),
		word(ge.CmdVertexType, testVType),
		primWord(render.PrimTriangles, 3),
	})

	test.Equate(t, h.rnd.Trace.Count("SubmitPrim"), 0)
	test.Equate(t, h.rnd.Trace.Count("SetRenderFrameBuffer"), 1)
	test.Equate(t, h.gpu.Stats().DrawCalls, 0)
}

func TestPrimAntiAliasedLines(t *testing.T) {
	h := newHarness(ge.Config{})

	h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		word(ge.CmdAntiAliasEnable, 1),
		primWord(render.PrimLineStrip, 2),
		primWord(render.PrimTriangles, 3),
	})

	// the line strip is discarded, the triangles are not
	test.Equate(t, h.rnd.Trace.Count("SubmitPrim"), 1)
	c := h.rnd.Trace.Last("SubmitPrim")
	test.Equate(t, int(c.Args[0].(render.PrimitiveType)), int(render.PrimTriangles))
}

func TestBoundingBoxReset(t *testing.T) {
	h := newHarness(ge.Config{})

	list := h.run([]uint32{
		word(ge.CmdBoundingBox, 0),
	})

	test.Equate(t, list.BBoxResult, true)
	test.Equate(t, h.rnd.Trace.Count("TestBoundingBox"), 0)
}

func TestBoundingBoxMalformed(t *testing.T) {
	h := newHarness(ge.Config{})

	// a count that is not a multiple of eight assumes visibility
	list := h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		word(ge.CmdBoundingBox, 7),
	})

	test.Equate(t, list.BBoxResult, true)
	test.Equate(t, h.rnd.Trace.Count("TestBoundingBox"), 0)
}

func TestBoundingBoxConditionalJump(t *testing.T) {
	h := newHarness(ge.Config{})
	h.rnd.Draw.BBoxVerdicts = []bool{false}

	// the box fails the test so the conditional jump skips the state
	// change before the end command
	list := h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		word(ge.CmdBoundingBox, 8),
		word(ge.CmdBJump, 24),
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, h.rnd.Trace.Count("TestBoundingBox"), 1)
	c := h.rnd.Trace.Last("TestBoundingBox")
	test.Equate(t, c.Args[0].(int), 8)

	test.Equate(t, list.BBoxResult, false)
	test.Equate(t, list.Ended, true)
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), uint32(0))
}

func TestBoundingBoxVisibleNoJump(t *testing.T) {
	h := newHarness(ge.Config{})

	// no prepared verdicts, every test reports visible. the jump is not
	// taken and the state change lands
	list := h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdVAddr, 0x010000),
		word(ge.CmdVertexType, testVType),
		word(ge.CmdBoundingBox, 8),
		word(ge.CmdBJump, 24),
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, list.BBoxResult, true)
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x112233))
}
