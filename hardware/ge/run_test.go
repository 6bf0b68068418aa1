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

func TestMirrorCoherence(t *testing.T) {
	h := newHarness(ge.Config{})

	words := []uint32{
		word(ge.CmdScissor1, 0x000000),
		word(ge.CmdScissor2, 0x043cef),
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdZBufPtr, 0x088000),
		word(ge.CmdNop, 0x000000),
	}
	h.run(words)

	// every processed word lands in the mirror whole, flags or no flags
	test.Equate(t, h.gpu.Mirror(ge.CmdScissor1), word(ge.CmdScissor1, 0x000000))
	test.Equate(t, h.gpu.Mirror(ge.CmdScissor2), word(ge.CmdScissor2, 0x043cef))
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x112233))
	test.Equate(t, h.gpu.Mirror(ge.CmdZBufPtr), word(ge.CmdZBufPtr, 0x088000))
	test.Equate(t, h.gpu.Mirror(ge.CmdNop), word(ge.CmdNop, 0x000000))

	st := h.gpu.Stats()
	test.Equate(t, int(st.CommandsInterpreted), len(words))
}

func TestRedundantWriteElision(t *testing.T) {
	h := newHarness(ge.Config{})

	// the first write differs from the zeroed mirror so it flushes and
	// dirties like any other change
	h.run([]uint32{word(ge.CmdFogColor, 0x112233)})
	test.Equate(t, h.rnd.Trace.Count("Flush"), 1)
	test.Equate(t, h.rnd.Trace.Count("DirtyUniform"), 1)

	// with the value in the mirror, a re-write of the same value must
	// not flush and must not dirty. only the final change does
	h.rnd.Trace.Reset()
	h.run([]uint32{
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdFogColor, 0x445566),
	})
	test.Equate(t, h.rnd.Trace.Count("Flush"), 1)
	test.Equate(t, h.rnd.Trace.Count("DirtyUniform"), 1)
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x445566))

	test.Equate(t, int(h.rnd.Shader.Dirtied&render.UniformFogColor) != 0, true)
}

func TestJump(t *testing.T) {
	h := newHarness(ge.Config{})

	list := h.run([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdJump, 16), // to the end command
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdFogColor, 0x445566),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, list.Ended, true)
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), uint32(0))
}

func TestCallRet(t *testing.T) {
	h := newHarness(ge.Config{})

	list := h.runFor([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdCall, 20), // to the subroutine
		word(ge.CmdTexEnvColor, 0x123456),
		word(ge.CmdEnd, 0),
		word(ge.CmdNop, 0),
		word(ge.CmdFogColor, 0x445566),
		word(ge.CmdRet, 0),
	}, 7)

	// the subroutine ran and control returned to the word after the call
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x445566))
	test.Equate(t, h.gpu.Mirror(ge.CmdTexEnvColor), word(ge.CmdTexEnvColor, 0x123456))
	test.Equate(t, list.Ended, true)
	test.Equate(t, list.StackPtr, 0)
}

func TestCallStackOverflow(t *testing.T) {
	h := newHarness(ge.Config{})

	// the call targets itself. once the stack is full the call is
	// dropped and the list falls through to the end command
	list := h.runFor([]uint32{
		word(ge.CmdBase, 0x080000),
		word(ge.CmdCall, 4),
		word(ge.CmdEnd, 0),
	}, 16)

	test.Equate(t, list.StackPtr, render.CallStackDepth)
	test.Equate(t, list.Ended, true)
}

func TestRetEmptyStack(t *testing.T) {
	h := newHarness(ge.Config{})

	// a return with nothing to return to is dropped
	list := h.run([]uint32{
		word(ge.CmdRet, 0),
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x112233))
	test.Equate(t, list.Ended, true)
	test.Equate(t, list.StackPtr, 0)
}

func TestEndSignal(t *testing.T) {
	h := newHarness(ge.Config{})

	list := h.run([]uint32{
		word(ge.CmdSignal, 0xabcdef),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, list.Ended, true)
	test.Equate(t, list.Signal, 0xabcdef)
	test.Equate(t, list.Finish, uint32(0))
	test.Equate(t, int(list.Downcount), 0)
}

func TestEndFinish(t *testing.T) {
	h := newHarness(ge.Config{})

	list := h.run([]uint32{
		word(ge.CmdFinish, 0x123456),
		word(ge.CmdEnd, 0),
	})

	test.Equate(t, list.Ended, true)
	test.Equate(t, list.Finish, 0x123456)
	test.Equate(t, list.Signal, uint32(0))
}

func TestDowncountStopsList(t *testing.T) {
	h := newHarness(ge.Config{})

	// only the first two words are within the downcount
	list := h.runFor([]uint32{
		word(ge.CmdFogColor, 0x112233),
		word(ge.CmdTexEnvColor, 0x123456),
		word(ge.CmdFogColor, 0x445566),
	}, 2)

	test.Equate(t, list.Ended, false)
	test.Equate(t, h.gpu.Mirror(ge.CmdFogColor), word(ge.CmdFogColor, 0x112233))
	test.Equate(t, h.gpu.Mirror(ge.CmdTexEnvColor), word(ge.CmdTexEnvColor, 0x123456))
}
