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
	"strings"
	"testing"

	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/test"
)

func TestFlagTableComplete(t *testing.T) {
	// table construction logs duplicate and missing entries
	logger.Clear()
	_ = newHarness(ge.Config{})

	b := &strings.Builder{}
	logger.Write(b)
	if strings.Contains(b.String(), "flag table") {
		t.Errorf("flag table construction logged a gap: %s", b.String())
	}
}

func TestPrescaleUVFlags(t *testing.T) {
	h := newHarness(ge.Config{})

	cmds := []ge.Command{ge.CmdTexScaleU, ge.CmdTexScaleV, ge.CmdTexOffsetU, ge.CmdTexOffsetV}
	for _, cmd := range cmds {
		f := h.gpu.CommandFlags(cmd)
		test.Equate(t, int(f&ge.FlagFlushBeforeOnChange) != 0, true)
		test.Equate(t, int(f&ge.FlagExecuteOnChange) != 0, true)
	}

	// with prescaled UVs a scale change only affects the decode of later
	// vertices so queued primitives need not flush
	h = newHarness(ge.Config{PrescaleUV: true})
	for _, cmd := range cmds {
		f := h.gpu.CommandFlags(cmd)
		test.Equate(t, int(f&ge.FlagFlushBeforeOnChange), 0)
		test.Equate(t, int(f&ge.FlagExecuteOnChange) != 0, true)
	}
}

func TestSoftwareSkinningFlags(t *testing.T) {
	h := newHarness(ge.Config{})
	f := h.gpu.CommandFlags(ge.CmdVertexType)
	test.Equate(t, int(f&ge.FlagFlushBeforeOnChange) != 0, true)

	// the execute handler flushes with the previous format restored
	// instead, so the loop's own flush is suppressed
	h = newHarness(ge.Config{SoftwareSkinning: true})
	f = h.gpu.CommandFlags(ge.CmdVertexType)
	test.Equate(t, int(f&ge.FlagFlushBeforeOnChange), 0)
	test.Equate(t, int(f&ge.FlagExecuteOnChange) != 0, true)
}

func TestVertexTypeSoftwareSkinningFlush(t *testing.T) {
	h := newHarness(ge.Config{SoftwareSkinning: true})

	// a format change still flushes, from the execute handler rather
	// than the loop
	h.run([]uint32{word(ge.CmdVertexType, 0x182)})
	test.Equate(t, h.rnd.Trace.Count("Flush"), 1)

	// a change confined to the weight count field does not
	h.rnd.Trace.Reset()
	h.run([]uint32{word(ge.CmdVertexType, 0x182|1<<14)})
	test.Equate(t, h.rnd.Trace.Count("Flush"), 0)

	// and neither does a redundant write
	h.run([]uint32{word(ge.CmdVertexType, 0x182|1<<14)})
	test.Equate(t, h.rnd.Trace.Count("Flush"), 0)
}
