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
	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/hardware/memory/memorymap"
	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/render/headless"
)

// harness bundles a GPU with guest memory and the recording renderer.
type harness struct {
	mem *memory.Mem
	rnd *headless.Renderer
	gpu *ge.GPU
}

func newHarness(cfg ge.Config) *harness {
	mem := memory.NewMem()
	rnd := headless.NewRenderer()
	return &harness{
		mem: mem,
		rnd: rnd,
		gpu: ge.NewGPU(cfg, mem, rnd.Renderer()),
	}
}

// word assembles a command word from a command and a 24 bit payload.
func word(cmd ge.Command, data uint32) uint32 {
	return uint32(cmd)<<24 | data&0x00ffffff
}

// run writes the words at the base of RAM and interprets them as a single
// display list. the returned list carries the end state.
func (h *harness) run(words []uint32) *render.DisplayList {
	return h.runFor(words, int64(len(words)))
}

// runFor is run with an explicit downcount. lists that loop over their own
// words need more iterations than they have words.
func (h *harness) runFor(words []uint32, downcount int64) *render.DisplayList {
	for i, w := range words {
		h.mem.Write32(memorymap.OriginRAM+uint32(i*4), w)
	}

	list := &render.DisplayList{
		PC:        memorymap.OriginRAM,
		Downcount: downcount,
	}
	h.gpu.Run(list)
	return list
}
