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

package memory_test

import (
	"testing"

	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/hardware/memory/memorymap"
	"github.com/hakea/gopherge/test"
)

func TestMapAddress(t *testing.T) {
	var ma uint32
	var area memorymap.Area

	ma, area = memorymap.MapAddress(0x08800000)
	test.Equate(t, ma, 0x08800000)
	test.Equate(t, area.String(), "RAM")

	// cache-control and kernel bits are stripped
	ma, area = memorymap.MapAddress(0x48800000)
	test.Equate(t, ma, 0x08800000)
	test.Equate(t, area.String(), "RAM")

	ma, area = memorymap.MapAddress(0x88800000)
	test.Equate(t, ma, 0x08800000)
	test.Equate(t, area.String(), "RAM")

	// VRAM mirrors fold into the primary block
	ma, area = memorymap.MapAddress(0x04200000)
	test.Equate(t, ma, 0x04000000)
	test.Equate(t, area.String(), "VRAM")

	ma, area = memorymap.MapAddress(0x04601234)
	test.Equate(t, ma, 0x04001234)
	test.Equate(t, area.String(), "VRAM")

	ma, area = memorymap.MapAddress(0x00010000)
	test.Equate(t, ma, 0x00010000)
	test.Equate(t, area.String(), "Scratch")

	_, area = memorymap.MapAddress(0x00000000)
	test.Equate(t, area.String(), "undefined")

	_, area = memorymap.MapAddress(0x0a000000)
	test.Equate(t, area.String(), "undefined")
}

func TestValid(t *testing.T) {
	mem := memory.NewMem()

	test.Equate(t, mem.Valid(0x08000000), true)
	test.Equate(t, mem.Valid(0x09ffffff), true)
	test.Equate(t, mem.Valid(0x0a000000), false)
	test.Equate(t, mem.Valid(0x04000000), true)
	test.Equate(t, mem.Valid(0x00010000), true)
	test.Equate(t, mem.Valid(0x00014000), false)

	test.Equate(t, mem.ValidRange(0x08000000, 0x100), true)
	test.Equate(t, mem.ValidRange(0x09ffff00, 0x100), true)
	test.Equate(t, mem.ValidRange(0x09ffff00, 0x101), false)
}

func TestReadWrite(t *testing.T) {
	mem := memory.NewMem()

	mem.Write32(0x08000010, 0xdeadbeef)
	test.Equate(t, mem.Read32(0x08000010), 0xdeadbeef)

	// little-endian byte order in the backing array
	test.Equate(t, mem.RAM[0x10], 0xef)
	test.Equate(t, mem.RAM[0x13], 0xde)

	// mirrored address reaches the same word
	test.Equate(t, mem.Read32(0x48000010), 0xdeadbeef)

	// slices alias the backing array
	s, err := mem.Slice(0x04000000, 4)
	test.DemandSuccess(t, err)
	s[0] = 0xff
	test.Equate(t, mem.VRAM[0], 0xff)

	_, err = mem.Slice(0x0a000000, 4)
	test.DemandFailure(t, err)
}
