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

package memory

import (
	"encoding/binary"

	"github.com/hakea/gopherge/curated"
	"github.com/hakea/gopherge/hardware/memory/memorymap"
)

// sentinel errors returned by the memory package.
const (
	AddressError = "memory: not a valid address (%08x)"
	RangeError   = "memory: range not contained in one area (%08x, %d bytes)"
)

// Mem is the guest memory visible to the graphics engine.
type Mem struct {
	Scratch []uint8
	VRAM    []uint8
	RAM     []uint8
}

// NewMem is the preferred method of initialisation for the Mem type.
func NewMem() *Mem {
	return &Mem{
		Scratch: make([]uint8, memorymap.MemtopScratch-memorymap.OriginScratch+1),
		VRAM:    make([]uint8, memorymap.MemtopVRAM-memorymap.OriginVRAM+1),
		RAM:     make([]uint8, memorymap.MemtopRAM-memorymap.OriginRAM+1),
	}
}

// Reset all memory areas to zero.
func (mem *Mem) Reset() {
	for i := range mem.Scratch {
		mem.Scratch[i] = 0
	}
	for i := range mem.VRAM {
		mem.VRAM[i] = 0
	}
	for i := range mem.RAM {
		mem.RAM[i] = 0
	}
}

// Valid returns true if the address falls within a backed memory area.
func (mem *Mem) Valid(address uint32) bool {
	_, area := memorymap.MapAddress(address)
	return area != memorymap.Undefined
}

// ValidRange returns true if every address from address to address+length-1
// falls within a single backed memory area.
func (mem *Mem) ValidRange(address uint32, length uint32) bool {
	if length == 0 {
		return mem.Valid(address)
	}
	ma, area := memorymap.MapAddress(address)
	if area == memorymap.Undefined {
		return false
	}
	mb, areb := memorymap.MapAddress(address + length - 1)
	return area == areb && mb >= ma
}

// InVRAM returns true if the address falls within video memory.
func (mem *Mem) InVRAM(address uint32) bool {
	_, area := memorymap.MapAddress(address)
	return area == memorymap.VRAM
}

// InRAM returns true if the address falls within main RAM.
func (mem *Mem) InRAM(address uint32) bool {
	_, area := memorymap.MapAddress(address)
	return area == memorymap.RAM
}

// area returns the backing array and the origin of the area the address
// falls within.
func (mem *Mem) area(address uint32) ([]uint8, uint32) {
	ma, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.Scratch:
		return mem.Scratch, ma ^ memorymap.OriginScratch
	case memorymap.VRAM:
		return mem.VRAM, ma ^ memorymap.OriginVRAM
	case memorymap.RAM:
		return mem.RAM, ma ^ memorymap.OriginRAM
	}
	return nil, 0
}

// Slice returns a window onto the memory area containing the address. The
// returned slice aliases the backing array so writes through it are writes
// to guest memory.
func (mem *Mem) Slice(address uint32, length uint32) ([]uint8, error) {
	a, idx := mem.area(address)
	if a == nil {
		return nil, curated.Errorf(AddressError, address)
	}
	if idx+length > uint32(len(a)) {
		return nil, curated.Errorf(RangeError, address, length)
	}
	return a[idx : idx+length], nil
}

// Window returns a slice from the address to the end of the containing
// memory area. Used where the consumer decides how many bytes it needs, as
// the draw engine does when decoding vertices.
func (mem *Mem) Window(address uint32) ([]uint8, error) {
	a, idx := mem.area(address)
	if a == nil {
		return nil, curated.Errorf(AddressError, address)
	}
	return a[idx:], nil
}

// Read32 returns the 32bit little-endian word at the address. The address
// must be word aligned and valid. Used by the command stream loop where the
// address has already been validated, so an invalid address returns zero
// rather than an error.
func (mem *Mem) Read32(address uint32) uint32 {
	a, idx := mem.area(address)
	if a == nil || idx+4 > uint32(len(a)) {
		return 0
	}
	return binary.LittleEndian.Uint32(a[idx:])
}

// Write32 writes the 32bit little-endian word to the address. Invalid
// addresses are ignored.
func (mem *Mem) Write32(address uint32, data uint32) {
	a, idx := mem.area(address)
	if a == nil || idx+4 > uint32(len(a)) {
		return
	}
	binary.LittleEndian.PutUint32(a[idx:], data)
}
