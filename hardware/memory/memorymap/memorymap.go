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

// Package memorymap describes the guest address space as seen by the
// graphics engine. Addresses arriving over the command stream may carry
// cache-control and kernel bits in the top byte. MapAddress() strips those
// bits and identifies the memory area the address falls within.
package memorymap

// Area represents the different areas of guest memory.
type Area int

func (a Area) String() string {
	switch a {
	case Scratch:
		return "Scratch"
	case VRAM:
		return "VRAM"
	case RAM:
		return "RAM"
	}

	return "undefined"
}

// The different memory areas visible to the graphics engine.
const (
	Undefined Area = iota
	Scratch
	VRAM
	RAM
)

// The origin and memory top for each area of memory. Checking which area an
// address falls within and forcing the address into the normalised range is
// all handled by the MapAddress() function.
//
// Implementations of the different memory areas may need to drag the address
// down into the range of an array. This can be done with (address^origin)
// rather than subtraction.
const (
	OriginScratch = uint32(0x00010000)
	MemtopScratch = uint32(0x00013fff)
	OriginVRAM    = uint32(0x04000000)
	MemtopVRAM    = uint32(0x041fffff)
	OriginRAM     = uint32(0x08000000)
	MemtopRAM     = uint32(0x09ffffff)
)

// AddressMask removes the cache-control and kernel bits from the top of an
// address. Two addresses that differ only in those bits refer to the same
// physical location.
const AddressMask = uint32(0x3fffffff)

// VRAM is mirrored throughout the 0x04000000 block. VRAMBits identifies the
// bits in an address that index into the real video memory.
const VRAMBits = OriginVRAM ^ MemtopVRAM

// MapAddress translates the address argument from mirror space to primary
// space. Generally, an address should be passed through this function before
// accessing memory.
func MapAddress(address uint32) (uint32, Area) {
	address &= AddressMask

	// video memory is tested first because it is by far the most common
	// target for the graphics engine
	if address >= OriginVRAM && address < OriginVRAM+0x00800000 {
		return OriginVRAM | (address & VRAMBits), VRAM
	}

	if address >= OriginRAM && address <= MemtopRAM {
		return address, RAM
	}

	if address >= OriginScratch && address <= MemtopScratch {
		return address, Scratch
	}

	return address, Undefined
}
