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

package render

// PrimitiveType identifies the shape a primitive command assembles from its
// vertices. The numbering is that of the hardware's primitive command
// payload.
type PrimitiveType int

// The primitive types recognized by the hardware.
const (
	PrimPoints PrimitiveType = iota
	PrimLines
	PrimLineStrip
	PrimTriangles
	PrimTriangleStrip
	PrimTriangleFan
	PrimRectangles
)

func (p PrimitiveType) String() string {
	switch p {
	case PrimPoints:
		return "points"
	case PrimLines:
		return "lines"
	case PrimLineStrip:
		return "line strip"
	case PrimTriangles:
		return "triangles"
	case PrimTriangleStrip:
		return "triangle strip"
	case PrimTriangleFan:
		return "triangle fan"
	case PrimRectangles:
		return "rectangles"
	}
	return "undefined"
}

// PatchPrimType identifies how a tessellated patch is realized.
type PatchPrimType int

// The patch primitive types. Only triangles are supported by the draw
// engine; the others are logged and dropped.
const (
	PatchPrimTriangles PatchPrimType = iota
	PatchPrimLines
	PatchPrimPoints
)

func (p PatchPrimType) String() string {
	switch p {
	case PatchPrimTriangles:
		return "triangles"
	case PatchPrimLines:
		return "lines"
	case PatchPrimPoints:
		return "points"
	}
	return "undefined"
}

// BufferFormat identifies the pixel format of a guest framebuffer or of
// pixel data being uploaded to one.
type BufferFormat int

// The framebuffer pixel formats.
const (
	Buffer565 BufferFormat = iota
	Buffer5551
	Buffer4444
	Buffer8888
)

func (f BufferFormat) String() string {
	switch f {
	case Buffer565:
		return "565"
	case Buffer5551:
		return "5551"
	case Buffer4444:
		return "4444"
	case Buffer8888:
		return "8888"
	}
	return "undefined"
}

// BytesPerPixel returns the storage size of one pixel in the format.
func (f BufferFormat) BytesPerPixel() int {
	if f == Buffer8888 {
		return 4
	}
	return 2
}

// InvalidationKind describes how aggressively the texture cache should
// treat an invalidated range.
type InvalidationKind int

// The invalidation kinds. Hint and Safe mark entries for re-hashing before
// their next use, Force reloads them without checking, All applies to the
// whole cache. The core also passes Safe on to the framebuffer re-read as
// its safe flag.
const (
	InvalidateHint InvalidationKind = iota
	InvalidateSafe
	InvalidateForce
	InvalidateAll
)

func (k InvalidationKind) String() string {
	switch k {
	case InvalidateHint:
		return "hint"
	case InvalidateSafe:
		return "safe"
	case InvalidateForce:
		return "force"
	case InvalidateAll:
		return "all"
	}
	return "undefined"
}
