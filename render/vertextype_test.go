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

package render_test

import (
	"testing"

	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/test"
)

func TestVertexTypeFields(t *testing.T) {
	// float position, float normal, 8888 color, float tc
	vt := render.VertexType(0x3<<7 | 0x3<<5 | 0x7<<2 | 0x3)
	test.Equate(t, vt.Pos(), 3)
	test.Equate(t, vt.Nrm(), 3)
	test.Equate(t, vt.Col(), 7)
	test.Equate(t, vt.Tex(), 3)
	test.Equate(t, vt.Indexed(), false)
	test.Equate(t, vt.Skinning(), false)
	test.Equate(t, vt.MorphCount(), 1)
	test.Equate(t, vt.Through(), false)

	vt = render.VertexType(0x2 << 11)
	test.Equate(t, vt.Indexed(), true)
	test.Equate(t, vt.IndexSize(), 2)

	vt = render.VertexType(0x1<<9 | 0x7<<14)
	test.Equate(t, vt.Skinning(), true)
	test.Equate(t, vt.WeightCount(), 8)

	vt = render.VertexType(0x1 << 23)
	test.Equate(t, vt.Through(), true)
}

func TestVertexTypeSize(t *testing.T) {
	// float position only
	vt := render.VertexType(0x3 << 7)
	test.Equate(t, vt.Size(), 12)

	// s8 position only
	vt = render.VertexType(0x1 << 7)
	test.Equate(t, vt.Size(), 3)

	// s16 position only
	vt = render.VertexType(0x2 << 7)
	test.Equate(t, vt.Size(), 6)

	// u8 tc + s16 position. tc at 0, pos aligned to 2 at offset 2, vertex
	// aligned to 2
	vt = render.VertexType(0x2<<7 | 0x1)
	test.Equate(t, vt.Size(), 8)

	// float tc + 8888 color + float normal + float position
	vt = render.VertexType(0x3<<7 | 0x3<<5 | 0x7<<2 | 0x3)
	test.Equate(t, vt.Size(), 36)

	// u16 tc + 5650 color + s16 position. 4 + 2 + 6 = 12, all 2-aligned
	vt = render.VertexType(0x2<<7 | 0x4<<2 | 0x2)
	test.Equate(t, vt.Size(), 12)

	// one u8 weight + float position. weight at 0, pos aligned to 4
	vt = render.VertexType(0x3<<7 | 0x1<<9)
	test.Equate(t, vt.Size(), 16)

	// two morph frames double the stride
	vt = render.VertexType(0x3<<7 | 0x1<<18)
	test.Equate(t, vt.Size(), 24)

	// index format does not contribute to vertex size
	vt = render.VertexType(0x3<<7 | 0x2<<11)
	test.Equate(t, vt.Size(), 12)
}
