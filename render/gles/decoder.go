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

package gles

import (
	"math"

	"github.com/hakea/gopherge/render"
)

// decodedVertex is one guest vertex after format decode, morph blending and
// skinning.
type decodedVertex struct {
	pos    [3]float32
	uv     [2]float32
	color  [4]uint8
	normal [3]float32
}

// decoder reads guest vertices of one format. The field offsets follow the
// same packing rules as VertexType.Size.
type decoder struct {
	vt render.VertexType

	stride    int
	frameSize int

	offWeight int
	offTex    int
	offCol    int
	offNrm    int
	offPos    int

	// uv scale applied during decode instead of in the vertex shader
	prescaleUV bool
	uvScale    [4]float32
}

func decAlign(v int, a int) int {
	if a <= 1 {
		return v
	}
	return (v + a - 1) &^ (a - 1)
}

var decSizes = struct {
	wt, tc, nrm, pos [4]int
	col              [8]int
}{
	wt:  [4]int{0, 1, 2, 4},
	tc:  [4]int{0, 2, 4, 8},
	nrm: [4]int{0, 3, 6, 12},
	pos: [4]int{0, 3, 6, 12},
	col: [8]int{0, 0, 0, 0, 2, 2, 2, 4},
}

var decAligns = struct {
	wt, tc, nrm, pos [4]int
	col              [8]int
}{
	wt:  [4]int{0, 1, 2, 4},
	tc:  [4]int{0, 1, 2, 4},
	nrm: [4]int{0, 1, 2, 4},
	pos: [4]int{0, 1, 2, 4},
	col: [8]int{0, 0, 0, 0, 2, 2, 2, 4},
}

// setup computes the field offsets for the vertex format.
func (dec *decoder) setup(vt render.VertexType) {
	dec.vt = vt

	size := 0
	biggest := 1

	if w := vt.Weight(); w != 0 {
		size = decAlign(size, decAligns.wt[w])
		dec.offWeight = size
		size += decSizes.wt[w] * vt.WeightCount()
		if decAligns.wt[w] > biggest {
			biggest = decAligns.wt[w]
		}
	}
	if tc := vt.Tex(); tc != 0 {
		size = decAlign(size, decAligns.tc[tc])
		dec.offTex = size
		size += decSizes.tc[tc]
		if decAligns.tc[tc] > biggest {
			biggest = decAligns.tc[tc]
		}
	}
	if c := vt.Col(); c != 0 {
		size = decAlign(size, decAligns.col[c])
		dec.offCol = size
		size += decSizes.col[c]
		if decAligns.col[c] > biggest {
			biggest = decAligns.col[c]
		}
	}
	if n := vt.Nrm(); n != 0 {
		size = decAlign(size, decAligns.nrm[n])
		dec.offNrm = size
		size += decSizes.nrm[n]
		if decAligns.nrm[n] > biggest {
			biggest = decAligns.nrm[n]
		}
	}
	if p := vt.Pos(); p != 0 {
		size = decAlign(size, decAligns.pos[p])
		dec.offPos = size
		size += decSizes.pos[p]
		if decAligns.pos[p] > biggest {
			biggest = decAligns.pos[p]
		}
	}

	size = decAlign(size, biggest)
	dec.frameSize = size
	dec.stride = size * vt.MorphCount()
}

func readU16(b []uint8) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8
}

func readF32(b []uint8) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

func readS8(b uint8) float32 {
	return float32(int8(b))
}

func readS16(b []uint8) float32 {
	return float32(int16(readU16(b)))
}

// triple reads a 3-component field in the given format.
func triple(b []uint8, format int, scale float32) [3]float32 {
	switch format {
	case 1:
		return [3]float32{readS8(b[0]) * scale, readS8(b[1]) * scale, readS8(b[2]) * scale}
	case 2:
		s := scale * (127.0 / 32767.0)
		return [3]float32{readS16(b) * s, readS16(b[2:]) * s, readS16(b[4:]) * s}
	case 3:
		return [3]float32{readF32(b), readF32(b[4:]), readF32(b[8:])}
	}
	return [3]float32{}
}

// decodeFrame decodes one morph frame of one vertex.
func (dec *decoder) decodeFrame(b []uint8) decodedVertex {
	var v decodedVertex
	vt := dec.vt

	if tc := vt.Tex(); tc != 0 {
		f := b[dec.offTex:]
		if vt.Through() {
			switch tc {
			case 1:
				v.uv = [2]float32{float32(f[0]), float32(f[1])}
			case 2:
				v.uv = [2]float32{float32(readU16(f)), float32(readU16(f[2:]))}
			case 3:
				v.uv = [2]float32{readF32(f), readF32(f[4:])}
			}
		} else {
			switch tc {
			case 1:
				v.uv = [2]float32{float32(f[0]) / 128.0, float32(f[1]) / 128.0}
			case 2:
				v.uv = [2]float32{float32(readU16(f)) / 32768.0, float32(readU16(f[2:])) / 32768.0}
			case 3:
				v.uv = [2]float32{readF32(f), readF32(f[4:])}
			}
		}
	}

	if c := vt.Col(); c != 0 {
		f := b[dec.offCol:]
		var p uint32
		if c == 7 {
			p = uint32(f[0]) | uint32(f[1])<<8 | uint32(f[2])<<16 | uint32(f[3])<<24
		} else {
			// 16-bit colors reuse the framebuffer expansions. format
			// values 4, 5 and 6 map to 565, 5551 and 4444
			p = expandColor16(readU16(f), render.BufferFormat(c-4))
		}
		v.color = [4]uint8{uint8(p), uint8(p >> 8), uint8(p >> 16), uint8(p >> 24)}
	} else {
		v.color = [4]uint8{255, 255, 255, 255}
	}

	if n := vt.Nrm(); n != 0 {
		v.normal = triple(b[dec.offNrm:], n, 1.0/127.0)
	}

	if p := vt.Pos(); p != 0 {
		f := b[dec.offPos:]
		if vt.Through() {
			// through positions are screen coordinates with a 16-bit
			// depth
			switch p {
			case 2:
				v.pos = [3]float32{
					float32(readU16(f)),
					float32(readU16(f[2:])),
					float32(readU16(f[4:])),
				}
			case 3:
				v.pos = [3]float32{readF32(f), readF32(f[4:]), readF32(f[8:])}
			}
		} else {
			v.pos = triple(f, p, 1.0/127.0)
		}
	}

	return v
}

// weights decodes the skinning weights of one vertex.
func (dec *decoder) weights(b []uint8, out []float32) {
	w := dec.vt.Weight()
	f := b[dec.offWeight:]
	for j := 0; j < dec.vt.WeightCount(); j++ {
		switch w {
		case 1:
			out[j] = float32(f[j]) / 128.0
		case 2:
			out[j] = float32(readU16(f[j*2:])) / 32768.0
		case 3:
			out[j] = readF32(f[j*4:])
		}
	}
}

// apply43 transforms a point by a column-major 4x3 matrix.
func apply43(m []float32, p [3]float32, w float32) [3]float32 {
	return [3]float32{
		m[0]*p[0] + m[3]*p[1] + m[6]*p[2] + m[9]*w,
		m[1]*p[0] + m[4]*p[1] + m[7]*p[2] + m[10]*w,
		m[2]*p[0] + m[5]*p[1] + m[8]*p[2] + m[11]*w,
	}
}

// decode produces the fully decoded vertex at index i: morph frames are
// blended and skinning is applied against the bone matrix file.
func (dec *decoder) decode(verts []uint8, i int, s State) decodedVertex {
	base := verts[i*dec.stride:]
	vt := dec.vt

	v := dec.decodeFrame(base)
	if m := vt.MorphCount(); m > 1 {
		w0 := s.MorphWeight(0)
		v.pos[0] *= w0
		v.pos[1] *= w0
		v.pos[2] *= w0
		v.normal[0] *= w0
		v.normal[1] *= w0
		v.normal[2] *= w0
		for k := 1; k < m; k++ {
			f := dec.decodeFrame(base[k*dec.frameSize:])
			wk := s.MorphWeight(k)
			for c := 0; c < 3; c++ {
				v.pos[c] += f.pos[c] * wk
				v.normal[c] += f.normal[c] * wk
			}
		}
	}

	if vt.Skinning() {
		var weights [8]float32
		dec.weights(base, weights[:])
		bones := s.BoneMatrix()

		var pos, nrm [3]float32
		for j := 0; j < vt.WeightCount(); j++ {
			if weights[j] == 0 {
				continue
			}
			m := bones[j*12 : j*12+12]
			bp := apply43(m, v.pos, 1)
			bn := apply43(m, v.normal, 0)
			for c := 0; c < 3; c++ {
				pos[c] += bp[c] * weights[j]
				nrm[c] += bn[c] * weights[j]
			}
		}
		v.pos = pos
		v.normal = nrm
	}

	if dec.prescaleUV && !vt.Through() {
		v.uv[0] = v.uv[0]*dec.uvScale[0] + dec.uvScale[2]
		v.uv[1] = v.uv[1]*dec.uvScale[1] + dec.uvScale[3]
	}

	return v
}

// index returns the i'th entry of the index list.
func index(inds []uint8, vt render.VertexType, i int) int {
	switch vt & render.VTypeIdxMask {
	case render.VTypeIdx8:
		return int(inds[i])
	case render.VTypeIdx16:
		return int(readU16(inds[i*2:]))
	}
	return i
}
