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

// UniformGroup is a bit-set naming bundles of shader constants. The core
// marks groups dirty as register writes land; the shader manager re-uploads
// only the dirty groups before the next draw.
type UniformGroup uint32

// The closed set of uniform groups.
const (
	UniformFogColor UniformGroup = 1 << iota
	UniformFogCoef
	UniformUVScaleOffset
	UniformAmbient
	UniformMatDiffuse
	UniformMatEmissive
	UniformMatAmbientAlpha
	UniformMatSpecular
	UniformLight0
	UniformLight1
	UniformLight2
	UniformLight3
	UniformWorldMatrix
	UniformViewMatrix
	UniformProjMatrix
	UniformTexMatrix
	UniformBoneMatrix0
	UniformBoneMatrix1
	UniformBoneMatrix2
	UniformBoneMatrix3
	UniformBoneMatrix4
	UniformBoneMatrix5
	UniformBoneMatrix6
	UniformBoneMatrix7
	UniformColorMask
	UniformAlphaColorRef
	UniformTexEnv
	UniformStencilReplace
)

// UniformAll is the union of every uniform group.
const UniformAll = UniformGroup(1)<<28 - 1
