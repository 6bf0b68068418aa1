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

package ge

import (
	"math"

	"github.com/hakea/gopherge/render"
)

// The matrix upload machines. Each matrix file is loaded by writing an
// index to the NUMBER register and then streaming values through the DATA
// register, which auto-increments the index. The index lives in the low
// bits of the NUMBER register's mirror word so it survives save states for
// free.
//
// A data write that does not change the stored value must not flush. Games
// re-upload identical matrices constantly and the redundant writes would
// otherwise break every draw batch.

// opMatrixData is the shared DATA handler for the world, view, projection
// and texgen machines. mask extracts the index from the NUMBER mirror.
func (gpu *GPU) opMatrixData(matrix []float32, number Command, mask uint32, data uint32, uniform render.UniformGroup) {
	num := gpu.mirror[number] & mask
	newVal := data << 8
	if num < uint32(len(matrix)) && newVal != math.Float32bits(matrix[num]) {
		gpu.flushDraw()
		matrix[num] = math.Float32frombits(newVal)
		gpu.rend.Shader.DirtyUniform(uniform)
	}
	num++
	gpu.mirror[number] = uint32(number)<<24 | (num & mask)
}

// opBoneMatrixData is the DATA handler for the bone matrix machine. With
// software skinning the bone matrices are baked into the vertices at decode
// time, so a change neither flushes nor dirties a uniform.
func (gpu *GPU) opBoneMatrixData(data uint32) {
	num := gpu.mirror[CmdBoneMatrixNumber] & 0x7f
	newVal := data << 8
	if num < boneMatrixSize && newVal != math.Float32bits(gpu.boneMatrix[num]) {
		if !gpu.cfg.SoftwareSkinning {
			gpu.flushDraw()
			gpu.rend.Shader.DirtyUniform(render.UniformBoneMatrix0 << uint(num/12))
		}
		gpu.boneMatrix[num] = math.Float32frombits(newVal)
	}
	num++
	gpu.mirror[CmdBoneMatrixNumber] = uint32(CmdBoneMatrixNumber)<<24 | (num & 0x7f)
}
