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
	"math"
	"testing"

	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/test"
)

// worldUpload builds a full world matrix upload. values are the top 24 bits
// of the float32 representation.
func worldUpload(values []uint32) []uint32 {
	words := []uint32{word(ge.CmdWorldMatrixNumber, 0)}
	for _, v := range values {
		words = append(words, word(ge.CmdWorldMatrixData, v))
	}
	return words
}

func TestWorldMatrixUpload(t *testing.T) {
	h := newHarness(ge.Config{})

	values := make([]uint32, 12)
	for i := range values {
		values[i] = math.Float32bits(float32(i+1)) >> 8
	}
	h.run(worldUpload(values))

	for i, v := range values {
		test.Equate(t, h.gpu.WorldMatrix()[i], math.Float32frombits(v<<8))
	}

	// each changed slot flushes before it lands
	test.Equate(t, h.rnd.Trace.Count("Flush"), 12)
	test.Equate(t, int(h.rnd.Shader.Dirtied&render.UniformWorldMatrix) != 0, true)

	// the auto-incremented index lives in the NUMBER mirror
	test.Equate(t, h.gpu.Mirror(ge.CmdWorldMatrixNumber)&0xf, 12)
}

func TestWorldMatrixRedundantUpload(t *testing.T) {
	h := newHarness(ge.Config{})

	values := make([]uint32, 12)
	for i := range values {
		values[i] = math.Float32bits(float32(i+1)) >> 8
	}
	h.run(worldUpload(values))

	// re-uploading the identical matrix must not break a draw batch
	h.rnd.Trace.Reset()
	h.run(worldUpload(values))

	test.Equate(t, h.rnd.Trace.Count("Flush"), 0)
	test.Equate(t, h.rnd.Trace.Count("DirtyUniform"), 0)
}

func TestWorldMatrixOverrun(t *testing.T) {
	h := newHarness(ge.Config{})

	values := make([]uint32, 14)
	for i := range values {
		values[i] = math.Float32bits(float32(i+1)) >> 8
	}
	h.run(worldUpload(values))

	// writes past the last slot are dropped but the index keeps counting
	test.Equate(t, h.rnd.Trace.Count("Flush"), 12)
	test.Equate(t, h.gpu.Mirror(ge.CmdWorldMatrixNumber)&0xf, 14)
}

func TestProjMatrixUpload(t *testing.T) {
	h := newHarness(ge.Config{})

	// the projection file has sixteen slots
	words := []uint32{word(ge.CmdProjMatrixNumber, 0)}
	for i := 0; i < 16; i++ {
		words = append(words, word(ge.CmdProjMatrixData, math.Float32bits(float32(i+1))>>8))
	}
	h.run(words)

	test.Equate(t, h.rnd.Trace.Count("Flush"), 16)
	test.Equate(t, h.gpu.ProjMatrix()[15], float32(16))
	test.Equate(t, int(h.rnd.Shader.Dirtied&render.UniformProjMatrix) != 0, true)
}

func TestBoneMatrixHardwareSkinning(t *testing.T) {
	h := newHarness(ge.Config{})

	h.run([]uint32{
		word(ge.CmdBoneMatrixNumber, 0),
		word(ge.CmdBoneMatrixData, math.Float32bits(1.0)>>8),
	})

	test.Equate(t, h.rnd.Trace.Count("Flush"), 1)
	test.Equate(t, int(h.rnd.Shader.Dirtied&render.UniformBoneMatrix0) != 0, true)
	test.Equate(t, h.gpu.BoneMatrix()[0], float32(1.0))
}

func TestBoneMatrixSoftwareSkinning(t *testing.T) {
	h := newHarness(ge.Config{SoftwareSkinning: true})

	// the bones are baked into the vertices at decode time so a change
	// neither flushes nor dirties. the value must still land
	h.run([]uint32{
		word(ge.CmdBoneMatrixNumber, 0),
		word(ge.CmdBoneMatrixData, math.Float32bits(1.0)>>8),
	})

	test.Equate(t, h.rnd.Trace.Count("Flush"), 0)
	test.Equate(t, h.rnd.Trace.Count("DirtyUniform"), 0)
	test.Equate(t, h.gpu.BoneMatrix()[0], float32(1.0))
	test.Equate(t, h.gpu.Mirror(ge.CmdBoneMatrixNumber)&0x7f, 1)
}
