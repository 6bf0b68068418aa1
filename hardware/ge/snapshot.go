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

// Snapshot is the complete register-level state of the GPU. All fields are
// exported so a snapshot gob-encodes cleanly.
type Snapshot struct {
	Mirror [256]uint32

	WorldMatrix [worldMatrixSize]float32
	ViewMatrix  [viewMatrixSize]float32
	ProjMatrix  [projMatrixSize]float32
	TGenMatrix  [tgenMatrixSize]float32
	BoneMatrix  [boneMatrixSize]float32

	Lights       [4]Light
	UVScale      [4]float32
	MorphWeights [8]float32

	VertexAddr uint32
	IndexAddr  uint32
	OffsetAddr uint32
}

// Snapshot returns a copy of the register-level state.
func (gpu *GPU) Snapshot() Snapshot {
	return Snapshot{
		Mirror:       gpu.mirror,
		WorldMatrix:  gpu.worldMatrix,
		ViewMatrix:   gpu.viewMatrix,
		ProjMatrix:   gpu.projMatrix,
		TGenMatrix:   gpu.tgenMatrix,
		BoneMatrix:   gpu.boneMatrix,
		Lights:       gpu.lights,
		UVScale:      gpu.uvScale,
		MorphWeights: gpu.morphWeights,
		VertexAddr:   gpu.vertexAddr,
		IndexAddr:    gpu.indexAddr,
		OffsetAddr:   gpu.offsetAddr,
	}
}

// Restore writes a snapshot back into the GPU. When not frozen the
// downstream caches are dropped because their contents describe guest
// memory from before the restore.
func (gpu *GPU) Restore(snap Snapshot, frozen bool) {
	gpu.mirror = snap.Mirror
	gpu.worldMatrix = snap.WorldMatrix
	gpu.viewMatrix = snap.ViewMatrix
	gpu.projMatrix = snap.ProjMatrix
	gpu.tgenMatrix = snap.TGenMatrix
	gpu.boneMatrix = snap.BoneMatrix
	gpu.lights = snap.Lights
	gpu.uvScale = snap.UVScale
	gpu.morphWeights = snap.MorphWeights
	gpu.vertexAddr = snap.VertexAddr
	gpu.indexAddr = snap.IndexAddr
	gpu.offsetAddr = snap.OffsetAddr

	if !frozen {
		gpu.rend.Texture.Clear(true)
		gpu.rend.Draw.ClearTrackedVertexArrays()
		gpu.rend.Framebuf.DestroyAllFBOs()
		gpu.textureChanged = true
	}
}
