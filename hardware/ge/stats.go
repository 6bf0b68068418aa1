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

// Statistics accumulates counters from the interpretation loop and gauges
// pulled from the subsystems by UpdateStats.
type Statistics struct {
	// counters maintained by the run loop and executor
	CommandsInterpreted int64
	DrawCalls           int
	Flushes             int
	VertexGPUCycles     int64

	// gauges refreshed by UpdateStats
	NumVertexShaders   int
	NumFragmentShaders int
	NumPrograms        int
	NumTextures        int
	NumFBOs            int
}

// Stats returns a copy of the current statistics.
func (gpu *GPU) Stats() Statistics {
	return gpu.stats
}

// UpdateStats refreshes the subsystem gauges. Must be called on the render
// thread.
func (gpu *GPU) UpdateStats() {
	gpu.stats.NumVertexShaders = gpu.rend.Shader.NumVertexShaders()
	gpu.stats.NumFragmentShaders = gpu.rend.Shader.NumFragmentShaders()
	gpu.stats.NumPrograms = gpu.rend.Shader.NumPrograms()
	gpu.stats.NumTextures = gpu.rend.Texture.NumLoadedTextures()
	gpu.stats.NumFBOs = len(gpu.rend.Framebuf.GetFramebufferList())
}

// ResetFrameStats zeroes the per-frame counters. The gauges are left for
// the next UpdateStats.
func (gpu *GPU) ResetFrameStats() {
	gpu.stats.CommandsInterpreted = 0
	gpu.stats.DrawCalls = 0
	gpu.stats.Flushes = 0
	gpu.stats.VertexGPUCycles = 0
}
