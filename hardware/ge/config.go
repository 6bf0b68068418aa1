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

// Config is the construction-time configuration of the GPU. The value is
// copied by NewGPU and never consulted again from the outside; changing a
// Config after construction has no effect.
type Config struct {
	// UV scale/offset are baked into vertices by the decoder, making the
	// flush on texture scale/offset changes redundant
	PrescaleUV bool

	// bone weights are applied on the CPU. a vertex-type change confined to
	// the weight count no longer breaks batches and bone-matrix uploads no
	// longer flush
	SoftwareSkinning bool

	// render directly to the output surface instead of per-framebuffer
	// FBOs. InitClear clears the output in this mode
	NonBufferedRendering bool

	// the replayer sets a swap interval of one when it creates the window.
	// the GPU itself does not read this field and nothing reconciles the
	// swap interval per frame
	VSync bool

	// the command producer runs on a different thread to the render
	// thread. framebuffer-dirty queries synchronize with the event queue
	SeparateCPUThread bool

	// output surface dimensions
	OutputWidth  int
	OutputHeight int
}
