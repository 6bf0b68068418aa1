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
	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/hakea/gopherge/curated"
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/render"
)

// Renderer owns the four OpenGL subsystems. The parts share one registers
// instance so the interpreter needs to be installed only once, through
// SetState.
type Renderer struct {
	mem  *memory.Mem
	regs *registers

	Draw     *Drawer
	Shader   *ShaderManager
	Texture  *TextureCache
	Framebuf *FramebufferManager
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type. Must be called on the thread that owns the GL context, with the
// context current.
func NewRenderer(mem *memory.Mem, outputWidth int, outputHeight int, prescaleUV bool) (*Renderer, error) {
	err := gl.Init()
	if err != nil {
		return nil, curated.Errorf("gles: %v", err)
	}

	rnd := &Renderer{
		mem:  mem,
		regs: &registers{},
	}

	rnd.Shader = newShaderManager(rnd.regs)
	rnd.Texture = newTextureCache(mem, rnd.regs)
	rnd.Framebuf = newFramebufferManager(mem, rnd.regs, outputWidth, outputHeight)
	rnd.Draw = newDrawer(rnd.regs, rnd.Shader, rnd.Texture, rnd.Framebuf, prescaleUV)

	return rnd, nil
}

// SetState installs the command-stream interpreter the subsystems read
// their register state from. The renderer is created before the GPU so the
// state arrives late.
func (rnd *Renderer) SetState(s State) {
	rnd.regs.s = s
}

// Renderer returns the subsystems bundled as a render.Renderer for the GPU
// constructor.
func (rnd *Renderer) Renderer() *render.Renderer {
	return &render.Renderer{
		Draw:     rnd.Draw,
		Shader:   rnd.Shader,
		Texture:  rnd.Texture,
		Framebuf: rnd.Framebuf,
	}
}

// Destroy deletes every GL object the renderer owns. Must be called on the
// GL thread.
func (rnd *Renderer) Destroy() {
	rnd.Shader.ClearCache(true)
	rnd.Texture.Clear(true)
	rnd.Framebuf.destroy()
	rnd.Draw.destroy()
}
