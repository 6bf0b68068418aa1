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

	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/render"
)

// State is the register mirror plus the derived floating-point caches the
// subsystems read at flush and bind time. Implemented by the command-stream
// interpreter and installed with Renderer.SetState once the interpreter has
// been constructed.
type State interface {
	render.RegisterReader

	WorldMatrix() []float32
	ViewMatrix() []float32
	ProjMatrix() []float32
	TGenMatrix() []float32
	BoneMatrix() []float32

	Light(n int) ge.Light
	UVScale() [4]float32
	MorphWeight(n int) float32
	TextureDimensions() (width int, height int)
}

// registers wraps the State with typed getters for the packed register
// encodings. A single instance is shared by every subsystem so that
// SetState needs to install the interpreter only once.
type registers struct {
	s State
}

func (r *registers) data(cmd ge.Command) uint32 {
	return r.s.Register(uint8(cmd)) & 0x00ffffff
}

func (r *registers) enabled(cmd ge.Command) bool {
	return r.data(cmd)&1 != 0
}

// float24 reinterprets a 24-bit payload as the top bits of a float32.
func float24(payload uint32) float32 {
	return math.Float32frombits(payload << 8)
}

// framebuffer

func (r *registers) framebufAddr() uint32 {
	ptr := r.data(ge.CmdFramebufPtr)
	width := r.data(ge.CmdFramebufWidth)
	return ptr | ((width & 0xff0000) << 8)
}

func (r *registers) framebufStride() int {
	return int(r.data(ge.CmdFramebufWidth) & 0x07fc)
}

func (r *registers) framebufFormat() render.BufferFormat {
	return render.BufferFormat(r.data(ge.CmdFramebufFormat) & 3)
}

func (r *registers) zbufAddr() uint32 {
	ptr := r.data(ge.CmdZBufPtr)
	width := r.data(ge.CmdZBufWidth)
	return ptr | ((width & 0xff0000) << 8)
}

// regionSize returns the drawing region dimensions from the second region
// register.
func (r *registers) regionSize() (width int, height int) {
	data := r.data(ge.CmdRegion2)
	return int(data&0x3ff) + 1, int((data>>10)&0x3ff) + 1
}

func (r *registers) scissor() (x1 int, y1 int, x2 int, y2 int) {
	d1 := r.data(ge.CmdScissor1)
	d2 := r.data(ge.CmdScissor2)
	return int(d1 & 0x3ff), int((d1 >> 10) & 0x3ff),
		int(d2 & 0x3ff), int((d2 >> 10) & 0x3ff)
}

// viewport scale and center. all six registers hold float24 values

func (r *registers) viewportScale() (x float32, y float32, z float32) {
	return float24(r.data(ge.CmdViewportX1)),
		float24(r.data(ge.CmdViewportY1)),
		float24(r.data(ge.CmdViewportZ1))
}

func (r *registers) viewportCenter() (x float32, y float32, z float32) {
	return float24(r.data(ge.CmdViewportX2)),
		float24(r.data(ge.CmdViewportY2)),
		float24(r.data(ge.CmdViewportZ2))
}

// offset returns the screen offset in pixels. the registers hold 4-bit
// subpixel precision
func (r *registers) offset() (x int, y int) {
	return int(r.data(ge.CmdOffsetX)&0xffff) >> 4,
		int(r.data(ge.CmdOffsetY)&0xffff) >> 4
}

// texture

func (r *registers) texAddr(level int) uint32 {
	addr := r.data(ge.CmdTexAddr0 + ge.Command(level))
	width := r.data(ge.CmdTexBufWidth0 + ge.Command(level))
	return (addr & 0xfffff0) | ((width << 8) & 0x0f000000)
}

func (r *registers) texStride(level int) int {
	return int(r.data(ge.CmdTexBufWidth0+ge.Command(level)) & 0x07fc)
}

func (r *registers) texSize(level int) (width int, height int) {
	data := r.data(ge.CmdTexSize0 + ge.Command(level))
	w := uint(data & 0xf)
	h := uint((data >> 8) & 0xf)
	if w > 9 {
		w = 9
	}
	if h > 9 {
		h = 9
	}
	return 1 << w, 1 << h
}

func (r *registers) texFormat() int {
	return int(r.data(ge.CmdTexFormat) & 0xf)
}

func (r *registers) texSwizzled() bool {
	return r.data(ge.CmdTexMode)&1 != 0
}

func (r *registers) texMaxLevel() int {
	return int((r.data(ge.CmdTexMode) >> 16) & 0x7)
}

func (r *registers) texFilter() (min uint32, mag uint32) {
	data := r.data(ge.CmdTexFilter)
	return data & 0x7, (data >> 8) & 0x1
}

func (r *registers) texWrap() (s uint32, t uint32) {
	data := r.data(ge.CmdTexWrap)
	return data & 1, (data >> 8) & 1
}

func (r *registers) texFunc() (fn uint32, rgba bool, double bool) {
	data := r.data(ge.CmdTexFunc)
	return data & 0x7, data&0x100 != 0, data&0x10000 != 0
}

func (r *registers) texEnvColor() uint32 {
	return r.data(ge.CmdTexEnvColor)
}

func (r *registers) uvGenMode() int {
	return int(r.data(ge.CmdTexMapMode) & 0x3)
}

func (r *registers) clutFormat() uint32 {
	return r.data(ge.CmdClutFormat)
}

// fragment state

func (r *registers) clearMode() (active bool, color bool, alpha bool, depth bool) {
	data := r.data(ge.CmdClearMode)
	return data&1 != 0, data&0x100 != 0, data&0x200 != 0, data&0x400 != 0
}

func (r *registers) blendFunc() (src uint32, dst uint32, eqn uint32) {
	data := r.data(ge.CmdBlendMode)
	return data & 0xf, (data >> 4) & 0xf, (data >> 8) & 0x7
}

func (r *registers) blendFixed() (a uint32, b uint32) {
	return r.data(ge.CmdBlendFixedA), r.data(ge.CmdBlendFixedB)
}

func (r *registers) alphaTest() (fn uint32, ref uint32, mask uint32) {
	data := r.data(ge.CmdAlphaTest)
	return data & 0x7, (data >> 8) & 0xff, (data >> 16) & 0xff
}

func (r *registers) colorTest() (fn uint32, ref uint32, mask uint32) {
	return r.data(ge.CmdColorTest) & 0x3,
		r.data(ge.CmdColorRef),
		r.data(ge.CmdColorTestMask)
}

func (r *registers) depthFunc() uint32 {
	return r.data(ge.CmdZTest) & 0x7
}

func (r *registers) depthWrite() bool {
	return r.data(ge.CmdZWriteDisable)&1 == 0
}

func (r *registers) depthRange() (min float32, max float32) {
	return float32(r.data(ge.CmdMinZ)&0xffff) / 65535.0,
		float32(r.data(ge.CmdMaxZ)&0xffff) / 65535.0
}

func (r *registers) stencilTest() (fn uint32, ref uint32, mask uint32) {
	data := r.data(ge.CmdStencilTest)
	return data & 0x7, (data >> 8) & 0xff, (data >> 16) & 0xff
}

func (r *registers) stencilOp() (fail uint32, zfail uint32, zpass uint32) {
	data := r.data(ge.CmdStencilOp)
	return data & 0x7, (data >> 8) & 0x7, (data >> 16) & 0x7
}

func (r *registers) cullClockwise() bool {
	return r.data(ge.CmdCull)&1 != 0
}

func (r *registers) colorMask() (rgb uint32, alpha uint32) {
	return r.data(ge.CmdMaskRGB), r.data(ge.CmdMaskAlpha)
}

func (r *registers) logicOp() uint32 {
	return r.data(ge.CmdLogicOp) & 0xf
}

func (r *registers) fog() (end float32, slope float32, color uint32) {
	return float24(r.data(ge.CmdFog1)),
		float24(r.data(ge.CmdFog2)),
		r.data(ge.CmdFogColor)
}

// lighting and materials

func (r *registers) lightEnabled(n int) bool {
	return r.enabled(ge.CmdLightEnable0 + ge.Command(n))
}

func (r *registers) lightType(n int) (kind uint32, comp uint32) {
	data := r.data(ge.CmdLightType0 + ge.Command(n))
	return (data >> 8) & 0x3, data & 0x3
}

func (r *registers) materialUpdate() uint32 {
	return r.data(ge.CmdMaterialUpdate) & 0x7
}

func (r *registers) patchDivision() (u int, v int) {
	data := r.data(ge.CmdPatchDivision)
	u = int(data & 0x7f)
	v = int((data >> 8) & 0x7f)
	if u == 0 {
		u = 1
	}
	if v == 0 {
		v = 1
	}
	return u, v
}

func splitRGBA(color uint32, alpha uint32) [4]float32 {
	return [4]float32{
		float32(color&0xff) / 255.0,
		float32((color>>8)&0xff) / 255.0,
		float32((color>>16)&0xff) / 255.0,
		float32(alpha&0xff) / 255.0,
	}
}
