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
	"hash/crc32"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// tracked vertex arrays unused for this many frames are dropped during
// decimation
const vertexArrayKillAge = 120

// minimum submission size worth tracking
const vertexArrayMinVertices = 16

// floats per vertex in the upload layout: position, texcoord, color,
// normal
const uploadStride = 12

type trackedKey struct {
	hash  uint32
	vt    render.VertexType
	count int
}

type trackedArray struct {
	decoded   []decodedVertex
	lastFrame int
}

// Drawer implements render.Drawer. Submissions are decoded immediately and
// expanded to independent primitives; Flush uploads the accumulated
// vertices and issues at most one draw per primitive class.
type Drawer struct {
	regs     *registers
	shader   *ShaderManager
	texture  *TextureCache
	framebuf *FramebufferManager

	dec        decoder
	prescaleUV bool

	batchVT   render.VertexType
	haveBatch bool

	tris   []decodedVertex
	lines  []decodedVertex
	points []decodedVertex

	lastDecoded []decodedVertex

	tracked map[trackedKey]*trackedArray
	frame   int

	vao     uint32
	vbo     uint32
	scratch []float32
}

func newDrawer(regs *registers, shader *ShaderManager, texture *TextureCache, framebuf *FramebufferManager, prescaleUV bool) *Drawer {
	dr := &Drawer{
		regs:       regs,
		shader:     shader,
		texture:    texture,
		framebuf:   framebuf,
		prescaleUV: prescaleUV,
		tracked:    make(map[trackedKey]*trackedArray),
	}
	gl.GenVertexArrays(1, &dr.vao)
	gl.GenBuffers(1, &dr.vbo)
	return dr
}

// destroy deletes the drawer's GL objects.
func (dr *Drawer) destroy() {
	gl.DeleteVertexArrays(1, &dr.vao)
	gl.DeleteBuffers(1, &dr.vbo)
}

// state returns the installed interpreter state.
func (dr *Drawer) state() State {
	return dr.regs.s
}

// setupDecoder prepares the decoder for the vertex format and the current
// uv scale.
func (dr *Drawer) setupDecoder(vtype render.VertexType) {
	dr.dec.setup(vtype)
	dr.dec.prescaleUV = dr.prescaleUV
	dr.dec.uvScale = dr.state().UVScale()
}

// SetupVertexDecoder implements render.Drawer.
func (dr *Drawer) SetupVertexDecoder(vtype render.VertexType) {
	dr.setupDecoder(vtype)
}

// decodeRun decodes count vertices, through the index list when the format
// is indexed. Static submissions are served from the tracked array cache.
func (dr *Drawer) decodeRun(verts []uint8, inds []uint8, count int, vtype render.VertexType) []decodedVertex {
	trackable := !vtype.Indexed() && !vtype.Skinning() && vtype.MorphCount() == 1 &&
		count >= vertexArrayMinVertices && len(verts) >= count*dr.dec.stride

	var key trackedKey
	if trackable {
		key = trackedKey{
			hash:  crc32.ChecksumIEEE(verts[:count*dr.dec.stride]),
			vt:    vtype,
			count: count,
		}
		if ta, ok := dr.tracked[key]; ok {
			ta.lastFrame = dr.frame
			return ta.decoded
		}
	}

	decoded := make([]decodedVertex, count)
	s := dr.state()
	for i := 0; i < count; i++ {
		decoded[i] = dr.dec.decode(verts, index(inds, vtype, i), s)
	}

	if trackable {
		dr.tracked[key] = &trackedArray{decoded: decoded, lastFrame: dr.frame}
	}
	return decoded
}

// SubmitPrim implements render.Drawer.
func (dr *Drawer) SubmitPrim(verts []uint8, inds []uint8, prim render.PrimitiveType, count int, vtype render.VertexType) int {
	dr.setupDecoder(vtype)

	if dr.haveBatch && dr.batchVT != vtype {
		dr.Flush()
	}
	dr.batchVT = vtype
	dr.haveBatch = true

	decoded := dr.decodeRun(verts, inds, count, vtype)
	dr.lastDecoded = decoded

	switch prim {
	case render.PrimPoints:
		dr.points = append(dr.points, decoded...)

	case render.PrimLines:
		dr.lines = append(dr.lines, decoded[:count&^1]...)

	case render.PrimLineStrip:
		for i := 0; i+1 < count; i++ {
			dr.lines = append(dr.lines, decoded[i], decoded[i+1])
		}

	case render.PrimTriangles:
		dr.tris = append(dr.tris, decoded[:count-count%3]...)

	case render.PrimTriangleStrip:
		for i := 0; i+2 < count; i++ {
			if i&1 == 0 {
				dr.tris = append(dr.tris, decoded[i], decoded[i+1], decoded[i+2])
			} else {
				dr.tris = append(dr.tris, decoded[i+1], decoded[i], decoded[i+2])
			}
		}

	case render.PrimTriangleFan:
		for i := 1; i+1 < count; i++ {
			dr.tris = append(dr.tris, decoded[0], decoded[i], decoded[i+1])
		}

	case render.PrimRectangles:
		for i := 0; i+1 < count; i += 2 {
			dr.expandRectangle(decoded[i], decoded[i+1])
		}
	}

	return count * vtype.Size()
}

// expandRectangle turns a sprite vertex pair into two triangles. The second
// vertex carries the color and depth of the whole sprite.
func (dr *Drawer) expandRectangle(tl decodedVertex, br decodedVertex) {
	v0 := br
	v0.pos = [3]float32{tl.pos[0], tl.pos[1], br.pos[2]}
	v0.uv = tl.uv

	v1 := br
	v1.pos = [3]float32{br.pos[0], tl.pos[1], br.pos[2]}
	v1.uv = [2]float32{br.uv[0], tl.uv[1]}

	v2 := br

	v3 := br
	v3.pos = [3]float32{tl.pos[0], br.pos[1], br.pos[2]}
	v3.uv = [2]float32{tl.uv[0], br.uv[1]}

	dr.tris = append(dr.tris, v0, v1, v2, v0, v2, v3)
}

// Flush implements render.Drawer.
func (dr *Drawer) Flush() {
	if len(dr.tris) == 0 && len(dr.lines) == 0 && len(dr.points) == 0 {
		return
	}

	p := dr.shader.useProgram(dr.batchVT)
	if !p.valid {
		dr.resetBatch()
		return
	}

	if dr.regs.enabled(ge.CmdTextureMapEnable) {
		dr.texture.SetTexture()
	}

	if dr.batchVT.Through() {
		dr.uploadThroughProjection(p)
	}

	dr.applyDrawState()

	if len(dr.tris) > 0 {
		dr.drawClass(p, gl.TRIANGLES, dr.tris)
	}
	if len(dr.lines) > 0 {
		dr.drawClass(p, gl.LINES, dr.lines)
	}
	if len(dr.points) > 0 {
		dr.drawClass(p, gl.POINTS, dr.points)
	}

	dr.framebuf.markReallyDirty()
	dr.resetBatch()
}

func (dr *Drawer) resetBatch() {
	dr.tris = dr.tris[:0]
	dr.lines = dr.lines[:0]
	dr.points = dr.points[:0]
	dr.haveBatch = false
}

// uploadThroughProjection installs an orthographic projection over the
// render target for pretransformed vertices.
func (dr *Drawer) uploadThroughProjection(p *program) {
	if p.uProj < 0 {
		return
	}
	w, h := dr.framebuf.renderDimensions()
	m := [16]float32{
		2.0 / float32(w), 0, 0, 0,
		0, -2.0 / float32(h), 0, 0,
		0, 0, 1.0 / 65535.0, 0,
		-1, 1, 0, 1,
	}
	gl.UniformMatrix4fv(p.uProj, 1, false, &m[0])

	// the next non-through flush must restore the projection file
	dr.shader.DirtyUniform(render.UniformProjMatrix)
}

// drawClass uploads one primitive class and draws it.
func (dr *Drawer) drawClass(p *program, mode uint32, verts []decodedVertex) {
	need := len(verts) * uploadStride
	if cap(dr.scratch) < need {
		dr.scratch = make([]float32, need)
	}
	buf := dr.scratch[:0]
	for _, v := range verts {
		buf = append(buf,
			v.pos[0], v.pos[1], v.pos[2],
			v.uv[0], v.uv[1],
			float32(v.color[0])/255.0, float32(v.color[1])/255.0,
			float32(v.color[2])/255.0, float32(v.color[3])/255.0,
			v.normal[0], v.normal[1], v.normal[2])
	}

	gl.BindVertexArray(dr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, dr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(buf)*4, gl.Ptr(buf), gl.STREAM_DRAW)

	stride := int32(uploadStride * 4)
	if p.attrPos >= 0 {
		gl.EnableVertexAttribArray(uint32(p.attrPos))
		gl.VertexAttribPointerWithOffset(uint32(p.attrPos), 3, gl.FLOAT, false, stride, 0)
	}
	if p.attrUV >= 0 {
		gl.EnableVertexAttribArray(uint32(p.attrUV))
		gl.VertexAttribPointerWithOffset(uint32(p.attrUV), 2, gl.FLOAT, false, stride, 3*4)
	}
	if p.attrColor >= 0 {
		gl.EnableVertexAttribArray(uint32(p.attrColor))
		gl.VertexAttribPointerWithOffset(uint32(p.attrColor), 4, gl.FLOAT, false, stride, 5*4)
	}
	if p.attrNormal >= 0 {
		gl.EnableVertexAttribArray(uint32(p.attrNormal))
		gl.VertexAttribPointerWithOffset(uint32(p.attrNormal), 3, gl.FLOAT, false, stride, 9*4)
	}

	gl.DrawArrays(mode, 0, int32(len(verts)))
}

// GL factor and function lookup tables in guest numbering order.
var blendFactors = [16]uint32{
	gl.DST_COLOR, gl.ONE_MINUS_DST_COLOR,
	gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA,
	gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA,
	gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA,
	gl.DST_ALPHA, gl.ONE_MINUS_DST_ALPHA,
	gl.CONSTANT_COLOR, gl.CONSTANT_COLOR,
	gl.CONSTANT_COLOR, gl.CONSTANT_COLOR,
	gl.CONSTANT_COLOR, gl.CONSTANT_COLOR,
}

var blendEqns = [8]uint32{
	gl.FUNC_ADD, gl.FUNC_SUBTRACT, gl.FUNC_REVERSE_SUBTRACT,
	gl.MIN, gl.MAX, gl.FUNC_ADD, gl.FUNC_ADD, gl.FUNC_ADD,
}

var compareFuncs = [8]uint32{
	gl.NEVER, gl.ALWAYS, gl.EQUAL, gl.NOTEQUAL,
	gl.LESS, gl.LEQUAL, gl.GREATER, gl.GEQUAL,
}

var stencilOps = [8]uint32{
	gl.KEEP, gl.ZERO, gl.REPLACE, gl.INVERT,
	gl.INCR, gl.DECR, gl.KEEP, gl.KEEP,
}

var logicOps = [16]uint32{
	gl.CLEAR, gl.AND, gl.AND_REVERSE, gl.COPY,
	gl.AND_INVERTED, gl.NOOP, gl.XOR, gl.OR,
	gl.NOR, gl.EQUIV, gl.INVERT, gl.OR_REVERSE,
	gl.COPY_INVERTED, gl.OR_INVERTED, gl.NAND, gl.SET,
}

// applyDrawState realizes the fragment pipeline registers as GL state.
func (dr *Drawer) applyDrawState() {
	if clear, color, alpha, depth := dr.regs.clearMode(); clear {
		gl.Disable(gl.BLEND)
		gl.Disable(gl.CULL_FACE)
		gl.Disable(gl.COLOR_LOGIC_OP)
		gl.ColorMask(color, color, color, alpha)
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.ALWAYS)
		gl.DepthMask(depth)
		dr.applyScissor()
		return
	}

	if dr.regs.enabled(ge.CmdAlphaBlendEnable) {
		gl.Enable(gl.BLEND)
		src, dst, eqn := dr.regs.blendFunc()
		if src >= 10 || dst >= 10 {
			fixA, fixB := dr.regs.blendFixed()
			c := splitRGB(fixA)
			if dst >= 10 {
				c = splitRGB(fixB)
			}
			gl.BlendColor(c[0], c[1], c[2], 1.0)
		}
		gl.BlendFunc(blendFactors[src&0xf], blendFactors[dst&0xf])
		gl.BlendEquation(blendEqns[eqn&0x7])
	} else {
		gl.Disable(gl.BLEND)
	}

	if dr.regs.enabled(ge.CmdZTestEnable) {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(compareFuncs[dr.regs.depthFunc()])
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(dr.regs.depthWrite())
	min, max := dr.regs.depthRange()
	gl.DepthRange(float64(min), float64(max))

	if dr.regs.enabled(ge.CmdStencilTestEnable) {
		gl.Enable(gl.STENCIL_TEST)
		fn, ref, mask := dr.regs.stencilTest()
		gl.StencilFunc(compareFuncs[fn], int32(ref), uint32(mask))
		fail, zfail, zpass := dr.regs.stencilOp()
		gl.StencilOp(stencilOps[fail], stencilOps[zfail], stencilOps[zpass])
	} else {
		gl.Disable(gl.STENCIL_TEST)
	}

	if dr.regs.enabled(ge.CmdCullFaceEnable) && !dr.batchVT.Through() {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		if dr.regs.cullClockwise() {
			gl.FrontFace(gl.CW)
		} else {
			gl.FrontFace(gl.CCW)
		}
	} else {
		gl.Disable(gl.CULL_FACE)
	}

	if dr.regs.enabled(ge.CmdDitherEnable) {
		gl.Enable(gl.DITHER)
	} else {
		gl.Disable(gl.DITHER)
	}

	if dr.regs.enabled(ge.CmdLogicOpEnable) {
		op := dr.regs.logicOp()
		if op == 3 {
			gl.Disable(gl.COLOR_LOGIC_OP)
		} else {
			gl.Enable(gl.COLOR_LOGIC_OP)
			gl.LogicOp(logicOps[op])
		}
	} else {
		gl.Disable(gl.COLOR_LOGIC_OP)
	}

	// per-channel masks only. partial bit masks cannot be expressed
	rgb, alpha := dr.regs.colorMask()
	gl.ColorMask(rgb&0xff != 0xff, (rgb>>8)&0xff != 0xff, (rgb>>16)&0xff != 0xff, alpha&0xff != 0xff)

	dr.applyScissor()
}

// applyScissor converts the guest scissor rectangle to GL's bottom-left
// origin.
func (dr *Drawer) applyScissor() {
	x1, y1, x2, y2 := dr.regs.scissor()
	_, h := dr.framebuf.renderDimensions()

	w := x2 - x1 + 1
	sh := y2 - y1 + 1
	if w <= 0 || sh <= 0 {
		gl.Disable(gl.SCISSOR_TEST)
		return
	}
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(x1), int32(h-y1-sh), int32(w), int32(sh))
}

// TestBoundingBox implements render.Drawer.
func (dr *Drawer) TestBoundingBox(verts []uint8, count int, vtype render.VertexType) bool {
	dr.setupDecoder(vtype)
	if len(verts) < count*dr.dec.stride {
		return true
	}

	s := dr.state()

	if vtype.Through() {
		x1, y1, x2, y2 := dr.regs.scissor()
		for i := 0; i < count; i++ {
			v := dr.dec.decode(verts, i, s)
			if v.pos[0] >= float32(x1) && v.pos[0] <= float32(x2+1) &&
				v.pos[1] >= float32(y1) && v.pos[1] <= float32(y2+1) {
				return true
			}
		}
		return false
	}

	world := s.WorldMatrix()
	view := s.ViewMatrix()
	proj := s.ProjMatrix()

	// outcode bits for the six clip planes. the box is invisible only if
	// every point is outside the same plane
	all := uint32(0x3f)
	for i := 0; i < count; i++ {
		v := dr.dec.decode(verts, i, s)
		wp := apply43(world, v.pos, 1)
		vp := apply43(view, wp, 1)

		x := proj[0]*vp[0] + proj[4]*vp[1] + proj[8]*vp[2] + proj[12]
		y := proj[1]*vp[0] + proj[5]*vp[1] + proj[9]*vp[2] + proj[13]
		z := proj[2]*vp[0] + proj[6]*vp[1] + proj[10]*vp[2] + proj[14]
		w := proj[3]*vp[0] + proj[7]*vp[1] + proj[11]*vp[2] + proj[15]

		var code uint32
		if x < -w {
			code |= 0x01
		}
		if x > w {
			code |= 0x02
		}
		if y < -w {
			code |= 0x04
		}
		if y > w {
			code |= 0x08
		}
		if z < -w {
			code |= 0x10
		}
		if z > w {
			code |= 0x20
		}
		all &= code
		if all == 0 {
			return true
		}
	}
	return false
}

// EstimatePerVertexCost implements render.Drawer.
func (dr *Drawer) EstimatePerVertexCost() int {
	cost := 20
	if dr.regs.enabled(ge.CmdLightingEnable) {
		cost += 10
		for i := 0; i < 4; i++ {
			if dr.regs.lightEnabled(i) {
				cost += 10
			}
		}
	}
	if dr.regs.uvGenMode() != 0 {
		cost += 20
	}
	return cost
}

// DecimateTrackedVertexArrays implements render.Drawer.
func (dr *Drawer) DecimateTrackedVertexArrays() {
	dr.frame++
	for key, ta := range dr.tracked {
		if dr.frame-ta.lastFrame > vertexArrayKillAge {
			delete(dr.tracked, key)
		}
	}
}

// ClearTrackedVertexArrays implements render.Drawer.
func (dr *Drawer) ClearTrackedVertexArrays() {
	dr.tracked = make(map[trackedKey]*trackedArray)
}

// GetCurrentSimpleVertices implements render.Drawer.
func (dr *Drawer) GetCurrentSimpleVertices(count int) []render.SimpleVertex {
	if count > len(dr.lastDecoded) {
		count = len(dr.lastDecoded)
	}
	out := make([]render.SimpleVertex, count)
	for i := 0; i < count; i++ {
		v := dr.lastDecoded[i]
		out[i] = render.SimpleVertex{
			Pos:   v.pos,
			UV:    v.uv,
			Color: v.color,
		}
	}
	return out
}

// SubmitBezier implements render.Drawer.
func (dr *Drawer) SubmitBezier(verts []uint8, inds []uint8, ucount int, vcount int, patchPrim render.PatchPrimType, vtype render.VertexType) {
	if patchPrim != render.PatchPrimTriangles {
		logger.Logf(logger.Allow, "gles", "unsupported patch primitive: %s", patchPrim)
		return
	}
	dr.setupDecoder(vtype)

	if dr.haveBatch && dr.batchVT != vtype {
		dr.Flush()
	}
	dr.batchVT = vtype
	dr.haveBatch = true

	points := dr.decodeRun(verts, inds, ucount*vcount, vtype)
	dr.lastDecoded = points

	divU, divV := dr.regs.patchDivision()

	// independent cubic patches share their boundary rows
	for pv := 0; pv+3 < vcount; pv += 3 {
		for pu := 0; pu+3 < ucount; pu += 3 {
			dr.tessellateBezierPatch(points, ucount, pu, pv, divU, divV)
		}
	}
}

// bernstein returns the cubic Bernstein basis at t.
func bernstein(t float32) [4]float32 {
	u := 1 - t
	return [4]float32{u * u * u, 3 * u * u * t, 3 * u * t * t, t * t * t}
}

// lerpVertex blends a 4x4 window of control points with the given u and v
// basis weights.
func lerpVertex(points []decodedVertex, stride int, pu int, pv int, bu [4]float32, bv [4]float32) decodedVertex {
	var out decodedVertex
	var color [4]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			w := bu[i] * bv[j]
			p := points[(pv+j)*stride+pu+i]
			for c := 0; c < 3; c++ {
				out.pos[c] += p.pos[c] * w
				out.normal[c] += p.normal[c] * w
			}
			out.uv[0] += p.uv[0] * w
			out.uv[1] += p.uv[1] * w
			for c := 0; c < 4; c++ {
				color[c] += float32(p.color[c]) * w
			}
		}
	}
	for c := 0; c < 4; c++ {
		v := color[c]
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		out.color[c] = uint8(v)
	}
	return out
}

func (dr *Drawer) tessellateBezierPatch(points []decodedVertex, stride int, pu int, pv int, divU int, divV int) {
	grid := make([]decodedVertex, (divU+1)*(divV+1))
	for gv := 0; gv <= divV; gv++ {
		bv := bernstein(float32(gv) / float32(divV))
		for gu := 0; gu <= divU; gu++ {
			bu := bernstein(float32(gu) / float32(divU))
			grid[gv*(divU+1)+gu] = lerpVertex(points, stride, pu, pv, bu, bv)
		}
	}
	dr.emitGrid(grid, divU, divV)
}

// emitGrid triangulates a tessellated (divU+1)x(divV+1) grid.
func (dr *Drawer) emitGrid(grid []decodedVertex, divU int, divV int) {
	w := divU + 1
	for gv := 0; gv < divV; gv++ {
		for gu := 0; gu < divU; gu++ {
			a := grid[gv*w+gu]
			b := grid[gv*w+gu+1]
			c := grid[(gv+1)*w+gu]
			d := grid[(gv+1)*w+gu+1]
			dr.tris = append(dr.tris, a, b, c, b, d, c)
		}
	}
}

// SubmitSpline implements render.Drawer.
func (dr *Drawer) SubmitSpline(verts []uint8, inds []uint8, ucount int, vcount int, utype int, vtype int, patchPrim render.PatchPrimType, vt render.VertexType) {
	if patchPrim != render.PatchPrimTriangles {
		logger.Logf(logger.Allow, "gles", "unsupported patch primitive: %s", patchPrim)
		return
	}
	if ucount < 4 || vcount < 4 {
		return
	}
	dr.setupDecoder(vt)

	if dr.haveBatch && dr.batchVT != vt {
		dr.Flush()
	}
	dr.batchVT = vt
	dr.haveBatch = true

	points := dr.decodeRun(verts, inds, ucount*vcount, vt)
	dr.lastDecoded = points

	divU, divV := dr.regs.patchDivision()

	// uniform cubic b-spline over sliding 4x4 windows. the open/closed
	// knot types only affect the curve ends and are approximated by the
	// uniform basis
	for pv := 0; pv+3 < vcount; pv++ {
		for pu := 0; pu+3 < ucount; pu++ {
			grid := make([]decodedVertex, (divU+1)*(divV+1))
			for gv := 0; gv <= divV; gv++ {
				bv := bspline(float32(gv) / float32(divV))
				for gu := 0; gu <= divU; gu++ {
					bu := bspline(float32(gu) / float32(divU))
					grid[gv*(divU+1)+gu] = lerpVertex(points, ucount, pu, pv, bu, bv)
				}
			}
			dr.emitGrid(grid, divU, divV)
		}
	}
}

// bspline returns the uniform cubic b-spline basis at t.
func bspline(t float32) [4]float32 {
	u := 1 - t
	return [4]float32{
		u * u * u / 6.0,
		(3*t*t*t - 6*t*t + 4) / 6.0,
		(-3*t*t*t + 3*t*t + 3*t + 1) / 6.0,
		t * t * t / 6.0,
	}
}
