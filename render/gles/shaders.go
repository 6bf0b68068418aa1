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
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/hakea/gopherge/hardware/ge"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// vertexShaderID and fragmentShaderID are state fingerprints. Programs are
// selected by fingerprint pair so that a register write that does not alter
// the fingerprint reuses the bound program.
type vertexShaderID uint32
type fragmentShaderID uint32

const (
	vsThrough = vertexShaderID(1 << iota)
	vsTexcoord
	vsColor
	vsNormal
	vsLighting
	vsLight0Enable
	vsLight1Enable
	vsLight2Enable
	vsLight3Enable
	// light kinds occupy two bits per light from bit 9
)

const (
	fsTexture = fragmentShaderID(1 << iota)
	fsTexAlpha
	fsColorDouble
	fsAlphaTest
	fsFog
	fsClear
	// texfunc occupies three bits from bit 6, alpha test func three bits
	// from bit 9
)

type programKey struct {
	vert vertexShaderID
	frag fragmentShaderID
}

// program is a linked shader pair and its uniform locations.
type program struct {
	handle uint32
	valid  bool

	// vertex attributes
	attrPos    int32
	attrUV     int32
	attrColor  int32
	attrNormal int32

	// uniforms. a location of -1 means the generated source has no use
	// for the value and the upload is skipped
	uProj          int32
	uWorld         int32
	uView          int32
	uTexMtx        int32
	uUVScaleOffset int32
	uFogCoef       int32
	uFogColor      int32
	uTexEnv        int32
	uAlphaRef      int32
	uColorTestRef  int32
	uColorTestMask int32
	uAmbient       int32
	uMatAmbient    int32
	uMatDiffuse    int32
	uMatSpecular   int32
	uMatEmissive   int32
	uStencilValue  int32

	uLightPos      [4]int32
	uLightDir      [4]int32
	uLightAtt      [4]int32
	uLightSpot     [4]int32
	uLightAmbient  [4]int32
	uLightDiffuse  [4]int32
	uLightSpecular [4]int32
}

// ShaderManager implements render.ShaderManager on a program cache keyed by
// state fingerprints.
type ShaderManager struct {
	regs *registers

	programs    map[programKey]*program
	vertShaders map[vertexShaderID]uint32
	fragShaders map[fragmentShaderID]uint32

	dirty render.UniformGroup

	lastKey     programKey
	lastProgram *program
	haveLast    bool
}

func newShaderManager(regs *registers) *ShaderManager {
	return &ShaderManager{
		regs:        regs,
		programs:    make(map[programKey]*program),
		vertShaders: make(map[vertexShaderID]uint32),
		fragShaders: make(map[fragmentShaderID]uint32),
		dirty:       render.UniformAll,
	}
}

// DirtyUniform implements render.ShaderManager.
func (sm *ShaderManager) DirtyUniform(groups render.UniformGroup) {
	sm.dirty |= groups
}

// DirtyShader implements render.ShaderManager.
func (sm *ShaderManager) DirtyShader() {
	sm.haveLast = false
	sm.dirty = render.UniformAll
}

// DirtyLastShader implements render.ShaderManager.
func (sm *ShaderManager) DirtyLastShader() {
	sm.haveLast = false
	sm.lastProgram = nil
}

// ClearCache implements render.ShaderManager.
func (sm *ShaderManager) ClearCache(deletePrograms bool) {
	if deletePrograms {
		for _, p := range sm.programs {
			gl.DeleteProgram(p.handle)
		}
		for _, h := range sm.vertShaders {
			gl.DeleteShader(h)
		}
		for _, h := range sm.fragShaders {
			gl.DeleteShader(h)
		}
	}
	sm.programs = make(map[programKey]*program)
	sm.vertShaders = make(map[vertexShaderID]uint32)
	sm.fragShaders = make(map[fragmentShaderID]uint32)
	sm.haveLast = false
	sm.lastProgram = nil
	sm.dirty = render.UniformAll
}

// NumVertexShaders implements render.ShaderManager.
func (sm *ShaderManager) NumVertexShaders() int { return len(sm.vertShaders) }

// NumFragmentShaders implements render.ShaderManager.
func (sm *ShaderManager) NumFragmentShaders() int { return len(sm.fragShaders) }

// NumPrograms implements render.ShaderManager.
func (sm *ShaderManager) NumPrograms() int { return len(sm.programs) }

// fingerprinting

func (sm *ShaderManager) vertexID(vt render.VertexType) vertexShaderID {
	var id vertexShaderID
	if vt.Through() {
		id |= vsThrough
	}
	if vt.Tex() != 0 || sm.regs.uvGenMode() != 0 {
		id |= vsTexcoord
	}
	if vt.Col() != 0 {
		id |= vsColor
	}
	if vt.Nrm() != 0 {
		id |= vsNormal
	}
	if !vt.Through() && sm.regs.enabled(ge.CmdLightingEnable) {
		id |= vsLighting
		for i := 0; i < 4; i++ {
			if sm.regs.lightEnabled(i) {
				id |= vsLight0Enable << i
				kind, _ := sm.regs.lightType(i)
				id |= vertexShaderID(kind) << (9 + 2*i)
			}
		}
	}
	return id
}

func (sm *ShaderManager) fragmentID(vt render.VertexType) fragmentShaderID {
	var id fragmentShaderID

	if clear, _, _, _ := sm.regs.clearMode(); clear {
		return fsClear
	}

	if sm.regs.enabled(ge.CmdTextureMapEnable) {
		id |= fsTexture
		fn, rgba, double := sm.regs.texFunc()
		id |= fragmentShaderID(fn&0x7) << 6
		if rgba {
			id |= fsTexAlpha
		}
		if double {
			id |= fsColorDouble
		}
	}
	if sm.regs.enabled(ge.CmdAlphaTestEnable) {
		fn, _, _ := sm.regs.alphaTest()
		id |= fsAlphaTest
		id |= fragmentShaderID(fn&0x7) << 9
	}
	if !vt.Through() && sm.regs.enabled(ge.CmdFogEnable) {
		id |= fsFog
	}
	return id
}

// useProgram selects, binds and freshens the program for the vertex format
// and the current register state. Called by the draw engine at flush time.
func (sm *ShaderManager) useProgram(vt render.VertexType) *program {
	key := programKey{vert: sm.vertexID(vt), frag: sm.fragmentID(vt)}

	if sm.haveLast && key == sm.lastKey {
		sm.updateUniforms(sm.lastProgram, vt)
		return sm.lastProgram
	}

	p, ok := sm.programs[key]
	if !ok {
		p = sm.link(key)
		sm.programs[key] = p
	}

	if p.valid {
		gl.UseProgram(p.handle)
	}
	sm.lastKey = key
	sm.lastProgram = p
	sm.haveLast = true
	sm.dirty = render.UniformAll
	sm.updateUniforms(p, vt)
	return p
}

func (sm *ShaderManager) compile(kind uint32, source string) (uint32, bool) {
	handle := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(handle, 1, csource, nil)
	free()
	gl.CompileShader(handle)

	var compiled int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &compiled)
	if compiled == 0 {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			infoLog := strings.Repeat("\x00", int(logLength+1))
			gl.GetShaderInfoLog(handle, logLength, &logLength, gl.Str(infoLog))
			logger.Logf(logger.Allow, "gles", "shader compile: %s", strings.TrimRight(infoLog, "\x00"))
		}
		gl.DeleteShader(handle)
		return 0, false
	}
	return handle, true
}

func (sm *ShaderManager) link(key programKey) *program {
	vh, ok := sm.vertShaders[key.vert]
	if !ok {
		vh, ok = sm.compile(gl.VERTEX_SHADER, generateVertexShader(key.vert))
		if !ok {
			return &program{}
		}
		sm.vertShaders[key.vert] = vh
	}

	fh, ok := sm.fragShaders[key.frag]
	if !ok {
		fh, ok = sm.compile(gl.FRAGMENT_SHADER, generateFragmentShader(key.frag))
		if !ok {
			return &program{}
		}
		sm.fragShaders[key.frag] = fh
	}

	p := &program{handle: gl.CreateProgram()}
	gl.AttachShader(p.handle, vh)
	gl.AttachShader(p.handle, fh)
	gl.BindFragDataLocation(p.handle, 0, gl.Str("fragColor\x00"))
	gl.LinkProgram(p.handle)

	var linked int32
	gl.GetProgramiv(p.handle, gl.LINK_STATUS, &linked)
	if linked == 0 {
		var logLength int32
		gl.GetProgramiv(p.handle, gl.INFO_LOG_LENGTH, &logLength)
		if logLength > 0 {
			infoLog := strings.Repeat("\x00", int(logLength+1))
			gl.GetProgramInfoLog(p.handle, logLength, &logLength, gl.Str(infoLog))
			logger.Logf(logger.Allow, "gles", "program link: %s", strings.TrimRight(infoLog, "\x00"))
		}
		gl.DeleteProgram(p.handle)
		return &program{}
	}
	p.valid = true

	// the sampler binding never changes
	gl.UseProgram(p.handle)
	if loc := gl.GetUniformLocation(p.handle, gl.Str("u_tex\x00")); loc >= 0 {
		gl.Uniform1i(loc, 0)
	}

	uniform := func(name string) int32 {
		return gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	}
	attrib := func(name string) int32 {
		return gl.GetAttribLocation(p.handle, gl.Str(name+"\x00"))
	}

	p.attrPos = attrib("a_position")
	p.attrUV = attrib("a_texcoord")
	p.attrColor = attrib("a_color")
	p.attrNormal = attrib("a_normal")

	p.uProj = uniform("u_proj")
	p.uWorld = uniform("u_world")
	p.uView = uniform("u_view")
	p.uTexMtx = uniform("u_texmtx")
	p.uUVScaleOffset = uniform("u_uvscaleoffset")
	p.uFogCoef = uniform("u_fogcoef")
	p.uFogColor = uniform("u_fogcolor")
	p.uTexEnv = uniform("u_texenv")
	p.uAlphaRef = uniform("u_alpharef")
	p.uColorTestRef = uniform("u_colortestref")
	p.uColorTestMask = uniform("u_colortestmask")
	p.uAmbient = uniform("u_ambient")
	p.uMatAmbient = uniform("u_matambientalpha")
	p.uMatDiffuse = uniform("u_matdiffuse")
	p.uMatSpecular = uniform("u_matspecular")
	p.uMatEmissive = uniform("u_matemissive")
	p.uStencilValue = uniform("u_stencilvalue")

	for i := 0; i < 4; i++ {
		p.uLightPos[i] = uniform(fmt.Sprintf("u_lightpos%d", i))
		p.uLightDir[i] = uniform(fmt.Sprintf("u_lightdir%d", i))
		p.uLightAtt[i] = uniform(fmt.Sprintf("u_lightatt%d", i))
		p.uLightSpot[i] = uniform(fmt.Sprintf("u_lightspot%d", i))
		p.uLightAmbient[i] = uniform(fmt.Sprintf("u_lightambient%d", i))
		p.uLightDiffuse[i] = uniform(fmt.Sprintf("u_lightdiffuse%d", i))
		p.uLightSpecular[i] = uniform(fmt.Sprintf("u_lightspecular%d", i))
	}

	return p
}

// mat4From43 expands a column-major 4x3 matrix file to a 4x4 for upload.
func mat4From43(m []float32) [16]float32 {
	return [16]float32{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		m[9], m[10], m[11], 1,
	}
}

func uniform3(loc int32, v [3]float32) {
	if loc >= 0 {
		gl.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func uniform4(loc int32, v [4]float32) {
	if loc >= 0 {
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

// updateUniforms uploads the dirty uniform groups to the bound program and
// clears the dirty set. Bone matrix groups have no program-side storage
// because skinning is applied during vertex decode.
func (sm *ShaderManager) updateUniforms(p *program, vt render.VertexType) {
	if !p.valid {
		return
	}

	d := sm.dirty
	sm.dirty = 0
	if d == 0 {
		return
	}

	s := sm.regs.s

	if d&render.UniformProjMatrix != 0 && p.uProj >= 0 {
		proj := s.ProjMatrix()
		var m [16]float32
		copy(m[:], proj)
		gl.UniformMatrix4fv(p.uProj, 1, false, &m[0])
	}
	if d&render.UniformWorldMatrix != 0 && p.uWorld >= 0 {
		m := mat4From43(s.WorldMatrix())
		gl.UniformMatrix4fv(p.uWorld, 1, false, &m[0])
	}
	if d&render.UniformViewMatrix != 0 && p.uView >= 0 {
		m := mat4From43(s.ViewMatrix())
		gl.UniformMatrix4fv(p.uView, 1, false, &m[0])
	}
	if d&render.UniformTexMatrix != 0 && p.uTexMtx >= 0 {
		m := mat4From43(s.TGenMatrix())
		gl.UniformMatrix4fv(p.uTexMtx, 1, false, &m[0])
	}

	if d&render.UniformUVScaleOffset != 0 && p.uUVScaleOffset >= 0 {
		uv := s.UVScale()
		gl.Uniform4f(p.uUVScaleOffset, uv[0], uv[1], uv[2], uv[3])
	}

	if d&render.UniformFogCoef != 0 && p.uFogCoef >= 0 {
		end, slope, _ := sm.regs.fog()
		gl.Uniform2f(p.uFogCoef, end, slope)
	}
	if d&render.UniformFogColor != 0 {
		_, _, color := sm.regs.fog()
		uniform3(p.uFogColor, splitRGB(color))
	}

	if d&render.UniformTexEnv != 0 {
		uniform3(p.uTexEnv, splitRGB(sm.regs.texEnvColor()))
	}

	if d&render.UniformAlphaColorRef != 0 && p.uAlphaRef >= 0 {
		_, ref, mask := sm.regs.alphaTest()
		gl.Uniform2f(p.uAlphaRef, float32(ref)/255.0, float32(mask)/255.0)
	}

	if d&render.UniformColorMask != 0 {
		_, ref, mask := sm.regs.colorTest()
		uniform3(p.uColorTestRef, splitRGB(ref))
		uniform3(p.uColorTestMask, splitRGB(mask))
	}

	if d&render.UniformAmbient != 0 {
		color := sm.regs.data(ge.CmdAmbientColor)
		alpha := sm.regs.data(ge.CmdAmbientAlpha)
		uniform4(p.uAmbient, splitRGBA(color, alpha))
	}
	if d&render.UniformMatDiffuse != 0 {
		uniform3(p.uMatDiffuse, splitRGB(sm.regs.data(ge.CmdMaterialDiffuse)))
	}
	if d&render.UniformMatEmissive != 0 {
		uniform3(p.uMatEmissive, splitRGB(sm.regs.data(ge.CmdMaterialEmissive)))
	}
	if d&render.UniformMatAmbientAlpha != 0 {
		color := sm.regs.data(ge.CmdMaterialAmbient)
		alpha := sm.regs.data(ge.CmdMaterialAlpha)
		uniform4(p.uMatAmbient, splitRGBA(color, alpha))
	}
	if d&render.UniformMatSpecular != 0 && p.uMatSpecular >= 0 {
		c := splitRGB(sm.regs.data(ge.CmdMaterialSpecular))
		coef := float24(sm.regs.data(ge.CmdMaterialSpecularCoef))
		gl.Uniform4f(p.uMatSpecular, c[0], c[1], c[2], coef)
	}

	for i := 0; i < 4; i++ {
		if d&(render.UniformLight0<<i) == 0 {
			continue
		}
		l := s.Light(i)
		uniform3(p.uLightPos[i], l.Pos)
		uniform3(p.uLightDir[i], l.Dir)
		uniform3(p.uLightAtt[i], l.Atten)
		if p.uLightSpot[i] >= 0 {
			gl.Uniform2f(p.uLightSpot[i], l.SpotCoef, l.SpotCutoff)
		}
		uniform3(p.uLightAmbient[i], l.Ambient)
		uniform3(p.uLightDiffuse[i], l.Diffuse)
		uniform3(p.uLightSpecular[i], l.Specular)
	}

	if d&render.UniformStencilReplace != 0 && p.uStencilValue >= 0 {
		_, ref, _ := sm.regs.stencilTest()
		gl.Uniform1f(p.uStencilValue, float32(ref)/255.0)
	}
}

func splitRGB(payload uint32) [3]float32 {
	return [3]float32{
		float32(payload&0xff) / 255.0,
		float32((payload>>8)&0xff) / 255.0,
		float32((payload>>16)&0xff) / 255.0,
	}
}
