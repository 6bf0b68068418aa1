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
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// flushDraw realizes accumulated draw state. The run loop and the matrix
// machines call it before a state change that would affect queued
// primitives.
func (gpu *GPU) flushDraw() {
	gpu.rend.Draw.Flush()
	gpu.stats.Flushes++
}

// vertexType returns the current vertex format from the register mirror.
func (gpu *GPU) vertexType() render.VertexType {
	return render.VertexType(gpu.mirror[CmdVertexType] & 0x00ffffff)
}

// clutAddress assembles the palette address from its two registers.
func (gpu *GPU) clutAddress() uint32 {
	return (gpu.mirror[CmdClutAddr] & 0x00ffffff) | ((gpu.mirror[CmdClutAddrUpper] << 8) & 0x0f000000)
}

// executeOp is the semantic handler for a single command word. The mirror
// has already been updated; diff carries the bits that changed.
func (gpu *GPU) executeOp(op uint32, diff uint32) {
	cmd := Command(op >> 24)
	data := op & 0x00ffffff

	// the arithmetically indexed families. everything else has its own
	// slot in the switch below
	switch {
	case cmd >= CmdMorphWeight0 && cmd <= CmdMorphWeight7:
		if diff != 0 {
			gpu.morphWeights[cmd-CmdMorphWeight0] = float24(data)
		}
		return

	case cmd >= CmdTexAddr0 && cmd <= CmdTexAddr0+7:
		if diff != 0 {
			gpu.textureChanged = true
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}
		return

	case cmd >= CmdTexBufWidth0 && cmd <= CmdTexBufWidth0+7:
		if diff != 0 {
			gpu.textureChanged = true
		}
		return

	case cmd == CmdTexSize0:
		// a render-to-texture target may have overridden the dimensions
		// so a same-value write still refreshes them when the texture
		// has changed
		if diff != 0 || gpu.textureChanged {
			gpu.curTextureWidth = 1 << (data & 0xf)
			gpu.curTextureHeight = 1 << ((data >> 8) & 0xf)
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
			gpu.textureChanged = true
		}
		return

	case cmd > CmdTexSize0 && cmd <= CmdTexSize0+7:
		if diff != 0 {
			gpu.textureChanged = true
		}
		return

	case cmd >= CmdLightX0 && cmd < CmdLightDirX0:
		if diff != 0 {
			n := int(cmd - CmdLightX0)
			gpu.lights[n/3].Pos[n%3] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(n/3))
		}
		return

	case cmd >= CmdLightDirX0 && cmd < CmdLightAttenA0:
		if diff != 0 {
			n := int(cmd - CmdLightDirX0)
			gpu.lights[n/3].Dir[n%3] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(n/3))
		}
		return

	case cmd >= CmdLightAttenA0 && cmd < CmdLightSpotCoef0:
		if diff != 0 {
			n := int(cmd - CmdLightAttenA0)
			gpu.lights[n/3].Atten[n%3] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(n/3))
		}
		return

	case cmd >= CmdLightSpotCoef0 && cmd < CmdLightSpotCutoff0:
		if diff != 0 {
			l := int(cmd - CmdLightSpotCoef0)
			gpu.lights[l].SpotCoef = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(l))
		}
		return

	case cmd >= CmdLightSpotCutoff0 && cmd < CmdLightAmbient0:
		if diff != 0 {
			l := int(cmd - CmdLightSpotCutoff0)
			gpu.lights[l].SpotCutoff = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(l))
		}
		return

	case cmd >= CmdLightAmbient0 && cmd <= CmdLightAmbient0+11:
		if diff != 0 {
			n := int(cmd - CmdLightAmbient0)
			l := n / 3
			c := splitRGB(data)
			switch n % 3 {
			case 0:
				gpu.lights[l].Ambient = c
			case 1:
				gpu.lights[l].Diffuse = c
			case 2:
				gpu.lights[l].Specular = c
			}
			gpu.rend.Shader.DirtyUniform(render.UniformLight0 << uint(l))
		}
		return
	}

	switch cmd {
	case CmdBase:
		// the mirror is the only state

	case CmdVAddr:
		gpu.vertexAddr = gpu.relativeAddr(data)

	case CmdIAddr:
		gpu.indexAddr = gpu.relativeAddr(data)

	case CmdPrim:
		gpu.opPrim(data)

	case CmdBezier:
		gpu.opBezier(data)

	case CmdSpline:
		gpu.opSpline(data)

	case CmdBoundingBox:
		gpu.opBoundingBox(data)

	case CmdJump:
		gpu.opJump(data)

	case CmdBJump:
		gpu.opBJump(data)

	case CmdCall:
		gpu.opCall(data)

	case CmdRet:
		gpu.opRet(data)

	case CmdEnd:
		gpu.opEnd()

	case CmdOffsetAddr:
		gpu.offsetAddr = data << 8

	case CmdOrigin:
		gpu.offsetAddr = gpu.list.PC

	case CmdVertexType:
		gpu.opVertexType(diff)

	case CmdRegion1, CmdRegion2, CmdScissor1, CmdScissor2,
		CmdFramebufPtr, CmdFramebufWidth, CmdFramebufFormat,
		CmdViewportX1, CmdViewportY1, CmdViewportX2,
		CmdViewportY2, CmdViewportZ1, CmdViewportZ2:
		if diff != 0 {
			gpu.framebufChanged = true
			gpu.textureChanged = true
		}

	case CmdZBufPtr, CmdZBufWidth:

	case CmdClipEnable, CmdCullFaceEnable, CmdCull:
		// clipping and culling are realized at flush time

	case CmdTextureMapEnable:
		if diff != 0 {
			gpu.textureChanged = true
		}

	case CmdLightingEnable, CmdLightEnable0, CmdLightEnable1,
		CmdLightEnable2, CmdLightEnable3, CmdLightMode,
		CmdLightType0, CmdLightType1, CmdLightType2, CmdLightType3:

	case CmdFogColor:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformFogColor)
		}

	case CmdFog1, CmdFog2:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformFogCoef)
		}

	case CmdFogEnable, CmdDitherEnable, CmdOffsetX, CmdOffsetY,
		CmdMinZ, CmdMaxZ:

	case CmdTexScaleU:
		if diff != 0 {
			gpu.uvScale[0] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}

	case CmdTexScaleV:
		if diff != 0 {
			gpu.uvScale[1] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}

	case CmdTexOffsetU:
		if diff != 0 {
			gpu.uvScale[2] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}

	case CmdTexOffsetV:
		if diff != 0 {
			gpu.uvScale[3] = float24(data)
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}

	case CmdClutFormat:
		if diff != 0 {
			gpu.textureChanged = true
		}

	case CmdClutAddr, CmdClutAddrUpper:
		// LOADCLUT reads the assembled address

	case CmdLoadClut:
		gpu.textureChanged = true
		gpu.rend.Texture.LoadClut(gpu.clutAddress(), int(data&0x3f)*32)

	case CmdTexMapMode:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}

	case CmdTexShadeLS:

	case CmdTransferSrc, CmdTransferSrcW, CmdTransferDst,
		CmdTransferDstW, CmdTransferSrcPos, CmdTransferDstPos,
		CmdTransferSize:

	case CmdTransferStart:
		gpu.blockTransfer()

		// the transfer may have overwritten the current texture
		gpu.textureChanged = true

	case CmdAmbientColor, CmdAmbientAlpha:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformAmbient)
		}

	case CmdMaterialDiffuse:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformMatDiffuse)
		}

	case CmdMaterialEmissive:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformMatEmissive)
		}

	case CmdMaterialAmbient, CmdMaterialAlpha:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformMatAmbientAlpha)
		}

	case CmdMaterialSpecular, CmdMaterialSpecularCoef:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformMatSpecular)
		}

	case CmdMaterialUpdate, CmdShadeMode, CmdReverseNormal:

	case CmdPatchDivision, CmdPatchPrimitive, CmdPatchFacing,
		CmdPatchCullEnable:

	case CmdClearMode:

	case CmdAlphaBlendEnable, CmdBlendMode, CmdBlendFixedA,
		CmdBlendFixedB:

	case CmdAlphaTestEnable, CmdColorTestEnable:
		// realized in the fragment program

	case CmdColorTest, CmdColorTestMask:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformColorMask)
		}

	case CmdAlphaTest:
		if (data>>16)&0xff != 0xff && data&7 > 1 {
			logger.Logf(logger.Allow, "ge", "unsupported alpha test mask: %02x", (data>>16)&0xff)
		}
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformAlphaColorRef)
		}

	case CmdColorRef:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformAlphaColorRef)
		}

	case CmdTexEnvColor:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformTexEnv)
		}

	case CmdTexFunc, CmdTexFlush, CmdTexSync:

	case CmdTexMode, CmdTexFormat, CmdTexFilter, CmdTexWrap:
		if diff != 0 {
			gpu.textureChanged = true
		}

	case CmdZTestEnable, CmdZTest, CmdZWriteDisable:

	case CmdDith0, CmdDith1, CmdDith2, CmdDith3:

	case CmdLogicOp, CmdLogicOpEnable:
		// unsupported logic ops are dropped at flush time

	case CmdWorldMatrixNumber:
		gpu.mirror[CmdWorldMatrixNumber] &= 0xff00000f

	case CmdWorldMatrixData:
		gpu.opMatrixData(gpu.worldMatrix[:], CmdWorldMatrixNumber, 0xf, data, render.UniformWorldMatrix)

	case CmdViewMatrixNumber:
		gpu.mirror[CmdViewMatrixNumber] &= 0xff00000f

	case CmdViewMatrixData:
		gpu.opMatrixData(gpu.viewMatrix[:], CmdViewMatrixNumber, 0xf, data, render.UniformViewMatrix)

	case CmdProjMatrixNumber:
		gpu.mirror[CmdProjMatrixNumber] &= 0xff00000f

	case CmdProjMatrixData:
		gpu.opMatrixData(gpu.projMatrix[:], CmdProjMatrixNumber, 0xf, data, render.UniformProjMatrix)

	case CmdTGenMatrixNumber:
		gpu.mirror[CmdTGenMatrixNumber] &= 0xff00000f

	case CmdTGenMatrixData:
		gpu.opMatrixData(gpu.tgenMatrix[:], CmdTGenMatrixNumber, 0xf, data, render.UniformTexMatrix)

	case CmdBoneMatrixNumber:
		gpu.mirror[CmdBoneMatrixNumber] &= 0xff00007f

	case CmdBoneMatrixData:
		gpu.opBoneMatrixData(data)

	case CmdAntiAliasEnable:
		if data != 0 {
			logger.Logf(logger.Allow, "ge", "unsupported antialias enabled: %06x", data)
		}

	case CmdTexLodSlope:
		if data != 0 {
			logger.Logf(logger.Allow, "ge", "unsupported texture lod slope: %06x", data)
		}

	case CmdTexLevel:
		if data != 0 {
			logger.Logf(logger.Allow, "ge", "unsupported texture level bias: %06x", data)
		}
		if diff != 0 {
			gpu.textureChanged = true
		}

	case CmdStencilTest:
		if diff != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformStencilReplace)
		}

	case CmdStencilTestEnable, CmdStencilOp:

	case CmdMaskRGB, CmdMaskAlpha:

	default:
		// slot 0xff is hit by real streams and appears to be a genuine
		// no-op. the other unused slots warn when carrying a payload
		if cmd != 0xff && data != 0 {
			logger.Logf(logger.Allow, "ge", "unknown command: %08x", op)
		}
	}
}

// opVertexType handles a change of vertex format. With software skinning
// the flush triggered by a format change must happen with the previous
// format still in the mirror.
func (gpu *GPU) opVertexType(diff uint32) {
	if diff == 0 {
		return
	}

	if !gpu.cfg.SoftwareSkinning {
		if diff&uint32(render.VTypeTexMask|render.VTypeThrough) != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}
		return
	}

	if diff&^uint32(render.VTypeWCountMask) != 0 {
		gpu.mirror[CmdVertexType] ^= diff
		gpu.flushDraw()
		gpu.mirror[CmdVertexType] ^= diff
		if diff&uint32(render.VTypeTexMask|render.VTypeThrough) != 0 {
			gpu.rend.Shader.DirtyUniform(render.UniformUVScaleOffset)
		}
	}
}

// opPrim submits a primitive draw.
func (gpu *GPU) opPrim(data uint32) {
	count := int(data & 0xffff)
	prim := render.PrimitiveType(data >> 16)

	if count == 0 {
		return
	}

	vt := gpu.vertexType()

	// anti-aliased lines cannot be expressed downstream. discard them
	if gpu.mirror[CmdAntiAliasEnable]&1 == 1 {
		if prim == render.PrimLineStrip {
			return
		}
		if prim == render.PrimLines && vt.Skinning() {
			return
		}
	}

	// binding the render target here makes draw skipping effective: a
	// skipped draw still creates the framebuffer it would have hit
	gpu.rend.Framebuf.SetRenderFrameBuffer()

	if gpu.skipDraw&(SkipDrawSkipFrame|SkipDrawNonDisplayedFramebuf) != 0 {
		gpu.rend.Draw.SetupVertexDecoder(vt)
		gpu.cyclesExecuted += int64(gpu.rend.Draw.EstimatePerVertexCost() * count)
		return
	}

	if !gpu.mem.Valid(gpu.vertexAddr) {
		logger.Logf(logger.Allow, "ge", "bad vertex address %08x", gpu.vertexAddr)
		return
	}

	verts, _ := gpu.mem.Window(gpu.vertexAddr)
	var inds []uint8
	if vt.Indexed() {
		if !gpu.mem.Valid(gpu.indexAddr) {
			logger.Logf(logger.Allow, "ge", "bad index address %08x", gpu.indexAddr)
			return
		}
		inds, _ = gpu.mem.Window(gpu.indexAddr)
	}

	if prim > render.PrimRectangles {
		logger.Logf(logger.Allow, "ge", "unexpected primitive type: %d", prim)
	}

	bytesRead := gpu.rend.Draw.SubmitPrim(verts, inds, prim, count, vt)
	gpu.stats.DrawCalls++

	vertexCost := gpu.rend.Draw.EstimatePerVertexCost()
	gpu.stats.VertexGPUCycles += int64(vertexCost * count)
	gpu.cyclesExecuted += int64(vertexCost * count)

	// the addresses advance past the consumed data. some streams rely
	// on this instead of reloading VADDR and IADDR between draws
	if inds != nil {
		gpu.indexAddr += uint32(count * vt.IndexSize())
	} else {
		gpu.vertexAddr += uint32(bytesRead)
	}
}

// patchData resolves the control point and index windows shared by the
// bezier and spline handlers. ok is false when the draw must be dropped.
func (gpu *GPU) patchData(vt render.VertexType) (verts []uint8, inds []uint8, ok bool) {
	if !gpu.mem.Valid(gpu.vertexAddr) {
		logger.Logf(logger.Allow, "ge", "bad vertex address %08x", gpu.vertexAddr)
		return nil, nil, false
	}
	verts, _ = gpu.mem.Window(gpu.vertexAddr)

	if vt.Indexed() {
		if !gpu.mem.Valid(gpu.indexAddr) {
			logger.Logf(logger.Allow, "ge", "bad index address %08x", gpu.indexAddr)
			return nil, nil, false
		}
		inds, _ = gpu.mem.Window(gpu.indexAddr)
	}

	return verts, inds, true
}

// patchPrim returns the current patch primitive from the register mirror.
func (gpu *GPU) patchPrim() render.PatchPrimType {
	return render.PatchPrimType(gpu.mirror[CmdPatchPrimitive] & 0x3)
}

// opBezier submits a bezier patch draw.
func (gpu *GPU) opBezier(data uint32) {
	gpu.rend.Framebuf.SetRenderFrameBuffer()
	if gpu.skipDraw&(SkipDrawSkipFrame|SkipDrawNonDisplayedFramebuf) != 0 {
		return
	}

	vt := gpu.vertexType()
	verts, inds, ok := gpu.patchData(vt)
	if !ok {
		return
	}

	if gpu.patchPrim() != render.PatchPrimTriangles {
		logger.Logf(logger.Allow, "ge", "unsupported patch primitive %x", int(gpu.patchPrim()))
		return
	}

	ucount := int(data & 0xff)
	vcount := int((data >> 8) & 0xff)
	gpu.rend.Draw.SubmitBezier(verts, inds, ucount, vcount, gpu.patchPrim(), vt)
}

// opSpline submits a spline patch draw.
func (gpu *GPU) opSpline(data uint32) {
	gpu.rend.Framebuf.SetRenderFrameBuffer()
	if gpu.skipDraw&(SkipDrawSkipFrame|SkipDrawNonDisplayedFramebuf) != 0 {
		return
	}

	vt := gpu.vertexType()
	verts, inds, ok := gpu.patchData(vt)
	if !ok {
		return
	}

	if gpu.patchPrim() != render.PatchPrimTriangles {
		logger.Logf(logger.Allow, "ge", "unsupported patch primitive %x", int(gpu.patchPrim()))
		return
	}

	ucount := int(data & 0xff)
	vcount := int((data >> 8) & 0xff)
	utype := int((data >> 16) & 0x3)
	vtype := int((data >> 18) & 0x3)
	gpu.rend.Draw.SubmitSpline(verts, inds, ucount, vcount, utype, vtype, gpu.patchPrim(), vt)
}

// opBoundingBox tests control points against the view volume and stores
// the verdict on the display list. Malformed payloads assume visibility so
// a following conditional jump does not skip real drawing.
func (gpu *GPU) opBoundingBox(data uint32) {
	if data == 0 {
		// resetting, nothing to bound
		gpu.list.BBoxResult = true
		return
	}

	if data&7 != 0 || data > 64 {
		logger.Logf(logger.Allow, "ge", "bad bounding box data: %06x", data)
		gpu.list.BBoxResult = true
		return
	}

	vt := gpu.vertexType()
	if vt.Indexed() {
		logger.Log(logger.Allow, "ge", "indexed bounding box data not supported")
		gpu.list.BBoxResult = true
		return
	}

	verts, err := gpu.mem.Window(gpu.vertexAddr)
	if err != nil {
		logger.Logf(logger.Allow, "ge", "bad vertex address %08x", gpu.vertexAddr)
		gpu.list.BBoxResult = true
		return
	}

	gpu.list.BBoxResult = gpu.rend.Draw.TestBoundingBox(verts, int(data), vt)
}
