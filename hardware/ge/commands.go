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

import "fmt"

// Command is the 8-bit opcode prefixed onto every 32-bit command word.
type Command uint8

// The command set of the graphics engine. Slots not named here are unused
// by the hardware; writes to them are mirrored but warn when the payload is
// not zero, except for slot 0xff which never warns.
const (
	CmdNop         Command = 0x00
	CmdVAddr       Command = 0x01
	CmdIAddr       Command = 0x02
	CmdPrim        Command = 0x04
	CmdBezier      Command = 0x05
	CmdSpline      Command = 0x06
	CmdBoundingBox Command = 0x07
	CmdJump        Command = 0x08
	CmdBJump       Command = 0x09
	CmdCall        Command = 0x0a
	CmdRet         Command = 0x0b
	CmdEnd         Command = 0x0c
	CmdSignal      Command = 0x0e
	CmdFinish      Command = 0x0f
	CmdBase        Command = 0x10
	CmdVertexType  Command = 0x12
	CmdOffsetAddr  Command = 0x13
	CmdOrigin      Command = 0x14
	CmdRegion1     Command = 0x15
	CmdRegion2     Command = 0x16

	CmdLightingEnable    Command = 0x17
	CmdLightEnable0      Command = 0x18
	CmdLightEnable1      Command = 0x19
	CmdLightEnable2      Command = 0x1a
	CmdLightEnable3      Command = 0x1b
	CmdClipEnable        Command = 0x1c
	CmdCullFaceEnable    Command = 0x1d
	CmdTextureMapEnable  Command = 0x1e
	CmdFogEnable         Command = 0x1f
	CmdDitherEnable      Command = 0x20
	CmdAlphaBlendEnable  Command = 0x21
	CmdAlphaTestEnable   Command = 0x22
	CmdZTestEnable       Command = 0x23
	CmdStencilTestEnable Command = 0x24
	CmdAntiAliasEnable   Command = 0x25
	CmdPatchCullEnable   Command = 0x26
	CmdColorTestEnable   Command = 0x27
	CmdLogicOpEnable     Command = 0x28

	CmdBoneMatrixNumber Command = 0x2a
	CmdBoneMatrixData   Command = 0x2b

	CmdMorphWeight0 Command = 0x2c
	CmdMorphWeight1 Command = 0x2d
	CmdMorphWeight2 Command = 0x2e
	CmdMorphWeight3 Command = 0x2f
	CmdMorphWeight4 Command = 0x30
	CmdMorphWeight5 Command = 0x31
	CmdMorphWeight6 Command = 0x32
	CmdMorphWeight7 Command = 0x33

	CmdPatchDivision  Command = 0x36
	CmdPatchPrimitive Command = 0x37
	CmdPatchFacing    Command = 0x38

	CmdWorldMatrixNumber Command = 0x3a
	CmdWorldMatrixData   Command = 0x3b
	CmdViewMatrixNumber  Command = 0x3c
	CmdViewMatrixData    Command = 0x3d
	CmdProjMatrixNumber  Command = 0x3e
	CmdProjMatrixData    Command = 0x3f
	CmdTGenMatrixNumber  Command = 0x40
	CmdTGenMatrixData    Command = 0x41

	CmdViewportX1 Command = 0x42
	CmdViewportY1 Command = 0x43
	CmdViewportX2 Command = 0x44
	CmdViewportY2 Command = 0x45
	CmdViewportZ1 Command = 0x46
	CmdViewportZ2 Command = 0x47

	CmdTexScaleU  Command = 0x48
	CmdTexScaleV  Command = 0x49
	CmdTexOffsetU Command = 0x4a
	CmdTexOffsetV Command = 0x4b
	CmdOffsetX    Command = 0x4c
	CmdOffsetY    Command = 0x4d

	CmdShadeMode            Command = 0x50
	CmdReverseNormal        Command = 0x51
	CmdMaterialUpdate       Command = 0x53
	CmdMaterialEmissive     Command = 0x54
	CmdMaterialAmbient      Command = 0x55
	CmdMaterialDiffuse      Command = 0x56
	CmdMaterialSpecular     Command = 0x57
	CmdMaterialAlpha        Command = 0x58
	CmdMaterialSpecularCoef Command = 0x5b
	CmdAmbientColor         Command = 0x5c
	CmdAmbientAlpha         Command = 0x5d

	CmdLightMode  Command = 0x5e
	CmdLightType0 Command = 0x5f
	CmdLightType1 Command = 0x60
	CmdLightType2 Command = 0x61
	CmdLightType3 Command = 0x62

	// the light parameter families are indexed arithmetically. the *X0
	// constant is the base of a run of twelve (three components by four
	// lights) or four (one value by four lights) consecutive slots
	CmdLightX0          Command = 0x63 // to 0x6e
	CmdLightDirX0       Command = 0x6f // to 0x7a
	CmdLightAttenA0     Command = 0x7b // to 0x86
	CmdLightSpotCoef0   Command = 0x87 // to 0x8a
	CmdLightSpotCutoff0 Command = 0x8b // to 0x8e
	CmdLightAmbient0    Command = 0x8f // ambient/diffuse/specular per light, to 0x9a

	CmdCull           Command = 0x9b
	CmdFramebufPtr    Command = 0x9c
	CmdFramebufWidth  Command = 0x9d
	CmdZBufPtr        Command = 0x9e
	CmdZBufWidth      Command = 0x9f
	CmdTexAddr0       Command = 0xa0 // to 0xa7
	CmdTexBufWidth0   Command = 0xa8 // to 0xaf
	CmdClutAddr       Command = 0xb0
	CmdClutAddrUpper  Command = 0xb1
	CmdTransferSrc    Command = 0xb2
	CmdTransferSrcW   Command = 0xb3
	CmdTransferDst    Command = 0xb4
	CmdTransferDstW   Command = 0xb5
	CmdTexSize0       Command = 0xb8 // to 0xbf
	CmdTexMapMode     Command = 0xc0
	CmdTexShadeLS     Command = 0xc1
	CmdTexMode        Command = 0xc2
	CmdTexFormat      Command = 0xc3
	CmdLoadClut       Command = 0xc4
	CmdClutFormat     Command = 0xc5
	CmdTexFilter      Command = 0xc6
	CmdTexWrap        Command = 0xc7
	CmdTexLevel       Command = 0xc8
	CmdTexFunc        Command = 0xc9
	CmdTexEnvColor    Command = 0xca
	CmdTexFlush       Command = 0xcb
	CmdTexSync        Command = 0xcc
	CmdFog1           Command = 0xcd
	CmdFog2           Command = 0xce
	CmdFogColor       Command = 0xcf
	CmdTexLodSlope    Command = 0xd0
	CmdFramebufFormat Command = 0xd2
	CmdClearMode      Command = 0xd3
	CmdScissor1       Command = 0xd4
	CmdScissor2       Command = 0xd5
	CmdMinZ           Command = 0xd6
	CmdMaxZ           Command = 0xd7
	CmdColorTest      Command = 0xd8
	CmdColorRef       Command = 0xd9
	CmdColorTestMask  Command = 0xda
	CmdAlphaTest      Command = 0xdb
	CmdStencilTest    Command = 0xdc
	CmdStencilOp      Command = 0xdd
	CmdZTest          Command = 0xde
	CmdBlendMode      Command = 0xdf
	CmdBlendFixedA    Command = 0xe0
	CmdBlendFixedB    Command = 0xe1
	CmdDith0          Command = 0xe2
	CmdDith1          Command = 0xe3
	CmdDith2          Command = 0xe4
	CmdDith3          Command = 0xe5
	CmdLogicOp        Command = 0xe6
	CmdZWriteDisable  Command = 0xe7
	CmdMaskRGB        Command = 0xe8
	CmdMaskAlpha      Command = 0xe9

	CmdTransferStart  Command = 0xea
	CmdTransferSrcPos Command = 0xeb
	CmdTransferDstPos Command = 0xec
	CmdTransferSize   Command = 0xee
)

// the unused slots of the command set. writes to these are mirrored and
// warn when the payload is not zero. slot 0xff is treated as a no-op and
// does not warn
var unknownCommands = []Command{
	0x03, 0x0d, 0x11, 0x29, 0x34, 0x35, 0x39, 0x4e, 0x4f, 0x52, 0x59, 0x5a,
	0xb6, 0xb7, 0xd1, 0xed, 0xef,
	0xf0, 0xf1, 0xf2, 0xf3, 0xf4, 0xf5, 0xf6, 0xf7,
	0xf8, 0xf9, 0xfa, 0xfb, 0xfc, 0xfd, 0xfe, 0xff,
}

var commandNames = [256]string{
	CmdNop:         "NOP",
	CmdVAddr:       "VADDR",
	CmdIAddr:       "IADDR",
	CmdPrim:        "PRIM",
	CmdBezier:      "BEZIER",
	CmdSpline:      "SPLINE",
	CmdBoundingBox: "BOUNDINGBOX",
	CmdJump:        "JUMP",
	CmdBJump:       "BJUMP",
	CmdCall:        "CALL",
	CmdRet:         "RET",
	CmdEnd:         "END",
	CmdSignal:      "SIGNAL",
	CmdFinish:      "FINISH",
	CmdBase:        "BASE",
	CmdVertexType:  "VERTEXTYPE",
	CmdOffsetAddr:  "OFFSETADDR",
	CmdOrigin:      "ORIGIN",
	CmdRegion1:     "REGION1",
	CmdRegion2:     "REGION2",

	CmdLightingEnable:    "LIGHTINGENABLE",
	CmdLightEnable0:      "LIGHTENABLE0",
	CmdLightEnable1:      "LIGHTENABLE1",
	CmdLightEnable2:      "LIGHTENABLE2",
	CmdLightEnable3:      "LIGHTENABLE3",
	CmdClipEnable:        "CLIPENABLE",
	CmdCullFaceEnable:    "CULLFACEENABLE",
	CmdTextureMapEnable:  "TEXTUREMAPENABLE",
	CmdFogEnable:         "FOGENABLE",
	CmdDitherEnable:      "DITHERENABLE",
	CmdAlphaBlendEnable:  "ALPHABLENDENABLE",
	CmdAlphaTestEnable:   "ALPHATESTENABLE",
	CmdZTestEnable:       "ZTESTENABLE",
	CmdStencilTestEnable: "STENCILTESTENABLE",
	CmdAntiAliasEnable:   "ANTIALIASENABLE",
	CmdPatchCullEnable:   "PATCHCULLENABLE",
	CmdColorTestEnable:   "COLORTESTENABLE",
	CmdLogicOpEnable:     "LOGICOPENABLE",

	CmdBoneMatrixNumber: "BONEMATRIXNUMBER",
	CmdBoneMatrixData:   "BONEMATRIXDATA",

	CmdPatchDivision:  "PATCHDIVISION",
	CmdPatchPrimitive: "PATCHPRIMITIVE",
	CmdPatchFacing:    "PATCHFACING",

	CmdWorldMatrixNumber: "WORLDMATRIXNUMBER",
	CmdWorldMatrixData:   "WORLDMATRIXDATA",
	CmdViewMatrixNumber:  "VIEWMATRIXNUMBER",
	CmdViewMatrixData:    "VIEWMATRIXDATA",
	CmdProjMatrixNumber:  "PROJMATRIXNUMBER",
	CmdProjMatrixData:    "PROJMATRIXDATA",
	CmdTGenMatrixNumber:  "TGENMATRIXNUMBER",
	CmdTGenMatrixData:    "TGENMATRIXDATA",

	CmdViewportX1: "VIEWPORTX1",
	CmdViewportY1: "VIEWPORTY1",
	CmdViewportX2: "VIEWPORTX2",
	CmdViewportY2: "VIEWPORTY2",
	CmdViewportZ1: "VIEWPORTZ1",
	CmdViewportZ2: "VIEWPORTZ2",

	CmdTexScaleU:  "TEXSCALEU",
	CmdTexScaleV:  "TEXSCALEV",
	CmdTexOffsetU: "TEXOFFSETU",
	CmdTexOffsetV: "TEXOFFSETV",
	CmdOffsetX:    "OFFSETX",
	CmdOffsetY:    "OFFSETY",

	CmdShadeMode:            "SHADEMODE",
	CmdReverseNormal:        "REVERSENORMAL",
	CmdMaterialUpdate:       "MATERIALUPDATE",
	CmdMaterialEmissive:     "MATERIALEMISSIVE",
	CmdMaterialAmbient:      "MATERIALAMBIENT",
	CmdMaterialDiffuse:      "MATERIALDIFFUSE",
	CmdMaterialSpecular:     "MATERIALSPECULAR",
	CmdMaterialAlpha:        "MATERIALALPHA",
	CmdMaterialSpecularCoef: "MATERIALSPECULARCOEF",
	CmdAmbientColor:         "AMBIENTCOLOR",
	CmdAmbientAlpha:         "AMBIENTALPHA",

	CmdLightMode:  "LIGHTMODE",
	CmdLightType0: "LIGHTTYPE0",
	CmdLightType1: "LIGHTTYPE1",
	CmdLightType2: "LIGHTTYPE2",
	CmdLightType3: "LIGHTTYPE3",

	CmdCull:          "CULL",
	CmdFramebufPtr:   "FRAMEBUFPTR",
	CmdFramebufWidth: "FRAMEBUFWIDTH",
	CmdZBufPtr:       "ZBUFPTR",
	CmdZBufWidth:     "ZBUFWIDTH",

	CmdClutAddr:      "CLUTADDR",
	CmdClutAddrUpper: "CLUTADDRUPPER",
	CmdTransferSrc:   "TRANSFERSRC",
	CmdTransferSrcW:  "TRANSFERSRCW",
	CmdTransferDst:   "TRANSFERDST",
	CmdTransferDstW:  "TRANSFERDSTW",

	CmdTexMapMode:     "TEXMAPMODE",
	CmdTexShadeLS:     "TEXSHADELS",
	CmdTexMode:        "TEXMODE",
	CmdTexFormat:      "TEXFORMAT",
	CmdLoadClut:       "LOADCLUT",
	CmdClutFormat:     "CLUTFORMAT",
	CmdTexFilter:      "TEXFILTER",
	CmdTexWrap:        "TEXWRAP",
	CmdTexLevel:       "TEXLEVEL",
	CmdTexFunc:        "TEXFUNC",
	CmdTexEnvColor:    "TEXENVCOLOR",
	CmdTexFlush:       "TEXFLUSH",
	CmdTexSync:        "TEXSYNC",
	CmdFog1:           "FOG1",
	CmdFog2:           "FOG2",
	CmdFogColor:       "FOGCOLOR",
	CmdTexLodSlope:    "TEXLODSLOPE",
	CmdFramebufFormat: "FRAMEBUFPIXFORMAT",
	CmdClearMode:      "CLEARMODE",
	CmdScissor1:       "SCISSOR1",
	CmdScissor2:       "SCISSOR2",
	CmdMinZ:           "MINZ",
	CmdMaxZ:           "MAXZ",
	CmdColorTest:      "COLORTEST",
	CmdColorRef:       "COLORREF",
	CmdColorTestMask:  "COLORTESTMASK",
	CmdAlphaTest:      "ALPHATEST",
	CmdStencilTest:    "STENCILTEST",
	CmdStencilOp:      "STENCILOP",
	CmdZTest:          "ZTEST",
	CmdBlendMode:      "BLENDMODE",
	CmdBlendFixedA:    "BLENDFIXEDA",
	CmdBlendFixedB:    "BLENDFIXEDB",
	CmdDith0:          "DITH0",
	CmdDith1:          "DITH1",
	CmdDith2:          "DITH2",
	CmdDith3:          "DITH3",
	CmdLogicOp:        "LOGICOP",
	CmdZWriteDisable:  "ZWRITEDISABLE",
	CmdMaskRGB:        "MASKRGB",
	CmdMaskAlpha:      "MASKALPHA",

	CmdTransferStart:  "TRANSFERSTART",
	CmdTransferSrcPos: "TRANSFERSRCPOS",
	CmdTransferDstPos: "TRANSFERDSTPOS",
	CmdTransferSize:   "TRANSFERSIZE",
}

func init() {
	// arithmetic families
	for i := 0; i < 8; i++ {
		commandNames[CmdMorphWeight0+Command(i)] = fmt.Sprintf("MORPHWEIGHT%d", i)
		commandNames[CmdTexAddr0+Command(i)] = fmt.Sprintf("TEXADDR%d", i)
		commandNames[CmdTexBufWidth0+Command(i)] = fmt.Sprintf("TEXBUFWIDTH%d", i)
		commandNames[CmdTexSize0+Command(i)] = fmt.Sprintf("TEXSIZE%d", i)
	}
	for l := 0; l < 4; l++ {
		for c, n := range []string{"X", "Y", "Z"} {
			commandNames[CmdLightX0+Command(l*3+c)] = fmt.Sprintf("L%s%d", n, l)
			commandNames[CmdLightDirX0+Command(l*3+c)] = fmt.Sprintf("LD%s%d", n, l)
		}
		for c, n := range []string{"A", "B", "C"} {
			commandNames[CmdLightAttenA0+Command(l*3+c)] = fmt.Sprintf("LK%s%d", n, l)
		}
		for c, n := range []string{"AC", "DC", "SC"} {
			commandNames[CmdLightAmbient0+Command(l*3+c)] = fmt.Sprintf("L%s%d", n, l)
		}
		commandNames[CmdLightSpotCoef0+Command(l)] = fmt.Sprintf("LKS%d", l)
		commandNames[CmdLightSpotCutoff0+Command(l)] = fmt.Sprintf("LKO%d", l)
	}
}

func (c Command) String() string {
	if commandNames[c] == "" {
		return fmt.Sprintf("UNKNOWN_%02X", uint8(c))
	}
	return commandNames[c]
}
