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
)

// CommandFlags gate the work the interpreter loop performs per command.
type CommandFlags uint8

// The four flag bits. FlushBefore and FlushBeforeOnChange decide whether
// pending draws are submitted before the register write lands. Execute and
// ExecuteOnChange decide whether the executor runs at all.
const (
	FlagFlushBefore CommandFlags = 1 << iota
	FlagFlushBeforeOnChange
	FlagExecute
	FlagExecuteOnChange
)

type flagsEntry struct {
	cmd   Command
	flags CommandFlags
}

// the static seed list for the command flag table. grouped by the reason
// the flags are what they are.
var flagsTable = []flagsEntry{
	// changes that dirty the framebuffer
	{CmdFramebufPtr, FlagFlushBeforeOnChange | FlagExecute},
	{CmdFramebufWidth, FlagFlushBeforeOnChange | FlagExecute},
	{CmdFramebufFormat, FlagFlushBeforeOnChange | FlagExecute},
	{CmdZBufPtr, FlagFlushBeforeOnChange},
	{CmdZBufWidth, FlagFlushBeforeOnChange},

	// changes that dirty uniforms
	{CmdFogColor, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdFog1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdFog2, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	{CmdMinZ, FlagFlushBeforeOnChange},
	{CmdMaxZ, FlagFlushBeforeOnChange},

	// changes that dirty texture scaling
	{CmdTexMapMode, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexScaleU, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexScaleV, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexOffsetU, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexOffsetV, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// changes that dirty the current texture
	{CmdTexSize0, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 3, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 4, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 5, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 6, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexSize0 + 7, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexFormat, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 3, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 4, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 5, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 6, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexAddr0 + 7, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 3, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 4, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 5, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 6, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexBufWidth0 + 7, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdClutAddr, FlagFlushBeforeOnChange | FlagExecute},
	{CmdClutAddrUpper, FlagFlushBeforeOnChange | FlagExecute},
	{CmdClutFormat, FlagFlushBeforeOnChange | FlagExecute},

	// these affect the fragment shader
	{CmdClearMode, FlagFlushBeforeOnChange},
	{CmdTextureMapEnable, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdFogEnable, FlagFlushBeforeOnChange},
	{CmdTexMode, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexShadeLS, FlagFlushBeforeOnChange},
	{CmdShadeMode, FlagFlushBeforeOnChange},
	{CmdTexFunc, FlagFlushBeforeOnChange},
	{CmdColorTest, FlagFlushBeforeOnChange},
	{CmdAlphaTestEnable, FlagFlushBeforeOnChange},
	{CmdColorTestEnable, FlagFlushBeforeOnChange},
	{CmdColorTestMask, FlagFlushBeforeOnChange},

	// these change the vertex shader
	{CmdReverseNormal, FlagFlushBeforeOnChange},
	{CmdLightingEnable, FlagFlushBeforeOnChange},
	{CmdLightEnable0, FlagFlushBeforeOnChange},
	{CmdLightEnable1, FlagFlushBeforeOnChange},
	{CmdLightEnable2, FlagFlushBeforeOnChange},
	{CmdLightEnable3, FlagFlushBeforeOnChange},
	{CmdLightType0, FlagFlushBeforeOnChange},
	{CmdLightType1, FlagFlushBeforeOnChange},
	{CmdLightType2, FlagFlushBeforeOnChange},
	{CmdLightType3, FlagFlushBeforeOnChange},
	{CmdMaterialUpdate, FlagFlushBeforeOnChange},

	// this changes both shaders
	{CmdLightMode, FlagFlushBeforeOnChange},
	{CmdTexFilter, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexWrap, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// uniform changes
	{CmdAlphaTest, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdColorRef, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdTexEnvColor, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// simple render state changes
	{CmdOffsetX, FlagFlushBeforeOnChange},
	{CmdOffsetY, FlagFlushBeforeOnChange},
	{CmdCull, FlagFlushBeforeOnChange},
	{CmdCullFaceEnable, FlagFlushBeforeOnChange},
	{CmdDitherEnable, FlagFlushBeforeOnChange},
	{CmdStencilOp, FlagFlushBeforeOnChange},
	{CmdStencilTest, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdStencilTestEnable, FlagFlushBeforeOnChange},
	{CmdAlphaBlendEnable, FlagFlushBeforeOnChange},
	{CmdBlendMode, FlagFlushBeforeOnChange},
	{CmdBlendFixedA, FlagFlushBeforeOnChange},
	{CmdBlendFixedB, FlagFlushBeforeOnChange},
	{CmdMaskRGB, FlagFlushBeforeOnChange},
	{CmdMaskAlpha, FlagFlushBeforeOnChange},
	{CmdZTest, FlagFlushBeforeOnChange},
	{CmdZTestEnable, FlagFlushBeforeOnChange},
	{CmdZWriteDisable, FlagFlushBeforeOnChange},

	// flush conservatively on logic op changes whatever the host profile.
	// the draw engine ignores ops it cannot express
	{CmdLogicOp, FlagFlushBeforeOnChange},
	{CmdLogicOpEnable, FlagFlushBeforeOnChange},

	// AA lines are not supported but the enable still breaks batches
	{CmdAntiAliasEnable, FlagFlushBeforeOnChange},

	// morph weights
	{CmdMorphWeight0, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight3, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight4, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight5, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight6, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMorphWeight7, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// spline/bezier patch control
	{CmdPatchDivision, FlagFlushBeforeOnChange},
	{CmdPatchPrimitive, FlagFlushBeforeOnChange},
	{CmdPatchFacing, FlagFlushBeforeOnChange},
	{CmdPatchCullEnable, FlagFlushBeforeOnChange},

	// viewport
	{CmdViewportX1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdViewportY1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdViewportX2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdViewportY2, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdViewportZ1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdViewportZ2, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// region
	{CmdRegion1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdRegion2, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// scissor
	{CmdScissor1, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdScissor2, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// these dirty various vertex shader uniforms
	{CmdAmbientColor, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdAmbientAlpha, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialDiffuse, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialEmissive, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialAmbient, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialAlpha, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialSpecular, FlagFlushBeforeOnChange | FlagExecuteOnChange},
	{CmdMaterialSpecularCoef, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	// ignored commands
	{CmdClipEnable, 0},
	{CmdTexFlush, 0},
	{CmdTexLodSlope, 0},
	{CmdTexLevel, FlagExecuteOnChange},
	{CmdTexSync, 0},

	// nop or part of other later commands
	{CmdNop, 0},
	{CmdBase, 0},
	{CmdTransferSrc, 0},
	{CmdTransferSrcW, 0},
	{CmdTransferDst, 0},
	{CmdTransferDstW, 0},
	{CmdTransferSrcPos, 0},
	{CmdTransferDstPos, 0},
	{CmdTransferSize, 0},

	// control flow. no flushing but definitely need execute
	{CmdOffsetAddr, FlagExecute},
	{CmdOrigin, FlagExecute},
	{CmdPrim, FlagExecute},
	{CmdJump, FlagExecute},
	{CmdCall, FlagExecute},
	{CmdRet, FlagExecute},
	{CmdEnd, FlagExecute},
	{CmdVAddr, FlagExecute},
	{CmdIAddr, FlagExecute},
	{CmdBJump, FlagExecute},
	{CmdBoundingBox, FlagExecute},

	// changing the vertex type requires a flush
	{CmdVertexType, FlagFlushBeforeOnChange | FlagExecuteOnChange},

	{CmdBezier, FlagFlushBefore | FlagExecute},
	{CmdSpline, FlagFlushBefore | FlagExecute},

	// these two are actually processed in CmdEnd
	{CmdSignal, FlagFlushBefore},
	{CmdFinish, FlagFlushBefore},

	// changes that trigger data copies
	{CmdLoadClut, FlagFlushBeforeOnChange | FlagExecute},
	{CmdTransferStart, FlagFlushBefore | FlagExecute},

	// the dither table is not used
	{CmdDith0, 0},
	{CmdDith1, 0},
	{CmdDith2, 0},
	{CmdDith3, 0},

	// the matrix machines handle their own flushing
	{CmdWorldMatrixNumber, FlagExecute},
	{CmdWorldMatrixData, FlagExecute},
	{CmdViewMatrixNumber, FlagExecute},
	{CmdViewMatrixData, FlagExecute},
	{CmdProjMatrixNumber, FlagExecute},
	{CmdProjMatrixData, FlagExecute},
	{CmdTGenMatrixNumber, FlagExecute},
	{CmdTGenMatrixData, FlagExecute},
	{CmdBoneMatrixNumber, FlagExecute},
	{CmdBoneMatrixData, FlagExecute},
}

func init() {
	// the light parameter block is uniform. add it programmatically rather
	// than with fifty-six near-identical entries
	for c := CmdLightX0; c <= Command(0x9a); c++ {
		flagsTable = append(flagsTable, flagsEntry{c, FlagFlushBeforeOnChange | FlagExecuteOnChange})
	}

	// unused slots execute so they can warn about non-zero payloads
	for _, c := range unknownCommands {
		flagsTable = append(flagsTable, flagsEntry{c, FlagExecute})
	}
}

// newFlagsTable seeds the per-command flag table and applies the
// configuration clears. Duplicate and missing commands are logged, not
// fatal. Last entry wins on duplicates.
func newFlagsTable(cfg Config) [256]CommandFlags {
	var table [256]CommandFlags
	var seen [256]bool

	for _, e := range flagsTable {
		if seen[e.cmd] {
			logger.Logf(logger.Allow, "ge", "duplicate command in flag table (%s)", e.cmd)
		}
		seen[e.cmd] = true
		table[e.cmd] = e.flags
	}

	// anything up to the transfer-size command should have an entry
	for c := 0; c <= int(CmdTransferSize); c++ {
		if !seen[c] {
			logger.Logf(logger.Allow, "ge", "command missing from flag table (%s)", Command(c))
		}
	}

	if cfg.PrescaleUV {
		// texture scale/offset are baked into vertices so the flush on
		// change is redundant
		table[CmdTexScaleU] &^= FlagFlushBeforeOnChange
		table[CmdTexScaleV] &^= FlagFlushBeforeOnChange
		table[CmdTexOffsetU] &^= FlagFlushBeforeOnChange
		table[CmdTexOffsetV] &^= FlagFlushBeforeOnChange
	}

	if cfg.SoftwareSkinning {
		// weights are applied on the CPU so a vertex-type change does not
		// have to break the batch
		table[CmdVertexType] &^= FlagFlushBeforeOnChange
	}

	return table
}
