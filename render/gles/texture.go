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
	"github.com/hakea/gopherge/hardware/memory"
	"github.com/hakea/gopherge/logger"
	"github.com/hakea/gopherge/render"
)

// guest texture formats
const (
	texFmt565 = iota
	texFmt5551
	texFmt4444
	texFmt8888
	texFmtClut4
	texFmtClut8
	texFmtClut16
	texFmtClut32
)

// entries unused for this many frames are dropped during StartFrame
const textureKillAge = 200

type texStatus int

const (
	texStatusValid texStatus = iota

	// hash and compare the guest bytes before the next use
	texStatusHash

	// reload unconditionally on the next use
	texStatusReload
)

type texEntry struct {
	addr   uint32
	format int
	width  int
	height int
	stride int

	handle    uint32
	hash      uint32
	sizeBytes int

	status    texStatus
	lastFrame int
}

// TextureCache implements render.TextureCache. Entries are keyed by
// address, format and dimensions so a reinterpretation of the same guest
// bytes gets its own entry.
type TextureCache struct {
	mem  *memory.Mem
	regs *registers

	entries map[uint64]*texEntry

	// raw palette bytes as loaded by LoadClut and the palette decoded to
	// 8888 under the current clut format
	clutRaw     [1024]uint8
	clutBytes   int
	palette     [256]uint32
	paletteFmt  uint32
	paletteLive bool

	frame     int
	clearNext bool

	decodeBuf []uint8
}

func newTextureCache(mem *memory.Mem, regs *registers) *TextureCache {
	return &TextureCache{
		mem:     mem,
		regs:    regs,
		entries: make(map[uint64]*texEntry),
	}
}

func texKey(addr uint32, format int, width int, height int) uint64 {
	return uint64(addr) | uint64(format)<<32 | uint64(width)<<40 | uint64(height)<<52
}

// LoadClut implements render.TextureCache.
func (tc *TextureCache) LoadClut(addr uint32, bytes int) {
	if bytes > len(tc.clutRaw) {
		bytes = len(tc.clutRaw)
	}
	src, err := tc.mem.Slice(addr, uint32(bytes))
	if err != nil {
		logger.Logf(logger.Allow, "gles", "bad clut load: %08x", addr)
		return
	}
	copy(tc.clutRaw[:bytes], src)
	tc.clutBytes = bytes
	tc.paletteLive = false
}

// decodePalette materializes the 8888 palette from the raw clut bytes and
// the current clut format register.
func (tc *TextureCache) decodePalette() {
	format := tc.regs.clutFormat() & 3
	if tc.paletteLive && format == tc.paletteFmt {
		return
	}

	n := tc.clutBytes
	if format == uint32(render.Buffer8888) {
		n /= 4
	} else {
		n /= 2
	}
	if n > 256 {
		n = 256
	}

	for i := 0; i < n; i++ {
		if format == uint32(render.Buffer8888) {
			tc.palette[i] = uint32(tc.clutRaw[i*4]) |
				uint32(tc.clutRaw[i*4+1])<<8 |
				uint32(tc.clutRaw[i*4+2])<<16 |
				uint32(tc.clutRaw[i*4+3])<<24
		} else {
			v := uint32(tc.clutRaw[i*2]) | uint32(tc.clutRaw[i*2+1])<<8
			tc.palette[i] = expandColor16(v, render.BufferFormat(format))
		}
	}
	tc.paletteFmt = format
	tc.paletteLive = true
}

// paletteIndex applies the clut format's shift, mask and offset to a raw
// texel index.
func (tc *TextureCache) paletteIndex(raw uint32) uint32 {
	format := tc.regs.clutFormat()
	shift := (format >> 2) & 0x1f
	mask := (format >> 8) & 0xff
	offset := ((format >> 16) & 0x1f) << 4
	return (((raw >> shift) & mask) | offset) & 0xff
}

// expandColor16 converts a 16-bit texel to 8888.
func expandColor16(v uint32, format render.BufferFormat) uint32 {
	var r, g, b, a uint32
	switch format {
	case render.Buffer565:
		r = (v & 0x1f) << 3
		g = ((v >> 5) & 0x3f) << 2
		b = ((v >> 11) & 0x1f) << 3
		r |= r >> 5
		g |= g >> 6
		b |= b >> 5
		a = 0xff
	case render.Buffer5551:
		r = (v & 0x1f) << 3
		g = ((v >> 5) & 0x1f) << 3
		b = ((v >> 10) & 0x1f) << 3
		r |= r >> 5
		g |= g >> 5
		b |= b >> 5
		if v&0x8000 != 0 {
			a = 0xff
		}
	case render.Buffer4444:
		r = (v & 0xf) * 0x11
		g = ((v >> 4) & 0xf) * 0x11
		b = ((v >> 8) & 0xf) * 0x11
		a = ((v >> 12) & 0xf) * 0x11
	}
	return r | g<<8 | b<<16 | a<<24
}

// texelBits returns the storage size of one texel in bits.
func texelBits(format int) int {
	switch format {
	case texFmtClut4:
		return 4
	case texFmtClut8:
		return 8
	case texFmt8888, texFmtClut32:
		return 32
	}
	return 16
}

// unswizzle rearranges the 16-byte by 8-row blocks of a swizzled texture
// into linear order.
func unswizzle(dst []uint8, src []uint8, rowBytes int, height int) {
	blocksPerRow := rowBytes / 16
	for by := 0; by < height/8; by++ {
		for bx := 0; bx < blocksPerRow; bx++ {
			for y := 0; y < 8; y++ {
				srcOff := (by*blocksPerRow+bx)*128 + y*16
				dstOff := (by*8+y)*rowBytes + bx*16
				copy(dst[dstOff:dstOff+16], src[srcOff:srcOff+16])
			}
		}
	}
}

// decode converts the guest texture to 8888 pixels. Returns nil when the
// format cannot be decoded.
func (tc *TextureCache) decode(entry *texEntry, src []uint8) []uint8 {
	bits := texelBits(entry.format)
	rowBytes := entry.stride * bits / 8
	if rowBytes == 0 {
		rowBytes = entry.width * bits / 8
	}
	need := rowBytes * entry.height
	if need > len(src) {
		return nil
	}
	src = src[:need]

	if tc.regs.texSwizzled() && entry.height >= 8 && rowBytes >= 16 {
		if cap(tc.decodeBuf) < need {
			tc.decodeBuf = make([]uint8, need)
		}
		unswizzle(tc.decodeBuf[:need], src, rowBytes, entry.height)
		src = tc.decodeBuf[:need]
	}

	out := make([]uint8, entry.width*entry.height*4)
	put := func(i int, c uint32) {
		out[i*4] = uint8(c)
		out[i*4+1] = uint8(c >> 8)
		out[i*4+2] = uint8(c >> 16)
		out[i*4+3] = uint8(c >> 24)
	}

	switch entry.format {
	case texFmt565, texFmt5551, texFmt4444:
		bf := render.BufferFormat(entry.format)
		for y := 0; y < entry.height; y++ {
			row := src[y*rowBytes:]
			for x := 0; x < entry.width; x++ {
				v := uint32(row[x*2]) | uint32(row[x*2+1])<<8
				put(y*entry.width+x, expandColor16(v, bf))
			}
		}
	case texFmt8888:
		for y := 0; y < entry.height; y++ {
			copy(out[y*entry.width*4:(y+1)*entry.width*4], src[y*rowBytes:])
		}
	case texFmtClut4:
		tc.decodePalette()
		for y := 0; y < entry.height; y++ {
			row := src[y*rowBytes:]
			for x := 0; x < entry.width; x++ {
				raw := uint32(row[x/2])
				if x&1 == 0 {
					raw &= 0xf
				} else {
					raw >>= 4
				}
				put(y*entry.width+x, tc.palette[tc.paletteIndex(raw)])
			}
		}
	case texFmtClut8:
		tc.decodePalette()
		for y := 0; y < entry.height; y++ {
			row := src[y*rowBytes:]
			for x := 0; x < entry.width; x++ {
				put(y*entry.width+x, tc.palette[tc.paletteIndex(uint32(row[x]))])
			}
		}
	case texFmtClut16:
		tc.decodePalette()
		for y := 0; y < entry.height; y++ {
			row := src[y*rowBytes:]
			for x := 0; x < entry.width; x++ {
				raw := uint32(row[x*2]) | uint32(row[x*2+1])<<8
				put(y*entry.width+x, tc.palette[tc.paletteIndex(raw)])
			}
		}
	case texFmtClut32:
		tc.decodePalette()
		for y := 0; y < entry.height; y++ {
			row := src[y*rowBytes:]
			for x := 0; x < entry.width; x++ {
				raw := uint32(row[x*4]) | uint32(row[x*4+1])<<8 |
					uint32(row[x*4+2])<<16 | uint32(row[x*4+3])<<24
				put(y*entry.width+x, tc.palette[tc.paletteIndex(raw)])
			}
		}
	default:
		return nil
	}

	entry.sizeBytes = need
	return out
}

// SetTexture implements render.TextureCache.
func (tc *TextureCache) SetTexture() {
	addr := tc.regs.texAddr(0)
	format := tc.regs.texFormat()
	width, height := tc.regs.texSize(0)
	stride := tc.regs.texStride(0)
	if stride == 0 {
		stride = width
	}

	key := texKey(addr, format, width, height)
	entry, ok := tc.entries[key]
	if ok {
		entry.lastFrame = tc.frame
		switch entry.status {
		case texStatusValid:
			gl.BindTexture(gl.TEXTURE_2D, entry.handle)
			tc.applySampler()
			return
		case texStatusHash:
			if src, err := tc.mem.Slice(addr, uint32(entry.sizeBytes)); err == nil {
				if crc32.ChecksumIEEE(src) == entry.hash {
					entry.status = texStatusValid
					gl.BindTexture(gl.TEXTURE_2D, entry.handle)
					tc.applySampler()
					return
				}
			}
		}
	} else {
		entry = &texEntry{
			addr: addr, format: format,
			width: width, height: height, stride: stride,
			lastFrame: tc.frame,
		}
		gl.GenTextures(1, &entry.handle)
		tc.entries[key] = entry
	}

	src, err := tc.mem.Window(addr)
	if err != nil {
		logger.Logf(logger.Allow, "gles", "bad texture address: %08x", addr)
		return
	}

	pixels := tc.decode(entry, src)
	if pixels == nil {
		logger.Logf(logger.Allow, "gles", "undecodable texture format: %d", format)
		return
	}

	entry.hash = crc32.ChecksumIEEE(src[:entry.sizeBytes])
	entry.status = texStatusValid

	gl.BindTexture(gl.TEXTURE_2D, entry.handle)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(entry.width), int32(entry.height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	tc.applySampler()
}

// applySampler sets filter and wrap state from the registers on the bound
// texture.
func (tc *TextureCache) applySampler() {
	min, mag := tc.regs.texFilter()
	if min&1 != 0 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	}
	if mag != 0 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}

	s, t := tc.regs.texWrap()
	if s != 0 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	}
	if t != 0 {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	}
}

// Invalidate implements render.TextureCache.
func (tc *TextureCache) Invalidate(addr uint32, size int, kind render.InvalidationKind) {
	if kind == render.InvalidateAll {
		tc.InvalidateAll(kind)
		return
	}
	end := addr + uint32(size)
	for _, entry := range tc.entries {
		entryEnd := entry.addr + uint32(entry.sizeBytes)
		if entry.addr >= end || entryEnd <= addr {
			continue
		}
		switch kind {
		case render.InvalidateForce:
			entry.status = texStatusReload
		default:
			if entry.status == texStatusValid {
				entry.status = texStatusHash
			}
		}
	}
}

// InvalidateAll implements render.TextureCache.
func (tc *TextureCache) InvalidateAll(kind render.InvalidationKind) {
	for _, entry := range tc.entries {
		if kind == render.InvalidateForce {
			entry.status = texStatusReload
		} else if entry.status == texStatusValid {
			entry.status = texStatusHash
		}
	}
}

// StartFrame implements render.TextureCache.
func (tc *TextureCache) StartFrame() {
	tc.frame++

	if tc.clearNext {
		tc.clearNext = false
		tc.Clear(true)
		return
	}

	for key, entry := range tc.entries {
		if tc.frame-entry.lastFrame > textureKillAge {
			gl.DeleteTextures(1, &entry.handle)
			delete(tc.entries, key)
		}
	}
}

// Clear implements render.TextureCache.
func (tc *TextureCache) Clear(deleteThem bool) {
	if deleteThem {
		for _, entry := range tc.entries {
			gl.DeleteTextures(1, &entry.handle)
		}
	}
	tc.entries = make(map[uint64]*texEntry)
	tc.paletteLive = false
}

// ClearNextFrame implements render.TextureCache.
func (tc *TextureCache) ClearNextFrame() {
	tc.clearNext = true
}

// NumLoadedTextures implements render.TextureCache.
func (tc *TextureCache) NumLoadedTextures() int {
	return len(tc.entries)
}
