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

package render

// CallStackDepth is the maximum nesting of display-list calls.
const CallStackDepth = 8

// DisplayList is a program in guest memory consumed by the command-stream
// interpreter.
type DisplayList struct {
	// address of the next command word
	PC uint32

	// number of cycles the interpreter may still spend on this list. the
	// run loop returns when the downcount reaches zero or an end command
	// forces it there
	Downcount int64

	// result of the most recent bounding-box test. conditional jumps
	// consult this. true means the box intersected the view volume
	BBoxResult bool

	// return addresses for nested calls
	Stack    [CallStackDepth]uint32
	StackPtr int

	// payloads of the most recent signal and finish commands. the caller
	// inspects these when the list ends
	Signal uint32
	Finish uint32

	// true once an end command has been interpreted
	Ended bool
}

// FramebufferInfo describes a guest-allocated render target.
type FramebufferInfo struct {
	Address uint32
	Stride  int
	Width   int
	Height  int
	Format  BufferFormat

	// set when the framebuffer is rendered to after being displayed.
	// ReallyDirty ignores draws that could not have changed any pixel
	// (masked writes). the frame-skipping logic reads and clears these
	DirtyAfterDisplay       bool
	ReallyDirtyAfterDisplay bool
}

// SimpleVertex is a fully decoded vertex as produced by the draw engine's
// debug readback.
type SimpleVertex struct {
	Pos   [3]float32
	UV    [2]float32
	Color [4]uint8
}
