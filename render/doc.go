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

// Package render defines the protocol between the graphics engine core and
// the subsystems that realize its output. The core interprets the command
// stream and mutates the mirrored register file; the four interfaces in
// this package (Drawer, ShaderManager, TextureCache, FramebufferManager)
// describe everything the core asks of the outside world.
//
// Implementations of the interfaces are found in the render/gles package,
// which draws through OpenGL, and in the render/headless package, which
// records calls for tests and headless replay.
//
// The package also carries the vocabulary shared by core and subsystems:
// primitive types, buffer formats, the vertex type word and its size
// arithmetic, uniform dirty groups and the display list record.
package render
