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

// Package ge implements the command-stream interpreter at the heart of the
// graphics engine. The interpreter reads 32-bit command words from guest
// memory, mirrors every write into a 256-slot register file, and decides
// when accumulated state must be realized by the draw engine.
//
// The hot path is the Run() loop: a flag lookup per opcode decides whether
// pending draws are flushed before the write and whether the executor runs
// at all. Most command words repeat the previous value for their opcode and
// are absorbed by the mirror without further work. This redundant-write
// elimination is the single largest performance lever in the package.
//
// The GPU type bundles the register mirror, the derived state caches, the
// opcode flag table and references to the downstream subsystems. Nothing in
// this package is a package-level variable; every GPU instance is
// self-contained and owned by the render thread. The only structure shared
// with other threads is the lifecycle event queue.
package ge
