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

// Package memory implements the guest memory visible to the graphics
// engine. Three areas are backed by real storage: the scratchpad, video
// memory and main RAM. The memorymap package (found in this package's
// directory) describes how guest addresses relate to these areas.
//
// The graphics engine reads command words, vertex data and textures
// directly from guest memory and writes to it during block transfers.
// Access is through the Slice() function, which returns a window onto the
// backing array, or through Read32() for individual command words.
package memory
