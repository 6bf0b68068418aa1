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

// Package headless provides recording implementations of the render
// subsystems. Every call is appended to a shared trace, and the answers the
// core asks for (bytes consumed per vertex, bounding box verdicts, per
// vertex cost) are configurable.
//
// The package serves two purposes: it is the backend for replaying command
// streams without a GL context, and it is the instrument used by the ge
// package tests to observe what the interpreter asked of its subsystems.
package headless
