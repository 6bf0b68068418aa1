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

import "math"

// float24 decodes the 24-bit float encoding used in command payloads. The
// hardware stores IEEE-754 single precision with the low 8 mantissa bits
// zeroed.
func float24(payload uint32) float32 {
	return math.Float32frombits(payload << 8)
}

// getFloat24 returns the float payload of a mirrored command word.
func getFloat24(word uint32) float32 {
	return float24(word & 0xffffff)
}
