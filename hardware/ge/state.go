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

// Light is the derived floating-point cache of one hardware light. The
// values are decoded from command payloads as they arrive so that uniform
// upload does not have to revisit the register mirror.
type Light struct {
	Pos        [3]float32
	Dir        [3]float32
	Atten      [3]float32
	SpotCoef   float32
	SpotCutoff float32
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
}

// Reasons for skipping primitive draws. Skipped primitives are still
// accounted for in the cycle estimate.
const (
	SkipDrawSkipFrame            = 0x1
	SkipDrawNonDisplayedFramebuf = 0x2
)

// matrix file sizes
const (
	worldMatrixSize = 12
	viewMatrixSize  = 12
	projMatrixSize  = 16
	tgenMatrixSize  = 12
	boneMatrixSize  = 96
)

// splitRGB unpacks a 24-bit 8:8:8 color payload into floats in [0, 1].
func splitRGB(payload uint32) [3]float32 {
	return [3]float32{
		float32(payload&0xff) / 255.0,
		float32((payload>>8)&0xff) / 255.0,
		float32((payload>>16)&0xff) / 255.0,
	}
}
