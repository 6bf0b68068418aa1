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

package digest_test

import (
	"testing"

	"github.com/hakea/gopherge/digest"
	"github.com/hakea/gopherge/test"
)

func TestVideo(t *testing.T) {
	a := digest.NewVideo()
	a.Frame([]uint8{1, 2, 3})
	a.Frame([]uint8{4, 5, 6})
	test.Equate(t, a.NumFrames(), 2)

	// the same frames in the same order reproduce the hash
	b := digest.NewVideo()
	b.Frame([]uint8{1, 2, 3})
	b.Frame([]uint8{4, 5, 6})
	test.Equate(t, a.Hash(), b.Hash())

	// the same frames in a different order do not
	c := digest.NewVideo()
	c.Frame([]uint8{4, 5, 6})
	c.Frame([]uint8{1, 2, 3})
	test.Equate(t, a.Hash() == c.Hash(), false)
}

func TestVideoReset(t *testing.T) {
	a := digest.NewVideo()
	a.Frame([]uint8{1, 2, 3})

	a.ResetDigest()
	test.Equate(t, a.NumFrames(), 0)

	a.Frame([]uint8{1, 2, 3})

	b := digest.NewVideo()
	b.Frame([]uint8{1, 2, 3})
	test.Equate(t, a.Hash(), b.Hash())
}
