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

package main

import (
	"testing"

	"github.com/hakea/gopherge/curated"
	"github.com/hakea/gopherge/hardware/memory/memorymap"
	"github.com/hakea/gopherge/render"
	"github.com/hakea/gopherge/test"
)

func put32(d []uint8, v uint32) []uint8 {
	return append(d, uint8(v), uint8(v>>8), uint8(v>>16), uint8(v>>24))
}

func TestFlatRecording(t *testing.T) {
	// eight bytes is two command words
	rec, err := flatRecording([]uint8{0, 0, 0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	test.Equate(t, rec.numFrames, 1)
	test.Equate(t, len(rec.records), 4)

	test.Equate(t, int(rec.records[0].kind), recMemory)
	test.Equate(t, rec.records[0].addr, memorymap.OriginRAM)

	test.Equate(t, int(rec.records[1].kind), recDisplay)
	test.Equate(t, rec.records[1].addr, memorymap.OriginVRAM)
	test.Equate(t, rec.records[1].stride, 512)

	test.Equate(t, int(rec.records[2].kind), recList)
	test.Equate(t, rec.records[2].pc, memorymap.OriginRAM)
	test.Equate(t, rec.records[2].words, 2)

	test.Equate(t, int(rec.records[3].kind), recFrame)
}

func TestFlatRecordingBadLength(t *testing.T) {
	_, err := flatRecording([]uint8{0, 0, 0})
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, RecordingError), true)

	_, err = flatRecording(nil)
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, RecordingError), true)
}

func TestParseRecords(t *testing.T) {
	var d []uint8

	// memory record with a four byte payload
	d = append(d, recMemory)
	d = put32(d, 0x08000000)
	d = put32(d, 4)
	d = append(d, 0xaa, 0xbb, 0xcc, 0xdd)

	// display record
	d = append(d, recDisplay)
	d = put32(d, 0x04000000)
	d = put32(d, 512)
	d = put32(d, 3)

	// list record
	d = append(d, recList)
	d = put32(d, 0x08000000)
	d = put32(d, 1)

	// frame marker
	d = append(d, recFrame)

	rec, err := parseRecords(d)
	if err != nil {
		t.Fatal(err)
	}

	test.Equate(t, rec.numFrames, 1)
	test.Equate(t, len(rec.records), 4)

	test.Equate(t, rec.records[0].addr, 0x08000000)
	test.Equate(t, len(rec.records[0].data), 4)
	test.Equate(t, rec.records[0].data[0], 0xaa)

	test.Equate(t, rec.records[1].stride, 512)
	test.Equate(t, int(rec.records[1].format), int(render.Buffer8888))

	test.Equate(t, rec.records[2].pc, 0x08000000)
	test.Equate(t, rec.records[2].words, 1)
}

func TestParseRecordsNoFrame(t *testing.T) {
	// a capture that does not end on a frame marker gets one appended
	var d []uint8
	d = append(d, recList)
	d = put32(d, 0x08000000)
	d = put32(d, 1)

	rec, err := parseRecords(d)
	if err != nil {
		t.Fatal(err)
	}

	test.Equate(t, rec.numFrames, 1)
	test.Equate(t, int(rec.records[len(rec.records)-1].kind), recFrame)
}

func TestParseRecordsTruncated(t *testing.T) {
	// a memory record whose payload is cut short
	var d []uint8
	d = append(d, recMemory)
	d = put32(d, 0x08000000)
	d = put32(d, 16)
	d = append(d, 0xaa, 0xbb)

	_, err := parseRecords(d)
	test.Equate(t, curated.Is(err, RecordingError), true)

	// an unknown record kind
	_, err = parseRecords([]uint8{0x7f})
	test.Equate(t, curated.Is(err, RecordingError), true)
}
