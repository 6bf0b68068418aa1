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
	"os"

	"github.com/hakea/gopherge/curated"
	"github.com/hakea/gopherge/hardware/memory/memorymap"
	"github.com/hakea/gopherge/render"
)

// sentinel errors returned by the recording loader.
const (
	RecordingError = "recording: %v"
)

// kinds of record in a recording file.
const (
	recMemory  = 0x01
	recList    = 0x02
	recDisplay = 0x03
	recFrame   = 0x04
)

// a recording file starts with this magic number. files without it are
// treated as a flat dump of command words.
var recordingMagic = [4]uint8{'G', 'P', 'G', 'E'}

// record is one entry of a recording. which fields are meaningful depends
// on the kind.
type record struct {
	kind uint8

	// memory records
	addr uint32
	data []uint8

	// list records
	pc    uint32
	words uint32

	// display records
	stride int
	format render.BufferFormat
}

// recording is a replayable capture of the guest's interaction with the
// graphics engine.
//
// the file format is a sequence of tagged records after a four byte magic
// number. all values are little-endian:
//
//	0x01 memory    address (uint32), length (uint32), payload bytes
//	0x02 list      start address (uint32), word count (uint32)
//	0x03 display   address (uint32), stride (uint32), format (uint32)
//	0x04 frame     no payload. marks the end of a frame
//
// a file without the magic number must be a multiple of four bytes long. it
// is loaded at the base of RAM and replayed as a single list with a single
// frame, displaying the base of VRAM.
type recording struct {
	records []record

	// number of frame records in the recording. at least one, the loaders
	// append a final frame record when the capture does not end on one
	numFrames int
}

// loadRecording is the preferred method of initialisation for the recording
// type.
func loadRecording(filename string) (*recording, error) {
	d, err := os.ReadFile(filename)
	if err != nil {
		return nil, curated.Errorf(RecordingError, err)
	}

	if len(d) >= 4 && d[0] == recordingMagic[0] && d[1] == recordingMagic[1] &&
		d[2] == recordingMagic[2] && d[3] == recordingMagic[3] {
		return parseRecords(d[4:])
	}

	return flatRecording(d)
}

// flatRecording wraps a raw dump of command words in the records of a
// single-frame recording.
func flatRecording(d []uint8) (*recording, error) {
	if len(d) == 0 || len(d)%4 != 0 {
		return nil, curated.Errorf(RecordingError, "flat file is not a sequence of command words")
	}

	rec := &recording{}
	rec.records = append(rec.records,
		record{kind: recMemory, addr: memorymap.OriginRAM, data: d},
		record{kind: recDisplay, addr: memorymap.OriginVRAM, stride: 512, format: render.Buffer8888},
		record{kind: recList, pc: memorymap.OriginRAM, words: uint32(len(d) / 4)},
		record{kind: recFrame},
	)
	rec.numFrames = 1

	return rec, nil
}

func read32(d []uint8) uint32 {
	return uint32(d[0]) | uint32(d[1])<<8 | uint32(d[2])<<16 | uint32(d[3])<<24
}

func parseRecords(d []uint8) (*recording, error) {
	rec := &recording{}

	for len(d) > 0 {
		kind := d[0]
		d = d[1:]

		switch kind {
		case recMemory:
			if len(d) < 8 {
				return nil, curated.Errorf(RecordingError, "truncated memory record")
			}
			addr := read32(d)
			length := read32(d[4:])
			d = d[8:]
			if uint32(len(d)) < length {
				return nil, curated.Errorf(RecordingError, "truncated memory record")
			}
			rec.records = append(rec.records, record{kind: recMemory, addr: addr, data: d[:length]})
			d = d[length:]

		case recList:
			if len(d) < 8 {
				return nil, curated.Errorf(RecordingError, "truncated list record")
			}
			rec.records = append(rec.records, record{kind: recList, pc: read32(d), words: read32(d[4:])})
			d = d[8:]

		case recDisplay:
			if len(d) < 12 {
				return nil, curated.Errorf(RecordingError, "truncated display record")
			}
			rec.records = append(rec.records, record{
				kind:   recDisplay,
				addr:   read32(d),
				stride: int(read32(d[4:])),
				format: render.BufferFormat(read32(d[8:]) & 0x3),
			})
			d = d[12:]

		case recFrame:
			rec.records = append(rec.records, record{kind: recFrame})
			rec.numFrames++

		default:
			return nil, curated.Errorf(RecordingError, "unrecognised record")
		}
	}

	if len(rec.records) == 0 || rec.records[len(rec.records)-1].kind != recFrame {
		rec.records = append(rec.records, record{kind: recFrame})
		rec.numFrames++
	}

	return rec, nil
}
