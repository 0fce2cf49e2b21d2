// jdvpdf - convert jdv page descriptions into PDF files
// Copyright (C) 2021  David Fang
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package sfnt

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"

	"github.com/DavidFangWJ/jdvpdf/font"
	"github.com/DavidFangWJ/jdvpdf/font/parser"
)

// Scaler types found at the start of an sfnt file.
const (
	ScalerTypeTrueType   = 0x00010000
	ScalerTypeCFF        = 0x4F54544F // "OTTO"
	ScalerTypeApple      = 0x74727565 // "true"
	ScalerTypeCollection = 0x74746366 // "ttcf"
)

// Tag is the four-byte name of an sfnt table.
type Tag [4]byte

// MakeTag converts a string of length 4 bytes to a Tag.
func MakeTag(s string) Tag {
	if len(s) != 4 {
		panic("tag must be 4 bytes")
	}
	return Tag{s[0], s[1], s[2], s[3]}
}

func (tag Tag) String() string {
	return string(tag[:])
}

// TableRecord describes one table in the table directory.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Region returns the location of the table data in the file.
func (rec TableRecord) Region() parser.Region {
	return parser.Region{Start: int64(rec.Offset), Length: int64(rec.Length)}
}

// Header is the table directory of an sfnt font.
type Header struct {
	ScalerType uint32

	// Records is sorted by tag.
	Records []TableRecord
}

// maxTables bounds the directory size.  Real fonts have a few dozen
// tables at most.
const maxTables = 280

// ReadHeader reads the table directory of an sfnt file.  If the file is a
// TrueType collection, subFont selects the font inside the collection.
// For other files subFont must be 0.
func ReadHeader(p *parser.Parser, subFont int) (*Header, error) {
	err := p.SeekPos(0)
	if err != nil {
		return nil, err
	}
	scalerType, err := p.ReadUInt32()
	if err != nil {
		return nil, err
	}

	if scalerType == ScalerTypeCollection {
		err = p.SeekPos(8)
		if err != nil {
			return nil, err
		}
		numFonts, err := p.ReadUInt32()
		if err != nil {
			return nil, err
		}
		if subFont < 0 || int64(subFont) >= int64(numFonts) {
			return nil, &font.RangeError{
				SubSystem: "sfnt",
				What:      "collection font",
				Index:     subFont,
				Limit:     int(numFonts),
			}
		}
		err = p.SeekPos(12 + 4*int64(subFont))
		if err != nil {
			return nil, err
		}
		fontOffset, err := p.ReadUInt32()
		if err != nil {
			return nil, err
		}
		err = p.SeekPos(int64(fontOffset))
		if err != nil {
			return nil, err
		}
		scalerType, err = p.ReadUInt32()
		if err != nil {
			return nil, err
		}
	} else if subFont != 0 {
		return nil, &font.RangeError{
			SubSystem: "sfnt",
			What:      "collection font",
			Index:     subFont,
			Limit:     1,
		}
	}

	if scalerType != ScalerTypeTrueType &&
		scalerType != ScalerTypeCFF &&
		scalerType != ScalerTypeApple {
		return nil, &font.NotSupportedError{
			SubSystem: "sfnt",
			Feature:   fmt.Sprintf("scaler type 0x%x", scalerType),
		}
	}

	numTables, err := p.ReadUInt16()
	if err != nil {
		return nil, err
	}
	if numTables == 0 || numTables > maxTables {
		return nil, p.Error("invalid number of tables %d", numTables)
	}
	// skip searchRange, entrySelector, rangeShift
	err = p.SeekPos(p.Pos() + 6)
	if err != nil {
		return nil, err
	}

	h := &Header{
		ScalerType: scalerType,
		Records:    make([]TableRecord, numTables),
	}
	sorted := true
	for i := range h.Records {
		buf, err := p.ReadBytes(16)
		if err != nil {
			return nil, err
		}
		rec := &h.Records[i]
		copy(rec.Tag[:], buf[:4])
		rec.Checksum = uint32(buf[4])<<24 | uint32(buf[5])<<16 | uint32(buf[6])<<8 | uint32(buf[7])
		rec.Offset = uint32(buf[8])<<24 | uint32(buf[9])<<16 | uint32(buf[10])<<8 | uint32(buf[11])
		rec.Length = uint32(buf[12])<<24 | uint32(buf[13])<<16 | uint32(buf[14])<<8 | uint32(buf[15])
		if uint64(rec.Offset)+uint64(rec.Length) > 0xFFFFFFFF {
			return nil, p.Error("table %q exceeds the 4GB limit", rec.Tag)
		}
		if i > 0 && bytes.Compare(h.Records[i-1].Tag[:], rec.Tag[:]) >= 0 {
			sorted = false
		}
	}
	if !sorted {
		tracer().Infof("sfnt: table directory is not sorted")
		slices.SortFunc(h.Records, func(a, b TableRecord) int {
			return bytes.Compare(a.Tag[:], b.Tag[:])
		})
		for i := 1; i < len(h.Records); i++ {
			if h.Records[i-1].Tag == h.Records[i].Tag {
				return nil, p.Error("duplicate table %q", h.Records[i].Tag)
			}
		}
	}

	return h, nil
}

// IsOpenType returns true if the font has CFF outlines.
func (h *Header) IsOpenType() bool {
	return h.ScalerType == ScalerTypeCFF
}

// Has returns true if all the given tables are present.
func (h *Header) Has(tags ...string) bool {
	for _, tag := range tags {
		if _, err := h.Find(tag); err != nil {
			return false
		}
	}
	return true
}

// Find returns the directory entry of the given table,
// using a binary search over the sorted records.
func (h *Header) Find(tag string) (TableRecord, error) {
	key := MakeTag(tag)
	i, found := slices.BinarySearchFunc(h.Records, key, func(rec TableRecord, key Tag) int {
		return bytes.Compare(rec.Tag[:], key[:])
	})
	if !found {
		return TableRecord{}, &ErrNoTable{Name: tag}
	}
	return h.Records[i], nil
}

// ReadTableBytes reads the contents of the given table.
func (h *Header) ReadTableBytes(p *parser.Parser, tag string) ([]byte, error) {
	rec, err := h.Find(tag)
	if err != nil {
		return nil, err
	}
	err = p.SeekPos(int64(rec.Offset))
	if err != nil {
		return nil, err
	}
	return p.ReadBlob(int(rec.Length))
}

// ErrNoTable indicates that a required table is missing from a font file.
type ErrNoTable struct {
	Name string
}

func (err *ErrNoTable) Error() string {
	return "sfnt: missing " + strconv.Quote(err.Name) + " table"
}

// Unwrap makes a missing table count as a malformed font.
func (err *ErrNoTable) Unwrap() error {
	return &font.InvalidFontError{
		SubSystem: "sfnt",
		Reason:    "missing " + strconv.Quote(err.Name) + " table",
	}
}

// IsMissing returns true, if err indicates a missing sfnt table.
func IsMissing(err error) bool {
	var e *ErrNoTable
	return errors.As(err, &e)
}
