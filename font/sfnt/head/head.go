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

// Package head gives access to the fields of the "head" table needed for
// subsetting and embedding.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// Byte offsets of the fields used here.
const (
	offsChecksumAdjustment = 8
	offsMagic              = 12
	offsUnitsPerEm         = 18
	offsBBox               = 36
	offsIndexToLocFormat   = 50

	// MinLength is the length of a version 1.0 head table.
	MinLength = 54
)

const magic = 0x5F0F3CF5

// Info contains the information from the "head" table.
type Info struct {
	UnitsPerEm     uint16
	FontBBox       funit.Rect16
	HasLongOffsets bool // 'loca' table uses 32 bit offsets
}

// Decode extracts the information from the binary "head" table.
func Decode(data []byte) (*Info, error) {
	if len(data) < MinLength {
		return nil, errLength
	}
	if binary.BigEndian.Uint32(data[offsMagic:]) != magic {
		return nil, &font.InvalidFontError{
			SubSystem: "sfnt/head",
			Reason:    "wrong magic number",
		}
	}
	locFormat := int16(binary.BigEndian.Uint16(data[offsIndexToLocFormat:]))
	if locFormat != 0 && locFormat != 1 {
		return nil, &font.NotSupportedError{
			SubSystem: "sfnt/head",
			Feature:   fmt.Sprintf("loca format %d", locFormat),
		}
	}
	info := &Info{
		UnitsPerEm: binary.BigEndian.Uint16(data[offsUnitsPerEm:]),
		FontBBox: funit.Rect16{
			LLx: funit.Int16(binary.BigEndian.Uint16(data[offsBBox:])),
			LLy: funit.Int16(binary.BigEndian.Uint16(data[offsBBox+2:])),
			URx: funit.Int16(binary.BigEndian.Uint16(data[offsBBox+4:])),
			URy: funit.Int16(binary.BigEndian.Uint16(data[offsBBox+6:])),
		},
		HasLongOffsets: locFormat == 1,
	}
	return info, nil
}

// SetLocaFormat stores the loca format in a binary "head" table.
func SetLocaFormat(head []byte, long bool) {
	var val uint16
	if long {
		val = 1
	}
	binary.BigEndian.PutUint16(head[offsIndexToLocFormat:], val)
}

// ClearChecksum sets the checksumAdjustment field to zero.  This must be
// done before the checksum of the head table is computed.
func ClearChecksum(head []byte) {
	binary.BigEndian.PutUint32(head[offsChecksumAdjustment:], 0)
}

// PatchChecksum updates the checksum of the head table.
// The argument is the checksum of the entire font before patching.
func PatchChecksum(head []byte, checksum uint32) {
	binary.BigEndian.PutUint32(head[offsChecksumAdjustment:], 0xB1B0AFBA-checksum)
}

// ChecksumAdjustment returns the value of the checksumAdjustment field.
func ChecksumAdjustment(head []byte) uint32 {
	return binary.BigEndian.Uint32(head[offsChecksumAdjustment:])
}

var errLength = &font.InvalidFontError{
	SubSystem: "sfnt/head",
	Reason:    "table too short",
}
