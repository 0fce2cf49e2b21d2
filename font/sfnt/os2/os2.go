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

// Package os2 reads the vertical metrics from the "OS/2" and "hhea" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"encoding/binary"

	"seehuhn.de/go/postscript/funit"

	"github.com/DavidFangWJ/jdvpdf/font"
)

// Info contains the vertical metrics of a font.
type Info struct {
	Ascent    funit.Int16
	Descent   funit.Int16 // as a negative number
	CapHeight funit.Int16
}

const (
	offsTypoAscender  = 68
	offsTypoDescender = 70
	offsCapHeight     = 88

	offsHheaAscender  = 4
	offsHheaDescender = 6
)

// Decode reads the metrics from an "OS/2" table.  The cap height is only
// present from version 2 on; for older tables the ascent is used instead.
func Decode(data []byte) (*Info, error) {
	if len(data) < offsTypoDescender+2 {
		return nil, &font.InvalidFontError{
			SubSystem: "sfnt/os2",
			Reason:    "table too short",
		}
	}
	version := binary.BigEndian.Uint16(data)
	info := &Info{
		Ascent:  funit.Int16(binary.BigEndian.Uint16(data[offsTypoAscender:])),
		Descent: funit.Int16(binary.BigEndian.Uint16(data[offsTypoDescender:])),
	}
	if version >= 2 && len(data) >= offsCapHeight+2 {
		info.CapHeight = funit.Int16(binary.BigEndian.Uint16(data[offsCapHeight:]))
	} else {
		info.CapHeight = info.Ascent
	}
	return info, nil
}

// DecodeHhea reads ascent and descent from a "hhea" table.  This is used
// for fonts without an "OS/2" table.  The cap height is set to the ascent.
func DecodeHhea(data []byte) (*Info, error) {
	if len(data) < offsHheaDescender+2 {
		return nil, &font.InvalidFontError{
			SubSystem: "sfnt/hhea",
			Reason:    "table too short",
		}
	}
	info := &Info{
		Ascent:  funit.Int16(binary.BigEndian.Uint16(data[offsHheaAscender:])),
		Descent: funit.Int16(binary.BigEndian.Uint16(data[offsHheaDescender:])),
	}
	info.CapHeight = info.Ascent
	return info, nil
}
